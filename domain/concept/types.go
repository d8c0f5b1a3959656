package concept

import (
	"ideaforge/domain/core"
)

// ConceptNode is one indexed concept. Nodes are immutable once stored and
// owned by the per-level collection that holds them.
type ConceptNode struct {
	ID        core.ConceptID         `json:"id"`
	Text      string                 `json:"text"`
	Embedding []float64              `json:"embedding"`
	Source    string                 `json:"source"`
	Domain    string                 `json:"domain"`
	Level     AbstractionLevel       `json:"level"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	IndexedAt core.Timestamp         `json:"indexed_at"`
}

// CrossDomainMatch is a candidate analogy between two domains at one
// abstraction level. Created transiently by a retrieval query.
type CrossDomainMatch struct {
	SourceConcept string           `json:"source_concept"`
	SourceDomain  string           `json:"source_domain"`
	TargetConcept string           `json:"target_concept"`
	TargetDomain  string           `json:"target_domain"`
	Similarity    float64          `json:"similarity"` // [0,1]
	Level         AbstractionLevel `json:"level"`
}

// TermMapping is the result of mapping a domain term onto the shared
// ontology: the chosen label and the mapper's confidence in it.
type TermMapping struct {
	Term       string        `json:"term"`
	Domain     string        `json:"domain"`
	Label      OntologyLabel `json:"label"`
	Confidence float64       `json:"confidence"` // [0,1]
}
