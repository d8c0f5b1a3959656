package concept

// BridgeSide is one half of a concept bridge: a domain term mapped onto
// the shared ontology at a known abstraction level.
type BridgeSide struct {
	Concept    string           `json:"concept"`
	Domain     string           `json:"domain"`
	Label      OntologyLabel    `json:"label"`
	Confidence float64          `json:"confidence"` // [0,1]
	Level      AbstractionLevel `json:"level"`
}

// ConceptBridge pairs two domain concepts via the shared ontology. Strength
// and combined confidence are deterministic functions of the two mappings.
type ConceptBridge struct {
	A        BridgeSide `json:"a"`
	B        BridgeSide `json:"b"`
	Strength float64    `json:"strength"`   // label affinity, [0,1]
	Combined float64    `json:"confidence"` // mean of the two confidences
}

// NewBridge assembles a bridge from its two sides. Strength is the ontology
// affinity of the two labels (identical label = maximum strength); combined
// confidence is the arithmetic mean of the side confidences.
func NewBridge(a, b BridgeSide) ConceptBridge {
	return ConceptBridge{
		A:        a,
		B:        b,
		Strength: LabelAffinity(a.Label, b.Label),
		Combined: (a.Confidence + b.Confidence) / 2,
	}
}

// LevelJump returns the abstraction distance between the two sides
func (cb ConceptBridge) LevelJump() int {
	return cb.A.Level.Distance(cb.B.Level)
}

// DomainPair returns the bridge's domains in canonical (sorted) order so
// that unordered pair accounting is stable.
func (cb ConceptBridge) DomainPair() (string, string) {
	if cb.B.Domain < cb.A.Domain {
		return cb.B.Domain, cb.A.Domain
	}
	return cb.A.Domain, cb.B.Domain
}
