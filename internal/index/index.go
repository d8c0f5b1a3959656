package index

import (
	"context"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"

	"ideaforge/domain/concept"
	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
	"ideaforge/ports"
)

// bridgingLevelFactor trades similarity for abstraction distance when
// re-ranking cross-level results. Pure similarity ranking favors
// near-duplicates of the query.
const bridgingLevelFactor = 0.25

// crossDomainTopK is the per-domain result cap for cross-domain retrieval.
const crossDomainTopK = 5

// CrossLevelResult is one re-ranked result of a cross-level retrieval.
type CrossLevelResult struct {
	Node       concept.ConceptNode `json:"node"`
	Similarity float64             `json:"similarity"`
	Potential  float64             `json:"potential"` // bridging-potential rank key
}

// Index maintains one similarity-searchable collection of concepts per
// abstraction level. Collections are append-only slice arenas; insertion
// order is the deterministic tie-break for equal similarities.
type Index struct {
	mu         sync.RWMutex
	levels     [concept.NumLevels][]concept.ConceptNode
	embedder   ports.EmbeddingPort
	classifier ports.ClassifierPort
}

// New creates an empty concept index backed by the given external services
func New(embedder ports.EmbeddingPort, classifier ports.ClassifierPort) *Index {
	return &Index{embedder: embedder, classifier: classifier}
}

// Index classifies and embeds a concept, then stores it at its level.
// Either external failure aborts this call only, wrapped as a
// retrieval-unavailable error; nothing is silently dropped.
func (ix *Index) Index(ctx context.Context, text, source, domain string) (*concept.ConceptNode, error) {
	level, err := ix.classifier.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	embedding, err := ix.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	node := concept.ConceptNode{
		ID:        core.ConceptID(core.NewID()),
		Text:      text,
		Embedding: embedding,
		Source:    source,
		Domain:    domain,
		Level:     level,
		IndexedAt: core.Now(),
	}

	ix.mu.Lock()
	ix.levels[level] = append(ix.levels[level], node)
	ix.mu.Unlock()

	return &node, nil
}

// Size returns the number of concepts stored at a level
func (ix *Index) Size(level concept.AbstractionLevel) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !level.IsValid() {
		return 0
	}
	return len(ix.levels[level])
}

// RetrieveCrossLevel embeds the query once, searches each target level for
// its k nearest neighbors, and re-ranks the concatenated results by
// bridging potential: similarity boosted by abstraction distance from the
// source level.
func (ix *Index) RetrieveCrossLevel(ctx context.Context, query string, sourceLevel concept.AbstractionLevel, targetLevels []concept.AbstractionLevel, k int) ([]CrossLevelResult, error) {
	queryVec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	results := []CrossLevelResult{}
	for _, level := range targetLevels {
		if !level.IsValid() {
			continue
		}
		neighbors := nearest(ix.levels[level], queryVec, k, nil)
		for _, n := range neighbors {
			dist := sourceLevel.Distance(n.node.Level)
			results = append(results, CrossLevelResult{
				Node:       n.node,
				Similarity: n.similarity,
				Potential:  n.similarity * (1 + bridgingLevelFactor*float64(dist)),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Potential > results[j].Potential
	})
	return results, nil
}

// RetrieveCrossDomain restricts one level's collection to each target
// domain and returns its top matches as cross-domain analogy candidates.
// The retrieval-config snapshot biases ordering across domains; the
// reported similarity stays raw.
func (ix *Index) RetrieveCrossDomain(ctx context.Context, conceptText, sourceDomain string, targetDomains []string, level concept.AbstractionLevel, cfg *ideation.RetrievalConfig) ([]concept.CrossDomainMatch, error) {
	queryVec, err := ix.embedder.Embed(ctx, conceptText)
	if err != nil {
		return nil, err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !level.IsValid() {
		return nil, core.ErrInvalidLevel
	}

	type weightedMatch struct {
		match    concept.CrossDomainMatch
		weighted float64
	}
	all := []weightedMatch{}

	for _, target := range targetDomains {
		if target == sourceDomain {
			continue
		}
		domainFilter := target
		neighbors := nearest(ix.levels[level], queryVec, crossDomainTopK, &domainFilter)
		weight := 1.0
		if cfg != nil {
			weight = cfg.DomainWeight(target)
		}
		for _, n := range neighbors {
			all = append(all, weightedMatch{
				match: concept.CrossDomainMatch{
					SourceConcept: conceptText,
					SourceDomain:  sourceDomain,
					TargetConcept: n.node.Text,
					TargetDomain:  target,
					Similarity:    n.similarity,
					Level:         level,
				},
				weighted: weight * n.similarity,
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].weighted > all[j].weighted
	})

	matches := make([]concept.CrossDomainMatch, len(all))
	for i, wm := range all {
		matches[i] = wm.match
	}
	return matches, nil
}

type scoredNode struct {
	node       concept.ConceptNode
	similarity float64
}

// nearest returns the k most similar nodes, optionally restricted to one
// domain. Stable sort keeps insertion order on similarity ties.
func nearest(nodes []concept.ConceptNode, query []float64, k int, domain *string) []scoredNode {
	scored := []scoredNode{}
	for _, node := range nodes {
		if domain != nil && node.Domain != *domain {
			continue
		}
		scored = append(scored, scoredNode{node: node, similarity: Cosine(query, node.Embedding)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].similarity > scored[j].similarity
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// Cosine computes cosine similarity clamped to [0,1]. Embedding vectors
// from the external service are near-orthant positive, so negative
// similarities carry no ranking information here.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	sim := floats.Dot(a, b) / (na * nb)
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
