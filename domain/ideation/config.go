package ideation

import (
	"ideaforge/domain/concept"
)

// Weight clamp bounds. Feedback adjustments are bounded multiplicative
// factors, so without a cap weights would drift without limit across a
// long session.
const (
	MinWeight = 0.1
	MaxWeight = 10.0
)

// RetrievalConfig is the steering state threaded through iterations:
// per-domain and per-level retrieval weights plus the current expansion
// queries. It is single-writer (the feedback loop) and multi-reader;
// readers take a Snapshot at iteration start.
type RetrievalConfig struct {
	DomainWeights    map[string]float64                   `json:"domain_weights"`
	LevelWeights     map[concept.AbstractionLevel]float64 `json:"level_weights"`
	ExpansionQueries []string                             `json:"expansion_queries"`
}

// NewRetrievalConfig creates a config with uniform weights for the given
// domains and all four abstraction levels.
func NewRetrievalConfig(domains []string) *RetrievalConfig {
	cfg := &RetrievalConfig{
		DomainWeights: make(map[string]float64, len(domains)),
		LevelWeights:  make(map[concept.AbstractionLevel]float64, len(concept.AllLevels)),
	}
	for _, d := range domains {
		cfg.DomainWeights[d] = 1.0
	}
	for _, l := range concept.AllLevels {
		cfg.LevelWeights[l] = 1.0
	}
	return cfg
}

// DomainWeight returns the weight for a domain, defaulting to 1.0 for
// domains the config has not seen.
func (c *RetrievalConfig) DomainWeight(domain string) float64 {
	if w, ok := c.DomainWeights[domain]; ok {
		return w
	}
	return 1.0
}

// LevelWeight returns the weight for an abstraction level
func (c *RetrievalConfig) LevelWeight(level concept.AbstractionLevel) float64 {
	if w, ok := c.LevelWeights[level]; ok {
		return w
	}
	return 1.0
}

// Snapshot returns a deep copy for lock-free reads during an iteration
func (c *RetrievalConfig) Snapshot() *RetrievalConfig {
	out := &RetrievalConfig{
		DomainWeights:    make(map[string]float64, len(c.DomainWeights)),
		LevelWeights:     make(map[concept.AbstractionLevel]float64, len(c.LevelWeights)),
		ExpansionQueries: append([]string(nil), c.ExpansionQueries...),
	}
	for k, v := range c.DomainWeights {
		out.DomainWeights[k] = v
	}
	for k, v := range c.LevelWeights {
		out.LevelWeights[k] = v
	}
	return out
}

// ClampWeight bounds a weight to [MinWeight, MaxWeight]
func ClampWeight(w float64) float64 {
	if w < MinWeight {
		return MinWeight
	}
	if w > MaxWeight {
		return MaxWeight
	}
	return w
}
