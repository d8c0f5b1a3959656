package ideation

import (
	"ideaforge/domain/concept"
	"ideaforge/domain/core"
)

// DomainPairScore is a weighted tally for one unordered domain pair.
// DomainA is always <= DomainB so pair accounting is canonical.
type DomainPairScore struct {
	DomainA string  `json:"domain_a"`
	DomainB string  `json:"domain_b"`
	Score   float64 `json:"score"`
}

// LevelScore is a weighted tally for one abstraction level
type LevelScore struct {
	Level concept.AbstractionLevel `json:"level"`
	Score float64                  `json:"score"`
}

// StrategyScore is a weighted tally for one combination strategy
type StrategyScore struct {
	Strategy Strategy `json:"strategy"`
	Score    float64  `json:"score"`
}

// TranslationPattern records an ontology pairing that produced a winner
type TranslationPattern struct {
	LabelA concept.OntologyLabel `json:"label_a"`
	LabelB concept.OntologyLabel `json:"label_b"`
	Count  int                   `json:"count"`
}

// FeedbackSignals is the learning extracted from one Pareto frontier:
// which domain pairs, abstraction levels, and strategies produced the best
// results, weighted by each winner's combined score.
type FeedbackSignals struct {
	TopDomainPairs      []DomainPairScore    `json:"top_domain_pairs"` // capped at 5
	TopLevels           []LevelScore         `json:"top_levels"`       // capped at 3
	TopStrategies       []StrategyScore      `json:"top_strategies"`   // capped at 3
	TranslationPatterns []TranslationPattern `json:"translation_patterns,omitempty"`
	MaxWinnerScore      float64              `json:"max_winner_score"` // bounds one steering pass
	CreatedAt           core.Timestamp       `json:"created_at"`
}

// IsEmpty reports whether the signals carry no learning (empty frontier)
func (s FeedbackSignals) IsEmpty() bool {
	return len(s.TopDomainPairs) == 0 && len(s.TopLevels) == 0 && len(s.TopStrategies) == 0
}
