package ideation

import (
	"ideaforge/domain/core"
)

// NoveltyScore is the novelty axis with its named sub-signals.
// Value = 0.5*AvgDistance + 0.3*Rarity + 0.2*JumpBonus, clamped to 1.0.
type NoveltyScore struct {
	Value       float64 `json:"value"`        // [0,1]
	AvgDistance float64 `json:"avg_distance"` // 1 - mean neighbor similarity
	Rarity      float64 `json:"rarity"`       // 1 - min(pairFreq/100, 1)
	JumpBonus   float64 `json:"jump_bonus"`   // levelJump * 0.1
}

// UtilityScore is the utility axis with its named sub-signals.
// Value = 0.4*Feasibility + 0.4*Relevance + 0.2*Impact.
type UtilityScore struct {
	Value       float64 `json:"value"` // [0,1]
	Feasibility float64 `json:"feasibility"`
	Relevance   float64 `json:"relevance"`
	Impact      float64 `json:"impact"`
}

// ScoredCandidate is a candidate plus its two axis scores and the combined
// ranking score. Combined is the product of the two axis values: both lie
// in [0,1], so the product behaves like a geometric mean and penalizes
// candidates that are strong on one axis but weak on the other.
type ScoredCandidate struct {
	Candidate IdeaCandidate  `json:"candidate"`
	Novelty   NoveltyScore   `json:"novelty"`
	Utility   UtilityScore   `json:"utility"`
	Combined  float64        `json:"combined"`
	ScoredAt  core.Timestamp `json:"scored_at"`
}

// NewScoredCandidate attaches both scores to a candidate
func NewScoredCandidate(cand IdeaCandidate, novelty NoveltyScore, utility UtilityScore) ScoredCandidate {
	cand.Novelty = &novelty
	cand.Utility = &utility
	return ScoredCandidate{
		Candidate: cand,
		Novelty:   novelty,
		Utility:   utility,
		Combined:  novelty.Value * utility.Value,
		ScoredAt:  core.Now(),
	}
}

// Dominates reports whether sc Pareto-dominates other: at least as good on
// both axes and strictly better on at least one.
func (sc ScoredCandidate) Dominates(other ScoredCandidate) bool {
	if sc.Novelty.Value < other.Novelty.Value || sc.Utility.Value < other.Utility.Value {
		return false
	}
	return sc.Novelty.Value > other.Novelty.Value || sc.Utility.Value > other.Utility.Value
}

// Clamp01 clamps v to the [0,1] score range
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
