package score

import (
	"context"

	"ideaforge/domain/ideation"
	"ideaforge/ports"
)

// Utility aggregation weights.
const (
	weightFeasibility = 0.4
	weightRelevance   = 0.4
	weightImpact      = 0.2
)

// UtilityScorer computes the utility axis from three independent
// generative-service estimates.
type UtilityScorer struct {
	judge ports.UtilityJudgePort
}

// NewUtilityScorer creates a utility scorer
func NewUtilityScorer(judge ports.UtilityJudgePort) *UtilityScorer {
	return &UtilityScorer{judge: judge}
}

// Score computes the utility score for one candidate against the problem
func (s *UtilityScorer) Score(ctx context.Context, candidate ideation.IdeaCandidate, problem string) (ideation.UtilityScore, error) {
	est, err := s.judge.EstimateUtility(ctx, candidate, problem)
	if err != nil {
		return ideation.UtilityScore{}, err
	}

	value := weightFeasibility*est.Feasibility + weightRelevance*est.Relevance + weightImpact*est.Impact
	return ideation.UtilityScore{
		Value:       ideation.Clamp01(value),
		Feasibility: est.Feasibility,
		Relevance:   est.Relevance,
		Impact:      est.Impact,
	}, nil
}
