package ports

import (
	"context"

	"ideaforge/domain/ideation"
)

// UtilityEstimate carries the three utility sub-signals, each in [0,1].
type UtilityEstimate struct {
	Feasibility float64 `json:"feasibility"`
	Relevance   float64 `json:"relevance"`
	Impact      float64 `json:"impact"`
}

// UtilityJudgePort asks the generative service for the three utility
// sub-signals of a candidate against the stated problem.
type UtilityJudgePort interface {
	EstimateUtility(ctx context.Context, candidate ideation.IdeaCandidate, problem string) (UtilityEstimate, error)
}

// QueryExpanderPort derives new expansion queries describing productive
// adjacent directions from the winning signals of one iteration.
type QueryExpanderPort interface {
	ExpandQueries(ctx context.Context, problem string, signals ideation.FeedbackSignals, n int) ([]string, error)
}
