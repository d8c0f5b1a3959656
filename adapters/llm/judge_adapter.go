package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
	"ideaforge/ports"
)

// JudgeAdapter implements UtilityJudgePort using LLM. It issues one
// structured call per utility sub-signal so the three estimates stay
// independent.
type JudgeAdapter struct {
	config Config
	client ports.LLMClient
}

// NewJudgeAdapter creates a new LLM utility judge
func NewJudgeAdapter(config Config, client ports.LLMClient) *JudgeAdapter {
	return &JudgeAdapter{config: config, client: client}
}

type scoreResponse struct {
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

// EstimateUtility asks for feasibility, relevance, and impact, each in [0,1]
func (a *JudgeAdapter) EstimateUtility(ctx context.Context, candidate ideation.IdeaCandidate, problem string) (ports.UtilityEstimate, error) {
	feasibility, err := a.askScore(ctx, candidate, problem,
		"feasibility: can this be built today, given technical maturity, resource availability, and implementation clarity?")
	if err != nil {
		return ports.UtilityEstimate{}, err
	}

	relevance, err := a.askScore(ctx, candidate, problem,
		"relevance: does this idea address the stated problem's root cause rather than a symptom?")
	if err != nil {
		return ports.UtilityEstimate{}, err
	}

	impact, err := a.askScore(ctx, candidate, problem,
		"impact: if it works, how significant is the expected improvement?")
	if err != nil {
		return ports.UtilityEstimate{}, err
	}

	return ports.UtilityEstimate{
		Feasibility: feasibility,
		Relevance:   relevance,
		Impact:      impact,
	}, nil
}

func (a *JudgeAdapter) askScore(ctx context.Context, candidate ideation.IdeaCandidate, problem, criterion string) (float64, error) {
	prompt := fmt.Sprintf(`Rate the following idea on one criterion.

Problem statement:
%s

Idea: %s
Mechanism: %s

Criterion - %s

Output ONLY a JSON object: {"score": <0.0-1.0>, "rationale": "<one sentence>"}`,
		problem, candidate.Description, candidate.Mechanism, criterion)

	response, err := a.client.ChatCompletion(ctx, a.config.Model, prompt, a.config.MaxTokens)
	if err != nil {
		return 0, fmt.Errorf("utility call failed: %w", err)
	}

	var decoded scoreResponse
	if err := json.Unmarshal([]byte(extractJSON(response)), &decoded); err != nil {
		return 0, core.NewMalformedResponseError("utility score", err)
	}
	if decoded.Score < 0 || decoded.Score > 1 {
		return 0, core.NewMalformedResponseError("utility score",
			fmt.Errorf("score %f outside [0,1]", decoded.Score))
	}
	return decoded.Score, nil
}
