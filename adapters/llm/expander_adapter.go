package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
	"ideaforge/ports"
)

// ExpanderAdapter implements QueryExpanderPort using LLM
type ExpanderAdapter struct {
	config Config
	client ports.LLMClient
}

// NewExpanderAdapter creates a new LLM query expander
func NewExpanderAdapter(config Config, client ports.LLMClient) *ExpanderAdapter {
	return &ExpanderAdapter{config: config, client: client}
}

// ExpandQueries derives n expansion queries describing productive adjacent
// directions from the winning signals of one iteration.
func (a *ExpanderAdapter) ExpandQueries(ctx context.Context, problem string, signals ideation.FeedbackSignals, n int) ([]string, error) {
	pairs := make([]string, 0, len(signals.TopDomainPairs))
	for _, p := range signals.TopDomainPairs {
		pairs = append(pairs, fmt.Sprintf("%s + %s (score %.2f)", p.DomainA, p.DomainB, p.Score))
	}
	strategies := make([]string, 0, len(signals.TopStrategies))
	for _, s := range signals.TopStrategies {
		strategies = append(strategies, s.Strategy.String())
	}

	prompt := fmt.Sprintf(`The last round of idea generation produced its best results from these signals.

Problem statement:
%s

Winning domain pairs: %s
Winning strategies: %s

Propose %d short search queries for concepts adjacent to these winning directions.

Output ONLY a JSON array of strings.`,
		problem, strings.Join(pairs, "; "), strings.Join(strategies, ", "), n)

	response, err := a.client.ChatCompletion(ctx, a.config.Model, prompt, a.config.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("expansion call failed: %w", err)
	}

	var queries []string
	if err := json.Unmarshal([]byte(extractJSON(response)), &queries); err != nil {
		return nil, core.NewMalformedResponseError("expansion queries", err)
	}

	out := make([]string, 0, n)
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		out = append(out, q)
		if len(out) == n {
			break
		}
	}
	return out, nil
}
