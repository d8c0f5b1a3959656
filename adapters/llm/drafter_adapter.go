package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ideaforge/domain/concept"
	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
	"ideaforge/ports"
)

// DrafterAdapter implements DrafterPort using LLM
type DrafterAdapter struct {
	config Config
	client ports.LLMClient
}

// NewDrafterAdapter creates a new LLM drafter adapter
func NewDrafterAdapter(config Config, client ports.LLMClient) *DrafterAdapter {
	return &DrafterAdapter{config: config, client: client}
}

// rawDraft is the raw LLM response structure for one draft
type rawDraft struct {
	Description    string   `json:"description"`
	Mechanism      string   `json:"mechanism"`
	NoveltySignals []string `json:"novelty_signals"`
	UtilitySignals []string `json:"utility_signals"`
}

// strategyInstruction returns the combination directive for one strategy
func strategyInstruction(s ideation.Strategy) string {
	switch s {
	case ideation.StrategyAnalogy:
		return "Map the mechanism behind concept A onto concept B's problem space by structural analogy."
	case ideation.StrategyBlend:
		return "Fuse the mechanisms of concept A and concept B into a single hybrid mechanism."
	case ideation.StrategyTransfer:
		return "Relocate concept A's working solution wholesale into concept B's context."
	case ideation.StrategyInvert:
		return "Apply the inverse of concept A's mechanism to concept B's context."
	case ideation.StrategyScale:
		return "Change the operating scale of the shared mechanism by at least two orders of magnitude."
	default:
		return "Combine the two concepts into a new idea."
	}
}

// DraftIdeas generates up to n idea drafts for one bridge and strategy.
// Malformed drafts are dropped with an audit record, not fatal to the batch.
func (a *DrafterAdapter) DraftIdeas(ctx context.Context, bridge concept.ConceptBridge, problem string, strategy ideation.Strategy, n int) (*ports.DraftResult, error) {
	prompt := a.buildPrompt(bridge, problem, strategy, n)
	promptHash := core.NewHash([]byte(prompt))

	response, err := a.client.ChatCompletion(ctx, a.config.Model, prompt, a.config.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("draft call failed: %w", err)
	}
	responseHash := core.NewHash([]byte(response))

	var raw []rawDraft
	if err := json.Unmarshal([]byte(extractJSON(response)), &raw); err != nil {
		return nil, core.NewMalformedResponseError("idea drafts", err)
	}

	drafts := []ports.IdeaDraft{}
	dropped := []ports.DroppedDraft{}
	for i, d := range raw {
		if strings.TrimSpace(d.Description) == "" {
			dropped = append(dropped, ports.DroppedDraft{
				DraftIndex: i,
				Reason:     "missing_description",
				Message:    "Draft dropped: empty description",
			})
			continue
		}
		if strings.TrimSpace(d.Mechanism) == "" {
			dropped = append(dropped, ports.DroppedDraft{
				DraftIndex: i,
				Reason:     "missing_mechanism",
				Message:    fmt.Sprintf("Draft dropped: %q has no mechanism", d.Description),
			})
			continue
		}
		drafts = append(drafts, ports.IdeaDraft{
			Description:    d.Description,
			Mechanism:      d.Mechanism,
			NoveltySignals: d.NoveltySignals,
			UtilitySignals: d.UtilitySignals,
		})
		if len(drafts) == n {
			break
		}
	}

	return &ports.DraftResult{
		Drafts: drafts,
		Audit: ports.DraftAudit{
			Strategy:     strategy,
			Model:        a.config.Model,
			PromptHash:   promptHash,
			ResponseHash: responseHash,
			Dropped:      dropped,
		},
	}, nil
}

func (a *DrafterAdapter) buildPrompt(bridge concept.ConceptBridge, problem string, strategy ideation.Strategy, n int) string {
	return fmt.Sprintf(`You are an inventive engineer generating idea candidates from a cross-domain concept bridge.

Problem statement:
%s

Concept A: %q (domain: %s, shared concept: %s, abstraction: %s)
Concept B: %q (domain: %s, shared concept: %s, abstraction: %s)
Bridge strength: %.2f

Combination strategy (%s): %s

Generate up to %d idea candidates. Each MUST be JSON with:
- description: one-sentence idea summary
- mechanism: 2-3 sentences on how it works
- novelty_signals: array of short phrases naming what is new about it
- utility_signals: array of short phrases naming why it is useful for the problem

Output ONLY a JSON array of candidates, no other text.`,
		problem,
		bridge.A.Concept, bridge.A.Domain, bridge.A.Label, bridge.A.Level,
		bridge.B.Concept, bridge.B.Domain, bridge.B.Label, bridge.B.Level,
		bridge.Strength,
		strategy, strategyInstruction(strategy),
		n)
}
