package generate

import (
	"context"
	"sync"

	"ideaforge/domain/concept"
	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
	"ideaforge/internal"
	"ideaforge/ports"
)

// Generation is the output of one generator run: assembled candidates plus
// the per-strategy drafting audits.
type Generation struct {
	Candidates []ideation.IdeaCandidate `json:"candidates"`
	Audits     []ports.DraftAudit       `json:"audits"`
	Failed     []ideation.Strategy      `json:"failed,omitempty"` // strategies whose call failed outright
}

// Generator turns a concept bridge into idea candidates by fanning out
// over combination strategies.
type Generator struct {
	drafter ports.DrafterPort
	log     *internal.Logger
}

// NewGenerator creates a candidate generator
func NewGenerator(drafter ports.DrafterPort, log *internal.Logger) *Generator {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Generator{drafter: drafter, log: log}
}

type strategyResult struct {
	result *ports.DraftResult
	err    error
}

// Generate produces up to perStrategy candidates for each requested
// strategy. Strategies are independent and run concurrently; the combined
// list is merged in strategy-list order so output is deterministic for a
// fixed input ordering. A failed strategy call degrades the batch, it
// never aborts it.
func (g *Generator) Generate(ctx context.Context, bridge concept.ConceptBridge, problem string, strategies []ideation.Strategy, perStrategy int) (*Generation, error) {
	if problem == "" {
		return nil, core.ErrEmptyProblem
	}
	if len(strategies) == 0 {
		strategies = ideation.AllStrategies
	}

	slots := make([]strategyResult, len(strategies))
	var wg sync.WaitGroup
	for i, strategy := range strategies {
		wg.Add(1)
		go func(slot int, s ideation.Strategy) {
			defer wg.Done()
			res, err := g.drafter.DraftIdeas(ctx, bridge, problem, s, perStrategy)
			slots[slot] = strategyResult{result: res, err: err}
		}(i, strategy)
	}
	wg.Wait()

	gen := &Generation{}
	for i, strategy := range strategies {
		slot := slots[i]
		if slot.err != nil {
			g.log.Warn("strategy %s drafting failed: %v", strategy, slot.err)
			gen.Failed = append(gen.Failed, strategy)
			continue
		}
		gen.Audits = append(gen.Audits, slot.result.Audit)
		for _, dropped := range slot.result.Audit.Dropped {
			g.log.Warn("strategy %s dropped draft %d: %s", strategy, dropped.DraftIndex, dropped.Message)
		}
		for _, draft := range slot.result.Drafts {
			cand := ideation.NewCandidate(draft.Description, draft.Mechanism, bridge, strategy)
			cand.NoveltySignals = draft.NoveltySignals
			cand.UtilitySignals = draft.UtilitySignals
			gen.Candidates = append(gen.Candidates, cand)
		}
	}

	return gen, nil
}
