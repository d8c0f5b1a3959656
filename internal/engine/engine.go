package engine

import (
	"context"
	"fmt"
	"sort"

	"ideaforge/domain/concept"
	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
	"ideaforge/internal"
	"ideaforge/internal/feedback"
	"ideaforge/internal/generate"
	"ideaforge/internal/index"
	"ideaforge/internal/pareto"
	"ideaforge/internal/score"
	"ideaforge/internal/session"
	"ideaforge/internal/translate"
	"ideaforge/ports"
)

// defaultMaxBridges caps how many cross-domain matches seed bridge builds
// per iteration. Each bridge fans out into per-strategy drafting calls, so
// this is the main cost knob of an iteration.
const defaultMaxBridges = 4

// Notifier receives progress callbacks as iterations complete. Used to
// stream run progress to connected observers.
type Notifier interface {
	IterationCompleted(sessionID core.SessionID, sequence int, result ideation.ParetoResult)
}

// Engine runs the ideation loop: retrieve cross-domain matches, build
// concept bridges, draft candidates per strategy, score them on both axes,
// select the Pareto frontier, and steer the next iteration's retrieval
// from what won.
type Engine struct {
	index      *index.Index
	bridges    *translate.Builder
	generator  *generate.Generator
	scorer     *score.BatchScorer
	selector   *pareto.Selector
	steerer    *feedback.Steerer
	iterations ports.IterationRepository
	log        *internal.Logger

	perStrategy int
	maxBridges  int
	notifier    Notifier
}

// NewEngine wires the pipeline stages together. The iteration repository
// may be nil; persistence is then skipped.
func NewEngine(ix *index.Index, bridges *translate.Builder, gen *generate.Generator, scorer *score.BatchScorer, selector *pareto.Selector, steerer *feedback.Steerer, iterations ports.IterationRepository, perStrategy int, log *internal.Logger) *Engine {
	if perStrategy <= 0 {
		perStrategy = 3
	}
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Engine{
		index:       ix,
		bridges:     bridges,
		generator:   gen,
		scorer:      scorer,
		selector:    selector,
		steerer:     steerer,
		iterations:  iterations,
		log:         log,
		perStrategy: perStrategy,
		maxBridges:  defaultMaxBridges,
	}
}

// SetMaxBridges overrides the per-iteration bridge cap
func (e *Engine) SetMaxBridges(n int) {
	if n > 0 {
		e.maxBridges = n
	}
}

// SetNotifier attaches a progress observer
func (e *Engine) SetNotifier(n Notifier) {
	e.notifier = n
}

type bridgeSeed struct {
	match    concept.CrossDomainMatch
	weighted float64
}

// collectSeeds retrieves cross-domain matches for the problem and every
// active expansion query, at every abstraction level, and keeps the
// strongest per target concept. Level weights from the config snapshot
// bias which levels contribute seeds.
func (e *Engine) collectSeeds(ctx context.Context, problem string, domains []string, cfg *ideation.RetrievalConfig) ([]bridgeSeed, error) {
	sourceDomain := domains[0]
	targetDomains := domains[1:]

	queries := append([]string{problem}, cfg.ExpansionQueries...)

	seen := map[string]int{} // target domain+concept -> index in seeds
	seeds := []bridgeSeed{}
	for _, query := range queries {
		for _, level := range concept.AllLevels {
			matches, err := e.index.RetrieveCrossDomain(ctx, query, sourceDomain, targetDomains, level, cfg)
			if err != nil {
				return nil, err
			}
			levelWeight := cfg.LevelWeight(level)
			for _, m := range matches {
				key := m.TargetDomain + "\x00" + m.TargetConcept
				weighted := levelWeight * m.Similarity
				if i, ok := seen[key]; ok {
					if weighted > seeds[i].weighted {
						seeds[i] = bridgeSeed{match: m, weighted: weighted}
					}
					continue
				}
				seen[key] = len(seeds)
				seeds = append(seeds, bridgeSeed{match: m, weighted: weighted})
			}
		}
	}

	sort.SliceStable(seeds, func(i, j int) bool {
		return seeds[i].weighted > seeds[j].weighted
	})
	if len(seeds) > e.maxBridges {
		seeds = seeds[:e.maxBridges]
	}
	return seeds, nil
}

// RunIteration executes one full pipeline pass against a config snapshot
// and returns the iteration artifacts plus the steered config for the next
// pass. A failed bridge or strategy degrades the batch; only retrieval
// being unavailable or an empty candidate pipeline input aborts.
func (e *Engine) RunIteration(ctx context.Context, sessionID core.SessionID, sequence int, problem string, domains []string, cfg *ideation.RetrievalConfig) (*ports.IterationRecord, *ideation.RetrievalConfig, error) {
	if problem == "" {
		return nil, nil, core.ErrEmptyProblem
	}
	if len(domains) < 2 {
		return nil, nil, fmt.Errorf("%w: need a source domain and at least one target", core.ErrInvalidDomain)
	}

	snap := cfg.Snapshot()

	seeds, err := e.collectSeeds(ctx, problem, domains, snap)
	if err != nil {
		return nil, nil, err
	}
	e.log.Info("iteration %d: %d bridge seeds from %d domains", sequence, len(seeds), len(domains))

	candidates := []ideation.IdeaCandidate{}
	audits := []ports.DraftAudit{}
	for _, seed := range seeds {
		m := seed.match
		bridge, err := e.bridges.BuildBridge(ctx,
			translate.BridgeTerm{Concept: m.SourceConcept, Domain: m.SourceDomain, Level: m.Level},
			translate.BridgeTerm{Concept: m.TargetConcept, Domain: m.TargetDomain, Level: m.Level},
		)
		if err != nil {
			e.log.Warn("bridge %s <-> %s failed: %v", m.SourceDomain, m.TargetDomain, err)
			continue
		}

		gen, err := e.generator.Generate(ctx, bridge, problem, nil, e.perStrategy)
		if err != nil {
			return nil, nil, err
		}
		candidates = append(candidates, gen.Candidates...)
		audits = append(audits, gen.Audits...)
		for _, failed := range gen.Failed {
			e.log.Warn("strategy %s failed for bridge %s <-> %s", failed, m.SourceDomain, m.TargetDomain)
		}
	}

	scored := e.scorer.ScoreBatch(ctx, candidates, problem)
	result := e.selector.Select(scored)
	signals := feedback.AnalyzeWinners(result)
	next := e.steerer.ApplySteering(ctx, problem, signals, cfg)

	rec := &ports.IterationRecord{
		ID:        core.IterationID(core.NewID()),
		SessionID: sessionID,
		Sequence:  sequence,
		Attempted: len(candidates),
		Scored:    scored,
		Result:    result,
		Signals:   signals,
		Audits:    audits,
		CreatedAt: core.Now(),
	}
	if e.iterations != nil {
		if err := e.iterations.Save(ctx, rec); err != nil {
			e.log.Warn("persist iteration %d: %v", sequence, err)
		}
	}
	if e.notifier != nil {
		e.notifier.IterationCompleted(sessionID, sequence, result)
	}

	e.log.Info("iteration %d: %d attempted, %d scored, frontier %d",
		sequence, len(candidates), len(scored), result.Stats.FrontierSize)
	return rec, next, nil
}

// RunSummary aggregates a multi-iteration run.
type RunSummary struct {
	SessionID  core.SessionID             `json:"session_id"`
	Iterations int                        `json:"iterations"`
	Attempted  int                        `json:"attempted"`
	Scored     int                        `json:"scored"`
	Frontier   []ideation.ScoredCandidate `json:"frontier"` // final iteration's frontier
	Config     *ideation.RetrievalConfig  `json:"config"`   // steering state after the last pass
}

// String renders the one-line archive summary
func (s *RunSummary) String() string {
	best := 0.0
	if len(s.Frontier) > 0 {
		best = s.Frontier[0].Combined
	}
	return fmt.Sprintf("%d iterations, %d candidates scored of %d attempted, final frontier %d, best combined %.2f",
		s.Iterations, s.Scored, s.Attempted, len(s.Frontier), best)
}

// Run executes the loop sequentially for a fixed number of iterations,
// threading the steered config from each pass into the next. The first
// pass retrieves with topic-derived seed queries; later passes use the
// generative queries installed by steering.
func (e *Engine) Run(ctx context.Context, sessionID core.SessionID, topic, problem string, domains []string, iterations int) (*RunSummary, error) {
	if iterations <= 0 {
		iterations = 1
	}

	cfg := ideation.NewRetrievalConfig(domains)
	cfg.ExpansionQueries = session.SeedQueries(topic)
	summary := &RunSummary{SessionID: sessionID}

	for seq := 1; seq <= iterations; seq++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		rec, next, err := e.RunIteration(ctx, sessionID, seq, problem, domains, cfg)
		if err != nil {
			return summary, fmt.Errorf("iteration %d: %w", seq, err)
		}

		summary.Iterations = seq
		summary.Attempted += rec.Attempted
		summary.Scored += len(rec.Scored)
		summary.Frontier = rec.Result.Frontier
		cfg = next
	}

	summary.Config = cfg
	return summary, nil
}
