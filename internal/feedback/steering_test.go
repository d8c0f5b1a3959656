package feedback

import (
	"context"
	"errors"
	"testing"

	"ideaforge/domain/concept"
	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
)

type stubExpander struct {
	queries []string
	err     error
	calls   int
}

func (s *stubExpander) ExpandQueries(ctx context.Context, problem string, signals ideation.FeedbackSignals, n int) ([]string, error) {
	s.calls++
	return s.queries, s.err
}

// signalsFor builds the signals of a single winner with the given combined
// score on one biology/software bridge.
func signalsFor(pairScore float64) ideation.FeedbackSignals {
	return ideation.FeedbackSignals{
		TopDomainPairs: []ideation.DomainPairScore{
			{DomainA: "biology", DomainB: "software", Score: pairScore},
		},
		TopLevels: []ideation.LevelScore{
			{Level: concept.LevelMeta, Score: pairScore},
		},
		MaxWinnerScore: pairScore,
		CreatedAt:      core.Now(),
	}
}

// TestApplySteeringBoostsWeights tests the multiplicative boost math
func TestApplySteeringBoostsWeights(t *testing.T) {
	steerer := NewSteerer(&stubExpander{queries: []string{"q1", "q2"}}, nil)
	cfg := ideation.NewRetrievalConfig([]string{"software", "biology"})

	next := steerer.ApplySteering(context.Background(), "problem", signalsFor(0.5), cfg)

	// 1.0 * (1 + 0.5*0.2) = 1.1
	if diff := next.DomainWeight("software") - 1.1; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected software weight 1.1, got %f", next.DomainWeight("software"))
	}
	if diff := next.DomainWeight("biology") - 1.1; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected biology weight 1.1, got %f", next.DomainWeight("biology"))
	}
	// 1.0 * (1 + 0.5*0.3) = 1.15
	if diff := next.LevelWeight(concept.LevelMeta) - 1.15; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected meta level weight 1.15, got %f", next.LevelWeight(concept.LevelMeta))
	}
	if len(next.ExpansionQueries) != 2 {
		t.Errorf("Expected 2 expansion queries, got %d", len(next.ExpansionQueries))
	}
}

// TestApplySteeringNeverMutatesCurrent tests single-writer semantics: the
// config consumed by the running iteration is never touched.
func TestApplySteeringNeverMutatesCurrent(t *testing.T) {
	steerer := NewSteerer(&stubExpander{queries: []string{"q"}}, nil)
	cfg := ideation.NewRetrievalConfig([]string{"software", "biology"})

	_ = steerer.ApplySteering(context.Background(), "problem", signalsFor(0.9), cfg)

	if cfg.DomainWeight("software") != 1.0 {
		t.Error("Expected current config untouched")
	}
	if len(cfg.ExpansionQueries) != 0 {
		t.Error("Expected current config queries untouched")
	}
}

// TestApplySteeringMonotonicityBound tests that one application changes no
// weight by more than factor (1 + maxScore*0.2) for domains.
func TestApplySteeringMonotonicityBound(t *testing.T) {
	steerer := NewSteerer(&stubExpander{}, nil)
	cfg := ideation.NewRetrievalConfig([]string{"software", "biology"})

	maxScore := 1.0
	next := steerer.ApplySteering(context.Background(), "problem", signalsFor(maxScore), cfg)

	bound := 1 + maxScore*0.2
	for domain, w := range next.DomainWeights {
		before := cfg.DomainWeight(domain)
		if w > before*bound+1e-9 {
			t.Errorf("Domain %s weight grew beyond bound: %f -> %f", domain, before, w)
		}
	}
}

// TestApplySteeringBoundWithAccumulatedPair tests the per-pass bound when
// several winners share one domain pair: the accumulated pair tally exceeds
// any single winner's score, but no weight moves past factor
// (1 + maxWinnerScore*0.2).
func TestApplySteeringBoundWithAccumulatedPair(t *testing.T) {
	steerer := NewSteerer(&stubExpander{}, nil)
	cfg := ideation.NewRetrievalConfig([]string{"software", "biology"})

	// Two winners on the same bridge, combined 0.95*0.95 = 0.9025 each.
	signals := AnalyzeWinners(frontierResult(
		winner("w1", "software", "biology", concept.LevelPattern, concept.LevelPattern, ideation.StrategyAnalogy, 0.95, 0.95),
		winner("w2", "software", "biology", concept.LevelPattern, concept.LevelPattern, ideation.StrategyBlend, 0.95, 0.95),
	))

	next := steerer.ApplySteering(context.Background(), "problem", signals, cfg)

	domainBound := 1 + signals.MaxWinnerScore*0.2
	for _, domain := range []string{"software", "biology"} {
		w := next.DomainWeight(domain)
		if w > domainBound+1e-9 {
			t.Errorf("Domain %s weight %f exceeds one-pass bound %f", domain, w, domainBound)
		}
		if w <= 1.0 {
			t.Errorf("Domain %s weight %f not boosted at all", domain, w)
		}
	}

	levelBound := 1 + signals.MaxWinnerScore*0.3
	if w := next.LevelWeight(concept.LevelPattern); w > levelBound+1e-9 {
		t.Errorf("Level weight %f exceeds one-pass bound %f", w, levelBound)
	}
}

// TestApplySteeringBoundWithSharedDomain tests the per-pass bound when one
// domain sits in several top pairs and would otherwise be boosted once per
// pair.
func TestApplySteeringBoundWithSharedDomain(t *testing.T) {
	steerer := NewSteerer(&stubExpander{}, nil)
	cfg := ideation.NewRetrievalConfig([]string{"software", "biology", "music"})

	signals := ideation.FeedbackSignals{
		TopDomainPairs: []ideation.DomainPairScore{
			{DomainA: "biology", DomainB: "software", Score: 0.9},
			{DomainA: "music", DomainB: "software", Score: 0.9},
		},
		MaxWinnerScore: 0.9,
		CreatedAt:      core.Now(),
	}

	next := steerer.ApplySteering(context.Background(), "problem", signals, cfg)

	bound := 1 + 0.9*0.2
	if w := next.DomainWeight("software"); w > bound+1e-9 {
		t.Errorf("Shared domain weight %f exceeds one-pass bound %f", w, bound)
	}
	if w := next.DomainWeight("biology"); w > bound+1e-9 {
		t.Errorf("Domain weight %f exceeds one-pass bound %f", w, bound)
	}
}

// TestApplySteeringClamps tests that repeated feedback cannot push weights
// past the configured bounds.
func TestApplySteeringClamps(t *testing.T) {
	steerer := NewSteerer(&stubExpander{}, nil)
	cfg := ideation.NewRetrievalConfig([]string{"software", "biology"})

	for i := 0; i < 200; i++ {
		cfg = steerer.ApplySteering(context.Background(), "problem", signalsFor(1.0), cfg)
	}

	for domain, w := range cfg.DomainWeights {
		if w > ideation.MaxWeight {
			t.Errorf("Domain %s weight exceeded max: %f", domain, w)
		}
	}
	for level, w := range cfg.LevelWeights {
		if w > ideation.MaxWeight {
			t.Errorf("Level %s weight exceeded max: %f", level, w)
		}
	}
}

// TestApplySteeringEmptySignals tests that an empty frontier leaves the
// config unchanged and skips query expansion.
func TestApplySteeringEmptySignals(t *testing.T) {
	expander := &stubExpander{queries: []string{"should not be used"}}
	steerer := NewSteerer(expander, nil)
	cfg := ideation.NewRetrievalConfig([]string{"software", "biology"})
	cfg.ExpansionQueries = []string{"existing"}

	next := steerer.ApplySteering(context.Background(), "problem", ideation.FeedbackSignals{}, cfg)

	if next.DomainWeight("software") != 1.0 {
		t.Error("Expected weights unchanged on empty signals")
	}
	if len(next.ExpansionQueries) != 1 || next.ExpansionQueries[0] != "existing" {
		t.Error("Expected queries unchanged on empty signals")
	}
	if expander.calls != 0 {
		t.Error("Expected no expansion call on empty signals")
	}
}

// TestApplySteeringExpanderFailure tests that expansion failure is advisory
func TestApplySteeringExpanderFailure(t *testing.T) {
	steerer := NewSteerer(&stubExpander{err: errors.New("service down")}, nil)
	cfg := ideation.NewRetrievalConfig([]string{"software", "biology"})
	cfg.ExpansionQueries = []string{"previous"}

	next := steerer.ApplySteering(context.Background(), "problem", signalsFor(0.5), cfg)

	// Weights still updated, queries kept.
	if next.DomainWeight("software") == 1.0 {
		t.Error("Expected weights updated despite expansion failure")
	}
	if len(next.ExpansionQueries) != 1 || next.ExpansionQueries[0] != "previous" {
		t.Error("Expected previous queries kept on expansion failure")
	}
}
