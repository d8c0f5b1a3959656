package feedback

import (
	"testing"

	"ideaforge/domain/concept"
	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
)

func winner(id string, domainA, domainB string, levelA, levelB concept.AbstractionLevel, strategy ideation.Strategy, novelty, utility float64) ideation.ScoredCandidate {
	bridge := concept.NewBridge(
		concept.BridgeSide{Domain: domainA, Label: concept.LabelFeedbackRegulation, Level: levelA},
		concept.BridgeSide{Domain: domainB, Label: concept.LabelGradientFollowing, Level: levelB},
	)
	return ideation.NewScoredCandidate(
		ideation.IdeaCandidate{ID: core.CandidateID(id), Bridge: bridge, Strategy: strategy},
		ideation.NoveltyScore{Value: novelty},
		ideation.UtilityScore{Value: utility},
	)
}

func frontierResult(winners ...ideation.ScoredCandidate) ideation.ParetoResult {
	return ideation.ParetoResult{
		Frontier: winners,
		Stats:    ideation.FrontierStats{FrontierSize: len(winners)},
	}
}

// TestAnalyzeWinnersEmptyFrontier tests that an empty frontier yields empty signals
func TestAnalyzeWinnersEmptyFrontier(t *testing.T) {
	signals := AnalyzeWinners(ideation.ParetoResult{})

	if !signals.IsEmpty() {
		t.Error("Expected empty signals for empty frontier")
	}
	if signals.CreatedAt.IsZero() {
		t.Error("Expected timestamp even on empty signals")
	}
}

// TestAnalyzeWinnersAggregation tests score-weighted tallies per domain pair,
// level, and strategy.
func TestAnalyzeWinnersAggregation(t *testing.T) {
	result := frontierResult(
		winner("w1", "software", "biology", concept.LevelPattern, concept.LevelAbstract, ideation.StrategyAnalogy, 0.8, 0.5),
		winner("w2", "software", "biology", concept.LevelPattern, concept.LevelPattern, ideation.StrategyAnalogy, 0.6, 0.5),
		winner("w3", "software", "music", concept.LevelMeta, concept.LevelMeta, ideation.StrategyInvert, 0.4, 0.5),
	)

	signals := AnalyzeWinners(result)

	if len(signals.TopDomainPairs) != 2 {
		t.Fatalf("Expected 2 domain pairs, got %d", len(signals.TopDomainPairs))
	}
	top := signals.TopDomainPairs[0]
	if top.DomainA != "biology" || top.DomainB != "software" {
		t.Errorf("Expected canonical (biology, software) first, got (%s, %s)", top.DomainA, top.DomainB)
	}
	// w1 combined 0.4 + w2 combined 0.3.
	if diff := top.Score - 0.7; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected pair score 0.7, got %f", top.Score)
	}

	if diff := signals.MaxWinnerScore - 0.4; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected max winner score 0.4, got %f", signals.MaxWinnerScore)
	}

	if len(signals.TopStrategies) != 2 {
		t.Fatalf("Expected 2 strategies, got %d", len(signals.TopStrategies))
	}
	if signals.TopStrategies[0].Strategy != ideation.StrategyAnalogy {
		t.Errorf("Expected analogy strategy first, got %s", signals.TopStrategies[0].Strategy)
	}

	if len(signals.TopLevels) == 0 || signals.TopLevels[0].Level != concept.LevelPattern {
		t.Errorf("Expected pattern level first, got %+v", signals.TopLevels)
	}
}

// TestAnalyzeWinnersLevelCountedOncePerBridge tests that a same-level bridge
// contributes its level weight once, not twice.
func TestAnalyzeWinnersLevelCountedOncePerBridge(t *testing.T) {
	result := frontierResult(
		winner("w1", "software", "biology", concept.LevelMeta, concept.LevelMeta, ideation.StrategyBlend, 0.5, 0.5),
	)

	signals := AnalyzeWinners(result)

	if len(signals.TopLevels) != 1 {
		t.Fatalf("Expected 1 level entry, got %d", len(signals.TopLevels))
	}
	if diff := signals.TopLevels[0].Score - 0.25; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected level score 0.25 counted once, got %f", signals.TopLevels[0].Score)
	}
}

// TestAnalyzeWinnersCaps tests the top-N caps on each signal list
func TestAnalyzeWinnersCaps(t *testing.T) {
	domains := []string{"a", "b", "c", "d", "e", "f", "g"}
	winners := []ideation.ScoredCandidate{}
	for i, d := range domains {
		winners = append(winners,
			winner("w"+d, "hub", d, concept.LevelConcrete, concept.LevelPattern,
				ideation.AllStrategies[i%len(ideation.AllStrategies)], 0.5, 0.5))
	}

	signals := AnalyzeWinners(frontierResult(winners...))

	if len(signals.TopDomainPairs) > 5 {
		t.Errorf("Expected at most 5 domain pairs, got %d", len(signals.TopDomainPairs))
	}
	if len(signals.TopLevels) > 3 {
		t.Errorf("Expected at most 3 levels, got %d", len(signals.TopLevels))
	}
	if len(signals.TopStrategies) > 3 {
		t.Errorf("Expected at most 3 strategies, got %d", len(signals.TopStrategies))
	}
}

// TestAnalyzeWinnersDeterministic tests stable ordering on tied scores
func TestAnalyzeWinnersDeterministic(t *testing.T) {
	result := frontierResult(
		winner("w1", "software", "biology", concept.LevelPattern, concept.LevelAbstract, ideation.StrategyAnalogy, 0.5, 0.5),
		winner("w2", "music", "urbanism", concept.LevelPattern, concept.LevelAbstract, ideation.StrategyBlend, 0.5, 0.5),
	)

	first := AnalyzeWinners(result)
	for i := 0; i < 10; i++ {
		again := AnalyzeWinners(result)
		for j := range first.TopDomainPairs {
			if again.TopDomainPairs[j] != first.TopDomainPairs[j] {
				t.Fatal("Domain pair ordering changed across runs")
			}
		}
	}
	// Tied pairs order lexicographically.
	if first.TopDomainPairs[0].DomainA != "biology" {
		t.Errorf("Expected (biology, software) first on tie, got %+v", first.TopDomainPairs[0])
	}
}
