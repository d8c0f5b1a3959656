package generate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ideaforge/domain/concept"
	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
	"ideaforge/ports"
)

type stubDrafter struct {
	perStrategy int
	failFor     map[ideation.Strategy]bool
	dropped     map[ideation.Strategy][]ports.DroppedDraft
}

func (s *stubDrafter) DraftIdeas(ctx context.Context, bridge concept.ConceptBridge, problem string, strategy ideation.Strategy, n int) (*ports.DraftResult, error) {
	if s.failFor[strategy] {
		return nil, errors.New("drafting failed")
	}
	count := s.perStrategy
	if count == 0 {
		count = n
	}
	drafts := make([]ports.IdeaDraft, count)
	for i := range drafts {
		drafts[i] = ports.IdeaDraft{
			Description: fmt.Sprintf("%s idea %d", strategy, i),
			Mechanism:   "mechanism",
		}
	}
	return &ports.DraftResult{
		Drafts: drafts,
		Audit:  ports.DraftAudit{Strategy: strategy, Dropped: s.dropped[strategy]},
	}, nil
}

func testBridge() concept.ConceptBridge {
	return concept.NewBridge(
		concept.BridgeSide{Concept: "a", Domain: "software", Label: concept.LabelDispatchRouting},
		concept.BridgeSide{Concept: "b", Domain: "biology", Label: concept.LabelSignalPropagation},
	)
}

// TestGenerateEmptyProblem tests the empty-problem guard
func TestGenerateEmptyProblem(t *testing.T) {
	gen := NewGenerator(&stubDrafter{}, nil)
	_, err := gen.Generate(context.Background(), testBridge(), "", nil, 2)
	if !errors.Is(err, core.ErrEmptyProblem) {
		t.Fatalf("Expected empty-problem error, got %v", err)
	}
}

// TestGenerateAllStrategiesDefault tests that nil strategies means all five
func TestGenerateAllStrategiesDefault(t *testing.T) {
	gen := NewGenerator(&stubDrafter{perStrategy: 2}, nil)

	result, err := gen.Generate(context.Background(), testBridge(), "problem", nil, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Candidates) != 2*len(ideation.AllStrategies) {
		t.Errorf("Expected %d candidates, got %d", 2*len(ideation.AllStrategies), len(result.Candidates))
	}
	if len(result.Audits) != len(ideation.AllStrategies) {
		t.Errorf("Expected %d audits, got %d", len(ideation.AllStrategies), len(result.Audits))
	}
}

// TestGenerateDeterministicMergeOrder tests that candidates come back in
// strategy-list order despite concurrent drafting.
func TestGenerateDeterministicMergeOrder(t *testing.T) {
	gen := NewGenerator(&stubDrafter{perStrategy: 1}, nil)
	strategies := []ideation.Strategy{ideation.StrategyScale, ideation.StrategyAnalogy, ideation.StrategyBlend}

	for run := 0; run < 10; run++ {
		result, err := gen.Generate(context.Background(), testBridge(), "problem", strategies, 1)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(result.Candidates) != 3 {
			t.Fatalf("Expected 3 candidates, got %d", len(result.Candidates))
		}
		for i, strategy := range strategies {
			if result.Candidates[i].Strategy != strategy {
				t.Fatalf("Expected strategy %s at position %d, got %s", strategy, i, result.Candidates[i].Strategy)
			}
		}
	}
}

// TestGenerateFailedStrategyDegrades tests that one failing strategy shrinks
// the batch without aborting it.
func TestGenerateFailedStrategyDegrades(t *testing.T) {
	drafter := &stubDrafter{
		perStrategy: 1,
		failFor:     map[ideation.Strategy]bool{ideation.StrategyInvert: true},
	}
	gen := NewGenerator(drafter, nil)

	result, err := gen.Generate(context.Background(), testBridge(), "problem", ideation.AllStrategies, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Candidates) != len(ideation.AllStrategies)-1 {
		t.Errorf("Expected %d candidates, got %d", len(ideation.AllStrategies)-1, len(result.Candidates))
	}
	if len(result.Failed) != 1 || result.Failed[0] != ideation.StrategyInvert {
		t.Errorf("Expected invert recorded as failed, got %v", result.Failed)
	}
}

// TestGenerateCarriesBridgeAndIDs tests candidate assembly
func TestGenerateCarriesBridgeAndIDs(t *testing.T) {
	gen := NewGenerator(&stubDrafter{perStrategy: 2}, nil)
	bridge := testBridge()

	result, err := gen.Generate(context.Background(), bridge, "problem", []ideation.Strategy{ideation.StrategyAnalogy}, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	seen := map[core.CandidateID]bool{}
	for _, cand := range result.Candidates {
		if cand.ID == "" {
			t.Error("Expected candidate ID assigned")
		}
		if seen[cand.ID] {
			t.Error("Expected unique candidate IDs")
		}
		seen[cand.ID] = true
		if cand.Bridge.A.Concept != bridge.A.Concept {
			t.Error("Expected bridge carried on candidate")
		}
		if cand.CreatedAt.IsZero() {
			t.Error("Expected creation timestamp")
		}
	}
}
