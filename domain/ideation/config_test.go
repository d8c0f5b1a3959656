package ideation

import (
	"testing"

	"ideaforge/domain/concept"
)

// TestNewRetrievalConfigUniform tests that fresh configs start at weight 1.0
func TestNewRetrievalConfigUniform(t *testing.T) {
	cfg := NewRetrievalConfig([]string{"software", "biology"})

	if cfg.DomainWeight("software") != 1.0 || cfg.DomainWeight("biology") != 1.0 {
		t.Error("Expected uniform domain weights of 1.0")
	}
	for _, level := range concept.AllLevels {
		if cfg.LevelWeight(level) != 1.0 {
			t.Errorf("Expected level %s weight 1.0, got %f", level, cfg.LevelWeight(level))
		}
	}
}

// TestWeightDefaults tests the default weight for unseen keys
func TestWeightDefaults(t *testing.T) {
	cfg := NewRetrievalConfig([]string{"software"})
	if cfg.DomainWeight("astronomy") != 1.0 {
		t.Error("Expected unseen domain to default to weight 1.0")
	}
}

// TestSnapshotIsDeepCopy tests snapshot isolation from later writes
func TestSnapshotIsDeepCopy(t *testing.T) {
	cfg := NewRetrievalConfig([]string{"software", "biology"})
	cfg.ExpansionQueries = []string{"initial query"}

	snap := cfg.Snapshot()
	cfg.DomainWeights["software"] = 5.0
	cfg.LevelWeights[concept.LevelMeta] = 3.0
	cfg.ExpansionQueries[0] = "mutated"

	if snap.DomainWeight("software") != 1.0 {
		t.Error("Expected snapshot domain weights isolated from writer")
	}
	if snap.LevelWeight(concept.LevelMeta) != 1.0 {
		t.Error("Expected snapshot level weights isolated from writer")
	}
	if snap.ExpansionQueries[0] != "initial query" {
		t.Error("Expected snapshot queries isolated from writer")
	}
}

// TestClampWeight tests weight bounds
func TestClampWeight(t *testing.T) {
	if ClampWeight(0.01) != MinWeight {
		t.Errorf("Expected floor %f", MinWeight)
	}
	if ClampWeight(100) != MaxWeight {
		t.Errorf("Expected ceiling %f", MaxWeight)
	}
	if ClampWeight(2.5) != 2.5 {
		t.Error("Expected in-range weight unchanged")
	}
}
