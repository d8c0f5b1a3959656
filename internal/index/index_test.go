package index

import (
	"context"
	"math"
	"testing"

	"ideaforge/domain/concept"
	"ideaforge/domain/core"
)

// stubEmbedder returns a fixed vector per known text
type stubEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float64{1, 0, 0}, nil
}

// stubClassifier returns a fixed level per known text
type stubClassifier struct {
	levels map[string]concept.AbstractionLevel
	err    error
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (concept.AbstractionLevel, error) {
	if s.err != nil {
		return 0, s.err
	}
	if l, ok := s.levels[text]; ok {
		return l, nil
	}
	return concept.LevelPattern, nil
}

func newTestIndex(vectors map[string][]float64, levels map[string]concept.AbstractionLevel) *Index {
	return New(&stubEmbedder{vectors: vectors}, &stubClassifier{levels: levels})
}

// TestIndexStoresAtClassifiedLevel tests the classify-embed-store path
func TestIndexStoresAtClassifiedLevel(t *testing.T) {
	ix := newTestIndex(
		map[string][]float64{"backpressure": {0, 1, 0}},
		map[string]concept.AbstractionLevel{"backpressure": concept.LevelAbstract},
	)

	node, err := ix.Index(context.Background(), "backpressure", "seed", "software")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if node.Level != concept.LevelAbstract {
		t.Errorf("Expected abstract level, got %s", node.Level)
	}
	if node.ID == "" {
		t.Error("Expected a concept ID")
	}
	if ix.Size(concept.LevelAbstract) != 1 {
		t.Errorf("Expected 1 concept at abstract level, got %d", ix.Size(concept.LevelAbstract))
	}
	if ix.Size(concept.LevelConcrete) != 0 {
		t.Error("Expected no concepts at other levels")
	}
}

// TestIndexServiceFailure tests that either external failure aborts the call
func TestIndexServiceFailure(t *testing.T) {
	ix := New(&stubEmbedder{err: core.NewRetrievalError("embed", context.DeadlineExceeded)}, &stubClassifier{})

	_, err := ix.Index(context.Background(), "anything", "seed", "software")
	if err == nil {
		t.Fatal("Expected error when embedding fails")
	}
	if !core.IsRetrievalError(err) {
		t.Errorf("Expected retrieval error, got %v", err)
	}
	if ix.Size(concept.LevelPattern) != 0 {
		t.Error("Expected nothing stored on failure")
	}
}

// TestRetrieveCrossLevelBridgingRank tests that abstraction distance boosts
// ranking over raw similarity.
func TestRetrieveCrossLevelBridgingRank(t *testing.T) {
	vectors := map[string][]float64{
		"query":        {1, 0, 0},
		"near-same":    {0.99, 0.1, 0}, // very similar, same level as source
		"far-abstract": {0.9, 0.3, 0},  // less similar, three levels away
	}
	levels := map[string]concept.AbstractionLevel{
		"near-same":    concept.LevelConcrete,
		"far-abstract": concept.LevelMeta,
	}
	ix := newTestIndex(vectors, levels)

	ctx := context.Background()
	for _, text := range []string{"near-same", "far-abstract"} {
		if _, err := ix.Index(ctx, text, "seed", "software"); err != nil {
			t.Fatalf("Index failed: %v", err)
		}
	}

	results, err := ix.RetrieveCrossLevel(ctx, "query", concept.LevelConcrete, concept.AllLevels, 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	// far-abstract: sim ~0.949 * (1 + 0.25*3) = 1.66 beats near-same ~0.995.
	if results[0].Node.Text != "far-abstract" {
		t.Errorf("Expected far-abstract ranked first by bridging potential, got %s", results[0].Node.Text)
	}
	for _, r := range results {
		expected := r.Similarity * (1 + 0.25*float64(concept.LevelConcrete.Distance(r.Node.Level)))
		if math.Abs(r.Potential-expected) > 1e-9 {
			t.Errorf("Potential mismatch for %s: got %f want %f", r.Node.Text, r.Potential, expected)
		}
	}
}

// TestRetrieveCrossDomainFiltersAndCaps tests per-domain filtering, the
// source-domain exclusion, and the per-domain result cap.
func TestRetrieveCrossDomainFiltersAndCaps(t *testing.T) {
	vectors := map[string][]float64{"query": {1, 0, 0}}
	levels := map[string]concept.AbstractionLevel{}
	texts := []string{}
	for i := 0; i < 8; i++ {
		text := "bio-" + string(rune('a'+i))
		vectors[text] = []float64{1, float64(i) * 0.1, 0}
		levels[text] = concept.LevelPattern
		texts = append(texts, text)
	}
	vectors["sw-own"] = []float64{1, 0, 0}
	levels["sw-own"] = concept.LevelPattern

	ix := newTestIndex(vectors, levels)
	ctx := context.Background()
	for _, text := range texts {
		if _, err := ix.Index(ctx, text, "seed", "biology"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := ix.Index(ctx, "sw-own", "seed", "software"); err != nil {
		t.Fatal(err)
	}

	matches, err := ix.RetrieveCrossDomain(ctx, "query", "software", []string{"biology", "software"}, concept.LevelPattern, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(matches) != 5 {
		t.Fatalf("Expected per-domain cap of 5 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if m.TargetDomain != "biology" {
			t.Errorf("Expected only biology targets, got %s", m.TargetDomain)
		}
		if m.SourceDomain != "software" {
			t.Errorf("Expected source domain preserved, got %s", m.SourceDomain)
		}
	}
}

// TestRetrieveCrossDomainInvalidLevel tests the invalid-level guard
func TestRetrieveCrossDomainInvalidLevel(t *testing.T) {
	ix := newTestIndex(nil, nil)
	_, err := ix.RetrieveCrossDomain(context.Background(), "q", "a", []string{"b"}, concept.AbstractionLevel(9), nil)
	if err == nil {
		t.Fatal("Expected error for invalid level")
	}
}

// TestCosine tests similarity math and clamping
func TestCosine(t *testing.T) {
	if c := Cosine([]float64{1, 0}, []float64{1, 0}); math.Abs(c-1) > 1e-9 {
		t.Errorf("Expected cosine 1 for identical vectors, got %f", c)
	}
	if c := Cosine([]float64{1, 0}, []float64{0, 1}); c != 0 {
		t.Errorf("Expected cosine 0 for orthogonal vectors, got %f", c)
	}
	if c := Cosine([]float64{1, 0}, []float64{-1, 0}); c != 0 {
		t.Errorf("Expected negative similarity clamped to 0, got %f", c)
	}
	if c := Cosine([]float64{}, []float64{1}); c != 0 {
		t.Errorf("Expected 0 for mismatched lengths, got %f", c)
	}
	if c := Cosine([]float64{0, 0}, []float64{0, 0}); c != 0 {
		t.Errorf("Expected 0 for zero vectors, got %f", c)
	}
}
