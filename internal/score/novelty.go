package score

import (
	"context"

	"github.com/montanaflynn/stats"

	"ideaforge/domain/ideation"
	"ideaforge/ports"
)

// Novelty aggregation weights and constants.
const (
	noveltyNeighborK  = 10
	weightAvgDistance = 0.5
	weightRarity      = 0.3
	weightJumpBonus   = 0.2
	jumpBonusPerLevel = 0.1
	rarityFreqCeiling = 100.0
)

// NoveltyScorer computes the novelty axis from distance to the reference
// corpus, domain-pair rarity, and the bridge's abstraction jump.
type NoveltyScorer struct {
	embedder ports.EmbeddingPort
	corpus   ports.CorpusPort
}

// NewNoveltyScorer creates a novelty scorer
func NewNoveltyScorer(embedder ports.EmbeddingPort, corpus ports.CorpusPort) *NoveltyScorer {
	return &NoveltyScorer{embedder: embedder, corpus: corpus}
}

// Score computes the novelty score for one candidate
func (s *NoveltyScorer) Score(ctx context.Context, candidate ideation.IdeaCandidate) (ideation.NoveltyScore, error) {
	vec, err := s.embedder.Embed(ctx, candidate.Description)
	if err != nil {
		return ideation.NoveltyScore{}, err
	}

	neighbors, err := s.corpus.Search(ctx, vec, noveltyNeighborK)
	if err != nil {
		return ideation.NoveltyScore{}, err
	}

	// An empty corpus means everything is maximally far from known ideas.
	avgDistance := 1.0
	if len(neighbors) > 0 {
		sims := make([]float64, len(neighbors))
		for i, n := range neighbors {
			sims[i] = n.Similarity
		}
		mean, err := stats.Mean(sims)
		if err != nil {
			return ideation.NoveltyScore{}, err
		}
		avgDistance = 1 - mean
	}

	domainA, domainB := candidate.Bridge.DomainPair()
	freq, err := s.corpus.DomainPairFrequency(ctx, domainA, domainB)
	if err != nil {
		return ideation.NoveltyScore{}, err
	}
	rarity := 1 - minFloat(float64(freq)/rarityFreqCeiling, 1)

	jumpBonus := float64(candidate.Bridge.LevelJump()) * jumpBonusPerLevel

	value := weightAvgDistance*avgDistance + weightRarity*rarity + weightJumpBonus*jumpBonus
	return ideation.NoveltyScore{
		Value:       ideation.Clamp01(value),
		AvgDistance: avgDistance,
		Rarity:      rarity,
		JumpBonus:   jumpBonus,
	}, nil
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
