package score

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"ideaforge/domain/ideation"
	"ideaforge/internal"
)

// BatchScorer scores candidate batches on both axes. Per-candidate scoring
// is independent, so candidates run concurrently under a semaphore bound;
// results are merged by input order, not completion order.
type BatchScorer struct {
	novelty     *NoveltyScorer
	utility     *UtilityScorer
	concurrency int64
	log         *internal.Logger
}

// NewBatchScorer creates a batch scorer with the given concurrency bound
func NewBatchScorer(novelty *NoveltyScorer, utility *UtilityScorer, concurrency int64, log *internal.Logger) *BatchScorer {
	if concurrency <= 0 {
		concurrency = 4
	}
	if log == nil {
		log = internal.DefaultLogger
	}
	return &BatchScorer{novelty: novelty, utility: utility, concurrency: concurrency, log: log}
}

// ScoreBatch scores every candidate. A candidate whose scoring fails (after
// one retry) is dropped with a warning; the batch always completes. The
// returned slice preserves input order.
func (b *BatchScorer) ScoreBatch(ctx context.Context, candidates []ideation.IdeaCandidate, problem string) []ideation.ScoredCandidate {
	sem := semaphore.NewWeighted(b.concurrency)
	slots := make([]*ideation.ScoredCandidate, len(candidates))

	var wg sync.WaitGroup
	for i, cand := range candidates {
		if err := sem.Acquire(ctx, 1); err != nil {
			b.log.Warn("scoring aborted: %v", err)
			break
		}
		wg.Add(1)
		go func(slot int, c ideation.IdeaCandidate) {
			defer wg.Done()
			defer sem.Release(1)

			scored, err := b.scoreOne(ctx, c, problem)
			if err != nil {
				// One retry on transient failure, then drop the candidate.
				scored, err = b.scoreOne(ctx, c, problem)
			}
			if err != nil {
				b.log.Warn("candidate %s dropped from scoring: %v", c.ID, err)
				return
			}
			slots[slot] = scored
		}(i, cand)
	}
	wg.Wait()

	out := make([]ideation.ScoredCandidate, 0, len(candidates))
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

func (b *BatchScorer) scoreOne(ctx context.Context, cand ideation.IdeaCandidate, problem string) (*ideation.ScoredCandidate, error) {
	novelty, err := b.novelty.Score(ctx, cand)
	if err != nil {
		return nil, err
	}
	utility, err := b.utility.Score(ctx, cand, problem)
	if err != nil {
		return nil, err
	}
	scored := ideation.NewScoredCandidate(cand, novelty, utility)
	return &scored, nil
}
