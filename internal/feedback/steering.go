package feedback

import (
	"context"

	"ideaforge/domain/ideation"
	"ideaforge/internal"
	"ideaforge/ports"
)

// Bounded multiplicative adjustment factors per winning signal.
const (
	domainBoostFactor = 0.2
	levelBoostFactor  = 0.3
	expansionQueries  = 5
)

// Steerer derives the next iteration's retrieval configuration from the
// winning signals. It is the only writer of steering state: it never
// mutates a frontier or the config consumed by the current iteration.
type Steerer struct {
	expander ports.QueryExpanderPort
	log      *internal.Logger
}

// NewSteerer creates a steerer
func NewSteerer(expander ports.QueryExpanderPort, log *internal.Logger) *Steerer {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Steerer{expander: expander, log: log}
}

// ApplySteering returns an updated copy of the retrieval config: each top
// domain pair boosts both domains' weights by (1 + score*0.2), each top
// level boosts its weight by (1 + score*0.3), and five new expansion
// queries are requested from the generative service. One pass never moves
// a weight by more than (1 + maxWinnerScore*boost): pair tallies accumulate
// across winners and a domain can sit in several top pairs, so the per-pass
// multiplier is capped before it is applied. Weights stay clamped so
// repeated feedback cannot drive them to zero or unbounded values.
// Empty signals return the config unchanged.
func (s *Steerer) ApplySteering(ctx context.Context, problem string, signals ideation.FeedbackSignals, current *ideation.RetrievalConfig) *ideation.RetrievalConfig {
	next := current.Snapshot()
	if signals.IsEmpty() {
		return next
	}

	domainBound := 1 + signals.MaxWinnerScore*domainBoostFactor
	domainFactors := map[string]float64{}
	for _, pair := range signals.TopDomainPairs {
		boost := 1 + pair.Score*domainBoostFactor
		for _, domain := range []string{pair.DomainA, pair.DomainB} {
			if _, seen := domainFactors[domain]; !seen {
				domainFactors[domain] = 1
			}
			domainFactors[domain] *= boost
		}
	}
	for domain, factor := range domainFactors {
		if factor > domainBound {
			factor = domainBound
		}
		next.DomainWeights[domain] = ideation.ClampWeight(next.DomainWeight(domain) * factor)
	}

	levelBound := 1 + signals.MaxWinnerScore*levelBoostFactor
	for _, level := range signals.TopLevels {
		factor := 1 + level.Score*levelBoostFactor
		if factor > levelBound {
			factor = levelBound
		}
		next.LevelWeights[level.Level] = ideation.ClampWeight(next.LevelWeight(level.Level) * factor)
	}

	queries, err := s.expander.ExpandQueries(ctx, problem, signals, expansionQueries)
	if err != nil {
		// Query expansion is advisory: keep the previous queries.
		s.log.Warn("query expansion failed, keeping previous queries: %v", err)
		return next
	}
	if len(queries) > 0 {
		next.ExpansionQueries = queries
	}
	return next
}
