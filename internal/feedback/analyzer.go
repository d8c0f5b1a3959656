package feedback

import (
	"sort"

	"ideaforge/domain/concept"
	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
)

// Caps on how much learning is kept from one frontier.
const (
	topDomainPairs = 5
	topLevels      = 3
	topStrategies  = 3
)

// AnalyzeWinners extracts which domain pairs, abstraction levels, and
// strategies produced the frontier, weighted by each winner's combined
// score. An empty frontier yields all-empty signals.
func AnalyzeWinners(result ideation.ParetoResult) ideation.FeedbackSignals {
	signals := ideation.FeedbackSignals{CreatedAt: core.Now()}
	if result.IsEmpty() {
		return signals
	}

	pairScores := map[[2]string]float64{}
	levelScores := map[concept.AbstractionLevel]float64{}
	strategyScores := map[ideation.Strategy]float64{}
	patternCounts := map[[2]concept.OntologyLabel]int{}

	for _, winner := range result.Frontier {
		w := winner.Combined
		if w > signals.MaxWinnerScore {
			signals.MaxWinnerScore = w
		}
		bridge := winner.Candidate.Bridge

		a, b := bridge.DomainPair()
		pairScores[[2]string{a, b}] += w

		levelScores[bridge.A.Level] += w
		if bridge.B.Level != bridge.A.Level {
			levelScores[bridge.B.Level] += w
		}

		strategyScores[winner.Candidate.Strategy] += w

		la, lb := bridge.A.Label, bridge.B.Label
		if lb < la {
			la, lb = lb, la
		}
		patternCounts[[2]concept.OntologyLabel{la, lb}]++
	}

	for pair, score := range pairScores {
		signals.TopDomainPairs = append(signals.TopDomainPairs, ideation.DomainPairScore{
			DomainA: pair[0], DomainB: pair[1], Score: score,
		})
	}
	sort.Slice(signals.TopDomainPairs, func(i, j int) bool {
		a, b := signals.TopDomainPairs[i], signals.TopDomainPairs[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.DomainA != b.DomainA {
			return a.DomainA < b.DomainA
		}
		return a.DomainB < b.DomainB
	})
	if len(signals.TopDomainPairs) > topDomainPairs {
		signals.TopDomainPairs = signals.TopDomainPairs[:topDomainPairs]
	}

	for level, score := range levelScores {
		signals.TopLevels = append(signals.TopLevels, ideation.LevelScore{Level: level, Score: score})
	}
	sort.Slice(signals.TopLevels, func(i, j int) bool {
		a, b := signals.TopLevels[i], signals.TopLevels[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Level < b.Level
	})
	if len(signals.TopLevels) > topLevels {
		signals.TopLevels = signals.TopLevels[:topLevels]
	}

	for strategy, score := range strategyScores {
		signals.TopStrategies = append(signals.TopStrategies, ideation.StrategyScore{Strategy: strategy, Score: score})
	}
	sort.Slice(signals.TopStrategies, func(i, j int) bool {
		a, b := signals.TopStrategies[i], signals.TopStrategies[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Strategy < b.Strategy
	})
	if len(signals.TopStrategies) > topStrategies {
		signals.TopStrategies = signals.TopStrategies[:topStrategies]
	}

	for pattern, count := range patternCounts {
		signals.TranslationPatterns = append(signals.TranslationPatterns, ideation.TranslationPattern{
			LabelA: pattern[0], LabelB: pattern[1], Count: count,
		})
	}
	sort.Slice(signals.TranslationPatterns, func(i, j int) bool {
		a, b := signals.TranslationPatterns[i], signals.TranslationPatterns[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.LabelA != b.LabelA {
			return a.LabelA < b.LabelA
		}
		return a.LabelB < b.LabelB
	})

	return signals
}
