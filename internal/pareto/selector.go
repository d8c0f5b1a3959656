package pareto

import (
	"sort"

	"github.com/montanaflynn/stats"

	"ideaforge/domain/ideation"
)

// Selector filters scored candidates by minimum thresholds, computes the
// non-dominated frontier, and ranks it.
type Selector struct {
	MinNovelty      float64
	MinUtility      float64
	MaxFrontierSize int
}

// NewSelector creates a selector with the given thresholds
func NewSelector(minNovelty, minUtility float64, maxFrontierSize int) *Selector {
	if maxFrontierSize <= 0 {
		maxFrontierSize = 10
	}
	return &Selector{
		MinNovelty:      minNovelty,
		MinUtility:      minUtility,
		MaxFrontierSize: maxFrontierSize,
	}
}

// Select runs one full selection pass. Threshold exclusions are counted in
// the stats, never silently swallowed. Given identical input, the ranked
// frontier is identical across runs: ties on combined score break by
// higher utility, then by candidate identifier.
func (s *Selector) Select(candidates []ideation.ScoredCandidate) ideation.ParetoResult {
	result := ideation.ParetoResult{
		Stats: ideation.FrontierStats{Attempted: len(candidates)},
	}

	// Step 1: thresholds.
	viable := make([]ideation.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Novelty.Value < s.MinNovelty || c.Utility.Value < s.MinUtility {
			result.Stats.BelowThreshold++
			continue
		}
		viable = append(viable, c)
	}

	// Step 2: incremental O(n^2) frontier. For each viable candidate,
	// either a frontier member dominates it, or it joins the frontier and
	// evicts the members it dominates.
	frontier := []ideation.ScoredCandidate{}
	dominated := []ideation.ScoredCandidate{}
	for _, cand := range viable {
		isDominated := false
		for _, member := range frontier {
			if member.Dominates(cand) {
				isDominated = true
				break
			}
		}
		if isDominated {
			dominated = append(dominated, cand)
			continue
		}

		kept := frontier[:0]
		for _, member := range frontier {
			if cand.Dominates(member) {
				dominated = append(dominated, member)
				continue
			}
			kept = append(kept, member)
		}
		frontier = append(kept, cand)
	}

	// Step 3: rank by combined score descending; ties by utility, then by
	// candidate identifier for full determinism.
	sort.SliceStable(frontier, func(i, j int) bool {
		if frontier[i].Combined != frontier[j].Combined {
			return frontier[i].Combined > frontier[j].Combined
		}
		if frontier[i].Utility.Value != frontier[j].Utility.Value {
			return frontier[i].Utility.Value > frontier[j].Utility.Value
		}
		return frontier[i].Candidate.ID < frontier[j].Candidate.ID
	})

	// Step 4: truncate and assign 1-based ranks.
	if len(frontier) > s.MaxFrontierSize {
		frontier = frontier[:s.MaxFrontierSize]
	}
	for i := range frontier {
		frontier[i].Candidate.ParetoRank = i + 1
	}

	result.Frontier = frontier
	result.Dominated = dominated
	result.Stats.Dominated = len(dominated)
	result.Stats.FrontierSize = len(frontier)
	result.Stats.MeanNovelty, result.Stats.MeanUtility = frontierMeans(frontier)
	return result
}

func frontierMeans(frontier []ideation.ScoredCandidate) (float64, float64) {
	if len(frontier) == 0 {
		return 0, 0
	}
	novelties := make([]float64, len(frontier))
	utilities := make([]float64, len(frontier))
	for i, c := range frontier {
		novelties[i] = c.Novelty.Value
		utilities[i] = c.Utility.Value
	}
	meanN, _ := stats.Mean(novelties)
	meanU, _ := stats.Mean(utilities)
	return meanN, meanU
}
