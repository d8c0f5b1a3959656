package ideation

// FrontierStats summarizes one selection pass. Threshold exclusions are
// counted here explicitly rather than swallowed.
type FrontierStats struct {
	Attempted      int     `json:"attempted"`       // candidates presented to the selector
	BelowThreshold int     `json:"below_threshold"` // excluded by novelty/utility minimums
	Dominated      int     `json:"dominated"`
	FrontierSize   int     `json:"frontier_size"`
	MeanNovelty    float64 `json:"mean_novelty"`
	MeanUtility    float64 `json:"mean_utility"`
}

// ParetoResult is the outcome of one selection pass. The frontier is ordered
// by descending combined score with 1-based ranks assigned.
type ParetoResult struct {
	Frontier  []ScoredCandidate `json:"frontier"`
	Dominated []ScoredCandidate `json:"dominated"`
	Stats     FrontierStats     `json:"stats"`
}

// IsEmpty reports whether the selection produced no frontier
func (r ParetoResult) IsEmpty() bool {
	return len(r.Frontier) == 0
}
