package ports

import "context"

// Neighbor is one ranked result of a reference-corpus similarity search.
type Neighbor struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"` // [0,1]
}

// CorpusPort is the reference corpus of known ideas consulted by the
// novelty scorer.
type CorpusPort interface {
	// Search returns the k nearest known ideas to the query vector.
	Search(ctx context.Context, vector []float64, k int) ([]Neighbor, error)

	// DomainPairFrequency counts known ideas built on the given unordered
	// domain pair.
	DomainPairFrequency(ctx context.Context, domainA, domainB string) (int, error)
}
