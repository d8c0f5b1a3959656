package corpus

import (
	"context"
	"sort"
	"strings"
	"sync"

	"ideaforge/domain/core"
	"ideaforge/internal/index"
	"ideaforge/ports"
)

// KnownIdea is one entry of the reference corpus consulted by the novelty
// scorer: an already-known idea with its embedding and originating domains.
type KnownIdea struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	DomainA   string    `json:"domain_a"`
	DomainB   string    `json:"domain_b"`
	Embedding []float64 `json:"embedding"`
}

// Corpus is an in-memory, append-only reference corpus. Entries are never
// deleted within a session, so a slice arena with stable order suffices.
type Corpus struct {
	mu         sync.RWMutex
	ideas      []KnownIdea
	pairCounts map[[2]string]int
}

// New creates an empty corpus
func New() *Corpus {
	return &Corpus{pairCounts: make(map[[2]string]int)}
}

// Add inserts a known idea. Missing IDs get a fresh one; the domain pair
// tally is canonical (unordered).
func (c *Corpus) Add(idea KnownIdea) {
	if strings.TrimSpace(idea.ID) == "" {
		idea.ID = core.NewID().String()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ideas = append(c.ideas, idea)
	if idea.DomainA != "" && idea.DomainB != "" {
		c.pairCounts[pairKey(idea.DomainA, idea.DomainB)]++
	}
}

// Len returns the number of known ideas
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ideas)
}

// Search returns the k nearest known ideas to the query vector, ranked by
// cosine similarity with insertion order breaking ties.
func (c *Corpus) Search(ctx context.Context, vector []float64, k int) ([]ports.Neighbor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	neighbors := make([]ports.Neighbor, 0, len(c.ideas))
	for _, idea := range c.ideas {
		neighbors = append(neighbors, ports.Neighbor{
			ID:         idea.ID,
			Text:       idea.Text,
			Similarity: index.Cosine(vector, idea.Embedding),
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// DomainPairFrequency counts known ideas built on the unordered domain pair
func (c *Corpus) DomainPairFrequency(ctx context.Context, domainA, domainB string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pairCounts[pairKey(domainA, domainB)], nil
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

var _ ports.CorpusPort = (*Corpus)(nil)
