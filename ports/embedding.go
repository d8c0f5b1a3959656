package ports

import "context"

// EmbeddingPort maps text to a fixed-length numeric vector. Deterministic
// for identical input within a session. Failure is a distinct error, never
// a zero vector.
type EmbeddingPort interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
