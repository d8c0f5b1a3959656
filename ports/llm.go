package ports

import "context"

// LLMClient interface for generative-language providers. Adapters decode
// the returned text into typed structures and reject malformed output
// rather than coercing it.
type LLMClient interface {
	ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error)
}
