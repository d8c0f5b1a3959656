package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ideaforge/domain/core"
	"ideaforge/ports"
)

// EmbeddingConfig holds embedding adapter configuration
type EmbeddingConfig struct {
	Model   string // e.g., "text-embedding-3-small"
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// EmbeddingAdapter implements EmbeddingPort against the OpenAI embeddings
// endpoint. Failures surface as retrieval-unavailable errors, never as a
// zero vector.
type EmbeddingAdapter struct {
	config EmbeddingConfig
}

// NewEmbeddingAdapter creates a new embedding adapter
func NewEmbeddingAdapter(config EmbeddingConfig) (*EmbeddingAdapter, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	if strings.TrimSpace(config.BaseURL) == "" {
		config.BaseURL = "https://api.openai.com/v1"
	}
	if config.Model == "" {
		config.Model = "text-embedding-3-small"
	}
	return &EmbeddingAdapter{config: config}, nil
}

// Embed maps text to a fixed-length numeric vector
func (a *EmbeddingAdapter) Embed(ctx context.Context, text string) ([]float64, error) {
	type reqBody struct {
		Model string `json:"model"`
		Input string `json:"input"`
	}
	raw, err := json.Marshal(reqBody{Model: a.config.Model, Input: text})
	if err != nil {
		return nil, core.NewRetrievalError("embed", err)
	}

	client := &http.Client{Timeout: a.config.Timeout}
	url := strings.TrimRight(a.config.BaseURL, "/") + "/embeddings"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, core.NewRetrievalError("embed", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+a.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, core.NewRetrievalError("embed", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewRetrievalError("embed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, core.NewRetrievalError("embed",
			fmt.Errorf("openai http %d: %s", resp.StatusCode, string(respRaw)))
	}

	type respBody struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return nil, core.NewRetrievalError("embed", err)
	}
	if len(decoded.Data) == 0 || len(decoded.Data[0].Embedding) == 0 {
		return nil, core.NewRetrievalError("embed", fmt.Errorf("response missing embedding data"))
	}
	return decoded.Data[0].Embedding, nil
}

var _ ports.EmbeddingPort = (*EmbeddingAdapter)(nil)
