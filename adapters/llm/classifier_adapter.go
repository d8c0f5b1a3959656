package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"ideaforge/domain/concept"
	"ideaforge/domain/core"
	"ideaforge/ports"
)

// ClassifierAdapter implements ClassifierPort using LLM
type ClassifierAdapter struct {
	config Config
	client ports.LLMClient
}

// NewClassifierAdapter creates a new LLM abstraction classifier
func NewClassifierAdapter(config Config, client ports.LLMClient) *ClassifierAdapter {
	return &ClassifierAdapter{config: config, client: client}
}

// Classify assigns a concept string to one of the four abstraction levels.
// Failure surfaces as a retrieval-unavailable error to the index.
func (a *ClassifierAdapter) Classify(ctx context.Context, text string) (concept.AbstractionLevel, error) {
	prompt := fmt.Sprintf(`Classify the abstraction level of this concept.

Concept: %s

Levels:
- concrete: a specific named implementation or tool
- pattern: a reusable design pattern
- abstract: an abstract principle
- meta: a cross-domain meta-pattern

Output ONLY a JSON object: {"level": "<concrete|pattern|abstract|meta>"}`, text)

	response, err := a.client.ChatCompletion(ctx, a.config.Model, prompt, a.config.MaxTokens)
	if err != nil {
		return 0, core.NewRetrievalError("classify", err)
	}

	var decoded struct {
		Level string `json:"level"`
	}
	if err := json.Unmarshal([]byte(extractJSON(response)), &decoded); err != nil {
		return 0, core.NewRetrievalError("classify", err)
	}

	level, err := concept.ParseLevel(decoded.Level)
	if err != nil {
		return 0, core.NewRetrievalError("classify", err)
	}
	return level, nil
}

var _ ports.ClassifierPort = (*ClassifierAdapter)(nil)
