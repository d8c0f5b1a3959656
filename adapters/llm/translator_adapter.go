package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ideaforge/domain/concept"
	"ideaforge/domain/core"
	"ideaforge/ports"
)

// TranslatorAdapter implements TranslatorPort using LLM
type TranslatorAdapter struct {
	config Config
	client ports.LLMClient
}

// NewTranslatorAdapter creates a new LLM translator adapter
func NewTranslatorAdapter(config Config, client ports.LLMClient) *TranslatorAdapter {
	return &TranslatorAdapter{config: config, client: client}
}

// labelChoice is the raw LLM response for a term-to-label mapping
type labelChoice struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ToSharedConcept maps a domain term to its nearest ontology label. The
// returned label must be a member of the closed set; a violation is retried
// once with stricter instructions before the bridge attempt fails.
func (a *TranslatorAdapter) ToSharedConcept(ctx context.Context, term, domain string) (concept.TermMapping, error) {
	prompt := a.buildToSharedPrompt(term, domain, false)

	mapping, err := a.requestMapping(ctx, term, domain, prompt)
	if err == nil {
		return mapping, nil
	}
	if !core.IsTranslationError(err) {
		return concept.TermMapping{}, err
	}

	// One retry with stricter instructions, then fail the bridge attempt.
	strict := a.buildToSharedPrompt(term, domain, true)
	return a.requestMapping(ctx, term, domain, strict)
}

func (a *TranslatorAdapter) requestMapping(ctx context.Context, term, domain, prompt string) (concept.TermMapping, error) {
	response, err := a.client.ChatCompletion(ctx, a.config.Model, prompt, a.config.MaxTokens)
	if err != nil {
		return concept.TermMapping{}, fmt.Errorf("translation call failed: %w", err)
	}

	var choice labelChoice
	if err := json.Unmarshal([]byte(extractJSON(response)), &choice); err != nil {
		return concept.TermMapping{}, core.NewMalformedResponseError("term mapping", err)
	}

	label := strings.TrimSpace(choice.Label)
	if !concept.IsOntologyLabel(label) {
		return concept.TermMapping{}, core.NewTranslationError(term, domain, label)
	}
	if choice.Confidence < 0 || choice.Confidence > 1 {
		return concept.TermMapping{}, core.NewMalformedResponseError("term mapping",
			fmt.Errorf("confidence %f outside [0,1]", choice.Confidence))
	}

	return concept.TermMapping{
		Term:       term,
		Domain:     domain,
		Label:      concept.OntologyLabel(label),
		Confidence: choice.Confidence,
	}, nil
}

func (a *TranslatorAdapter) buildToSharedPrompt(term, domain string, strict bool) string {
	labels := make([]string, len(concept.AllLabels))
	for i, l := range concept.AllLabels {
		labels[i] = string(l)
	}

	header := "Map the given domain term to the single closest label from the shared ontology."
	if strict {
		header = "Map the given domain term to the single closest label from the shared ontology. " +
			"The label field MUST be copied verbatim from the allowed list. Any other value is invalid."
	}

	return fmt.Sprintf(`%s

Domain: %s
Term: %s
Allowed labels: %s

Output ONLY a JSON object: {"label": "<one allowed label>", "confidence": <0.0-1.0>}`,
		header, domain, term, strings.Join(labels, ", "))
}

// FromSharedConcept expands an ontology label into domain-specific terms.
// An empty result is valid: the domain has no vocabulary for the concept.
func (a *TranslatorAdapter) FromSharedConcept(ctx context.Context, label concept.OntologyLabel, targetDomain string) ([]string, error) {
	prompt := fmt.Sprintf(`List 3-5 terms from the %s domain that express the concept "%s".
If the domain has no vocabulary for this concept, output an empty array.

Output ONLY a JSON array of strings.`, targetDomain, label)

	response, err := a.client.ChatCompletion(ctx, a.config.Model, prompt, a.config.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("expansion call failed: %w", err)
	}

	var terms []string
	if err := json.Unmarshal([]byte(extractJSON(response)), &terms); err != nil {
		return nil, core.NewMalformedResponseError("label expansion", err)
	}

	// Drop blank entries; cap at 5
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) == 5 {
			break
		}
	}
	return out, nil
}
