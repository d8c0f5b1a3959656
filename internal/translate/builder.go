package translate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ideaforge/domain/concept"
	"ideaforge/ports"
)

// BridgeTerm is one side's input for a bridge build: a concept already
// retrieved from the index, with its domain and abstraction level.
type BridgeTerm struct {
	Concept string
	Domain  string
	Level   concept.AbstractionLevel
}

// Builder composes two ontology mappings into a concept bridge.
type Builder struct {
	translator ports.TranslatorPort
}

// NewBuilder creates a bridge builder over the given translator
func NewBuilder(translator ports.TranslatorPort) *Builder {
	return &Builder{translator: translator}
}

// BuildBridge maps both terms onto the shared ontology and assembles the
// bridge. The two translations are independent and run concurrently;
// results are merged by side, not completion order. Either side failing
// fails this bridge attempt only.
func (b *Builder) BuildBridge(ctx context.Context, a, c BridgeTerm) (concept.ConceptBridge, error) {
	var mapA, mapB concept.TermMapping

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := b.translator.ToSharedConcept(gctx, a.Concept, a.Domain)
		if err != nil {
			return err
		}
		mapA = m
		return nil
	})
	g.Go(func() error {
		m, err := b.translator.ToSharedConcept(gctx, c.Concept, c.Domain)
		if err != nil {
			return err
		}
		mapB = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return concept.ConceptBridge{}, err
	}

	return concept.NewBridge(
		concept.BridgeSide{
			Concept:    a.Concept,
			Domain:     a.Domain,
			Label:      mapA.Label,
			Confidence: mapA.Confidence,
			Level:      a.Level,
		},
		concept.BridgeSide{
			Concept:    c.Concept,
			Domain:     c.Domain,
			Label:      mapB.Label,
			Confidence: mapB.Confidence,
			Level:      c.Level,
		},
	), nil
}

// ExpandLabel returns domain vocabulary for an ontology label. An empty
// result is valid and callers tolerate it.
func (b *Builder) ExpandLabel(ctx context.Context, label concept.OntologyLabel, targetDomain string) ([]string, error) {
	return b.translator.FromSharedConcept(ctx, label, targetDomain)
}
