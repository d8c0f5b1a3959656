package ports

import (
	"context"

	"ideaforge/domain/concept"
)

// TranslatorPort maps terms between a knowledge domain and the shared
// ontology. ToSharedConcept must return a member of the closed label set;
// anything else is a contract violation from the external service.
type TranslatorPort interface {
	// ToSharedConcept maps a domain term to its nearest ontology label
	// with a confidence in [0,1].
	ToSharedConcept(ctx context.Context, term, domain string) (concept.TermMapping, error)

	// FromSharedConcept expands an ontology label into 3-5 domain-specific
	// terms. An empty result is valid: the domain has no vocabulary for
	// that concept.
	FromSharedConcept(ctx context.Context, label concept.OntologyLabel, targetDomain string) ([]string, error)
}
