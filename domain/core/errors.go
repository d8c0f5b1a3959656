package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound          = errors.New("resource not found")
	ErrSessionNotFound   = fmt.Errorf("%w: session", ErrNotFound)
	ErrIterationNotFound = fmt.Errorf("%w: iteration", ErrNotFound)
	ErrConceptNotFound   = fmt.Errorf("%w: concept", ErrNotFound)

	// Retrieval errors: the embedding service or the abstraction classifier
	// was unreachable. Aborts the affected index/retrieve call only.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")

	// Translation errors: the external service returned a label outside
	// the closed ontology. Retried once, then the bridge attempt fails.
	ErrTranslationContract = errors.New("translation contract violation")

	// Generation errors: a candidate or score payload failed shape
	// validation. The item is dropped, the batch continues.
	ErrMalformedGeneration = errors.New("malformed generation response")

	// Validation errors
	ErrInvalidDomain   = errors.New("unknown knowledge domain")
	ErrInvalidLevel    = errors.New("unknown abstraction level")
	ErrInvalidStrategy = errors.New("unknown combination strategy")
	ErrEmptyProblem    = errors.New("problem statement is empty")
	ErrScoreOutOfRange = errors.New("score outside [0,1]")
)

// Error constructors with context
func NewRetrievalError(stage string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrRetrievalUnavailable, stage, err)
}

func NewTranslationError(term, domain, label string) error {
	return fmt.Errorf("%w: %q is not an ontology label (term %q, domain %q)",
		ErrTranslationContract, label, term, domain)
}

func NewMalformedResponseError(kind string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedGeneration, kind, err)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsRetrievalError(err error) bool {
	return errors.Is(err, ErrRetrievalUnavailable)
}

func IsTranslationError(err error) bool {
	return errors.Is(err, ErrTranslationContract)
}

func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedGeneration)
}
