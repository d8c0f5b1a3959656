package ports

import (
	"context"

	"ideaforge/domain/concept"
)

// ClassifierPort assigns an incoming concept string to one of the four
// abstraction levels.
type ClassifierPort interface {
	Classify(ctx context.Context, text string) (concept.AbstractionLevel, error)
}
