package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	CandidateID ID
	SessionID   ID
	ConceptID   ID
	IterationID ID
)

// String conversions for domain IDs
func (id CandidateID) String() string { return ID(id).String() }
func (id SessionID) String() string   { return ID(id).String() }
func (id ConceptID) String() string   { return ID(id).String() }
func (id IterationID) String() string { return ID(id).String() }

// ParseCandidateID parses a string into CandidateID
func ParseCandidateID(s string) (CandidateID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("candidate ID cannot be empty")
	}
	return CandidateID(s), nil
}

// ParseSessionID parses a string into SessionID
func ParseSessionID(s string) (SessionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	return SessionID(s), nil
}

// ParseConceptID parses a string into ConceptID
func ParseConceptID(s string) (ConceptID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("concept ID cannot be empty")
	}
	return ConceptID(s), nil
}

// ParseIterationID parses a string into IterationID
func ParseIterationID(s string) (IterationID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("iteration ID cannot be empty")
	}
	return IterationID(s), nil
}
