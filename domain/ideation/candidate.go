package ideation

import (
	"ideaforge/domain/concept"
	"ideaforge/domain/core"
)

// IdeaCandidate is one generated idea. Created by the generator, scored in
// place by the scorer, consumed by the selector.
type IdeaCandidate struct {
	ID             core.CandidateID      `json:"id"`
	Description    string                `json:"description"`
	Mechanism      string                `json:"mechanism"`
	Bridge         concept.ConceptBridge `json:"bridge"`
	Strategy       Strategy              `json:"strategy"`
	NoveltySignals []string              `json:"novelty_signals,omitempty"`
	UtilitySignals []string              `json:"utility_signals,omitempty"`
	Novelty        *NoveltyScore         `json:"novelty,omitempty"`
	Utility        *UtilityScore         `json:"utility,omitempty"`
	ParetoRank     int                   `json:"pareto_rank,omitempty"` // 1-based, 0 = unranked
	CreatedAt      core.Timestamp        `json:"created_at"`
}

// NewCandidate creates a candidate with a fresh identifier and timestamp
func NewCandidate(description, mechanism string, bridge concept.ConceptBridge, strategy Strategy) IdeaCandidate {
	return IdeaCandidate{
		ID:          core.CandidateID(core.NewID()),
		Description: description,
		Mechanism:   mechanism,
		Bridge:      bridge,
		Strategy:    strategy,
		CreatedAt:   core.Now(),
	}
}
