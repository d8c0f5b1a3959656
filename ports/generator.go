package ports

import (
	"context"

	"ideaforge/domain/concept"
	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
)

// IdeaDraft is one raw draft returned by the generative service for a
// single strategy prompt, before it becomes an IdeaCandidate.
type IdeaDraft struct {
	Description    string   `json:"description"`
	Mechanism      string   `json:"mechanism"`
	NoveltySignals []string `json:"novelty_signals"`
	UtilitySignals []string `json:"utility_signals"`
}

// DroppedDraft records why a draft was rejected (audit trail).
type DroppedDraft struct {
	DraftIndex int    `json:"draft_index"`
	Reason     string `json:"reason"`
	Message    string `json:"message"`
}

// DraftAudit is metadata about one drafting call (hashes, model, drops).
type DraftAudit struct {
	Strategy     ideation.Strategy `json:"strategy"`
	Model        string            `json:"model,omitempty"`
	PromptHash   core.Hash         `json:"prompt_hash,omitempty"`
	ResponseHash core.Hash         `json:"response_hash,omitempty"`
	Dropped      []DroppedDraft    `json:"dropped,omitempty"`
}

// DraftResult is the full output of one strategy drafting call.
type DraftResult struct {
	Drafts []IdeaDraft `json:"drafts"`
	Audit  DraftAudit  `json:"audit"`
}

// DrafterPort produces idea drafts for one bridge and one strategy.
// The generator service fans out over strategies and owns candidate
// assembly; the drafter owns prompting and shape validation.
type DrafterPort interface {
	DraftIdeas(ctx context.Context, bridge concept.ConceptBridge, problem string, strategy ideation.Strategy, n int) (*DraftResult, error)
}
