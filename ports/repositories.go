package ports

import (
	"context"

	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
)

// SessionRecord is the persisted shape of one ideation session.
type SessionRecord struct {
	ID          core.SessionID  `json:"id"`
	Topic       string          `json:"topic"`
	Problem     string          `json:"problem"`
	Domains     []string        `json:"domains"`
	Environment string          `json:"environment"`
	Status      string          `json:"status"` // active | archived
	CreatedAt   core.Timestamp  `json:"created_at"`
	ArchivedAt  *core.Timestamp `json:"archived_at,omitempty"`
	Summary     string          `json:"summary,omitempty"`
}

// IterationRecord is the persisted per-iteration artifact bundle: scored
// candidates, the ranked frontier, and the feedback signals derived from it.
type IterationRecord struct {
	ID        core.IterationID           `json:"id"`
	SessionID core.SessionID             `json:"session_id"`
	Sequence  int                        `json:"sequence"`
	Attempted int                        `json:"attempted"` // candidates generated, before scoring drops
	Scored    []ideation.ScoredCandidate `json:"scored"`
	Result    ideation.ParetoResult      `json:"result"`
	Signals   ideation.FeedbackSignals   `json:"signals"`
	Audits    []DraftAudit               `json:"audits,omitempty"`
	CreatedAt core.Timestamp             `json:"created_at"`
}

// SessionRepository persists session lifecycle records.
type SessionRepository interface {
	Create(ctx context.Context, rec *SessionRecord) error
	Get(ctx context.Context, id core.SessionID) (*SessionRecord, error)
	List(ctx context.Context) ([]*SessionRecord, error)
	Archive(ctx context.Context, id core.SessionID, summary string) error
}

// IterationRepository persists per-iteration artifacts.
type IterationRepository interface {
	Save(ctx context.Context, rec *IterationRecord) error
	ListBySession(ctx context.Context, sessionID core.SessionID) ([]*IterationRecord, error)
	Get(ctx context.Context, id core.IterationID) (*IterationRecord, error)
}
