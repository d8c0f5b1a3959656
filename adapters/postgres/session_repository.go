package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"ideaforge/domain/core"
	"ideaforge/ports"
)

// sessionRepository implements the SessionRepository interface
type sessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sqlx.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a new session record
func (r *sessionRepository) Create(ctx context.Context, rec *ports.SessionRecord) error {
	domainsJSON, err := json.Marshal(rec.Domains)
	if err != nil {
		return fmt.Errorf("failed to marshal domains: %w", err)
	}

	query := `INSERT INTO ideation_sessions (
		id, topic, problem, domains, environment, status, created_at, summary
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID, rec.Topic, rec.Problem, domainsJSON,
		rec.Environment, rec.Status, rec.CreatedAt.Time(), rec.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Get retrieves a session by its ID
func (r *sessionRepository) Get(ctx context.Context, id core.SessionID) (*ports.SessionRecord, error) {
	query := `SELECT id, topic, problem, domains, environment, status, created_at, archived_at, summary
	FROM ideation_sessions WHERE id = $1`

	rec, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session %s: %w", id, core.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return rec, nil
}

// List retrieves all sessions, newest first
func (r *sessionRepository) List(ctx context.Context) ([]*ports.SessionRecord, error) {
	query := `SELECT id, topic, problem, domains, environment, status, created_at, archived_at, summary
	FROM ideation_sessions ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*ports.SessionRecord{}
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, rec)
	}
	return sessions, rows.Err()
}

// Archive marks a session archived with a run summary
func (r *sessionRepository) Archive(ctx context.Context, id core.SessionID, summary string) error {
	query := `UPDATE ideation_sessions
	SET status = 'archived', archived_at = NOW(), summary = $2
	WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, summary)
	if err != nil {
		return fmt.Errorf("failed to archive session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to archive session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", id, core.ErrSessionNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*ports.SessionRecord, error) {
	var rec ports.SessionRecord
	var domainsJSON []byte
	var createdAt time.Time
	var archivedAt sql.NullTime

	err := row.Scan(
		&rec.ID, &rec.Topic, &rec.Problem, &domainsJSON,
		&rec.Environment, &rec.Status, &createdAt, &archivedAt, &rec.Summary,
	)
	if err != nil {
		return nil, err
	}

	if len(domainsJSON) > 0 {
		if err := json.Unmarshal(domainsJSON, &rec.Domains); err != nil {
			return nil, fmt.Errorf("failed to unmarshal domains: %w", err)
		}
	}
	rec.CreatedAt = core.NewTimestamp(createdAt)
	if archivedAt.Valid {
		ts := core.NewTimestamp(archivedAt.Time)
		rec.ArchivedAt = &ts
	}
	return &rec, nil
}
