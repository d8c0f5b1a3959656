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

// iterationRepository implements the IterationRepository interface
type iterationRepository struct {
	db *sqlx.DB
}

// NewIterationRepository creates a new iteration repository
func NewIterationRepository(db *sqlx.DB) ports.IterationRepository {
	return &iterationRepository{db: db}
}

// Save inserts one iteration's artifact bundle
func (r *iterationRepository) Save(ctx context.Context, rec *ports.IterationRecord) error {
	scoredJSON, err := json.Marshal(rec.Scored)
	if err != nil {
		return fmt.Errorf("failed to marshal scored candidates: %w", err)
	}
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal pareto result: %w", err)
	}
	signalsJSON, err := json.Marshal(rec.Signals)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback signals: %w", err)
	}
	auditsJSON, err := json.Marshal(rec.Audits)
	if err != nil {
		return fmt.Errorf("failed to marshal draft audits: %w", err)
	}

	query := `INSERT INTO ideation_iterations (
		id, session_id, sequence, attempted, scored, result, signals, audits, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID, rec.SessionID, rec.Sequence, rec.Attempted,
		scoredJSON, resultJSON, signalsJSON, auditsJSON, rec.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save iteration: %w", err)
	}
	return nil
}

// ListBySession retrieves a session's iterations in sequence order
func (r *iterationRepository) ListBySession(ctx context.Context, sessionID core.SessionID) ([]*ports.IterationRecord, error) {
	query := `SELECT id, session_id, sequence, attempted, scored, result, signals, audits, created_at
	FROM ideation_iterations WHERE session_id = $1 ORDER BY sequence ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list iterations: %w", err)
	}
	defer rows.Close()

	records := []*ports.IterationRecord{}
	for rows.Next() {
		rec, err := scanIteration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan iteration: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get retrieves one iteration by its ID
func (r *iterationRepository) Get(ctx context.Context, id core.IterationID) (*ports.IterationRecord, error) {
	query := `SELECT id, session_id, sequence, attempted, scored, result, signals, audits, created_at
	FROM ideation_iterations WHERE id = $1`

	rec, err := scanIteration(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("iteration %s: %w", id, core.ErrIterationNotFound)
		}
		return nil, fmt.Errorf("failed to get iteration: %w", err)
	}
	return rec, nil
}

func scanIteration(row rowScanner) (*ports.IterationRecord, error) {
	var rec ports.IterationRecord
	var scoredJSON, resultJSON, signalsJSON, auditsJSON []byte
	var createdAt time.Time

	err := row.Scan(
		&rec.ID, &rec.SessionID, &rec.Sequence, &rec.Attempted,
		&scoredJSON, &resultJSON, &signalsJSON, &auditsJSON, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(scoredJSON, &rec.Scored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scored candidates: %w", err)
	}
	if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pareto result: %w", err)
	}
	if err := json.Unmarshal(signalsJSON, &rec.Signals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feedback signals: %w", err)
	}
	if err := json.Unmarshal(auditsJSON, &rec.Audits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft audits: %w", err)
	}
	rec.CreatedAt = core.NewTimestamp(createdAt)
	return &rec, nil
}
