package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"ideaforge/internal/errors"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewMigrationRunner creates a new migration runner
func NewMigrationRunner() *MigrationRunner {
	return &MigrationRunner{version: "1.0.0"}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createSessionsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create ideation_sessions table")
	}

	if err := r.createIterationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create ideation_iterations table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createSessionsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ideation_sessions (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			problem TEXT NOT NULL,
			domains JSONB NOT NULL DEFAULT '[]',
			environment TEXT NOT NULL DEFAULT 'cli',
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			archived_at TIMESTAMPTZ,
			summary TEXT NOT NULL DEFAULT ''
		)`)
	return err
}

func (r *MigrationRunner) createIterationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ideation_iterations (
			id UUID PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES ideation_sessions(id),
			sequence INTEGER NOT NULL,
			attempted INTEGER NOT NULL DEFAULT 0,
			scored JSONB NOT NULL DEFAULT '[]',
			result JSONB NOT NULL DEFAULT '{}',
			signals JSONB NOT NULL DEFAULT '{}',
			audits JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (session_id, sequence)
		)`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_iterations_session
		ON ideation_iterations(session_id, sequence)`)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_sessions_status
		ON ideation_sessions(status, created_at DESC)`)
	return err
}
