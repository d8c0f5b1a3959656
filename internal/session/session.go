package session

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"ideaforge/domain/core"
	"ideaforge/ports"
)

// Manager owns the session lifecycle: creation with a human-readable
// identifier, environment detection, and archival with a run summary.
type Manager struct {
	repo ports.SessionRepository
}

// NewManager creates a session manager
func NewManager(repo ports.SessionRepository) *Manager {
	return &Manager{repo: repo}
}

// NewSessionID builds an identifier of the form <slug>-<timestamp>-<hash6>:
// a slugged topic capped at 20 characters, a second-resolution timestamp,
// and the first 6 hex characters of the topic hash.
func NewSessionID(topic string, now time.Time) core.SessionID {
	return core.SessionID(fmt.Sprintf("%s-%s-%s",
		slugify(topic, 20),
		now.Format("20060102-150405"),
		core.ShortHash([]byte(topic), 6)))
}

func slugify(s string, maxLen int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	slug := b.String()
	if len(slug) > maxLen {
		slug = slug[:maxLen]
	}
	return strings.Trim(slug, "-")
}

// DetectEnvironment reports which environment the session runs in
func DetectEnvironment() string {
	if os.Getenv("VSCODE_PID") != "" || os.Getenv("TERM_PROGRAM") == "vscode" {
		return "editor"
	}
	if os.Getenv("CI") != "" {
		return "ci"
	}
	return "cli"
}

// SeedQueries derives the initial expansion queries for a topic, before the
// first feedback pass supplies generative ones: one variant biased toward
// widely adopted work and one toward recent low-visibility work.
func SeedQueries(topic string) []string {
	return []string{
		fmt.Sprintf("%s established high-adoption approaches", topic),
		fmt.Sprintf("%s recent novel low-visibility approaches", topic),
	}
}

// Create opens a new session and persists its record
func (m *Manager) Create(ctx context.Context, topic, problem string, domains []string) (*ports.SessionRecord, error) {
	rec := &ports.SessionRecord{
		ID:          NewSessionID(topic, time.Now()),
		Topic:       topic,
		Problem:     problem,
		Domains:     domains,
		Environment: DetectEnvironment(),
		Status:      "active",
		CreatedAt:   core.Now(),
	}
	if err := m.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return rec, nil
}

// Archive closes a session with a summary of what it produced
func (m *Manager) Archive(ctx context.Context, id core.SessionID, summary string) error {
	return m.repo.Archive(ctx, id, summary)
}
