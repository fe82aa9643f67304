// Package audit persists search outcomes for offline quality review.
// Write failures are logged, never surfaced to the search caller.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vozclara/fraseo/internal/config"
	"github.com/vozclara/fraseo/internal/observability"
)

// SearchEvent is one recorded search outcome.
type SearchEvent struct {
	ID         uuid.UUID
	Query      string
	Group      string // empty when the query was spelled out
	Phrase     string
	Similarity float64
	SpellOut   bool
	OccurredAt time.Time
}

// Store writes search events to SQLite or Postgres.
type Store struct {
	db     *sql.DB
	logger *observability.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS search_events (
	id          TEXT PRIMARY KEY,
	query       TEXT NOT NULL,
	grupo       TEXT,
	frase       TEXT,
	similitud   DOUBLE PRECISION NOT NULL,
	deletreo    BOOLEAN NOT NULL,
	occurred_at TIMESTAMP NOT NULL
)`

// Open connects to the configured database and ensures the schema
// exists. Returns nil without error when no driver is configured.
func Open(cfg config.DatabaseConfig, logger *observability.Logger) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case "":
		return nil, nil
	case "sqlite":
		db, err = sql.Open("sqlite3", cfg.SQLite.Path)
	case "postgres":
		db, err = sql.Open("postgres", cfg.Postgres.DSN)
		if err == nil {
			db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
			db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
			db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		}
	default:
		return nil, fmt.Errorf("unsupported audit driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create audit schema: %w", err)
	}

	if logger == nil {
		logger = observability.Nop()
	}
	return &Store{db: db, logger: logger.WithComponent("audit")}, nil
}

// Record inserts one search event. A nil store is a no-op, so callers
// need no audit-enabled check.
func (s *Store) Record(ctx context.Context, ev SearchEvent) error {
	if s == nil {
		return nil
	}
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_events (id, query, grupo, frase, similitud, deletreo, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ev.ID.String(), ev.Query, ev.Group, ev.Phrase, ev.Similarity, ev.SpellOut, ev.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert search event: %w", err)
	}
	return nil
}

// Recent returns the newest events, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]SearchEvent, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, grupo, frase, similitud, deletreo, occurred_at
		FROM search_events ORDER BY occurred_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query search events: %w", err)
	}
	defer rows.Close()

	var events []SearchEvent
	for rows.Next() {
		var (
			ev SearchEvent
			id string
		)
		if err := rows.Scan(&id, &ev.Query, &ev.Group, &ev.Phrase, &ev.Similarity, &ev.SpellOut, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan search event: %w", err)
		}
		ev.ID, _ = uuid.Parse(id)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
