// Package sqlite provides a SQLite-backed implementation of the run
// repository port. The default DSN is ":memory:" so the service keeps no
// on-disk state unless a file path is configured.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/core/ports"
)

// Adapter implements the run repository port for SQLite.
type Adapter struct {
	db *sql.DB
}

var _ ports.RunRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(dsn string) (*Adapter, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// A plain :memory: DSN gives every pooled connection its own empty
	// database, so the pool must stay at one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) migrate() error {
	_, err := a.db.Exec(`
		CREATE TABLE IF NOT EXISTS radio_runs (
			id TEXT PRIMARY KEY,
			strategy TEXT NOT NULL,
			seed_id TEXT NOT NULL,
			seed_title TEXT NOT NULL,
			seed_artist TEXT NOT NULL,
			attempted INTEGER NOT NULL,
			succeeded INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			seed_features TEXT,
			created_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

// SaveRun inserts one completed radio run.
func (a *Adapter) SaveRun(ctx context.Context, run domain.RadioRun) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO radio_runs
			(id, strategy, seed_id, seed_title, seed_artist, attempted, succeeded, failed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		string(run.Strategy),
		run.SeedID,
		run.SeedTitle,
		run.SeedArtist,
		run.Summary.Attempted,
		run.Summary.Succeeded,
		run.Summary.Failed,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// UpdateRunFeatures attaches seed audio features to a stored run.
func (a *Adapter) UpdateRunFeatures(ctx context.Context, runID string, features map[string]float64) error {
	encoded, err := json.Marshal(features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}

	res, err := a.db.ExecContext(ctx,
		"UPDATE radio_runs SET seed_features = ? WHERE id = ?",
		string(encoded), runID)
	if err != nil {
		return fmt.Errorf("failed to update run features: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ListRecent returns up to limit runs, newest first.
func (a *Adapter) ListRecent(ctx context.Context, limit int) ([]domain.RadioRun, error) {
	if limit < 1 {
		limit = 20
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, strategy, seed_id, seed_title, seed_artist,
			attempted, succeeded, failed, seed_features, created_at
		FROM radio_runs
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	defer rows.Close()

	runs := []domain.RadioRun{}
	for rows.Next() {
		var run domain.RadioRun
		var strategy string
		var features sql.NullString
		var createdAt time.Time
		if err := rows.Scan(
			&run.ID,
			&strategy,
			&run.SeedID,
			&run.SeedTitle,
			&run.SeedArtist,
			&run.Summary.Attempted,
			&run.Summary.Succeeded,
			&run.Summary.Failed,
			&features,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Strategy = domain.Strategy(strategy)
		run.CreatedAt = createdAt
		if features.Valid && features.String != "" {
			if err := json.Unmarshal([]byte(features.String), &run.SeedFeatures); err != nil {
				return nil, fmt.Errorf("failed to decode run features: %w", err)
			}
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}
