// Package store handles the SQLite round log.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/cancatch/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for finished rounds.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations. dsn is
// either a file path or a "file:" URI such as an in-memory database.
func Open(dsn string) (*Store, error) {
	memory := isMemoryDSN(dsn)
	if !memory {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if memory {
		// An in-memory database disappears with its last connection.
		db.SetMaxOpenConns(1)
	}
	store, err := New(db)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// New wraps an open database and applies migrations.
func New(db *sql.DB) (*Store, error) {
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || (strings.HasPrefix(dsn, "file:") && strings.Contains(dsn, "mode=memory"))
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			goal INTEGER NOT NULL,
			count INTEGER NOT NULL,
			won INTEGER NOT NULL,
			spawned INTEGER NOT NULL,
			good_hits INTEGER NOT NULL,
			bad_hits INTEGER NOT NULL,
			expired INTEGER NOT NULL,
			discarded INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRound stores a finished round.
func (s *Store) InsertRound(ctx context.Context, r model.RoundStats) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (id, started_at, ended_at, goal, count, won, spawned, good_hits, bad_hits, expired, discarded, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.StartedAt.Format(time.RFC3339Nano),
		r.EndedAt.Format(time.RFC3339Nano),
		r.Goal,
		r.Count,
		r.Won,
		r.Spawned,
		r.GoodHits,
		r.BadHits,
		r.Expired,
		r.Discarded,
		r.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert round %s: %w", r.ID, err)
	}
	return nil
}

// ListRounds returns the most recent rounds in play order. limit <= 0 returns all.
func (s *Store) ListRounds(ctx context.Context, limit int) ([]model.RoundStats, error) {
	query := `SELECT id, started_at, ended_at, goal, count, won, spawned, good_hits, bad_hits, expired, discarded, duration_ms
		FROM rounds
		ORDER BY rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundStats
	for rows.Next() {
		var r model.RoundStats
		var startedAt, endedAt string
		if err := rows.Scan(&r.ID, &startedAt, &endedAt, &r.Goal, &r.Count, &r.Won, &r.Spawned,
			&r.GoodHits, &r.BadHits, &r.Expired, &r.Discarded, &r.DurationMs); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if r.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(rounds)-1; i < j; i, j = i+1, j-1 {
		rounds[i], rounds[j] = rounds[j], rounds[i]
	}
	return rounds, nil
}

// Aggregate summarizes every stored round. LastCount and Goal come from the
// most recent round.
func (s *Store) Aggregate(ctx context.Context) (model.RoundAggregate, error) {
	var agg model.RoundAggregate
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(count), 0) FROM rounds`)
	if err := row.Scan(&agg.Rounds, &agg.Wins, &agg.BestCount); err != nil {
		return model.RoundAggregate{}, err
	}
	if agg.Rounds == 0 {
		return agg, nil
	}
	row = s.db.QueryRowContext(ctx,
		`SELECT count, goal FROM rounds ORDER BY rowid DESC LIMIT 1`)
	if err := row.Scan(&agg.LastCount, &agg.Goal); err != nil {
		return model.RoundAggregate{}, err
	}
	return agg, nil
}
