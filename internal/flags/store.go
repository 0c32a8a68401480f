// Package flags persists one completion flag per guided tour.
package flags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ziadkadry99/cipherlab/internal/db"
)

// ErrNotFound is returned when no flag exists for a key.
var ErrNotFound = errors.New("tour flag not found")

// Flag is the stored state of one tour.
type Flag struct {
	Key         string     `json:"key"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Store manages persistence of tour completion flags. It satisfies
// tour.FlagStore.
type Store struct {
	db *db.DB
}

// NewStore creates a new flag store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Completed reports whether the tour with key has been completed. Unknown
// keys are not completed.
func (s *Store) Completed(ctx context.Context, key string) (bool, error) {
	f, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return f.Completed, nil
}

// MarkCompleted sets the flag for key. Marking an already completed tour
// keeps the original completion time.
func (s *Store) MarkCompleted(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tour_flags (key, completed, completed_at) VALUES (?, 1, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   completed = 1,
		   completed_at = COALESCE(tour_flags.completed_at, excluded.completed_at)`,
		key, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("marking tour %s completed: %w", key, err)
	}
	return nil
}

// Get returns the flag for key.
func (s *Store) Get(ctx context.Context, key string) (*Flag, error) {
	var f Flag
	var completed int
	var completedAt sql.NullTime

	err := s.db.QueryRowContext(ctx,
		`SELECT key, completed, completed_at FROM tour_flags WHERE key = ?`, key,
	).Scan(&f.Key, &completed, &completedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting tour flag: %w", err)
	}
	f.Completed = completed != 0
	if completedAt.Valid {
		f.CompletedAt = &completedAt.Time
	}
	return &f, nil
}

// List returns every stored flag ordered by key.
func (s *Store) List(ctx context.Context) ([]Flag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, completed, completed_at FROM tour_flags ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing tour flags: %w", err)
	}
	defer rows.Close()

	var out []Flag
	for rows.Next() {
		var f Flag
		var completed int
		var completedAt sql.NullTime
		if err := rows.Scan(&f.Key, &completed, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning tour flag: %w", err)
		}
		f.Completed = completed != 0
		if completedAt.Valid {
			t := completedAt.Time
			f.CompletedAt = &t
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Reset clears the flag for key so the tour auto-starts again. It returns
// ErrNotFound when nothing was stored.
func (s *Store) Reset(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tour_flags WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("resetting tour flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resetting tour flag: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetAll clears every flag and returns how many were removed.
func (s *Store) ResetAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tour_flags`)
	if err != nil {
		return 0, fmt.Errorf("resetting tour flags: %w", err)
	}
	return res.RowsAffected()
}
