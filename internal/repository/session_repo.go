package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"settingshub/internal/models"
)

type SessionSQLite struct {
	db *sql.DB
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite {
	return &SessionSQLite{db: db}
}

// Ensure implementation of Sessions interface at compile time.
var _ Sessions = (*SessionSQLite)(nil)

const (
	upsertSessionSQL = `INSERT INTO sessions (id, token, created_at) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET token = excluded.token, created_at = excluded.created_at`
	selectSessionSQL        = `SELECT id, token, created_at FROM sessions WHERE id = ?`
	deleteSessionSQL        = `DELETE FROM sessions WHERE id = ?`
	deleteExpiredSessionSQL = `DELETE FROM sessions WHERE created_at < ?`
)

// Save stores or replaces a session row.
func (r *SessionSQLite) Save(ctx context.Context, s models.Session) error {
	if _, err := r.db.ExecContext(ctx, upsertSessionSQL, s.ID, s.Token, s.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("insert session %q: %w", s.ID, err)
	}
	return nil
}

// Get fetches a session by id. Returns (nil, nil) if not found.
func (r *SessionSQLite) Get(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := r.db.QueryRowContext(ctx, selectSessionSQL, id).Scan(&s.ID, &s.Token, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session %q: %w", id, err)
	}
	return &s, nil
}

// Delete removes a session row. Deleting a missing row is not an error.
func (r *SessionSQLite) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionSQL, id); err != nil {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	return nil
}

// DeleteExpired removes sessions created before the cutoff and reports
// how many rows went away.
func (r *SessionSQLite) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredSessionSQL, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count expired sessions: %w", err)
	}
	return n, nil
}
