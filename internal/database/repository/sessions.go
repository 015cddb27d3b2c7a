package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blake7/watchstopwatch/internal/database"
)

// SessionRepo handles archived sessions and their laps.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

// Insert stores s and its laps in one transaction.
func (r *SessionRepo) Insert(ctx context.Context, s Session) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return insertSession(ctx, tx, s)
	})
}

func insertSession(ctx context.Context, tx *sql.Tx, s Session) error {
	_, err := tx.ExecContext(ctx, `
	INSERT INTO sessions(id, recorded_at, elapsed_ms, lap_count)
	VALUES (?, ?, ?, ?);
	`, s.ID, s.RecordedAt.UTC(), s.ElapsedMillis, len(s.Laps))
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	for i, ms := range s.Laps {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO laps(session_id, idx, cumulative_ms) VALUES (?, ?, ?);
		`, s.ID, i, ms); err != nil {
			return fmt.Errorf("insert lap %d: %w", i, err)
		}
	}
	return nil
}

// List returns the most recent sessions first, without laps. A non-positive
// limit returns every session.
func (r *SessionRepo) List(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, recorded_at, elapsed_ms, lap_count
	FROM sessions
	ORDER BY recorded_at DESC, id
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Session{}
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.RecordedAt, &s.ElapsedMillis, &s.LapCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns the session with its laps in recording order.
func (r *SessionRepo) Get(ctx context.Context, id string) (*Session, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, recorded_at, elapsed_ms, lap_count FROM sessions WHERE id = ?`, id)
	var s Session
	if err := row.Scan(&s.ID, &s.RecordedAt, &s.ElapsedMillis, &s.LapCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT cumulative_ms FROM laps WHERE session_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ms int64
		if err := rows.Scan(&ms); err != nil {
			return nil, err
		}
		s.Laps = append(s.Laps, ms)
	}
	return &s, rows.Err()
}

// DeleteAll removes every session and returns how many were removed.
func (r *SessionRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
