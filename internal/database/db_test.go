package database_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blake7/watchstopwatch/internal/database"
)

func openTestArchive(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenArchive(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countSessions(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n))
	return n
}

func TestWithTxCommits(t *testing.T) {
	db := openTestArchive(t)
	err := database.WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO sessions(id, recorded_at, elapsed_ms, lap_count) VALUES ('a', CURRENT_TIMESTAMP, 10, 0)`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 1, countSessions(t, db))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openTestArchive(t)
	boom := errors.New("boom")
	err := database.WithTx(context.Background(), db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO sessions(id, recorded_at, elapsed_ms, lap_count) VALUES ('a', CURRENT_TIMESTAMP, 10, 1)`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Zero(t, countSessions(t, db))
}
