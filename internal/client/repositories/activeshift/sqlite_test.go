package activeshift

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/models"
	"github.com/dmitrijs2005/fieldshift/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestStart_And_Current(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	started := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)
	require.NoError(t, s.Start(ctx, models.ActiveSession{
		SessionID:    "s1",
		StartedAt:    started,
		SubjectLabel: "Alice B",
	}))

	cur, err := s.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "s1", cur.SessionID)
	assert.Equal(t, "Alice B", cur.SubjectLabel)
	assert.True(t, cur.StartedAt.Equal(started))
}

func TestStart_AlreadyActive(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, s.Start(ctx, models.ActiveSession{SessionID: "s1", StartedAt: time.Now()}))

	err := s.Start(ctx, models.ActiveSession{SessionID: "s2", StartedAt: time.Now()})
	assert.True(t, errors.Is(err, common.ErrAlreadyActive))

	cur, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s1", cur.SessionID, "first session must survive")
}

func TestCurrentStartTime_ReparsesFromStorage(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 29, 7, 15, 0, 0, time.UTC)
	require.NoError(t, NewSQLiteStore(db).Start(ctx, models.ActiveSession{
		SessionID: "s1",
		StartedAt: started,
	}))

	// A fresh store over the same database simulates a process restart.
	ts, err := NewSQLiteStore(db).CurrentStartTime(ctx)
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.True(t, ts.Equal(started))
}

func TestCurrent_EmptyStore(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	cur, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	ts, err := s.CurrentStartTime(ctx)
	require.NoError(t, err)
	assert.Nil(t, ts)
}

func TestClear(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, s.Start(ctx, models.ActiveSession{SessionID: "s1", StartedAt: time.Now()}))
	require.NoError(t, s.Clear(ctx))

	cur, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	// Clearing an empty store is not an error.
	require.NoError(t, s.Clear(ctx))
}
