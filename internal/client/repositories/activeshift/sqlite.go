// Package activeshift persists the device-wide active session singleton in
// the metadata key-value table.
package activeshift

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/models"
	"github.com/dmitrijs2005/fieldshift/internal/common"
	"github.com/dmitrijs2005/fieldshift/internal/dbx"
)

// sessionKey is the metadata key holding the active session blob.
const sessionKey = "active_session"

// persistedSession is the stored JSON shape. StartedAt is kept as an
// RFC 3339 string and re-parsed on every read rather than cached in memory.
type persistedSession struct {
	SessionID    string `json:"session_id"`
	StartedAt    string `json:"started_at"`
	SubjectLabel string `json:"subject_label"`
}

// SQLiteStore implements Store on top of a DBTX (either *sql.DB or *sql.Tx).
type SQLiteStore struct {
	db dbx.DBTX
}

// NewSQLiteStore returns a new SQLiteStore bound to the given DBTX.
func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) load(ctx context.Context) (*persistedSession, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, sessionKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read active session: %w", err)
	}
	var p persistedSession
	if err := json.Unmarshal(value, &p); err != nil {
		return nil, fmt.Errorf("failed to decode active session: %w", err)
	}
	return &p, nil
}

// Start records session as active. Starting while a session is already
// active returns common.ErrAlreadyActive; the caller must check out first.
func (s *SQLiteStore) Start(ctx context.Context, session models.ActiveSession) error {
	cur, err := s.load(ctx)
	if err != nil {
		return err
	}
	if cur != nil {
		return common.ErrAlreadyActive
	}

	p := persistedSession{
		SessionID:    session.SessionID,
		StartedAt:    session.StartedAt.UTC().Format(time.RFC3339Nano),
		SubjectLabel: session.SubjectLabel,
	}
	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode active session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, sessionKey, value)
	if err != nil {
		return fmt.Errorf("failed to persist active session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Current(ctx context.Context) (*models.ActiveSession, error) {
	p, err := s.load(ctx)
	if err != nil || p == nil {
		return nil, err
	}

	startedAt, err := time.Parse(time.RFC3339Nano, p.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse active session start time: %w", err)
	}
	return &models.ActiveSession{
		SessionID:    p.SessionID,
		StartedAt:    startedAt,
		SubjectLabel: p.SubjectLabel,
	}, nil
}

func (s *SQLiteStore) CurrentStartTime(ctx context.Context) (*time.Time, error) {
	cur, err := s.Current(ctx)
	if err != nil || cur == nil {
		return nil, err
	}
	return &cur.StartedAt, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, sessionKey)
	if err != nil {
		return fmt.Errorf("failed to clear active session: %w", err)
	}
	return nil
}
