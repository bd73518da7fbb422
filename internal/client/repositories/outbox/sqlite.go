// Package outbox persists the pending mutation queue in SQLite.
package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/models"
	"github.com/dmitrijs2005/fieldshift/internal/dbx"
	"github.com/google/uuid"
)

// SQLiteRepository implements Repository. It holds the *sql.DB (not a DBTX)
// because Enqueue needs its own read-modify-write transaction for dedup.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to db.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// dedupes reports whether kind collapses onto a (session_id, kind) key.
// Asset uploads are excluded: each carries a distinct object key.
func dedupes(kind models.MutationKind) bool {
	switch kind {
	case models.MutationCheckIn, models.MutationCheckOut,
		models.MutationNoteSubmit, models.MutationStatusChange:
		return true
	}
	return false
}

func (r *SQLiteRepository) Enqueue(ctx context.Context, m *models.Mutation) error {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	m.RetryCount = 0

	var lat, lon any
	if m.Geo != nil {
		lat, lon = m.Geo.Lat, m.Geo.Lon
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if dedupes(m.Kind) {
			var existing string
			err := tx.QueryRowContext(ctx,
				`SELECT id FROM outbox WHERE session_id = ? AND kind = ?`,
				m.SessionID, m.Kind).Scan(&existing)
			if err != nil && err != sql.ErrNoRows {
				return fmt.Errorf("failed to check outbox dedup key: %w", err)
			}
			if err == nil {
				// Collapse onto the existing row: queue position and id are
				// kept, payload and event time are replaced.
				m.ID = existing
				_, err = tx.ExecContext(ctx, `
					UPDATE outbox
					SET occurred_at = ?, lat = ?, lon = ?, payload = ?
					WHERE id = ?`,
					m.OccurredAt.UTC().Format(time.RFC3339Nano), lat, lon, []byte(m.Payload), existing)
				if err != nil {
					return fmt.Errorf("failed to replace queued mutation: %w", err)
				}
				return nil
			}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO outbox (id, kind, session_id, occurred_at, lat, lon, payload, created_at, retry_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)`,
			m.ID, m.Kind, m.SessionID,
			m.OccurredAt.UTC().Format(time.RFC3339Nano),
			lat, lon, []byte(m.Payload),
			m.CreatedAt.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to enqueue mutation: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Mutation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, session_id, occurred_at, lat, lon, payload, created_at, retry_count
		FROM outbox ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to select outbox: %w", err)
	}
	defer rows.Close()

	var result []models.Mutation
	for rows.Next() {
		var (
			item                 models.Mutation
			occurredAt, createdAt string
			lat, lon             sql.NullFloat64
			payload              []byte
		)
		if err := rows.Scan(&item.ID, &item.Kind, &item.SessionID, &occurredAt,
			&lat, &lon, &payload, &createdAt, &item.RetryCount); err != nil {
			return nil, fmt.Errorf("failed to scan outbox row: %w", err)
		}
		if item.OccurredAt, err = time.Parse(time.RFC3339Nano, occurredAt); err != nil {
			return nil, fmt.Errorf("failed to parse occurred_at: %w", err)
		}
		if item.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if lat.Valid && lon.Valid {
			item.Geo = &models.Geo{Lat: lat.Float64, Lon: lon.Float64}
		}
		if len(payload) > 0 {
			item.Payload = payload
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outbox rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Dequeue(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM outbox WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to dequeue mutation %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Touch(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE outbox SET retry_count = retry_count + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to touch mutation %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM outbox`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count outbox: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM outbox`)
	if err != nil {
		return fmt.Errorf("failed to clear outbox: %w", err)
	}
	return nil
}
