// Package remote implements the client of the canonical record store: a
// JSON API addressable by entity type and key, reached over HTTP. All calls
// can fail with common.ErrRemoteUnavailable; a transient transport failure
// and a server-side error are indistinguishable at this layer.
package remote

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/models"
)

// Store is the remote record store as seen by the client core.
type Store interface {
	// GetShift reads the parent shift, including subject coordinates.
	GetShift(ctx context.Context, shiftID string) (*models.Shift, error)

	// SetShiftStatus transitions the parent shift state machine. The core
	// treats this as a side effect it must trigger but does not own.
	SetShiftStatus(ctx context.Context, shiftID string, status models.ShiftStatus) error

	// UpsertSessionRecord writes the attendance record keyed by session id.
	// Keyed upsert semantics make offline replay safe: a record created by
	// an earlier luckier attempt is overwritten, not duplicated.
	UpsertSessionRecord(ctx context.Context, rec *models.SessionRecord) error

	// GetSessionRecord reads one attendance record. Returns
	// common.ErrorNotFound when the record has not been created yet.
	GetSessionRecord(ctx context.Context, sessionID string) (*models.SessionRecord, error)

	// CheckOutSessionRecord applies the check-out update to an existing
	// record.
	CheckOutSessionRecord(ctx context.Context, sessionID string, upd models.SessionCheckOut) error

	// ListCompletedSessions returns this worker's records with a check-out
	// time at or after since.
	ListCompletedSessions(ctx context.Context, workerID string, since time.Time) ([]models.SessionRecord, error)

	// UpsertNote writes a note keyed by (session id, author id).
	UpsertNote(ctx context.Context, note *models.Note) error

	// ListNotes returns all notes written by the given author.
	ListNotes(ctx context.Context, authorID string) ([]models.Note, error)

	// Ping probes reachability. Used by the connectivity watcher.
	Ping(ctx context.Context) error
}
