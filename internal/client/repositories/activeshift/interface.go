package activeshift

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/models"
)

// Store tracks the one session currently in progress on this device. It is
// injected into the services so tests can substitute it; there is no
// package-level singleton.
type Store interface {
	// Start records a new active session. It fails with
	// common.ErrAlreadyActive when another session is in progress.
	Start(ctx context.Context, session models.ActiveSession) error

	// Current returns the active session, or nil when none is active.
	Current(ctx context.Context) (*models.ActiveSession, error)

	// CurrentStartTime re-parses the start timestamp from durable storage
	// on every call, so an elapsed-time display stays correct across
	// process restarts. Returns nil when no session is active.
	CurrentStartTime(ctx context.Context) (*time.Time, error)

	// Clear resets the store to empty.
	Clear(ctx context.Context) error
}
