package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/models"
	"github.com/dmitrijs2005/fieldshift/internal/client/remote"
	"github.com/dmitrijs2005/fieldshift/internal/logging"
)

// ObligationService computes the pending-obligation view: sessions checked
// out within the note window that still have no note from this worker. The
// view is derived on demand from remote records only; it never touches the
// outbox. Past the window an obligation silently ages out rather than being
// flagged overdue.
type ObligationService interface {
	Pending(ctx context.Context, workerID string) ([]models.Obligation, error)
}

type obligationService struct {
	remote remote.Store
	window time.Duration
	log    logging.Logger
	now    func() time.Time
}

// NewObligationService wires an ObligationService. window is how long after
// check-out a note may still be written (normally 24 hours).
func NewObligationService(store remote.Store, window time.Duration, log logging.Logger) ObligationService {
	return &obligationService{remote: store, window: window, log: log, now: time.Now}
}

func (s *obligationService) Pending(ctx context.Context, workerID string) ([]models.Obligation, error) {
	now := s.now().UTC()
	since := now.Add(-s.window)

	sessions, err := s.remote.ListCompletedSessions(ctx, workerID, since)
	if err != nil {
		return nil, fmt.Errorf("listing completed sessions: %w", err)
	}
	notes, err := s.remote.ListNotes(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	noted := make(map[string]bool, len(notes))
	for _, n := range notes {
		noted[n.SessionID] = true
	}

	var result []models.Obligation
	for _, rec := range sessions {
		if rec.CheckOutTime == nil || noted[rec.SessionID] {
			continue
		}
		// Backstop for servers that ignore the since filter.
		if rec.CheckOutTime.Before(since) {
			continue
		}

		remaining := rec.CheckOutTime.Add(s.window).Sub(now)
		if remaining < 0 {
			remaining = 0
		}

		result = append(result, models.Obligation{
			SessionID:    rec.SessionID,
			SubjectLabel: s.subjectLabel(ctx, rec.SessionID),
			CheckOutTime: *rec.CheckOutTime,
			Remaining:    remaining,
		})
	}
	return result, nil
}

// subjectLabel enriches a row from the parent shift; a failed lookup leaves
// the label empty rather than failing the whole view.
func (s *obligationService) subjectLabel(ctx context.Context, sessionID string) string {
	shift, err := s.remote.GetShift(ctx, sessionID)
	if err != nil {
		s.log.Warn(ctx, "shift lookup failed for obligation row", "session_id", sessionID, "error", err)
		return ""
	}
	return shift.SubjectLabel
}
