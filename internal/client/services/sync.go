package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/assets"
	"github.com/dmitrijs2005/fieldshift/internal/client/models"
	"github.com/dmitrijs2005/fieldshift/internal/client/remote"
	"github.com/dmitrijs2005/fieldshift/internal/client/repositories/outbox"
	"github.com/dmitrijs2005/fieldshift/internal/logging"
)

// SyncReport summarizes one reconciliation pass.
type SyncReport struct {
	// Applied mutations were confirmed by the remote store and dequeued.
	Applied int
	// Failed mutations stay queued; each failure halts its session's
	// partition for this pass.
	Failed int
	// Skipped mutations sat behind a failed one in the same session.
	Skipped int
}

// SyncService drains the outbox against the remote store. Replay is FIFO
// within each session; a failed mutation halts only that session's
// partition, so one stuck session cannot block the rest of the queue.
// There is no backoff: the next connectivity-regained event or explicit
// invocation retries from the surviving queue.
type SyncService interface {
	Reconcile(ctx context.Context) (*SyncReport, error)
}

type syncService struct {
	remote   remote.Store
	outbox   outbox.Repository
	uploader assets.Uploader
	log      logging.Logger
	now      func() time.Time

	// mu serializes passes so a manual sync and a watcher-triggered one
	// never interleave.
	mu sync.Mutex
}

// NewSyncService wires a SyncService. uploader may be nil when no asset
// storage is configured; queued asset uploads then fail and stay queued.
func NewSyncService(store remote.Store, queue outbox.Repository, uploader assets.Uploader, log logging.Logger) SyncService {
	return &syncService{remote: store, outbox: queue, uploader: uploader, log: log, now: time.Now}
}

func (s *syncService) Reconcile(ctx context.Context) (*SyncReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.outbox.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing outbox: %w", err)
	}

	report := &SyncReport{}
	if len(pending) == 0 {
		return report, nil
	}

	halted := make(map[string]bool)
	for i := range pending {
		m := &pending[i]
		if halted[m.SessionID] {
			report.Skipped++
			continue
		}

		if err := s.apply(ctx, m); err != nil {
			s.log.Warn(ctx, "replay failed, halting session partition",
				"mutation_id", m.ID, "kind", m.Kind, "session_id", m.SessionID, "error", err)
			halted[m.SessionID] = true
			report.Failed++
			if terr := s.outbox.Touch(ctx, m.ID); terr != nil {
				s.log.Error(ctx, "bumping retry count", "mutation_id", m.ID, "error", terr)
			}
			continue
		}

		// Removed only after confirmed application.
		if err := s.outbox.Dequeue(ctx, m.ID); err != nil {
			return report, fmt.Errorf("dequeueing mutation %s: %w", m.ID, err)
		}
		report.Applied++
	}

	return report, nil
}

// apply replays one mutation against the remote store.
func (s *syncService) apply(ctx context.Context, m *models.Mutation) error {
	switch m.Kind {
	case models.MutationCheckIn:
		rec := &models.SessionRecord{
			SessionID:         m.SessionID,
			CheckInTime:       m.OccurredAt,
			CheckInGeo:        m.Geo,
			SyncedFromOffline: true,
		}
		if err := s.remote.UpsertSessionRecord(ctx, rec); err != nil {
			return err
		}
		return s.remote.SetShiftStatus(ctx, m.SessionID, models.ShiftInProgress)

	case models.MutationCheckOut:
		rec, err := s.remote.GetSessionRecord(ctx, m.SessionID)
		if err != nil {
			return err
		}
		d := roundMinutes(m.OccurredAt.Sub(rec.CheckInTime))
		upd := models.SessionCheckOut{
			CheckOutTime:      m.OccurredAt,
			CheckOutGeo:       m.Geo,
			CheckOutKind:      models.CheckOutManual,
			DurationMinutes:   &d,
			SyncedFromOffline: true,
		}
		if err := s.remote.CheckOutSessionRecord(ctx, m.SessionID, upd); err != nil {
			return err
		}
		return s.remote.SetShiftStatus(ctx, m.SessionID, models.ShiftCompleted)

	case models.MutationNoteSubmit:
		var p models.NotePayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return fmt.Errorf("decoding note payload: %w", err)
		}
		note := &models.Note{
			SessionID:   m.SessionID,
			AuthorID:    p.AuthorID,
			Body:        p.Body,
			SubmittedAt: m.OccurredAt,
		}
		return s.remote.UpsertNote(ctx, note)

	case models.MutationAssetUpload:
		if s.uploader == nil {
			return fmt.Errorf("no asset storage configured")
		}
		var p models.AssetPayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return fmt.Errorf("decoding asset payload: %w", err)
		}
		f, err := os.Open(p.LocalPath)
		if err != nil {
			return fmt.Errorf("opening queued asset: %w", err)
		}
		defer f.Close()
		return s.uploader.Upload(ctx, p.ObjectKey, p.ContentType, f)

	case models.MutationStatusChange:
		var p models.StatusPayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return fmt.Errorf("decoding status payload: %w", err)
		}
		return s.remote.SetShiftStatus(ctx, m.SessionID, p.Status)
	}

	return fmt.Errorf("unknown mutation kind %q", m.Kind)
}
