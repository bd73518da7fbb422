package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/location"
	"github.com/dmitrijs2005/fieldshift/internal/client/models"
	"github.com/dmitrijs2005/fieldshift/internal/common"
	"github.com/dmitrijs2005/fieldshift/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeRemote is an in-memory remote.Store with per-operation failure
// switches and per-session failure for partition tests.
type fakeRemote struct {
	shifts   map[string]*models.Shift
	records  map[string]*models.SessionRecord
	notes    map[string]*models.Note // keyed session_id|author_id
	statuses map[string]models.ShiftStatus

	failUpsertRecord bool
	failGetRecord    bool
	failCheckOut     bool
	failStatus       bool
	failNote         bool
	failList         bool
	failShift        bool
	failSessions     map[string]bool

	pingErr error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		shifts:       make(map[string]*models.Shift),
		records:      make(map[string]*models.SessionRecord),
		notes:        make(map[string]*models.Note),
		statuses:     make(map[string]models.ShiftStatus),
		failSessions: make(map[string]bool),
	}
}

func (f *fakeRemote) sessionDown(id string) error {
	if f.failSessions[id] {
		return fmt.Errorf("session %s: %w", id, common.ErrRemoteUnavailable)
	}
	return nil
}

func (f *fakeRemote) GetShift(ctx context.Context, shiftID string) (*models.Shift, error) {
	if f.failShift {
		return nil, common.ErrRemoteUnavailable
	}
	s, ok := f.shifts[shiftID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s, nil
}

func (f *fakeRemote) SetShiftStatus(ctx context.Context, shiftID string, status models.ShiftStatus) error {
	if f.failStatus {
		return common.ErrRemoteUnavailable
	}
	if err := f.sessionDown(shiftID); err != nil {
		return err
	}
	f.statuses[shiftID] = status
	return nil
}

func (f *fakeRemote) UpsertSessionRecord(ctx context.Context, rec *models.SessionRecord) error {
	if f.failUpsertRecord {
		return common.ErrRemoteUnavailable
	}
	if err := f.sessionDown(rec.SessionID); err != nil {
		return err
	}
	cp := *rec
	f.records[rec.SessionID] = &cp
	return nil
}

func (f *fakeRemote) GetSessionRecord(ctx context.Context, sessionID string) (*models.SessionRecord, error) {
	if f.failGetRecord {
		return nil, common.ErrRemoteUnavailable
	}
	if err := f.sessionDown(sessionID); err != nil {
		return nil, err
	}
	rec, ok := f.records[sessionID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeRemote) CheckOutSessionRecord(ctx context.Context, sessionID string, upd models.SessionCheckOut) error {
	if f.failCheckOut {
		return common.ErrRemoteUnavailable
	}
	if err := f.sessionDown(sessionID); err != nil {
		return err
	}
	rec, ok := f.records[sessionID]
	if !ok {
		return common.ErrorNotFound
	}
	t := upd.CheckOutTime
	rec.CheckOutTime = &t
	rec.CheckOutGeo = upd.CheckOutGeo
	rec.CheckOutKind = upd.CheckOutKind
	rec.DurationMinutes = upd.DurationMinutes
	if upd.SyncedFromOffline {
		rec.SyncedFromOffline = true
	}
	return nil
}

func (f *fakeRemote) ListCompletedSessions(ctx context.Context, workerID string, since time.Time) ([]models.SessionRecord, error) {
	if f.failList {
		return nil, common.ErrRemoteUnavailable
	}
	var result []models.SessionRecord
	for _, rec := range f.records {
		if rec.CheckOutTime != nil && !rec.CheckOutTime.Before(since) {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func (f *fakeRemote) UpsertNote(ctx context.Context, note *models.Note) error {
	if f.failNote {
		return common.ErrRemoteUnavailable
	}
	if err := f.sessionDown(note.SessionID); err != nil {
		return err
	}
	cp := *note
	f.notes[note.SessionID+"|"+note.AuthorID] = &cp
	return nil
}

func (f *fakeRemote) ListNotes(ctx context.Context, authorID string) ([]models.Note, error) {
	if f.failList {
		return nil, common.ErrRemoteUnavailable
	}
	var result []models.Note
	for _, n := range f.notes {
		if n.AuthorID == authorID {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (f *fakeRemote) Ping(ctx context.Context) error {
	return f.pingErr
}

// fakeLocation returns a fixed position or a failure, counting calls.
type fakeLocation struct {
	pos   *location.Position
	err   error
	calls int
}

func (f *fakeLocation) Current(ctx context.Context) (*location.Position, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pos, nil
}

// fakeUploader records uploaded object keys.
type fakeUploader struct {
	keys []string
	err  error
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	if f.err != nil {
		return f.err
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return err
	}
	f.keys = append(f.keys, key)
	return nil
}
