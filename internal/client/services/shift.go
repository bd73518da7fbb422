// Package services orchestrates the fieldshift client operations: session
// transitions, note submission, outbox reconciliation and the derived
// obligation view. State is injected (stores, remote client, location
// provider); nothing here is a package-level singleton.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/location"
	"github.com/dmitrijs2005/fieldshift/internal/client/models"
	"github.com/dmitrijs2005/fieldshift/internal/client/remote"
	"github.com/dmitrijs2005/fieldshift/internal/client/repositories/activeshift"
	"github.com/dmitrijs2005/fieldshift/internal/client/repositories/outbox"
	"github.com/dmitrijs2005/fieldshift/internal/common"
	"github.com/dmitrijs2005/fieldshift/internal/geo"
	"github.com/dmitrijs2005/fieldshift/internal/logging"
)

// Outcome tells the caller whether a write reached the remote store or was
// parked in the outbox. Both count as success for the worker's flow, but a
// UI can show a "pending sync" indicator for OutcomeQueued.
type Outcome string

const (
	// OutcomeConfirmed means the remote store acknowledged the write.
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeQueued means the write awaits reconciliation in the outbox.
	OutcomeQueued Outcome = "queued"
)

// CheckInRequest carries the inputs of a check-in. Target is the subject's
// coordinates; a shift without known coordinates is rejected before any
// network or GPS call.
type CheckInRequest struct {
	SessionID    string
	Target       *geo.Point
	SubjectLabel string
}

// CheckInResult reports a successful check-in.
type CheckInResult struct {
	Outcome        Outcome
	DistanceMeters int
}

// CheckOutResult reports a successful check-out. DurationMinutes is nil
// when the remote check-in time could not be read.
type CheckOutResult struct {
	Outcome         Outcome
	DurationMinutes *int
}

// ShiftService runs the geofence-gated session transitions.
type ShiftService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResult, error)
	CheckOut(ctx context.Context) (*CheckOutResult, error)
}

type shiftService struct {
	remote   remote.Store
	active   activeshift.Store
	outbox   outbox.Repository
	location location.Provider
	radius   float64
	log      logging.Logger
	now      func() time.Time
}

// NewShiftService wires a ShiftService. radiusMeters is the configured
// geofence radius.
func NewShiftService(store remote.Store, active activeshift.Store, queue outbox.Repository,
	loc location.Provider, radiusMeters float64, log logging.Logger) ShiftService {
	return &shiftService{
		remote:   store,
		active:   active,
		outbox:   queue,
		location: loc,
		radius:   radiusMeters,
		log:      log,
		now:      time.Now,
	}
}

// CheckIn validates locally (coordinates known, no session active, device in
// range), then attempts the remote write. A failed write is queued and still
// reported as success with OutcomeQueued: the worker's timer must reflect
// intent immediately even when the network is down.
func (s *shiftService) CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResult, error) {
	if req.Target == nil {
		return nil, common.ErrMissingLocationData
	}

	cur, err := s.active.Current(ctx)
	if err != nil {
		return nil, err
	}
	if cur != nil {
		return nil, common.ErrAlreadyActive
	}

	pos, err := s.location.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrLocationUnavailable, err)
	}

	check := geo.WithinRadius(geo.Point{Lat: pos.Lat, Lon: pos.Lon}, *req.Target, s.radius)
	if !check.Within {
		return nil, &common.OutOfRangeError{DistanceMeters: check.DistanceMeters, RadiusMeters: s.radius}
	}

	now := s.now().UTC()
	rec := &models.SessionRecord{
		SessionID:   req.SessionID,
		CheckInTime: now,
		CheckInGeo:  &models.Geo{Lat: pos.Lat, Lon: pos.Lon},
	}

	outcome := OutcomeConfirmed
	if err := s.remote.UpsertSessionRecord(ctx, rec); err != nil {
		s.log.Warn(ctx, "check-in write failed, queueing",
			"session_id", req.SessionID, "error", err)
		outcome = OutcomeQueued
		m := &models.Mutation{
			Kind:       models.MutationCheckIn,
			SessionID:  req.SessionID,
			OccurredAt: now,
			Geo:        rec.CheckInGeo,
		}
		if err := s.outbox.Enqueue(ctx, m); err != nil {
			return nil, fmt.Errorf("queueing check-in: %w", err)
		}
	}

	s.setShiftStatus(ctx, req.SessionID, models.ShiftInProgress)

	session := models.ActiveSession{
		SessionID:    req.SessionID,
		StartedAt:    now,
		SubjectLabel: req.SubjectLabel,
	}
	if err := s.active.Start(ctx, session); err != nil {
		return nil, err
	}

	return &CheckInResult{Outcome: outcome, DistanceMeters: check.DistanceMeters}, nil
}

// CheckOut ends the active session. Location is best effort: checkout
// proceeds with nil geo when the fix fails. The active session is cleared
// regardless of the remote outcome.
func (s *shiftService) CheckOut(ctx context.Context) (*CheckOutResult, error) {
	cur, err := s.active.Current(ctx)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, common.ErrNoActiveSession
	}

	var geoPoint *models.Geo
	if pos, err := s.location.Current(ctx); err != nil {
		s.log.Warn(ctx, "checking out without location", "session_id", cur.SessionID, "error", err)
	} else {
		geoPoint = &models.Geo{Lat: pos.Lat, Lon: pos.Lon}
	}

	now := s.now().UTC()

	var duration *int
	if rec, err := s.remote.GetSessionRecord(ctx, cur.SessionID); err != nil {
		s.log.Warn(ctx, "check-in record unreadable, duration unknown",
			"session_id", cur.SessionID, "error", err)
	} else {
		d := roundMinutes(now.Sub(rec.CheckInTime))
		duration = &d
	}

	upd := models.SessionCheckOut{
		CheckOutTime:    now,
		CheckOutGeo:     geoPoint,
		CheckOutKind:    models.CheckOutManual,
		DurationMinutes: duration,
	}

	outcome := OutcomeConfirmed
	if err := s.remote.CheckOutSessionRecord(ctx, cur.SessionID, upd); err != nil {
		s.log.Warn(ctx, "check-out write failed, queueing",
			"session_id", cur.SessionID, "error", err)
		outcome = OutcomeQueued
		m := &models.Mutation{
			Kind:       models.MutationCheckOut,
			SessionID:  cur.SessionID,
			OccurredAt: now,
			Geo:        geoPoint,
		}
		if err := s.outbox.Enqueue(ctx, m); err != nil {
			return nil, fmt.Errorf("queueing check-out: %w", err)
		}
	}

	s.setShiftStatus(ctx, cur.SessionID, models.ShiftCompleted)

	if err := s.active.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clearing active session: %w", err)
	}

	return &CheckOutResult{Outcome: outcome, DurationMinutes: duration}, nil
}

// setShiftStatus transitions the parent shift. The call is best effort, but
// a failure enqueues a compensating mutation so reconciliation retries it.
// The dedup key collapses an earlier queued transition onto a later one: a
// queued "completed" supersedes a queued "in_progress" for the same shift.
func (s *shiftService) setShiftStatus(ctx context.Context, sessionID string, status models.ShiftStatus) {
	err := s.remote.SetShiftStatus(ctx, sessionID, status)
	if err == nil {
		return
	}
	s.log.Warn(ctx, "shift status transition failed, queueing",
		"session_id", sessionID, "status", status, "error", err)

	payload, merr := json.Marshal(models.StatusPayload{Status: status})
	if merr != nil {
		s.log.Error(ctx, "encoding status payload", "error", merr)
		return
	}
	m := &models.Mutation{
		Kind:       models.MutationStatusChange,
		SessionID:  sessionID,
		OccurredAt: s.now().UTC(),
		Payload:    payload,
	}
	if err := s.outbox.Enqueue(ctx, m); err != nil {
		s.log.Error(ctx, "queueing status change", "session_id", sessionID, "error", err)
	}
}

// roundMinutes rounds d to the nearest whole minute.
func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
