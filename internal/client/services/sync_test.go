package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/models"
	"github.com/dmitrijs2005/fieldshift/internal/client/repositories/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enqueue(t *testing.T, queue outbox.Repository, m *models.Mutation) {
	t.Helper()
	require.NoError(t, queue.Enqueue(context.Background(), m))
}

func TestReconcile_EmptyQueue(t *testing.T) {
	_, queue := setupRepos(t)
	svc := NewSyncService(newFakeRemote(), queue, nil, testLogger())

	report, err := svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &SyncReport{}, report)
}

func TestReconcile_DrainsSessionInOrder(t *testing.T) {
	rem := newFakeRemote()
	_, queue := setupRepos(t)
	svc := NewSyncService(rem, queue, nil, testLogger())
	ctx := context.Background()

	checkInAt := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	checkOutAt := checkInAt.Add(50 * time.Minute)

	enqueue(t, queue, &models.Mutation{
		Kind:       models.MutationCheckIn,
		SessionID:  "s1",
		OccurredAt: checkInAt,
		Geo:        &models.Geo{Lat: -33.8688, Lon: 151.2093},
	})
	enqueue(t, queue, &models.Mutation{
		Kind:       models.MutationCheckOut,
		SessionID:  "s1",
		OccurredAt: checkOutAt,
	})
	notePayload, _ := json.Marshal(models.NotePayload{AuthorID: "w1", Body: "all done"})
	enqueue(t, queue, &models.Mutation{
		Kind:       models.MutationNoteSubmit,
		SessionID:  "s1",
		OccurredAt: checkOutAt,
		Payload:    notePayload,
	})

	report, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SyncReport{Applied: 3}, report)

	n, err := queue.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	rec := rem.records["s1"]
	require.NotNil(t, rec)
	assert.True(t, rec.SyncedFromOffline)
	assert.True(t, rec.CheckInTime.Equal(checkInAt))
	require.NotNil(t, rec.CheckOutTime)
	assert.True(t, rec.CheckOutTime.Equal(checkOutAt))
	require.NotNil(t, rec.DurationMinutes)
	assert.Equal(t, 50, *rec.DurationMinutes)

	assert.Equal(t, models.ShiftCompleted, rem.statuses["s1"])

	note := rem.notes["s1|w1"]
	require.NotNil(t, note)
	assert.Equal(t, "all done", note.Body)
}

func TestReconcile_FailureHaltsWholeSession(t *testing.T) {
	rem := newFakeRemote()
	rem.failSessions["s1"] = true
	_, queue := setupRepos(t)
	svc := NewSyncService(rem, queue, nil, testLogger())
	ctx := context.Background()

	now := time.Now().UTC()
	enqueue(t, queue, &models.Mutation{Kind: models.MutationCheckIn, SessionID: "s1", OccurredAt: now})
	enqueue(t, queue, &models.Mutation{Kind: models.MutationCheckOut, SessionID: "s1", OccurredAt: now})
	notePayload, _ := json.Marshal(models.NotePayload{AuthorID: "w1", Body: "x"})
	enqueue(t, queue, &models.Mutation{Kind: models.MutationNoteSubmit, SessionID: "s1", OccurredAt: now, Payload: notePayload})

	report, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SyncReport{Failed: 1, Skipped: 2}, report)

	// Nothing dequeued, order preserved for the next pass.
	items, err := queue.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, models.MutationCheckIn, items[0].Kind)
	assert.Equal(t, models.MutationCheckOut, items[1].Kind)
	assert.Equal(t, models.MutationNoteSubmit, items[2].Kind)

	// The failed head got its retry counter bumped, the skipped ones did not.
	assert.Equal(t, 1, items[0].RetryCount)
	assert.Equal(t, 0, items[1].RetryCount)
	assert.Equal(t, 0, items[2].RetryCount)
}

func TestReconcile_OtherSessionsContinuePastHalt(t *testing.T) {
	rem := newFakeRemote()
	rem.failSessions["s1"] = true
	_, queue := setupRepos(t)
	svc := NewSyncService(rem, queue, nil, testLogger())
	ctx := context.Background()

	now := time.Now().UTC()
	enqueue(t, queue, &models.Mutation{Kind: models.MutationCheckIn, SessionID: "s1", OccurredAt: now})
	enqueue(t, queue, &models.Mutation{Kind: models.MutationCheckOut, SessionID: "s1", OccurredAt: now})
	enqueue(t, queue, &models.Mutation{Kind: models.MutationCheckIn, SessionID: "s2", OccurredAt: now})

	report, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SyncReport{Applied: 1, Failed: 1, Skipped: 1}, report)

	require.NotNil(t, rem.records["s2"])
	assert.Equal(t, models.ShiftInProgress, rem.statuses["s2"])

	items, err := queue.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "s1", items[0].SessionID)
	assert.Equal(t, "s1", items[1].SessionID)
}

func TestReconcile_ResumesAfterSessionRecovers(t *testing.T) {
	rem := newFakeRemote()
	rem.failSessions["s1"] = true
	_, queue := setupRepos(t)
	svc := NewSyncService(rem, queue, nil, testLogger())
	ctx := context.Background()

	now := time.Now().UTC()
	enqueue(t, queue, &models.Mutation{Kind: models.MutationCheckIn, SessionID: "s1", OccurredAt: now})
	enqueue(t, queue, &models.Mutation{Kind: models.MutationCheckOut, SessionID: "s1", OccurredAt: now.Add(time.Hour)})

	_, err := svc.Reconcile(ctx)
	require.NoError(t, err)

	rem.failSessions["s1"] = false
	report, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SyncReport{Applied: 2}, report)

	n, err := queue.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	require.NotNil(t, rem.records["s1"].CheckOutTime)
}

func TestReconcile_NoteReplayIdempotent(t *testing.T) {
	rem := newFakeRemote()
	_, queue := setupRepos(t)
	noteSvc := NewNoteService(rem, queue, testLogger())
	svc := NewSyncService(rem, queue, nil, testLogger())
	ctx := context.Background()

	rem.failNote = true
	_, err := noteSvc.Submit(ctx, "s1", "w1", "first draft")
	require.NoError(t, err)
	_, err = noteSvc.Submit(ctx, "s1", "w1", "final text")
	require.NoError(t, err)

	// The dedup key collapses both submissions onto one queued mutation.
	n, err := queue.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rem.failNote = false
	report, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SyncReport{Applied: 1}, report)

	require.Len(t, rem.notes, 1)
	assert.Equal(t, "final text", rem.notes["s1|w1"].Body)
}

func TestReconcile_StatusChangeReplay(t *testing.T) {
	rem := newFakeRemote()
	_, queue := setupRepos(t)
	svc := NewSyncService(rem, queue, nil, testLogger())
	ctx := context.Background()

	payload, _ := json.Marshal(models.StatusPayload{Status: models.ShiftCompleted})
	enqueue(t, queue, &models.Mutation{
		Kind:       models.MutationStatusChange,
		SessionID:  "s1",
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})

	report, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SyncReport{Applied: 1}, report)
	assert.Equal(t, models.ShiftCompleted, rem.statuses["s1"])
}

func TestReconcile_AssetUpload(t *testing.T) {
	rem := newFakeRemote()
	uploader := &fakeUploader{}
	_, queue := setupRepos(t)
	svc := NewSyncService(rem, queue, uploader, testLogger())
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0o600))

	payload, _ := json.Marshal(models.AssetPayload{
		LocalPath:   path,
		ObjectKey:   "sessions/s1/photo.jpg",
		ContentType: "image/jpeg",
	})
	enqueue(t, queue, &models.Mutation{
		Kind:       models.MutationAssetUpload,
		SessionID:  "s1",
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})

	report, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SyncReport{Applied: 1}, report)
	assert.Equal(t, []string{"sessions/s1/photo.jpg"}, uploader.keys)
}

func TestReconcile_AssetUploadWithoutStorageStaysQueued(t *testing.T) {
	rem := newFakeRemote()
	_, queue := setupRepos(t)
	svc := NewSyncService(rem, queue, nil, testLogger())
	ctx := context.Background()

	payload, _ := json.Marshal(models.AssetPayload{LocalPath: "/nope", ObjectKey: "k"})
	enqueue(t, queue, &models.Mutation{
		Kind:       models.MutationAssetUpload,
		SessionID:  "s1",
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})

	report, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SyncReport{Failed: 1}, report)

	n, err := queue.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReconcile_CheckOutReplayRecomputesDuration(t *testing.T) {
	rem := newFakeRemote()
	checkInAt := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	rem.records["s1"] = &models.SessionRecord{SessionID: "s1", CheckInTime: checkInAt}

	_, queue := setupRepos(t)
	svc := NewSyncService(rem, queue, nil, testLogger())
	ctx := context.Background()

	enqueue(t, queue, &models.Mutation{
		Kind:       models.MutationCheckOut,
		SessionID:  "s1",
		OccurredAt: checkInAt.Add(125 * time.Minute),
	})

	report, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SyncReport{Applied: 1}, report)

	rec := rem.records["s1"]
	require.NotNil(t, rec.DurationMinutes)
	assert.Equal(t, 125, *rec.DurationMinutes)
	assert.True(t, rec.SyncedFromOffline)
	assert.Equal(t, models.CheckOutManual, rec.CheckOutKind)
}
