package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/models"
	"github.com/dmitrijs2005/fieldshift/internal/client/remote"
	"github.com/dmitrijs2005/fieldshift/internal/client/repositories/outbox"
	"github.com/dmitrijs2005/fieldshift/internal/logging"
)

// NoteService submits visit notes. The remote write is a keyed upsert on
// (session id, author id), so resubmitting overwrites rather than
// duplicates, and offline replay is naturally idempotent.
type NoteService interface {
	Submit(ctx context.Context, sessionID, authorID, body string) (Outcome, error)
}

type noteService struct {
	remote remote.Store
	outbox outbox.Repository
	log    logging.Logger
	now    func() time.Time
}

// NewNoteService wires a NoteService.
func NewNoteService(store remote.Store, queue outbox.Repository, log logging.Logger) NoteService {
	return &noteService{remote: store, outbox: queue, log: log, now: time.Now}
}

func (s *noteService) Submit(ctx context.Context, sessionID, authorID, body string) (Outcome, error) {
	now := s.now().UTC()
	note := &models.Note{
		SessionID:   sessionID,
		AuthorID:    authorID,
		Body:        body,
		SubmittedAt: now,
	}

	if err := s.remote.UpsertNote(ctx, note); err == nil {
		return OutcomeConfirmed, nil
	} else {
		s.log.Warn(ctx, "note write failed, queueing", "session_id", sessionID, "error", err)
	}

	payload, err := json.Marshal(models.NotePayload{AuthorID: authorID, Body: body})
	if err != nil {
		return "", fmt.Errorf("encoding note payload: %w", err)
	}
	m := &models.Mutation{
		Kind:       models.MutationNoteSubmit,
		SessionID:  sessionID,
		OccurredAt: now,
		Payload:    payload,
	}
	if err := s.outbox.Enqueue(ctx, m); err != nil {
		return "", fmt.Errorf("queueing note: %w", err)
	}
	return OutcomeQueued, nil
}
