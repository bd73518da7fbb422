package remote

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/models"
)

// HTTPStore implements Store against the record store's JSON API.
type HTTPStore struct {
	transport *Transport
}

// NewHTTPStore returns a Store speaking to the API behind transport.
func NewHTTPStore(transport *Transport) *HTTPStore {
	return &HTTPStore{transport: transport}
}

func (s *HTTPStore) GetShift(ctx context.Context, shiftID string) (*models.Shift, error) {
	var shift models.Shift
	if err := s.transport.do(ctx, http.MethodGet, "/v1/shifts/"+url.PathEscape(shiftID), nil, nil, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (s *HTTPStore) SetShiftStatus(ctx context.Context, shiftID string, status models.ShiftStatus) error {
	body := struct {
		Status models.ShiftStatus `json:"status"`
	}{Status: status}
	return s.transport.do(ctx, http.MethodPatch, "/v1/shifts/"+url.PathEscape(shiftID)+"/status", nil, body, nil)
}

func (s *HTTPStore) UpsertSessionRecord(ctx context.Context, rec *models.SessionRecord) error {
	return s.transport.do(ctx, http.MethodPut, "/v1/sessions/"+url.PathEscape(rec.SessionID), nil, rec, nil)
}

func (s *HTTPStore) GetSessionRecord(ctx context.Context, sessionID string) (*models.SessionRecord, error) {
	var rec models.SessionRecord
	if err := s.transport.do(ctx, http.MethodGet, "/v1/sessions/"+url.PathEscape(sessionID), nil, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *HTTPStore) CheckOutSessionRecord(ctx context.Context, sessionID string, upd models.SessionCheckOut) error {
	return s.transport.do(ctx, http.MethodPatch, "/v1/sessions/"+url.PathEscape(sessionID)+"/checkout", nil, upd, nil)
}

func (s *HTTPStore) ListCompletedSessions(ctx context.Context, workerID string, since time.Time) ([]models.SessionRecord, error) {
	query := url.Values{}
	query.Set("worker_id", workerID)
	query.Set("checked_out_since", since.UTC().Format(time.RFC3339))

	var records []models.SessionRecord
	if err := s.transport.do(ctx, http.MethodGet, "/v1/sessions", query, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *HTTPStore) UpsertNote(ctx context.Context, note *models.Note) error {
	return s.transport.do(ctx, http.MethodPut, "/v1/notes", nil, note, nil)
}

func (s *HTTPStore) ListNotes(ctx context.Context, authorID string) ([]models.Note, error) {
	query := url.Values{}
	query.Set("author_id", authorID)

	var notes []models.Note
	if err := s.transport.do(ctx, http.MethodGet, "/v1/notes", query, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *HTTPStore) Ping(ctx context.Context) error {
	return s.transport.do(ctx, http.MethodGet, "/v1/health", nil, nil, nil)
}
