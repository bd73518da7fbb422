package models

import (
	"encoding/json"
	"time"
)

// MutationKind enumerates the write operations that can be parked in the
// outbox when the remote store is unreachable.
type MutationKind string

const (
	MutationCheckIn      MutationKind = "check_in"
	MutationCheckOut     MutationKind = "check_out"
	MutationNoteSubmit   MutationKind = "note_submit"
	MutationAssetUpload  MutationKind = "asset_upload"
	MutationStatusChange MutationKind = "status_change"
)

// Geo is an optional coordinate pair attached to a mutation or record.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Mutation is a single write not yet acknowledged by the remote store.
//
// OccurredAt is the client clock at the time of the attempted action and is
// the authoritative event time; CreatedAt only records when the row was
// enqueued. RetryCount is informational and does not bound retries.
type Mutation struct {
	ID         string
	Kind       MutationKind
	SessionID  string
	OccurredAt time.Time
	Geo        *Geo
	Payload    json.RawMessage
	CreatedAt  time.Time
	RetryCount int
}

// NotePayload is the kind-specific payload of a MutationNoteSubmit.
type NotePayload struct {
	AuthorID string `json:"author_id"`
	Body     string `json:"body"`
}

// AssetPayload is the kind-specific payload of a MutationAssetUpload. The
// file stays at LocalPath until the upload is acknowledged.
type AssetPayload struct {
	LocalPath   string `json:"local_path"`
	ObjectKey   string `json:"object_key"`
	ContentType string `json:"content_type,omitempty"`
}

// StatusPayload is the kind-specific payload of a MutationStatusChange,
// compensating a failed best-effort shift status transition.
type StatusPayload struct {
	Status ShiftStatus `json:"status"`
}
