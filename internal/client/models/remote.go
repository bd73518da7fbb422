package models

import "time"

// CheckOutKind distinguishes how a session ended.
type CheckOutKind string

const (
	CheckOutManual   CheckOutKind = "manual"
	CheckOutAuto     CheckOutKind = "auto"
	CheckOutOverride CheckOutKind = "override"
)

// SessionRecord is the canonical remote attendance record for one session.
// DurationMinutes is computed client-side at check-out from the check-in
// time known to the client, which may predate the record existing remotely.
type SessionRecord struct {
	SessionID         string       `json:"session_id"`
	CheckInTime       time.Time    `json:"check_in_time"`
	CheckInGeo        *Geo         `json:"check_in_geo,omitempty"`
	CheckOutTime      *time.Time   `json:"check_out_time,omitempty"`
	CheckOutGeo       *Geo         `json:"check_out_geo,omitempty"`
	CheckOutKind      CheckOutKind `json:"check_out_kind,omitempty"`
	DurationMinutes   *int         `json:"duration_minutes,omitempty"`
	SyncedFromOffline bool         `json:"synced_from_offline"`
}

// SessionCheckOut is the update applied to a SessionRecord at check-out.
type SessionCheckOut struct {
	CheckOutTime      time.Time    `json:"check_out_time"`
	CheckOutGeo       *Geo         `json:"check_out_geo,omitempty"`
	CheckOutKind      CheckOutKind `json:"check_out_kind"`
	DurationMinutes   *int         `json:"duration_minutes,omitempty"`
	SyncedFromOffline bool         `json:"synced_from_offline"`
}

// Note is a visit note keyed by (SessionID, AuthorID). Submitting a second
// note for the same key overwrites rather than duplicates.
type Note struct {
	SessionID   string    `json:"session_id"`
	AuthorID    string    `json:"author_id"`
	Body        string    `json:"body"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ShiftStatus is the parent shift state machine. Transitions normally run
// pending/confirmed -> in_progress -> completed; cancelled can be set
// independently by the office.
type ShiftStatus string

const (
	ShiftPending    ShiftStatus = "pending"
	ShiftConfirmed  ShiftStatus = "confirmed"
	ShiftInProgress ShiftStatus = "in_progress"
	ShiftCompleted  ShiftStatus = "completed"
	ShiftCancelled  ShiftStatus = "cancelled"
)

// Shift is the externally owned parent record a session attends. TargetLat
// and TargetLon are nil when the subject's address has no known coordinates.
type Shift struct {
	ID           string      `json:"id"`
	Status       ShiftStatus `json:"status"`
	SubjectLabel string      `json:"subject_label"`
	TargetLat    *float64    `json:"target_lat,omitempty"`
	TargetLon    *float64    `json:"target_lon,omitempty"`
}
