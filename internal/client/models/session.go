// Package models defines client-side data models used by the fieldshift
// client: the on-device active session, the outbox mutation envelope and the
// remote record shapes.
package models

import "time"

// ActiveSession is the one shift currently in progress on this device.
// At most one session is active at any time; it is persisted so the
// elapsed-time display survives the app being backgrounded or restarted.
type ActiveSession struct {
	// SessionID identifies the shift being attended.
	SessionID string `json:"session_id"`

	// StartedAt is the client-side check-in time in UTC.
	StartedAt time.Time `json:"started_at"`

	// SubjectLabel is the display name of the person being served.
	SubjectLabel string `json:"subject_label"`
}
