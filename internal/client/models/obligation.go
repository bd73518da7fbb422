package models

import "time"

// Obligation is one row of the pending-obligation view: a recently completed
// session that still has no note from this worker. Remaining is the time
// left in the note-writing window, clamped at zero.
type Obligation struct {
	SessionID    string
	SubjectLabel string
	CheckOutTime time.Time
	Remaining    time.Duration
}
