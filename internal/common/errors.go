// Package common defines shared constants and sentinel errors used across
// the fieldshift client layers. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Local validation errors, returned synchronously to the caller.
	// These are never queued and never retried.
	ErrMissingLocationData = errors.New("shift has no subject coordinates")
	ErrLocationUnavailable = errors.New("device location unavailable")
	ErrNoActiveSession     = errors.New("no active session")
	ErrAlreadyActive       = errors.New("a session is already active on this device")

	// Remote errors. A transient transport failure and a server-side error
	// are indistinguishable to this client; both map here.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// OutOfRangeError reports a geofence rejection together with the measured
// distance to the target, rounded to whole meters.
type OutOfRangeError struct {
	DistanceMeters int
	RadiusMeters   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("out of range: %dm from target (radius %.0fm)", e.DistanceMeters, e.RadiusMeters)
}
