// Package location abstracts device position acquisition. The sync core
// only needs the capability seam: a single fix or a failure. Accuracy-based
// retry, GPS warm-up and permission prompts belong to the implementation.
package location

import "context"

// Position is a device fix. Accuracy is the estimated error in meters.
type Position struct {
	Lat      float64
	Lon      float64
	Accuracy float64
}

// Provider acquires the current device position.
type Provider interface {
	Current(ctx context.Context) (*Position, error)
}
