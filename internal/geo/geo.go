// Package geo implements the great-circle distance math used to gate
// check-in on physical proximity to the subject's address.
package geo

import "math"

// earthRadiusMeters is the mean Earth radius assumed by the haversine
// formula.
const earthRadiusMeters = 6371000.0

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceMeters returns the great-circle distance between two coordinates
// using the haversine formula on a spherical Earth. NaN inputs propagate to
// the result; callers validate upstream.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// RadiusCheck is the outcome of a geofence evaluation. DistanceMeters is
// rounded to the nearest whole meter.
type RadiusCheck struct {
	Within         bool
	DistanceMeters int
}

// WithinRadius reports whether current lies within radiusMeters of target.
// Within is true iff the rounded distance does not exceed the radius.
func WithinRadius(current, target Point, radiusMeters float64) RadiusCheck {
	d := math.Round(DistanceMeters(current.Lat, current.Lon, target.Lat, target.Lon))
	return RadiusCheck{
		Within:         d <= radiusMeters,
		DistanceMeters: int(d),
	}
}
