package geofence

import "math"

const earthRadiusM = 6371000

// Result is the outcome of validating a coordinate against the active
// fences. NoLocation is distinct from "outside every fence" so callers can
// apply different policies to a punch that carried no coordinates at all.
type Result struct {
	NoLocation bool
	WithinAny  bool
	Matched    *Geofence
}

// Validate checks the point against the given fences. A point at distance
// exactly equal to a fence's radius counts as within. When several fences
// contain the point the smallest radius wins; equal radii fall back to the
// lexicographically smaller name so the match is deterministic.
func Validate(lat, lng *float64, fences []Geofence) Result {
	if lat == nil || lng == nil {
		return Result{NoLocation: true}
	}

	var matched *Geofence
	for i := range fences {
		f := &fences[i]
		if !f.Active {
			continue
		}
		if HaversineMeters(*lat, *lng, f.Latitude, f.Longitude) > f.RadiusM {
			continue
		}
		if matched == nil || f.RadiusM < matched.RadiusM ||
			(f.RadiusM == matched.RadiusM && f.Name < matched.Name) {
			matched = f
		}
	}

	if matched == nil {
		return Result{}
	}
	fence := *matched
	return Result{WithinAny: true, Matched: &fence}
}

// HaversineMeters returns the great-circle distance between two coordinates.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// ValidCoordinates reports whether lat/lng are inside WGS84 bounds.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
