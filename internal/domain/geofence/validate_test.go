package geofence

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestHaversineKnownDistance(t *testing.T) {
	// Sao Paulo cathedral to Paulista avenue, roughly 3.2 km.
	d := HaversineMeters(-23.5505, -46.6333, -23.5614, -46.6559)
	if d < 2500 || d > 4000 {
		t.Fatalf("expected roughly 3.2km, got %.0fm", d)
	}

	if HaversineMeters(-23.5505, -46.6333, -23.5505, -46.6333) != 0 {
		t.Fatal("identical points must be zero meters apart")
	}
}

func TestValidateNoLocationIsDistinct(t *testing.T) {
	fences := []Geofence{{Name: "Matriz", Latitude: 0, Longitude: 0, RadiusM: 100, Active: true}}

	res := Validate(nil, nil, fences)
	if !res.NoLocation || res.WithinAny || res.Matched != nil {
		t.Fatalf("expected pure no-location result, got %+v", res)
	}

	outside := Validate(ptr(10), ptr(10), fences)
	if outside.NoLocation || outside.WithinAny {
		t.Fatalf("expected outside result, got %+v", outside)
	}
}

func TestValidateBoundaryIsInclusive(t *testing.T) {
	center := Geofence{Name: "Matriz", Latitude: -23.5505, Longitude: -46.6333, RadiusM: 0, Active: true}

	// Move due north by exactly 150m and set the radius to the measured
	// distance, so the point sits on the boundary.
	lat := -23.5505 + 150.0/earthRadiusM*180/math.Pi
	center.RadiusM = HaversineMeters(lat, -46.6333, center.Latitude, center.Longitude)

	res := Validate(ptr(lat), ptr(-46.6333), []Geofence{center})
	if !res.WithinAny {
		t.Fatal("point at exactly the radius must count as within")
	}
}

func TestValidateSmallestRadiusWins(t *testing.T) {
	fences := []Geofence{
		{Name: "Campus", Latitude: -23.5505, Longitude: -46.6333, RadiusM: 1000, Active: true},
		{Name: "Portaria", Latitude: -23.5505, Longitude: -46.6333, RadiusM: 50, Active: true},
	}

	res := Validate(ptr(-23.5505), ptr(-46.6333), fences)
	if res.Matched == nil || res.Matched.Name != "Portaria" {
		t.Fatalf("expected the tighter fence to match, got %+v", res.Matched)
	}
}

func TestValidateEqualRadiiTieBreakOnName(t *testing.T) {
	fences := []Geofence{
		{Name: "Filial B", Latitude: -23.5505, Longitude: -46.6333, RadiusM: 100, Active: true},
		{Name: "Filial A", Latitude: -23.5505, Longitude: -46.6333, RadiusM: 100, Active: true},
	}

	res := Validate(ptr(-23.5505), ptr(-46.6333), fences)
	if res.Matched == nil || res.Matched.Name != "Filial A" {
		t.Fatalf("expected lexicographic tie-break, got %+v", res.Matched)
	}
}

func TestValidateIgnoresInactiveFences(t *testing.T) {
	fences := []Geofence{
		{Name: "Desativada", Latitude: -23.5505, Longitude: -46.6333, RadiusM: 500, Active: false},
	}

	res := Validate(ptr(-23.5505), ptr(-46.6333), fences)
	if res.WithinAny {
		t.Fatal("inactive fence must not match")
	}
}

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lng float64
		want     bool
	}{
		{-23.5505, -46.6333, true},
		{90, 180, true},
		{-90, -180, true},
		{90.0001, 0, false},
		{0, 180.0001, false},
		{-91, 0, false},
	}
	for _, tc := range cases {
		if got := ValidCoordinates(tc.lat, tc.lng); got != tc.want {
			t.Fatalf("ValidCoordinates(%v, %v): expected %v, got %v", tc.lat, tc.lng, tc.want, got)
		}
	}
}
