package geofencehandler

import "testing"

func TestFencePayloadValidate(t *testing.T) {
	valid := fencePayload{Name: "Matriz", Latitude: -23.5505, Longitude: -46.6333, RadiusM: 200}
	if valid.validate().HasIssues() {
		t.Fatalf("expected valid payload, got %+v", valid.validate().Issues())
	}

	cases := []struct {
		name    string
		payload fencePayload
	}{
		{"missing name", fencePayload{Latitude: -23.5505, Longitude: -46.6333, RadiusM: 200}},
		{"radius too small", fencePayload{Name: "Matriz", Latitude: -23.5505, Longitude: -46.6333, RadiusM: 5}},
		{"radius too large", fencePayload{Name: "Matriz", Latitude: -23.5505, Longitude: -46.6333, RadiusM: 9000}},
		{"latitude out of range", fencePayload{Name: "Matriz", Latitude: 91, Longitude: 0, RadiusM: 200}},
		{"longitude out of range", fencePayload{Name: "Matriz", Latitude: 0, Longitude: -181, RadiusM: 200}},
	}
	for _, tc := range cases {
		if !tc.payload.validate().HasIssues() {
			t.Fatalf("%s: expected validation issue", tc.name)
		}
	}
}

func TestFencePayloadRadiusBoundsInclusive(t *testing.T) {
	low := fencePayload{Name: "Portaria", Latitude: 0, Longitude: 0, RadiusM: 10}
	if low.validate().HasIssues() {
		t.Fatal("minimum radius must be accepted")
	}
	high := fencePayload{Name: "Campus", Latitude: 0, Longitude: 0, RadiusM: 5000}
	if high.validate().HasIssues() {
		t.Fatal("maximum radius must be accepted")
	}
}
