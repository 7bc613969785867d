package geofence

import "time"

// Geofence is a named circular region punches are validated against.
type Geofence struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	RadiusM     float64   `json:"radiusMeters"`
	Active      bool      `json:"active"`
	Color       string    `json:"color,omitempty"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

const (
	MinRadiusM = 10
	MaxRadiusM = 5000
)
