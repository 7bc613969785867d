package punch

import "time"

const (
	TypeEntry      = "entry"
	TypeBreakStart = "break_start"
	TypeBreakEnd   = "break_end"
	TypeExit       = "exit"
)

const (
	MethodCode        = "code"
	MethodQR          = "qr"
	MethodFacial      = "facial"
	MethodFingerprint = "fingerprint"
)

// TimePunch is one clock event. Rows are append-only: corrections happen
// through justifications, never by editing or deleting a punch.
type TimePunch struct {
	ID          int64     `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	PunchedAt   time.Time `json:"punchedAt"`
	Type        string    `json:"type"`
	Method      string    `json:"method"`
	NSR         uint64    `json:"nsr"`
	Hash        string    `json:"hash"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	AccuracyM   *float64  `json:"accuracyMeters,omitempty"`
	WithinFence *bool     `json:"withinFence,omitempty"`
	FenceName   string    `json:"fenceName,omitempty"`
	FaceScore   *float64  `json:"faceScore,omitempty"`
	IP          string    `json:"ip,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RecordRequest carries the caller-supplied fields of a punch; NSR, hash and
// geofence snapshot are assigned by the recorder.
type RecordRequest struct {
	EmployeeID string
	Type       string
	At         time.Time
	Method     string
	Latitude   *float64
	Longitude  *float64
	AccuracyM  *float64
	FaceScore  *float64
	IP         string
	UserAgent  string
	Notes      string
}

func ValidType(t string) bool {
	switch t {
	case TypeEntry, TypeBreakStart, TypeBreakEnd, TypeExit:
		return true
	}
	return false
}

func ValidMethod(m string) bool {
	switch m {
	case MethodCode, MethodQR, MethodFacial, MethodFingerprint:
		return true
	}
	return false
}
