package consolidation

import (
	"fmt"
	"time"
)

// DailyConsolidation is the single per-(employee, date) reduction of raw
// punches. One row per key; reruns overwrite it.
type DailyConsolidation struct {
	EmployeeID               string     `json:"employeeId"`
	Date                     time.Time  `json:"date"`
	WorkedMinutes            int        `json:"workedMinutes"`
	ExpectedMinutes          int        `json:"expectedMinutes"`
	ExtraMinutes             int        `json:"extraMinutes"`
	OwedMinutes              int        `json:"owedMinutes"`
	BreakMinutes             int        `json:"breakMinutes"`
	IntervalViolationMinutes int        `json:"intervalViolationMinutes"`
	Justified                bool       `json:"justified"`
	Incomplete               bool       `json:"incomplete"`
	JustificationID          string     `json:"justificationId,omitempty"`
	PunchCount               int        `json:"punchCount"`
	FirstPunch               *time.Time `json:"firstPunch,omitempty"`
	LastPunch                *time.Time `json:"lastPunch,omitempty"`
	ProcessedAt              time.Time  `json:"processedAt"`
}

// InputError marks a unit that cannot be consolidated because its schedule
// configuration is missing or malformed. The batch skips it and continues.
type InputError struct {
	EmployeeID string
	Reason     string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("consolidation input for employee %s: %s", e.EmployeeID, e.Reason)
}

// BatchResult summarizes one sweep over many employee/date units.
type BatchResult struct {
	Date      time.Time     `json:"date"`
	Processed int           `json:"processed"`
	Skipped   []SkippedUnit `json:"skipped,omitempty"`
}

type SkippedUnit struct {
	EmployeeID string `json:"employeeId"`
	Reason     string `json:"reason"`
}
