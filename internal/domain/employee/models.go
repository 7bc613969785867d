package employee

import (
	"fmt"
	"time"
)

// Employee is the directory record plus the daily schedule configuration the
// consolidation engine consumes read-only.
type Employee struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Department           string    `json:"department,omitempty"`
	Active               bool      `json:"active"`
	ScheduledStart       string    `json:"scheduledStart"`
	ScheduledEnd         string    `json:"scheduledEnd"`
	DailyExpectedMinutes int       `json:"dailyExpectedMinutes"`
	ToleranceMinutes     int       `json:"toleranceMinutes"`
	CreatedAt            time.Time `json:"createdAt"`
}

// ScheduleConfig is the slice of Employee the consolidation and timesheet
// engines need.
type ScheduleConfig struct {
	EmployeeID           string
	Name                 string
	ScheduledStart       string
	ScheduledEnd         string
	DailyExpectedMinutes int
	ToleranceMinutes     int
}

func (e Employee) Schedule() ScheduleConfig {
	return ScheduleConfig{
		EmployeeID:           e.ID,
		Name:                 e.Name,
		ScheduledStart:       e.ScheduledStart,
		ScheduledEnd:         e.ScheduledEnd,
		DailyExpectedMinutes: e.DailyExpectedMinutes,
		ToleranceMinutes:     e.ToleranceMinutes,
	}
}

// StartOn resolves the configured start time ("08:00") onto a calendar day.
func (c ScheduleConfig) StartOn(day time.Time) (time.Time, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(c.ScheduledStart, "%d:%d", &hour, &minute); err != nil {
		return time.Time{}, fmt.Errorf("malformed scheduled start %q: %w", c.ScheduledStart, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}
