package timesheet

import (
	"time"

	"ponto/internal/domain/consolidation"
)

// Report is one employee's timesheet over a date range.
type Report struct {
	EmployeeID   string                             `json:"employeeId"`
	EmployeeName string                             `json:"employeeName"`
	StartDate    time.Time                          `json:"startDate"`
	EndDate      time.Time                          `json:"endDate"`
	Days         []consolidation.DailyConsolidation `json:"days"`
	Summary      Summary                            `json:"summary"`
}

// Summary is the range-level reduction of consolidated days.
type Summary struct {
	TotalWorkedMinutes   int     `json:"totalWorkedMinutes"`
	TotalExpectedMinutes int     `json:"totalExpectedMinutes"`
	BalanceMinutes       int     `json:"balanceMinutes"`
	ExtraMinutes         int     `json:"extraMinutes"`
	OwedMinutes          int     `json:"owedMinutes"`
	LateDays             int     `json:"lateDays"`
	MissingPunchDays     int     `json:"missingPunchDays"`
	JustifiedDays        int     `json:"justifiedDays"`
	AttendanceRate       float64 `json:"attendanceRate"`
}

// AttendanceReport spans many employees for the manager view.
type AttendanceReport struct {
	StartDate    time.Time         `json:"startDate"`
	EndDate      time.Time         `json:"endDate"`
	Employees    []EmployeeSummary `json:"employees"`
	LateArrivals []LateArrivalRow  `json:"lateArrivals"`
}

type EmployeeSummary struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Summary      Summary `json:"summary"`
}

// LateArrivalRow orders employees by how often their first punch landed
// after scheduled start plus tolerance.
type LateArrivalRow struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	LateDays     int    `json:"lateDays"`
}
