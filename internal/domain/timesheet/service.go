package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ponto/internal/domain/consolidation"
	"ponto/internal/domain/employee"
)

// Consolidator supplies per-day rows, consolidating lazily when a day in the
// requested range has not been processed yet.
type Consolidator interface {
	Ensure(ctx context.Context, employeeID string, date time.Time) (consolidation.DailyConsolidation, error)
}

type EmployeeSource interface {
	Get(ctx context.Context, id string) (employee.Employee, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
}

type Service struct {
	Consolidations Consolidator
	Employees      EmployeeSource
}

func NewService(consolidations Consolidator, employees EmployeeSource) *Service {
	return &Service{Consolidations: consolidations, Employees: employees}
}

// GenerateRange builds one employee's timesheet for [start, end]. Days whose
// consolidation input is broken are skipped rather than failing the report.
func (s *Service) GenerateRange(ctx context.Context, employeeID string, start, end time.Time) (Report, error) {
	if end.Before(start) {
		return Report{}, fmt.Errorf("end date before start date")
	}

	emp, err := s.Employees.Get(ctx, employeeID)
	if err != nil {
		return Report{}, err
	}
	sched := emp.Schedule()

	report := Report{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		StartDate:    start,
		EndDate:      end,
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		row, err := s.Consolidations.Ensure(ctx, employeeID, day)
		if err != nil {
			var inputErr *consolidation.InputError
			if errors.As(err, &inputErr) {
				continue
			}
			return Report{}, err
		}
		report.Days = append(report.Days, row)
	}

	report.Summary = Summarize(report.Days, sched)
	return report, nil
}

// GenerateAttendance builds the manager view across a set of employees (all
// active employees when none are given), including the late-arrivals report.
func (s *Service) GenerateAttendance(ctx context.Context, employeeIDs []string, start, end time.Time) (AttendanceReport, error) {
	if len(employeeIDs) == 0 {
		ids, err := s.Employees.ListActiveIDs(ctx)
		if err != nil {
			return AttendanceReport{}, err
		}
		employeeIDs = ids
	}

	report := AttendanceReport{StartDate: start, EndDate: end}
	for _, id := range employeeIDs {
		emp, err := s.GenerateRange(ctx, id, start, end)
		if err != nil {
			return AttendanceReport{}, err
		}
		report.Employees = append(report.Employees, EmployeeSummary{
			EmployeeID:   emp.EmployeeID,
			EmployeeName: emp.EmployeeName,
			Summary:      emp.Summary,
		})
		report.LateArrivals = append(report.LateArrivals, LateArrivalRow{
			EmployeeID:   emp.EmployeeID,
			EmployeeName: emp.EmployeeName,
			LateDays:     emp.Summary.LateDays,
		})
	}

	SortLateArrivals(report.LateArrivals)
	return report, nil
}
