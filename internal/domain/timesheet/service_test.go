package timesheet

import (
	"context"
	"testing"
	"time"

	"ponto/internal/domain/consolidation"
	"ponto/internal/domain/employee"

	"github.com/jackc/pgx/v5"
)

type fakeConsolidator struct {
	rows   map[string]consolidation.DailyConsolidation
	broken map[string]bool
	calls  int
}

func rowKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeConsolidator) Ensure(_ context.Context, employeeID string, date time.Time) (consolidation.DailyConsolidation, error) {
	f.calls++
	if f.broken[employeeID] {
		return consolidation.DailyConsolidation{}, &consolidation.InputError{EmployeeID: employeeID, Reason: "no schedule"}
	}
	if row, ok := f.rows[rowKey(employeeID, date)]; ok {
		return row, nil
	}
	return consolidation.DailyConsolidation{EmployeeID: employeeID, Date: date, ExpectedMinutes: 480, OwedMinutes: 480}, nil
}

type fakeEmployees struct {
	byID map[string]employee.Employee
}

func (f *fakeEmployees) Get(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, pgx.ErrNoRows
	}
	return emp, nil
}

func (f *fakeEmployees) ListActiveIDs(_ context.Context) ([]string, error) {
	return []string{"emp-1", "emp-2"}, nil
}

func newTimesheetFixture() (*Service, *fakeConsolidator) {
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	worked := consolidation.DailyConsolidation{
		EmployeeID: "emp-1", Date: start, WorkedMinutes: 480, ExpectedMinutes: 480,
	}
	cons := &fakeConsolidator{
		rows:   map[string]consolidation.DailyConsolidation{rowKey("emp-1", start): worked},
		broken: map[string]bool{},
	}
	employees := &fakeEmployees{byID: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", Name: "Ana Souza", ScheduledStart: "08:00", ToleranceMinutes: 10, DailyExpectedMinutes: 480},
		"emp-2": {ID: "emp-2", Name: "Bruno Lima", ScheduledStart: "08:00", ToleranceMinutes: 10, DailyExpectedMinutes: 480},
	}}
	return NewService(cons, employees), cons
}

func TestGenerateRangeWalksEveryDay(t *testing.T) {
	svc, cons := newTimesheetFixture()
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 4)

	report, err := svc.GenerateRange(context.Background(), "emp-1", start, end)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(report.Days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(report.Days))
	}
	if cons.calls != 5 {
		t.Fatalf("expected one consolidation per day, got %d", cons.calls)
	}
	if report.EmployeeName != "Ana Souza" {
		t.Fatalf("unexpected employee name %q", report.EmployeeName)
	}
	if report.Summary.TotalExpectedMinutes != 2400 {
		t.Fatalf("expected 2400 expected minutes, got %d", report.Summary.TotalExpectedMinutes)
	}
	if report.Summary.TotalWorkedMinutes != 480 {
		t.Fatalf("expected 480 worked minutes, got %d", report.Summary.TotalWorkedMinutes)
	}
}

func TestGenerateRangeRejectsInvertedRange(t *testing.T) {
	svc, _ := newTimesheetFixture()
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	if _, err := svc.GenerateRange(context.Background(), "emp-1", start, start.AddDate(0, 0, -1)); err == nil {
		t.Fatal("expected inverted range to fail")
	}
}

func TestGenerateRangeSkipsBrokenDays(t *testing.T) {
	svc, cons := newTimesheetFixture()
	cons.broken["emp-1"] = true
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	report, err := svc.GenerateRange(context.Background(), "emp-1", start, start.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(report.Days) != 0 {
		t.Fatalf("broken units must be skipped, got %d days", len(report.Days))
	}
}

func TestGenerateRangeUnknownEmployee(t *testing.T) {
	svc, _ := newTimesheetFixture()
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	if _, err := svc.GenerateRange(context.Background(), "ghost", start, start); err == nil {
		t.Fatal("expected unknown employee to fail")
	}
}

func TestGenerateAttendanceDefaultsToActiveEmployees(t *testing.T) {
	svc, _ := newTimesheetFixture()
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	report, err := svc.GenerateAttendance(context.Background(), nil, start, start)
	if err != nil {
		t.Fatalf("attendance failed: %v", err)
	}
	if len(report.Employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(report.Employees))
	}
	if len(report.LateArrivals) != 2 {
		t.Fatalf("expected 2 late-arrival rows, got %d", len(report.LateArrivals))
	}
}
