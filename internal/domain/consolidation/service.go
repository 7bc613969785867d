package consolidation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"ponto/internal/domain/employee"
	"ponto/internal/domain/punch"
)

type StoreAPI interface {
	Upsert(ctx context.Context, row DailyConsolidation) error
	Get(ctx context.Context, employeeID string, date time.Time) (DailyConsolidation, bool, error)
	ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]DailyConsolidation, error)
}

type PunchSource interface {
	ListForDay(ctx context.Context, employeeID string, day time.Time) ([]punch.TimePunch, error)
}

type EmployeeSource interface {
	Get(ctx context.Context, id string) (employee.Employee, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
}

type JustificationSource interface {
	ApprovedID(ctx context.Context, employeeID string, date time.Time) (string, bool, error)
}

type EventSink interface {
	Record(ctx context.Context, employeeID, eventType string, payload any) error
}

type Service struct {
	Store           StoreAPI
	Punches         PunchSource
	Employees       EmployeeSource
	Justifications  JustificationSource
	Events          EventSink
	MinBreakMinutes int
	now             func() time.Time
}

func NewService(store StoreAPI, punches PunchSource, employees EmployeeSource, justifications JustificationSource, events EventSink, minBreakMinutes int) *Service {
	return &Service{
		Store:           store,
		Punches:         punches,
		Employees:       employees,
		Justifications:  justifications,
		Events:          events,
		MinBreakMinutes: minBreakMinutes,
		now:             time.Now,
	}
}

// Consolidate reduces one (employee, date) unit and overwrites its row.
// Idempotent: rerunning with unchanged punches writes the same values.
func (s *Service) Consolidate(ctx context.Context, employeeID string, date time.Time) (DailyConsolidation, error) {
	emp, err := s.Employees.Get(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DailyConsolidation{}, &InputError{EmployeeID: employeeID, Reason: "employee not found"}
		}
		return DailyConsolidation{}, err
	}
	if emp.DailyExpectedMinutes <= 0 {
		return DailyConsolidation{}, &InputError{EmployeeID: employeeID, Reason: "schedule has no expected daily minutes"}
	}

	punches, err := s.Punches.ListForDay(ctx, employeeID, date)
	if err != nil {
		return DailyConsolidation{}, err
	}

	justificationID, justified, err := s.Justifications.ApprovedID(ctx, employeeID, date)
	if err != nil {
		return DailyConsolidation{}, err
	}

	row := Build(employeeID, midnight(date), punches, emp.DailyExpectedMinutes, s.MinBreakMinutes, justified)
	row.JustificationID = justificationID
	row.ProcessedAt = s.now().UTC()

	if err := s.Store.Upsert(ctx, row); err != nil {
		return DailyConsolidation{}, err
	}
	return row, nil
}

// RunForDate consolidates every active employee for one date. Units are
// independent: a failing employee is reported and skipped, never aborting
// the sweep. The context is checked between units so a cancelled batch stops
// cleanly and can be resumed later thanks to idempotence.
func (s *Service) RunForDate(ctx context.Context, date time.Time) (BatchResult, error) {
	ids, err := s.Employees.ListActiveIDs(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Date: midnight(date)}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := s.Consolidate(ctx, id, date); err != nil {
			slog.Warn("consolidation unit skipped", "employeeId", id, "date", date.Format("2006-01-02"), "err", err)
			result.Skipped = append(result.Skipped, SkippedUnit{EmployeeID: id, Reason: err.Error()})
			continue
		}
		result.Processed++
	}

	if s.Events != nil {
		if err := s.Events.Record(ctx, "", "consolidation.run", result); err != nil {
			slog.Warn("consolidation event emit failed", "err", err)
		}
	}
	return result, nil
}

// Ensure returns the stored row for (employee, date), consolidating lazily
// when none exists yet.
func (s *Service) Ensure(ctx context.Context, employeeID string, date time.Time) (DailyConsolidation, error) {
	row, found, err := s.Store.Get(ctx, employeeID, date)
	if err != nil {
		return DailyConsolidation{}, err
	}
	if found {
		return row, nil
	}
	return s.Consolidate(ctx, employeeID, date)
}

// ListRange returns the stored rows for an employee between two dates,
// inclusive. Days never consolidated have no row and are simply absent.
func (s *Service) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]DailyConsolidation, error) {
	return s.Store.ListRange(ctx, employeeID, midnight(start), midnight(end))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
