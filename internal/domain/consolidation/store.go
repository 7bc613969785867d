package consolidation

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const consolidationColumns = `
  employee_id, date, worked_minutes, expected_minutes, extra_minutes, owed_minutes,
  break_minutes, interval_violation_minutes, justified, incomplete,
  COALESCE(justification_id::text, ''), punch_count, first_punch, last_punch, processed_at`

// Upsert writes the row for (employee, date), overwriting any previous run.
func (s *Store) Upsert(ctx context.Context, row DailyConsolidation) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO daily_consolidations
      (employee_id, date, worked_minutes, expected_minutes, extra_minutes, owed_minutes,
       break_minutes, interval_violation_minutes, justified, incomplete,
       justification_id, punch_count, first_punch, last_punch, processed_at)
    VALUES ($1,$2::date,$3,$4,$5,$6,$7,$8,$9,$10,NULLIF($11,'')::uuid,$12,$13,$14,$15)
    ON CONFLICT (employee_id, date) DO UPDATE SET
      worked_minutes = EXCLUDED.worked_minutes,
      expected_minutes = EXCLUDED.expected_minutes,
      extra_minutes = EXCLUDED.extra_minutes,
      owed_minutes = EXCLUDED.owed_minutes,
      break_minutes = EXCLUDED.break_minutes,
      interval_violation_minutes = EXCLUDED.interval_violation_minutes,
      justified = EXCLUDED.justified,
      incomplete = EXCLUDED.incomplete,
      justification_id = EXCLUDED.justification_id,
      punch_count = EXCLUDED.punch_count,
      first_punch = EXCLUDED.first_punch,
      last_punch = EXCLUDED.last_punch,
      processed_at = EXCLUDED.processed_at
  `, row.EmployeeID, row.Date, row.WorkedMinutes, row.ExpectedMinutes, row.ExtraMinutes,
		row.OwedMinutes, row.BreakMinutes, row.IntervalViolationMinutes, row.Justified,
		row.Incomplete, row.JustificationID, row.PunchCount, row.FirstPunch, row.LastPunch,
		row.ProcessedAt)
	return err
}

func (s *Store) Get(ctx context.Context, employeeID string, date time.Time) (DailyConsolidation, bool, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+consolidationColumns+`
    FROM daily_consolidations
    WHERE employee_id = $1 AND date = $2::date
  `, employeeID, date)
	if err != nil {
		return DailyConsolidation{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return DailyConsolidation{}, false, rows.Err()
	}
	row, err := scanRow(rows)
	return row, err == nil, err
}

// ListRange returns the employee's rows with date in [start, end] ascending.
func (s *Store) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]DailyConsolidation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+consolidationColumns+`
    FROM daily_consolidations
    WHERE employee_id = $1 AND date >= $2::date AND date <= $3::date
    ORDER BY date
  `, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyConsolidation
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(r rowScanner) (DailyConsolidation, error) {
	var row DailyConsolidation
	err := r.Scan(&row.EmployeeID, &row.Date, &row.WorkedMinutes, &row.ExpectedMinutes,
		&row.ExtraMinutes, &row.OwedMinutes, &row.BreakMinutes, &row.IntervalViolationMinutes,
		&row.Justified, &row.Incomplete, &row.JustificationID, &row.PunchCount,
		&row.FirstPunch, &row.LastPunch, &row.ProcessedAt)
	return row, err
}
