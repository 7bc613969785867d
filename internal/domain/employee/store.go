package employee

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  id, name, email, department, active,
  scheduled_start, scheduled_end, daily_expected_minutes, tolerance_minutes, created_at`

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id).Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.Active,
		&e.ScheduledStart, &e.ScheduledEnd, &e.DailyExpectedMinutes, &e.ToleranceMinutes, &e.CreatedAt)
	return e, err
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.Active,
			&e.ScheduledStart, &e.ScheduledEnd, &e.DailyExpectedMinutes, &e.ToleranceMinutes, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// ListActiveIDs feeds the batch consolidation sweep.
func (s *Store) ListActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT id FROM employees WHERE active ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) Create(ctx context.Context, e Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees
      (name, email, department, active, scheduled_start, scheduled_end, daily_expected_minutes, tolerance_minutes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, e.Name, e.Email, e.Department, e.Active, e.ScheduledStart, e.ScheduledEnd,
		e.DailyExpectedMinutes, e.ToleranceMinutes).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, e Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $2, email = $3, department = $4, active = $5,
        scheduled_start = $6, scheduled_end = $7,
        daily_expected_minutes = $8, tolerance_minutes = $9
    WHERE id = $1
  `, e.ID, e.Name, e.Email, e.Department, e.Active, e.ScheduledStart, e.ScheduledEnd,
		e.DailyExpectedMinutes, e.ToleranceMinutes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s not found", e.ID)
	}
	return nil
}
