package justification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidState = errors.New("justification not pending")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// HasApproved reports whether an approved justification exists for the
// employee on the given calendar date. Read-only path used by consolidation.
func (s *Store) HasApproved(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, `
    SELECT EXISTS (
      SELECT 1 FROM justifications
      WHERE employee_id = $1 AND date = $2::date AND status = 'approved'
    )
  `, employeeID, date).Scan(&exists)
	return exists, err
}

// ApprovedID returns the id of the approved justification for the employee
// on the given date, if one exists.
func (s *Store) ApprovedID(ctx context.Context, employeeID string, date time.Time) (string, bool, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    SELECT id FROM justifications
    WHERE employee_id = $1 AND date = $2::date AND status = 'approved'
    ORDER BY reviewed_at DESC
    LIMIT 1
  `, employeeID, date).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return id, true, nil
}

func (s *Store) Create(ctx context.Context, employeeID string, date time.Time, reason string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO justifications (employee_id, date, reason, status)
    VALUES ($1, $2::date, $3, 'pending')
    RETURNING id
  `, employeeID, date, reason).Scan(&id)
	return id, err
}

func (s *Store) List(ctx context.Context, employeeID, status string) ([]Justification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, date, reason, status, COALESCE(reviewed_by, ''), reviewed_at, created_at
    FROM justifications
    WHERE ($1 = '' OR employee_id = $1::uuid)
      AND ($2 = '' OR status = $2)
    ORDER BY date DESC, created_at DESC
  `, employeeID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Justification
	for rows.Next() {
		var j Justification
		if err := rows.Scan(&j.ID, &j.EmployeeID, &j.Date, &j.Reason, &j.Status,
			&j.ReviewedBy, &j.ReviewedAt, &j.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, j)
	}
	return items, rows.Err()
}

// Adjudicate moves a pending justification to approved or rejected.
func (s *Store) Adjudicate(ctx context.Context, id, reviewerID, status string) error {
	if status != StatusApproved && status != StatusRejected {
		return fmt.Errorf("invalid adjudication status %q", status)
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE justifications
    SET status = $2, reviewed_by = $3, reviewed_at = now()
    WHERE id = $1 AND status = 'pending'
  `, id, status, reviewerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}
