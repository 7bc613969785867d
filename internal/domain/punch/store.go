package punch

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB        *pgxpool.Pool
	Sequencer Sequencer
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const punchColumns = `
  id, employee_id, punched_at, punch_type, method, nsr, hash,
  latitude, longitude, accuracy_m, within_fence, fence_name,
  face_score, ip, user_agent, notes, created_at`

// Insert allocates the NSR and persists the punch as one transaction. Either
// both happen or neither does.
func (s *Store) Insert(ctx context.Context, p TimePunch) (TimePunch, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return TimePunch{}, &PersistenceError{Op: "begin punch insert", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	nsr, err := s.Sequencer.Next(ctx, tx)
	if err != nil {
		return TimePunch{}, err
	}
	p.NSR = nsr

	err = tx.QueryRow(ctx, `
    INSERT INTO time_punches
      (employee_id, punched_at, punch_type, method, nsr, hash,
       latitude, longitude, accuracy_m, within_fence, fence_name,
       face_score, ip, user_agent, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
    RETURNING id, created_at
  `, p.EmployeeID, p.PunchedAt, p.Type, p.Method, int64(p.NSR), p.Hash,
		p.Latitude, p.Longitude, p.AccuracyM, p.WithinFence, nullIfEmpty(p.FenceName),
		p.FaceScore, p.IP, p.UserAgent, p.Notes).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return TimePunch{}, &PersistenceError{Op: "punch insert", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return TimePunch{}, &PersistenceError{Op: "punch commit", Err: err}
	}
	return p, nil
}

// ListForDay returns the employee's punches for one calendar day ordered by
// punch timestamp.
func (s *Store) ListForDay(ctx context.Context, employeeID string, day time.Time) ([]TimePunch, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.listRange(ctx, employeeID, start, start.AddDate(0, 0, 1))
}

// ListRange returns the employee's punches with punched_at in [start, end).
func (s *Store) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]TimePunch, error) {
	return s.listRange(ctx, employeeID, start, end)
}

func (s *Store) listRange(ctx context.Context, employeeID string, start, end time.Time) ([]TimePunch, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+punchColumns+`
    FROM time_punches
    WHERE employee_id = $1 AND punched_at >= $2 AND punched_at < $3
    ORDER BY punched_at, nsr
  `, employeeID, start, end)
	if err != nil {
		return nil, &PersistenceError{Op: "punch list", Err: err}
	}
	defer rows.Close()
	return scanPunches(rows)
}

// ListByNSR returns every punch ordered by NSR, for integrity audits.
func (s *Store) ListByNSR(ctx context.Context) ([]TimePunch, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+punchColumns+`
    FROM time_punches
    ORDER BY nsr
  `)
	if err != nil {
		return nil, &PersistenceError{Op: "punch list by nsr", Err: err}
	}
	defer rows.Close()
	return scanPunches(rows)
}

func scanPunches(rows pgx.Rows) ([]TimePunch, error) {
	var punches []TimePunch
	for rows.Next() {
		var p TimePunch
		var nsr int64
		var fenceName *string
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.PunchedAt, &p.Type, &p.Method,
			&nsr, &p.Hash, &p.Latitude, &p.Longitude, &p.AccuracyM, &p.WithinFence,
			&fenceName, &p.FaceScore, &p.IP, &p.UserAgent, &p.Notes, &p.CreatedAt); err != nil {
			return nil, &PersistenceError{Op: "punch scan", Err: err}
		}
		p.NSR = uint64(nsr)
		if fenceName != nil {
			p.FenceName = *fenceName
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "punch rows", Err: err}
	}
	return punches, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
