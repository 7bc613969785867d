package geofence

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

func (s *Store) List(ctx context.Context) ([]Geofence, error) {
	return s.list(ctx, false)
}

// ListActive returns only the fences punches are currently validated
// against. Deactivated fences stay in history but never match new punches.
func (s *Store) ListActive(ctx context.Context) ([]Geofence, error) {
	return s.list(ctx, true)
}

func (s *Store) list(ctx context.Context, activeOnly bool) ([]Geofence, error) {
	query := `
    SELECT id, name, description, latitude, longitude, radius_m, active, color, created_by, created_at
    FROM geofences`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fences []Geofence
	for rows.Next() {
		var f Geofence
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Latitude, &f.Longitude,
			&f.RadiusM, &f.Active, &f.Color, &f.CreatedBy, &f.CreatedAt); err != nil {
			return nil, err
		}
		fences = append(fences, f)
	}
	return fences, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Geofence, error) {
	var f Geofence
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, description, latitude, longitude, radius_m, active, color, created_by, created_at
    FROM geofences
    WHERE id = $1
  `, id).Scan(&f.ID, &f.Name, &f.Description, &f.Latitude, &f.Longitude,
		&f.RadiusM, &f.Active, &f.Color, &f.CreatedBy, &f.CreatedAt)
	return f, err
}

func (s *Store) Create(ctx context.Context, f Geofence) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO geofences (name, description, latitude, longitude, radius_m, active, color, created_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, f.Name, f.Description, f.Latitude, f.Longitude, f.RadiusM, f.Active, f.Color, f.CreatedBy).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, f Geofence) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE geofences
    SET name = $2, description = $3, latitude = $4, longitude = $5,
        radius_m = $6, active = $7, color = $8
    WHERE id = $1
  `, f.ID, f.Name, f.Description, f.Latitude, f.Longitude, f.RadiusM, f.Active, f.Color)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("geofence %s not found", f.ID)
	}
	return nil
}

// Delete removes a fence outright when no punch references it by name, and
// soft-disables it otherwise so historical snapshots keep a living record.
// Returns true when the fence was hard-deleted.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	var referenced bool
	if err := s.DB.QueryRow(ctx, `
    SELECT EXISTS (SELECT 1 FROM time_punches WHERE fence_name = $1)
  `, f.Name).Scan(&referenced); err != nil {
		return false, err
	}

	if referenced {
		_, err := s.DB.Exec(ctx, "UPDATE geofences SET active = false WHERE id = $1", id)
		return false, err
	}
	_, err = s.DB.Exec(ctx, "DELETE FROM geofences WHERE id = $1", id)
	return true, err
}
