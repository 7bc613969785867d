package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"ponto/internal/platform/config"
)

// Seed provisions the admin login and, outside production, a couple of
// sample employees and geofences so a fresh instance is usable immediately.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}
	if cfg.Environment == "production" {
		return nil
	}
	if err := ensureSampleEmployees(ctx, pool); err != nil {
		return err
	}
	return ensureSampleGeofences(ctx, pool)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	if email == "" {
		return nil
	}
	var exists bool
	if err := pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1, $2, 'admin')
  `, email, string(hash))
	return err
}

func ensureSampleEmployees(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []struct {
		name, email, department string
	}{
		{"Ana Souza", "ana.souza@example.com", "Operations"},
		{"Bruno Lima", "bruno.lima@example.com", "Operations"},
		{"Carla Mendes", "carla.mendes@example.com", "Finance"},
	}
	for _, s := range samples {
		_, err := pool.Exec(ctx, `
      INSERT INTO employees (name, email, department, active, scheduled_start, scheduled_end, daily_expected_minutes, tolerance_minutes)
      VALUES ($1, $2, $3, true, '08:00', '17:00', 480, 10)
    `, s.name, s.email, s.department)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureSampleGeofences(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM geofences").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := pool.Exec(ctx, `
    INSERT INTO geofences (name, description, latitude, longitude, radius_m, active, color)
    VALUES
      ('Matriz', 'Head office', -23.55052, -46.63331, 150, true, '#2f855a'),
      ('Filial Centro', 'Downtown branch', -23.54390, -46.63420, 80, true, '#2b6cb0')
  `)
	return err
}
