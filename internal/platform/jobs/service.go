package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ponto/internal/domain/consolidation"
	"ponto/internal/domain/events"
	"ponto/internal/platform/config"
)

const (
	JobConsolidation  = "daily_consolidation"
	JobEventRetention = "event_retention"
)

// Service runs the background batches: the nightly consolidation sweep and
// the domain-event retention purge. Work is funnelled through a single
// worker; cancelling the context stops the worker between jobs, and a
// half-finished consolidation sweep is safe to resume because every unit is
// an idempotent upsert.
type Service struct {
	DB             *pgxpool.Pool
	Cfg            config.Config
	Consolidations *consolidation.Service
	Events         *events.Service
	queue          chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, consolidations *consolidation.Service, eventsSvc *events.Service) *Service {
	return &Service{
		DB:             db,
		Cfg:            cfg,
		Consolidations: consolidations,
		Events:         eventsSvc,
		queue:          make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.ConsolidationInterval > 0 {
		go s.scheduleConsolidation(ctx, s.Cfg.ConsolidationInterval)
	}
	if s.Cfg.EventRetentionInterval > 0 {
		go s.scheduleRetention(ctx, s.Cfg.EventRetentionInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

// scheduleConsolidation sweeps the previous calendar day for every active
// employee on each tick.
func (s *Service) scheduleConsolidation(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobConsolidation, func(ctx context.Context) (any, error) {
				yesterday := time.Now().UTC().AddDate(0, 0, -1)
				return s.Consolidations.RunForDate(ctx, yesterday)
			})
		}
	}
}

func (s *Service) scheduleRetention(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			days := s.Cfg.EventRetentionDays
			if days <= 0 {
				continue
			}
			s.Enqueue(JobEventRetention, func(ctx context.Context) (any, error) {
				cutoff := time.Now().AddDate(0, 0, -days)
				deleted, err := s.Events.ApplyRetention(ctx, cutoff)
				return map[string]any{"deleted": deleted, "cutoff": cutoff}, err
			})
		}
	}
}
