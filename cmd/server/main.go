package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"ponto/internal/auth"
	"ponto/internal/db"
	"ponto/internal/domain/consolidation"
	"ponto/internal/domain/employee"
	"ponto/internal/domain/events"
	"ponto/internal/domain/geofence"
	"ponto/internal/domain/justification"
	"ponto/internal/domain/punch"
	"ponto/internal/domain/timesheet"
	"ponto/internal/platform/config"
	"ponto/internal/platform/jobs"
	"ponto/internal/platform/metrics"
	adminhandler "ponto/internal/transport/http/handlers/admin"
	authhandler "ponto/internal/transport/http/handlers/auth"
	consolidationhandler "ponto/internal/transport/http/handlers/consolidations"
	employeehandler "ponto/internal/transport/http/handlers/employees"
	geofencehandler "ponto/internal/transport/http/handlers/geofences"
	justificationhandler "ponto/internal/transport/http/handlers/justifications"
	punchhandler "ponto/internal/transport/http/handlers/punches"
	timesheethandler "ponto/internal/transport/http/handlers/timesheet"
	"ponto/internal/transport/http/middleware"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	authStore := auth.NewStore(pool)
	punchStore := punch.NewStore(pool)
	geofenceStore := geofence.NewStore(pool)
	employeeStore := employee.NewStore(pool)
	justificationStore := justification.NewStore(pool)
	consolidationStore := consolidation.NewStore(pool)
	eventsSvc := events.New(pool)
	idemStore := middleware.NewIdempotencyStore(pool)

	punchSvc := punch.NewService(punchStore, geofenceStore, eventsSvc, punch.Options{
		HashSalt:           cfg.PunchHashSalt,
		TransitionPolicy:   cfg.TransitionPolicy,
		RequireGeolocation: cfg.RequireGeolocation,
	})
	consolidationSvc := consolidation.NewService(
		consolidationStore, punchStore, employeeStore, justificationStore, eventsSvc, cfg.MinBreakMinutes)
	timesheetSvc := timesheet.NewService(consolidationSvc, employeeStore)

	jobsSvc := jobs.New(pool, cfg, consolidationSvc, eventsSvc)
	jobsSvc.Start(ctx)

	isProd := cfg.Environment == "production"

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.EventMeta)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(isProd))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		punchhandler.NewHandler(punchSvc, idemStore, collector).RegisterRoutes(r)
		geofencehandler.NewHandler(geofenceStore).RegisterRoutes(r)
		employeehandler.NewHandler(employeeStore).RegisterRoutes(r)
		justificationhandler.NewHandler(justificationStore).RegisterRoutes(r)
		consolidationhandler.NewHandler(consolidationSvc, jobsSvc, collector).RegisterRoutes(r)
		timesheethandler.NewHandler(timesheetSvc).RegisterRoutes(r)
		adminhandler.NewHandler(collector, eventsSvc).RegisterRoutes(r)
	})

	slog.Info("ponto server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
