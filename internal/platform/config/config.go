package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                   string
	DatabaseURL            string
	JWTSecret              string
	Environment            string
	RunMigrations          bool
	RunSeed                bool
	SeedAdminEmail         string
	SeedAdminPassword      string
	PunchHashSalt          string
	TransitionPolicy       string
	RequireGeolocation     bool
	MinBreakMinutes        int
	ConsolidationInterval  time.Duration
	EventRetentionInterval time.Duration
	EventRetentionDays     int
	MetricsEnabled         bool
	MaxBodyBytes           int64
	RateLimitPerMinute     int
}

func Load() Config {
	return Config{
		Addr:                   getEnv("APP_ADDR", ":8080"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		Environment:            getEnv("APP_ENV", "development"),
		RunMigrations:          getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:                getEnvBool("RUN_SEED", true),
		SeedAdminEmail:         getEnv("SEED_ADMIN_EMAIL", "admin@example.com"),
		SeedAdminPassword:      getEnv("SEED_ADMIN_PASSWORD", ""),
		PunchHashSalt:          getEnv("PUNCH_HASH_SALT", ""),
		TransitionPolicy:       getEnv("TRANSITION_POLICY", "strict"),
		RequireGeolocation:     getEnvBool("REQUIRE_GEOLOCATION", false),
		MinBreakMinutes:        getEnvInt("MIN_BREAK_MINUTES", 60),
		ConsolidationInterval:  getEnvDuration("CONSOLIDATION_INTERVAL", 24*time.Hour),
		EventRetentionInterval: getEnvDuration("EVENT_RETENTION_INTERVAL", 24*time.Hour),
		EventRetentionDays:     getEnvInt("EVENT_RETENTION_DAYS", 30),
		MetricsEnabled:         getEnvBool("METRICS_ENABLED", true),
		MaxBodyBytes:           int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:     getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.TransitionPolicy != "strict" && c.TransitionPolicy != "permissive" {
		return fmt.Errorf("TRANSITION_POLICY must be strict or permissive")
	}
	if c.MinBreakMinutes < 0 {
		return fmt.Errorf("MIN_BREAK_MINUTES must not be negative")
	}
	if c.EventRetentionDays < 1 {
		return fmt.Errorf("EVENT_RETENTION_DAYS must be at least 1")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.PunchHashSalt) == "" {
			return fmt.Errorf("PUNCH_HASH_SALT must be set in production so integrity hashes are not forgeable")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	return nil
}
