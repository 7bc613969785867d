package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Addr:                   ":8080",
		DatabaseURL:            "postgres://localhost/ponto",
		Environment:            "development",
		TransitionPolicy:       "strict",
		MinBreakMinutes:        60,
		ConsolidationInterval:  24 * time.Hour,
		EventRetentionInterval: 24 * time.Hour,
		EventRetentionDays:     30,
	}
}

func TestValidateAcceptsDevelopmentDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing DATABASE_URL to fail")
	}
}

func TestValidateTransitionPolicyEnum(t *testing.T) {
	cfg := validConfig()
	cfg.TransitionPolicy = "lenient"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "TRANSITION_POLICY") {
		t.Fatalf("expected transition policy error, got %v", err)
	}

	cfg.TransitionPolicy = "permissive"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("permissive must be accepted, got %v", err)
	}
}

func TestValidateProductionRequiresSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "production"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected production without JWT_SECRET to fail")
	}

	cfg.JWTSecret = "secret"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected production without PUNCH_HASH_SALT to fail")
	}

	cfg.PunchHashSalt = "salt"
	cfg.RunSeed = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected production config to pass, got %v", err)
	}
}

func TestValidateSeedPasswordInProduction(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "production"
	cfg.JWTSecret = "secret"
	cfg.PunchHashSalt = "salt"
	cfg.RunSeed = true

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected seeding with a default admin password to fail in production")
	}

	cfg.SeedAdminPassword = "not-the-default"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected explicit seed password to pass, got %v", err)
	}
}

func TestValidateBounds(t *testing.T) {
	cfg := validConfig()
	cfg.MinBreakMinutes = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected negative MIN_BREAK_MINUTES to fail")
	}

	cfg = validConfig()
	cfg.EventRetentionDays = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected zero EVENT_RETENTION_DAYS to fail")
	}
}
