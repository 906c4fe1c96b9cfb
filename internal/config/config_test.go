package config

import (
	"errors"
	"testing"
	"time"
)

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", time.Minute},
		{"duration", "90s", 90 * time.Second},
		{"seconds", "1800", 30 * time.Minute},
		{"garbage", "soon", time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := getEnvAsDuration("TEST_DURATION", time.Minute); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DB_MAX_OPEN_CONNS", "not a number")

	cfg := Load()
	if cfg.StoreDriver != "memory" {
		t.Errorf("StoreDriver = %q", cfg.StoreDriver)
	}
	if cfg.DBMaxOpenConns != 20 {
		t.Errorf("DBMaxOpenConns = %d, want default 20", cfg.DBMaxOpenConns)
	}
	if cfg.SnapshotCron == "" || cfg.ServerPort == "" {
		t.Errorf("missing defaults: %+v", cfg)
	}
}

func TestValidateJWTSecret(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		secret  string
		wantErr error
	}{
		{"postgres without secret", "postgres", "", ErrMissingJWTSecret},
		{"postgres with secret", "postgres", "s3cret", nil},
		{"memory without secret", "memory", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{StoreDriver: tt.driver, JWTSecret: tt.secret}
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && cfg.JWTSecret == "" {
				t.Error("JWTSecret left empty")
			}
		})
	}
}

func TestLoadHasNoDefaultJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if cfg := Load(); cfg.JWTSecret != "" {
		t.Errorf("JWTSecret = %q, want empty", cfg.JWTSecret)
	}
}
