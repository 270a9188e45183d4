package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Defaults cover a local run; every value can be overridden from the
// environment.
const (
	DefaultDataDir                  = "data"
	DefaultPrescriptionValidityDays = 30
	DefaultMaxLoginAttempts         = 5
	DefaultLockoutWindow            = 15 * time.Minute
)

// AppConfig holds the application configuration
type AppConfig struct {
	DataDir                  string
	SymmetricKey             string
	PrescriptionValidityDays int
	MaxLoginAttempts         int
	LockoutWindow            time.Duration
	AdminUsername            string
	AdminPasswordHash        string
}

// Load reads configuration from environment variables, falling back to
// defaults. The symmetric key is optional; without it no sessions can be
// minted, which is fine for maintenance runs.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		DataDir:                  DefaultDataDir,
		PrescriptionValidityDays: DefaultPrescriptionValidityDays,
		MaxLoginAttempts:         DefaultMaxLoginAttempts,
		LockoutWindow:            DefaultLockoutWindow,
	}
	if v := os.Getenv("PHARMADESK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PHARMADESK_SYMMETRIC_KEY"); v != "" {
		if len(v) != 32 {
			return nil, errors.Errorf("PHARMADESK_SYMMETRIC_KEY must be 32 bytes long, got %d", len(v))
		}
		cfg.SymmetricKey = v
	}
	if v := os.Getenv("PHARMADESK_RX_VALIDITY_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return nil, errors.Errorf("PHARMADESK_RX_VALIDITY_DAYS must be a positive integer, got %q", v)
		}
		cfg.PrescriptionValidityDays = days
	}
	if v := os.Getenv("PHARMADESK_MAX_LOGIN_ATTEMPTS"); v != "" {
		attempts, err := strconv.Atoi(v)
		if err != nil || attempts <= 0 {
			return nil, errors.Errorf("PHARMADESK_MAX_LOGIN_ATTEMPTS must be a positive integer, got %q", v)
		}
		cfg.MaxLoginAttempts = attempts
	}
	if v := os.Getenv("PHARMADESK_LOCKOUT_WINDOW"); v != "" {
		window, err := time.ParseDuration(v)
		if err != nil || window <= 0 {
			return nil, errors.Errorf("PHARMADESK_LOCKOUT_WINDOW must be a positive duration, got %q", v)
		}
		cfg.LockoutWindow = window
	}
	cfg.AdminUsername = os.Getenv("PHARMADESK_ADMIN_USERNAME")
	cfg.AdminPasswordHash = os.Getenv("PHARMADESK_ADMIN_PASSWORD_HASH")
	return cfg, nil
}
