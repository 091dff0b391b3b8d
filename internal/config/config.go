package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port           string
	Env            string
	JWTSecret      string
	SessionTTL     time.Duration
	MinLength      int
	MaxLength      int
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the configuration from the environment and exits the process
// if it is unusable.
func Load() Config {
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// FromEnv reads the configuration from the environment, falling back to
// defaults for unset or malformed values.
func FromEnv() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
		SessionTTL:     getEnvDuration("SESSION_TTL", 30*time.Minute),
		MinLength:      getEnvInt("PASSWORD_MIN_LENGTH", 4),
		MaxLength:      getEnvInt("PASSWORD_MAX_LENGTH", 20),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
	}
}

// Validate reports settings the server cannot run with.
func (c Config) Validate() error {
	if c.Env == "production" && c.JWTSecret == devJWTSecret {
		return errors.New("JWT_SECRET must be set in production environment")
	}
	if c.MinLength < 1 {
		return fmt.Errorf("PASSWORD_MIN_LENGTH must be at least 1, got %d", c.MinLength)
	}
	if c.MinLength > c.MaxLength {
		return fmt.Errorf("PASSWORD_MIN_LENGTH (%d) exceeds PASSWORD_MAX_LENGTH (%d)", c.MinLength, c.MaxLength)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring malformed integer", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("ignoring malformed number", "key", key, "value", v)
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring malformed duration", "key", key, "value", v)
		return fallback
	}
	return d
}
