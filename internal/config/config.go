package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultJWTAccessTTL       = "15m"
	defaultRefreshTTL         = "168h"
	defaultListenAddr         = ":8080"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultRefreshTokenPepper = "change-me-refresh-pepper"
)

type Config struct {
	AppEnv             string
	ListenAddr         string
	DatabaseURL        string
	JWTSecret          string
	JWTAccessTTL       time.Duration
	RefreshTTL         time.Duration
	RefreshTokenPepper string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", "angoconnect.db"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RefreshTokenPepper = strings.TrimSpace(getEnv("REFRESH_TOKEN_PEPPER", defaultRefreshTokenPepper))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TTL must be > 0")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RefreshTokenPepper, defaultRefreshTokenPepper) {
			return fmt.Errorf("in prod/release REFRESH_TOKEN_PEPPER must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
