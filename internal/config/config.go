package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort                = "3000"
	defaultDatabaseURL         = "carmarket.db"
	defaultJWTSecret           = "change-me-jwt-secret"
	defaultJWTTTL              = "168h"
	defaultBodyLimitBytes      = "10485760"
	defaultSeedCredentialsPath = "seed-credentials.json"
)

type Config struct {
	AppEnv              string
	Port                string
	DatabaseURL         string
	JWTSecret           string
	JWTTTL              time.Duration
	CORSOrigin          string
	BodyLimitBytes      int64
	SeedCredentialsPath string
}

// Load reads the process environment. Outside production a local .env file
// is loaded first; variables already set in the environment win.
func Load() (*Config, error) {
	appEnv := strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", "dev")))
	if !isProdLike(appEnv) {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("config: failed to load .env: %v", err)
		}
		appEnv = strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", appEnv)))
	}

	cfg := &Config{
		AppEnv:              appEnv,
		Port:                strings.TrimSpace(getEnv("PORT", defaultPort)),
		DatabaseURL:         strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL)),
		JWTSecret:           strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		CORSOrigin:          strings.TrimSpace(os.Getenv("CORS_ORIGIN")),
		SeedCredentialsPath: strings.TrimSpace(getEnv("SEED_CREDENTIALS_PATH", defaultSeedCredentialsPath)),
	}

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.BodyLimitBytes, err = parseInt64Env("BODY_LIMIT_BYTES", defaultBodyLimitBytes)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the config was loaded for a production-like environment.
func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.BodyLimitBytes <= 0 {
		return fmt.Errorf("BODY_LIMIT_BYTES must be > 0")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
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

func parseInt64Env(name, fallback string) (int64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
