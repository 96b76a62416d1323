// Package config loads application settings from the environment, with an
// optional .env file for development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/NetSkoocKlim/storefront/pkg/storage"
)

// Config carries everything the process needs to start. The JWT secret is
// required: the server refuses to run with an empty signing key.
type Config struct {
	// Server settings
	Addr string

	// Database settings. DatabaseURL wins when set; otherwise DB holds
	// the discrete settings assembled from the DB_* variables.
	DatabaseURL string
	DB          *storage.Config

	// JWT settings
	JWTSecret string
	TokenTTL  time.Duration

	// Redis settings (optional; enables the shared token revocation list)
	RedisAddr     string
	RedisPassword string
}

// Load reads configuration from the environment. A .env file is loaded
// first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional

	cfg := &Config{
		Addr:          getEnv("ADDR", ":8000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	if cfg.DatabaseURL == "" {
		db, err := databaseConfigFromParts()
		if err != nil {
			return nil, err
		}
		cfg.DB = db
	}
	if cfg.DatabaseURL == "" && cfg.DB == nil {
		return nil, errors.New("DATABASE_URL (or DB_USER/DB_PASS/DB_HOST/DB_PORT/DB_NAME) must be set")
	}

	ttl := getEnv("TOKEN_TTL", "30m")
	parsed, err := time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
	}
	cfg.TokenTTL = parsed

	return cfg, nil
}

// LoadDatabase reads only the database settings, for commands that touch
// the database without serving traffic.
func LoadDatabase() (*Config, error) {
	_ = godotenv.Load() // optional

	cfg := &Config{DatabaseURL: os.Getenv("DATABASE_URL")}
	if cfg.DatabaseURL == "" {
		db, err := databaseConfigFromParts()
		if err != nil {
			return nil, err
		}
		cfg.DB = db
	}
	if cfg.DatabaseURL == "" && cfg.DB == nil {
		return nil, errors.New("DATABASE_URL (or DB_USER/DB_PASS/DB_HOST/DB_PORT/DB_NAME) must be set")
	}
	return cfg, nil
}

// databaseConfigFromParts assembles discrete connection settings from the
// individual DB_* variables for deployments that set them separately.
// Returns nil when the required parts are absent.
func databaseConfigFromParts() (*storage.Config, error) {
	user := os.Getenv("DB_USER")
	name := os.Getenv("DB_NAME")
	if user == "" || name == "" {
		return nil, nil
	}

	db := storage.DefaultConfig()
	db.User = user
	db.Database = name
	db.Password = os.Getenv("DB_PASS")
	if host := os.Getenv("DB_HOST"); host != "" {
		db.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		parsed, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_PORT %q: %w", port, err)
		}
		db.Port = parsed
	}
	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
