package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("requires a secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
		if _, err := Load(); err == nil {
			t.Fatal("expected error when JWT_SECRET is empty")
		}
	})

	t.Run("requires a database", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_USER", "")
		t.Setenv("DB_NAME", "")
		if _, err := Load(); err == nil {
			t.Fatal("expected error when no database settings are present")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
		t.Setenv("ADDR", "")
		t.Setenv("TOKEN_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Addr != ":8000" {
			t.Errorf("expected default addr :8000, got %q", cfg.Addr)
		}
		if cfg.TokenTTL != 30*time.Minute {
			t.Errorf("expected default ttl 30m, got %s", cfg.TokenTTL)
		}
	})

	t.Run("settings assembled from parts", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_USER", "shop")
		t.Setenv("DB_PASS", "pw")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_NAME", "storefront")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.DB == nil {
			t.Fatal("expected discrete database settings when DATABASE_URL is unset")
		}
		if cfg.DB.User != "shop" || cfg.DB.Password != "pw" || cfg.DB.Database != "storefront" {
			t.Errorf("credentials not carried over: %+v", cfg.DB)
		}
		if cfg.DB.Host != "db.internal" || cfg.DB.Port != 5433 {
			t.Errorf("endpoint not carried over: %s:%d", cfg.DB.Host, cfg.DB.Port)
		}
		if cfg.DB.MaxConns <= 0 {
			t.Errorf("pool sizing should come from the storage defaults, got %d", cfg.DB.MaxConns)
		}
	})

	t.Run("parts default host and port", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_USER", "shop")
		t.Setenv("DB_NAME", "storefront")
		t.Setenv("DB_HOST", "")
		t.Setenv("DB_PORT", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.DB.Host != "localhost" || cfg.DB.Port != 5432 {
			t.Errorf("expected localhost:5432 defaults, got %s:%d", cfg.DB.Host, cfg.DB.Port)
		}
	})

	t.Run("url wins over parts", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
		t.Setenv("DB_USER", "shop")
		t.Setenv("DB_NAME", "storefront")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.DB != nil {
			t.Error("discrete settings should not be assembled when DATABASE_URL is set")
		}
	})

	t.Run("bad port rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_USER", "shop")
		t.Setenv("DB_NAME", "storefront")
		t.Setenv("DB_PORT", "fivefour")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for unparseable DB_PORT")
		}
	})

	t.Run("bad ttl rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
		t.Setenv("TOKEN_TTL", "soon")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for unparseable TOKEN_TTL")
		}
	})
}

func TestLoadDatabase(t *testing.T) {
	t.Run("works without a secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")

		cfg, err := LoadDatabase()
		if err != nil {
			t.Fatalf("LoadDatabase failed: %v", err)
		}
		if cfg.DatabaseURL == "" {
			t.Error("expected the database URL to be carried over")
		}
	})

	t.Run("assembles parts", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_USER", "shop")
		t.Setenv("DB_NAME", "storefront")

		cfg, err := LoadDatabase()
		if err != nil {
			t.Fatalf("LoadDatabase failed: %v", err)
		}
		if cfg.DB == nil || cfg.DB.Database != "storefront" {
			t.Errorf("expected discrete settings, got %+v", cfg.DB)
		}
	})

	t.Run("requires a database", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_USER", "")
		t.Setenv("DB_NAME", "")
		if _, err := LoadDatabase(); err == nil {
			t.Fatal("expected error when no database settings are present")
		}
	})
}
