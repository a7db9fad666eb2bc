package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr() != ":8000" {
		t.Fatalf("addr: got=%q", cfg.Addr())
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Fatalf("shutdown timeout: got=%s", cfg.ShutdownTimeout)
	}
	if cfg.DB().Driver != "sqlite" || cfg.DB().SQLitePath != "servicehub.db" {
		t.Fatalf("db config: %#v", cfg.DB())
	}
	if cfg.Redis().Channel != "marketplace.events" {
		t.Fatalf("redis channel: got=%q", cfg.Redis().Channel)
	}
}

func TestLoadConfigReadsDotEnvWithoutOverridingEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	body := "PORT=9090\nCORS_ORIGINS=https://a.example.com,https://b.example.com\nOTEL_SAMPLE_RATIO=0.5\nDB_DRIVER=postgres\n"
	if err := os.WriteFile(envFile, []byte(body), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("DB_DRIVER", "SQLite")
	// godotenv sets variables that are absent; register cleanup for them.
	for _, k := range []string{"PORT", "CORS_ORIGINS", "OTEL_SAMPLE_RATIO"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := LoadConfig(envFile)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr() != ":9090" {
		t.Fatalf("addr: got=%q", cfg.Addr())
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Fatalf("cors: %#v", cfg.CORSOrigins)
	}
	if cfg.Otel().SampleRatio != 0.5 {
		t.Fatalf("sample ratio: got=%v", cfg.Otel().SampleRatio)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("env should win over .env: got=%q", cfg.DBDriver)
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.env")); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
