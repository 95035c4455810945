package config

import (
	"strings"
	"testing"

	"user-api/internal/utils/platformerrors"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBEngine != EngineSQLite {
		t.Fatalf("expected default engine %q, got %q", EngineSQLite, cfg.DBEngine)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.LogLevelConsole != "debug" || cfg.LogLevelFile != "info" {
		t.Fatalf("unexpected default log levels: %q / %q", cfg.LogLevelConsole, cfg.LogLevelFile)
	}
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_ENGINE", "postgres")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for unsupported engine")
	}
	if !platformerrors.IsType(err, platformerrors.ErrorTypeConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestLoadRequiresSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SECRET_KEY is missing")
	}
}

func TestLoadMySQLRequiresUser(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_ENGINE", EngineMySQL)
	t.Setenv("DB_USER", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DB_USER is missing for mysql")
	}
}

func TestDSNPerEngine(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_NAME", "appdata")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DSN() != "appdata.db" {
		t.Fatalf("unexpected sqlite DSN: %q", cfg.DSN())
	}

	t.Setenv("DB_ENGINE", EngineMySQL)
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")

	cfg, err = Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dsn := cfg.DSN()
	if !strings.HasPrefix(dsn, "svc:secret@tcp(db.internal:3307)/appdata") {
		t.Fatalf("unexpected mysql DSN: %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=True") {
		t.Fatalf("mysql DSN missing parseTime: %q", dsn)
	}
}
