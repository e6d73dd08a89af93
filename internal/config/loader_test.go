package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "foodgram.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "server:\n  bind: \"127.0.0.1:9000\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Bind != "127.0.0.1:9000" {
		t.Errorf("bind = %q, want %q", cfg.Server.Bind, "127.0.0.1:9000")
	}
	if cfg.Database.Path != "foodgram.db" {
		t.Errorf("database path = %q, want %q", cfg.Database.Path, "foodgram.db")
	}
	if cfg.Database.BusyTimeout != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", cfg.Database.BusyTimeout)
	}
	if cfg.Pagination.DefaultLimit != 6 {
		t.Errorf("default_limit = %d, want 6", cfg.Pagination.DefaultLimit)
	}
	if cfg.Pagination.MaxLimit != 100 {
		t.Errorf("max_limit = %d, want 100", cfg.Pagination.MaxLimit)
	}
	if cfg.Maintenance.TokenPurgeSchedule != "@hourly" {
		t.Errorf("token_purge_schedule = %q, want %q", cfg.Maintenance.TokenPurgeSchedule, "@hourly")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log_level = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("FG_TEST_BIND", "0.0.0.0:8080")

	path := writeConfig(t, strings.Join([]string{
		"server:",
		"  bind: \"${FG_TEST_BIND}\"",
		"database:",
		"  path: \"${FG_TEST_DB:-/tmp/test.db}\"",
	}, "\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Bind != "0.0.0.0:8080" {
		t.Errorf("bind = %q, want env value", cfg.Server.Bind)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("database path = %q, want default fallback", cfg.Database.Path)
	}
}

func TestLoad_UnresolvedVariable(t *testing.T) {
	path := writeConfig(t, "server:\n  bind: \"${FG_DEFINITELY_UNSET_VAR}\"\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load: expected error for unresolved variable")
	}
	if !strings.Contains(err.Error(), "FG_DEFINITELY_UNSET_VAR") {
		t.Errorf("error %q does not name the unresolved variable", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_Durations(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"server:",
		"  read_timeout: 15s",
		"auth:",
		"  token_ttl: 720h",
	}, "\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("read_timeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Auth.TokenTTL != 720*time.Hour {
		t.Errorf("token_ttl = %v, want 720h", cfg.Auth.TokenTTL)
	}
}
