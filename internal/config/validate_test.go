package config

import (
	"log/slog"
	"strings"
	"testing"
)

// validConfig returns a Config with defaults applied, suitable for mutation.
func validConfig() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	if err := Validate(validConfig()); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate_BadBind(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.Bind = "not-an-address"

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "server.bind") {
		t.Errorf("Validate = %v, want server.bind error", err)
	}
}

func TestValidate_PaginationLimits(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Pagination.DefaultLimit = 200
	cfg.Pagination.MaxLimit = 100

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "default_limit") {
		t.Errorf("Validate = %v, want pagination error", err)
	}
}

func TestValidate_AdminPairs(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Admin.BasicUser = "root"

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "basic_pass") {
		t.Errorf("Validate = %v, want basic_pass error", err)
	}

	cfg = validConfig()
	cfg.Admin.BootstrapEmail = "admin@example.com"

	err = Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "bootstrap_password") {
		t.Errorf("Validate = %v, want bootstrap_password error", err)
	}
}

func TestValidate_Telemetry(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Telemetry.Enabled = true

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "telemetry.endpoint") {
		t.Errorf("Validate = %v, want telemetry error", err)
	}
}

func TestValidate_Schedules(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Maintenance.VacuumSchedule = "every day at noon"

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "vacuum_schedule") {
		t.Errorf("Validate = %v, want vacuum_schedule error", err)
	}

	cfg = validConfig()
	cfg.Maintenance.TokenPurgeSchedule = "*/30 * * * *"
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.Bind = "bad"
	cfg.LogLevel = "loud"
	cfg.Database.BusyTimeout = -1

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate: expected error")
	}
	for _, want := range []string{"server.bind", "log_level", "busy_timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud): expected error")
	}
}
