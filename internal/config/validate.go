package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate checks the structural validity of a Config. All problems are
// reported at once via errors.Join.
func Validate(cfg *Config) error {
	var errs []error

	if _, err := net.ResolveTCPAddr("tcp", cfg.Server.Bind); err != nil {
		errs = append(errs, fmt.Errorf("config: invalid server.bind %q: %w", cfg.Server.Bind, err))
	}

	if cfg.Database.BusyTimeout < 0 {
		errs = append(errs, fmt.Errorf("config: database.busy_timeout must be non-negative, got %d", cfg.Database.BusyTimeout))
	}

	if cfg.Auth.TokenTTL < 0 {
		errs = append(errs, errors.New("config: auth.token_ttl must be non-negative"))
	}

	if cfg.Pagination.DefaultLimit > cfg.Pagination.MaxLimit {
		errs = append(errs, fmt.Errorf(
			"config: pagination.default_limit %d exceeds max_limit %d",
			cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit,
		))
	}

	if cfg.Admin.BasicUser != "" && cfg.Admin.BasicPass == "" {
		errs = append(errs, errors.New("config: admin.basic_user set without admin.basic_pass"))
	}

	if cfg.Admin.BootstrapEmail != "" && cfg.Admin.BootstrapPassword == "" {
		errs = append(errs, errors.New("config: admin.bootstrap_email set without admin.bootstrap_password"))
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		errs = append(errs, errors.New("config: telemetry.enabled requires telemetry.endpoint"))
	}

	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, spec := range map[string]string{
		"maintenance.token_purge_schedule": cfg.Maintenance.TokenPurgeSchedule,
		"maintenance.vacuum_schedule":      cfg.Maintenance.VacuumSchedule,
	} {
		if spec == "" {
			continue
		}
		if _, err := parser.Parse(spec); err != nil {
			errs = append(errs, fmt.Errorf("config: %s %q: %w", name, spec, err))
		}
	}

	return errors.Join(errs...)
}

// ParseLevel maps a config log level string to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log_level %q", s)
	}
}
