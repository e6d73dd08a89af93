// Package app provides the shared entry point for the foodgram binary.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Barty-sim/foodgram-project-react/internal/api"
	"github.com/Barty-sim/foodgram-project-react/internal/auth"
	"github.com/Barty-sim/foodgram-project-react/internal/config"
	"github.com/Barty-sim/foodgram-project-react/internal/maintenance"
	"github.com/Barty-sim/foodgram-project-react/internal/model"
	"github.com/Barty-sim/foodgram-project-react/internal/security"
	"github.com/Barty-sim/foodgram-project-react/internal/storage/sqlite"
	"github.com/Barty-sim/foodgram-project-react/internal/telemetry"
)

// RunParams configures the main application loop.
type RunParams struct {
	// ConfigPath is an explicit path to the YAML configuration file.
	// If empty, ResolveConfigPath is called automatically.
	ConfigPath string

	// Version, Commit, and Date are injected at build time via ldflags.
	Version string
	Commit  string
	Date    string
}

// Run loads configuration, opens the database, starts the HTTP server and
// the maintenance scheduler, and blocks until a shutdown signal is received.
// SIGHUP reloads the configuration and applies the log level live; other
// settings take effect on restart.
func Run(params RunParams) error {
	cfgPath := params.ConfigPath
	if cfgPath == "" {
		resolved, err := ResolveConfigPath()
		if err != nil {
			return err
		}
		cfgPath = resolved
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	// Wrap the text handler in a redacting handler to keep admin secrets
	// out of logs.
	redactor := security.NewRedactor()
	for _, secret := range []string{cfg.Admin.BearerToken, cfg.Admin.BasicPass, cfg.Admin.BootstrapPassword} {
		if secret != "" {
			redactor.AddLiteral(secret)
		}
	}
	innerHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelVar,
	})
	logger := slog.New(security.NewRedactingHandler(innerHandler, redactor))

	logger.Info("starting foodgram",
		"version", params.Version,
		"commit", params.Commit,
		"config", cfgPath,
	)

	store, err := sqlite.Open(cfg.Database.Path, cfg.Database.BusyTimeout)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := bootstrapStaff(context.Background(), store, cfg, logger); err != nil {
		return err
	}

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{
			Endpoint:    cfg.Telemetry.Endpoint,
			ServiceName: cfg.Telemetry.ServiceName,
			Insecure:    cfg.Telemetry.Insecure,
		})
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.Warn("telemetry shutdown failed", "error", err)
			}
		}()
		logger.Info("telemetry enabled", "endpoint", cfg.Telemetry.Endpoint)
	}

	server := api.New(cfg, store, logger)
	if err := server.Start(); err != nil {
		return err
	}

	scheduler := maintenance.NewScheduler(logger)
	jobs := []maintenance.Job{
		&maintenance.TokenPurgeJob{
			Store:        store,
			TTL:          cfg.Auth.TokenTTL,
			Logger:       logger,
			ScheduleExpr: cfg.Maintenance.TokenPurgeSchedule,
		},
		&maintenance.CheckpointJob{
			Store:        store,
			Logger:       logger,
			ScheduleExpr: cfg.Maintenance.VacuumSchedule,
		},
	}
	for _, job := range jobs {
		if err := scheduler.RegisterJob(job); err != nil {
			return err
		}
	}
	if err := scheduler.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for sig := range sigCh {
		switch sig {
		case syscall.SIGHUP:
			logger.Info("SIGHUP received, reloading configuration")
			if err := reloadLogLevel(cfgPath, levelVar, logger); err != nil {
				logger.Error("reload failed", "error", err)
			}
		default:
			logger.Info("shutdown signal received", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := scheduler.Stop(ctx); err != nil {
				logger.Warn("scheduler shutdown failed", "error", err)
			}
			if err := server.Stop(ctx); err != nil {
				logger.Warn("server shutdown failed", "error", err)
			}
			logger.Info("shutdown complete")
			return nil
		}
	}
	return nil
}

// reloadLogLevel re-reads and validates the config file and applies the log
// level live. Server, database, and scheduler settings need a restart.
func reloadLogLevel(cfgPath string, levelVar *slog.LevelVar, logger *slog.Logger) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	levelVar.Set(level)
	logger.Info("configuration reloaded", "log_level", cfg.LogLevel)
	return nil
}

// bootstrapStaff creates the initial staff user from the admin bootstrap
// settings when the database has no staff user yet.
func bootstrapStaff(ctx context.Context, store *sqlite.Store, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Admin.BootstrapEmail == "" || cfg.Admin.BootstrapPassword == "" {
		return nil
	}
	hasStaff, err := store.HasStaff(ctx)
	if err != nil {
		return err
	}
	if hasStaff {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Admin.BootstrapPassword)
	if err != nil {
		return err
	}
	username := cfg.Admin.BootstrapUsername
	if username == "" {
		username = "admin"
	}
	user, err := store.CreateUser(ctx, model.User{
		Email:        cfg.Admin.BootstrapEmail,
		Username:     username,
		FirstName:    "Admin",
		LastName:     "Admin",
		PasswordHash: hash,
		IsStaff:      true,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			logger.Warn("bootstrap user exists but is not staff, skipping",
				"email", cfg.Admin.BootstrapEmail,
			)
			return nil
		}
		return err
	}
	logger.Info("created bootstrap staff user", "id", user.ID, "email", user.Email)
	return nil
}

// ResolveConfigPath searches for a config file in standard locations.
// Search order: $XDG_CONFIG_HOME/foodgram/foodgram.yaml → ~/.config/foodgram/foodgram.yaml → ./foodgram.yaml
func ResolveConfigPath() (string, error) {
	var candidates []string

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "foodgram", "foodgram.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "foodgram", "foodgram.yaml"))
	}

	candidates = append(candidates, "foodgram.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no configuration file found (searched: %v)", candidates)
}
