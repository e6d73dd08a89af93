// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for the foodgram service.
package config

import "time"

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	Admin       AdminConfig       `yaml:"admin"`
	Media       MediaConfig       `yaml:"media"`
	Pagination  PaginationConfig  `yaml:"pagination"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
	LogLevel    string            `yaml:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Bind            string        `yaml:"bind"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	// Path is the database file path.
	Path string `yaml:"path"`

	// BusyTimeout is the milliseconds to wait on a busy lock.
	BusyTimeout int `yaml:"busy_timeout"`
}

// AuthConfig holds token-auth settings.
type AuthConfig struct {
	// TokenTTL is how long an unused token stays valid. Zero disables expiry.
	TokenTTL time.Duration `yaml:"token_ttl"`

	// LoginPerMin caps login attempts per client IP per minute.
	LoginPerMin int `yaml:"login_per_min"`
}

// AdminConfig guards the /admin endpoint group. The group is not mounted
// when neither auth method is configured. Bootstrap* creates a staff user
// at startup when no staff user exists.
type AdminConfig struct {
	BearerToken string `yaml:"bearer_token"`
	BasicUser   string `yaml:"basic_user"`
	BasicPass   string `yaml:"basic_pass"`

	BootstrapEmail    string `yaml:"bootstrap_email"`
	BootstrapUsername string `yaml:"bootstrap_username"`
	BootstrapPassword string `yaml:"bootstrap_password"`
}

// IsConfigured returns true if any admin auth method is configured.
func (a AdminConfig) IsConfigured() bool {
	return a.BearerToken != "" || (a.BasicUser != "" && a.BasicPass != "")
}

// MediaConfig controls recipe image storage.
type MediaConfig struct {
	// Root is the directory images are written to and served from.
	Root string `yaml:"root"`

	// MaxBytes caps the decoded size of an uploaded image.
	MaxBytes int64 `yaml:"max_bytes"`
}

// PaginationConfig controls listing defaults.
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// TelemetryConfig controls the optional OTLP trace exporter.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"` // host:port of the OTLP HTTP receiver
	ServiceName string `yaml:"service_name"`
	Insecure    bool   `yaml:"insecure"`
}

// MaintenanceConfig holds cron schedules for background jobs.
// Empty schedules fall back to the defaults; token purging is disabled by
// setting auth.token_ttl to zero.
type MaintenanceConfig struct {
	TokenPurgeSchedule string `yaml:"token_purge_schedule"`
	VacuumSchedule     string `yaml:"vacuum_schedule"`
}

// defaults fills zero values with sensible defaults.
func (c *Config) defaults() {
	if c.Server.Bind == "" {
		c.Server.Bind = "127.0.0.1:8000"
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Database.Path == "" {
		c.Database.Path = "foodgram.db"
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = 5000
	}
	if c.Auth.LoginPerMin <= 0 {
		c.Auth.LoginPerMin = 10
	}
	if c.Media.Root == "" {
		c.Media.Root = "media"
	}
	if c.Media.MaxBytes <= 0 {
		c.Media.MaxBytes = 5 << 20
	}
	if c.Pagination.DefaultLimit <= 0 {
		c.Pagination.DefaultLimit = 6
	}
	if c.Pagination.MaxLimit <= 0 {
		c.Pagination.MaxLimit = 100
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "foodgram"
	}
	if c.Maintenance.TokenPurgeSchedule == "" {
		c.Maintenance.TokenPurgeSchedule = "@hourly"
	}
	if c.Maintenance.VacuumSchedule == "" {
		c.Maintenance.VacuumSchedule = "@daily"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
