// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables, an optional YAML file and
// struct-tag defaults, and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"time"

	"github.com/JonMunkholm/ISS/internal/core"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Upload     UploadConfig     `yaml:"upload"`
	Rate       RateLimitConfig  `yaml:"rate"`
	Security   SecurityConfig   `yaml:"security"`
	Logging    LoggingConfig    `yaml:"logging"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Snapshot   SnapshotConfig   `yaml:"snapshot"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0" yaml:"host"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080" yaml:"port"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s" yaml:"write_timeout"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s" yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s" yaml:"shutdown_timeout"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s" yaml:"request_timeout"`
}

// UploadConfig holds file ingestion settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 100MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"104857600" yaml:"max_file_size"`

	// MaxConcurrent is the maximum number of parallel ingests (default: 5)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"5" yaml:"max_concurrent"`

	// MaxWaitTime is how long to wait for an ingest slot (default: 30s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"30s" yaml:"max_wait_time"`

	// Timeout is the maximum duration for parsing a single file (default: 2m)
	Timeout time.Duration `env:"UPLOAD_TIMEOUT" default:"2m" yaml:"timeout"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true" yaml:"enabled"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100" yaml:"requests_per_minute"`

	// UploadLimit is requests per minute for upload endpoints (default: 10)
	UploadLimit int `env:"RATE_LIMIT_UPLOAD" default:"10" yaml:"upload_limit"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES" yaml:"trusted_proxies"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true" yaml:"enable_csp"`

	// RequireAPIKey protects /api routes with the X-API-Key header (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false" yaml:"require_api_key"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS" yaml:"api_keys"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info" yaml:"level"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text" yaml:"format"`
}

// ThresholdsConfig holds the dashboard age limits.
type ThresholdsConfig struct {
	// FCReceive is the FC Receive age limit in days (default: 10)
	FCReceive int `env:"THRESHOLD_FC_RECEIVE" default:"10" yaml:"fc_receive"`

	// FCActionable is the FC Actionable age limit in days (default: 10)
	FCActionable int `env:"THRESHOLD_FC_ACTIONABLE" default:"10" yaml:"fc_actionable"`

	// MFI is the MFI age limit in days (default: 5)
	MFI int `env:"THRESHOLD_MFI" default:"5" yaml:"mfi"`
}

// SnapshotConfig holds in-memory snapshot retention settings.
type SnapshotConfig struct {
	// TTL is how long an ingested file stays available (default: 12h)
	TTL time.Duration `env:"SNAPSHOT_TTL" default:"12h" yaml:"ttl"`

	// MaxSnapshots caps the number of stored snapshots (default: 200)
	MaxSnapshots int `env:"SNAPSHOT_MAX" default:"200" yaml:"max_snapshots"`

	// EvictionInterval is how often expired snapshots are swept (default: 5m)
	EvictionInterval time.Duration `env:"SNAPSHOT_EVICTION_INTERVAL" default:"5m" yaml:"eviction_interval"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// Core converts the thresholds section to the core type.
func (t ThresholdsConfig) Core() core.ThresholdsConfig {
	return core.ThresholdsConfig{
		FCReceiveAgeThreshold:    t.FCReceive,
		FCActionableAgeThreshold: t.FCActionable,
		MFIAgeThreshold:          t.MFI,
	}
}

// ServiceConfig assembles the core service limits from the loaded settings.
func (c *Config) ServiceConfig() core.ServiceConfig {
	return core.ServiceConfig{
		MaxFileSize:   c.Upload.MaxFileSize,
		MaxConcurrent: c.Upload.MaxConcurrent,
		MaxWaitTime:   c.Upload.MaxWaitTime,
		IngestTimeout: c.Upload.Timeout,
		SnapshotTTL:   c.Snapshot.TTL,
		MaxSnapshots:  c.Snapshot.MaxSnapshots,
		Thresholds:    c.Thresholds.Core(),
	}
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
