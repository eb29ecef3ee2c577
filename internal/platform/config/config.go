// Package config provides configuration loading and validation for the service.
// Configuration is resolved once at startup using a layered system:
// defaults -> base.yaml -> {profile}.yaml -> .env / LOCAL_DB, TURSO_* -> APP_* env vars.
package config

import "time"

// Database modes.
const (
	// ModeReplica opens an embedded libSQL replica synchronized with a remote primary.
	ModeReplica = "replica"
	// ModeLocal opens a plain SQLite file with no primary. Sync is a no-op.
	ModeLocal = "local"
)

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Database  DatabaseConfig  `koanf:"database"`
	Client    ClientConfig    `koanf:"client"`
	Telemetry TelemetryConfig `koanf:"telemetry"`

	notices []string
}

// Notices returns diagnostic messages produced while resolving defaults,
// such as a missing auth token. Load runs before the logger exists, so the
// caller logs these once the logger is built.
func (c *Config) Notices() []string {
	return c.notices
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	CORS         CORSConfig    `koanf:"cors"`
}

// CORSConfig holds cross-origin settings. CORS handling is disabled when
// AllowedOrigins is empty.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
	AllowedMethods []string `koanf:"allowed_methods"`
	AllowedHeaders []string `koanf:"allowed_headers"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DatabaseConfig holds the todos store settings.
type DatabaseConfig struct {
	Mode           string               `koanf:"mode"`
	LocalPath      string               `koanf:"local_path"`
	URL            string               `koanf:"url"`
	AuthToken      string               `koanf:"auth_token"`
	SyncInterval   time.Duration        `koanf:"sync_interval"`
	EncryptionKey  string               `koanf:"encryption_key"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// ClientConfig holds settings for the HTTP client that checks the primary.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RateLimitConfig caps outbound health check traffic. Zero requests_per_second
// disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
