// Package config provides centralized configuration management for the console.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	API      APIConfig
	Database DatabaseConfig
	Export   ExportConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Audit    AuditConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// APIConfig holds marketplace API client settings.
type APIConfig struct {
	// BaseURL is the API root, e.g. https://marketplace.example.com/api (required)
	BaseURL string `env:"API_BASE_URL" envAlt:"MARKETPLACE_API_URL" required:"true"`

	// Token is the bearer token sent with every call
	Token string `env:"API_TOKEN"`

	// Timeout bounds a single API call (default: 30s)
	Timeout time.Duration `env:"API_TIMEOUT" default:"30s"`

	// PageSize is the per_page of list calls; screens load one large page (default: 1000)
	PageSize int `env:"API_PAGE_SIZE" default:"1000"`

	// RatePerSecond limits outbound calls; 0 disables the limiter (default: 20)
	RatePerSecond float64 `env:"API_RATE_PER_SECOND" default:"20"`

	// Burst is the outbound limiter burst (default: 40)
	Burst int `env:"API_RATE_BURST" default:"40"`
}

// DatabaseConfig holds the optional audit database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Empty disables the audit trail.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 1)
	MinConns int `env:"DB_MIN_CONNS" default:"1"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// Enabled reports whether an audit database is configured.
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// ExportConfig holds CSV export settings.
type ExportConfig struct {
	// MaxConcurrent is the maximum number of parallel exports (default: 4)
	MaxConcurrent int `env:"EXPORT_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for an export slot (default: 10s)
	MaxWaitTime time.Duration `env:"EXPORT_MAX_WAIT_TIME" default:"10s"`
}

// RateLimitConfig holds inbound rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the sustained rate per client IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`

	// Burst is the number of requests a client may make at once (default: 60)
	Burst int `env:"RATE_LIMIT_BURST" default:"60"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// APIKeys are the accepted console keys, as "name:key" or bare keys
	APIKeys []string `env:"API_KEYS"`

	// RequireAPIKey rejects requests without a valid X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File is an optional rotating log file path
	File string `env:"LOG_FILE"`

	// FileMaxSizeMB rotates the file at this size (default: 100)
	FileMaxSizeMB int `env:"LOG_FILE_MAX_SIZE_MB" default:"100"`

	// FileMaxBackups is the number of rotated files kept (default: 5)
	FileMaxBackups int `env:"LOG_FILE_MAX_BACKUPS" default:"5"`

	// FileMaxAgeDays removes rotated files older than this (default: 30)
	FileMaxAgeDays int `env:"LOG_FILE_MAX_AGE_DAYS" default:"30"`

	// FileCompress gzips rotated files (default: true)
	FileCompress bool `env:"LOG_FILE_COMPRESS" default:"true"`
}

// AuditConfig holds audit trail retention settings.
type AuditConfig struct {
	// RetentionDays is how long audit entries are kept (default: 365)
	RetentionDays int `env:"AUDIT_RETENTION_DAYS" default:"365"`

	// CheckInterval is how often the retention job runs (default: 24h)
	CheckInterval time.Duration `env:"AUDIT_CHECK_INTERVAL" default:"24h"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
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
