package config

import (
	"fmt"
	"time"

	"github.com/rezkam/catalog/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Database        DatabaseConfig
	HTTP            HTTPConfig
	Auth            AuthConfig
	Pictures        PictureConfig
	Observability   ObservabilityConfig
	ShutdownTimeout time.Duration `env:"CATALOG_SHUTDOWN_TIMEOUT" default:"10s"`
}

// HTTPConfig holds HTTP server configuration.
// Zero values fall back to the HTTP server defaults.
type HTTPConfig struct {
	Host              string        `env:"CATALOG_HTTP_HOST"`
	Port              string        `env:"CATALOG_HTTP_PORT" default:"8080"`
	ReadTimeout       time.Duration `env:"CATALOG_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"CATALOG_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"CATALOG_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"CATALOG_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"CATALOG_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"CATALOG_HTTP_MAX_BODY_BYTES"`

	CORSOrigins []string `env:"CATALOG_HTTP_CORS_ORIGINS"`

	// RateLimit is the sustained requests per second allowed per account.
	// Zero disables rate limiting.
	RateLimit float64 `env:"CATALOG_HTTP_RATE_LIMIT"`
	RateBurst int     `env:"CATALOG_HTTP_RATE_BURST" default:"20"`

	// TLS configuration for HTTPS
	TLSEnabled  bool   `env:"CATALOG_TLS_ENABLED"`
	TLSCertFile string `env:"CATALOG_TLS_CERT_FILE"`
	TLSKeyFile  string `env:"CATALOG_TLS_KEY_FILE"`
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	if c.TLSEnabled && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		return fmt.Errorf("CATALOG_TLS_CERT_FILE and CATALOG_TLS_KEY_FILE are required when TLS is enabled")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("CATALOG_HTTP_RATE_LIMIT must be >= 0")
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		return fmt.Errorf("CATALOG_HTTP_RATE_BURST must be > 0 when rate limiting is enabled")
	}
	return nil
}

// AuthConfig holds authenticator configuration.
type AuthConfig struct {
	OperationTimeout time.Duration `env:"CATALOG_AUTH_OPERATION_TIMEOUT"`
	UpdateQueueSize  int           `env:"CATALOG_AUTH_UPDATE_QUEUE_SIZE"`
}

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"CATALOG_OTEL_ENABLED"`
	ServiceName string `env:"OTEL_SERVICE_NAME" default:"catalog"`
}

// LoadServerConfig loads and validates server configuration from environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}
