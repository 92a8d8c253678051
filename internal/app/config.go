package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/redletters/rlauth/auth"
	"github.com/redletters/rlauth/internal/observability"
	"github.com/redletters/rlauth/tokenstore"
)

// LogFormat represents the logging output format.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Default configuration values
const (
	DefaultConfigLogFormat         = LogFormatText
	DefaultConfigTelemetryExporter = observability.ExporterNone
	DefaultConfigServerHost        = "127.0.0.1"
	DefaultConfigServerPort        = 47201
	DefaultConfigShutdownTimeout   = 5 * time.Second
	DefaultConfigAuthService       = "com.redletters.engine"
	DefaultConfigAuthAccount       = "auth_token"
	DefaultConfigAuthTokenPrefix   = auth.DefaultTokenPrefix
	DefaultConfigAuthMinTokenLen   = auth.DefaultMinTokenLength
)

// DefaultFallbackPath is the fallback token file location relative to the home directory.
var DefaultFallbackPath = []string{".greek2english", ".auth_token"}

// ServerConfig holds configuration for the local token API.
type ServerConfig struct {
	Host string `json:"host" validate:"hostname_rfc1123|ip"`
	Port uint16 `json:"port"` // Port range 0-65535 handled by uint16 type
}

// ShutdownConfig holds shutdown behavior configuration.
type ShutdownConfig struct {
	// Timeout for graceful shutdown.
	Timeout time.Duration `json:"timeout"`
}

// TelemetryConfig selects an OpenTelemetry log exporter.
type TelemetryConfig struct {
	Exporter observability.Exporter `json:"exporter" validate:"oneof=none stdout otlphttp otlpgrpc"`
	Endpoint string                 `json:"endpoint,omitempty" validate:"omitempty,url"`
}

// AuthConfig holds the fixed identifiers the auth token is stored under.
// The defaults must match existing installations.
type AuthConfig struct {
	// Keyring identity
	Service string `json:"service" validate:"required"`
	Account string `json:"account" validate:"required"`

	// Fallback file path; empty means <home>/.greek2english/.auth_token resolved at read time
	FallbackFile string `json:"fallback_file,omitempty"`

	TokenPrefix    string `json:"token_prefix" validate:"required"`
	MinTokenLength int    `json:"min_token_length" validate:"gte=1"`
}

// Validator returns the token validator described by the configuration.
func (a *AuthConfig) Validator() auth.Validator {
	return auth.Validator{Prefix: a.TokenPrefix, MinLength: a.MinTokenLength}
}

// NewResolver creates the keyring and fallback file tiers and the resolver over them.
func (a *AuthConfig) NewResolver() (*auth.Resolver, error) {
	keyringStore, err := tokenstore.NewKeyringStore(a.Service, a.Account)
	if err != nil {
		return nil, fmt.Errorf("creating keyring store: %w", err)
	}

	var fallback *tokenstore.FileStore
	if a.FallbackFile != "" {
		fallback, err = tokenstore.NewFileStore(a.FallbackFile)
	} else {
		fallback, err = tokenstore.NewHomeFileStore(DefaultFallbackPath...)
	}
	if err != nil {
		return nil, fmt.Errorf("creating fallback file store: %w", err)
	}

	return auth.NewResolver(keyringStore, fallback, auth.WithValidator(a.Validator()))
}

// Config holds the application's configuration.
type Config struct {
	// LogLevel for logging output (defaults to Info if unset).
	LogLevel  slog.Level      `json:"log_level"`
	LogFormat LogFormat       `json:"log_format" validate:"oneof=text json"`
	Telemetry TelemetryConfig `json:"telemetry"`
	Server    ServerConfig    `json:"server"`
	Shutdown  ShutdownConfig  `json:"shutdown"`
	Auth      AuthConfig      `json:"auth"`
}

// Default creates a new Config with default values applied.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills unset config fields with sensible defaults.
func (c *Config) ApplyDefaults() error {
	if c.LogFormat == "" {
		c.LogFormat = DefaultConfigLogFormat
	}
	if c.Telemetry.Exporter == "" {
		c.Telemetry.Exporter = DefaultConfigTelemetryExporter
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultConfigServerHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultConfigServerPort
	}
	if c.Shutdown.Timeout == 0 {
		c.Shutdown.Timeout = DefaultConfigShutdownTimeout
	}
	if c.Auth.Service == "" {
		c.Auth.Service = DefaultConfigAuthService
	}
	if c.Auth.Account == "" {
		c.Auth.Account = DefaultConfigAuthAccount
	}
	if c.Auth.TokenPrefix == "" {
		c.Auth.TokenPrefix = DefaultConfigAuthTokenPrefix
	}
	if c.Auth.MinTokenLength == 0 {
		c.Auth.MinTokenLength = DefaultConfigAuthMinTokenLen
	}

	return nil
}

// Validate validates the configuration using struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	// The token API hands out the secret; it must not be reachable off-host
	if !isLoopback(c.Server.Host) {
		return fmt.Errorf("server.host must be a loopback address, got %s", c.Server.Host)
	}

	if c.Auth.MinTokenLength < len(c.Auth.TokenPrefix) {
		return errors.New("auth.min_token_length must not be shorter than auth.token_prefix")
	}

	return nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
