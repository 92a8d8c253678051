package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"

	"github.com/redletters/rlauth/auth"
	"github.com/redletters/rlauth/internal/observability"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	if cfg.Auth.Service != "com.redletters.engine" || cfg.Auth.Account != "auth_token" {
		t.Errorf("keyring identity = (%q, %q)", cfg.Auth.Service, cfg.Auth.Account)
	}
	if cfg.Auth.TokenPrefix != "rl_" || cfg.Auth.MinTokenLength != 24 {
		t.Errorf("token format = (%q, %d)", cfg.Auth.TokenPrefix, cfg.Auth.MinTokenLength)
	}
	if cfg.Auth.FallbackFile != "" {
		t.Errorf("fallback file should resolve lazily, got %q", cfg.Auth.FallbackFile)
	}
	if cfg.Telemetry.Exporter != observability.ExporterNone {
		t.Errorf("exporter = %q", cfg.Telemetry.Exporter)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "localhost", mutate: func(c *Config) { c.Server.Host = "localhost" }},
		{name: "ipv6 loopback", mutate: func(c *Config) { c.Server.Host = "::1" }},
		{name: "public host", mutate: func(c *Config) { c.Server.Host = "0.0.0.0" }, wantErr: "loopback"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "LogFormat"},
		{name: "bad exporter", mutate: func(c *Config) { c.Telemetry.Exporter = "kafka" }, wantErr: "Exporter"},
		{name: "bad endpoint", mutate: func(c *Config) { c.Telemetry.Endpoint = "not a url" }, wantErr: "Endpoint"},
		{name: "empty service", mutate: func(c *Config) { c.Auth.Service = "" }, wantErr: "Service"},
		{name: "min length below prefix", mutate: func(c *Config) { c.Auth.MinTokenLength = 2 }, wantErr: "min_token_length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Default()
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestAuthConfigNewResolver(t *testing.T) {
	keyring.MockInit()

	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("tk_0123456789\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Auth.Service = "com.redletters.engine.test"
	cfg.Auth.FallbackFile = path
	cfg.Auth.TokenPrefix = "tk_"
	cfg.Auth.MinTokenLength = 13

	r, err := cfg.Auth.NewResolver()
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	got, err := r.ResolveToken(context.Background())
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	if got.Token != "tk_0123456789" || got.Source != auth.SourceFile {
		t.Errorf("ResolveToken = %+v", got)
	}
}

func TestAuthConfigHomeFallback(t *testing.T) {
	keyring.MockInit()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Auth.Service = "com.redletters.engine.test"

	r, err := cfg.Auth.NewResolver()
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	if _, err := r.ResolveToken(context.Background()); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("ResolveToken = %v, want ErrNotFound", err)
	}

	dir := filepath.Join(home, ".greek2english")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	const token = "rl_homehomehomehomehome12345"
	if err := os.WriteFile(filepath.Join(dir, ".auth_token"), []byte(token), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := r.ResolveToken(context.Background())
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	if got.Token != token || got.Source != auth.SourceFile {
		t.Errorf("ResolveToken = %+v", got)
	}
}
