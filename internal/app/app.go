package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/redletters/rlauth/auth"
	"github.com/redletters/rlauth/internal/server"
)

// App wires the auth token resolver to its command surfaces.
type App struct {
	cfg      *Config
	resolver *auth.Resolver
	server   *server.Server
}

// New creates a new App instance. No keyring or file I/O is performed.
func New(cfg *Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	resolver, err := cfg.Auth.NewResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}

	tokenServer, err := server.New(resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &App{
		cfg:      cfg,
		resolver: resolver,
		server:   tokenServer,
	}, nil
}

// Resolver returns the auth token resolver.
func (a *App) Resolver() *auth.Resolver {
	return a.resolver
}

// Address returns the configured listen address of the token API.
func (a *App) Address() string {
	return net.JoinHostPort(a.cfg.Server.Host, strconv.FormatUint(uint64(a.cfg.Server.Port), 10))
}

// Start starts the token API and blocks until ctx is canceled or the server fails.
// Uses errgroup for runtime error monitoring and shutdown function collection for coordinated cleanup.
func (a *App) Start(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	address := a.Address()
	var shutdownFuncs []func(context.Context) error

	// Startup phase: Start services
	slog.InfoContext(gCtx, "starting token server", "address", address)
	serverErrCh, err := a.server.Start(gCtx, address)
	if err != nil {
		return fmt.Errorf("token server startup failed: %w", err)
	}
	shutdownFuncs = append(shutdownFuncs, a.server.Shutdown)

	// Monitor runtime errors - errgroup cancels context on first error
	g.Go(func() error {
		select {
		case err := <-serverErrCh:
			if err != nil {
				slog.ErrorContext(gCtx, "token server runtime error", "error", err)
				return fmt.Errorf("token server: %w", err)
			}
			return nil
		case <-gCtx.Done():
			return nil
		}
	})

	slog.InfoContext(gCtx, "application ready", "address", address)

	runtimeErr := g.Wait()

	slog.InfoContext(gCtx, "shutting down services")

	// Shutdown phase: Stop all services
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Shutdown.Timeout)
	defer cancel()

	var errs []error
	if runtimeErr != nil {
		errs = append(errs, fmt.Errorf("runtime: %w", runtimeErr))
	}

	for i := len(shutdownFuncs) - 1; i >= 0; i-- {
		if err := shutdownFuncs[i](shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "service shutdown failed", "error", err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	slog.Info("application stopped")
	return nil
}
