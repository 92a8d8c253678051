package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/redletters/rlauth/internal/app"
	"github.com/redletters/rlauth/internal/observability"
)

// Execute runs the root command with the given context and arguments.
func Execute(ctx context.Context, args []string) error {
	return newRootCommand().Run(ctx, args)
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "rlauth",
		Usage: "Red Letters engine auth token manager",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file (default: <user config dir>/rlauth/config.toml if present)",
				Sources: cli.EnvVars(envPrefix + "CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug|info|warn|error)",
				Value: slog.LevelInfo.String(),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format (text|json)",
				Value: string(app.DefaultConfigLogFormat),
			},
			&cli.StringFlag{
				Name:  "telemetry--exporter",
				Usage: "OpenTelemetry log exporter (none|stdout|otlphttp|otlpgrpc)",
				Value: string(app.DefaultConfigTelemetryExporter),
			},
			&cli.StringFlag{
				Name:  "auth--fallback-file",
				Usage: "fallback token file (default: ~/.greek2english/.auth_token)",
			},
		},
		Commands: []*cli.Command{
			tokenCommand(),
			serveCommand(),
		},
	}
}

// setup loads configuration, installs logging and builds the application.
// The returned cleanup flushes logs and must always be called.
func setup(ctx context.Context, cmd *cli.Command) (*app.App, func(), error) {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = defaultConfigPath()
	}

	cfg, err := loadConfig(configPath, cmd, os.Environ)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Set up observability before creating app
	shutdown, err := observability.Instrument(ctx, observability.Options{
		Level:    cfg.LogLevel,
		Format:   string(cfg.LogFormat),
		Exporter: cfg.Telemetry.Exporter,
		Endpoint: cfg.Telemetry.Endpoint,
		Writer:   cmd.Root().ErrWriter,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up observability layer: %w", err)
	}
	cleanup := func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			fmt.Fprintf(cmd.Root().ErrWriter, "flushing logs: %v\n", err)
		}
	}

	application, err := app.New(cfg)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create app: %w", err)
	}

	return application, cleanup, nil
}
