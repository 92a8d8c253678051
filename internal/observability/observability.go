// Package observability installs the process-wide slog logger.
//
// Plain text and JSON output go straight to stderr through slog handlers. When an
// OpenTelemetry exporter is selected, records are bridged through otelslog into an
// OTel LoggerProvider instead, filtered by minimum severity.
package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/processors/minsev"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// instrumentationName identifies log records emitted through the OTel bridge.
const instrumentationName = "github.com/redletters/rlauth"

// Exporter selects where log records are sent.
type Exporter string

const (
	ExporterNone     Exporter = "none"
	ExporterStdout   Exporter = "stdout"
	ExporterOTLPHTTP Exporter = "otlphttp"
	ExporterOTLPGRPC Exporter = "otlpgrpc"
)

// Options configures Instrument.
type Options struct {
	Level    slog.Level
	Format   string // text|json, used when Exporter is none
	Exporter Exporter
	Endpoint string // OTLP endpoint URL; empty uses the OTEL_EXPORTER_OTLP_* environment
	Writer   io.Writer
}

// ShutdownFunc flushes and releases logging resources.
type ShutdownFunc func(context.Context) error

// Instrument sets the default slog logger according to opts.
// The returned ShutdownFunc must be called before exit to flush buffered records.
func Instrument(ctx context.Context, opts Options) (ShutdownFunc, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	if opts.Exporter == "" || opts.Exporter == ExporterNone {
		handler, err := newHandler(w, opts.Level, opts.Format)
		if err != nil {
			return nil, err
		}
		slog.SetDefault(slog.New(handler))
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := newExporter(ctx, w, opts.Exporter, opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating %s log exporter: %w", opts.Exporter, err)
	}

	var processor sdklog.Processor
	if opts.Exporter == ExporterStdout {
		// CLI invocations are short-lived; write records as they happen
		processor = sdklog.NewSimpleProcessor(exporter)
	} else {
		processor = sdklog.NewBatchProcessor(exporter)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(minsev.NewLogProcessor(processor, severity(opts.Level))),
	)
	global.SetLoggerProvider(provider)

	// OTel SDK internal errors go to stderr; routing them through slog would loop
	errLogger := slog.New(slog.NewTextHandler(w, nil))
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		errLogger.Error("opentelemetry error", "error", err)
	}))

	slog.SetDefault(slog.New(otelslog.NewHandler(instrumentationName, otelslog.WithLoggerProvider(provider))))

	return provider.Shutdown, nil
}

func newHandler(w io.Writer, level slog.Level, format string) (slog.Handler, error) {
	handlerOpts := &slog.HandlerOptions{Level: level}
	switch format {
	case "", "text":
		return slog.NewTextHandler(w, handlerOpts), nil
	case "json":
		return slog.NewJSONHandler(w, handlerOpts), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}

func newExporter(ctx context.Context, w io.Writer, exporter Exporter, endpoint string) (sdklog.Exporter, error) {
	switch exporter {
	case ExporterStdout:
		return stdoutlog.New(stdoutlog.WithWriter(w))
	case ExporterOTLPHTTP:
		var opts []otlploghttp.Option
		if endpoint != "" {
			opts = append(opts, otlploghttp.WithEndpointURL(endpoint))
		}
		return otlploghttp.New(ctx, opts...)
	case ExporterOTLPGRPC:
		var opts []otlploggrpc.Option
		if endpoint != "" {
			opts = append(opts, otlploggrpc.WithEndpointURL(endpoint))
		}
		return otlploggrpc.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported exporter: %s", exporter)
	}
}

// severity maps a slog level onto the minsev threshold.
func severity(level slog.Level) minsev.Severity {
	switch {
	case level <= slog.LevelDebug:
		return minsev.SeverityDebug
	case level <= slog.LevelInfo:
		return minsev.SeverityInfo
	case level <= slog.LevelWarn:
		return minsev.SeverityWarn
	default:
		return minsev.SeverityError
	}
}
