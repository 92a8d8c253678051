package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/contrib/processors/minsev"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
}

func TestInstrumentText(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	shutdown, err := Instrument(context.Background(), Options{Level: slog.LevelWarn, Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("Instrument: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	slog.Info("hidden")
	slog.Warn("visible", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record emitted at warn level: %s", out)
	}
	if !strings.Contains(out, "msg=visible") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestInstrumentJSON(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	if _, err := Instrument(context.Background(), Options{Level: slog.LevelInfo, Format: "json", Writer: &buf}); err != nil {
		t.Fatalf("Instrument: %v", err)
	}

	slog.Info("resolved", "source", "keychain")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if record["msg"] != "resolved" || record["source"] != "keychain" {
		t.Errorf("record = %v", record)
	}
}

func TestInstrumentStdoutExporter(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	shutdown, err := Instrument(context.Background(), Options{Level: slog.LevelInfo, Exporter: ExporterStdout, Writer: &buf})
	if err != nil {
		t.Fatalf("Instrument: %v", err)
	}

	slog.Info("exported record")
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if !strings.Contains(buf.String(), "exported record") {
		t.Errorf("record not exported: %s", buf.String())
	}
}

func TestInstrumentErrors(t *testing.T) {
	restoreDefault(t)

	if _, err := Instrument(context.Background(), Options{Format: "yaml"}); err == nil {
		t.Error("unknown format should fail")
	}
	if _, err := Instrument(context.Background(), Options{Exporter: "kafka"}); err == nil {
		t.Error("unknown exporter should fail")
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  minsev.Severity
	}{
		{slog.LevelDebug, minsev.SeverityDebug},
		{slog.LevelInfo, minsev.SeverityInfo},
		{slog.LevelWarn, minsev.SeverityWarn},
		{slog.LevelError, minsev.SeverityError},
		{slog.LevelError + 4, minsev.SeverityError},
	}
	for _, tt := range tests {
		if got := severity(tt.level); got != tt.want {
			t.Errorf("severity(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
