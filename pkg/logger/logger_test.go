package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestInitInstallsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		name    string
		config  *Config
		debugOn bool
		json    bool
	}{
		{"debug text", &Config{Level: "debug", Format: "text"}, true, false},
		{"info json", &Config{Level: "info", Format: "json"}, false, true},
		{"unknown level falls back to info", &Config{Level: "verbose"}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.config.Output = &buf
			Init(tt.config)

			ctx := context.Background()
			if got := slog.Default().Enabled(ctx, slog.LevelDebug); got != tt.debugOn {
				t.Errorf("Expected debug enabled=%v, got %v", tt.debugOn, got)
			}
			Info(ctx, "contract generated", "pages", 3)
			if got := strings.HasPrefix(buf.String(), "{"); got != tt.json {
				t.Errorf("Expected json=%v output, got %s", tt.json, buf.String())
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	slog.SetDefault(New(&Config{Level: "debug", Format: "text", Output: &buf}))

	ctx := context.Background()
	ctx = context.WithValue(ctx, RequestIDKey, "test-request-id")
	ctx = context.WithValue(ctx, TenantKey, "test-tenant")
	ctx = context.WithValue(ctx, UsernameKey, "test-user")
	ctx = WithContract(ctx, "CRT-20261018-ABCDEF")

	WithContext(ctx).Info("generated")

	out := buf.String()
	for _, want := range []string{
		"request_id=test-request-id",
		"tenant=test-tenant",
		"username=test-user",
		"contract_number=CRT-20261018-ABCDEF",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in %s", want, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	New(&Config{Level: "info", Format: "json", Output: &buf}).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected debug to be filtered at info, got %s", buf.String())
	}
	New(&Config{Level: "info", Format: "json", Output: &buf}).Info("shown")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("Expected JSON output, got %s", buf.String())
	}
}

func TestWithContextSkipsEmptyValues(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&Config{Level: "info", Format: "text", Output: &buf}))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := context.WithValue(context.Background(), TenantKey, "")
	ctx = context.WithValue(ctx, UsernameKey, 42)
	WithContext(ctx).Info("form submitted")

	out := buf.String()
	if strings.Contains(out, "tenant=") || strings.Contains(out, "username=") {
		t.Errorf("Expected empty and non-string values to be skipped, got %s", out)
	}
}

func TestLevelHelpers(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&Config{Level: "debug", Format: "text", Output: &buf}))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithContract(context.Background(), "CRT-20261018-ABCDEF")
	tests := []struct {
		log   func(context.Context, string, ...any)
		level string
	}{
		{Debug, "level=DEBUG"},
		{Info, "level=INFO"},
		{Warn, "level=WARN"},
		{Error, "level=ERROR"},
	}
	for _, tt := range tests {
		buf.Reset()
		tt.log(ctx, "layout finished", "pages", 3)
		out := buf.String()
		if !strings.Contains(out, tt.level) || !strings.Contains(out, "contract_number=CRT-20261018-ABCDEF") || !strings.Contains(out, "pages=3") {
			t.Errorf("Unexpected %s line: %s", tt.level, out)
		}
	}
}
