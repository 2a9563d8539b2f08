package telemetry

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// --- LogLevel Tests ---

func TestLogLevel(t *testing.T) {
	cases := []struct {
		env   string
		level slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, c := range cases {
		t.Setenv("LOG_LEVEL", c.env)
		if got := LogLevel(); got != c.level {
			t.Errorf("LOG_LEVEL=%q: expected %v, got %v", c.env, c.level, got)
		}
	}
}

// --- Logger Attribute Tests ---

func TestWithJobID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithJobID(logger, "job-123").Info("job started")

	if !strings.Contains(buf.String(), "job_id=job-123") {
		t.Errorf("log line should carry job_id, got %q", buf.String())
	}
}

func TestWithUserID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithUserID(logger, "user-1").Info("job started")

	if !strings.Contains(buf.String(), "user_id=user-1") {
		t.Errorf("log line should carry user_id, got %q", buf.String())
	}
}

// --- Context Tests ---

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(t.Context(), logger)
	if FromContext(ctx) != logger {
		t.Error("logger from context should be the one stored")
	}

	if FromContext(t.Context()) != slog.Default() {
		t.Error("missing logger should fall back to the default")
	}
}
