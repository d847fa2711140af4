package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/Shivanand-hulikatti/event-calendar/internal/logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_LevelVarIsLive(t *testing.T) {
	var buf bytes.Buffer
	logger, lv := logging.New(&buf, "info")

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}

	lv.Set(slog.LevelDebug)
	logger.Debug("visible", "k", "v")
	if !strings.Contains(buf.String(), "visible") || !strings.Contains(buf.String(), "k=v") {
		t.Fatalf("debug line missing after level change: %q", buf.String())
	}
}
