package host

import (
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"nonsense", LogLevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLogLevel(tc.in); got != tc.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf strings.Builder
	log := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	log.Debug("ignored")
	log.Info("ignored too")
	log.Warn("kept")
	log.Error("kept as well")

	out := buf.String()
	if strings.Contains(out, "ignored") {
		t.Errorf("filtered message leaked: %q", out)
	}
	if !strings.Contains(out, "kept") || !strings.Contains(out, "kept as well") {
		t.Errorf("expected messages missing: %q", out)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf strings.Builder
	log := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "test"})

	log.WithComponent("widget").Info("mounted", "id", 7)

	out := buf.String()
	for _, want := range []string{"[INFO]", "test: mounted", "component=widget", "id=7"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerSetLevel(t *testing.T) {
	var buf strings.Builder
	log := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})

	log.Info("dropped")
	log.SetLevel(LogLevelDebug)
	log.Info("emitted")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("pre-change message leaked: %q", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Errorf("post-change message missing: %q", out)
	}
}
