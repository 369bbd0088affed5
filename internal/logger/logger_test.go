package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsAreFiltered(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger([]string{"warn", "error"}, &buf)

	l.Debug("resolved %s", "Point")
	l.Info("wrote models")
	l.Warn("unresolved type %s treated as external", "Other")
	l.Error("protoc failed")

	out := buf.String()
	if strings.Contains(out, "resolved Point") || strings.Contains(out, "wrote models") {
		t.Errorf("disabled levels leaked into output: %q", out)
	}
	if !strings.Contains(out, "[WARN] unresolved type Other treated as external") {
		t.Errorf("missing warn line in output: %q", out)
	}
	if !strings.Contains(out, "[ERROR] protoc failed") {
		t.Errorf("missing error line in output: %q", out)
	}
}

func TestDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger([]string{"debug"}, &buf)

	l.Debug("scope walk: %s -> %s", "Inner", "Outer.Inner")
	if !strings.Contains(buf.String(), "[DEBUG] scope walk: Inner -> Outer.Inner") {
		t.Errorf("missing debug line in output: %q", buf.String())
	}
}

func TestLevelString(t *testing.T) {
	levels := map[LogLevel]string{
		LogLevelDebug: "debug",
		LogLevelInfo:  "info",
		LogLevelWarn:  "warn",
		LogLevelError: "error",
	}
	for level, want := range levels {
		if level.String() != want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", level, level.String(), want)
		}
	}
}
