package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Debugf("hidden %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug lines should be dropped when not verbose")
	}
	for _, want := range []string{"INFO: info 2\n", "WARN: warn 3\n", "ERROR: error 4\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestStdLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)

	l.Debugf("detail")
	if buf.String() != "DEBUG: detail\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
	if !l.Verbose() {
		t.Error("Verbose() should be true")
	}
}

func TestStdLogger_WithPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false).WithPrefix(func(level Level) string {
		return "[" + strings.ToLower(level.String()) + "]"
	})

	l.Warnf("x")
	if buf.String() != "[warn]: x\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "LOG"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("String() for %d = %s, want %s", tt.level, got, tt.expected)
		}
	}
}
