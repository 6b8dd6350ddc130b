package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithOutput(&buf), WithLevel(LevelWarn))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("lines below the level were written:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("lines at or above the level are missing:\n%s", out)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithOutput(&buf))

	logger.Debug("hidden")
	logger.SetLevel(LevelDebug)
	logger.Debug("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written before SetLevel:\n%s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("debug line missing after SetLevel:\n%s", out)
	}
}

func TestFormatArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithOutput(&buf))
	logger.Info("count=%d name=%s", 3, "vec")
	if !strings.Contains(buf.String(), "count=3 name=vec") {
		t.Errorf("formatted output missing:\n%s", buf.String())
	}
}

func TestWithFieldsAppearInOrder(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithOutput(&buf)).With("component", "repl").With("vector", "demo")
	logger.Info("ready")

	out := buf.String()
	ci := strings.Index(out, "component=repl")
	vi := strings.Index(out, "vector=demo")
	if ci < 0 || vi < 0 {
		t.Fatalf("fields missing from output:\n%s", out)
	}
	if ci > vi {
		t.Errorf("fields out of attachment order:\n%s", out)
	}
}

func TestWithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(WithOutput(&buf))
	_ = parent.With("child", "only")
	parent.Info("parent line")
	if strings.Contains(buf.String(), "child=only") {
		t.Errorf("child field leaked into parent output:\n%s", buf.String())
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
	if got := Level(42).String(); !strings.HasPrefix(got, "LEVEL(") {
		t.Errorf("out-of-range Level.String() = %q", got)
	}
}
