package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTextFormat_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("warn", "text", &buf)
	t.Cleanup(func() { defaultLogger = nil })

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 3") || !strings.Contains(out, "[ERROR] shown 4") {
		t.Errorf("Missing warn/error lines in %q", out)
	}
	if !strings.Contains(out, "logger_test.go") {
		t.Errorf("Expected caller file in text output, got %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("debug", "json", &buf)
	t.Cleanup(func() { defaultLogger = nil })

	Info("probe %.1f", 40400.0)

	var line map[string]string
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("Output is not a JSON line: %v (%q)", err, buf.String())
	}
	if line["level"] != "info" {
		t.Errorf("Expected level info, got %q", line["level"])
	}
	if line["msg"] != "probe 40400.0" {
		t.Errorf("Unexpected msg %q", line["msg"])
	}
	if !strings.HasPrefix(line["caller"], "logger_test.go:") {
		t.Errorf("Unexpected caller %q", line["caller"])
	}
}

func TestUninitializedIsSilent(t *testing.T) {
	defaultLogger = nil
	// Must not panic.
	Debug("x")
	Info("x")
	Warn("x")
	Error("x")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}
