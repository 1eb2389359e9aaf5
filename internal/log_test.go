package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"ERROR":   LogLevelError,
		"warn":    LogLevelWarn,
		"Warning": LogLevelWarn,
		"INFO":    LogLevelInfo,
		" debug ": LogLevelDebug,
		"TRACE":   LogLevelTrace,
		"":        LogLevelInfo,
		"verbose": LogLevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), "input %q", in)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput(LogLevelWarn, &buf)

	logger.Info("hidden %d", 1)
	logger.Debug("hidden")
	logger.Warn("shown %s", "warn")
	logger.Error("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown warn")
	assert.Contains(t, out, "[ERROR] shown error")
}

func TestLoggerWithLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput(LogLevelInfo, &buf).With("run-1").With("2020")

	logger.Info("rows=%d", 5)

	assert.Contains(t, buf.String(), "[INFO] [run-1] [2020] rows=5")
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
}
