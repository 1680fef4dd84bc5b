package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/collector-sdk/pkg/protocol"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "sysmar", "v1.2.3", "info")

	logger.Debug("hidden")
	logger.Info("collected", "count", 3)

	out := strings.TrimSpace(buf.String())
	require.NotContains(t, out, "hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "collected", rec["msg"])
	assert.Equal(t, "sysmar", rec["module"])
	assert.Equal(t, "v1.2.3", rec["version"])
	assert.Equal(t, float64(3), rec["count"])
	assert.NotContains(t, rec, "source")
}

func TestStructuredLogger_DebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	newStructuredLogger(&buf, "m", "v", "debug").Debug("trace")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Contains(t, rec, "source")
}

func TestCollectorLogger(t *testing.T) {
	var buf bytes.Buffer
	tr := protocol.New(protocol.WithOutput(&buf))

	logger := NewCollectorLogger(tr, "warn")
	logger.Info("skipped")
	logger.Warn("unit missing", "unit", "ssh.service")

	assert.Equal(t, `{"type":"log","level":"warn","msg":"unit missing unit=ssh.service"}`+"\n", buf.String())
}

func TestSetDefaultCollectorLogger(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	t.Setenv(EnvLogLevel, "debug")
	var buf bytes.Buffer
	SetDefaultCollectorLogger(protocol.New(protocol.WithOutput(&buf)))

	slog.Debug("hello")
	assert.Equal(t, `{"type":"log","level":"debug","msg":"hello"}`+"\n", buf.String())
}
