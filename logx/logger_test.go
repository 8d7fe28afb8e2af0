package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"trace", TraceLevel, false},
		{"DEBUG", DebugLevel, false},
		{"Info", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"warning", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"off", OffLevel, false},
		{" info ", InfoLevel, false},
		{"verbose", InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetColored(false)
	l.SetShowCaller(false)
	l.SetLevel(WarnLevel)

	l.Debug("hidden")
	l.Info("also hidden")
	assert.Empty(t, buf.String())

	l.Warn("visible")
	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), "visible")
}

func TestLoggerOffSilencesEverything(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(OffLevel)

	l.Error("even errors")
	assert.Empty(t, buf.String())
}

func TestLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetColored(false)
	l.SetShowCaller(false)
	l.SetPrefix("uploads")

	l.Info("with prefix")
	assert.Contains(t, buf.String(), "uploads")
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetShowCaller(false)
	l.SetFormat(FormatJSON)

	l.Info("structured %d", 42)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "structured 42", entry["message"])
	assert.NotEmpty(t, entry["timestamp"])
}

func TestLoggerFormatArgs(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetColored(false)
	l.SetShowCaller(false)

	l.Info("stored %s (%d bytes)", "photo.png", 1024)
	assert.Contains(t, buf.String(), "stored photo.png (1024 bytes)")
}
