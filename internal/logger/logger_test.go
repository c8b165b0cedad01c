package logger

import (
	"bytes"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected charmlog.Level
	}{
		{DebugLevel, charmlog.DebugLevel},
		{InfoLevel, charmlog.InfoLevel},
		{WarnLevel, charmlog.WarnLevel},
		{ErrorLevel, charmlog.ErrorLevel},
		{LogLevel("verbose"), charmlog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.ToCharmlogLevel())
		})
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: WarnLevel, Output: &buf})

	log.Debug("hidden debug")
	log.Info("hidden info")
	log.Warn("visible warning", "path", "configs/rust.toml")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible warning")
	assert.Contains(t, out, "configs/rust.toml")
}

func TestNewLogger_InfoShowsKeyvals(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: InfoLevel, Output: &buf})

	log.Debug("hidden debug")
	log.Info("generated code written", "path", "user.rs")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "generated code written")
	assert.Contains(t, buf.String(), "user.rs")
}

func TestNewLogger_NilConfig(t *testing.T) {
	assert.NotNil(t, NewLogger(nil))
}

func TestInit_ReplacesDefault(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	var buf bytes.Buffer
	Init(&Config{Level: DebugLevel, Output: &buf})

	Debug("debug message", "structs", 3)
	Info("info message")

	assert.Contains(t, buf.String(), "debug message")
	assert.Contains(t, buf.String(), "info message")
}
