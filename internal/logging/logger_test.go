package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantEnabled bool
	}{
		{
			name: "file output",
			config: Config{
				FilePath:   filepath.Join(t.TempDir(), "lmtt.log"),
				Level:      slog.LevelInfo,
				Format:     FormatText,
				MaxSizeMB:  10,
				MaxBackups: 2,
			},
			wantEnabled: true,
		},
		{
			name:        "empty filepath creates noop logger",
			config:      Config{Level: slog.LevelInfo},
			wantEnabled: false,
		},
		{
			name: "json format in nested directory",
			config: Config{
				FilePath:  filepath.Join(t.TempDir(), "cache", "lmtt", "lmtt.log"),
				Level:     slog.LevelDebug,
				Format:    FormatJSON,
				MaxSizeMB: 1,
			},
			wantEnabled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, Init(tt.config))
			defer Shutdown()

			logger := Get()
			require.NotNil(t, logger)
			assert.Equal(t, tt.wantEnabled, IsEnabled())

			logger.Info("test message")
			logger.Debug("test debug")
			logger.Warn("test warning")
			logger.Error("test error")
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestModuleLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "lmtt.log")
	require.NoError(t, Init(Config{FilePath: logFile, Level: slog.LevelDebug}))

	Module("waybar").Info("updated colors", "path", "/tmp/x.css")
	require.NoError(t, Shutdown())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "module=waybar")
	assert.Contains(t, string(content), "updated colors")
}

func TestWithOnNoopLogger(t *testing.T) {
	require.NoError(t, Init(Config{}))
	assert.False(t, With("k", "v").IsEnabled())
}

func TestPackageLevelFunctions(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "lmtt.log")
	require.NoError(t, Init(Config{
		FilePath:   logFile,
		Level:      slog.LevelDebug,
		Format:     FormatText,
		MaxSizeMB:  10,
		MaxBackups: 2,
	}))

	Debug("debug message", "key", "value")
	Info("info message", "key", "value")
	Warn("warn message", "key", "value")
	Error("error message", "key", "value")
	require.NoError(t, Shutdown())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "debug message")
	assert.Contains(t, string(content), "error message")
}
