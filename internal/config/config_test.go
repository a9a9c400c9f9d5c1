package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, "khan-exercises", cfg.ExercisesDir)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 8032, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8032", cfg.BindAddress())
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("POLL_INTERVAL", "500ms")
	t.Setenv("MAX_PARALLEL", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 1, cfg.MaxParallel)
}

func TestLoad_InvalidPollInterval(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "0s")

	_, err := Load()
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.level}
			assert.Equal(t, tt.expected, cfg.SlogLevel())
		})
	}
}
