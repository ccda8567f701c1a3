package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServer_Defaults(t *testing.T) {
	for _, k := range []string{
		"BREEDING_HTTP_ADDR", "BREEDING_GRPC_ADDR", "BREEDING_CONFIG_DIR", "BREEDING_PROFILE",
		"BREEDING_RELOAD_INTERVAL", "BREEDING_LOG_LEVEL", "BREEDING_LOG_FORMAT",
	} {
		// Setenv restores the original value after the test
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, Server{
		HTTPAddr:       ":8080",
		GRPCAddr:       ":9090",
		ConfigDir:      "config",
		ReloadInterval: 2 * time.Second,
		LogLevel:       "info",
		LogFormat:      "text",
	}, cfg)
}

func TestLoadServer_FromEnv(t *testing.T) {
	t.Setenv("BREEDING_HTTP_ADDR", "127.0.0.1:18080")
	t.Setenv("BREEDING_PROFILE", "event")
	t.Setenv("BREEDING_RELOAD_INTERVAL", "500ms")
	t.Setenv("BREEDING_LOG_LEVEL", "debug")
	t.Setenv("BREEDING_LOG_FORMAT", "json")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:18080", cfg.HTTPAddr)
	assert.Equal(t, "event", cfg.Profile)
	assert.Equal(t, 500*time.Millisecond, cfg.ReloadInterval)
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadServer_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad level", "BREEDING_LOG_LEVEL", "loud"},
		{"bad format", "BREEDING_LOG_FORMAT", "xml"},
		{"bad duration", "BREEDING_RELOAD_INTERVAL", "soon"},
		{"negative duration", "BREEDING_RELOAD_INTERVAL", "-1s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadServer()
			assert.Error(t, err)
		})
	}
}
