package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LEITNER_DB", "LEITNER_DATA_DIR", "LEITNER_PROGRESS_BACKEND", "LEITNER_PLAYER",
		"LEITNER_ADDR", "LEITNER_NUM", "LEITNER_SHUTDOWN_TIMEOUT", "LEITNER_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("USER", "ana")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "leitner", "data"), cfg.DataDir)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "ana", cfg.Player)
	assert.Equal(t, 40, cfg.DefaultNum)
	assert.Equal(t, ":5004", cfg.ServerAddress)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("LEITNER_DB", "/tmp/x.db")
	t.Setenv("LEITNER_PROGRESS_BACKEND", "file")
	t.Setenv("LEITNER_PLAYER", "bo")
	t.Setenv("LEITNER_NUM", "12")
	t.Setenv("LEITNER_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LEITNER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "bo", cfg.Player)
	assert.Equal(t, 12, cfg.DefaultNum)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"LEITNER_PROGRESS_BACKEND", "redis"},
		{"LEITNER_NUM", "-1"},
		{"LEITNER_NUM", "many"},
		{"LEITNER_SHUTDOWN_TIMEOUT", "soon"},
		{"LEITNER_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("XDG_DATA_HOME", t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "leitner.db")
	require.NoError(t, EnsureDir(path))
	assert.DirExists(t, filepath.Dir(path))
}
