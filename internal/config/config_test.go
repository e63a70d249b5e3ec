package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "./data/badger", cfg.Storage.BadgerPath)
	assert.Equal(t, "v1", cfg.Rules.Version)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Registry.PostgresDSN)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: 9090\nstorage:\n  in_memory: true\nlog:\n  level: debug\n"), 0o600))
	t.Setenv("BSPAOH_RULES_VERSION", "v2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Storage.InMemory)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "v2", cfg.Rules.Version)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("BSPAOH_LOG_LEVEL", "loud")
	_, err := Load("")
	assert.Error(t, err)
}
