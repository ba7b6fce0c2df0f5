package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("CURRENCY_CONVERTER_ACCESS_KEY", "secret")
	t.Setenv("CURRENCY_CONVERTER_ENTERPRISE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "secret", cfg.AccessKey)
	assert.True(t, cfg.Enterprise)
	assert.Equal(t, "./data", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CONFIG_PATH", "SERVER_ADDR", "CURRENCY_CONVERTER_ENTERPRISE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.False(t, cfg.Enterprise)
}

func TestLoadFromFile(t *testing.T) {
	path := t.TempDir() + "/config.yml"
	content := "addr: \":7070\"\naccess_key: file-key\nenterprise: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "file-key", cfg.AccessKey)
	assert.True(t, cfg.Enterprise)
}
