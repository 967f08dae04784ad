package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PG_DSN", "placeholder")
	t.Setenv("LOG_FORMAT", "placeholder")
	os.Unsetenv("PG_DSN")
	os.Unsetenv("LOG_FORMAT")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Contains(t, cfg.PGDSN, "postgres://")
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://example:example@db:5432/example")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://example:example@db:5432/example", cfg.PGDSN)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigRejectsEmptyDSN(t *testing.T) {
	t.Setenv("PG_DSN", "")

	_, err := LoadConfig()
	require.Error(t, err)
}
