package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsLocalTarget(t *testing.T) {
	t.Setenv("OLIVE_STATE_HOME", t.TempDir())

	cfg := &Config{BuildTarget: "local", DBDriver: "auto"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.NotEmpty(t, cfg.SQLitePath)
}

func TestResolveDefaultsCloudTargets(t *testing.T) {
	for _, target := range []string{"cloud-dev", "cloud"} {
		cfg := &Config{BuildTarget: target, DBDriver: "auto"}
		require.NoError(t, cfg.ResolveDefaults())
		assert.Equal(t, "postgres", cfg.DBDriver)
	}
}

func TestResolveDefaultsExplicitDriverWins(t *testing.T) {
	cfg := &Config{BuildTarget: "local", DBDriver: "postgres"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestResolveDefaultsRejectsUnknownTarget(t *testing.T) {
	cfg := &Config{BuildTarget: "staging"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaultsRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{BuildTarget: "local", DBDriver: "oracle"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("OLIVE_STATE_HOME", t.TempDir())
	t.Setenv("OLIVE_HTTP_PORT", "9191")
	t.Setenv("OLIVE_BUILD_TARGET", "local")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.HTTPPort)
	assert.Equal(t, ":9191", cfg.GetHTTPAddr())
	assert.Equal(t, "sqlite", cfg.DBDriver)
}
