package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duelscore/duelscore/duel"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "duelscore.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, duel.TiesSeparate, cfg.TiePolicyValue())
	assert.False(t, cfg.SkipMalformed)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DUELSCORE_ADDR", ":9999")
	t.Setenv("DUELSCORE_TIE_POLICY", "second")
	t.Setenv("DUELSCORE_SKIP_MALFORMED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, duel.TiesToSecond, cfg.TiePolicyValue())
	assert.True(t, cfg.SkipMalformed)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7777\"\nlog_level: debug\n"), 0o644))
	t.Setenv("DUELSCORE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7777\"\n"), 0o644))
	t.Setenv("DUELSCORE_CONFIG", path)
	t.Setenv("DUELSCORE_ADDR", ":6666")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":6666", cfg.Addr)
}

func TestLoad_InvalidTiePolicy(t *testing.T) {
	t.Setenv("DUELSCORE_TIE_POLICY", "bogus")

	_, err := Load()
	require.Error(t, err)
}
