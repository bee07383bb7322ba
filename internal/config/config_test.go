package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("DATA_PATH", "")
	t.Setenv("MAP_SAMPLE_CAP", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, MapSampleCapDefault, cfg.MapSampleCap)
	assert.Equal(t, int64(42), cfg.MapSampleSeed)
	assert.Equal(t, 15, cfg.TopN)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", ":9090")
	t.Setenv("DATA_PATH", "/tmp/accidents.db")
	t.Setenv("MAP_SAMPLE_CAP", "2000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "/tmp/accidents.db", cfg.DataPath)
	assert.Equal(t, 2000, cfg.MapSampleCap)
}

func TestLoadTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"port = \":7070\"\nmap_sample_cap = 3000\ntop_n = 10\n"), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("MAP_SAMPLE_CAP", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Port)
	assert.Equal(t, 3000, cfg.MapSampleCap)
	assert.Equal(t, 10, cfg.TopN)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = \":7070\"\n"), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", ":6060")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.Port)
}

func TestLoadInvalidValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("MAP_SAMPLE_CAP", "lots")

	_, err := Load()
	assert.Error(t, err)
}

func TestClampSampleCap(t *testing.T) {
	assert.Equal(t, MapSampleCapMin, ClampSampleCap(0))
	assert.Equal(t, MapSampleCapMin, ClampSampleCap(499))
	assert.Equal(t, 1500, ClampSampleCap(1500))
	assert.Equal(t, MapSampleCapMax, ClampSampleCap(4001))
}
