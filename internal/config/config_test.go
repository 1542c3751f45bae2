package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/vec"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voxel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("VOXEL_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Default(), cfg)

	m, err := cfg.World.CoordinateMetrics()
	require.NoError(t, err)
	assert.Equal(t, vec.Splat(16), m.ChunkSize())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
world:
  chunk_size: {x: 8, y: 8, z: 8}
  super_chunk_size: {x: 4, y: 4, z: 4}
  world_size: {x: 16, y: 4, z: 16}
  voxel_state_size: 2
terrain:
  seed: 42
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, vec.Splat(8), cfg.World.ChunkSize)
	assert.Equal(t, vec.NewVec3(16, 4, 16), cfg.World.WorldSize)
	assert.Equal(t, 2, cfg.World.VoxelStateSize)
	assert.Equal(t, int64(42), cfg.Terrain.Seed)
	assert.Equal(t, Default().Terrain.Scale, cfg.Terrain.Scale, "Незаданные поля берутся из Default")
	assert.Equal(t, logging.DEBUG, cfg.Logging.GetLevel())
}

func TestLoad_EnvPath(t *testing.T) {
	path := writeConfig(t, "metrics:\n  addr: \":9100\"\n")
	t.Setenv("VOXEL_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Metrics.GetMetricsAddr())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "world: [1, 2"))
	assert.Error(t, err)
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("VOXEL_METRICS_ADDR", ":2112")
	t.Setenv("VOXEL_LOG_LEVEL", "warn")

	cfg := Default()
	assert.Equal(t, ":2112", cfg.Metrics.GetMetricsAddr())
	assert.Equal(t, logging.WARN, cfg.Logging.GetLevel())

	// Значение из файла важнее окружения
	cfg.Metrics.Addr = ":3000"
	cfg.Logging.Level = "error"
	assert.Equal(t, ":3000", cfg.Metrics.GetMetricsAddr())
	assert.Equal(t, logging.ERROR, cfg.Logging.GetLevel())

	t.Setenv("VOXEL_LOG_LEVEL", "шум")
	assert.Equal(t, logging.INFO, Default().Logging.GetLevel())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"нулевой чанк", func(c *Config) { c.World.ChunkSize = vec.Vec3{} }},
		{"нулевое состояние", func(c *Config) { c.World.VoxelStateSize = 0 }},
		{"масштаб шума", func(c *Config) { c.Terrain.Scale = 0 }},
		{"пустая область", func(c *Config) { c.Terrain.AreaMax = c.Terrain.AreaMin }},
		{"уровень логирования", func(c *Config) { c.Logging.Level = "loud" }},
		{"уровень компонента", func(c *Config) { c.Logging.Components = map[string]string{"world": "loud"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
		})
	}
}

func TestApplyComponentLevels(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: info
  components:
    config-test-world: trace
    config-test-mesh: error
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	lm := logging.GetLoggerManager()
	require.NoError(t, cfg.Logging.ApplyComponentLevels(lm))

	assert.Contains(t, lm.ListComponents(), "config-test-world")
	assert.True(t, logging.GetComponentLogger("config-test-world").Enabled(logging.TRACE))
	assert.False(t, logging.GetComponentLogger("config-test-mesh").Enabled(logging.WARN))
	assert.True(t, logging.GetComponentLogger("config-test-mesh").Enabled(logging.ERROR))

	bad := LoggingConfig{Components: map[string]string{"world": "громко"}}
	assert.True(t, errors.Is(bad.ApplyComponentLevels(lm), ErrInvalidConfig))
}
