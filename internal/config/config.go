package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
)

// ErrInvalidConfig возвращается Validate при некорректных значениях
var ErrInvalidConfig = errors.New("некорректная конфигурация")

// Config корневая структура конфигурации.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Terrain TerrainConfig `yaml:"terrain"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

type WorldConfig struct {
	ChunkSize      vec.Vec3 `yaml:"chunk_size"`
	SuperChunkSize vec.Vec3 `yaml:"super_chunk_size"`
	WorldSize      vec.Vec3 `yaml:"world_size"`
	VoxelStateSize int      `yaml:"voxel_state_size"`
}

type TerrainConfig struct {
	Seed       int64    `yaml:"seed"`
	Scale      float64  `yaml:"scale"`
	BaseHeight int      `yaml:"base_height"`
	Amplitude  int      `yaml:"amplitude"`
	DirtDepth  int      `yaml:"dirt_depth"`
	WaterLevel int      `yaml:"water_level"`
	AreaMin    vec.Vec3 `yaml:"area_min"`
	AreaMax    vec.Vec3 `yaml:"area_max"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level      string            `yaml:"level"`
	Dir        string            `yaml:"dir"`
	Components map[string]string `yaml:"components"` // уровни отдельных компонентов, например world: trace
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			ChunkSize:      vec.Splat(world.DefaultChunkSize),
			SuperChunkSize: vec.Splat(world.DefaultSuperChunkSize),
			WorldSize:      vec.Splat(world.DefaultWorldSize),
			VoxelStateSize: world.DefaultVoxelStateSize,
		},
		Terrain: TerrainConfig{
			Seed:       1337,
			Scale:      0.02,
			BaseHeight: 8,
			Amplitude:  24,
			DirtDepth:  3,
			WaterLevel: 0,
			AreaMin:    vec.NewVec3(-64, -16, -64),
			AreaMax:    vec.NewVec3(64, 48, 64),
		},
	}
}

// CoordinateMetrics строит метрики координат из размеров мира
func (w WorldConfig) CoordinateMetrics() (*world.CoordinateMetrics, error) {
	return world.NewCoordinateMetrics(w.ChunkSize, w.SuperChunkSize, w.WorldSize)
}

// Area возвращает обрабатываемую генератором область
func (t TerrainConfig) Area() vec.Box3 {
	return vec.NewBox3(t.AreaMin, t.AreaMax)
}

// GetMetricsAddr возвращает адрес экспортёра метрик: config -> env -> пусто (выключено)
func (m *MetricsConfig) GetMetricsAddr() string {
	return getStringWithEnvFallback(m.Addr, "VOXEL_METRICS_ADDR", "")
}

// GetLevel возвращает уровень логирования: config -> env -> INFO
func (l *LoggingConfig) GetLevel() logging.LogLevel {
	raw := getStringWithEnvFallback(l.Level, "VOXEL_LOG_LEVEL", "")
	if raw == "" {
		return logging.INFO
	}
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return logging.INFO
	}
	return level
}

// ApplyComponentLevels выставляет уровни из logging.components в менеджере логгеров.
// Вызывать после logging.Configure: недостающие логгеры создаются здесь.
func (l *LoggingConfig) ApplyComponentLevels(lm *logging.LoggerManager) error {
	for component, raw := range l.Components {
		level, err := logging.ParseLevel(raw)
		if err != nil {
			return fmt.Errorf("%w: logging.components.%s: %v", ErrInvalidConfig, component, err)
		}
		if _, err := lm.GetLogger(component); err != nil {
			return err
		}
		if err := lm.SetLogLevel(component, level, level); err != nil {
			return err
		}
	}
	return nil
}

// getStringWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getStringWithEnvFallback(configVal, envVar, defaultVal string) string {
	if configVal != "" {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultVal
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if _, err := c.World.CoordinateMetrics(); err != nil {
		return fmt.Errorf("%w: world: %v", ErrInvalidConfig, err)
	}
	if c.World.VoxelStateSize <= 0 {
		return fmt.Errorf("%w: world.voxel_state_size=%d", ErrInvalidConfig, c.World.VoxelStateSize)
	}
	if c.Terrain.Scale <= 0 {
		return fmt.Errorf("%w: terrain.scale=%v", ErrInvalidConfig, c.Terrain.Scale)
	}
	if c.Terrain.Amplitude < 0 || c.Terrain.DirtDepth < 0 {
		return fmt.Errorf("%w: terrain.amplitude=%d terrain.dirt_depth=%d", ErrInvalidConfig, c.Terrain.Amplitude, c.Terrain.DirtDepth)
	}
	if c.Terrain.Area().IsEmpty() {
		return fmt.Errorf("%w: terrain area %v пуста", ErrInvalidConfig, c.Terrain.Area())
	}
	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
		}
	}
	for component, raw := range c.Logging.Components {
		if _, err := logging.ParseLevel(raw); err != nil {
			return fmt.Errorf("%w: logging.components.%s: %v", ErrInvalidConfig, component, err)
		}
	}
	return nil
}

// Load читает YAML файл конфигурации поверх Default().
// Если path == "", пытается прочитать путь из ENV VOXEL_CONFIG, иначе возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан, используем дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора %s: %w", path, err)
	}

	return cfg, nil
}
