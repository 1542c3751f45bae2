package terrain

import (
	"fmt"
	"math"

	"github.com/annel0/voxelcore/internal/config"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
)

// Generator заполняет мир ландшафтом по карте высот из шума Перлина.
// Ось Y направлена вверх, колонки идут по X и Z.
type Generator struct {
	Seed       int64
	Scale      float64 // Масштаб шума высоты
	BaseHeight int
	Amplitude  int // Максимальное отклонение высоты от BaseHeight
	DirtDepth  int // Слой земли под травой
	WaterLevel int // Пустоты ниже этого уровня заполняются водой

	noise *Noise
	log   *logging.Logger
}

// NewGenerator создаёт генератор по секции terrain конфигурации
func NewGenerator(cfg config.TerrainConfig) *Generator {
	return &Generator{
		Seed:       cfg.Seed,
		Scale:      cfg.Scale,
		BaseHeight: cfg.BaseHeight,
		Amplitude:  cfg.Amplitude,
		DirtDepth:  cfg.DirtDepth,
		WaterLevel: cfg.WaterLevel,
		noise:      NewNoise(cfg.Seed),
		log:        logging.GetComponentLogger("terrain"),
	}
}

// Height возвращает высоту поверхности колонки: воксели с y < Height заняты грунтом
func (g *Generator) Height(x, z int) int {
	n := g.noise.Noise2D(float64(x)*g.Scale, float64(z)*g.Scale)
	return g.BaseHeight + int(math.Round((n*2-1)*float64(g.Amplitude)))
}

// MaterialAt возвращает материал вокселя на высоте y в колонке высотой height
func (g *Generator) MaterialAt(y, height int) Material {
	switch {
	case y >= height:
		if y < g.WaterLevel {
			return Water
		}
		return Air
	case y == height-1:
		return Grass
	case y >= height-1-g.DirtDepth:
		return Dirt
	default:
		return Stone
	}
}

// Fill заполняет область мира и возвращает количество изменённых вокселей
func (g *Generator) Fill(w *world.World, area vec.Box3) (int, error) {
	if area.IsEmpty() {
		return 0, nil
	}

	state := make([]byte, w.VoxelStateSize())
	changed := 0

	for z := area.Min.Z; z < area.Max.Z; z++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			height := g.Height(x, z)

			for y := area.Min.Y; y < area.Max.Y; y++ {
				m := g.MaterialAt(y, height)
				if m == Air {
					continue
				}

				EncodeMaterial(state, m)
				ok, err := w.SetVoxelState(x, y, z, state)
				if err != nil {
					return changed, fmt.Errorf("ошибка генерации (%d, %d, %d): %w", x, y, z, err)
				}
				if ok {
					changed++
				}
			}
		}
	}

	g.log.Info("Сгенерирована область %v: изменено %d вокселей, чанков %d", area, changed, w.ChunkCount())
	return changed, nil
}
