package world

import (
	"fmt"

	"github.com/annel0/voxelcore/internal/vec"
)

// Размеры по умолчанию (по каждой оси)
const (
	DefaultChunkSize      = 16   // вокселей в чанке
	DefaultSuperChunkSize = 1024 // чанков в суперчанке
	DefaultWorldSize      = 1024 // суперчанков в мире
)

// Indexes - тройка индексов, однозначно задающая воксель в мире
type Indexes struct {
	SuperChunk int // индекс суперчанка в мире (со смещением на половину мира)
	Chunk      int // индекс чанка внутри суперчанка
	Voxel      int // индекс вокселя внутри чанка
}

// CoordinateMetrics переводит плоские координаты вокселей в тройку индексов и обратно.
// Неизменяем после создания, безопасен для совместного использования.
type CoordinateMetrics struct {
	chunkSize      vec.Vec3 // вокселей в чанке
	superChunkSize vec.Vec3 // чанков в суперчанке
	worldSize      vec.Vec3 // суперчанков в мире

	chunkSizeXY, chunkSizeXYZ           int
	superChunkSizeXY, superChunkSizeXYZ int
	worldSizeXY, worldSizeXYZ           int

	superChunkVoxelSize vec.Vec3 // вокселей в суперчанке
	bias                vec.Vec3 // половина мира в суперчанках
	voxelBounds         vec.Box3 // допустимый диапазон координат вокселей
}

// NewCoordinateMetrics создаёт метрику по размеру чанка (в вокселях),
// размеру суперчанка (в чанках) и размеру мира (в суперчанках)
func NewCoordinateMetrics(chunkSize, superChunkSize, worldSize vec.Vec3) (*CoordinateMetrics, error) {
	if !chunkSize.Positive() || !superChunkSize.Positive() || !worldSize.Positive() {
		return nil, fmt.Errorf("%w: chunk=%v superChunk=%v world=%v",
			ErrInvalidMetrics, chunkSize, superChunkSize, worldSize)
	}

	m := &CoordinateMetrics{
		chunkSize:      chunkSize,
		superChunkSize: superChunkSize,
		worldSize:      worldSize,

		chunkSizeXY:       chunkSize.X * chunkSize.Y,
		chunkSizeXYZ:      chunkSize.Volume(),
		superChunkSizeXY:  superChunkSize.X * superChunkSize.Y,
		superChunkSizeXYZ: superChunkSize.Volume(),
		worldSizeXY:       worldSize.X * worldSize.Y,
		worldSizeXYZ:      worldSize.Volume(),

		superChunkVoxelSize: chunkSize.Mul(superChunkSize),
		bias: vec.Vec3{
			X: worldSize.X / 2,
			Y: worldSize.Y / 2,
			Z: worldSize.Z / 2,
		},
	}

	m.voxelBounds = vec.Box3{
		Min: m.bias.Scale(-1).Mul(m.superChunkVoxelSize),
		Max: worldSize.Sub(m.bias).Mul(m.superChunkVoxelSize),
	}

	return m, nil
}

// DefaultCoordinateMetrics возвращает метрику с размерами по умолчанию
func DefaultCoordinateMetrics() *CoordinateMetrics {
	m, err := NewCoordinateMetrics(
		vec.Splat(DefaultChunkSize),
		vec.Splat(DefaultSuperChunkSize),
		vec.Splat(DefaultWorldSize),
	)
	if err != nil {
		panic(err)
	}
	return m
}

// ChunkSize возвращает размер чанка в вокселях
func (m *CoordinateMetrics) ChunkSize() vec.Vec3 { return m.chunkSize }

// SuperChunkSize возвращает размер суперчанка в чанках
func (m *CoordinateMetrics) SuperChunkSize() vec.Vec3 { return m.superChunkSize }

// WorldSize возвращает размер мира в суперчанках
func (m *CoordinateMetrics) WorldSize() vec.Vec3 { return m.worldSize }

// SuperChunkVoxelSize возвращает размер суперчанка в вокселях
func (m *CoordinateMetrics) SuperChunkVoxelSize() vec.Vec3 { return m.superChunkVoxelSize }

// VoxelsPerChunk возвращает количество вокселей в чанке
func (m *CoordinateMetrics) VoxelsPerChunk() int { return m.chunkSizeXYZ }

// ChunksPerSuperChunk возвращает количество слотов чанков в суперчанке
func (m *CoordinateMetrics) ChunksPerSuperChunk() int { return m.superChunkSizeXYZ }

// SuperChunksPerWorld возвращает количество слотов суперчанков в мире
func (m *CoordinateMetrics) SuperChunksPerWorld() int { return m.worldSizeXYZ }

// VoxelBounds возвращает допустимый диапазон координат вокселей
func (m *CoordinateMetrics) VoxelBounds() vec.Box3 { return m.voxelBounds }

// ToIndexes переводит координаты вокселя в тройку индексов
func (m *CoordinateMetrics) ToIndexes(x, y, z int) (Indexes, error) {
	p := vec.Vec3{X: x, Y: y, Z: z}
	if !m.voxelBounds.Contains(p) {
		return Indexes{}, fmt.Errorf("%w: воксель (%d,%d,%d) вне %s", ErrOutOfRange, x, y, z, m.voxelBounds)
	}

	super := p.FloorDiv(m.superChunkVoxelSize)
	local := p.Sub(super.Mul(m.superChunkVoxelSize))

	// local неотрицателен, поэтому обычное деление совпадает с floor
	chunk := vec.Vec3{
		X: local.X / m.chunkSize.X,
		Y: local.Y / m.chunkSize.Y,
		Z: local.Z / m.chunkSize.Z,
	}
	voxel := local.Sub(chunk.Mul(m.chunkSize))

	return Indexes{
		SuperChunk: flatten(super.Add(m.bias), m.worldSize.X, m.worldSizeXY),
		Chunk:      flatten(chunk, m.superChunkSize.X, m.superChunkSizeXY),
		Voxel:      flatten(voxel, m.chunkSize.X, m.chunkSizeXY),
	}, nil
}

// FromIndexes - точная обратная операция к ToIndexes
func (m *CoordinateMetrics) FromIndexes(ix Indexes) (vec.Vec3, error) {
	if ix.SuperChunk < 0 || ix.SuperChunk >= m.worldSizeXYZ {
		return vec.Vec3{}, fmt.Errorf("%w: индекс суперчанка %d вне [0,%d)", ErrOutOfRange, ix.SuperChunk, m.worldSizeXYZ)
	}
	if ix.Chunk < 0 || ix.Chunk >= m.superChunkSizeXYZ {
		return vec.Vec3{}, fmt.Errorf("%w: индекс чанка %d вне [0,%d)", ErrOutOfRange, ix.Chunk, m.superChunkSizeXYZ)
	}
	if ix.Voxel < 0 || ix.Voxel >= m.chunkSizeXYZ {
		return vec.Vec3{}, fmt.Errorf("%w: индекс вокселя %d вне [0,%d)", ErrOutOfRange, ix.Voxel, m.chunkSizeXYZ)
	}

	super := unflatten(ix.SuperChunk, m.worldSize.X, m.worldSizeXY).Sub(m.bias)
	chunk := unflatten(ix.Chunk, m.superChunkSize.X, m.superChunkSizeXY)
	voxel := unflatten(ix.Voxel, m.chunkSize.X, m.chunkSizeXY)

	return super.Mul(m.superChunkVoxelSize).
		Add(chunk.Mul(m.chunkSize)).
		Add(voxel), nil
}

// ComputeSuperChunkIndex вычисляет индекс суперчанка по его координатам (в суперчанках)
func (m *CoordinateMetrics) ComputeSuperChunkIndex(sx, sy, sz int) (int, error) {
	b := vec.Vec3{X: sx, Y: sy, Z: sz}.Add(m.bias)
	if b.X < 0 || b.X >= m.worldSize.X ||
		b.Y < 0 || b.Y >= m.worldSize.Y ||
		b.Z < 0 || b.Z >= m.worldSize.Z {
		return 0, fmt.Errorf("%w: суперчанк (%d,%d,%d)", ErrOutOfRange, sx, sy, sz)
	}
	return flatten(b, m.worldSize.X, m.worldSizeXY), nil
}

// ChunkIndex сворачивает локальные координаты чанка внутри суперчанка
func (m *CoordinateMetrics) ChunkIndex(cx, cy, cz int) int {
	return cx + cy*m.superChunkSize.X + cz*m.superChunkSizeXY
}

// VoxelIndex сворачивает локальные координаты вокселя внутри чанка
func (m *CoordinateMetrics) VoxelIndex(x, y, z int) int {
	return x + y*m.chunkSize.X + z*m.chunkSizeXY
}

// VoxelCoords разворачивает индекс вокселя в локальные координаты чанка
func (m *CoordinateMetrics) VoxelCoords(voxelIndex int) vec.Vec3 {
	return unflatten(voxelIndex, m.chunkSize.X, m.chunkSizeXY)
}

// LocateChunk находит индексы чанка по его координатам в сетке чанков.
// ok == false, если чанк лежит за пределами мира.
func (m *CoordinateMetrics) LocateChunk(cx, cy, cz int) (superChunkIndex, chunkIndex int, ok bool) {
	c := vec.Vec3{X: cx, Y: cy, Z: cz}
	super := c.FloorDiv(m.superChunkSize)
	local := c.Sub(super.Mul(m.superChunkSize))

	superChunkIndex, err := m.ComputeSuperChunkIndex(super.X, super.Y, super.Z)
	if err != nil {
		return 0, 0, false
	}
	return superChunkIndex, m.ChunkIndex(local.X, local.Y, local.Z), true
}

// ChunkOrigin возвращает координаты первого вокселя чанка
func (m *CoordinateMetrics) ChunkOrigin(superChunkIndex, chunkIndex int) (vec.Vec3, error) {
	return m.FromIndexes(Indexes{SuperChunk: superChunkIndex, Chunk: chunkIndex})
}

// ChunkCoords возвращает координаты чанка в сетке чанков
func (m *CoordinateMetrics) ChunkCoords(superChunkIndex, chunkIndex int) (vec.Vec3, error) {
	origin, err := m.ChunkOrigin(superChunkIndex, chunkIndex)
	if err != nil {
		return vec.Vec3{}, err
	}
	return origin.FloorDiv(m.chunkSize), nil
}

func flatten(v vec.Vec3, sizeX, sizeXY int) int {
	return v.X + v.Y*sizeX + v.Z*sizeXY
}

func unflatten(i, sizeX, sizeXY int) vec.Vec3 {
	z := i / sizeXY
	i -= z * sizeXY
	y := i / sizeX
	return vec.Vec3{X: i - y*sizeX, Y: y, Z: z}
}
