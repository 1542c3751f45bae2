package world

import (
	"fmt"
	"iter"

	"github.com/annel0/voxelcore/internal/vec"
)

// FullFunc решает, является ли состояние вокселя заполненным.
// Единственная точка расширения семантики: материалы определяет вызывающая сторона.
type FullFunc func(state []byte) bool

// NonZero считает заполненным любой воксель, у которого есть ненулевой байт
func NonZero(state []byte) bool {
	return !isZero(state)
}

// FaceOptions - параметры обхода граней чанка
type FaceOptions struct {
	Offset               vec.Vec3 // добавляется к локальным координатам вокселя
	IsFull               FullFunc
	IgnoreAdjacentChunks bool // не заглядывать в соседние чанки на границе
}

// neighborRef - индексы соседнего чанка, вычисленные при монтировании
type neighborRef struct {
	superChunkIndex int
	chunkIndex      int
	ok              bool // false, если сосед за пределами мира
}

// chunkMount - обратная ссылка на мир, в который смонтирован чанк
type chunkMount struct {
	world           *World
	superChunkIndex int
	chunkIndex      int
	neighbors       [DirectionCount]neighborRef
}

// Chunk - трёхмерная сетка состояний вокселей в одном непрерывном буфере
type Chunk struct {
	size      vec.Vec3
	sizeXY    int
	stateSize int
	data      []byte

	mount *chunkMount
}

// NewChunk создаёт пустой чанк заданного размера.
// size и stateSize должны быть положительными.
func NewChunk(size vec.Vec3, stateSize int) *Chunk {
	return &Chunk{
		size:      size,
		sizeXY:    size.X * size.Y,
		stateSize: stateSize,
		data:      make([]byte, size.Volume()*stateSize),
	}
}

// Size возвращает размеры чанка
func (c *Chunk) Size() vec.Vec3 { return c.size }

// StateSize возвращает размер состояния вокселя в байтах
func (c *Chunk) StateSize() int { return c.stateSize }

// VoxelCount возвращает количество вокселей в чанке
func (c *Chunk) VoxelCount() int { return len(c.data) / c.stateSize }

// Index сворачивает локальные координаты в индекс вокселя
func (c *Chunk) Index(x, y, z int) int {
	return x + y*c.size.X + z*c.sizeXY
}

// VoxelStateAtIndex возвращает срез состояния вокселя по индексу.
// Проверяются только границы буфера.
func (c *Chunk) VoxelStateAtIndex(index int) []byte {
	off := index * c.stateSize
	return c.data[off : off+c.stateSize : off+c.stateSize]
}

// VoxelState возвращает состояние вокселя по локальным координатам
func (c *Chunk) VoxelState(x, y, z int) ([]byte, error) {
	if !c.inBounds(x, y, z) {
		return nil, fmt.Errorf("%w: (%d,%d,%d) вне чанка %v", ErrOutOfRange, x, y, z, c.size)
	}
	return c.VoxelStateAtIndex(c.Index(x, y, z)), nil
}

// TryVoxelState возвращает состояние вокселя или nil за пределами чанка.
// В соседний чанк не переходит.
func (c *Chunk) TryVoxelState(x, y, z int) []byte {
	if !c.inBounds(x, y, z) {
		return nil
	}
	return c.VoxelStateAtIndex(c.Index(x, y, z))
}

// IsEmpty возвращает true, если все байты буфера нулевые
func (c *Chunk) IsEmpty() bool {
	return isZero(c.data)
}

func (c *Chunk) inBounds(x, y, z int) bool {
	return x >= 0 && x < c.size.X &&
		y >= 0 && y < c.size.Y &&
		z >= 0 && z < c.size.Z
}

// Mount привязывает чанк к миру и запоминает индексы шести соседей.
// Соседи вычисляются один раз и не пересчитываются при изменении мира.
func (c *Chunk) Mount(w *World, superChunkIndex, chunkIndex int) {
	m := &chunkMount{
		world:           w,
		superChunkIndex: superChunkIndex,
		chunkIndex:      chunkIndex,
	}

	metrics := w.Metrics()
	if origin, err := metrics.ChunkOrigin(superChunkIndex, chunkIndex); err == nil {
		for _, dir := range Directions {
			p := origin.Add(dir.Normal().Mul(metrics.ChunkSize()))
			ix, err := metrics.ToIndexes(p.X, p.Y, p.Z)
			if err != nil {
				continue
			}
			m.neighbors[dir] = neighborRef{
				superChunkIndex: ix.SuperChunk,
				chunkIndex:      ix.Chunk,
				ok:              true,
			}
		}
	}

	c.mount = m
}

// Unmount снимает привязку к миру
func (c *Chunk) Unmount() {
	c.mount = nil
}

// Mounted возвращает true, если чанк смонтирован в мир
func (c *Chunk) Mounted() bool {
	return c.mount != nil
}

// World возвращает мир, в который смонтирован чанк, или nil
func (c *Chunk) World() *World {
	if c.mount == nil {
		return nil
	}
	return c.mount.world
}

// MountIndexes возвращает индексы суперчанка и чанка, под которыми чанк смонтирован
func (c *Chunk) MountIndexes() (superChunkIndex, chunkIndex int, ok bool) {
	if c.mount == nil {
		return 0, 0, false
	}
	return c.mount.superChunkIndex, c.mount.chunkIndex, true
}

// AdjacentChunk возвращает соседний чанк в направлении dir, если он существует в мире
func (c *Chunk) AdjacentChunk(dir Direction) *Chunk {
	if c.mount == nil {
		return nil
	}
	ref := c.mount.neighbors[dir]
	if !ref.ok {
		return nil
	}
	return c.mount.world.TryGetChunkByIndex(ref.superChunkIndex, ref.chunkIndex)
}

// VoxelFaces лениво перечисляет видимые грани заполненных вокселей.
//
// Грань выдаётся, если сосед в её направлении не заполнен. На границе чанка
// сосед ищется в смонтированном соседнем чанке (если не задан IgnoreAdjacentChunks),
// отсутствующий сосед считается пустым. Выдаваемый *Face переиспользуется на каждом шаге.
func (c *Chunk) VoxelFaces(opts FaceOptions) iter.Seq[*Face] {
	return func(yield func(*Face) bool) {
		isFull := opts.IsFull
		if isFull == nil {
			isFull = NonZero
		}

		// Соседей разрешаем в момент начала обхода
		var adjacent [DirectionCount]*Chunk
		if !opts.IgnoreAdjacentChunks {
			for _, dir := range Directions {
				adjacent[dir] = c.AdjacentChunk(dir)
			}
		}

		var face Face
		index := 0
		for z := 0; z < c.size.Z; z++ {
			for y := 0; y < c.size.Y; y++ {
				for x := 0; x < c.size.X; x++ {
					i := index
					index++
					if !isFull(c.VoxelStateAtIndex(i)) {
						continue
					}

					for _, dir := range Directions {
						if c.neighborFull(x, y, z, dir, &adjacent, isFull) {
							continue
						}

						face.Anchor = vec.Vec3{X: x + opts.Offset.X, Y: y + opts.Offset.Y, Z: z + opts.Offset.Z}
						face.Direction = dir
						face.Tangent = dir.Tangent()
						if !yield(&face) {
							return
						}
					}
				}
			}
		}
	}
}

// neighborFull проверяет заполненность соседа вокселя (x,y,z) в направлении dir
func (c *Chunk) neighborFull(x, y, z int, dir Direction, adjacent *[DirectionCount]*Chunk, isFull FullFunc) bool {
	n := dir.Normal()
	nx, ny, nz := x+n.X, y+n.Y, z+n.Z

	if c.inBounds(nx, ny, nz) {
		return isFull(c.VoxelStateAtIndex(c.Index(nx, ny, nz)))
	}

	other := adjacent[dir]
	if other == nil {
		return false
	}

	// Переносим координату через границу в систему соседа
	nx = vec.Mod(nx, other.size.X)
	ny = vec.Mod(ny, other.size.Y)
	nz = vec.Mod(nz, other.size.Z)

	state := other.TryVoxelState(nx, ny, nz)
	return state != nil && isFull(state)
}

// ComputeBounds возвращает минимальный бокс (в локальных координатах),
// покрывающий все заполненные воксели. Пустой бокс, если таких нет.
func (c *Chunk) ComputeBounds(isFull FullFunc) vec.Box3 {
	if isFull == nil {
		isFull = NonZero
	}

	bounds := vec.EmptyBox()
	index := 0
	for z := 0; z < c.size.Z; z++ {
		for y := 0; y < c.size.Y; y++ {
			for x := 0; x < c.size.X; x++ {
				if isFull(c.VoxelStateAtIndex(index)) {
					bounds = bounds.ExpandByPoint(vec.Vec3{X: x, Y: y, Z: z})
				}
				index++
			}
		}
	}
	return bounds
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
