package world

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/vec"
)

// DefaultVoxelStateSize - размер состояния вокселя по умолчанию (байт)
const DefaultVoxelStateSize = 4

// WriteResult - исход записи состояния вокселя
type WriteResult uint8

const (
	WriteElided    WriteResult = iota // нулевое состояние в пустую область, ничего не выделено
	WriteUnchanged                    // состояние совпало побайтно
	WriteChanged                      // состояние изменилось
)

// String возвращает строковое представление исхода записи
func (r WriteResult) String() string {
	switch r {
	case WriteElided:
		return "elided"
	case WriteUnchanged:
		return "unchanged"
	case WriteChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// Observer получает уведомления о выделении памяти и записях в мир
type Observer interface {
	SuperChunkAllocated(superChunkIndex int)
	ChunkAllocated(superChunkIndex, chunkIndex int)
	VoxelWritten(result WriteResult)
}

type nopObserver struct{}

func (nopObserver) SuperChunkAllocated(int)  {}
func (nopObserver) ChunkAllocated(int, int)  {}
func (nopObserver) VoxelWritten(WriteResult) {}

// Option настраивает World при создании
type Option func(*World)

// WithObserver подключает наблюдателя (например, Prometheus-метрики)
func WithObserver(o Observer) Option {
	return func(w *World) {
		if o != nil {
			w.observer = o
		}
	}
}

// superChunk хранит чанки одного суперчанка в порядке добавления
type superChunk struct {
	index  int
	chunks map[int]*Chunk
	order  []*Chunk
}

// World - разреженный мир: индекс суперчанка -> индекс чанка -> Chunk.
// Отсутствие записи означает полностью пустой чанк.
// Не потокобезопасен: конкурентный доступ сериализует вызывающая сторона.
type World struct {
	metrics   *CoordinateMetrics
	stateSize int

	superChunks map[int]*superChunk
	order       []*superChunk
	chunkCount  int

	empty    []byte // общий нулевой ответ для пустых областей, только для чтения
	observer Observer
	log      *logging.Logger
}

// NewWorld создаёт пустой мир
func NewWorld(metrics *CoordinateMetrics, stateSize int, opts ...Option) (*World, error) {
	if metrics == nil {
		return nil, fmt.Errorf("%w: метрика не задана", ErrInvalidMetrics)
	}
	if stateSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStateSize, stateSize)
	}

	w := &World{
		metrics:     metrics,
		stateSize:   stateSize,
		superChunks: make(map[int]*superChunk),
		empty:       make([]byte, stateSize),
		observer:    nopObserver{},
		log:         logging.GetComponentLogger("world"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Metrics возвращает метрику координат мира
func (w *World) Metrics() *CoordinateMetrics { return w.metrics }

// VoxelStateSize возвращает размер состояния вокселя в байтах
func (w *World) VoxelStateSize() int { return w.stateSize }

// ChunkCount возвращает количество выделенных чанков
func (w *World) ChunkCount() int { return w.chunkCount }

// SuperChunkCount возвращает количество выделенных суперчанков
func (w *World) SuperChunkCount() int { return len(w.superChunks) }

// Chunks перечисляет выделенные чанки в порядке добавления
func (w *World) Chunks() iter.Seq[*Chunk] {
	return func(yield func(*Chunk) bool) {
		for _, sc := range w.order {
			for _, chunk := range sc.order {
				if !yield(chunk) {
					return
				}
			}
		}
	}
}

// TryGetChunkByIndex возвращает чанк по тройке индексов или nil
func (w *World) TryGetChunkByIndex(superChunkIndex, chunkIndex int) *Chunk {
	sc := w.superChunks[superChunkIndex]
	if sc == nil {
		return nil
	}
	return sc.chunks[chunkIndex]
}

// TryGetChunk возвращает чанк по координатам в сетке чанков или nil
func (w *World) TryGetChunk(cx, cy, cz int) *Chunk {
	superChunkIndex, chunkIndex, ok := w.metrics.LocateChunk(cx, cy, cz)
	if !ok {
		return nil
	}
	return w.TryGetChunkByIndex(superChunkIndex, chunkIndex)
}

// TryGetSurroundingChunkAt возвращает чанк, содержащий воксель (x,y,z), или nil
func (w *World) TryGetSurroundingChunkAt(x, y, z int) *Chunk {
	ix, err := w.metrics.ToIndexes(x, y, z)
	if err != nil {
		return nil
	}
	return w.TryGetChunkByIndex(ix.SuperChunk, ix.Chunk)
}

// VoxelState возвращает состояние вокселя. Для пустых областей возвращается
// общий нулевой срез без выделения памяти; изменять его нельзя.
func (w *World) VoxelState(x, y, z int) ([]byte, error) {
	ix, err := w.metrics.ToIndexes(x, y, z)
	if err != nil {
		return nil, err
	}

	chunk := w.TryGetChunkByIndex(ix.SuperChunk, ix.Chunk)
	if chunk == nil {
		return w.empty, nil
	}
	return chunk.VoxelStateAtIndex(ix.Voxel), nil
}

// SetVoxelState записывает состояние вокселя и возвращает true, если изменился хотя бы один байт.
// Нулевое состояние в отсутствующий чанк ничего не выделяет.
func (w *World) SetVoxelState(x, y, z int, state []byte) (bool, error) {
	if len(state) != w.stateSize {
		return false, fmt.Errorf("%w: получено %d, ожидалось %d", ErrStateSize, len(state), w.stateSize)
	}

	ix, err := w.metrics.ToIndexes(x, y, z)
	if err != nil {
		return false, err
	}

	sc := w.superChunks[ix.SuperChunk]
	var chunk *Chunk
	if sc != nil {
		chunk = sc.chunks[ix.Chunk]
	}

	if chunk == nil {
		if isZero(state) {
			w.observer.VoxelWritten(WriteElided)
			return false, nil
		}
		if sc == nil {
			sc = w.addSuperChunk(ix.SuperChunk)
		}
		chunk = w.addChunk(sc, ix.Chunk)
	}

	dst := chunk.VoxelStateAtIndex(ix.Voxel)
	if bytes.Equal(dst, state) {
		w.observer.VoxelWritten(WriteUnchanged)
		return false, nil
	}

	copy(dst, state)
	w.observer.VoxelWritten(WriteChanged)
	return true, nil
}

func (w *World) addSuperChunk(index int) *superChunk {
	sc := &superChunk{
		index:  index,
		chunks: make(map[int]*Chunk),
	}
	w.superChunks[index] = sc
	w.order = append(w.order, sc)

	w.log.Trace("Выделен суперчанк %d (всего %d)", index, len(w.superChunks))
	w.observer.SuperChunkAllocated(index)
	return sc
}

func (w *World) addChunk(sc *superChunk, chunkIndex int) *Chunk {
	chunk := NewChunk(w.metrics.ChunkSize(), w.stateSize)
	sc.chunks[chunkIndex] = chunk
	sc.order = append(sc.order, chunk)
	w.chunkCount++

	chunk.Mount(w, sc.index, chunkIndex)

	w.log.Trace("Выделен чанк %d/%d (всего %d)", sc.index, chunkIndex, w.chunkCount)
	w.observer.ChunkAllocated(sc.index, chunkIndex)
	return chunk
}

// chunkOrigin возвращает мировые координаты первого вокселя смонтированного чанка
func (w *World) chunkOrigin(chunk *Chunk) (vec.Vec3, bool) {
	superChunkIndex, chunkIndex, ok := chunk.MountIndexes()
	if !ok {
		return vec.Vec3{}, false
	}
	origin, err := w.metrics.ChunkOrigin(superChunkIndex, chunkIndex)
	if err != nil {
		return vec.Vec3{}, false
	}
	return origin, true
}

// ComputeVoxelBounds возвращает бокс (в мировых координатах), покрывающий все заполненные воксели
func (w *World) ComputeVoxelBounds(isFull FullFunc) vec.Box3 {
	bounds := vec.EmptyBox()
	for chunk := range w.Chunks() {
		local := chunk.ComputeBounds(isFull)
		if local.IsEmpty() {
			continue
		}
		origin, ok := w.chunkOrigin(chunk)
		if !ok {
			continue
		}
		bounds = bounds.Union(local.Translate(origin))
	}
	return bounds
}

// ComputeChunkBounds возвращает бокс (в мировых координатах), покрывающий все выделенные чанки
func (w *World) ComputeChunkBounds() vec.Box3 {
	bounds := vec.EmptyBox()
	size := w.metrics.ChunkSize()
	for chunk := range w.Chunks() {
		origin, ok := w.chunkOrigin(chunk)
		if !ok {
			continue
		}
		bounds = bounds.Union(vec.BoxFromSize(origin, size))
	}
	return bounds
}

// ChunkVoxelFaces лениво перечисляет видимые грани всех чанков, пересекающих query.
// query полуоткрыт: Max не входит в бокс, поэтому чанк, начинающийся ровно на Max, не обходится.
// Отсутствующие чанки пропускаются. *Face переиспользуется на каждом шаге.
func (w *World) ChunkVoxelFaces(query vec.Box3, isFull FullFunc) iter.Seq[*Face] {
	return func(yield func(*Face) bool) {
		if query.IsEmpty() {
			return
		}

		size := w.metrics.ChunkSize()
		lo := query.Min.FloorDiv(size)
		hi := query.Max.CeilDiv(size) // не включительно

		emit := func(chunk *Chunk, coords vec.Vec3) bool {
			opts := FaceOptions{Offset: coords.Mul(size), IsFull: isFull}
			for face := range chunk.VoxelFaces(opts) {
				if !yield(face) {
					return false
				}
			}
			return true
		}

		// Если диапазон больше числа выделенных чанков, дешевле пройти по ним
		if rangeExceeds(lo, hi, w.chunkCount) {
			rng := vec.Box3{Min: lo, Max: hi}
			for chunk := range w.Chunks() {
				origin, ok := w.chunkOrigin(chunk)
				if !ok {
					continue
				}
				coords := origin.FloorDiv(size)
				if !rng.Contains(coords) {
					continue
				}
				if !emit(chunk, coords) {
					return
				}
			}
			return
		}

		for cz := lo.Z; cz < hi.Z; cz++ {
			for cy := lo.Y; cy < hi.Y; cy++ {
				for cx := lo.X; cx < hi.X; cx++ {
					chunk := w.TryGetChunk(cx, cy, cz)
					if chunk == nil {
						continue
					}
					if !emit(chunk, vec.Vec3{X: cx, Y: cy, Z: cz}) {
						return
					}
				}
			}
		}
	}
}

// rangeExceeds проверяет, что в диапазоне [lo,hi) больше limit ячеек, без переполнения
func rangeExceeds(lo, hi vec.Vec3, limit int) bool {
	d := hi.Sub(lo)
	return float64(d.X)*float64(d.Y)*float64(d.Z) > float64(limit)
}
