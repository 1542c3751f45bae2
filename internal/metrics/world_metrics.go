package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/voxelcore/internal/mesh"
	"github.com/annel0/voxelcore/internal/world"
)

const namespace = "voxel"

// WorldMetrics - Prometheus-счётчики мира и мешинга. Реализует world.Observer.
type WorldMetrics struct {
	superChunks prometheus.Counter
	chunks      prometheus.Counter
	writes      *prometheus.CounterVec
	byResult    [3]prometheus.Counter

	meshBuilds prometheus.Counter
	faces      prometheus.Counter
	vertices   prometheus.Counter
}

// NewWorldMetrics создаёт метрики и регистрирует их в reg (nil - глобальный регистр).
func NewWorldMetrics(reg prometheus.Registerer) *WorldMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	wm := &WorldMetrics{
		superChunks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "world",
			Name:      "super_chunks_allocated_total",
			Help:      "Количество выделенных суперчанков.",
		}),
		chunks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "world",
			Name:      "chunks_allocated_total",
			Help:      "Количество выделенных чанков.",
		}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "world",
			Name:      "voxel_writes_total",
			Help:      "Записи состояния вокселей по исходу (changed, unchanged, elided).",
		}, []string{"result"}),
		meshBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mesh",
			Name:      "builds_total",
			Help:      "Количество построенных мешей.",
		}),
		faces: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mesh",
			Name:      "faces_total",
			Help:      "Количество граней во всех построенных мешах.",
		}),
		vertices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mesh",
			Name:      "vertices_total",
			Help:      "Количество вершин во всех построенных мешах.",
		}),
	}

	// Горячий путь записи не должен искать метку на каждый вызов
	for _, r := range []world.WriteResult{world.WriteElided, world.WriteUnchanged, world.WriteChanged} {
		wm.byResult[r] = wm.writes.WithLabelValues(r.String())
	}

	reg.MustRegister(wm.superChunks, wm.chunks, wm.writes, wm.meshBuilds, wm.faces, wm.vertices)
	return wm
}

// SuperChunkAllocated учитывает выделение суперчанка
func (wm *WorldMetrics) SuperChunkAllocated(int) { wm.superChunks.Inc() }

// ChunkAllocated учитывает выделение чанка
func (wm *WorldMetrics) ChunkAllocated(int, int) { wm.chunks.Inc() }

// VoxelWritten учитывает запись вокселя по её исходу
func (wm *WorldMetrics) VoxelWritten(result world.WriteResult) {
	if int(result) < len(wm.byResult) {
		wm.byResult[result].Inc()
	}
}

// ObserveGeometry учитывает построенный меш
func (wm *WorldMetrics) ObserveGeometry(g mesh.Geometry) {
	wm.meshBuilds.Inc()
	wm.faces.Add(float64(g.FaceCount()))
	wm.vertices.Add(float64(g.VertexCount()))
}
