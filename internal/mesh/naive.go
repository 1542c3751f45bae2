package mesh

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
)

const (
	// VerticesPerFace - два треугольника без индексного буфера
	VerticesPerFace = 6
	// FloatsPerFace - компонент на грань в каждом из массивов
	FloatsPerFace = VerticesPerFace * 3

	minBufferFloats = 64 * FloatsPerFace
)

// Geometry - результат построения меша: плоские массивы позиций и нормалей (шаг 3)
type Geometry struct {
	Position []float32
	Normal   []float32
}

// FaceCount возвращает количество граней в геометрии
func (g Geometry) FaceCount() int { return len(g.Position) / FloatsPerFace }

// VertexCount возвращает количество вершин в геометрии
func (g Geometry) VertexCount() int { return len(g.Position) / 3 }

// floatBuffer - растущий буфер, ёмкость удваивается при переполнении
type floatBuffer struct {
	data []float32
	n    int
}

func (b *floatBuffer) reserve(extra int) {
	need := b.n + extra
	if need <= len(b.data) {
		return
	}

	capacity := max(len(b.data)*2, minBufferFloats)
	for capacity < need {
		capacity *= 2
	}

	grown := make([]float32, capacity)
	copy(grown, b.data[:b.n])
	b.data = grown
}

func (b *floatBuffer) push(v mgl32.Vec3) {
	b.data[b.n] = v[0]
	b.data[b.n+1] = v[1]
	b.data[b.n+2] = v[2]
	b.n += 3
}

func (b *floatBuffer) used() []float32 {
	return b.data[:b.n:b.n]
}

// NaiveMesher превращает каждую грань в два треугольника без объединения вершин
type NaiveMesher struct {
	position floatBuffer
	normal   floatBuffer
	faces    int
}

// NewNaiveMesher создаёт мешер; capacityFaces - начальная ёмкость в гранях (0 - по умолчанию)
func NewNaiveMesher(capacityFaces int) *NaiveMesher {
	m := &NaiveMesher{}
	if capacityFaces > 0 {
		m.position.data = make([]float32, capacityFaces*FloatsPerFace)
		m.normal.data = make([]float32, capacityFaces*FloatsPerFace)
	}
	return m
}

// FaceCount возвращает количество добавленных граней
func (m *NaiveMesher) FaceCount() int { return m.faces }

// Reset очищает мешер, сохраняя выделенные буферы
func (m *NaiveMesher) Reset() {
	m.position.n = 0
	m.normal.n = 0
	m.faces = 0
}

// AddFace добавляет шесть вершин грани. Face можно переиспользовать после вызова.
func (m *NaiveMesher) AddFace(f *world.Face) {
	n := toVec3(f.Normal())
	t := toVec3(f.Tangent)
	b := n.Cross(t)

	// Грань с положительной нормалью лежит на дальней стороне вокселя
	p0 := toVec3(f.Anchor).Add(toVec3(f.Normal().Max(vec.Vec3{})))
	p1 := p0.Add(t)
	p2 := p1.Add(b)
	p3 := p0.Add(b)

	m.position.reserve(FloatsPerFace)
	m.normal.reserve(FloatsPerFace)

	for _, p := range [VerticesPerFace]mgl32.Vec3{p0, p1, p2, p0, p2, p3} {
		m.position.push(p)
		m.normal.push(n)
	}
	m.faces++
}

// AddFaces добавляет все грани последовательности и возвращает их количество
func (m *NaiveMesher) AddFaces(faces iter.Seq[*world.Face]) int {
	added := 0
	for f := range faces {
		m.AddFace(f)
		added++
	}
	return added
}

// Geometry возвращает заполненную часть буферов. Срезы действительны до следующего AddFace или Reset.
func (m *NaiveMesher) Geometry() Geometry {
	return Geometry{
		Position: m.position.used(),
		Normal:   m.normal.used(),
	}
}

// BuildNaive строит геометрию по последовательности граней
func BuildNaive(faces iter.Seq[*world.Face]) Geometry {
	m := NewNaiveMesher(0)
	m.AddFaces(faces)
	return m.Geometry()
}

func toVec3(v vec.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
