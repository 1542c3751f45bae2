package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
)

func twoVoxelChunk() *world.Chunk {
	c := world.NewChunk(vec.Splat(2), 1)
	copy(c.TryVoxelState(0, 0, 0), []byte{1})
	copy(c.TryVoxelState(1, 0, 0), []byte{1})
	return c
}

func vertex(data []float32, i int) mgl32.Vec3 {
	return mgl32.Vec3{data[i*3], data[i*3+1], data[i*3+2]}
}

func TestBuildNaive_ConcreteScenario(t *testing.T) {
	g := BuildNaive(twoVoxelChunk().VoxelFaces(world.FaceOptions{}))

	assert.Equal(t, 10, g.FaceCount())
	assert.Equal(t, 60, g.VertexCount())
	assert.Len(t, g.Position, 180)
	assert.Len(t, g.Normal, 180)
}

func TestBuildNaive_WindingAndNormals(t *testing.T) {
	c := world.NewChunk(vec.Splat(1), 1)
	copy(c.TryVoxelState(0, 0, 0), []byte{1})

	g := BuildNaive(c.VoxelFaces(world.FaceOptions{Offset: vec.NewVec3(5, -2, 3)}))
	require.Equal(t, 6, g.FaceCount())

	for tri := 0; tri < g.VertexCount()/3; tri++ {
		a := vertex(g.Position, tri*3)
		b := vertex(g.Position, tri*3+1)
		c := vertex(g.Position, tri*3+2)
		n := vertex(g.Normal, tri*3)

		// Треугольник обходится против часовой стрелки, если смотреть снаружи
		assert.True(t, b.Sub(a).Cross(c.Sub(a)).ApproxEqual(n), "Треугольник %d: нормаль %v", tri, n)
		assert.Equal(t, n, vertex(g.Normal, tri*3+1))
		assert.Equal(t, n, vertex(g.Normal, tri*3+2))

		for _, p := range []mgl32.Vec3{a, b, c} {
			assert.True(t, p.X() >= 5 && p.X() <= 6, "x=%v вне вокселя", p.X())
			assert.True(t, p.Y() >= -2 && p.Y() <= -1, "y=%v вне вокселя", p.Y())
			assert.True(t, p.Z() >= 3 && p.Z() <= 4, "z=%v вне вокселя", p.Z())
		}
	}
}

func TestNaiveMesher_Growth(t *testing.T) {
	m := NewNaiveMesher(1)
	face := &world.Face{Direction: world.PosZ, Tangent: world.PosZ.Tangent()}

	for i := 0; i < 100; i++ {
		face.Anchor = vec.NewVec3(i, 0, 0)
		m.AddFace(face)
	}
	assert.Equal(t, 100, m.FaceCount())

	g := m.Geometry()
	require.Equal(t, 100*FloatsPerFace, len(g.Position))
	assert.Equal(t, len(g.Position), cap(g.Position), "Geometry отдаёт только заполненную часть")

	// Первая вершина последней грани
	assert.Equal(t, mgl32.Vec3{99, 0, 1}, vertex(g.Position, 99*VerticesPerFace))

	m.Reset()
	assert.Equal(t, 0, m.FaceCount())
	assert.Empty(t, m.Geometry().Position)

	added := m.AddFaces(twoVoxelChunk().VoxelFaces(world.FaceOptions{}))
	assert.Equal(t, 10, added)
	assert.Equal(t, 10, m.Geometry().FaceCount())
}
