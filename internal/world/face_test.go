package world

import (
	"testing"

	"github.com/annel0/voxelcore/internal/vec"
	"github.com/stretchr/testify/assert"
)

func cross(a, b vec.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func TestDirection_Basis(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d.Normal(), cross(d.Tangent(), d.Bitangent()), "tangent × bitangent = normal для %s", d)
		assert.Equal(t, d.Normal().Scale(-1), d.Opposite().Normal(), "Противоположное направление для %s", d)
		assert.Equal(t, d, d.Opposite().Opposite())
	}
	assert.Equal(t, "+X", PosX.String())
	assert.Equal(t, "-Z", NegZ.String())
}

func TestFace_Corners(t *testing.T) {
	anchor := vec.NewVec3(-3, 4, 7)

	for _, d := range Directions {
		f := Face{Anchor: anchor, Direction: d, Tangent: d.Tangent()}
		c := f.Corners()

		// Все углы лежат в плоскости грани
		n := d.Normal()
		plane := anchor.Add(n.Max(vec.Vec3{}))
		for _, p := range c {
			switch {
			case n.X != 0:
				assert.Equal(t, plane.X, p.X, "%s", d)
			case n.Y != 0:
				assert.Equal(t, plane.Y, p.Y, "%s", d)
			default:
				assert.Equal(t, plane.Z, p.Z, "%s", d)
			}
			box := vec.BoxFromSize(anchor, vec.Splat(2))
			assert.True(t, box.Contains(p), "Угол %v лежит на вокселе %s", p, d)
		}

		// Обход против часовой стрелки снаружи
		winding := cross(c[1].Sub(c[0]), c[2].Sub(c[0]))
		assert.Equal(t, n, winding, "Обход для %s", d)
	}
}
