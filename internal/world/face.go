package world

import "github.com/annel0/voxelcore/internal/vec"

// Direction - одно из шести направлений нормали грани
type Direction uint8

const (
	PosX Direction = iota // +X
	NegX                  // -X
	PosY                  // +Y
	NegY                  // -Y
	PosZ                  // +Z
	NegZ                  // -Z
)

// DirectionCount - количество направлений
const DirectionCount = 6

// Directions перечисляет направления в порядке обхода граней
var Directions = [DirectionCount]Direction{PosX, NegX, PosY, NegY, PosZ, NegZ}

// Для каждого направления tangent × bitangent = normal,
// поэтому обход углов normal-origin, +t, +t+b, +b идёт против часовой стрелки снаружи.
var directionBasis = [DirectionCount]struct {
	normal, tangent, bitangent vec.Vec3
}{
	PosX: {vec.NewVec3(1, 0, 0), vec.NewVec3(0, 1, 0), vec.NewVec3(0, 0, 1)},
	NegX: {vec.NewVec3(-1, 0, 0), vec.NewVec3(0, 0, 1), vec.NewVec3(0, 1, 0)},
	PosY: {vec.NewVec3(0, 1, 0), vec.NewVec3(0, 0, 1), vec.NewVec3(1, 0, 0)},
	NegY: {vec.NewVec3(0, -1, 0), vec.NewVec3(1, 0, 0), vec.NewVec3(0, 0, 1)},
	PosZ: {vec.NewVec3(0, 0, 1), vec.NewVec3(1, 0, 0), vec.NewVec3(0, 1, 0)},
	NegZ: {vec.NewVec3(0, 0, -1), vec.NewVec3(0, 1, 0), vec.NewVec3(1, 0, 0)},
}

// Normal возвращает единичную нормаль направления
func (d Direction) Normal() vec.Vec3 { return directionBasis[d].normal }

// Tangent возвращает касательную грани
func (d Direction) Tangent() vec.Vec3 { return directionBasis[d].tangent }

// Bitangent возвращает бикасательную грани
func (d Direction) Bitangent() vec.Vec3 { return directionBasis[d].bitangent }

// Opposite возвращает противоположное направление
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// String возвращает строковое представление направления
func (d Direction) String() string {
	switch d {
	case PosX:
		return "+X"
	case NegX:
		return "-X"
	case PosY:
		return "+Y"
	case NegY:
		return "-Y"
	case PosZ:
		return "+Z"
	case NegZ:
		return "-Z"
	default:
		return "UNKNOWN"
	}
}

// Face описывает одну видимую грань вокселя.
//
// Итераторы граней переиспользуют один и тот же *Face: значение становится
// недействительным на следующем шаге итерации. Для сохранения используйте Copy.
type Face struct {
	Anchor    vec.Vec3 // мировые координаты вокселя, которому принадлежит грань
	Direction Direction
	Tangent   vec.Vec3
}

// Copy возвращает копию грани, которую можно хранить после итерации
func (f *Face) Copy() Face {
	return *f
}

// Normal возвращает нормаль грани
func (f *Face) Normal() vec.Vec3 { return f.Direction.Normal() }

// Bitangent возвращает бикасательную грани
func (f *Face) Bitangent() vec.Vec3 { return f.Direction.Bitangent() }

// Corners возвращает четыре угла квада против часовой стрелки (если смотреть снаружи)
func (f *Face) Corners() [4]vec.Vec3 {
	n := f.Direction.Normal()
	b := f.Direction.Bitangent()

	// Грань с положительной нормалью лежит на дальней стороне вокселя
	origin := f.Anchor.Add(n.Max(vec.Vec3{}))

	return [4]vec.Vec3{
		origin,
		origin.Add(f.Tangent),
		origin.Add(f.Tangent).Add(b),
		origin.Add(b),
	}
}
