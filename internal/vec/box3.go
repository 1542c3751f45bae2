package vec

import (
	"fmt"
	"math"
)

// Box3 - выровненный по осям целочисленный бокс.
// Min включается, Max исключается: воксель p лежит в боксе, если Min <= p < Max.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// EmptyBox возвращает пустой бокс, нейтральный для Union и ExpandByPoint
func EmptyBox() Box3 {
	return Box3{
		Min: Splat(math.MaxInt),
		Max: Splat(math.MinInt),
	}
}

// NewBox3 создаёт бокс по двум углам
func NewBox3(min, max Vec3) Box3 {
	return Box3{Min: min, Max: max}
}

// BoxFromSize создаёт бокс по углу и размеру
func BoxFromSize(origin, size Vec3) Box3 {
	return Box3{Min: origin, Max: origin.Add(size)}
}

// IsEmpty возвращает true, если бокс не содержит ни одного вокселя
func (b Box3) IsEmpty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y || b.Max.Z <= b.Min.Z
}

// Size возвращает размеры бокса (нулевой вектор для пустого)
func (b Box3) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Contains проверяет, лежит ли воксель внутри бокса
func (b Box3) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X < b.Max.X &&
		p.Y >= b.Min.Y && p.Y < b.Max.Y &&
		p.Z >= b.Min.Z && p.Z < b.Max.Z
}

// ExpandByPoint расширяет бокс так, чтобы он покрывал воксель p
func (b Box3) ExpandByPoint(p Vec3) Box3 {
	return Box3{
		Min: b.Min.Min(p),
		Max: b.Max.Max(p.Add(Splat(1))),
	}
}

// Union объединяет два бокса. Пустые боксы не влияют на результат.
func (b Box3) Union(other Box3) Box3 {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return Box3{
		Min: b.Min.Min(other.Min),
		Max: b.Max.Max(other.Max),
	}
}

// Translate сдвигает бокс на offset. Пустой бокс остаётся пустым.
func (b Box3) Translate(offset Vec3) Box3 {
	if b.IsEmpty() {
		return b
	}
	return Box3{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// String для удобного вывода в логах
func (b Box3) String() string {
	if b.IsEmpty() {
		return "Box3(empty)"
	}
	return fmt.Sprintf("Box3[(%d,%d,%d)-(%d,%d,%d))",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}
