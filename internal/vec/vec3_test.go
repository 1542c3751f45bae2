package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorCeilDiv(t *testing.T) {
	cases := []struct {
		a, b        int
		floor, ceil int
		mod         int
	}{
		{0, 16, 0, 0, 0},
		{15, 16, 0, 1, 15},
		{16, 16, 1, 1, 0},
		{-1, 16, -1, 0, 15},
		{-16, 16, -1, -1, 0},
		{-17, 16, -2, -1, 15},
	}

	for _, c := range cases {
		assert.Equal(t, c.floor, FloorDiv(c.a, c.b), "FloorDiv(%d,%d)", c.a, c.b)
		assert.Equal(t, c.ceil, CeilDiv(c.a, c.b), "CeilDiv(%d,%d)", c.a, c.b)
		assert.Equal(t, c.mod, Mod(c.a, c.b), "Mod(%d,%d)", c.a, c.b)
	}
}

func TestBox3_ExpandAndUnion(t *testing.T) {
	b := EmptyBox()
	assert.True(t, b.IsEmpty(), "Новый бокс должен быть пустым")

	b = b.ExpandByPoint(NewVec3(-2, 0, 3))
	assert.Equal(t, NewBox3(NewVec3(-2, 0, 3), NewVec3(-1, 1, 4)), b)
	assert.True(t, b.Contains(NewVec3(-2, 0, 3)))
	assert.False(t, b.Contains(NewVec3(-1, 0, 3)), "Max не входит в бокс")

	b = b.ExpandByPoint(NewVec3(1, 5, 3))
	assert.Equal(t, NewVec3(3, 6, 1), b.Size())

	// Объединение с пустым боксом ничего не меняет
	assert.Equal(t, b, b.Union(EmptyBox()))
	assert.Equal(t, b, EmptyBox().Union(b))

	other := BoxFromSize(NewVec3(10, 10, 10), Splat(2))
	u := b.Union(other)
	assert.Equal(t, NewVec3(-2, 0, 3), u.Min)
	assert.Equal(t, NewVec3(12, 12, 12), u.Max)
}

func TestBox3_Translate(t *testing.T) {
	b := BoxFromSize(NewVec3(0, 0, 0), NewVec3(2, 3, 4)).Translate(NewVec3(-16, 16, 0))
	assert.Equal(t, NewVec3(-16, 16, 0), b.Min)
	assert.Equal(t, NewVec3(-14, 19, 4), b.Max)

	assert.True(t, EmptyBox().Translate(Splat(5)).IsEmpty(), "Пустой бокс остаётся пустым")
}
