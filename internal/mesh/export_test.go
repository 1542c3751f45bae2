package mesh

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelcore/internal/world"
)

func TestGeometryDump(t *testing.T) {
	g := BuildNaive(twoVoxelChunk().VoxelFaces(world.FaceOptions{}))

	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, WriteGeometry(&buf, g, compress))

		got, err := ReadGeometry(&buf)
		require.NoError(t, err, "compress=%v", compress)
		assert.Equal(t, g.Position, got.Position)
		assert.Equal(t, g.Normal, got.Normal)
	}
}

func TestGeometryDump_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeometry(&buf, Geometry{}, false))
	assert.Equal(t, 12, buf.Len(), "Пустая геометрия - только заголовок")

	got, err := ReadGeometry(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FaceCount())
}

func TestGeometryDump_Invalid(t *testing.T) {
	err := WriteGeometry(&bytes.Buffer{}, Geometry{Position: make([]float32, 3)}, false)
	assert.True(t, errors.Is(err, ErrBadDump))

	_, err = ReadGeometry(bytes.NewReader([]byte("NOPE\x01\x00\x00\x00\x00\x00\x00\x00")))
	assert.True(t, errors.Is(err, ErrBadDump))

	_, err = ReadGeometry(bytes.NewReader([]byte("VX")))
	assert.Error(t, err)
}

func TestGeometryDump_Truncated(t *testing.T) {
	// Заголовок обещает 0xFFFFFFFF граней, тела нет
	_, err := ReadGeometry(bytes.NewReader([]byte("VXMG\x01\x00\x00\x00\xff\xff\xff\xff")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.EOF), "Ожидалась ошибка EOF, получено %v", err)

	g := BuildNaive(twoVoxelChunk().VoxelFaces(world.FaceOptions{}))
	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, WriteGeometry(&buf, g, compress))

		cut := buf.Bytes()[:buf.Len()-7]
		_, err := ReadGeometry(bytes.NewReader(cut))
		assert.Error(t, err, "compress=%v", compress)
	}

	// Сжатое тело с большим счётчиком граней тоже заканчивается ошибкой, а не выделением памяти
	var buf bytes.Buffer
	require.NoError(t, WriteGeometry(&buf, g, true))
	raw := buf.Bytes()
	raw[8], raw[9], raw[10], raw[11] = 0xff, 0xff, 0xff, 0xff
	_, err = ReadGeometry(bytes.NewReader(raw))
	assert.Error(t, err)
}
