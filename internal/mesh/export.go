package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Формат дампа геометрии:
//
//	magic "VXMG" | version u8 | flags u8 | reserved u16 | faces u32 | тело
//
// Тело - position, затем normal, float32 little-endian; при flagZstd сжато zstd.
const (
	dumpVersion = 1
	flagZstd    = 1 << 0

	// Тело читается порциями: счётчик граней из заголовка не должен определять размер выделения
	readBatchFloats = 16 * 1024
)

var dumpMagic = [4]byte{'V', 'X', 'M', 'G'}

// ErrBadDump возвращается при повреждённом или чужом дампе
var ErrBadDump = errors.New("некорректный дамп геометрии")

type dumpHeader struct {
	Magic    [4]byte
	Version  uint8
	Flags    uint8
	Reserved uint16
	Faces    uint32
}

// WriteGeometry записывает геометрию в w, при compress - со сжатием zstd
func WriteGeometry(w io.Writer, g Geometry, compress bool) error {
	if len(g.Position) != len(g.Normal) || len(g.Position)%FloatsPerFace != 0 {
		return fmt.Errorf("%w: position=%d normal=%d", ErrBadDump, len(g.Position), len(g.Normal))
	}

	h := dumpHeader{
		Magic:   dumpMagic,
		Version: dumpVersion,
		Faces:   uint32(g.FaceCount()),
	}
	if compress {
		h.Flags |= flagZstd
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("ошибка записи заголовка: %w", err)
	}

	if !compress {
		return writeBody(w, g)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("ошибка создания компрессора: %w", err)
	}
	if err := writeBody(enc, g); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func writeBody(w io.Writer, g Geometry) error {
	if err := binary.Write(w, binary.LittleEndian, g.Position); err != nil {
		return fmt.Errorf("ошибка записи позиций: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, g.Normal); err != nil {
		return fmt.Errorf("ошибка записи нормалей: %w", err)
	}
	return nil
}

// ReadGeometry читает геометрию, записанную WriteGeometry
func ReadGeometry(r io.Reader) (Geometry, error) {
	var h dumpHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Geometry{}, fmt.Errorf("ошибка чтения заголовка: %w", err)
	}
	if h.Magic != dumpMagic || h.Version != dumpVersion {
		return Geometry{}, fmt.Errorf("%w: magic=%q version=%d", ErrBadDump, h.Magic[:], h.Version)
	}

	body := r
	if h.Flags&flagZstd != 0 {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return Geometry{}, fmt.Errorf("ошибка создания декомпрессора: %w", err)
		}
		defer dec.Close()
		body = dec
	}

	n := int(h.Faces) * FloatsPerFace
	position, err := readFloats(body, n)
	if err != nil {
		return Geometry{}, fmt.Errorf("ошибка чтения позиций: %w", err)
	}
	normal, err := readFloats(body, n)
	if err != nil {
		return Geometry{}, fmt.Errorf("ошибка чтения нормалей: %w", err)
	}
	return Geometry{Position: position, Normal: normal}, nil
}

// readFloats читает n значений float32; обрезанное тело завершается ошибкой EOF до выделения всего массива
func readFloats(r io.Reader, n int) ([]float32, error) {
	batch := make([]float32, min(n, readBatchFloats))
	out := make([]float32, 0, len(batch))

	for len(out) < n {
		part := batch[:min(n-len(out), len(batch))]
		if err := binary.Read(r, binary.LittleEndian, part); err != nil {
			return nil, err
		}
		out = append(out, part...)
	}
	return out, nil
}
