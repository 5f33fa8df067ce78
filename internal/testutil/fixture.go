// Package testutil provides small helpers for building synthetic library
// file fixtures in tests: hand-rolled, in-memory, no real file I/O.
package testutil

import (
	"encoding/binary"
	"math"
)

// Builder accumulates little-endian bytes for a synthetic fixture file.
type Builder struct {
	buf []byte
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Bytes returns the accumulated buffer.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// U8 appends a single byte.
func (b *Builder) U8(v uint8) *Builder {
	b.buf = append(b.buf, v)
	return b
}

// U16 appends a little-endian uint16.
func (b *Builder) U16(v uint16) *Builder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

// S16 appends a little-endian int16.
func (b *Builder) S16(v int16) *Builder {
	return b.U16(uint16(v))
}

// U32 appends a little-endian uint32.
func (b *Builder) U32(v uint32) *Builder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

// S32 appends a little-endian int32.
func (b *Builder) S32(v int32) *Builder {
	return b.U32(uint32(v))
}

// F64 appends a little-endian float64.
func (b *Builder) F64(v float64) *Builder {
	return b.U64(math.Float64bits(v))
}

// F32 appends a little-endian float32.
func (b *Builder) F32(v float32) *Builder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(v))
	b.buf = append(b.buf, tmp[:]...)
	return b
}

// U64 appends a little-endian uint64.
func (b *Builder) U64(v uint64) *Builder {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

// Bool appends a strict boolean byte.
func (b *Builder) Bool(v bool) *Builder {
	if v {
		return b.U8(0x01)
	}
	return b.U8(0x00)
}

// Str appends a 1-byte-length-prefixed string (escalating to 4 bytes for
// lengths of 0xFF or more, matching the wire format).
func (b *Builder) Str(s string) *Builder {
	if len(s) >= 0xFF {
		b.U8(0xFF)
		b.U32(uint32(len(s)))
	} else {
		b.U8(uint8(len(s)))
	}
	b.buf = append(b.buf, s...)
	return b
}

// Raw appends literal bytes verbatim.
func (b *Builder) Raw(bs ...byte) *Builder {
	b.buf = append(b.buf, bs...)
	return b
}
