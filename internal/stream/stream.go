// Package stream implements the primitive byte-level reader every other
// decoder in this module is built on: typed little-endian scalars, the
// wire format's length-prefixed strings and variable-length counts, and
// the expect/oneof assertions that double as the format's version-integrity
// checks.
package stream

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/forgeware/bpdecode/internal/diagnostics"
)

// Reader is a seekable little-endian byte source over an in-memory buffer.
// The library file is small enough (a personal blueprint collection, not a
// save file) that loading it whole and indexing with bytes.Reader is
// simpler and faster than streaming from disk, and it is what lets the
// blueprint "removed-mods" sidecar seek forward/back cheaply.
type Reader struct {
	buf *bytes.Reader
	all []byte
}

// New wraps a full file image for reading.
func New(data []byte) *Reader {
	return &Reader{buf: bytes.NewReader(data), all: data}
}

// Tell returns the current byte offset.
func (r *Reader) Tell() int64 {
	pos, _ := r.buf.Seek(0, io.SeekCurrent)
	return pos
}

// Seek moves the read position to an absolute offset.
func (r *Reader) Seek(offset int64) error {
	_, err := r.buf.Seek(offset, io.SeekStart)
	if err != nil {
		return diagnostics.New(r.Tell(), "seek to %d: %v", offset, err)
	}
	return nil
}

// Len returns the total length of the wrapped buffer.
func (r *Reader) Len() int64 {
	return int64(len(r.all))
}

func (r *Reader) fail(format string, args ...interface{}) error {
	return diagnostics.New(r.Tell(), format, args...)
}

func (r *Reader) readN(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r.buf, buf)
	if err != nil {
		return nil, diagnostics.New(r.Tell()-int64(read), "short read: wanted %d bytes, got %d (%v)", n, read, err)
	}
	return buf, nil
}

// U8 reads an unsigned byte.
func (r *Reader) U8() (uint8, error) {
	b, err := r.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// S8 reads a signed byte.
func (r *Reader) S8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

// U16 reads a little-endian unsigned 16-bit value.
func (r *Reader) U16() (uint16, error) {
	b, err := r.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// S16 reads a little-endian signed 16-bit value.
func (r *Reader) S16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// U32 reads a little-endian unsigned 32-bit value.
func (r *Reader) U32() (uint32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// S32 reads a little-endian signed 32-bit value.
func (r *Reader) S32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// F32 reads a little-endian IEEE-754 single-precision float.
func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// F64 reads a little-endian IEEE-754 double-precision float.
func (r *Reader) F64() (float64, error) {
	b, err := r.readN(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// Bool reads a strict boolean: 0x00 or 0x01, any other byte is a ParseError.
func (r *Reader) Bool() (bool, error) {
	start := r.Tell()
	v, err := r.U8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, diagnostics.New(start, "invalid boolean byte 0x%02X", v)
	}
}

// String reads a length-prefixed UTF-8 string: a 1-byte length, or if that
// byte is 0xFF, a following 4-byte length.
func (r *Reader) String() (string, error) {
	n, err := r.U8()
	if err != nil {
		return "", err
	}
	length := uint32(n)
	if n == 0xFF {
		length, err = r.U32()
		if err != nil {
			return "", err
		}
	}
	if length == 0 {
		return "", nil
	}
	b, err := r.readN(int(length))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Count8 reads a fixed 1-byte count.
func (r *Reader) Count8() (int, error) {
	v, err := r.U8()
	return int(v), err
}

// Count16 reads a fixed 2-byte count.
func (r *Reader) Count16() (int, error) {
	v, err := r.U16()
	return int(v), err
}

// Count32 reads a fixed 4-byte count.
func (r *Reader) Count32() (int, error) {
	v, err := r.U32()
	return int(v), err
}

// MappedU8 reads a byte and maps it through the caller-supplied table,
// failing if the byte is not a key in the table. Used for fixed enumerated
// byte codes (arithmetic operators, comparators, wait-condition types, ...).
func MappedU8[T any](r *Reader, table map[uint8]T, what string) (T, error) {
	var zero T
	start := r.Tell()
	v, err := r.U8()
	if err != nil {
		return zero, err
	}
	mapped, ok := table[v]
	if !ok {
		return zero, diagnostics.New(start, "unrecognized %s code 0x%02X", what, v)
	}
	return mapped, nil
}

// Expect reads len(literal) bytes and fails unless they match exactly.
func (r *Reader) Expect(literal ...byte) error {
	start := r.Tell()
	got, err := r.readN(len(literal))
	if err != nil {
		return err
	}
	if !bytes.Equal(got, literal) {
		return diagnostics.New(start, "expected literal % X, got % X", literal, got)
	}
	return nil
}

// ExpectOneOf reads one byte and fails unless it is one of the allowed
// values, returning the matched value.
func (r *Reader) ExpectOneOf(allowed ...byte) (byte, error) {
	start := r.Tell()
	v, err := r.U8()
	if err != nil {
		return 0, err
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return 0, diagnostics.New(start, "expected one of % X, got 0x%02X", allowed, v)
}

// Ignore consumes n bytes without interpreting them. label is attached to
// any short-read error for debugging; it carries no other meaning.
func (r *Reader) Ignore(n int, label string) error {
	if n == 0 {
		return nil
	}
	_, err := r.readN(n)
	if err != nil {
		return diagnostics.New(r.Tell()-int64(n), "ignoring %q: %v", label, err)
	}
	return nil
}
