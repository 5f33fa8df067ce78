package stream_test

import (
	"testing"

	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/stream"
	"github.com/forgeware/bpdecode/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarReaders(t *testing.T) {
	data := testutil.NewBuilder().
		U8(0xAB).
		U16(0x1234).
		S16(-5).
		U32(0xDEADBEEF).
		S32(-100).
		F64(1.5).
		Bytes()
	r := stream.New(data)

	u8, err := r.U8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), u8)

	u16, err := r.U16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	s16, err := r.S16()
	require.NoError(t, err)
	assert.Equal(t, int16(-5), s16)

	u32, err := r.U32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	s32, err := r.S32()
	require.NoError(t, err)
	assert.Equal(t, int32(-100), s32)

	f64, err := r.F64()
	require.NoError(t, err)
	assert.Equal(t, 1.5, f64)
}

func TestBoolStrict(t *testing.T) {
	r := stream.New([]byte{0x00, 0x01, 0x02})

	v, err := r.Bool()
	require.NoError(t, err)
	assert.False(t, v)

	v, err = r.Bool()
	require.NoError(t, err)
	assert.True(t, v)

	_, err = r.Bool()
	require.Error(t, err)
	pe, ok := diagnostics.AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, int64(2), pe.Offset)
}

func TestStringShortAndLong(t *testing.T) {
	data := testutil.NewBuilder().Str("abc").Bytes()
	r := stream.New(data)
	s, err := r.String()
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	long := string(make([]byte, 300))
	data = testutil.NewBuilder().Str(long).Bytes()
	r = stream.New(data)
	s, err = r.String()
	require.NoError(t, err)
	assert.Len(t, s, 300)
}

func TestStringLengthBoundary(t *testing.T) {
	// 0xFE is a plain 1-byte length; 0xFF escalates to a 4-byte length.
	payload := make([]byte, 0xFE)
	data := append([]byte{0xFE}, payload...)
	r := stream.New(data)
	s, err := r.String()
	require.NoError(t, err)
	assert.Len(t, s, 0xFE)
}

func TestExpectAndOneOf(t *testing.T) {
	r := stream.New([]byte{0x20, 0x01, 0x05})
	require.NoError(t, r.Expect(0x20))
	require.NoError(t, r.Expect(0x01))
	v, err := r.ExpectOneOf(0x04, 0x05, 0x06)
	require.NoError(t, err)
	assert.Equal(t, byte(0x05), v)

	r = stream.New([]byte{0x99})
	err = r.Expect(0x20)
	require.Error(t, err)
}

func TestMappedU8UnknownCodeFails(t *testing.T) {
	table := map[uint8]string{0x00: "left", 0x10: "right"}
	r := stream.New([]byte{0x77})
	_, err := stream.MappedU8(r, table, "test code")
	require.Error(t, err)
}

func TestSeekTellAndIgnore(t *testing.T) {
	r := stream.New([]byte{1, 2, 3, 4, 5})
	assert.Equal(t, int64(0), r.Tell())
	require.NoError(t, r.Ignore(2, "skip"))
	assert.Equal(t, int64(2), r.Tell())
	require.NoError(t, r.Seek(4))
	v, err := r.U8()
	require.NoError(t, err)
	assert.Equal(t, uint8(5), v)
}
