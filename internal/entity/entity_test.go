package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeware/bpdecode/internal/entity"
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
	"github.com/forgeware/bpdecode/internal/testutil"
	"github.com/forgeware/bpdecode/internal/version"
)

func newIndex() *prototype.Index {
	idx := prototype.NewIndex()
	_ = idx.Add(0, prototype.KindEntity, 1, "accumulator", "accumulator")
	_ = idx.Add(0, prototype.KindVirtualSignal, 5, "virtual-signal", "signal-A")
	return idx
}

func accumulatorBytes() []byte {
	return testutil.NewBuilder().
		U16(1).      // prototype id
		S16(0x0140). // delta x = 320/256 = 1.25
		S16(0x0000). // delta y = 0
		U8(0x20).
		U8(0x10). // id flags, bit 0x10 set
		U8(0x01).
		U32(42). // raw entity id
		// accumulator body: one signal (virtual, id 5)
		U8(2).
		U16(5).
		// trailer: item count = 0, has_tags = false
		U32(0).
		Bool(false).
		Bytes()
}

func TestReadEntityAccumulator(t *testing.T) {
	idx := newIndex()
	ctx := &entity.Context{R: stream.New(accumulatorBytes()), Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}

	rec, class, pos, err := entity.ReadEntity(ctx, entity.Position{})
	require.NoError(t, err)
	assert.Equal(t, "accumulator", class)
	assert.Equal(t, "accumulator", rec["name"])
	assert.InDelta(t, 1.25, pos.X, 0.0001)
	assert.InDelta(t, 0.0, pos.Y, 0.0001)

	sig, ok := rec["output_signal"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "virtual", sig["type"])
	assert.Equal(t, "signal-A", sig["name"])

	assert.Equal(t, uint32(42), rec[entity.RawEntityIDKey])
	assert.NotContains(t, rec, "items")
	assert.NotContains(t, rec, "tags")
}

func TestReadEntityMissingIDFlagBitFails(t *testing.T) {
	idx := newIndex()
	b := testutil.NewBuilder().
		U16(1).
		S16(0).
		S16(0).
		U8(0x20).
		U8(0x00). // missing required 0x10 bit
		Bytes()

	ctx := &entity.Context{R: stream.New(b), Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}
	_, _, _, err := entity.ReadEntity(ctx, entity.Position{})
	assert.Error(t, err)
}

func TestReadEntityUnresolvedPrototypeFails(t *testing.T) {
	idx := prototype.NewIndex()
	b := testutil.NewBuilder().U16(99).Bytes()
	ctx := &entity.Context{R: stream.New(b), Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}
	_, _, _, err := entity.ReadEntity(ctx, entity.Position{})
	assert.Error(t, err)
}

func TestReadEntityAbsolutePositionMarker(t *testing.T) {
	idx := newIndex()
	b := testutil.NewBuilder().
		U16(1).
		S16(int16(0x7FFF)).
		S32(256). // x = 1.0
		S32(512). // y = 2.0
		U8(0x20).
		U8(0x10).
		U8(0x01).
		U32(7).
		U8(0). // signal kind byte 0 (item)... but id 0 means absent
		U16(0).
		U32(0).
		Bool(false).
		Bytes()

	ctx := &entity.Context{R: stream.New(b), Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}
	_, _, pos, err := entity.ReadEntity(ctx, entity.Position{X: 9, Y: 9})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, pos.X, 0.0001)
	assert.InDelta(t, 2.0, pos.Y, 0.0001)
}

func envelopeHeader(protoID uint16, rawID uint32) *testutil.Builder {
	return testutil.NewBuilder().
		U16(protoID).
		S16(0).
		S16(0).
		U8(0x20).
		U8(0x10).
		U8(0x01).
		U32(rawID)
}

func TestReadEntityPipeIsDirectionOnly(t *testing.T) {
	idx := prototype.NewIndex()
	_ = idx.Add(0, prototype.KindEntity, 2, "pipe", "pipe")

	b := envelopeHeader(2, 1).
		U8(3). // direction = south-east
		U32(0).
		Bool(false).
		Bytes()

	ctx := &entity.Context{R: stream.New(b), Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}
	rec, class, _, err := entity.ReadEntity(ctx, entity.Position{})
	require.NoError(t, err)
	assert.Equal(t, "pipe", class)
	assert.Equal(t, 3, rec["direction"])
}

func TestReadEntitySplitterPriorityCode0x3F(t *testing.T) {
	idx := prototype.NewIndex()
	_ = idx.Add(0, prototype.KindEntity, 3, "splitter", "splitter")

	b := envelopeHeader(3, 1).
		U8(4).    // direction
		U8(0x3F). // priority code: input=left, output=left
		U16(0).   // no filter
		U32(0).
		Bool(false).
		Bytes()

	ctx := &entity.Context{R: stream.New(b), Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}
	rec, class, _, err := entity.ReadEntity(ctx, entity.Position{})
	require.NoError(t, err)
	assert.Equal(t, "splitter", class)
	assert.Equal(t, 4, rec["direction"])
	assert.Equal(t, "left", rec["input_priority"])
	assert.Equal(t, "left", rec["output_priority"])
	assert.NotContains(t, rec, "filter")
}

func TestReadEntitySplitterRejectsUnknownPriorityCode(t *testing.T) {
	idx := prototype.NewIndex()
	_ = idx.Add(0, prototype.KindEntity, 3, "splitter", "splitter")

	b := envelopeHeader(3, 1).
		U8(0).
		U8(0x99). // not in the 9-entry table
		U16(0).
		Bytes()

	ctx := &entity.Context{R: stream.New(b), Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}
	_, _, _, err := entity.ReadEntity(ctx, entity.Position{})
	assert.Error(t, err)
}

func turretBytes(protoID uint16, direction uint8, orientation float32) []byte {
	return envelopeHeader(protoID, 1).
		U8(direction).
		F32(orientation).
		// circuit connections: no red/green peers, 9 zero trailer bytes
		U8(0).U8(0).
		Raw(0, 0, 0, 0, 0, 0, 0, 0, 0).
		// condition with logistic: comparator "<" (1), no signals, constant 0,
		// use_constant false -> suppressed default condition; connect false
		U8(1).
		U8(0).U16(0).
		U8(0).U16(0).
		S32(0).
		Bool(false).
		Bool(false).
		// trailer: no items, no tags
		U32(0).
		Bool(false).
		Bytes()
}

func TestReadEntityTurretOrientationFixup(t *testing.T) {
	idx := prototype.NewIndex()
	_ = idx.Add(0, prototype.KindEntity, 4, "ammo-turret", "gun-turret")

	b := turretBytes(4, 8, 0.25) // direction==8 sentinel, orientation 0.25 -> floor(8*0.25)=2
	ctx := &entity.Context{R: stream.New(b), Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}
	rec, class, _, err := entity.ReadEntity(ctx, entity.Position{})
	require.NoError(t, err)
	assert.Equal(t, "ammo-turret", class)
	assert.Equal(t, 2, rec["direction"])
	assert.NotContains(t, rec, "orientation")
}

func TestReadEntityTurretOrientationZeroDropsDirection(t *testing.T) {
	idx := prototype.NewIndex()
	_ = idx.Add(0, prototype.KindEntity, 4, "ammo-turret", "gun-turret")

	b := turretBytes(4, 8, 0.0) // floor(8*0.0)=0 -> direction omitted entirely
	ctx := &entity.Context{R: stream.New(b), Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}
	rec, _, _, err := entity.ReadEntity(ctx, entity.Position{})
	require.NoError(t, err)
	assert.NotContains(t, rec, "direction")
}
