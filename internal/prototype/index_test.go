package prototype_test

import (
	"testing"

	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
	"github.com/forgeware/bpdecode/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTileAndItemAsymmetry(t *testing.T) {
	b := testutil.NewBuilder().
		U16(2). // class count
		// "tile" class: 1-byte count, 1-byte ids
		Str("tile").
		U8(1).
		U8(7).
		Str("concrete").
		// "item" class: literal 0x00, 2-byte count, 2-byte ids
		Str("item").
		U8(0x00).
		U16(1).
		U16(42).
		Str("iron-plate")

	r := stream.New(b.Bytes())
	idx, err := prototype.Build(r)
	require.NoError(t, err)

	e, ok := idx.Lookup(prototype.KindTile, 7)
	require.True(t, ok)
	assert.Equal(t, "concrete", e.Name)

	e, ok = idx.Lookup(prototype.KindItem, 42)
	require.True(t, ok)
	assert.Equal(t, "iron-plate", e.Name)
}

func TestIdZeroIsReserved(t *testing.T) {
	idx := prototype.NewIndex()
	err := idx.Add(0, prototype.KindItem, 0, "item", "nothing")
	require.Error(t, err)
}

func TestDuplicateIdWithinKindFails(t *testing.T) {
	idx := prototype.NewIndex()
	require.NoError(t, idx.Add(0, prototype.KindEntity, 5, "wall", "stone-wall"))
	err := idx.Add(10, prototype.KindEntity, 5, "gate", "stone-gate")
	require.Error(t, err)
}

func TestUnknownClassFails(t *testing.T) {
	b := testutil.NewBuilder().
		U16(1).
		Str("not-a-real-class").
		U8(0x00).
		U16(0)
	_, err := prototype.Build(stream.New(b.Bytes()))
	require.Error(t, err)
}

func TestFlyingTextClassifiesAsEntity(t *testing.T) {
	kind, ok := prototype.ClassifyClass("flying-text")
	require.True(t, ok)
	assert.Equal(t, prototype.KindEntity, kind)
}
