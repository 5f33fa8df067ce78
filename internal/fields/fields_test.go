package fields_test

import (
	"testing"

	"github.com/forgeware/bpdecode/internal/fields"
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
	"github.com/forgeware/bpdecode/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemIndex(t *testing.T, id uint16, name string) *prototype.Index {
	t.Helper()
	idx := prototype.NewIndex()
	require.NoError(t, idx.Add(0, prototype.KindItem, uint32(id), "item", name))
	return idx
}

func TestReadSignalAbsent(t *testing.T) {
	idx := prototype.NewIndex()
	r := stream.New(testutil.NewBuilder().U8(0).U16(0).Bytes())
	sig, err := fields.ReadSignal(r, idx)
	require.NoError(t, err)
	assert.Nil(t, sig)
}

func TestReadSignalItem(t *testing.T) {
	idx := itemIndex(t, 5, "iron-plate")
	r := stream.New(testutil.NewBuilder().U8(0).U16(5).Bytes())
	sig, err := fields.ReadSignal(r, idx)
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, "item", sig.Type)
	assert.Equal(t, "iron-plate", sig.Name)
}

func TestReadConditionSuppressesDefault(t *testing.T) {
	idx := prototype.NewIndex()
	b := testutil.NewBuilder().
		U8(1). // "<"
		U8(0).U16(0). // first signal absent
		U8(0).U16(0). // second signal absent
		S32(0).       // constant
		Bool(true)    // use_constant
	cond, err := fields.ReadCondition(stream.New(b.Bytes()), idx)
	require.NoError(t, err)
	assert.Nil(t, cond)
}

func TestReadConditionNonDefaultSurvives(t *testing.T) {
	idx := prototype.NewIndex()
	b := testutil.NewBuilder().
		U8(0). // ">"
		U8(0).U16(0).
		U8(0).U16(0).
		S32(42).
		Bool(true)
	cond, err := fields.ReadCondition(stream.New(b.Bytes()), idx)
	require.NoError(t, err)
	require.NotNil(t, cond)
	assert.Equal(t, ">", cond.Comparator)
	assert.Equal(t, int32(42), cond.Constant)
}

func TestReadPropertyTreeDictionary(t *testing.T) {
	b := testutil.NewBuilder().
		U8(5).Bool(false). // dictionary, any_type flag discarded
		U32(1).            // one entry
		Str("key").
		U8(2).Bool(false).F64(3.5) // number leaf
	tree, err := fields.ReadPropertyTree(stream.New(b.Bytes()))
	require.NoError(t, err)
	require.Equal(t, fields.PTDictionary, tree.Type)
	require.Contains(t, tree.Dict, "key")
	assert.Equal(t, 3.5, tree.Dict["key"].Number)
}

func TestReadPropertyTreeEmptyString(t *testing.T) {
	b := testutil.NewBuilder().U8(3).Bool(false).Bool(true) // string type, is_empty=true
	tree, err := fields.ReadPropertyTree(stream.New(b.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, fields.PTString, tree.Type)
	assert.Equal(t, "", tree.Str)
}

func TestReadCircuitConnectionsTrailer(t *testing.T) {
	b := testutil.NewBuilder().
		U8(1).U32(9001).U8(1).U8(0xFF). // one red peer
		U8(0).                          // no green peers
		Raw(make([]byte, 9)...)         // fixed trailer
	conn, err := fields.ReadCircuitConnections(stream.New(b.Bytes()))
	require.NoError(t, err)
	require.Len(t, conn.Red, 1)
	assert.Equal(t, uint32(9001), conn.Red[0].RawEntityID)
	assert.Empty(t, conn.Green)
}

func TestReadFilterListSuppressesAbsent(t *testing.T) {
	idx := itemIndex(t, 3, "copper-plate")
	b := testutil.NewBuilder().
		U32(2).
		U32(1).U16(3). // present
		U32(2).U16(0)  // absent, suppressed
	filters, err := fields.ReadFilterList(stream.New(b.Bytes()), idx)
	require.NoError(t, err)
	require.Len(t, filters, 1)
	assert.Equal(t, 1, filters[0].Index)
	assert.Equal(t, "copper-plate", filters[0].Name)
}

func TestReadItemsGroupsByName(t *testing.T) {
	idx := itemIndex(t, 8, "productivity-module")
	b := testutil.NewBuilder().
		U32(2).
		U16(8).U32(1).
		U16(8).U32(2)
	items, err := fields.ReadItems(stream.New(b.Bytes()), idx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Count)
}
