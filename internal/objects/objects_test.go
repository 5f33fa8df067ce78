package objects_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeware/bpdecode/internal/objects"
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
	"github.com/forgeware/bpdecode/internal/testutil"
	"github.com/forgeware/bpdecode/internal/version"
)

func newIndexWithBlueprintItem() *prototype.Index {
	idx := prototype.NewIndex()
	_ = idx.Add(0, prototype.KindItem, 1, "blueprint", "blueprint")
	return idx
}

// emptyBlueprintBytes builds a blueprint body with no entities, schedules,
// tiles, or icons, matching readBlueprintContent's field order.
func emptyBlueprintBytes(label string) []byte {
	content := testutil.NewBuilder().
		U16(1).U16(0).U16(0).U16(0). // version 1.0.0.0
		U8(0x00).                    // trailing zero
		U8(0).                       // migrations count
		Str("").                     // description
		Bool(false).                 // no snap-to-grid
		U32(0).                      // entity count
		U32(0).                      // schedule count
		U32(0).                      // tile count
		U8(0).                       // icon placeholder count
		U8(0).                       // icon count
		Bytes()

	return testutil.NewBuilder().
		Str(label).
		U8(0x00).
		Bool(false). // has_removed_mods
		U8(uint8(len(content))).
		Raw(content...).
		Bytes()
}

func TestReadBlueprintEmptyBody(t *testing.T) {
	idx := newIndexWithBlueprintItem()
	r := stream.New(emptyBlueprintBytes("my blueprint"))
	ctx := &objects.Context{R: r, Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}

	rec, err := objects.ReadBlueprint(ctx)
	require.NoError(t, err)
	assert.Equal(t, "my blueprint", rec["label"])
	assert.Equal(t, "1.0.0.0", rec["version"])
	assert.NotContains(t, rec, "entities")
	assert.NotContains(t, rec, "tiles")
	assert.NotContains(t, rec, "schedules")
}

func TestReadSlotDispatchesBlueprintAndSetsItem(t *testing.T) {
	idx := newIndexWithBlueprintItem()
	body := emptyBlueprintBytes("")

	b := testutil.NewBuilder().
		Bool(true). // used
		U8(0).      // kind_tag = blueprint
		U32(7).     // generation
		U16(1).     // item id
		Raw(body...)

	ctx := &objects.Context{R: stream.New(b.Bytes()), Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}
	rec, err := objects.ReadSlot(ctx)
	require.NoError(t, err)

	assert.Equal(t, uint32(7), rec["generation"])
	bp, ok := rec["blueprint"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "blueprint", bp["item"])
}

func TestReadSlotUnusedReturnsNil(t *testing.T) {
	idx := newIndexWithBlueprintItem()
	b := testutil.NewBuilder().Bool(false)
	ctx := &objects.Context{R: stream.New(b.Bytes()), Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}
	rec, err := objects.ReadSlot(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestReadSlotWrongItemClassFails(t *testing.T) {
	idx := prototype.NewIndex()
	_ = idx.Add(0, prototype.KindItem, 1, "upgrade-item", "upgrade-planner")

	body := emptyBlueprintBytes("")
	b := testutil.NewBuilder().
		Bool(true).
		U8(0). // kind_tag = blueprint, but item id 1 classifies as upgrade-item
		U32(0).
		U16(1).
		Raw(body...)

	ctx := &objects.Context{R: stream.New(b.Bytes()), Idx: idx, Ver: version.NewContext(version.Version{Major: 1})}
	_, err := objects.ReadSlot(ctx)
	assert.Error(t, err)
}
