package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeware/bpdecode/internal/library"
	"github.com/forgeware/bpdecode/internal/stream"
	"github.com/forgeware/bpdecode/internal/testutil"
)

func TestEmptyLibraryDecodesToEmptyBlueprintBook(t *testing.T) {
	b := testutil.NewBuilder().
		U16(1).U16(0).U16(0).U16(0). // version 1.0.0.0
		U8(0x00).                    // trailing zero
		U8(0).                       // migrations count
		U16(0).                      // prototype class count
		U8(0x00).U8(0x00).           // library-state (ignored) + trailing zero
		U32(0).                      // generation
		U32(0).                      // timestamp
		U8(0x01).                    // expect-0x01
		U32(0)                       // slot count

	result, err := library.Decode(stream.New(b.Bytes()), library.Options{Filename: "blueprint-storage.dat"})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Skipped.Count())
	slots, ok := result.Document["blueprints"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, slots)
	assert.Equal(t, 0, result.Document["active_index"])
	assert.NotContains(t, result.Document, "migrations")
}

// emptyBlueprintBody builds a blueprint body with no entities, schedules,
// tiles, or icons, matching readBlueprintContent's field order.
func emptyBlueprintBody(label string) []byte {
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

// blueprintSlotBytes builds one used, kind_tag=blueprint slot body.
func blueprintSlotBytes(label string) []byte {
	return testutil.NewBuilder().
		Bool(true). // used
		U8(0).      // kind_tag = blueprint
		U32(0).     // generation
		U16(1).     // item id (registered as class "blueprint" below)
		Raw(emptyBlueprintBody(label)...).
		Bytes()
}

func TestLibrarySlotsGetSequentialZeroBasedIndex(t *testing.T) {
	b := testutil.NewBuilder().
		U16(1).U16(0).U16(0).U16(0). // version 1.0.0.0
		U8(0x00).                    // trailing zero
		U8(0).                       // migrations count
		U16(1).                      // prototype class count
		Str("blueprint").
		U8(0x00).
		U16(1). // entry count
		U16(1). // item id
		Str("blueprint").
		U8(0x00).U8(0x00). // library-state (ignored) + trailing zero
		U32(0).            // generation
		U32(0).            // timestamp
		U8(0x01).          // expect-0x01
		U32(3)             // slot count

	b.Raw(blueprintSlotBytes("first")...)
	b.Bool(false) // slot 1: unused
	b.Raw(blueprintSlotBytes("third")...)

	result, err := library.Decode(stream.New(b.Bytes()), library.Options{Filename: "blueprint-storage.dat"})
	require.NoError(t, err)
	require.Equal(t, 0, result.Skipped.Count())

	slots, ok := result.Document["blueprints"].([]interface{})
	require.True(t, ok)
	require.Len(t, slots, 2)

	first := slots[0].(map[string]interface{})
	assert.Equal(t, 0, first["index"])
	third := slots[1].(map[string]interface{})
	assert.Equal(t, 2, third["index"])
}

func TestLibraryRejectsBadTrailingLiteral(t *testing.T) {
	b := testutil.NewBuilder().
		U16(1).U16(0).U16(0).U16(0).
		U8(0x00).
		U8(0).
		U16(0).
		U8(0x00).U8(0x00).
		U32(0).
		U32(0).
		U8(0x02). // wrong: spec requires expect-0x01 here
		U32(0)

	_, err := library.Decode(stream.New(b.Bytes()), library.Options{Filename: "x"})
	assert.Error(t, err)
}
