package linker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeware/bpdecode/internal/linker"
)

func TestResolveEntityIDDropsCircuitIDForNonCombinatorPeer(t *testing.T) {
	registry := linker.NewRegistry(2)
	registry.Register(100, 1, "wooden-chest")
	registry.Register(200, 2, "medium-electric-pole")

	rec := map[string]interface{}{
		"connections": map[string]interface{}{
			"1": map[string]interface{}{
				"red": []interface{}{
					map[string]interface{}{"entity_id": uint32(200), "circuit_id": uint8(1)},
				},
			},
		},
	}

	require.NoError(t, registry.Resolve(0, rec))

	conns := rec["connections"].(map[string]interface{})["1"].(map[string]interface{})
	red := conns["red"].([]interface{})
	peer := red[0].(map[string]interface{})
	assert.Equal(t, 2, peer["entity_id"])
	_, hasCircuitID := peer["circuit_id"]
	assert.False(t, hasCircuitID, "circuit_id should be dropped when circuit_id==1 and peer isn't a combinator")
}

func TestResolveEntityIDKeepsCircuitIDForCombinatorPeer(t *testing.T) {
	registry := linker.NewRegistry(2)
	registry.Register(100, 1, "wooden-chest")
	registry.Register(200, 2, "arithmetic-combinator")

	rec := map[string]interface{}{
		"connections": map[string]interface{}{
			"1": map[string]interface{}{
				"red": []interface{}{
					map[string]interface{}{"entity_id": uint32(200), "circuit_id": uint8(2)},
				},
			},
		},
	}

	require.NoError(t, registry.Resolve(0, rec))

	conns := rec["connections"].(map[string]interface{})["1"].(map[string]interface{})
	red := conns["red"].([]interface{})
	peer := red[0].(map[string]interface{})
	assert.Equal(t, 2, peer["entity_id"])
	assert.Equal(t, 2, peer["circuit_id"])
}

func TestResolveNeighboursListElementWise(t *testing.T) {
	registry := linker.NewRegistry(2)
	registry.Register(100, 1, "medium-electric-pole")
	registry.Register(200, 2, "medium-electric-pole")

	rec := map[string]interface{}{
		"neighbours": []interface{}{uint32(200)},
	}

	require.NoError(t, registry.Resolve(0, rec))

	neighbours := rec["neighbours"].([]interface{})
	require.Len(t, neighbours, 1)
	assert.Equal(t, 2, neighbours[0])
}

func TestResolveBeltLinkScalar(t *testing.T) {
	registry := linker.NewRegistry(2)
	registry.Register(100, 1, "underground-belt")
	registry.Register(200, 2, "underground-belt")

	rec := map[string]interface{}{"belt_link": uint32(200)}

	require.NoError(t, registry.Resolve(0, rec))
	assert.Equal(t, 2, rec["belt_link"])
}

func TestResolveUnknownRawIDFails(t *testing.T) {
	registry := linker.NewRegistry(1)
	registry.Register(100, 1, "wooden-chest")

	rec := map[string]interface{}{"belt_link": uint32(999)}
	err := registry.Resolve(0, rec)
	assert.Error(t, err)
}
