package fields

import "github.com/forgeware/bpdecode/internal/stream"

// ConnectionPeer is one wire endpoint: a raw entity id (resolved to an
// entity number by the link resolver, spec §4.G) and the peer's circuit
// terminal.
type ConnectionPeer struct {
	RawEntityID uint32
	CircuitID   uint8
}

// CircuitConnections holds the red and green wire peers for one circuit
// terminal.
type CircuitConnections struct {
	Red   []ConnectionPeer
	Green []ConnectionPeer
}

// ReadCircuitConnections reads, for each of {red, green}, a 1-byte peer
// count and that many peers ({raw_entity_id u32, circuit_id u8, 0xFF
// trailer}), followed by 9 fixed zero bytes (spec §4.C).
func ReadCircuitConnections(r *stream.Reader) (*CircuitConnections, error) {
	red, err := readPeers(r)
	if err != nil {
		return nil, err
	}
	green, err := readPeers(r)
	if err != nil {
		return nil, err
	}
	if err := r.Ignore(9, "circuit connection trailer"); err != nil {
		return nil, err
	}
	return &CircuitConnections{Red: red, Green: green}, nil
}

func readPeers(r *stream.Reader) ([]ConnectionPeer, error) {
	count, err := r.Count8()
	if err != nil {
		return nil, err
	}
	peers := make([]ConnectionPeer, 0, count)
	for i := 0; i < count; i++ {
		rawID, err := r.U32()
		if err != nil {
			return nil, err
		}
		circuitID, err := r.U8()
		if err != nil {
			return nil, err
		}
		if err := r.Expect(0xFF); err != nil {
			return nil, err
		}
		peers = append(peers, ConnectionPeer{RawEntityID: rawID, CircuitID: circuitID})
	}
	return peers, nil
}

// IsEmpty reports whether neither color has any peer, letting callers
// suppress an entirely-empty connections block from output.
func (c *CircuitConnections) IsEmpty() bool {
	return c == nil || (len(c.Red) == 0 && len(c.Green) == 0)
}
