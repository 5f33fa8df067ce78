// Package entity implements the per-entity-prototype-class variant decoders
// (spec §4.D): the common envelope every entity shares, the pre-body
// version-gated flag bytes, the dispatch table keyed by prototype class,
// and the ~60 bespoke variant bodies themselves.
package entity

import (
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/fields"
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
	"github.com/forgeware/bpdecode/internal/version"
)

// RawEntityIDKey is the transient dictionary key the link resolver (spec
// §4.G) looks for when rewriting raw entity ids to entity numbers.
const RawEntityIDKey = "entity_id"

// Position is a fixed-point (X, Y) pair, stored as fractions of 256.
type Position struct {
	X, Y float64
}

// Context bundles everything a variant decoder needs: the stream, the
// prototype index in scope (global, or a blueprint's local index when the
// blueprint carries removed-mod prototypes), and the version context that
// gates optional fields.
type Context struct {
	R   *stream.Reader
	Idx *prototype.Index
	Ver *version.Context
}

// Decoder decodes one entity variant's body and returns the variant-specific
// keys to merge into the entity's record. The common envelope (entity
// header) and common trailer (items, tags) are handled by ReadEntity, not
// by the Decoder itself.
type Decoder func(ctx *Context) (map[string]interface{}, error)

// ReadEntity reads one full entity frame: header, version-gated pre-body
// flags, the dispatched variant body, and the common trailer. prevPos is
// the previous entity's resolved position (zero value for the first
// entity in a blueprint).
func ReadEntity(ctx *Context, prevPos Position) (map[string]interface{}, string, Position, error) {
	r := ctx.R

	protoOffset := r.Tell()
	protoID, err := r.U16()
	if err != nil {
		return nil, "", prevPos, err
	}
	entry, ok := ctx.Idx.Lookup(prototype.KindEntity, uint32(protoID))
	if !ok {
		return nil, "", prevPos, diagnostics.New(protoOffset, "unresolved entity prototype id %d", protoID)
	}

	pos, err := readPosition(r, prevPos)
	if err != nil {
		return nil, "", prevPos, err
	}

	if err := r.Expect(0x20); err != nil {
		return nil, "", prevPos, err
	}

	flagOffset := r.Tell()
	idFlags, err := r.U8()
	if err != nil {
		return nil, "", prevPos, err
	}
	if idFlags&0x10 == 0 {
		return nil, "", prevPos, diagnostics.New(flagOffset, "entity id flag byte 0x%02X missing required bit 0x10", idFlags)
	}
	if err := r.Expect(0x01); err != nil {
		return nil, "", prevPos, err
	}
	rawID, err := r.U32()
	if err != nil {
		return nil, "", prevPos, err
	}

	if err := readPreBodyFlags(r, ctx.Ver, entry.Class); err != nil {
		return nil, "", prevPos, err
	}

	decode, ok := lookupDecoder(entry.Class)
	if !ok {
		return nil, "", prevPos, diagnostics.New(protoOffset, "no decoder registered for entity class %q", entry.Class)
	}
	rec, err := decode(ctx)
	if err != nil {
		return nil, "", prevPos, err
	}
	if rec == nil {
		rec = map[string]interface{}{}
	}

	rec["name"] = entry.Name
	rec["position"] = map[string]interface{}{"x": pos.X, "y": pos.Y}
	rec[RawEntityIDKey] = rawID

	if err := readTrailer(ctx, rec); err != nil {
		return nil, "", prevPos, err
	}

	return rec, entry.Class, pos, nil
}

// readPosition implements the lookahead: a leading s16 field of exactly
// 0x7FFF switches to absolute s32/256 coordinates; any other value is
// itself the s16/256 delta-x, followed by a plain s16/256 delta-y, applied
// against prevPos.
func readPosition(r *stream.Reader, prevPos Position) (Position, error) {
	marker, err := r.S16()
	if err != nil {
		return prevPos, err
	}
	if uint16(marker) == 0x7FFF {
		x, err := r.S32()
		if err != nil {
			return prevPos, err
		}
		y, err := r.S32()
		if err != nil {
			return prevPos, err
		}
		return Position{X: float64(x) / 256, Y: float64(y) / 256}, nil
	}

	dy, err := r.S16()
	if err != nil {
		return prevPos, err
	}
	return Position{
		X: prevPos.X + float64(marker)/256,
		Y: prevPos.Y + float64(dy)/256,
	}, nil
}

// containerFamily is the set of classes that carry the second, container-
// specific pre-body marker byte gated by GateContainerFilterMarker.
var containerFamily = map[string]bool{
	"container":          true,
	"logistic-container": true,
	"infinity-container": true,
}

// preBodyFlagNonZero is the set of classes whose pre-body flag byte may
// legitimately be 0x01 rather than 0x00.
var preBodyFlagNonZero = map[string]bool{
	"ammo-turret":      true,
	"electric-turret":  true,
	"fluid-turret":     true,
	"artillery-turret": true,
	"land-mine":        true,
	"radar":            true,
	"locomotive":       true,
	"cargo-wagon":      true,
	"fluid-wagon":      true,
	"artillery-wagon":  true,
}

// readPreBodyFlags reads the two version-gated pre-body flag bytes
// described in spec §4.D's V_1_1_51_4 / V_1_1_62_5 gates.
func readPreBodyFlags(r *stream.Reader, verctx *version.Context, class string) error {
	v := verctx.Current()
	if v.AtLeast(version.GatePreBodyFlag) {
		offset := r.Tell()
		flag, err := r.U8()
		if err != nil {
			return err
		}
		if flag != 0x00 && !(flag == 0x01 && preBodyFlagNonZero[class]) {
			return diagnostics.New(offset, "unexpected pre-body flag 0x%02X for entity class %q", flag, class)
		}
	}
	if v.AtLeast(version.GateContainerFilterMarker) && containerFamily[class] {
		if err := r.Expect(0x00); err != nil {
			return err
		}
	}
	return nil
}

// readTrailer reads the common trailer shared by every variant: an items
// map (modules / fuel / ammo) and an optional tags property tree.
func readTrailer(ctx *Context, rec map[string]interface{}) error {
	items, err := fields.ReadItems(ctx.R, ctx.Idx)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		itemMap := make(map[string]interface{}, len(items))
		for _, it := range items {
			itemMap[it.Name] = it.Count
		}
		rec["items"] = itemMap
	}

	hasTags, err := ctx.R.Bool()
	if err != nil {
		return err
	}
	if hasTags {
		tree, err := fields.ReadPropertyTree(ctx.R)
		if err != nil {
			return err
		}
		rec["tags"] = valueOf(tree)
	}
	return nil
}
