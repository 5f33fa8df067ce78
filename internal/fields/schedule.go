package fields

import (
	"embed"
	"fmt"

	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
	"github.com/forgeware/bpdecode/internal/version"
	"gopkg.in/yaml.v3"
)

//go:embed schedule.yaml
var waitConditionTypeYAML embed.FS

//go:embed comparetype.yaml
var compareTypeYAML embed.FS

var waitConditionTypeTable map[uint8]string
var compareTypeTable map[uint8]string

func init() {
	waitConditionTypeTable = loadU8Table(waitConditionTypeYAML, "schedule.yaml")
	compareTypeTable = loadU8Table(compareTypeYAML, "comparetype.yaml")
}

func loadU8Table(fsys embed.FS, name string) map[uint8]string {
	data, err := fsys.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("fields: embedded %s missing: %v", name, err))
	}
	raw := map[uint8]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("fields: malformed %s: %v", name, err))
	}
	return raw
}

// waitConditionTicksTypes carry an explicit tick count instead of a
// condition.
var waitConditionTicksTypes = map[string]bool{"time": true, "inactivity": true}

// waitConditionConditionTypes carry a circuit-style condition.
var waitConditionConditionTypes = map[string]bool{"item_count": true, "circuit": true, "fluid_count": true}

// ReadSchedules reads the blueprint-level train schedule list (spec §3
// "Schedule"): for each schedule, a raw locomotive-id list followed by an
// ordered station list.
func ReadSchedules(r *stream.Reader, idx *prototype.Index, verctx *version.Context) ([]interface{}, error) {
	n, err := r.Count32()
	if err != nil {
		return nil, err
	}
	schedules := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		locomotives, err := readRawIDList(r)
		if err != nil {
			return nil, err
		}
		stations, err := readStations(r, idx, verctx)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, map[string]interface{}{
			"locomotives": locomotives,
			"schedule":    stations,
		})
	}
	return schedules, nil
}

func readRawIDList(r *stream.Reader) ([]interface{}, error) {
	n, err := r.Count32()
	if err != nil {
		return nil, err
	}
	ids := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		id, err := r.U32()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func readStations(r *stream.Reader, idx *prototype.Index, verctx *version.Context) ([]interface{}, error) {
	n, err := r.Count32()
	if err != nil {
		return nil, err
	}
	stations := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		name, err := r.String()
		if err != nil {
			return nil, err
		}
		waitConditions, err := readWaitConditions(r, idx)
		if err != nil {
			return nil, err
		}
		temporary, err := r.Bool()
		if err != nil {
			return nil, err
		}

		station := map[string]interface{}{"station": name}
		if len(waitConditions) > 0 {
			station["wait_conditions"] = waitConditions
		}
		if temporary {
			station["temporary"] = true
		}

		if verctx.Current().AtLeast(version.GateScheduleRailDirection) {
			railDirection, err := r.U8()
			if err != nil {
				return nil, err
			}
			if temporary {
				station["rail_direction"] = int(railDirection)
			}
		} else if err := r.Ignore(4, "pre-gate schedule rail-direction placeholder"); err != nil {
			return nil, err
		}

		stations = append(stations, station)
	}
	return stations, nil
}

func readWaitConditions(r *stream.Reader, idx *prototype.Index) ([]interface{}, error) {
	n, err := r.Count32()
	if err != nil {
		return nil, err
	}
	conditions := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		typ, err := stream.MappedU8(r, waitConditionTypeTable, "wait condition type")
		if err != nil {
			return nil, err
		}
		compareType, err := stream.MappedU8(r, compareTypeTable, "wait condition compare type")
		if err != nil {
			return nil, err
		}

		entry := map[string]interface{}{"type": typ, "compare_type": compareType}
		if waitConditionTicksTypes[typ] {
			ticks, err := r.U32()
			if err != nil {
				return nil, err
			}
			entry["ticks"] = ticks
		}
		if waitConditionConditionTypes[typ] {
			cond, err := ReadCondition(r, idx)
			if err != nil {
				return nil, err
			}
			if v := ConditionValue(cond); v != nil {
				entry["condition"] = v
			}
		}
		conditions = append(conditions, entry)
	}
	return conditions, nil
}
