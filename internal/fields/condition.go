package fields

import (
	"embed"
	"fmt"

	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
	"gopkg.in/yaml.v3"
)

//go:embed operators.yaml
var operatorsYAML embed.FS

var comparatorTable map[uint8]string

func init() {
	data, err := operatorsYAML.ReadFile("operators.yaml")
	if err != nil {
		panic(fmt.Sprintf("fields: embedded operators.yaml missing: %v", err))
	}
	raw := map[uint8]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("fields: malformed operators.yaml: %v", err))
	}
	comparatorTable = raw
}

// ReadComparator reads the shared u8 comparator code (spec §4.C).
func ReadComparator(r *stream.Reader) (string, error) {
	return stream.MappedU8(r, comparatorTable, "comparator")
}

// Condition is {comparator, first_signal?, (second_signal xor constant),
// use_constant} (spec §3). Both SecondSignal and Constant are always read
// off the wire; which one is meaningful is indicated by UseConstant.
type Condition struct {
	Comparator   string
	FirstSignal  *Signal
	SecondSignal *Signal
	Constant     int32
	UseConstant  bool
}

func (c Condition) isDefault() bool {
	return c.FirstSignal == nil && c.SecondSignal == nil && c.Comparator == "<" && c.Constant == 0
}

// ReadCondition reads a condition and suppresses it (returns nil, nil) when
// it is exactly the default condition (no signals, comparator "<",
// constant 0), matching the game's re-export behavior.
func ReadCondition(r *stream.Reader, idx *prototype.Index) (*Condition, error) {
	comparator, err := ReadComparator(r)
	if err != nil {
		return nil, err
	}
	first, err := ReadSignal(r, idx)
	if err != nil {
		return nil, err
	}
	second, err := ReadSignal(r, idx)
	if err != nil {
		return nil, err
	}
	constant, err := r.S32()
	if err != nil {
		return nil, err
	}
	useConstant, err := r.Bool()
	if err != nil {
		return nil, err
	}

	c := Condition{
		Comparator:   comparator,
		FirstSignal:  first,
		SecondSignal: second,
		Constant:     constant,
		UseConstant:  useConstant,
	}
	if c.isDefault() {
		return nil, nil
	}
	return &c, nil
}

// ConditionValue converts a condition to its record representation,
// surfacing either second_signal or constant depending on UseConstant, or
// nil if c is nil.
func ConditionValue(c *Condition) map[string]interface{} {
	if c == nil {
		return nil
	}
	rec := map[string]interface{}{"comparator": c.Comparator}
	if c.FirstSignal != nil {
		rec["first_signal"] = map[string]interface{}{"type": c.FirstSignal.Type, "name": c.FirstSignal.Name}
	}
	if c.UseConstant {
		rec["constant"] = c.Constant
	} else if c.SecondSignal != nil {
		rec["second_signal"] = map[string]interface{}{"type": c.SecondSignal.Type, "name": c.SecondSignal.Name}
	}
	return rec
}

// ConditionWithLogistic wraps a condition read together with a trailing
// boolean that surfaces as connect_to_logistic_network when true (spec
// §4.C "Condition with logistic connection").
type ConditionWithLogistic struct {
	Condition                *Condition
	ConnectToLogisticNetwork bool
}

// ReadConditionWithLogistic reads a condition followed by the logistic
// connection flag.
func ReadConditionWithLogistic(r *stream.Reader, idx *prototype.Index) (*ConditionWithLogistic, error) {
	cond, err := ReadCondition(r, idx)
	if err != nil {
		return nil, err
	}
	connect, err := r.Bool()
	if err != nil {
		return nil, err
	}
	return &ConditionWithLogistic{Condition: cond, ConnectToLogisticNetwork: connect}, nil
}
