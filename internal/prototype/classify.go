package prototype

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind is the coarse bucket a prototype class classifies into. Each kind
// has its own ID space.
type Kind int

const (
	KindItem Kind = iota
	KindFluid
	KindVirtualSignal
	KindTile
	KindEntity
	KindRecipe
)

func (k Kind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindFluid:
		return "fluid"
	case KindVirtualSignal:
		return "virtual-signal"
	case KindTile:
		return "tile"
	case KindEntity:
		return "entity"
	case KindRecipe:
		return "recipe"
	default:
		return "unknown"
	}
}

//go:embed classes.yaml
var classesYAML embed.FS

var classToKind map[string]Kind

func init() {
	data, err := classesYAML.ReadFile("classes.yaml")
	if err != nil {
		panic(fmt.Sprintf("prototype: embedded classes.yaml missing: %v", err))
	}
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("prototype: malformed classes.yaml: %v", err))
	}

	named := map[string]Kind{
		"item":           KindItem,
		"fluid":          KindFluid,
		"virtual-signal": KindVirtualSignal,
		"tile":           KindTile,
		"entity":         KindEntity,
		"recipe":         KindRecipe,
	}

	classToKind = make(map[string]Kind)
	for bucket, classes := range raw {
		kind, ok := named[bucket]
		if !ok {
			panic(fmt.Sprintf("prototype: classes.yaml has unknown bucket %q", bucket))
		}
		for _, class := range classes {
			classToKind[class] = kind
		}
	}
}

// ClassifyClass maps a prototype-class string to its kind, failing (ok=false)
// for any class not in the fixed table — an unknown class is a parse error
// at the call site, per spec §3 "unknown classes are a parse error".
func ClassifyClass(class string) (Kind, bool) {
	k, ok := classToKind[class]
	return k, ok
}
