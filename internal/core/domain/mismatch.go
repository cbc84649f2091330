package domain

import (
	"cmp"
	"strings"

	"go.trai.ch/zerr"
)

// Category classifies a single structural discrepancy.
type Category string

// Mismatch categories.
const (
	CategoryMissingInRight              Category = "MissingInRight"
	CategoryExtraInRight                Category = "ExtraInRight"
	CategoryAbilityMismatch             Category = "AbilityMismatch"
	CategoryTypeParamCountMismatch      Category = "TypeParamCountMismatch"
	CategoryTypeParamConstraintMismatch Category = "TypeParamConstraintMismatch"
	CategoryTypeParamPhantomMismatch    Category = "TypeParamPhantomMismatch"
	CategoryFieldMismatch               Category = "FieldMismatch"
	CategoryVisibilityMismatch          Category = "VisibilityMismatch"
	CategoryEntryMismatch               Category = "EntryMismatch"
	CategoryNativeMismatch              Category = "NativeMismatch"
	CategoryFunctionSignatureMismatch   Category = "FunctionSignatureMismatch"
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryMissingInRight,
	CategoryExtraInRight,
	CategoryAbilityMismatch,
	CategoryTypeParamCountMismatch,
	CategoryTypeParamConstraintMismatch,
	CategoryTypeParamPhantomMismatch,
	CategoryFieldMismatch,
	CategoryVisibilityMismatch,
	CategoryEntryMismatch,
	CategoryNativeMismatch,
	CategoryFunctionSignatureMismatch,
}

// EntityKind is the kind of declaration a mismatch refers to.
// Its numeric order is the order mismatches are listed in.
type EntityKind uint8

const (
	// EntityModule is a whole module.
	EntityModule EntityKind = iota
	// EntityStruct is a struct declaration.
	EntityStruct
	// EntityFunction is a function declaration.
	EntityFunction
)

// String returns the lowercase kind name.
func (k EntityKind) String() string {
	switch k {
	case EntityModule:
		return "module"
	case EntityStruct:
		return "struct"
	case EntityFunction:
		return "function"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k EntityKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *EntityKind) UnmarshalText(text []byte) error {
	for _, kind := range []EntityKind{EntityModule, EntityStruct, EntityFunction} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return zerr.With(zerr.New("unknown entity kind"), "kind", string(text))
}

// Part names the component of an entity a mismatch is about.
// Its numeric order is the order mismatches on the same entity are listed in.
type Part uint8

const (
	// PartNone marks a mismatch on the entity as a whole.
	PartNone Part = iota
	PartAbilities
	PartVisibility
	PartEntry
	PartNative
	PartTypeParameter
	PartField
	PartParameter
	PartReturn
)

// String returns the snake_case part name.
func (p Part) String() string {
	switch p {
	case PartNone:
		return ""
	case PartAbilities:
		return "abilities"
	case PartVisibility:
		return "visibility"
	case PartEntry:
		return "entry"
	case PartNative:
		return "native"
	case PartTypeParameter:
		return "type_parameter"
	case PartField:
		return "field"
	case PartParameter:
		return "parameter"
	case PartReturn:
		return "return"
	default:
		return "unknown"
	}
}

// MarshalText encodes the part by name.
func (p Part) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a part name written by MarshalText.
func (p *Part) UnmarshalText(text []byte) error {
	for part := PartNone; part <= PartReturn; part++ {
		if part.String() == string(text) {
			*p = part
			return nil
		}
	}
	return zerr.With(zerr.New("unknown mismatch part"), "part", string(text))
}

// Mismatch is one structural discrepancy between the local (left)
// and the remote (right) interface of a package.
//
// Left and Right hold the compared values: an AbilitySet, Field, TypeSignature,
// TypeParameter, Visibility, bool or a count. A nil side is absent, for example
// the missing field when the field lists differ in length.
type Mismatch struct {
	Category Category   `json:"category"`
	Module   string     `json:"module"`
	Kind     EntityKind `json:"kind"`
	Entity   string     `json:"entity,omitempty"`
	Part     Part       `json:"part,omitempty"`
	Index    *int       `json:"index,omitempty"`
	Left     any        `json:"left,omitempty"`
	Right    any        `json:"right,omitempty"`
}

// CompareMismatches orders mismatches by module, entity kind, entity name,
// part, position and finally category.
//
//nolint:gocritic // used as slices.SortFunc comparator
func CompareMismatches(a, b Mismatch) int {
	if c := strings.Compare(a.Module, b.Module); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	if c := strings.Compare(a.Entity, b.Entity); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Part, b.Part); c != 0 {
		return c
	}
	if c := compareIndex(a.Index, b.Index); c != 0 {
		return c
	}
	return strings.Compare(string(a.Category), string(b.Category))
}

func compareIndex(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}

// DiffSummary counts mismatches per category.
type DiffSummary map[Category]int

// Total returns the sum over all categories.
func (s DiffSummary) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}
