package differ

import (
	"go.trai.ch/moveiface/internal/core/domain"
)

type entity struct {
	module string
	kind   domain.EntityKind
	name   string
}

func (e entity) mismatch(cat domain.Category, part domain.Part, index *int, left, right any) domain.Mismatch {
	return domain.Mismatch{
		Category: cat,
		Module:   e.module,
		Kind:     e.kind,
		Entity:   e.name,
		Part:     part,
		Index:    index,
		Left:     left,
		Right:    right,
	}
}

func at(i int) *int {
	return &i
}

//nolint:gocritic // interfaces are compared by value
func (c *collector) structs(e entity, left, right domain.StructInterface) {
	if left.Abilities != right.Abilities {
		c.add(e.mismatch(domain.CategoryAbilityMismatch, domain.PartAbilities, nil, left.Abilities, right.Abilities))
	}
	c.typeParameters(e, left.TypeParameters, right.TypeParameters)

	for i := range max(len(left.Fields), len(right.Fields)) {
		var l, r any
		if i < len(left.Fields) {
			l = left.Fields[i]
		}
		if i < len(right.Fields) {
			r = right.Fields[i]
		}
		if l != nil && r != nil && left.Fields[i].Equal(right.Fields[i]) {
			continue
		}
		c.add(e.mismatch(domain.CategoryFieldMismatch, domain.PartField, at(i), l, r))
	}
}

//nolint:gocritic // interfaces are compared by value
func (c *collector) functions(e entity, left, right domain.FunctionInterface) {
	if left.Visibility != right.Visibility {
		c.add(e.mismatch(domain.CategoryVisibilityMismatch, domain.PartVisibility, nil, left.Visibility, right.Visibility))
	}
	if left.IsEntry != right.IsEntry {
		c.add(e.mismatch(domain.CategoryEntryMismatch, domain.PartEntry, nil, left.IsEntry, right.IsEntry))
	}
	if left.IsNative != right.IsNative {
		c.add(e.mismatch(domain.CategoryNativeMismatch, domain.PartNative, nil, left.IsNative, right.IsNative))
	}
	c.typeParameters(e, left.TypeParameters, right.TypeParameters)
	c.signatures(e, domain.PartParameter, left.Parameters, right.Parameters)
	c.signatures(e, domain.PartReturn, left.Returns, right.Returns)
}

// typeParameters reports a count mismatch and then compares the common prefix
// position by position.
func (c *collector) typeParameters(e entity, left, right []domain.TypeParameter) {
	if len(left) != len(right) {
		c.add(e.mismatch(domain.CategoryTypeParamCountMismatch, domain.PartTypeParameter, nil, len(left), len(right)))
	}
	for i := range min(len(left), len(right)) {
		if left[i].Constraints != right[i].Constraints {
			c.add(e.mismatch(domain.CategoryTypeParamConstraintMismatch, domain.PartTypeParameter, at(i),
				left[i].Constraints, right[i].Constraints))
		}
		if left[i].IsPhantom != right[i].IsPhantom {
			c.add(e.mismatch(domain.CategoryTypeParamPhantomMismatch, domain.PartTypeParameter, at(i),
				left[i].IsPhantom, right[i].IsPhantom))
		}
	}
}

func (c *collector) signatures(e entity, part domain.Part, left, right []domain.TypeSignature) {
	for i := range max(len(left), len(right)) {
		var l, r any
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		if l != nil && r != nil && left[i].Equal(right[i]) {
			continue
		}
		c.add(e.mismatch(domain.CategoryFunctionSignatureMismatch, part, at(i), l, r))
	}
}
