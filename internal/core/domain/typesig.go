package domain

import (
	"cmp"
	"strconv"
	"strings"
)

// TypeKind discriminates the variants of a TypeSignature.
type TypeKind uint8

const (
	// KindPrimitive is a builtin scalar such as u64, bool or address.
	KindPrimitive TypeKind = iota
	// KindTypeParameter refers to a generic parameter by declaration position.
	KindTypeParameter
	// KindStruct is a fully qualified struct instantiation.
	KindStruct
	// KindReference is an immutable or mutable reference.
	KindReference
	// KindVector is a vector of an inner type.
	KindVector
)

// String returns the lowercase variant name.
func (k TypeKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindTypeParameter:
		return "type_parameter"
	case KindStruct:
		return "struct"
	case KindReference:
		return "reference"
	case KindVector:
		return "vector"
	default:
		return "unknown"
	}
}

// Primitive type names in canonical spelling.
const (
	PrimitiveBool    = "bool"
	PrimitiveU8      = "u8"
	PrimitiveU16     = "u16"
	PrimitiveU32     = "u32"
	PrimitiveU64     = "u64"
	PrimitiveU128    = "u128"
	PrimitiveU256    = "u256"
	PrimitiveAddress = "address"
	PrimitiveSigner  = "signer"
)

var primitiveNames = map[string]struct{}{
	PrimitiveBool:    {},
	PrimitiveU8:      {},
	PrimitiveU16:     {},
	PrimitiveU32:     {},
	PrimitiveU64:     {},
	PrimitiveU128:    {},
	PrimitiveU256:    {},
	PrimitiveAddress: {},
	PrimitiveSigner:  {},
}

// CanonicalPrimitive maps a primitive name in any case to its canonical spelling.
func CanonicalPrimitive(name string) (string, bool) {
	lower := strings.ToLower(name)
	if _, ok := primitiveNames[lower]; ok {
		return lower, true
	}
	return "", false
}

// TypeSignature is the recursive canonical type value.
// Only the fields relevant to Kind are populated.
type TypeSignature struct {
	Kind TypeKind

	// Name holds the primitive name or the struct name.
	Name string
	// Address and Module qualify a struct.
	Address string
	Module  string
	// TypeArgs are the struct instantiation arguments.
	TypeArgs []TypeSignature

	// Index is the type parameter position.
	Index int

	// Mutable marks a &mut reference.
	Mutable bool
	// Inner is the referenced or element type.
	Inner *TypeSignature
}

// Primitive builds a primitive signature. The name is expected in canonical spelling.
func Primitive(name string) TypeSignature {
	return TypeSignature{Kind: KindPrimitive, Name: name}
}

// TypeParam builds a reference to the type parameter at index.
func TypeParam(index int) TypeSignature {
	return TypeSignature{Kind: KindTypeParameter, Index: index}
}

// StructType builds a struct instantiation.
func StructType(address, module, name string, args ...TypeSignature) TypeSignature {
	if len(args) == 0 {
		args = nil
	}
	return TypeSignature{Kind: KindStruct, Address: address, Module: module, Name: name, TypeArgs: args}
}

// Reference builds an immutable or mutable reference to inner.
func Reference(inner TypeSignature, mutable bool) TypeSignature {
	return TypeSignature{Kind: KindReference, Mutable: mutable, Inner: &inner}
}

// Vector builds a vector of inner.
func Vector(inner TypeSignature) TypeSignature {
	return TypeSignature{Kind: KindVector, Inner: &inner}
}

// Equal reports deep structural equality.
func (t TypeSignature) Equal(other TypeSignature) bool {
	return t.Compare(other) == 0
}

// Compare imposes a total order on signatures: by kind, then by the kind's payload.
func (t TypeSignature) Compare(other TypeSignature) int {
	if c := cmp.Compare(t.Kind, other.Kind); c != 0 {
		return c
	}
	switch t.Kind {
	case KindPrimitive:
		return strings.Compare(t.Name, other.Name)
	case KindTypeParameter:
		return cmp.Compare(t.Index, other.Index)
	case KindStruct:
		if c := strings.Compare(t.Address, other.Address); c != 0 {
			return c
		}
		if c := strings.Compare(t.Module, other.Module); c != 0 {
			return c
		}
		if c := strings.Compare(t.Name, other.Name); c != 0 {
			return c
		}
		return CompareSignatures(t.TypeArgs, other.TypeArgs)
	case KindReference:
		if t.Mutable != other.Mutable {
			if t.Mutable {
				return 1
			}
			return -1
		}
		return compareInner(t.Inner, other.Inner)
	case KindVector:
		return compareInner(t.Inner, other.Inner)
	default:
		return 0
	}
}

// CompareSignatures orders two signature lists element-wise, shorter first on a common prefix.
func CompareSignatures(a, b []TypeSignature) int {
	for i := range min(len(a), len(b)) {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareInner(a, b *TypeSignature) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

// Clone returns a deep copy.
func (t TypeSignature) Clone() TypeSignature {
	out := t
	if t.Inner != nil {
		inner := t.Inner.Clone()
		out.Inner = &inner
	}
	if t.TypeArgs != nil {
		out.TypeArgs = make([]TypeSignature, len(t.TypeArgs))
		for i, arg := range t.TypeArgs {
			out.TypeArgs[i] = arg.Clone()
		}
	}
	return out
}

// String renders the signature in Move syntax with full addresses
// and type parameters spelled T<index>.
func (t TypeSignature) String() string {
	var b strings.Builder
	t.render(&b)
	return b.String()
}

func (t TypeSignature) render(b *strings.Builder) {
	switch t.Kind {
	case KindPrimitive:
		b.WriteString(t.Name)
	case KindTypeParameter:
		b.WriteString("T")
		b.WriteString(strconv.Itoa(t.Index))
	case KindStruct:
		b.WriteString(t.Address)
		b.WriteString("::")
		b.WriteString(t.Module)
		b.WriteString("::")
		b.WriteString(t.Name)
		if len(t.TypeArgs) > 0 {
			b.WriteByte('<')
			for i, arg := range t.TypeArgs {
				if i > 0 {
					b.WriteString(", ")
				}
				arg.render(b)
			}
			b.WriteByte('>')
		}
	case KindReference:
		if t.Mutable {
			b.WriteString("&mut ")
		} else {
			b.WriteByte('&')
		}
		if t.Inner != nil {
			t.Inner.render(b)
		}
	case KindVector:
		b.WriteString("vector<")
		if t.Inner != nil {
			t.Inner.render(b)
		}
		b.WriteByte('>')
	}
}

// MarshalText encodes the signature as its canonical rendering.
func (t TypeSignature) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
