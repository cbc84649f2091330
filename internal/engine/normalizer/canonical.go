package normalizer

import (
	"go.trai.ch/moveiface/internal/core/domain"
)

// Canonicalize validates p and returns a canonical deep copy. Addresses are
// rewritten to their long form, empty lists are non-nil and struct type
// arguments are nil when empty. Applying it to its own output is a no-op.
func (n *Normalizer) Canonicalize(p *domain.PackageInterface) (*domain.PackageInterface, error) {
	if p == nil {
		return nil, domain.NewFault(domain.ErrMalformedInterface, "nil package interface")
	}

	out := domain.NewPackageInterface(p.ID)
	for key, mod := range p.Modules {
		if key == "" || mod.Name != key {
			return nil, domain.NewFault(domain.ErrMalformedInterface, "module key %q does not match name %q", key, mod.Name)
		}
		cm := domain.NewModuleInterface(key)
		for name, s := range mod.Structs {
			cs, err := canonicalStruct(s)
			if err != nil {
				return nil, within(err, "%s::%s", key, name)
			}
			cm.Structs[name] = cs
		}
		for name, f := range mod.Functions {
			cf, err := canonicalFunction(f)
			if err != nil {
				return nil, within(err, "%s::%s", key, name)
			}
			cm.Functions[name] = cf
		}
		out.Modules[key] = cm
	}
	return out, nil
}

func canonicalStruct(s domain.StructInterface) (domain.StructInterface, error) {
	out := domain.StructInterface{
		Abilities:      s.Abilities,
		TypeParameters: append(make([]domain.TypeParameter, 0, len(s.TypeParameters)), s.TypeParameters...),
		Fields:         make([]domain.Field, len(s.Fields)),
	}
	for i, f := range s.Fields {
		sig, err := canonicalType(f.Type, len(s.TypeParameters))
		if err != nil {
			return out, within(err, "field %d (%s)", i, f.Name)
		}
		out.Fields[i] = domain.Field{Name: f.Name, Type: sig}
	}
	return out, nil
}

func canonicalFunction(f domain.FunctionInterface) (domain.FunctionInterface, error) {
	out := domain.FunctionInterface{
		Visibility:     f.Visibility,
		IsEntry:        f.IsEntry,
		IsNative:       f.IsNative,
		TypeParameters: make([]domain.TypeParameter, len(f.TypeParameters)),
	}
	for i, tp := range f.TypeParameters {
		if tp.IsPhantom {
			return out, domain.NewFault(domain.ErrMalformedInterface, "function type parameter %d is phantom", i)
		}
		out.TypeParameters[i] = tp
	}

	var err error
	if out.Parameters, err = canonicalTypes(f.Parameters, len(f.TypeParameters)); err != nil {
		return out, within(err, "parameter")
	}
	if out.Returns, err = canonicalTypes(f.Returns, len(f.TypeParameters)); err != nil {
		return out, within(err, "return")
	}
	return out, nil
}

func canonicalTypes(in []domain.TypeSignature, arity int) ([]domain.TypeSignature, error) {
	out := make([]domain.TypeSignature, len(in))
	for i, t := range in {
		sig, err := canonicalType(t, arity)
		if err != nil {
			return nil, within(err, "%d", i)
		}
		out[i] = sig
	}
	return out, nil
}

// canonicalType checks type parameter references against arity.
func canonicalType(t domain.TypeSignature, arity int) (domain.TypeSignature, error) {
	switch t.Kind {
	case domain.KindPrimitive:
		prim, ok := domain.CanonicalPrimitive(t.Name)
		if !ok {
			return t, domain.NewFault(domain.ErrMalformedInterface, "unknown primitive %q", t.Name)
		}
		return domain.Primitive(prim), nil
	case domain.KindTypeParameter:
		if t.Index < 0 || t.Index >= arity {
			return t, domain.NewFault(domain.ErrMalformedInterface, "type parameter T%d out of range (%d declared)", t.Index, arity)
		}
		return domain.TypeParam(t.Index), nil
	case domain.KindStruct:
		addr, err := domain.NormalizeAddress(t.Address)
		if err != nil {
			return t, domain.NewFault(domain.ErrMalformedInterface, "struct address %q", t.Address)
		}
		if t.Module == "" || t.Name == "" {
			return t, domain.NewFault(domain.ErrMalformedInterface, "unqualified struct %q", t.String())
		}
		args := make([]domain.TypeSignature, len(t.TypeArgs))
		for i, arg := range t.TypeArgs {
			if args[i], err = canonicalType(arg, arity); err != nil {
				return t, err
			}
		}
		return domain.StructType(addr, t.Module, t.Name, args...), nil
	case domain.KindReference, domain.KindVector:
		if t.Inner == nil {
			return t, domain.NewFault(domain.ErrMalformedInterface, "%s without inner type", t.Kind)
		}
		if t.Kind == domain.KindReference && t.Inner.Kind == domain.KindReference {
			return t, domain.NewFault(domain.ErrMalformedInterface, "reference to reference %q", t.String())
		}
		inner, err := canonicalType(*t.Inner, arity)
		if err != nil {
			return t, err
		}
		if t.Kind == domain.KindVector {
			return domain.Vector(inner), nil
		}
		return domain.Reference(inner, t.Mutable), nil
	default:
		return t, domain.NewFault(domain.ErrMalformedInterface, "unknown type kind %d", t.Kind)
	}
}
