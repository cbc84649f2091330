package normalizer

import (
	"strconv"

	"fortio.org/safecast"
	"github.com/tidwall/gjson"
	"go.trai.ch/moveiface/internal/core/domain"
)

// NormalizeRemote converts the sui_getNormalizedMoveModulesByPackage result into
// the canonical model. The RPC already restricts functions to the exposed ones;
// private non-entry functions are dropped anyway to match the local side.
func (n *Normalizer) NormalizeRemote(id domain.PackageID, raw domain.RawRemotePackage) (*domain.PackageInterface, error) {
	if !gjson.ValidBytes(raw) {
		return nil, domain.NewFault(domain.ErrMalformedInterface, "rpc result is not valid JSON")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, domain.NewFault(domain.ErrMalformedInterface, "rpc result is not a module map")
	}

	pkg := domain.NewPackageInterface(id)
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if self := value.Get("name"); self.Type == gjson.String && self.String() != "" {
			name = self.String()
		}
		if _, dup := pkg.Modules[name]; dup {
			err = domain.NewFault(domain.ErrMalformedInterface, "duplicate module %q", name)
			return false
		}
		var mod domain.ModuleInterface
		mod, err = remoteModule(name, value)
		if err != nil {
			return false
		}
		pkg.Modules[name] = mod
		return true
	})
	if err != nil {
		return nil, err
	}
	return n.Canonicalize(pkg)
}

func remoteModule(name string, value gjson.Result) (domain.ModuleInterface, error) {
	mod := domain.NewModuleInterface(name)
	if !value.IsObject() {
		return mod, domain.NewFault(domain.ErrMalformedInterface, "module %s is not an object", name)
	}

	structs, err := objectField(value, "structs")
	if err != nil {
		return mod, within(err, "module %s", name)
	}
	structs.ForEach(func(key, sv gjson.Result) bool {
		sname := key.String()
		if _, dup := mod.Structs[sname]; dup {
			err = domain.NewFault(domain.ErrMalformedInterface, "module %s: duplicate struct %q", name, sname)
			return false
		}
		var s domain.StructInterface
		if s, err = remoteStruct(sv); err != nil {
			err = within(err, "%s::%s", name, sname)
			return false
		}
		mod.Structs[sname] = s
		return true
	})
	if err != nil {
		return mod, err
	}

	functions, err := objectField(value, "exposedFunctions")
	if err != nil {
		return mod, within(err, "module %s", name)
	}
	seen := make(map[string]struct{})
	functions.ForEach(func(key, fv gjson.Result) bool {
		fname := key.String()
		if _, dup := seen[fname]; dup {
			err = domain.NewFault(domain.ErrMalformedInterface, "module %s: duplicate function %q", name, fname)
			return false
		}
		seen[fname] = struct{}{}
		var (
			f       domain.FunctionInterface
			exposed bool
		)
		if f, exposed, err = remoteFunction(fv); err != nil {
			err = within(err, "%s::%s", name, fname)
			return false
		}
		if exposed {
			mod.Functions[fname] = f
		}
		return true
	})
	return mod, err
}

// objectField returns the named member of v. An absent or null member is an
// empty map; anything else must be an object.
func objectField(v gjson.Result, name string) (gjson.Result, error) {
	member := v.Get(name)
	switch {
	case !member.Exists() || member.Type == gjson.Null:
		return gjson.Result{}, nil
	case member.IsObject():
		return member, nil
	}
	return gjson.Result{}, domain.NewFault(domain.ErrMalformedInterface, "%s is not an object", name)
}

// arrayField is objectField for lists.
func arrayField(v gjson.Result, name string) ([]gjson.Result, error) {
	member := v.Get(name)
	if !member.Exists() || member.Type == gjson.Null {
		return nil, nil
	}
	if !member.IsArray() {
		return nil, domain.NewFault(domain.ErrMalformedInterface, "%s is not a list", name)
	}
	return member.Array(), nil
}

func remoteStruct(sv gjson.Result) (domain.StructInterface, error) {
	var s domain.StructInterface
	abilities, err := remoteAbilities(sv.Get("abilities.abilities"))
	if err != nil {
		return s, err
	}
	s.Abilities = abilities

	tps, err := arrayField(sv, "typeParameters")
	if err != nil {
		return s, err
	}
	s.TypeParameters = make([]domain.TypeParameter, len(tps))
	for i, tp := range tps {
		constraints, err := remoteAbilities(tp.Get("constraints.abilities"))
		if err != nil {
			return s, err
		}
		s.TypeParameters[i] = domain.TypeParameter{IsPhantom: tp.Get("isPhantom").Bool(), Constraints: constraints}
	}

	fields, err := arrayField(sv, "fields")
	if err != nil {
		return s, err
	}
	s.Fields = make([]domain.Field, len(fields))
	for i, fv := range fields {
		tv := fv.Get("type")
		if !tv.Exists() {
			return s, domain.NewFault(domain.ErrMalformedInterface, "field %d (%s) has no type", i, fv.Get("name").String())
		}
		sig, err := remoteType(tv)
		if err != nil {
			return s, err
		}
		s.Fields[i] = domain.Field{Name: fv.Get("name").String(), Type: sig}
	}
	return s, nil
}

func remoteFunction(fv gjson.Result) (domain.FunctionInterface, bool, error) {
	var f domain.FunctionInterface
	vv := fv.Get("visibility")
	if vv.Type != gjson.String {
		return f, false, domain.NewFault(domain.ErrMalformedInterface, "no declared visibility")
	}
	vis, ok := domain.ParseVisibility(vv.String())
	if !ok {
		return f, false, domain.NewFault(domain.ErrUnknownVisibilityToken, "%q", vv.String())
	}
	f.Visibility = vis
	f.IsEntry = fv.Get("isEntry").Bool()
	f.IsNative = fv.Get("isNative").Bool()
	if vis == domain.VisibilityPrivate && !f.IsEntry {
		return f, false, nil
	}

	tps, err := arrayField(fv, "typeParameters")
	if err != nil {
		return f, false, err
	}
	f.TypeParameters = make([]domain.TypeParameter, len(tps))
	for i, tp := range tps {
		constraints, err := remoteAbilities(tp.Get("abilities"))
		if err != nil {
			return f, false, err
		}
		f.TypeParameters[i] = domain.TypeParameter{Constraints: constraints}
	}

	if f.Parameters, err = remoteTypes(fv, "parameters"); err != nil {
		return f, false, err
	}
	if f.Returns, err = remoteTypes(fv, "return"); err != nil {
		return f, false, err
	}
	return f, true, nil
}

// remoteAbilities maps the PascalCase ability list. A missing list is the empty set.
func remoteAbilities(v gjson.Result) (domain.AbilitySet, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return 0, nil
	}
	if !v.IsArray() {
		return 0, domain.NewFault(domain.ErrUnknownAbilityToken, "abilities %s", v.Raw)
	}
	var set domain.AbilitySet
	for _, tok := range v.Array() {
		a, ok := domain.ParseAbility(tok.String())
		if tok.Type != gjson.String || !ok {
			return 0, domain.NewFault(domain.ErrUnknownAbilityToken, "%s", tok.Raw)
		}
		set = set.With(a)
	}
	return set, nil
}

func remoteTypes(v gjson.Result, name string) ([]domain.TypeSignature, error) {
	items, err := arrayField(v, name)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TypeSignature, len(items))
	for i, item := range items {
		sig, err := remoteType(item)
		if err != nil {
			return nil, err
		}
		out[i] = sig
	}
	return out, nil
}

func remoteType(v gjson.Result) (domain.TypeSignature, error) {
	if v.Type == gjson.String {
		prim, ok := domain.CanonicalPrimitive(v.String())
		if !ok {
			return domain.TypeSignature{}, domain.NewFault(domain.ErrMalformedInterface, "unknown primitive %q", v.String())
		}
		return domain.Primitive(prim), nil
	}
	if !v.IsObject() {
		return domain.TypeSignature{}, domain.NewFault(domain.ErrMalformedInterface, "type value %s", v.Raw)
	}

	for _, variant := range []string{"Struct", "Vector", "Reference", "MutableReference", "TypeParameter"} {
		inner := v.Get(variant)
		if !inner.Exists() {
			continue
		}
		switch variant {
		case "Struct":
			return remoteStructType(inner)
		case "TypeParameter":
			// Only plain non-negative integers; 1.5, -1 and 1e0 are rejected.
			raw, err := strconv.ParseUint(inner.Raw, 10, 64)
			if inner.Type != gjson.Number || err != nil {
				return domain.TypeSignature{}, domain.NewFault(domain.ErrMalformedInterface, "type parameter %s", inner.Raw)
			}
			idx, err := safecast.Conv[int](raw)
			if err != nil {
				return domain.TypeSignature{}, domain.WrapFault(domain.ErrMalformedInterface, err, "type parameter %s", inner.Raw)
			}
			return domain.TypeParam(idx), nil
		default:
			elem, err := remoteType(inner)
			if err != nil {
				return domain.TypeSignature{}, err
			}
			if variant == "Vector" {
				return domain.Vector(elem), nil
			}
			return domain.Reference(elem, variant == "MutableReference"), nil
		}
	}
	return domain.TypeSignature{}, domain.NewFault(domain.ErrMalformedInterface, "type value %s", v.Raw)
}

func remoteStructType(v gjson.Result) (domain.TypeSignature, error) {
	addr, err := domain.NormalizeAddress(v.Get("address").String())
	if err != nil {
		return domain.TypeSignature{}, domain.NewFault(domain.ErrMalformedInterface, "struct address %s", v.Get("address").Raw)
	}
	module, name := v.Get("module").String(), v.Get("name").String()
	if module == "" || name == "" {
		return domain.TypeSignature{}, domain.NewFault(domain.ErrMalformedInterface, "struct type %s", v.Raw)
	}
	args, err := remoteTypes(v, "typeArguments")
	if err != nil {
		return domain.TypeSignature{}, err
	}
	return domain.StructType(addr, module, name, args...), nil
}
