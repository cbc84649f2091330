package normalizer

import (
	"bytes"
	"encoding/json"
	"slices"

	"go.trai.ch/moveiface/internal/core/domain"
)

// NormalizeLocal converts the local extractor output into the canonical model.
//
// Only modules published at the package's original address are kept, so the
// dependency modules bundled with upgraded packages are dropped. Synthetic entries
// and private non-entry functions are not part of the exposed interface.
func (n *Normalizer) NormalizeLocal(id domain.PackageID, raw *domain.RawLocalPackage) (*domain.PackageInterface, error) {
	if raw == nil {
		return nil, domain.NewFault(domain.ErrMalformedInterface, "empty local description")
	}

	self := id.String()
	if raw.OriginalID != "" {
		orig, err := domain.NormalizeAddress(raw.OriginalID)
		if err != nil {
			return nil, domain.NewFault(domain.ErrMalformedInterface, "original id %q is not an address", raw.OriginalID)
		}
		self = orig
	}

	pkg := domain.NewPackageInterface(id)
	var seenAddrs []string
	for i := range raw.Modules {
		rm := &raw.Modules[i]
		addr, err := domain.NormalizeAddress(rm.Address)
		if err != nil {
			return nil, domain.NewFault(domain.ErrMalformedInterface, "module %q has invalid address %q", rm.Name, rm.Address)
		}
		if addr != self {
			if !slices.Contains(seenAddrs, addr) {
				seenAddrs = append(seenAddrs, addr)
			}
			continue
		}
		if rm.Name == "" {
			return nil, domain.NewFault(domain.ErrMalformedInterface, "module without name")
		}
		if _, dup := pkg.Modules[rm.Name]; dup {
			return nil, domain.NewFault(domain.ErrMalformedInterface, "duplicate module %q", rm.Name)
		}
		mod, err := n.localModule(rm)
		if err != nil {
			return nil, err
		}
		pkg.Modules[rm.Name] = mod
	}

	if len(pkg.Modules) == 0 {
		return nil, domain.WrapFault(domain.ErrPackageModulesNotFound, domain.ErrMalformedInterface,
			"package_addr=%s, addrs_before=%v", self, seenAddrs)
	}
	return n.Canonicalize(pkg)
}

func (n *Normalizer) localModule(rm *domain.RawLocalModule) (domain.ModuleInterface, error) {
	mod := domain.NewModuleInterface(rm.Name)

	for i := range rm.Structs {
		rs := &rm.Structs[i]
		if rs.Synthetic {
			continue
		}
		if rs.Name == "" {
			return mod, domain.NewFault(domain.ErrMalformedInterface, "module %s: struct without name", rm.Name)
		}
		if _, dup := mod.Structs[rs.Name]; dup {
			return mod, domain.NewFault(domain.ErrMalformedInterface, "module %s: duplicate struct %q", rm.Name, rs.Name)
		}
		s, err := localStruct(rs)
		if err != nil {
			return mod, within(err, "%s::%s", rm.Name, rs.Name)
		}
		mod.Structs[rs.Name] = s
	}

	for i := range rm.Functions {
		rf := &rm.Functions[i]
		if rf.Synthetic {
			continue
		}
		if rf.Name == "" {
			return mod, domain.NewFault(domain.ErrMalformedInterface, "module %s: function without name", rm.Name)
		}
		if _, dup := mod.Functions[rf.Name]; dup {
			return mod, domain.NewFault(domain.ErrMalformedInterface, "module %s: duplicate function %q", rm.Name, rf.Name)
		}
		f, exposed, err := localFunction(rf)
		if err != nil {
			return mod, within(err, "%s::%s", rm.Name, rf.Name)
		}
		if exposed {
			mod.Functions[rf.Name] = f
		}
	}
	return mod, nil
}

func localStruct(rs *domain.RawLocalStruct) (domain.StructInterface, error) {
	var s domain.StructInterface
	abilities, err := parseLocalAbilities(rs.Abilities)
	if err != nil {
		return s, err
	}
	s.Abilities = abilities

	params, names, err := localTypeParams(rs.TypeParams, true)
	if err != nil {
		return s, err
	}
	s.TypeParameters = params

	s.Fields = make([]domain.Field, 0, len(rs.Fields))
	for i, rf := range rs.Fields {
		if rf.Type == nil {
			return s, domain.NewFault(domain.ErrMalformedInterface, "field %d (%s) has no type", i, rf.Name)
		}
		sig, err := parseMoveType(*rf.Type, names)
		if err != nil {
			return s, err
		}
		s.Fields = append(s.Fields, domain.Field{Name: rf.Name, Type: sig})
	}
	return s, nil
}

// localFunction reports exposed=false for private non-entry functions.
func localFunction(rf *domain.RawLocalFunction) (domain.FunctionInterface, bool, error) {
	var f domain.FunctionInterface
	if rf.Visibility == nil {
		return f, false, domain.NewFault(domain.ErrMalformedInterface, "no declared visibility")
	}
	vis, ok := domain.ParseVisibility(*rf.Visibility)
	if !ok {
		return f, false, domain.NewFault(domain.ErrUnknownVisibilityToken, "%q", *rf.Visibility)
	}
	f.Visibility = vis
	f.IsEntry = rf.IsEntry
	f.IsNative = rf.IsNative
	if vis == domain.VisibilityPrivate && !rf.IsEntry {
		return f, false, nil
	}

	params, names, err := localTypeParams(rf.TypeParams, false)
	if err != nil {
		return f, false, err
	}
	f.TypeParameters = params

	if f.Parameters, err = parseMoveTypes(rf.Params, names); err != nil {
		return f, false, err
	}
	if f.Returns, err = parseMoveTypes(rf.Returns, names); err != nil {
		return f, false, err
	}
	return f, true, nil
}

func localTypeParams(raw []domain.RawLocalTypeParam, allowPhantom bool) ([]domain.TypeParameter, []string, error) {
	params := make([]domain.TypeParameter, len(raw))
	names := make([]string, len(raw))
	for i, rp := range raw {
		constraints, err := parseLocalAbilities(rp.Constraints)
		if err != nil {
			return nil, nil, err
		}
		params[i] = domain.TypeParameter{IsPhantom: allowPhantom && rp.Phantom, Constraints: constraints}
		names[i] = rp.Name
	}
	return params, names, nil
}

func parseMoveTypes(srcs []string, names []string) ([]domain.TypeSignature, error) {
	out := make([]domain.TypeSignature, len(srcs))
	for i, src := range srcs {
		sig, err := parseMoveType(src, names)
		if err != nil {
			return nil, err
		}
		out[i] = sig
	}
	return out, nil
}

// parseLocalAbilities accepts a Move AbilitySet bit mask or a list of tokens.
// An absent value is the empty set.
func parseLocalAbilities(raw json.RawMessage) (domain.AbilitySet, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, nil
	}

	if trimmed[0] == '[' {
		var tokens []string
		if err := json.Unmarshal(trimmed, &tokens); err != nil {
			return 0, domain.WrapFault(domain.ErrUnknownAbilityToken, err, "abilities %s", trimmed)
		}
		return abilitySetFromTokens(tokens)
	}

	var bits uint64
	if err := json.Unmarshal(trimmed, &bits); err != nil {
		return 0, domain.WrapFault(domain.ErrUnknownAbilityToken, err, "abilities %s", trimmed)
	}
	set, ok := domain.AbilitySetFromBits(bits)
	if !ok {
		return 0, domain.NewFault(domain.ErrUnknownAbilityToken, "ability bits %#x", bits)
	}
	return set, nil
}

func abilitySetFromTokens(tokens []string) (domain.AbilitySet, error) {
	var set domain.AbilitySet
	for _, tok := range tokens {
		a, ok := domain.ParseAbility(tok)
		if !ok {
			return 0, domain.NewFault(domain.ErrUnknownAbilityToken, "%q", tok)
		}
		set = set.With(a)
	}
	return set, nil
}
