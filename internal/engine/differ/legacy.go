package differ

import (
	"go.trai.ch/moveiface/internal/core/domain"
)

// Legacy summary keys. "other" is the remote side, "self" the local one.
const (
	LegacyFunctionMissingOther = "function_missing_other"
	LegacyFunctionMissingSelf  = "function_missing_self"
	LegacyFunctionMismatch     = "function_mismatch"
	LegacyStructMissingOther   = "struct_missing_other"
	LegacyStructMissingSelf    = "struct_missing_self"
	LegacyStructMismatch       = "struct_mismatch"
)

// LegacyView is the compact per-package projection of a Result.
type LegacyView struct {
	ModulesMissingLocal []string
	ModulesMissingRPC   []string
	ModulesWithDiffs    []string
	Summary             map[string]int
}

// Legacy projects r onto the inventory verifier's summary. Mismatches are
// counted once per entity, not once per discrepancy. Only keys with a nonzero
// count are present.
func Legacy(r *Result) LegacyView {
	view := LegacyView{
		ModulesMissingLocal: append([]string{}, r.Modules.ExtraInRight...),
		ModulesMissingRPC:   append([]string{}, r.Modules.MissingInRight...),
		ModulesWithDiffs:    append([]string{}, r.Modules.WithDiffs...),
		Summary:             map[string]int{},
	}

	mismatched := make(map[entity]struct{})
	for _, m := range r.Mismatches {
		if m.Kind == domain.EntityModule {
			continue
		}
		fn := m.Kind == domain.EntityFunction
		switch m.Category {
		case domain.CategoryMissingInRight:
			view.Summary[pick(fn, LegacyFunctionMissingOther, LegacyStructMissingOther)]++
		case domain.CategoryExtraInRight:
			view.Summary[pick(fn, LegacyFunctionMissingSelf, LegacyStructMissingSelf)]++
		default:
			e := entity{m.Module, m.Kind, m.Entity}
			if _, seen := mismatched[e]; seen {
				continue
			}
			mismatched[e] = struct{}{}
			view.Summary[pick(fn, LegacyFunctionMismatch, LegacyStructMismatch)]++
		}
	}
	return view
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
