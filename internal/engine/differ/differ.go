// Package differ computes the categorized structural diff of two canonical
// package interfaces.
package differ

import (
	"slices"

	"go.trai.ch/moveiface/internal/core/domain"
)

// Result is the outcome of comparing the local (left) and remote (right)
// interface of one package.
type Result struct {
	PackageID  domain.PackageID
	Modules    domain.ModuleDiff
	Mismatches []domain.Mismatch
	Summary    domain.DiffSummary
}

// OK reports whether both interfaces agree.
func (r *Result) OK() bool {
	return len(r.Mismatches) == 0
}

// Differ compares canonical package interfaces. It never mutates its inputs.
type Differ struct{}

// New creates a new Differ.
func New() *Differ {
	return &Differ{}
}

// Diff compares left against right. Both must describe the same package.
func (d *Differ) Diff(left, right *domain.PackageInterface) (*Result, error) {
	if left == nil || right == nil {
		return nil, domain.NewFault(domain.ErrDiffInternal, "nil interface")
	}
	if left.ID != right.ID {
		return nil, domain.NewFault(domain.ErrDiffInternal, "comparing %s against %s", left.ID, right.ID)
	}

	c := &collector{}
	res := &Result{
		PackageID: left.ID,
		Modules: domain.ModuleDiff{
			MissingInRight: []string{},
			ExtraInRight:   []string{},
			Common:         []string{},
			WithDiffs:      []string{},
		},
	}

	for _, name := range left.ModuleNames() {
		lm := left.Modules[name]
		rm, ok := right.Modules[name]
		if !ok {
			res.Modules.MissingInRight = append(res.Modules.MissingInRight, name)
			c.add(domain.Mismatch{Category: domain.CategoryMissingInRight, Module: name, Kind: domain.EntityModule})
			continue
		}
		res.Modules.Common = append(res.Modules.Common, name)
		before := len(c.mismatches)
		c.module(name, lm, rm)
		if len(c.mismatches) > before {
			res.Modules.WithDiffs = append(res.Modules.WithDiffs, name)
		}
	}
	for _, name := range right.ModuleNames() {
		if _, ok := left.Modules[name]; !ok {
			res.Modules.ExtraInRight = append(res.Modules.ExtraInRight, name)
			c.add(domain.Mismatch{Category: domain.CategoryExtraInRight, Module: name, Kind: domain.EntityModule})
		}
	}

	slices.SortStableFunc(c.mismatches, domain.CompareMismatches)
	res.Mismatches = c.mismatches
	res.Summary = make(domain.DiffSummary)
	for _, m := range res.Mismatches {
		res.Summary[m.Category]++
	}
	return res, nil
}

type collector struct {
	mismatches []domain.Mismatch
}

//nolint:gocritic // Mismatch is built inline at every call site
func (c *collector) add(m domain.Mismatch) {
	c.mismatches = append(c.mismatches, m)
}

func (c *collector) module(name string, left, right domain.ModuleInterface) {
	for _, sname := range left.StructNames() {
		rs, ok := right.Structs[sname]
		if !ok {
			c.add(domain.Mismatch{Category: domain.CategoryMissingInRight, Module: name, Kind: domain.EntityStruct, Entity: sname})
			continue
		}
		c.structs(entity{name, domain.EntityStruct, sname}, left.Structs[sname], rs)
	}
	for _, sname := range right.StructNames() {
		if _, ok := left.Structs[sname]; !ok {
			c.add(domain.Mismatch{Category: domain.CategoryExtraInRight, Module: name, Kind: domain.EntityStruct, Entity: sname})
		}
	}

	for _, fname := range left.FunctionNames() {
		rf, ok := right.Functions[fname]
		if !ok {
			c.add(domain.Mismatch{Category: domain.CategoryMissingInRight, Module: name, Kind: domain.EntityFunction, Entity: fname})
			continue
		}
		c.functions(entity{name, domain.EntityFunction, fname}, left.Functions[fname], rf)
	}
	for _, fname := range right.FunctionNames() {
		if _, ok := left.Functions[fname]; !ok {
			c.add(domain.Mismatch{Category: domain.CategoryExtraInRight, Module: name, Kind: domain.EntityFunction, Entity: fname})
		}
	}
}
