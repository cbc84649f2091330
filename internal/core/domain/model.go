package domain

import (
	"maps"
	"slices"
)

// TypeParameter is a positional generic parameter of a struct or function.
// Function type parameters are never phantom.
type TypeParameter struct {
	IsPhantom   bool       `json:"is_phantom"`
	Constraints AbilitySet `json:"constraints"`
}

// Field is a positional struct field.
type Field struct {
	Name string        `json:"name"`
	Type TypeSignature `json:"type"`
}

// Equal reports whether both fields share name and type.
func (f Field) Equal(other Field) bool {
	return f.Name == other.Name && f.Type.Equal(other.Type)
}

// StructInterface is the public shape of a struct declaration.
type StructInterface struct {
	Abilities      AbilitySet      `json:"abilities"`
	TypeParameters []TypeParameter `json:"type_parameters"`
	Fields         []Field         `json:"fields"`
}

// Equal reports deep equality.
func (s StructInterface) Equal(other StructInterface) bool {
	return s.Abilities == other.Abilities &&
		slices.Equal(s.TypeParameters, other.TypeParameters) &&
		slices.EqualFunc(s.Fields, other.Fields, Field.Equal)
}

// Clone returns a deep copy.
func (s StructInterface) Clone() StructInterface {
	out := StructInterface{
		Abilities:      s.Abilities,
		TypeParameters: slices.Clone(s.TypeParameters),
	}
	if s.Fields != nil {
		out.Fields = make([]Field, len(s.Fields))
		for i, f := range s.Fields {
			out.Fields[i] = Field{Name: f.Name, Type: f.Type.Clone()}
		}
	}
	return out
}

// FunctionInterface is the exposed signature of a function.
// Native functions carry nothing beyond their signature.
type FunctionInterface struct {
	Visibility     Visibility      `json:"visibility"`
	IsEntry        bool            `json:"is_entry"`
	IsNative       bool            `json:"is_native"`
	TypeParameters []TypeParameter `json:"type_parameters"`
	Parameters     []TypeSignature `json:"parameters"`
	Returns        []TypeSignature `json:"returns"`
}

// Equal reports deep equality.
func (f FunctionInterface) Equal(other FunctionInterface) bool {
	return f.Visibility == other.Visibility &&
		f.IsEntry == other.IsEntry &&
		f.IsNative == other.IsNative &&
		slices.Equal(f.TypeParameters, other.TypeParameters) &&
		slices.EqualFunc(f.Parameters, other.Parameters, TypeSignature.Equal) &&
		slices.EqualFunc(f.Returns, other.Returns, TypeSignature.Equal)
}

// Clone returns a deep copy.
func (f FunctionInterface) Clone() FunctionInterface {
	out := f
	out.TypeParameters = slices.Clone(f.TypeParameters)
	out.Parameters = cloneSignatures(f.Parameters)
	out.Returns = cloneSignatures(f.Returns)
	return out
}

func cloneSignatures(in []TypeSignature) []TypeSignature {
	if in == nil {
		return nil
	}
	out := make([]TypeSignature, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

// ModuleInterface groups the structs and exposed functions of one module.
type ModuleInterface struct {
	Name      string                       `json:"name"`
	Structs   map[string]StructInterface   `json:"structs"`
	Functions map[string]FunctionInterface `json:"functions"`
}

// NewModuleInterface returns an empty module with initialized maps.
func NewModuleInterface(name string) ModuleInterface {
	return ModuleInterface{
		Name:      name,
		Structs:   make(map[string]StructInterface),
		Functions: make(map[string]FunctionInterface),
	}
}

// StructNames returns struct names in lexicographic order.
func (m ModuleInterface) StructNames() []string {
	return slices.Sorted(maps.Keys(m.Structs))
}

// FunctionNames returns function names in lexicographic order.
func (m ModuleInterface) FunctionNames() []string {
	return slices.Sorted(maps.Keys(m.Functions))
}

// Equal reports deep equality.
func (m ModuleInterface) Equal(other ModuleInterface) bool {
	return m.Name == other.Name &&
		maps.EqualFunc(m.Structs, other.Structs, StructInterface.Equal) &&
		maps.EqualFunc(m.Functions, other.Functions, FunctionInterface.Equal)
}

// Clone returns a deep copy.
func (m ModuleInterface) Clone() ModuleInterface {
	out := ModuleInterface{
		Name:      m.Name,
		Structs:   make(map[string]StructInterface, len(m.Structs)),
		Functions: make(map[string]FunctionInterface, len(m.Functions)),
	}
	for name, s := range m.Structs {
		out.Structs[name] = s.Clone()
	}
	for name, f := range m.Functions {
		out.Functions[name] = f.Clone()
	}
	return out
}

// PackageInterface is the canonical public surface of a package.
type PackageInterface struct {
	ID      PackageID                  `json:"package_id"`
	Modules map[string]ModuleInterface `json:"modules"`
}

// NewPackageInterface returns an empty package interface.
func NewPackageInterface(id PackageID) *PackageInterface {
	return &PackageInterface{ID: id, Modules: make(map[string]ModuleInterface)}
}

// ModuleNames returns module names in lexicographic order.
func (p *PackageInterface) ModuleNames() []string {
	return slices.Sorted(maps.Keys(p.Modules))
}

// Equal reports deep equality.
func (p *PackageInterface) Equal(other *PackageInterface) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID && maps.EqualFunc(p.Modules, other.Modules, ModuleInterface.Equal)
}

// Clone returns a deep copy.
func (p *PackageInterface) Clone() *PackageInterface {
	if p == nil {
		return nil
	}
	out := &PackageInterface{ID: p.ID, Modules: make(map[string]ModuleInterface, len(p.Modules))}
	for name, m := range p.Modules {
		out.Modules[name] = m.Clone()
	}
	return out
}

// InterfaceCounts summarizes the size of an interface.
type InterfaceCounts struct {
	Modules   int `json:"modules"`
	Structs   int `json:"structs"`
	Functions int `json:"functions"`
}

// Counts returns the number of modules, structs and functions.
func (p *PackageInterface) Counts() InterfaceCounts {
	c := InterfaceCounts{Modules: len(p.Modules)}
	for _, m := range p.Modules {
		c.Structs += len(m.Structs)
		c.Functions += len(m.Functions)
	}
	return c
}
