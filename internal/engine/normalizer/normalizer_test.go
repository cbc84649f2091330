package normalizer_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/engine/normalizer"
)

var framework = domain.MustParsePackageID("0x2")

func loadLocal(t *testing.T, name string) *domain.RawLocalPackage {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	var raw domain.RawLocalPackage
	require.NoError(t, json.Unmarshal(data, &raw))
	return &raw
}

func loadRemote(t *testing.T, name string) domain.RawRemotePackage {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestNormalize_BothSidesAgree(t *testing.T) {
	n := normalizer.New()

	local, err := n.NormalizeLocal(framework, loadLocal(t, "coin_local.json"))
	require.NoError(t, err)
	remote, err := n.NormalizeRemote(framework, loadRemote(t, "coin_rpc.json"))
	require.NoError(t, err)

	assert.Equal(t, []string{"coin", "math"}, local.ModuleNames())
	assert.True(t, local.Equal(remote))
}

func TestNormalizeLocal_ExposedSurface(t *testing.T) {
	pkg, err := normalizer.New().NormalizeLocal(framework, loadLocal(t, "coin_local.json"))
	require.NoError(t, err)

	coin := pkg.Modules["coin"]
	assert.Equal(t, []string{"mint_and_transfer", "split", "value"}, coin.FunctionNames())
	assert.NotContains(t, pkg.Modules, "option", "dependency modules are dropped")

	split := coin.Functions["split"]
	sui := framework.String()
	assert.Equal(t, "&mut "+sui+"::coin::Coin<T0>", split.Parameters[0].String())
	assert.Equal(t, sui+"::coin::Coin<T0>", split.Returns[0].String())

	cs := coin.Structs["Coin"]
	assert.Equal(t, domain.NewAbilitySet(domain.AbilityStore, domain.AbilityKey), cs.Abilities)
	require.Len(t, cs.TypeParameters, 1)
	assert.True(t, cs.TypeParameters[0].IsPhantom)

	assert.True(t, pkg.Modules["math"].Functions["max"].IsNative)
}

func TestNormalizeLocal_Failures(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name string
		raw  *domain.RawLocalPackage
		want error
	}{
		{
			name: "unknown ability token",
			raw: &domain.RawLocalPackage{Modules: []domain.RawLocalModule{{
				Address: "0x2", Name: "m",
				Structs: []domain.RawLocalStruct{{Name: "S", Abilities: json.RawMessage(`["clone"]`)}},
			}}},
			want: domain.ErrUnknownAbilityToken,
		},
		{
			name: "ability bits out of range",
			raw: &domain.RawLocalPackage{Modules: []domain.RawLocalModule{{
				Address: "0x2", Name: "m",
				Structs: []domain.RawLocalStruct{{Name: "S", Abilities: json.RawMessage(`16`)}},
			}}},
			want: domain.ErrUnknownAbilityToken,
		},
		{
			name: "missing visibility",
			raw: &domain.RawLocalPackage{Modules: []domain.RawLocalModule{{
				Address: "0x2", Name: "m",
				Functions: []domain.RawLocalFunction{{Name: "f"}},
			}}},
			want: domain.ErrMalformedInterface,
		},
		{
			name: "unknown visibility",
			raw: &domain.RawLocalPackage{Modules: []domain.RawLocalModule{{
				Address: "0x2", Name: "m",
				Functions: []domain.RawLocalFunction{{Name: "f", Visibility: str("internal")}},
			}}},
			want: domain.ErrUnknownVisibilityToken,
		},
		{
			name: "field without type",
			raw: &domain.RawLocalPackage{Modules: []domain.RawLocalModule{{
				Address: "0x2", Name: "m",
				Structs: []domain.RawLocalStruct{{Name: "S", Fields: []domain.RawLocalField{{Name: "x"}}}},
			}}},
			want: domain.ErrMalformedInterface,
		},
		{
			name: "unresolved type parameter name",
			raw: &domain.RawLocalPackage{Modules: []domain.RawLocalModule{{
				Address: "0x2", Name: "m",
				Functions: []domain.RawLocalFunction{{Name: "f", Visibility: str("public"), Params: []string{"vector<U>"}}},
			}}},
			want: domain.ErrMalformedInterface,
		},
		{
			name: "only dependency modules",
			raw: &domain.RawLocalPackage{OriginalID: "0x5", Modules: []domain.RawLocalModule{{
				Address: "0x2", Name: "m",
			}}},
			want: domain.ErrPackageModulesNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizer.New().NormalizeLocal(framework, tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNormalizeLocal_UpgradedPackageUsesOriginalID(t *testing.T) {
	upgraded := domain.MustParsePackageID("0xabc")
	raw := &domain.RawLocalPackage{
		OriginalID: "0x0000000000000000000000000000000000000000000000000000000000000def",
		Modules: []domain.RawLocalModule{
			{Address: "0xdef", Name: "vault"},
			{Address: "0x2", Name: "coin"},
		},
	}

	pkg, err := normalizer.New().NormalizeLocal(upgraded, raw)
	require.NoError(t, err)
	assert.Equal(t, upgraded, pkg.ID)
	assert.Equal(t, []string{"vault"}, pkg.ModuleNames())
}

func TestNormalizeRemote_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"not json", `{`, domain.ErrMalformedInterface},
		{"not an object", `[1]`, domain.ErrMalformedInterface},
		{
			"unknown ability",
			`{"m":{"structs":{"S":{"abilities":{"abilities":["Clone"]},"fields":[]}}}}`,
			domain.ErrUnknownAbilityToken,
		},
		{
			"missing visibility",
			`{"m":{"exposedFunctions":{"f":{"isEntry":false,"parameters":[],"return":[]}}}}`,
			domain.ErrMalformedInterface,
		},
		{
			"unknown visibility",
			`{"m":{"exposedFunctions":{"f":{"visibility":"Internal"}}}}`,
			domain.ErrUnknownVisibilityToken,
		},
		{
			"type parameter out of range",
			`{"m":{"exposedFunctions":{"f":{"visibility":"Public","typeParameters":[],"parameters":[{"TypeParameter":0}],"return":[]}}}}`,
			domain.ErrMalformedInterface,
		},
		{
			"unknown type variant",
			`{"m":{"exposedFunctions":{"f":{"visibility":"Public","parameters":[{"Tuple":[]}],"return":[]}}}}`,
			domain.ErrMalformedInterface,
		},
		{"structs as a list", `{"m":{"structs":[{"fields":[]}]}}`, domain.ErrMalformedInterface},
		{"functions as a list", `{"m":{"exposedFunctions":[{"visibility":"Public"}]}}`, domain.ErrMalformedInterface},
		{
			"duplicate struct",
			`{"m":{"structs":{"S":{"fields":[]},"S":{"abilities":{"abilities":["Key"]},"fields":[]}}}}`,
			domain.ErrMalformedInterface,
		},
		{
			"duplicate function",
			`{"m":{"exposedFunctions":{"f":{"visibility":"Public"},"f":{"visibility":"Friend"}}}}`,
			domain.ErrMalformedInterface,
		},
		{"fields as an object", `{"m":{"structs":{"S":{"fields":{"a":"U8"}}}}}`, domain.ErrMalformedInterface},
		{
			"parameters as a string",
			`{"m":{"exposedFunctions":{"f":{"visibility":"Public","parameters":"U64","return":[]}}}}`,
			domain.ErrMalformedInterface,
		},
		{
			"fractional type parameter",
			`{"m":{"exposedFunctions":{"f":{"visibility":"Public","typeParameters":[{"abilities":[]},{"abilities":[]}],"parameters":[{"TypeParameter":1.5}],"return":[]}}}}`,
			domain.ErrMalformedInterface,
		},
		{
			"negative type parameter",
			`{"m":{"exposedFunctions":{"f":{"visibility":"Public","typeParameters":[{"abilities":[]}],"parameters":[{"TypeParameter":-1}],"return":[]}}}}`,
			domain.ErrMalformedInterface,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizer.New().NormalizeRemote(framework, domain.RawRemotePackage(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNormalizeRemote_MissingAbilitiesIsEmptySet(t *testing.T) {
	raw := `{"m":{"structs":{
		"A":{"fields":[]},
		"B":{"abilities":{"abilities":[]},"fields":[]}
	}}}`

	pkg, err := normalizer.New().NormalizeRemote(framework, domain.RawRemotePackage(raw))
	require.NoError(t, err)

	mod := pkg.Modules["m"]
	assert.True(t, mod.Structs["A"].Abilities.IsEmpty())
	assert.True(t, mod.Structs["A"].Equal(mod.Structs["B"]))
}

func TestCanonicalize_IsFixedPoint(t *testing.T) {
	n := normalizer.New()
	pkg, err := n.NormalizeLocal(framework, loadLocal(t, "coin_local.json"))
	require.NoError(t, err)

	once, err := n.Canonicalize(pkg)
	require.NoError(t, err)
	twice, err := n.Canonicalize(once)
	require.NoError(t, err)

	assert.True(t, pkg.Equal(once))
	assert.Equal(t, once, twice)
}

func TestCanonicalize_RewritesShortAddresses(t *testing.T) {
	pkg := domain.NewPackageInterface(framework)
	mod := domain.NewModuleInterface("m")
	mod.Functions["f"] = domain.FunctionInterface{
		Visibility: domain.VisibilityPublic,
		Parameters: []domain.TypeSignature{domain.StructType("0x2", "object", "ID")},
	}
	pkg.Modules["m"] = mod

	out, err := normalizer.New().Canonicalize(pkg)
	require.NoError(t, err)
	assert.Equal(t, framework.String(), out.Modules["m"].Functions["f"].Parameters[0].Address)
	assert.Equal(t, "0x2", pkg.Modules["m"].Functions["f"].Parameters[0].Address, "input is not mutated")
}
