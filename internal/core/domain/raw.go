package domain

import "encoding/json"

// RawLocalPackage is the document produced by the local bytecode extractor.
type RawLocalPackage struct {
	// OriginalID is the address the package was first published at.
	// Upgraded packages keep their modules under this address.
	OriginalID string           `json:"original_id,omitempty"`
	Stats      *ExtractorStats  `json:"stats,omitempty"`
	Modules    []RawLocalModule `json:"modules"`
}

// ExtractorStats carries optional bookkeeping reported by the extractor.
type ExtractorStats struct {
	BytecodeModules int   `json:"bytecode_modules"`
	BytecodeBytes   int64 `json:"bytecode_bytes"`
	ElapsedMillis   int64 `json:"elapsed_ms,omitempty"`
}

// RawLocalModule is one module as decoded from a .mv file.
type RawLocalModule struct {
	Address   string             `json:"address"`
	Name      string             `json:"name"`
	Structs   []RawLocalStruct   `json:"structs"`
	Functions []RawLocalFunction `json:"functions"`
}

// RawLocalStruct is a struct declaration. Abilities are either a bit mask or a token list.
type RawLocalStruct struct {
	Name       string              `json:"name"`
	Abilities  json.RawMessage     `json:"abilities,omitempty"`
	TypeParams []RawLocalTypeParam `json:"type_params,omitempty"`
	Fields     []RawLocalField     `json:"fields,omitempty"`
	Synthetic  bool                `json:"synthetic,omitempty"`
}

// RawLocalTypeParam is a named generic parameter.
type RawLocalTypeParam struct {
	Name        string          `json:"name,omitempty"`
	Phantom     bool            `json:"phantom,omitempty"`
	Constraints json.RawMessage `json:"constraints,omitempty"`
}

// RawLocalField is a field whose type is written in Move syntax.
type RawLocalField struct {
	Name string  `json:"name"`
	Type *string `json:"type"`
}

// RawLocalFunction is a function declaration with Move-syntax signatures.
type RawLocalFunction struct {
	Name       string              `json:"name"`
	Visibility *string             `json:"visibility"`
	IsEntry    bool                `json:"is_entry,omitempty"`
	IsNative   bool                `json:"is_native,omitempty"`
	Synthetic  bool                `json:"synthetic,omitempty"`
	TypeParams []RawLocalTypeParam `json:"type_params,omitempty"`
	Params     []string            `json:"params,omitempty"`
	Returns    []string            `json:"returns,omitempty"`
}

// RawRemotePackage is the JSON "result" object of the normalized-modules RPC,
// keyed by module name.
type RawRemotePackage []byte
