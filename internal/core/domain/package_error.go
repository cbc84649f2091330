package domain

import (
	"errors"
	"fmt"
)

// Stage identifies the pipeline step a package failed in.
type Stage string

// Pipeline stages in execution order.
const (
	StageInput          Stage = "input"
	StageLocal          Stage = "local"
	StageNormalizeLocal Stage = "normalize_local"
	StageRPC            Stage = "rpc"
	StageNormalizeRPC   Stage = "normalize_rpc"
	StageDiff           Stage = "diff"
)

// ErrorKind is the typed classification of a per-package failure.
type ErrorKind string

// Error kinds.
const (
	KindInvalidID         ErrorKind = "invalid_id"
	KindNotFound          ErrorKind = "not_found"
	KindDecode            ErrorKind = "decode"
	KindTranslationPanic  ErrorKind = "translation_panic"
	KindTimeout           ErrorKind = "timeout"
	KindNetwork           ErrorKind = "network"
	KindRateLimited       ErrorKind = "rate_limited"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindUnknownAbility    ErrorKind = "unknown_ability"
	KindUnknownVisibility ErrorKind = "unknown_visibility"
	KindMalformed         ErrorKind = "malformed_interface"
	KindInternal          ErrorKind = "internal"
	KindOther             ErrorKind = "other"
)

var kindBySentinel = []struct {
	sentinel error
	kind     ErrorKind
}{
	{ErrInvalidPackageID, KindInvalidID},
	{ErrExtractionNotFound, KindNotFound},
	{ErrRPCNotFound, KindNotFound},
	{ErrPackageModulesNotFound, KindNotFound},
	{ErrExtractionDecode, KindDecode},
	{ErrTranslationPanic, KindTranslationPanic},
	{ErrExtractionTimeout, KindTimeout},
	{ErrRPCTimeout, KindTimeout},
	{ErrRPCNetwork, KindNetwork},
	{ErrRPCRateLimited, KindRateLimited},
	{ErrRPCMalformed, KindMalformedResponse},
	{ErrUnknownAbilityToken, KindUnknownAbility},
	{ErrUnknownVisibilityToken, KindUnknownVisibility},
	{ErrMalformedInterface, KindMalformed},
	{ErrDiffInternal, KindInternal},
	{ErrStagePanic, KindInternal},
}

// ClassifyError maps err onto an ErrorKind using the sentinels in its chain.
func ClassifyError(err error) ErrorKind {
	for _, entry := range kindBySentinel {
		if errors.Is(err, entry.sentinel) {
			return entry.kind
		}
	}
	return KindOther
}

// PackageError is a recoverable failure of one package at one stage.
type PackageError struct {
	Stage Stage
	Kind  ErrorKind
	Err   error
}

// NewPackageError classifies err and attaches the stage it happened in.
func NewPackageError(stage Stage, err error) *PackageError {
	return &PackageError{Stage: stage, Kind: ClassifyError(err), Err: err}
}

func (e *PackageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *PackageError) Unwrap() error {
	return e.Err
}

// Record returns the serializable form of the error.
func (e *PackageError) Record() *ErrorRecord {
	return &ErrorRecord{Stage: e.Stage, Kind: e.Kind, Message: e.Err.Error()}
}

// ErrorRecord is the error attached to a report record.
type ErrorRecord struct {
	Stage   Stage     `json:"stage"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// legacyPrefixes mirrors the error prefixes of the inventory verifier output.
var legacyPrefixes = map[Stage]string{
	StageInput:          "invalid_object_id",
	StageLocal:          "local_compiled_modules_error",
	StageRPC:            "rpc_normalized_modules_error",
	StageNormalizeLocal: "local_inventory_parse_error",
	StageNormalizeRPC:   "rpc_inventory_parse_error",
	StageDiff:           "diff_internal_error",
}

// LegacyMessage renders the error as a single prefixed string.
func (r *ErrorRecord) LegacyMessage() string {
	prefix, ok := legacyPrefixes[r.Stage]
	if !ok {
		prefix = string(r.Stage)
	}
	if r.Stage == StageNormalizeLocal && r.Kind == KindNotFound {
		prefix = "local_package_modules_not_found"
	}
	return prefix + ": " + r.Message
}
