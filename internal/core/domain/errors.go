package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidPackageID is returned when a package identifier is not a valid hex address.
	ErrInvalidPackageID = zerr.New("invalid package id")
)

// Extraction failures reported by the local extractor.
var (
	// ErrExtractionNotFound is returned when no artifacts exist for a package in the dataset.
	ErrExtractionNotFound = zerr.New("local package not found")

	// ErrExtractionDecode is returned when the extractor output or the bytecode cannot be decoded.
	ErrExtractionDecode = zerr.New("local extraction decode failed")

	// ErrTranslationPanic is returned when the extractor crashed while translating bytecode.
	ErrTranslationPanic = zerr.New("local extraction panicked")

	// ErrExtractionTimeout is returned when the extractor did not finish in time.
	ErrExtractionTimeout = zerr.New("local extraction timed out")
)

// RPC failures reported by the remote normalizer client.
var (
	// ErrRPCNotFound is returned when the fullnode does not know the package.
	ErrRPCNotFound = zerr.New("rpc package not found")

	// ErrRPCNetwork is returned on transport level failures.
	ErrRPCNetwork = zerr.New("rpc network error")

	// ErrRPCTimeout is returned when the call exceeded its deadline.
	ErrRPCTimeout = zerr.New("rpc timeout")

	// ErrRPCRateLimited is returned when the endpoint keeps throttling after all retries.
	ErrRPCRateLimited = zerr.New("rpc rate limited")

	// ErrRPCMalformed is returned when the response is not a valid JSON-RPC envelope.
	ErrRPCMalformed = zerr.New("rpc malformed response")
)

// Normalization failures.
var (
	// ErrUnknownAbilityToken is returned for ability encodings outside copy, drop, store and key.
	ErrUnknownAbilityToken = zerr.New("unknown ability token")

	// ErrUnknownVisibilityToken is returned for visibility encodings outside public, friend and private.
	ErrUnknownVisibilityToken = zerr.New("unknown visibility token")

	// ErrMalformedInterface is returned when a raw description misses required fields.
	ErrMalformedInterface = zerr.New("malformed interface")

	// ErrPackageModulesNotFound is returned when none of the extracted modules live at the package address.
	ErrPackageModulesNotFound = zerr.New("local package modules not found")
)

// Internal faults.
var (
	// ErrDiffInternal signals a programming fault in the differ, such as comparing different packages.
	ErrDiffInternal = zerr.New("diff internal error")

	// ErrStagePanic is returned when a pipeline stage other than extraction or diff panicked.
	ErrStagePanic = zerr.New("stage panicked")
)

// Run level failures.
var (
	// ErrNoPackages is returned when a run has no package ids to process.
	ErrNoPackages = zerr.New("no package ids to verify")

	// ErrStreamWrite is returned when an output stream cannot be written. It aborts the run.
	ErrStreamWrite = zerr.New("failed to write output stream")

	// ErrCheckpointMismatch is returned when resuming against a different input list.
	ErrCheckpointMismatch = zerr.New("checkpoint does not match the input list")

	// ErrCheckpointCorrupt is returned when a checkpoint file cannot be decoded.
	ErrCheckpointCorrupt = zerr.New("checkpoint is corrupt")

	// ErrConfigReadFailed is returned when the configuration file exists but cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read configuration file")

	// ErrConfigParseFailed is returned when the configuration file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse configuration file")

	// ErrConfigInvalid is returned when the configuration fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrInputUnreadable is returned when a package id source cannot be read.
	ErrInputUnreadable = zerr.New("failed to read package id source")

	// ErrReportUnreadable is returned when a report line cannot be parsed while indexing.
	ErrReportUnreadable = zerr.New("failed to parse report line")
)
