package domain

// CheckpointVersion is bumped whenever the checkpoint layout changes.
const CheckpointVersion = 1

// Checkpoint is the resume state of an interrupted run.
type Checkpoint struct {
	Version int `msgpack:"version"`
	// Fingerprint identifies the ordered input list the checkpoint belongs to.
	Fingerprint uint64 `msgpack:"fingerprint"`
	// Next is the position of the first input not yet written.
	Next int `msgpack:"next"`
	// Offsets holds the byte size of every stream, keyed by file name.
	Offsets map[string]int64 `msgpack:"offsets"`
	Summary *Summary         `msgpack:"summary"`
}
