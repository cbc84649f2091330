package ports

import "go.trai.ch/moveiface/internal/core/domain"

// CheckpointStore persists resume state between runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=checkpoint.go -destination=mocks/mock_checkpoint.go -package=mocks
type CheckpointStore interface {
	// Load returns the stored checkpoint, or nil, nil when none exists.
	Load() (*domain.Checkpoint, error)
	// Save atomically replaces the stored checkpoint.
	Save(cp *domain.Checkpoint) error
	// Clear removes the stored checkpoint.
	Clear() error
}

// CheckpointFactory opens the checkpoint stored at a path.
type CheckpointFactory interface {
	NewCheckpoint(path string) CheckpointStore
}
