package checkpoint

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/moveiface/internal/core/ports"
)

// NodeID is the unique identifier for the checkpoint factory Graft node.
const NodeID graft.ID = "adapter.checkpoint"

// Factory implements ports.CheckpointFactory.
type Factory struct{}

// NewCheckpoint implements ports.CheckpointFactory.
func (Factory) NewCheckpoint(path string) ports.CheckpointStore {
	return NewStore(path)
}

func init() {
	graft.Register(graft.Node[ports.CheckpointFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CheckpointFactory, error) {
			return Factory{}, nil
		},
	})
}
