package jsonl

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/moveiface/internal/core/ports"
)

// NodeID is the unique identifier for the output factory Graft node.
const NodeID graft.ID = "adapter.jsonl"

func init() {
	graft.Register(graft.Node[ports.OutputFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OutputFactory, error) {
			return NewFactory(), nil
		},
	})
}
