package rpc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/moveiface/internal/core/ports"
)

// NodeID is the unique identifier for the RPC factory Graft node.
const NodeID graft.ID = "adapter.rpc"

func init() {
	graft.Register(graft.Node[ports.RemoteFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RemoteFactory, error) {
			return NewFactory(), nil
		},
	})
}
