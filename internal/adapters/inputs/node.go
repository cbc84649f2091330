package inputs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/moveiface/internal/adapters/logger"
	"go.trai.ch/moveiface/internal/core/ports"
)

// NodeID is the unique identifier for the package source Graft node.
const NodeID graft.ID = "adapter.inputs"

func init() {
	graft.Register(graft.Node[ports.PackageSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.PackageSource, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCollector(log), nil
		},
	})
}
