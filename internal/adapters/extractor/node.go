package extractor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/moveiface/internal/adapters/logger"
	"go.trai.ch/moveiface/internal/core/ports"
)

// NodeID is the unique identifier for the extractor factory Graft node.
const NodeID graft.ID = "adapter.extractor"

func init() {
	graft.Register(graft.Node[ports.ExtractorFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ExtractorFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})
}
