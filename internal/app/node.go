package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/moveiface/internal/adapters/checkpoint" //nolint:depguard // Wired in app layer
	"go.trai.ch/moveiface/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/moveiface/internal/adapters/extractor"  //nolint:depguard // Wired in app layer
	"go.trai.ch/moveiface/internal/adapters/inputs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/moveiface/internal/adapters/jsonl"      //nolint:depguard // Wired in app layer
	"go.trai.ch/moveiface/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/moveiface/internal/adapters/rpc"        //nolint:depguard // Wired in app layer
	"go.trai.ch/moveiface/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			inputs.NodeID,
			extractor.NodeID,
			rpc.NodeID,
			jsonl.NodeID,
			checkpoint.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	source, err := graft.Dep[ports.PackageSource](ctx)
	if err != nil {
		return nil, err
	}

	extractors, err := graft.Dep[ports.ExtractorFactory](ctx)
	if err != nil {
		return nil, err
	}

	remotes, err := graft.Dep[ports.RemoteFactory](ctx)
	if err != nil {
		return nil, err
	}

	outputs, err := graft.Dep[ports.OutputFactory](ctx)
	if err != nil {
		return nil, err
	}

	checkpoints, err := graft.Dep[ports.CheckpointFactory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, source, extractors, remotes, outputs, checkpoints), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
