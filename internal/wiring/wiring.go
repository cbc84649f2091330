// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/moveiface/internal/adapters/checkpoint"
	_ "go.trai.ch/moveiface/internal/adapters/config"
	_ "go.trai.ch/moveiface/internal/adapters/extractor"
	_ "go.trai.ch/moveiface/internal/adapters/inputs"
	_ "go.trai.ch/moveiface/internal/adapters/jsonl"
	_ "go.trai.ch/moveiface/internal/adapters/logger"
	_ "go.trai.ch/moveiface/internal/adapters/rpc"
	// Register app nodes.
	_ "go.trai.ch/moveiface/internal/app"
)
