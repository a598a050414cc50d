package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crate/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/crate/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/crate/internal/adapters/python"             //nolint:depguard // Wired in app layer
	"go.trai.ch/crate/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/crate/internal/adapters/wine"               //nolint:depguard // Wired in app layer
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/crate/internal/engine/pipeline"
)

// NodeID is the unique identifier for the main App Graft node.
const NodeID graft.ID = "app.main"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.LoaderNodeID,
			config.SettingsNodeID,
			python.ResolverNodeID,
			wine.NodeID,
			pipeline.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.ToolchainResolver](ctx)
			if err != nil {
				return nil, err
			}
			sandbox, err := graft.Dep[ports.Sandbox](ctx)
			if err != nil {
				return nil, err
			}
			pipe, err := graft.Dep[*pipeline.Pipeline](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, resolver, sandbox, pipe, telemetry, log, settings.Parallelism, settings.Timeout), nil
		},
	})
}
