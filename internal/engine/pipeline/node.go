package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crate/internal/adapters/config"
	"go.trai.ch/crate/internal/adapters/fs"
	"go.trai.ch/crate/internal/adapters/logger"
	"go.trai.ch/crate/internal/adapters/python"
	"go.trai.ch/crate/internal/adapters/telemetry/progrock"
	"go.trai.ch/crate/internal/adapters/wine"
	"go.trai.ch/crate/internal/core/ports"
)

const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			python.ResolverNodeID,
			python.InstallerNodeID,
			wine.NodeID,
			fs.VerifierNodeID,
			progrock.NodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			resolver, err := graft.Dep[ports.ToolchainResolver](ctx)
			if err != nil {
				return nil, err
			}
			installer, err := graft.Dep[ports.PackageInstaller](ctx)
			if err != nil {
				return nil, err
			}
			sandbox, err := graft.Dep[ports.Sandbox](ctx)
			if err != nil {
				return nil, err
			}
			verifier, err := graft.Dep[ports.ArtifactVerifier](ctx)
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
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(resolver, sandbox, installer, verifier, telemetry, log, settings.OutputDir), nil
		},
	})
}
