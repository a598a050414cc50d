package python

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crate/internal/adapters/config"
	"go.trai.ch/crate/internal/adapters/logger"
	"go.trai.ch/crate/internal/adapters/wine"
	"go.trai.ch/crate/internal/core/ports"
)

const (
	ResolverNodeID  graft.ID = "adapter.resolver"
	InstallerNodeID graft.ID = "adapter.installer"
)

func init() {
	graft.Register(graft.Node[ports.PackageInstaller]{
		ID:        InstallerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{wine.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.PackageInstaller, error) {
			sandbox, err := graft.Dep[ports.Sandbox](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(sandbox, log), nil
		},
	})

	graft.Register(graft.Node[ports.ToolchainResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{wine.NodeID, InstallerNodeID, config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ToolchainResolver, error) {
			sandbox, err := graft.Dep[ports.Sandbox](ctx)
			if err != nil {
				return nil, err
			}
			installer, err := graft.Dep[ports.PackageInstaller](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(DefaultCandidates(), sandbox, installer, log, settings.Remediate), nil
		},
	})
}
