package wine

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crate/internal/adapters/config"
	"go.trai.ch/crate/internal/adapters/logger"
	"go.trai.ch/crate/internal/core/ports"
)

const NodeID graft.ID = "adapter.sandbox"

func init() {
	graft.Register(graft.Node[ports.Sandbox]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Sandbox, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSandbox(NewPrefix(settings.PrefixDir), log), nil
		},
	})
}
