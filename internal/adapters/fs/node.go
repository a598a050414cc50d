package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crate/internal/core/ports"
)

const VerifierNodeID graft.ID = "adapter.fs.verifier"

func init() {
	graft.Register(graft.Node[ports.ArtifactVerifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactVerifier, error) {
			return NewVerifier(), nil
		},
	})
}
