package ports

import (
	"context"

	"go.trai.ch/crate/internal/core/domain"
)

// ToolchainResolver locates a working interpreter+bundler pair among an
// ordered list of candidate locations.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ToolchainResolver interface {
	// Resolve probes the candidate list in order and returns the first
	// candidate satisfying both availability checks. If none does, it attempts
	// one remediation install and re-probes exactly once before failing with
	// ErrToolchainUnavailable.
	Resolve(ctx context.Context) (*domain.ResolvedToolchain, error)

	// Probe reports the availability checks for every candidate without
	// remediation. Used for diagnostics.
	Probe(ctx context.Context) ([]domain.ProbeReport, error)
}
