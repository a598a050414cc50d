package ports

import (
	"context"

	"go.trai.ch/crate/internal/core/domain"
)

// PackageInstaller installs interpreter packages inside the emulated
// environment via the toolchain's own package manager.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type PackageInstaller interface {
	// InstallBundler installs the bundler against the given interpreter. This
	// is the resolver's one-shot remediation step; implementations serialize
	// concurrent calls so parallel builds never race on the install.
	InstallBundler(ctx context.Context, candidate domain.ToolchainCandidate) error

	// InstallRequirements installs the packages listed in the plain-text
	// manifest, one per line. A missing manifest path is the caller's concern;
	// an empty manifest is a no-op.
	InstallRequirements(ctx context.Context, candidate domain.ToolchainCandidate, manifestPath string) error
}
