package python

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/crate/internal/adapters/fs"
	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/zerr"
)

// installTimeout bounds a pip invocation. Package downloads under emulation
// can be slow but not unbounded.
const installTimeout = 10 * time.Minute

// Installer implements ports.PackageInstaller using pip inside the sandbox.
type Installer struct {
	sandbox ports.Sandbox
	logger  ports.Logger

	// mu serializes bundler installs: concurrent builds sharing a prefix must
	// not race pip against itself.
	mu sync.Mutex
}

// NewInstaller creates an Installer running pip through the given sandbox.
func NewInstaller(sandbox ports.Sandbox, logger ports.Logger) *Installer {
	return &Installer{
		sandbox: sandbox,
		logger:  logger,
	}
}

// InstallBundler installs PyInstaller against the candidate's interpreter.
// This is the resolver's one-shot remediation step.
func (i *Installer) InstallBundler(ctx context.Context, candidate domain.ToolchainCandidate) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	res, err := i.sandbox.Run(ctx, ports.ExecSpec{
		Argv: []string{
			candidate.InterpreterPath,
			"-m", "pip", "install", "--disable-pip-version-check", "pyinstaller",
		},
		Timeout: installTimeout,
	})
	if err != nil {
		return errors.Join(domain.ErrRemediationFailed, err)
	}
	if res.ExitCode != 0 {
		remErr := errors.Join(domain.ErrRemediationFailed, fmt.Errorf("pip exited %d", res.ExitCode))
		return zerr.With(remErr, "log_tail", res.LogTail)
	}

	i.logger.Info("bundler installed via " + candidate.InterpreterPath)
	return nil
}

// InstallRequirements installs the manifest's packages before the build. The
// manifest has already been staged into the build workspace, so pip runs with
// the workspace as its working directory and a relative path. A manifest with
// no entries skips the pip invocation entirely.
func (i *Installer) InstallRequirements(ctx context.Context, candidate domain.ToolchainCandidate, manifestPath string) error {
	entries, err := fs.ReadManifest(manifestPath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		i.logger.Info("dependency manifest is empty, skipping install")
		return nil
	}

	res, err := i.sandbox.Run(ctx, ports.ExecSpec{
		Argv: []string{
			candidate.InterpreterPath,
			"-m", "pip", "install", "--disable-pip-version-check",
			"-r", filepath.Base(manifestPath),
		},
		WorkDir: filepath.Dir(manifestPath),
		Timeout: installTimeout,
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		depErr := errors.Join(domain.ErrBuildFailed, fmt.Errorf("pip exited %d installing requirements", res.ExitCode))
		depErr = zerr.With(depErr, "manifest", manifestPath)
		return zerr.With(depErr, "log_tail", res.LogTail)
	}
	return nil
}
