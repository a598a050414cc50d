// Package wine provides the emulated Windows environment adapter.
package wine

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/zerr"
)

// Prefix is an explicit handle to a Wine prefix. It replaces ambient reliance
// on a persistent environment directory: the handle is injectable, so tests
// substitute a fake without the real emulator.
type Prefix struct {
	// Dir is the host path of the prefix (WINEPREFIX).
	Dir string

	// WineBin runs a Windows-side command. Defaults to "wine".
	WineBin string

	// WinebootBin initializes the prefix. Defaults to "wineboot".
	WinebootBin string

	// WineserverBin is used to wait for initialization to settle. Defaults to
	// "wineserver".
	WineserverBin string

	// DisplayWrapper is prepended to every invocation so the bundler can
	// transiently instantiate GUI components during analysis on a headless
	// host. Defaults to ["xvfb-run", "-a"].
	DisplayWrapper []string
}

// NewPrefix creates a Prefix handle rooted at dir with default binaries.
func NewPrefix(dir string) *Prefix {
	return &Prefix{
		Dir:            dir,
		WineBin:        "wine",
		WinebootBin:    "wineboot",
		WineserverBin:  "wineserver",
		DisplayWrapper: []string{"xvfb-run", "-a"},
	}
}

// Environ returns the process environment for commands running in the prefix.
func (p *Prefix) Environ() []string {
	return append(os.Environ(),
		"WINEPREFIX="+p.Dir,
		"WINEDEBUG=-all",
		// Skip the Gecko/Mono installers; the bundler needs neither.
		"WINEDLLOVERRIDES=mscoree=d;mshtml=d",
	)
}

// Initialized reports whether the prefix has been booted before. Wine writes
// system.reg during wineboot, so its presence is the idempotence marker.
func (p *Prefix) Initialized() bool {
	_, err := os.Stat(filepath.Join(p.Dir, "system.reg"))
	return err == nil
}

// Init boots the prefix. Safe to call on every run: a prior initialization is
// a no-op.
func (p *Prefix) Init(ctx context.Context) error {
	if p.Initialized() {
		return nil
	}

	if err := os.MkdirAll(p.Dir, 0o750); err != nil {
		return zerr.With(errors.Join(domain.ErrEnvironmentInitFailed, err), "prefix", p.Dir)
	}

	boot := exec.CommandContext(ctx, p.WinebootBin, "--init")
	boot.Env = p.Environ()
	if out, err := boot.CombinedOutput(); err != nil {
		initErr := errors.Join(domain.ErrEnvironmentInitFailed, err)
		initErr = zerr.With(initErr, "prefix", p.Dir)
		return zerr.With(initErr, "output", string(out))
	}

	// wineboot returns before the prefix is fully settled; wait for the
	// wineserver to drain.
	wait := exec.CommandContext(ctx, p.WineserverBin, "--wait")
	wait.Env = p.Environ()
	if err := wait.Run(); err != nil {
		return zerr.With(errors.Join(domain.ErrEnvironmentInitFailed, err), "prefix", p.Dir)
	}

	return nil
}

// BuildRoot returns the directory under drive_c holding per-request workspaces.
func (p *Prefix) BuildRoot() string {
	return filepath.Join(p.Dir, "drive_c", "crate")
}
