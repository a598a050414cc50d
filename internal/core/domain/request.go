package domain

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// ManifestFileName is the canonical name the dependency manifest gets inside
// a build workspace.
const ManifestFileName = "requirements.txt"

// DefaultTimeout bounds a single sandboxed build. PyInstaller analysis under
// emulation is slow but a healthy run stays well under this.
const DefaultTimeout = 20 * time.Minute

// BuildRequest describes one tool to package. It is created per invocation,
// consumed once and never persisted.
type BuildRequest struct {
	// EntryScript is the host path to the script handed to the bundler.
	EntryScript string

	// ExecutableName is the artifact's base name, without extension.
	// It must not contain path separators.
	ExecutableName string

	// ExtraArgs are caller-supplied bundler tokens, appended verbatim after the
	// baseline flags so they win under the bundler's last-wins semantics.
	ExtraArgs []string

	// IconPath optionally points at an icon file. A missing icon is a logged
	// degradation, not an error.
	IconPath string

	// Requirements optionally points at a plain-text dependency manifest,
	// one package per line, installed before the build.
	Requirements string

	// Timeout bounds the sandbox execution. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Validate checks the request invariants. It fails fast, before any sandbox
// work is attempted.
func (r *BuildRequest) Validate() error {
	if r.ExecutableName == "" || strings.ContainsAny(r.ExecutableName, `/\`) {
		return zerr.With(ErrInvalidExecutableName, "name", r.ExecutableName)
	}
	info, err := os.Stat(r.EntryScript)
	if err != nil || info.IsDir() {
		return zerr.With(ErrSourceNotFound, "path", r.EntryScript)
	}
	return nil
}

// EffectiveTimeout returns the configured timeout, defaulting when unset.
func (r *BuildRequest) EffectiveTimeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

// WorkID derives a stable identifier for the request's sandbox working
// directory, so concurrent builds never share a workspace.
func (r *BuildRequest) WorkID() string {
	h := xxhash.New()
	_, _ = h.WriteString(r.EntryScript)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(r.ExecutableName)
	return fmt.Sprintf("%s-%016x", r.ExecutableName, h.Sum64())
}
