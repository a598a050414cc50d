package fs

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/zerr"
)

// ArtifactExt is the platform extension the bundler gives single-file output.
const ArtifactExt = ".exe"

// distDir is where the bundler drops its output, relative to the workspace.
const distDir = "dist"

// Verifier implements ports.ArtifactVerifier against the host filesystem. The
// emulated environment's drive is an ordinary host directory, so plain stat
// and copy suffice.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify checks for the artifact at the canonical output path. A bundler can
// exit zero while silently producing nothing, so absence here is a build
// failure in its own right.
func (v *Verifier) Verify(workDir, executableName string) (string, error) {
	path := filepath.Join(workDir, distDir, executableName+ArtifactExt)
	info, err := os.Stat(path)
	if err != nil {
		missErr := errors.Join(domain.ErrArtifactMissing, err)
		return "", zerr.With(missErr, "expected", path)
	}
	if info.IsDir() || info.Size() == 0 {
		return "", zerr.With(domain.ErrArtifactMissing, "expected", path)
	}
	return path, nil
}

// Extract copies the artifact into outputDir, keeping the sandbox original as
// a debugging trail. A failed copy is retryable without rerunning the build.
func (v *Verifier) Extract(artifactPath, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return "", zerr.With(errors.Join(domain.ErrArtifactCopyFailed, err), "output_dir", outputDir)
	}

	dst := filepath.Join(outputDir, filepath.Base(artifactPath))
	if err := CopyFile(artifactPath, dst); err != nil {
		copyErr := errors.Join(domain.ErrArtifactCopyFailed, err)
		copyErr = zerr.With(copyErr, "artifact", artifactPath)
		return "", zerr.With(copyErr, "dst", dst)
	}
	return dst, nil
}
