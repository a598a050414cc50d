package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crate/internal/adapters/fs"
	"go.trai.ch/crate/internal/core/domain"
)

func writeArtifact(t *testing.T, workDir, name string) string {
	t.Helper()
	dist := filepath.Join(workDir, "dist")
	require.NoError(t, os.MkdirAll(dist, 0o750))
	path := filepath.Join(dist, name+".exe")
	require.NoError(t, os.WriteFile(path, []byte("MZ fake binary"), 0o755))
	return path
}

func TestVerifier_Verify(t *testing.T) {
	workDir := t.TempDir()
	want := writeArtifact(t, workDir, "Tool_App")

	v := fs.NewVerifier()
	got, err := v.Verify(workDir, "Tool_App")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVerifier_Verify_Missing(t *testing.T) {
	v := fs.NewVerifier()

	_, err := v.Verify(t.TempDir(), "Tool_App")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrArtifactMissing))
}

func TestVerifier_Verify_EmptyFile(t *testing.T) {
	workDir := t.TempDir()
	dist := filepath.Join(workDir, "dist")
	require.NoError(t, os.MkdirAll(dist, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "Tool_App.exe"), nil, 0o755))

	v := fs.NewVerifier()
	_, err := v.Verify(workDir, "Tool_App")
	assert.True(t, errors.Is(err, domain.ErrArtifactMissing))
}

func TestVerifier_Extract_CopiesNotMoves(t *testing.T) {
	workDir := t.TempDir()
	artifact := writeArtifact(t, workDir, "Tool_App")
	outputDir := filepath.Join(t.TempDir(), "out")

	v := fs.NewVerifier()
	hostPath, err := v.Extract(artifact, outputDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "Tool_App.exe"), hostPath)

	got, err := os.ReadFile(hostPath)
	require.NoError(t, err)
	assert.Equal(t, "MZ fake binary", string(got))

	// The original stays behind as a debugging trail.
	_, err = os.Stat(artifact)
	assert.NoError(t, err)
}

func TestVerifier_Extract_Unwritable(t *testing.T) {
	workDir := t.TempDir()
	artifact := writeArtifact(t, workDir, "Tool_App")

	blocker := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o644))

	v := fs.NewVerifier()
	_, err := v.Extract(artifact, filepath.Join(blocker, "out"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrArtifactCopyFailed))
}
