package wine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crate/internal/adapters/wine"
	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/crate/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// hostPrefix returns a prefix whose wine binary is a passthrough shell, so
// sandboxed commands run directly on the host.
func hostPrefix(t *testing.T) *wine.Prefix {
	t.Helper()
	prefix := wine.NewPrefix(t.TempDir())
	prefix.WineBin = "/bin/sh"
	prefix.DisplayWrapper = nil
	return prefix
}

func newTestSandbox(t *testing.T, prefix *wine.Prefix) *wine.Sandbox {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return wine.NewSandbox(prefix, log)
}

func writeSource(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestSandbox_Materialize_CopiesSourceTree(t *testing.T) {
	prefix := hostPrefix(t)
	sandbox := newTestSandbox(t, prefix)

	src := writeSource(t, filepath.Join(t.TempDir(), "tool"), map[string]string{
		"sprite.py":     "print('hi')",
		"assets/pal.py": "PALETTE = []",
	})
	req := &domain.BuildRequest{
		EntryScript:    filepath.Join(src, "sprite.py"),
		ExecutableName: "sprite",
	}

	workDir, err := sandbox.Materialize(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(workDir))
	assert.FileExists(t, filepath.Join(workDir, "sprite.py"))
	assert.FileExists(t, filepath.Join(workDir, "assets", "pal.py"))
	// The source tree stays where it was.
	assert.FileExists(t, req.EntryScript)
}

func TestSandbox_Materialize_ClearsStaleWorkspace(t *testing.T) {
	prefix := hostPrefix(t)
	sandbox := newTestSandbox(t, prefix)

	src := writeSource(t, filepath.Join(t.TempDir(), "tool"), map[string]string{
		"sprite.py": "print('hi')",
	})
	req := &domain.BuildRequest{
		EntryScript:    filepath.Join(src, "sprite.py"),
		ExecutableName: "sprite",
	}

	workDir, err := sandbox.Materialize(context.Background(), req)
	require.NoError(t, err)

	// Plant a stale artifact; re-materializing must remove it so it can never
	// satisfy verification.
	stale := filepath.Join(workDir, "dist", "sprite.exe")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	again, err := sandbox.Materialize(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, workDir, again)
	assert.NoFileExists(t, stale)
}

func TestSandbox_Materialize_StagesManifest(t *testing.T) {
	prefix := hostPrefix(t)
	sandbox := newTestSandbox(t, prefix)

	src := writeSource(t, filepath.Join(t.TempDir(), "tool"), map[string]string{
		"sprite.py": "print('hi')",
	})
	manifest := filepath.Join(t.TempDir(), "deps.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("pillow==10.3.0\n"), 0o644))

	req := &domain.BuildRequest{
		EntryScript:    filepath.Join(src, "sprite.py"),
		ExecutableName: "sprite",
		Requirements:   manifest,
	}

	workDir, err := sandbox.Materialize(context.Background(), req)

	require.NoError(t, err)
	staged, err := os.ReadFile(filepath.Join(workDir, domain.ManifestFileName))
	require.NoError(t, err)
	assert.Equal(t, "pillow==10.3.0\n", string(staged))
}

func TestSandbox_Materialize_StagesOutOfTreeIcon(t *testing.T) {
	prefix := hostPrefix(t)
	sandbox := newTestSandbox(t, prefix)

	src := writeSource(t, filepath.Join(t.TempDir(), "tool"), map[string]string{
		"sprite.py": "print('hi')",
	})
	icon := filepath.Join(t.TempDir(), "shared.ico")
	require.NoError(t, os.WriteFile(icon, []byte("ico"), 0o644))

	req := &domain.BuildRequest{
		EntryScript:    filepath.Join(src, "sprite.py"),
		ExecutableName: "sprite",
		IconPath:       icon,
	}

	workDir, err := sandbox.Materialize(context.Background(), req)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(workDir, "shared.ico"))
}

func TestSandbox_Materialize_MissingOutOfTreeIconIsNotFatal(t *testing.T) {
	prefix := hostPrefix(t)
	sandbox := newTestSandbox(t, prefix)

	src := writeSource(t, filepath.Join(t.TempDir(), "tool"), map[string]string{
		"sprite.py": "print('hi')",
	})
	req := &domain.BuildRequest{
		EntryScript:    filepath.Join(src, "sprite.py"),
		ExecutableName: "sprite",
		IconPath:       filepath.Join(t.TempDir(), "gone.ico"),
	}

	// The icon-drop warning belongs to command assembly; materialization
	// must proceed.
	_, err := sandbox.Materialize(context.Background(), req)

	require.NoError(t, err)
}

func TestSandbox_Materialize_MissingManifest(t *testing.T) {
	prefix := hostPrefix(t)
	sandbox := newTestSandbox(t, prefix)

	src := writeSource(t, filepath.Join(t.TempDir(), "tool"), map[string]string{
		"sprite.py": "print('hi')",
	})
	req := &domain.BuildRequest{
		EntryScript:    filepath.Join(src, "sprite.py"),
		ExecutableName: "sprite",
		Requirements:   filepath.Join(t.TempDir(), "nope.txt"),
	}

	_, err := sandbox.Materialize(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestReadFailed)
}

func TestSandbox_Run_CapturesOutput(t *testing.T) {
	sandbox := newTestSandbox(t, hostPrefix(t))

	res, err := sandbox.Run(context.Background(), ports.ExecSpec{
		Argv: []string{"-c", "echo hello from the build"},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.LogTail, "hello from the build")
}

func TestSandbox_Run_NonZeroExitIsNotAnError(t *testing.T) {
	sandbox := newTestSandbox(t, hostPrefix(t))

	res, err := sandbox.Run(context.Background(), ports.ExecSpec{
		Argv: []string{"-c", "echo boom >&2; exit 7"},
	})

	require.NoError(t, err)
	assert.Equal(t, 7, res.ExitCode)
	assert.Contains(t, res.LogTail, "boom")
}

func TestSandbox_Run_Timeout(t *testing.T) {
	sandbox := newTestSandbox(t, hostPrefix(t))

	start := time.Now()
	_, err := sandbox.Run(context.Background(), ports.ExecSpec{
		Argv:    []string{"-c", "sleep 30"},
		Timeout: 200 * time.Millisecond,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildTimedOut)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestSandbox_Run_StartFailure(t *testing.T) {
	prefix := hostPrefix(t)
	prefix.WineBin = filepath.Join(t.TempDir(), "missing-wine")
	sandbox := newTestSandbox(t, prefix)

	_, err := sandbox.Run(context.Background(), ports.ExecSpec{
		Argv: []string{"-c", "true"},
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrBuildTimedOut)
}

func TestSandbox_Run_WorkDirHonored(t *testing.T) {
	sandbox := newTestSandbox(t, hostPrefix(t))
	workDir := t.TempDir()

	res, err := sandbox.Run(context.Background(), ports.ExecSpec{
		Argv:    []string{"-c", "pwd"},
		WorkDir: workDir,
	})

	require.NoError(t, err)
	assert.Contains(t, res.LogTail, filepath.Base(workDir))
}
