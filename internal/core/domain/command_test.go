package domain_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crate/internal/core/domain"
)

func testToolchain() *domain.ResolvedToolchain {
	return &domain.ResolvedToolchain{
		Candidate: domain.ToolchainCandidate{
			Name:            "system",
			InterpreterPath: `C:\Python311\python.exe`,
		},
		Version: "Python 3.11.6",
	}
}

func TestAssembleCommand_Deterministic(t *testing.T) {
	req := &domain.BuildRequest{
		EntryScript:    "tool.py",
		ExecutableName: "Tool_App",
		ExtraArgs:      []string{"--windowed"},
	}
	statOK := func(string) error { return nil }

	first, _ := domain.AssembleCommand(req, testToolchain(), statOK)
	second, _ := domain.AssembleCommand(req, testToolchain(), statOK)

	require.Equal(t, first.Argv(), second.Argv())
}

func TestAssembleCommand_Baseline(t *testing.T) {
	req := &domain.BuildRequest{
		EntryScript:    "tool.py",
		ExecutableName: "Tool_App",
	}

	cmd, warnings := domain.AssembleCommand(req, testToolchain(), func(string) error { return nil })
	require.Empty(t, warnings)

	argv := cmd.Argv()
	require.Equal(t, `C:\Python311\python.exe`, argv[0])
	assert.Equal(t, []string{"-m", "PyInstaller"}, argv[1:3])
	assert.Contains(t, argv, "--onefile")
	assert.Contains(t, argv, "--windowed")
	assert.Contains(t, argv, "--clean")
	assert.Contains(t, argv, "--noupx")
	// GUI toolkit and image library hooks must be declared explicitly: the
	// bundler's static analysis cannot see them behind dynamic imports.
	assert.Contains(t, argv, "tkinter")
	assert.Contains(t, argv, "PIL._tkinter_finder")
	// Entry script is the final token.
	assert.Equal(t, "tool.py", argv[len(argv)-1])
}

func TestAssembleCommand_ExtraArgsAfterBaseline(t *testing.T) {
	req := &domain.BuildRequest{
		EntryScript:    "tool.py",
		ExecutableName: "Tool_App",
		ExtraArgs:      []string{"--console", "--log-level", "DEBUG"},
	}

	cmd, _ := domain.AssembleCommand(req, testToolchain(), func(string) error { return nil })
	argv := cmd.Argv()

	// Extra tokens come verbatim after every baseline flag so the bundler's
	// last-wins semantics lets callers override defaults.
	consoleIdx := indexOf(t, argv, "--console")
	windowedIdx := indexOf(t, argv, "--windowed")
	assert.Greater(t, consoleIdx, windowedIdx)
	assert.Equal(t, "DEBUG", argv[consoleIdx+2])
}

func TestAssembleCommand_MissingIconDropped(t *testing.T) {
	req := &domain.BuildRequest{
		EntryScript:    "tool.py",
		ExecutableName: "Tool_App",
		IconPath:       "missing.ico",
	}

	cmd, warnings := domain.AssembleCommand(req, testToolchain(), func(string) error {
		return errors.New("stat: no such file")
	})

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "missing.ico")
	assert.NotContains(t, cmd.Argv(), "--icon")
}

func TestAssembleCommand_ExistingIconKept(t *testing.T) {
	req := &domain.BuildRequest{
		EntryScript:    "tool.py",
		ExecutableName: "Tool_App",
		IconPath:       "app.ico",
	}

	cmd, warnings := domain.AssembleCommand(req, testToolchain(), func(string) error { return nil })

	require.Empty(t, warnings)
	argv := cmd.Argv()
	iconIdx := indexOf(t, argv, "--icon")
	assert.Equal(t, "app.ico", argv[iconIdx+1])
}

func TestAssembleCommand_DefaultStatUsesDisk(t *testing.T) {
	dir := t.TempDir()
	icon := filepath.Join(dir, "app.ico")
	require.NoError(t, os.WriteFile(icon, []byte{0}, 0o644))

	req := &domain.BuildRequest{
		EntryScript:    "tool.py",
		ExecutableName: "Tool_App",
		IconPath:       icon,
	}

	cmd, warnings := domain.AssembleCommand(req, testToolchain(), nil)
	require.Empty(t, warnings)
	assert.Contains(t, cmd.Argv(), "--icon")
}

func indexOf(t *testing.T, argv []string, token string) int {
	t.Helper()
	for i, a := range argv {
		if a == token {
			return i
		}
	}
	t.Fatalf("token %q not found in %v", token, argv)
	return -1
}
