package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crate/internal/adapters/config"
	"go.trai.ch/crate/internal/core/domain"
)

func writeCratefile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCratefile(t, `
version: "1"
tools:
  Sprite_Tools_Suite:
    entry: tools/combined_sprite_tools.py
    icon: assets/suite.ico
    requirements: tools/requirements.txt
    args: ["--log-level", "WARN"]
    timeout: 30m
  Frame_Editor:
    entry: tools/editor/sprite_frame_editor.py
`)

	reqs, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	// Requests come back sorted by executable name.
	assert.Equal(t, "Frame_Editor", reqs[0].ExecutableName)
	assert.Equal(t, "Sprite_Tools_Suite", reqs[1].ExecutableName)

	suite := reqs[1]
	assert.Equal(t, "tools/combined_sprite_tools.py", suite.EntryScript)
	assert.Equal(t, "assets/suite.ico", suite.IconPath)
	assert.Equal(t, "tools/requirements.txt", suite.Requirements)
	assert.Equal(t, []string{"--log-level", "WARN"}, suite.ExtraArgs)
	assert.Equal(t, 30*time.Minute, suite.Timeout)

	assert.Zero(t, reqs[0].Timeout, "unset timeout stays zero so the default applies")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.NewLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigReadFailed))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeCratefile(t, "tools: [not, a, map")

	_, err := config.NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigParseFailed))
}

func TestLoad_NoTools(t *testing.T) {
	path := writeCratefile(t, `version: "1"`)

	_, err := config.NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoToolsConfigured))
}

func TestLoad_CaseFoldedDuplicate(t *testing.T) {
	path := writeCratefile(t, `
tools:
  Tool_App:
    entry: a.py
  tool_app:
    entry: b.py
`)

	_, err := config.NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateToolName))
}

func TestLoad_BadTimeout(t *testing.T) {
	path := writeCratefile(t, `
tools:
  Tool_App:
    entry: a.py
    timeout: soon
`)

	_, err := config.NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigParseFailed))
}
