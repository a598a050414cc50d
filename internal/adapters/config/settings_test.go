package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crate/internal/adapters/config"
)

func TestParseSettings_Defaults(t *testing.T) {
	s, err := config.ParseSettings()
	require.NoError(t, err)

	assert.Equal(t, "dist", s.OutputDir)
	assert.Equal(t, 20*time.Minute, s.Timeout)
	assert.NotEmpty(t, s.PrefixDir)
	assert.Positive(t, s.Parallelism)
	assert.True(t, s.Remediate)
}

func TestParseSettings_EnvOverrides(t *testing.T) {
	t.Setenv("CRATE_OUTPUT_DIR", "out")
	t.Setenv("CRATE_WINEPREFIX", "/tmp/prefix")
	t.Setenv("CRATE_TIMEOUT", "5m")
	t.Setenv("CRATE_PARALLELISM", "2")
	t.Setenv("CRATE_REMEDIATE", "false")

	s, err := config.ParseSettings()
	require.NoError(t, err)

	assert.Equal(t, "out", s.OutputDir)
	assert.Equal(t, "/tmp/prefix", s.PrefixDir)
	assert.Equal(t, 5*time.Minute, s.Timeout)
	assert.Equal(t, 2, s.Parallelism)
	assert.False(t, s.Remediate)
}

func TestParseSettings_BadDuration(t *testing.T) {
	t.Setenv("CRATE_TIMEOUT", "whenever")

	_, err := config.ParseSettings()
	require.Error(t, err)
}
