package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/zerr"
)

// Settings are the runtime knobs not tied to a single tool. Each can be
// overridden through the environment, which is how the CI wrapper drives the
// pipeline without a cratefile edit.
type Settings struct {
	// OutputDir is the host-visible directory receiving extracted artifacts.
	OutputDir string `env:"CRATE_OUTPUT_DIR" envDefault:"dist"`

	// PrefixDir is the Wine prefix location. Empty means ~/.crate/wine.
	PrefixDir string `env:"CRATE_WINEPREFIX"`

	// Timeout is the default per-build timeout when a tool sets none.
	Timeout time.Duration `env:"CRATE_TIMEOUT" envDefault:"20m"`

	// Parallelism caps concurrent builds during pack. Zero means NumCPU.
	Parallelism int `env:"CRATE_PARALLELISM"`

	// Remediate controls whether a missing bundler is auto-installed once
	// before the resolver gives up.
	Remediate bool `env:"CRATE_REMEDIATE" envDefault:"true"`
}

// ParseSettings reads settings from the environment, filling defaults.
func ParseSettings() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, zerr.Wrap(err, "failed to parse environment settings")
	}

	if s.PrefixDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to determine home directory")
		}
		s.PrefixDir = filepath.Join(home, ".crate", "wine")
	}
	if s.Parallelism <= 0 {
		s.Parallelism = runtime.NumCPU()
	}

	return &s, nil
}
