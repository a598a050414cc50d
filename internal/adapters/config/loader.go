// Package config provides the cratefile loader and runtime settings.
package config

import (
	"errors"
	"os"
	"slices"
	"strings"
	"time"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileConfigLoader implements ports.ConfigLoader using a YAML cratefile.
type FileConfigLoader struct{}

// NewLoader creates a new FileConfigLoader.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{}
}

// Load reads the cratefile at path and returns one build request per tool,
// ordered by executable name so runs are deterministic.
func (l *FileConfigLoader) Load(path string) ([]domain.BuildRequest, error) {
	//nolint:gosec // path is provided by user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	var cratefile Cratefile
	if err := yaml.Unmarshal(data, &cratefile); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", path)
	}

	if len(cratefile.Tools) == 0 {
		return nil, zerr.With(domain.ErrNoToolsConfigured, "path", path)
	}

	names := make([]string, 0, len(cratefile.Tools))
	for name := range cratefile.Tools {
		names = append(names, name)
	}
	slices.Sort(names)

	seen := make(map[string]bool, len(names))
	requests := make([]domain.BuildRequest, 0, len(names))
	for _, name := range names {
		// YAML map keys are unique, but case-folding collisions would still
		// collide on a case-insensitive target filesystem.
		folded := strings.ToLower(name)
		if seen[folded] {
			return nil, zerr.With(domain.ErrDuplicateToolName, "name", name)
		}
		seen[folded] = true

		dto := cratefile.Tools[name]
		req := domain.BuildRequest{
			EntryScript:    dto.Entry,
			ExecutableName: name,
			ExtraArgs:      dto.Args,
			IconPath:       dto.Icon,
			Requirements:   dto.Requirements,
		}
		if dto.Timeout != "" {
			d, err := time.ParseDuration(dto.Timeout)
			if err != nil {
				parseErr := errors.Join(domain.ErrConfigParseFailed, err)
				return nil, zerr.With(parseErr, "tool", name)
			}
			req.Timeout = d
		}
		requests = append(requests, req)
	}

	return requests, nil
}
