package fs

import (
	"errors"
	"os"
	"strings"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/zerr"
)

// ReadManifest parses a plain-text dependency manifest: one package
// requirement per line, blank lines and #-comments ignored.
func ReadManifest(path string) ([]string, error) {
	//nolint:gosec // path is provided by user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrManifestReadFailed, err), "path", path)
	}

	var packages []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		packages = append(packages, line)
	}
	return packages, nil
}
