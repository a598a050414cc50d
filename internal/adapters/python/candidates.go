// Package python provides the toolchain resolver and package installer
// adapters for the Windows-side Python interpreter.
package python

import "go.trai.ch/crate/internal/core/domain"

// DefaultCandidates returns the ordered probe list: well-known install
// locations inside the emulated environment first, then the PATH-based
// fallback. The order is a first-class value so callers and tests can
// substitute their own.
func DefaultCandidates() []domain.ToolchainCandidate {
	return []domain.ToolchainCandidate{
		{Name: "python311", InterpreterPath: `C:\Python311\python.exe`},
		{Name: "python310", InterpreterPath: `C:\Python310\python.exe`},
		{Name: "program-files", InterpreterPath: `C:\Program Files\Python311\python.exe`},
		{Name: "path", InterpreterPath: "python"},
	}
}
