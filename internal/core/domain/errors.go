package domain

import "go.trai.ch/zerr"

var (
	// ErrToolchainUnavailable is returned when no candidate location yields a working
	// interpreter and bundler pair, even after one remediation attempt.
	ErrToolchainUnavailable = zerr.New("no usable toolchain found")

	// ErrSourceNotFound is returned when the entry script does not exist or is not readable.
	ErrSourceNotFound = zerr.New("entry script not found")

	// ErrInvalidExecutableName is returned when the requested executable name is empty
	// or contains path separators.
	ErrInvalidExecutableName = zerr.New("invalid executable name")

	// ErrBuildTimedOut is returned when the sandboxed build exceeds its allotted time.
	ErrBuildTimedOut = zerr.New("build timed out")

	// ErrBuildFailed is returned when the bundler process exits non-zero.
	ErrBuildFailed = zerr.New("build process failed")

	// ErrArtifactMissing is returned when the bundler exits cleanly but the expected
	// artifact never appears. This is a build failure, not a crash: the common cause
	// is a bundler internal error reported only in its log.
	ErrArtifactMissing = zerr.New("expected artifact missing after build")

	// ErrArtifactCopyFailed is returned when relocating the verified artifact to the
	// host-visible output location fails. The build itself succeeded, so retrying
	// the copy alone is safe.
	ErrArtifactCopyFailed = zerr.New("failed to copy artifact to output location")

	// ErrEnvironmentInitFailed is returned when the emulated environment cannot be initialized.
	ErrEnvironmentInitFailed = zerr.New("failed to initialize emulated environment")

	// ErrMaterializeFailed is returned when the source tree cannot be copied into the
	// emulated environment's filesystem.
	ErrMaterializeFailed = zerr.New("failed to materialize source tree")

	// ErrManifestReadFailed is returned when the dependency manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read dependency manifest")

	// ErrRemediationFailed is returned when the one-shot bundler install attempt fails.
	ErrRemediationFailed = zerr.New("bundler install remediation failed")

	// ErrConfigReadFailed is returned when the cratefile cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the cratefile cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrNoToolsConfigured is returned when a pack run finds no tools in the cratefile.
	ErrNoToolsConfigured = zerr.New("no tools configured")

	// ErrDuplicateToolName is returned when two configured tools share an executable name.
	// Concurrent builds require non-overlapping output filenames.
	ErrDuplicateToolName = zerr.New("duplicate executable name")
)
