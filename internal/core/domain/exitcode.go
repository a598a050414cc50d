package domain

import "errors"

// Process exit codes. Each failure kind gets a distinct code so automated
// callers can branch without parsing text.
const (
	// ExitSuccess indicates a verified build.
	ExitSuccess = 0

	// ExitFailure indicates an unclassified runtime failure.
	ExitFailure = 1

	// ExitToolchain indicates no usable interpreter+bundler pair was found.
	ExitToolchain = 2

	// ExitBadRequest indicates an invalid build request (missing entry script,
	// bad executable name, unreadable config).
	ExitBadRequest = 3

	// ExitSandbox indicates the sandboxed build failed or timed out.
	ExitSandbox = 4

	// ExitVerification indicates the artifact was missing or could not be
	// copied to the output location.
	ExitVerification = 5
)

// ExitCode classifies err into a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrToolchainUnavailable) || errors.Is(err, ErrRemediationFailed):
		return ExitToolchain
	case errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, ErrInvalidExecutableName) ||
		errors.Is(err, ErrConfigReadFailed) ||
		errors.Is(err, ErrConfigParseFailed) ||
		errors.Is(err, ErrNoToolsConfigured) ||
		errors.Is(err, ErrDuplicateToolName):
		return ExitBadRequest
	case errors.Is(err, ErrBuildTimedOut) ||
		errors.Is(err, ErrBuildFailed) ||
		errors.Is(err, ErrEnvironmentInitFailed) ||
		errors.Is(err, ErrMaterializeFailed):
		return ExitSandbox
	case errors.Is(err, ErrArtifactMissing) || errors.Is(err, ErrArtifactCopyFailed):
		return ExitVerification
	default:
		return ExitFailure
	}
}
