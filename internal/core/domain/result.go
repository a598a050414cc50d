package domain

// BuildResult is the terminal value of one pipeline run. It is returned to the
// caller and never retried at this layer.
type BuildResult struct {
	// Succeeded is true only when the artifact was verified and extracted.
	Succeeded bool

	// ArtifactPath is the host-visible location of the built executable.
	// Empty unless Succeeded.
	ArtifactPath string

	// ExitCode is the bundler process's exit code, -1 when it never ran or was
	// killed by a signal.
	ExitCode int

	// Stage is the terminal pipeline stage.
	Stage Stage

	// LogTail holds the captured tail of the process output, for diagnostics
	// on failure.
	LogTail string
}
