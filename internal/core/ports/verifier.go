package ports

// ArtifactVerifier confirms the expected build output exists and relocates it
// to the caller-visible output location.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type ArtifactVerifier interface {
	// Verify checks for the artifact at the canonical output path derived from
	// the executable name. Absence is a failure even after a zero exit code.
	Verify(workDir, executableName string) (artifactPath string, err error)

	// Extract copies (never moves) the artifact into outputDir, preserving the
	// original inside the sandbox as a debugging trail. Returns the
	// host-visible path.
	Extract(artifactPath, outputDir string) (string, error)
}
