package domain

// ToolchainCandidate is a filesystem location hypothesized to contain a working
// interpreter. Candidates are probed in list order; the order is a first-class,
// injectable value rather than hardcoded control flow.
type ToolchainCandidate struct {
	// Name is a short human-readable label used in probe reports.
	Name string

	// InterpreterPath is the interpreter location inside the emulated
	// environment, either an absolute Windows-side path or a bare command
	// resolved through the environment's PATH.
	InterpreterPath string
}

// ProbeReport records the outcome of probing a single candidate. Probes are
// independent and idempotent; no partial state is carried between them.
type ProbeReport struct {
	Candidate     ToolchainCandidate
	InterpreterOK bool
	BundlerOK     bool

	// Version is the interpreter's reported version when InterpreterOK.
	Version string

	// Detail carries the failing check's output for diagnostics.
	Detail string
}

// Usable reports whether both availability checks passed.
func (p ProbeReport) Usable() bool {
	return p.InterpreterOK && p.BundlerOK
}

// ResolvedToolchain is the first candidate satisfying both checks. It is owned
// for the lifetime of one build and never cached across runs.
type ResolvedToolchain struct {
	Candidate ToolchainCandidate
	Version   string
}
