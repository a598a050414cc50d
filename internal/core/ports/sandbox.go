// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"time"

	"go.trai.ch/crate/internal/core/domain"
)

// ExecSpec describes one command to run inside the emulated environment.
type ExecSpec struct {
	// Argv is the target-side command: interpreter plus arguments. The sandbox
	// wraps it with the emulator and virtual display invocation itself.
	Argv []string

	// WorkDir is the host-side working directory for the command. Empty means
	// the sandbox's default.
	WorkDir string

	// Timeout bounds the execution. Zero means no deadline beyond ctx's.
	Timeout time.Duration
}

// ExecResult captures the outcome of a sandboxed command.
type ExecResult struct {
	// ExitCode is the child's exit code, -1 when it was killed by a signal.
	ExitCode int

	// LogTail is the captured tail of the interleaved stdout/stderr stream.
	LogTail string
}

// Sandbox executes commands inside an emulated target-OS environment that does
// not share the host's native execution context.
//
//go:generate go run go.uber.org/mock/mockgen -source=sandbox.go -destination=mocks/mock_sandbox.go -package=mocks
type Sandbox interface {
	// Init ensures the emulated environment is initialized. It is idempotent:
	// a prior initialization makes the call a no-op.
	Init(ctx context.Context) error

	// Materialize copies the request's source tree into the emulated
	// environment's filesystem and clears stale output directories from a
	// previous run. It returns the host-side working directory for the build.
	Materialize(ctx context.Context, req *domain.BuildRequest) (workDir string, err error)

	// Run executes the spec synchronously, capturing output. On timeout it
	// terminates the whole child process tree and returns ErrBuildTimedOut.
	Run(ctx context.Context, spec ExecSpec) (*ExecResult, error)
}
