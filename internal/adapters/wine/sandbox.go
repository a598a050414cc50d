package wine

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"go.trai.ch/crate/internal/adapters/fs"
	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/zerr"
)

// Sandbox implements ports.Sandbox on top of a Wine prefix. Commands run
// under a virtual display wrapper so the bundler can instantiate GUI
// components during analysis.
type Sandbox struct {
	prefix    *Prefix
	logger    ports.Logger
	tailLimit int
}

// NewSandbox creates a Sandbox for the given prefix.
func NewSandbox(prefix *Prefix, logger ports.Logger) *Sandbox {
	return &Sandbox{
		prefix:    prefix,
		logger:    logger,
		tailLimit: defaultTailLimit,
	}
}

// Init ensures the prefix is booted. Idempotent.
func (s *Sandbox) Init(ctx context.Context) error {
	return s.prefix.Init(ctx)
}

// Materialize copies the request's source tree into the prefix filesystem
// under a per-request workspace and stages the dependency manifest alongside
// it. Any workspace left by a previous run is removed first, so a stale
// artifact can never satisfy verification.
func (s *Sandbox) Materialize(_ context.Context, req *domain.BuildRequest) (string, error) {
	workDir := filepath.Join(s.prefix.BuildRoot(), req.WorkID())

	if err := os.RemoveAll(workDir); err != nil {
		return "", zerr.With(errors.Join(domain.ErrMaterializeFailed, err), "work_dir", workDir)
	}

	srcDir := filepath.Dir(req.EntryScript)
	if err := fs.CopyTree(srcDir, workDir); err != nil {
		matErr := errors.Join(domain.ErrMaterializeFailed, err)
		matErr = zerr.With(matErr, "source", srcDir)
		return "", zerr.With(matErr, "work_dir", workDir)
	}

	if req.Requirements != "" {
		dst := filepath.Join(workDir, domain.ManifestFileName)
		if err := fs.CopyFile(req.Requirements, dst); err != nil {
			matErr := errors.Join(domain.ErrManifestReadFailed, err)
			return "", zerr.With(matErr, "manifest", req.Requirements)
		}
	}

	// An icon outside the source tree is staged at the workspace root: the
	// bundler runs Windows-side and cannot open host-absolute paths. A missing
	// icon is left for assembly to warn about, not a materialization failure.
	if req.IconPath != "" && !insideTree(srcDir, req.IconPath) {
		if _, err := os.Stat(req.IconPath); err == nil {
			dst := filepath.Join(workDir, filepath.Base(req.IconPath))
			if err := fs.CopyFile(req.IconPath, dst); err != nil {
				matErr := errors.Join(domain.ErrMaterializeFailed, err)
				return "", zerr.With(matErr, "icon", req.IconPath)
			}
		}
	}

	return workDir, nil
}

func insideTree(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && !strings.HasPrefix(rel, "..")
}

// Run executes the spec's target-side command under wine and the display
// wrapper, blocking until the child exits or the timeout elapses. The child
// runs in its own process group; on timeout the whole group is killed so no
// orphaned wine processes linger.
//
// A clean process completion yields a nil error regardless of exit code; the
// caller classifies non-zero exits. Errors are reserved for the child not
// running at all and for timeouts.
func (s *Sandbox) Run(ctx context.Context, spec ports.ExecSpec) (*ports.ExecResult, error) {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	argv := append([]string{}, s.prefix.DisplayWrapper...)
	argv = append(argv, s.prefix.WineBin)
	argv = append(argv, spec.Argv...)

	//nolint:gosec // argv is assembled from validated build requests
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = spec.WorkDir
	cmd.Env = s.prefix.Environ()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		// Negative pid addresses the whole process group: wine spawns a
		// wineserver and the bundler's own children.
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	tail := NewTailBuffer(s.tailLimit)
	var stdout, stderr io.Writer = tail, tail
	if v := ports.VertexFromContext(ctx); v != nil {
		stdout = io.MultiWriter(tail, v.Stdout())
		stderr = io.MultiWriter(tail, v.Stderr())
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		timeoutErr := errors.Join(domain.ErrBuildTimedOut, ctx.Err())
		timeoutErr = zerr.With(timeoutErr, "timeout", spec.Timeout.String())
		return nil, zerr.With(timeoutErr, "log_tail", tail.String())
	}
	if ctx.Err() != nil {
		return nil, zerr.Wrap(ctx.Err(), "sandboxed command canceled")
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ports.ExecResult{ExitCode: exitErr.ExitCode(), LogTail: tail.String()}, nil
		}
		// The command never ran: wrapper or wine binary missing.
		return nil, zerr.With(zerr.Wrap(err, "failed to start sandboxed command"), "argv_0", argv[0])
	}

	return &ports.ExecResult{ExitCode: 0, LogTail: tail.String()}, nil
}
