// Package pipeline drives a single build request through the linear stage
// machine: resolve the toolchain, assemble the bundler command, execute it in
// the sandbox, verify and extract the artifact.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pipeline orchestrates one build from request to verified artifact. It holds
// no per-request state; a single Pipeline serves concurrent builds.
type Pipeline struct {
	resolver  ports.ToolchainResolver
	sandbox   ports.Sandbox
	installer ports.PackageInstaller
	verifier  ports.ArtifactVerifier
	telemetry ports.Telemetry
	logger    ports.Logger
	outputDir string
}

// New creates a Pipeline writing extracted artifacts into outputDir.
func New(
	resolver ports.ToolchainResolver,
	sandbox ports.Sandbox,
	installer ports.PackageInstaller,
	verifier ports.ArtifactVerifier,
	telemetry ports.Telemetry,
	logger ports.Logger,
	outputDir string,
) *Pipeline {
	return &Pipeline{
		resolver:  resolver,
		sandbox:   sandbox,
		installer: installer,
		verifier:  verifier,
		telemetry: telemetry,
		logger:    logger,
		outputDir: outputDir,
	}
}

// Run executes the full pipeline for one request. The returned result is
// terminal: its Stage is Succeeded or Failed, never intermediate. The error
// carries the failure classification for exit-code mapping.
func (p *Pipeline) Run(ctx context.Context, req *domain.BuildRequest) (*domain.BuildResult, error) {
	result := &domain.BuildResult{ExitCode: -1, Stage: domain.StagePending}

	if err := req.Validate(); err != nil {
		return p.fail(result, err)
	}

	// Resolving: boot the environment, then probe for a usable toolchain.
	p.advance(result, domain.StageResolving)
	tc, err := p.resolve(ctx, req)
	if err != nil {
		return p.fail(result, err)
	}

	// Assembling: materialize the source tree, then derive the command. The
	// command is assembled against the workspace so relative paths hold at
	// execution time.
	p.advance(result, domain.StageAssembling)
	workDir, cmd, err := p.assemble(ctx, req, tc)
	if err != nil {
		return p.fail(result, err)
	}

	// Executing: install declared dependencies, then run the bundler.
	p.advance(result, domain.StageExecuting)
	if err := p.execute(ctx, req, tc, workDir, cmd, result); err != nil {
		return p.fail(result, err)
	}

	// Verifying: the artifact must exist even after a zero exit.
	p.advance(result, domain.StageVerifying)
	if err := p.verify(ctx, req, workDir, result); err != nil {
		return p.fail(result, err)
	}

	p.advance(result, domain.StageSucceeded)
	result.Succeeded = true
	return result, nil
}

func (p *Pipeline) resolve(ctx context.Context, req *domain.BuildRequest) (*domain.ResolvedToolchain, error) {
	vctx, vertex := p.telemetry.Record(ctx, req.ExecutableName+": resolve toolchain")

	tc, err := func() (*domain.ResolvedToolchain, error) {
		if err := p.sandbox.Init(vctx); err != nil {
			return nil, err
		}
		return p.resolver.Resolve(vctx)
	}()

	vertex.Complete(err)
	return tc, err
}

func (p *Pipeline) assemble(ctx context.Context, req *domain.BuildRequest, tc *domain.ResolvedToolchain) (string, *domain.BuildCommand, error) {
	vctx, vertex := p.telemetry.Record(ctx, req.ExecutableName+": assemble")

	workDir, err := p.sandbox.Materialize(vctx, req)
	if err != nil {
		vertex.Complete(err)
		return "", nil, err
	}

	// Paths in the command are workspace-relative: the bundler runs with the
	// workspace as its working directory, so host-absolute paths never leak
	// into the emulated side.
	local := localize(req)
	cmd, warnings := domain.AssembleCommand(local, tc, workspaceStat(workDir))
	for _, w := range warnings {
		p.logger.Warn(w)
		vertex.Log(domain.LogLevelWarn, w)
	}
	p.logger.Info("assembled command: " + cmd.String())

	vertex.Complete(nil)
	return workDir, cmd, nil
}

func (p *Pipeline) execute(ctx context.Context, req *domain.BuildRequest, tc *domain.ResolvedToolchain, workDir string, cmd *domain.BuildCommand, result *domain.BuildResult) error {
	vctx, vertex := p.telemetry.Record(ctx, req.ExecutableName+": build")

	if req.Requirements != "" {
		manifest := filepath.Join(workDir, domain.ManifestFileName)
		if err := p.installer.InstallRequirements(vctx, tc.Candidate, manifest); err != nil {
			vertex.Complete(err)
			return err
		}
	}

	res, err := p.sandbox.Run(vctx, ports.ExecSpec{
		Argv:    cmd.Argv(),
		WorkDir: workDir,
		Timeout: req.EffectiveTimeout(),
	})
	if err != nil {
		vertex.Complete(err)
		return err
	}

	result.ExitCode = res.ExitCode
	result.LogTail = res.LogTail
	if res.ExitCode != 0 {
		buildErr := errors.Join(domain.ErrBuildFailed, fmt.Errorf("bundler exited %d", res.ExitCode))
		buildErr = zerr.With(buildErr, "log_tail", res.LogTail)
		vertex.Complete(buildErr)
		return buildErr
	}

	vertex.Complete(nil)
	return nil
}

func (p *Pipeline) verify(ctx context.Context, req *domain.BuildRequest, workDir string, result *domain.BuildResult) error {
	_, vertex := p.telemetry.Record(ctx, req.ExecutableName+": verify")

	artifact, err := p.verifier.Verify(workDir, req.ExecutableName)
	if err != nil {
		vertex.Complete(err)
		return err
	}

	out, err := p.verifier.Extract(artifact, p.outputDir)
	if err != nil {
		vertex.Complete(err)
		return err
	}

	result.ArtifactPath = out
	p.logger.Info("artifact ready: " + out)
	vertex.Complete(nil)
	return nil
}

func (p *Pipeline) advance(result *domain.BuildResult, to domain.Stage) {
	if result.Stage.CanTransition(to) {
		result.Stage = to
	}
}

func (p *Pipeline) fail(result *domain.BuildResult, err error) (*domain.BuildResult, error) {
	err = zerr.With(err, "stage", string(result.Stage))
	result.Stage = domain.StageFailed
	result.Succeeded = false
	p.logger.Error(err)
	return result, err
}

// localize rewrites the request's paths to be workspace-relative. The entry
// script sits at the workspace root after materialization; an icon inside the
// source tree keeps its relative position, one outside it was staged at the
// workspace root under its base name.
func localize(req *domain.BuildRequest) *domain.BuildRequest {
	local := *req
	local.EntryScript = filepath.Base(req.EntryScript)

	if req.IconPath != "" {
		srcDir := filepath.Dir(req.EntryScript)
		if rel, err := filepath.Rel(srcDir, req.IconPath); err == nil && !strings.HasPrefix(rel, "..") {
			local.IconPath = rel
		} else {
			local.IconPath = filepath.Base(req.IconPath)
		}
	}
	return &local
}

// workspaceStat resolves relative paths against the workspace before checking
// existence, so assembly sees the materialized files.
func workspaceStat(workDir string) domain.StatFunc {
	return func(path string) error {
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		_, err := os.Stat(path)
		return err
	}
}
