// Package app implements the application layer for crate.
package app

import (
	"context"
	"time"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/crate/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader         ports.ConfigLoader
	resolver       ports.ToolchainResolver
	sandbox        ports.Sandbox
	pipeline       *pipeline.Pipeline
	telemetry      ports.Telemetry
	logger         ports.Logger
	parallelism    int
	defaultTimeout time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.ToolchainResolver,
	sandbox ports.Sandbox,
	pipe *pipeline.Pipeline,
	telemetry ports.Telemetry,
	logger ports.Logger,
	parallelism int,
	defaultTimeout time.Duration,
) *App {
	if parallelism < 1 {
		parallelism = 1
	}
	return &App{
		loader:         loader,
		resolver:       resolver,
		sandbox:        sandbox,
		pipeline:       pipe,
		telemetry:      telemetry,
		logger:         logger,
		parallelism:    parallelism,
		defaultTimeout: defaultTimeout,
	}
}

// Close flushes and closes the telemetry session. Called once on shutdown.
func (a *App) Close() error {
	return a.telemetry.Close()
}

// Build runs the pipeline for a single ad-hoc request.
func (a *App) Build(ctx context.Context, req *domain.BuildRequest) (*domain.BuildResult, error) {
	a.applyDefaults(req)
	return a.pipeline.Run(ctx, req)
}

// PackOutcome pairs one configured tool with its terminal build result.
type PackOutcome struct {
	Name   string
	Result *domain.BuildResult
	Err    error
}

// Pack builds every tool configured in the cratefile at path. Builds run
// concurrently up to the configured parallelism; one failing build does not
// cancel the others. The returned error is the first failure in configuration
// order, so the process exit code reflects a deterministic build.
func (a *App) Pack(ctx context.Context, path string) ([]PackOutcome, error) {
	reqs, err := a.loader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	outcomes := make([]PackOutcome, len(reqs))
	var g errgroup.Group
	g.SetLimit(a.parallelism)
	for i := range reqs {
		req := reqs[i]
		g.Go(func() error {
			a.applyDefaults(&req)
			res, runErr := a.pipeline.Run(ctx, &req)
			outcomes[i] = PackOutcome{Name: req.ExecutableName, Result: res, Err: runErr}
			return nil
		})
	}
	// Build errors surface through outcomes, never through the group.
	_ = g.Wait()

	for _, o := range outcomes {
		if o.Err != nil {
			return outcomes, o.Err
		}
	}
	return outcomes, nil
}

// Doctor initializes the environment and reports the availability checks for
// every toolchain candidate, without remediation.
func (a *App) Doctor(ctx context.Context) ([]domain.ProbeReport, error) {
	if err := a.sandbox.Init(ctx); err != nil {
		return nil, err
	}
	return a.resolver.Probe(ctx)
}

func (a *App) applyDefaults(req *domain.BuildRequest) {
	if req.Timeout == 0 {
		req.Timeout = a.defaultTimeout
	}
}
