package python

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/zerr"
)

// probeTimeout bounds a single availability check. Interpreter startup under
// emulation is slow on a cold prefix.
const probeTimeout = 2 * time.Minute

// Resolver implements ports.ToolchainResolver. Candidates are probed in list
// order; each probe is independent and idempotent, so re-probing after
// remediation repeats the exact same checks.
type Resolver struct {
	candidates []domain.ToolchainCandidate
	sandbox    ports.Sandbox
	installer  ports.PackageInstaller
	logger     ports.Logger
	remediate  bool
}

// NewResolver creates a Resolver over the given ordered candidate list. When
// remediate is true a fully failed probe pass triggers one bundler install
// against the best available interpreter before the single re-probe.
func NewResolver(
	candidates []domain.ToolchainCandidate,
	sandbox ports.Sandbox,
	installer ports.PackageInstaller,
	logger ports.Logger,
	remediate bool,
) *Resolver {
	return &Resolver{
		candidates: candidates,
		sandbox:    sandbox,
		installer:  installer,
		logger:     logger,
		remediate:  remediate,
	}
}

// Probe runs both availability checks for every candidate, without
// remediation.
func (r *Resolver) Probe(ctx context.Context) ([]domain.ProbeReport, error) {
	reports := make([]domain.ProbeReport, 0, len(r.candidates))
	for _, c := range r.candidates {
		reports = append(reports, r.probeOne(ctx, c))
	}
	return reports, nil
}

// Resolve returns the first candidate in list order satisfying both checks.
// If none does, it attempts the remediation install once and re-probes the
// same list exactly once.
func (r *Resolver) Resolve(ctx context.Context) (*domain.ResolvedToolchain, error) {
	reports, err := r.Probe(ctx)
	if err != nil {
		return nil, err
	}
	if tc := firstUsable(reports); tc != nil {
		r.logger.Info(fmt.Sprintf("toolchain resolved: %s (%s)", tc.Candidate.InterpreterPath, tc.Version))
		return tc, nil
	}

	if r.remediate {
		if best := bestInterpreter(reports); best != nil {
			r.logger.Warn(fmt.Sprintf("bundler missing everywhere, installing PyInstaller via %s", best.InterpreterPath))
			if err := r.installer.InstallBundler(ctx, *best); err != nil {
				return nil, err
			}
			reports, err = r.Probe(ctx)
			if err != nil {
				return nil, err
			}
			if tc := firstUsable(reports); tc != nil {
				r.logger.Info(fmt.Sprintf("toolchain resolved after remediation: %s", tc.Candidate.InterpreterPath))
				return tc, nil
			}
		}
	}

	return nil, unavailableError(reports)
}

func (r *Resolver) probeOne(ctx context.Context, c domain.ToolchainCandidate) domain.ProbeReport {
	report := domain.ProbeReport{Candidate: c}

	res, err := r.sandbox.Run(ctx, ports.ExecSpec{
		Argv:    []string{c.InterpreterPath, "--version"},
		Timeout: probeTimeout,
	})
	if err != nil || res.ExitCode != 0 {
		report.Detail = probeDetail(res, err)
		return report
	}
	report.InterpreterOK = true
	report.Version = strings.TrimSpace(res.LogTail)

	res, err = r.sandbox.Run(ctx, ports.ExecSpec{
		Argv:    []string{c.InterpreterPath, "-m", "PyInstaller", "--version"},
		Timeout: probeTimeout,
	})
	if err != nil || res.ExitCode != 0 {
		report.Detail = probeDetail(res, err)
		return report
	}
	report.BundlerOK = true

	return report
}

// firstUsable returns the first report in list order passing both checks,
// never a later-but-equally-valid one.
func firstUsable(reports []domain.ProbeReport) *domain.ResolvedToolchain {
	for _, rep := range reports {
		if rep.Usable() {
			return &domain.ResolvedToolchain{Candidate: rep.Candidate, Version: rep.Version}
		}
	}
	return nil
}

// bestInterpreter picks the remediation target: the first candidate whose
// interpreter check passed.
func bestInterpreter(reports []domain.ProbeReport) *domain.ToolchainCandidate {
	for _, rep := range reports {
		if rep.InterpreterOK {
			c := rep.Candidate
			return &c
		}
	}
	return nil
}

func unavailableError(reports []domain.ProbeReport) error {
	err := domain.ErrToolchainUnavailable
	for _, rep := range reports {
		var state string
		switch {
		case !rep.InterpreterOK:
			state = "interpreter missing"
		case !rep.BundlerOK:
			state = "bundler missing"
		}
		err = zerr.With(err, "candidate_"+rep.Candidate.Name, fmt.Sprintf("%s: %s", rep.Candidate.InterpreterPath, state))
	}
	return err
}

func probeDetail(res *ports.ExecResult, err error) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("exit %d: %s", res.ExitCode, strings.TrimSpace(res.LogTail))
}
