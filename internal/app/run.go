package app

import (
	"context"
	"fmt"

	"github.com/vk/archgrid/internal/briefing"
	"github.com/vk/archgrid/internal/ctxlog"
	"github.com/vk/archgrid/internal/inventory"
	"github.com/vk/archgrid/internal/report"
	"github.com/vk/archgrid/internal/symbols"
	"github.com/vk/archgrid/internal/testrun"
	"github.com/vk/archgrid/internal/validate"
)

// Run executes the configured command and returns the process exit code.
// A non-nil error is a failure of the tool itself or a user-input mistake;
// validation findings are not errors and only influence the exit code.
func (a *App) Run(ctx context.Context) (int, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	switch a.cfg.Command {
	case "validate":
		return a.runValidate(ctx)
	case "spec":
		return a.runSpec(ctx)
	case "test":
		return a.runTest(ctx)
	}
	return 1, fmt.Errorf("unknown command %q", a.cfg.Command)
}

// runValidate runs the full pass: graph checks plus inventory
// reconciliation, everything accumulated into one report. Exit code is 0
// iff there are zero errors; warnings alone never fail the run.
func (a *App) runValidate(ctx context.Context) (int, error) {
	rep := report.New()
	a.duplicateFindings(rep)

	validate.Run(ctx, a.reg, rep)

	rec := inventory.New(symbols.New(), inventory.Options{
		BaseDir:            a.cfg.BaseDir,
		CodeRoots:          a.cfg.CodeRoots,
		IgnoreDirs:         a.cfg.IgnoreDirs,
		FileConstraintKeys: a.cfg.FileConstraintKeys,
		Workers:            a.cfg.Workers,
	})
	if err := rec.Run(ctx, a.reg, rep); err != nil {
		return 1, err
	}

	fmt.Fprint(a.outW, rep.Render())
	if rep.HasErrors() {
		return 1, nil
	}
	return 0, nil
}

// runSpec writes the briefing for one node to stdout.
func (a *App) runSpec(ctx context.Context) (int, error) {
	b, err := briefing.Slice(a.reg, a.cfg.NodeID)
	if err != nil {
		return 1, err
	}
	fmt.Fprint(a.outW, b.Render())
	return 0, nil
}

// runTest resolves the node's test artifacts and hands them to the
// external runner, propagating its exit code verbatim.
func (a *App) runTest(ctx context.Context) (int, error) {
	files, err := testrun.ResolveTests(a.reg, a.cfg.NodeID)
	if err != nil {
		return 1, err
	}

	runner := &testrun.ExecRunner{
		Command: a.cfg.TestCommand,
		Dir:     a.cfg.BaseDir,
		Stdout:  a.outW,
		Stderr:  a.errW,
	}
	return runner.Run(ctx, files)
}
