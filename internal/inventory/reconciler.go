package inventory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/archgrid/internal/ctxlog"
	"github.com/vk/archgrid/internal/fsutil"
	"github.com/vk/archgrid/internal/registry"
	"github.com/vk/archgrid/internal/report"
	"github.com/vk/archgrid/internal/symbols"
)

// Options configures one reconciliation pass.
type Options struct {
	// BaseDir is the project root all declared paths are relative to.
	BaseDir string
	// CodeRoots are the directories enumerated bottom-up, relative to
	// BaseDir.
	CodeRoots []string
	// IgnoreDirs are directory base names skipped during enumeration.
	// Empty means fsutil.DefaultIgnoreDirs.
	IgnoreDirs []string
	// FileConstraintKeys names the constraint keys whose values are file
	// references to be existence-checked. All other constraint values stay
	// opaque.
	FileConstraintKeys []string
	// Workers sizes the symbol-extraction pool. Zero or negative means 1.
	Workers int
}

// Reconciler diffs the declared inventory against the filesystem in both
// directions. It reads the registry and the filesystem and never writes.
type Reconciler struct {
	extractor *symbols.Extractor
	opts      Options
}

// New creates a Reconciler using the given extractor.
func New(extractor *symbols.Extractor, opts Options) *Reconciler {
	if len(opts.IgnoreDirs) == 0 {
		opts.IgnoreDirs = fsutil.DefaultIgnoreDirs
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Reconciler{extractor: extractor, opts: opts}
}

// Run performs the full bidirectional reconciliation, accumulating findings
// into rep. Per-file symbol extraction is fanned out across a worker pool;
// file ownership is disjoint across implementations, so the jobs share no
// state, and all results are joined and sorted before the report renders.
func (r *Reconciler) Run(ctx context.Context, reg *registry.Registry, rep *report.Report) error {
	logger := ctxlog.FromContext(ctx)

	claimed := r.checkOwnership(reg, rep)
	r.checkDeclaredFiles(reg, rep)

	jobs := r.symbolJobs(reg)
	logger.Debug("Symbol extraction starting.", "jobs", len(jobs), "workers", r.opts.Workers)
	for _, f := range r.runPool(ctx, jobs) {
		rep.Add(f)
	}

	return r.checkUndeclared(ctx, claimed, rep)
}

// checkOwnership builds the claimed-file set and reports files claimed by
// more than one implementation. Goal acceptance tests and verification
// files count as claims for the bottom-up diff but cannot collide.
func (r *Reconciler) checkOwnership(reg *registry.Registry, rep *report.Report) map[string]struct{} {
	owners := make(map[string][]string)
	claimed := make(map[string]struct{})

	for _, impl := range reg.Implementations() {
		for _, file := range impl.Files() {
			owners[file] = append(owners[file], impl.ID())
			claimed[file] = struct{}{}
		}
	}
	for _, goal := range reg.Goals() {
		claimed[goal.AcceptanceTest] = struct{}{}
	}
	for _, ver := range reg.Verifications() {
		claimed[ver.TestFile] = struct{}{}
	}

	files := make([]string, 0, len(owners))
	for file := range owners {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		ids := owners[file]
		if len(ids) < 2 {
			continue
		}
		uniq := uniqueSorted(ids)
		if len(uniq) < 2 {
			continue // same implementation listing a file as both code and test
		}
		rep.AddError(report.DuplicateFileOwnership, "", file, "",
			"claimed by "+strings.Join(uniq, ", "))
	}

	return claimed
}

// checkDeclaredFiles verifies that every declared artifact exists on disk,
// including constraint values registered as file references.
func (r *Reconciler) checkDeclaredFiles(reg *registry.Registry, rep *report.Report) {
	exists := func(rel string) bool {
		_, err := os.Stat(filepath.Join(r.opts.BaseDir, rel))
		return err == nil
	}

	for _, goal := range reg.Goals() {
		if !exists(goal.AcceptanceTest) {
			rep.AddError(report.MissingFile, goal.ID(), goal.AcceptanceTest, "",
				"acceptance test file does not exist")
		}
	}
	for _, impl := range reg.Implementations() {
		for _, file := range impl.Files() {
			if !exists(file) {
				rep.AddError(report.MissingFile, impl.ID(), file, "",
					"declared file does not exist")
			}
		}
	}
	for _, ver := range reg.Verifications() {
		if !exists(ver.TestFile) {
			rep.AddError(report.MissingFile, ver.ID(), ver.TestFile, "",
				"test file does not exist")
		}
	}

	if len(r.opts.FileConstraintKeys) == 0 {
		return
	}
	refKeys := make(map[string]struct{}, len(r.opts.FileConstraintKeys))
	for _, key := range r.opts.FileConstraintKeys {
		refKeys[key] = struct{}{}
	}
	for _, sol := range reg.Solutions() {
		keys := make([]string, 0, len(sol.Constraints))
		for key := range sol.Constraints {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if _, ok := refKeys[key]; !ok {
				continue
			}
			val := sol.Constraints[key]
			if !val.IsKnown() || val.IsNull() || !val.Type().Equals(cty.String) {
				continue
			}
			if ref := val.AsString(); !exists(ref) {
				rep.AddError(report.MissingFile, sol.ID(), ref, "",
					fmt.Sprintf("constraint %q references a file that does not exist", key))
			}
		}
	}
}

// symbolJobs collects every (file, required symbols) pair that needs
// extraction: must_define entries from implementations and test_functions
// from verifications. Files already reported missing are skipped; one
// finding per cause.
func (r *Reconciler) symbolJobs(reg *registry.Registry) []symbolJob {
	var jobs []symbolJob

	for _, impl := range reg.Implementations() {
		files := make([]string, 0, len(impl.MustDefine))
		for file := range impl.MustDefine {
			files = append(files, file)
		}
		sort.Strings(files)
		for _, file := range files {
			required := impl.MustDefine[file]
			if len(required) == 0 {
				continue
			}
			jobs = append(jobs, symbolJob{
				nodeID:   impl.ID(),
				file:     file,
				required: required,
				code:     report.MissingSymbol,
			})
		}
	}

	for _, ver := range reg.Verifications() {
		if len(ver.TestFunctions) == 0 {
			continue
		}
		jobs = append(jobs, symbolJob{
			nodeID:   ver.ID(),
			file:     ver.TestFile,
			required: ver.TestFunctions,
			code:     report.MissingTestFunction,
		})
	}

	return jobs
}

// checkUndeclared is the bottom-up direction: every recognized source file
// under the code roots must be claimed by the declaration.
func (r *Reconciler) checkUndeclared(ctx context.Context, claimed map[string]struct{}, rep *report.Report) error {
	logger := ctxlog.FromContext(ctx)

	found, err := fsutil.FindSourceFiles(r.opts.BaseDir, r.opts.CodeRoots, r.extractor.Extensions(), r.opts.IgnoreDirs)
	if err != nil {
		return fmt.Errorf("enumerating code roots: %w", err)
	}
	logger.Debug("Bottom-up enumeration complete.", "files", len(found))

	for _, file := range found {
		if _, ok := claimed[file]; !ok {
			rep.AddError(report.UndeclaredFile, "", file, "",
				"not claimed by any implementation")
		}
	}
	return nil
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
