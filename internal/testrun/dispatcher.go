package testrun

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/vk/archgrid/internal/ctxlog"
	"github.com/vk/archgrid/internal/model"
	"github.com/vk/archgrid/internal/registry"
)

// ResolveTests maps a node id to the ordered list of test files that verify
// it: a Goal resolves to its acceptance test, an Implementation to its
// declared test files. Any other id is a user-input error.
func ResolveTests(reg *registry.Registry, nodeID string) ([]string, error) {
	node, ok := reg.Resolve(nodeID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", registry.ErrNodeNotFound, nodeID)
	}

	switch n := node.(type) {
	case model.Goal:
		return []string{n.AcceptanceTest}, nil
	case model.Implementation:
		if len(n.TestFiles) == 0 {
			return nil, fmt.Errorf("node %q declares no test files", nodeID)
		}
		return append([]string{}, n.TestFiles...), nil
	default:
		return nil, fmt.Errorf("%w: %q is a %s, tests resolve only for goals and implementations", registry.ErrNodeNotFound, nodeID, node.Kind())
	}
}

// Runner executes a list of test files and reports the process exit code.
// The only contract with the external tool is "paths in, exit code out";
// its textual output is never parsed.
type Runner interface {
	Run(ctx context.Context, files []string) (int, error)
}

// ExecRunner invokes an external test command as a child process. The
// resolved file paths are appended to the configured command line and the
// child's exit code is propagated verbatim.
type ExecRunner struct {
	// Command is the test tool and its fixed leading arguments,
	// e.g. ["pytest"] or ["go", "test"].
	Command []string
	// Dir is the working directory for the child process.
	Dir string
	// Stdout and Stderr receive the child's output untouched.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the configured command against the given files.
func (r *ExecRunner) Run(ctx context.Context, files []string) (int, error) {
	if len(r.Command) == 0 {
		return 0, fmt.Errorf("no test command configured")
	}
	logger := ctxlog.FromContext(ctx)

	args := append(append([]string{}, r.Command[1:]...), files...)
	cmd := exec.CommandContext(ctx, r.Command[0], args...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	logger.Debug("Dispatching to external test runner.",
		"command", r.Command[0], "dir", r.Dir, "files", len(files))

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("running %s: %w", filepath.Base(r.Command[0]), err)
}
