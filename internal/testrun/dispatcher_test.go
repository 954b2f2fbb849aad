package testrun

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/archgrid/internal/registry"
	"github.com/vk/archgrid/internal/testutil"
)

func TestResolveTestsGoal(t *testing.T) {
	reg := testutil.MustRegistry(t, testutil.Goal("G-1", "tests/test_g1.py"))

	files, err := ResolveTests(reg, "G-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/test_g1.py"}, files)
}

func TestResolveTestsImplementation(t *testing.T) {
	impl := testutil.Implementation("I-1", "S-1", []string{"a.py"}, nil)
	impl.TestFiles = []string{"tests/test_a.py", "tests/test_b.py"}
	reg := testutil.MustRegistry(t, impl)

	files, err := ResolveTests(reg, "I-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/test_a.py", "tests/test_b.py"}, files)

	// The returned slice is a copy, not an alias into the registry.
	files[0] = "mutated"
	again, err := ResolveTests(reg, "I-1")
	require.NoError(t, err)
	assert.Equal(t, "tests/test_a.py", again[0])
}

func TestResolveTestsImplementationWithoutTests(t *testing.T) {
	reg := testutil.MustRegistry(t, testutil.Implementation("I-1", "S-1", []string{"a.py"}, nil))

	_, err := ResolveTests(reg, "I-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declares no test files")
}

func TestResolveTestsUnknownNode(t *testing.T) {
	reg := testutil.MustRegistry(t)
	_, err := ResolveTests(reg, "nope")
	require.ErrorIs(t, err, registry.ErrNodeNotFound)
}

func TestResolveTestsSolutionIsNotRunnable(t *testing.T) {
	reg := testutil.MustRegistry(t, testutil.Solution("S-1", nil, nil))
	_, err := ResolveTests(reg, "S-1")
	require.ErrorIs(t, err, registry.ErrNodeNotFound)
}

func TestExecRunnerPropagatesExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	var out, errOut bytes.Buffer
	r := &ExecRunner{
		Command: []string{"sh", "-c", "exit 7", "--"},
		Stdout:  &out,
		Stderr:  &errOut,
	}

	code, err := r.Run(context.Background(), []string{"t.py"})
	require.NoError(t, err)
	assert.Equal(t, 7, code)
}

func TestExecRunnerSuccessAndOutputPassthrough(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	var out bytes.Buffer
	r := &ExecRunner{
		Command: []string{"sh", "-c", `echo "ran: $@"`, "--"},
		Stdout:  &out,
	}

	code, err := r.Run(context.Background(), []string{"a.py", "b.py"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "ran: a.py b.py\n", out.String())
}

func TestExecRunnerMissingCommand(t *testing.T) {
	r := &ExecRunner{}
	_, err := r.Run(context.Background(), []string{"t.py"})
	require.Error(t, err)

	r = &ExecRunner{Command: []string{"definitely-not-a-real-tool-xyz"}}
	_, err = r.Run(context.Background(), nil)
	require.Error(t, err)
}
