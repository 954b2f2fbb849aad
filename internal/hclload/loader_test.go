package hclload

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/archgrid/internal/model"
	"github.com/vk/archgrid/internal/testutil"
)

const fullDecl = `
goal "G-1" {
  name            = "Fast search"
  acceptance_test = "tests/test_search.py"
  description     = "Queries return within budget."
}

solution "S-1" {
  name      = "Inverted index"
  satisfies = ["G-1"]
  requires  = ["S-2"]

  constraints {
    latency_ms = 200
    approach   = "event-driven"
    stages     = ["ingest", "query"]
  }
}

solution "S-2" {
  name           = "Tokenizer"
  satisfies      = ["G-1"]
  conflicts_with = ["S-1"]
}

implementation "I-1" {
  name       = "Index builder"
  implements = "S-1"
  code_files = ["src/index.py"]
  test_files = ["tests/test_index.py"]
  must_define = {
    "src/index.py" = ["build_index", "Index"]
  }
}

verification "V-1" {
  name           = "Index unit tests"
  kind           = "unit"
  verifies       = "I-1"
  test_file      = "tests/test_index.py"
  test_functions = ["test_build"]
}

measurement "S-1" {
  latency_ms = 180
}
`

func TestLoadSingleFile(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{"arch.hcl": fullDecl})

	decl, err := NewLoader().Load(context.Background(), filepath.Join(dir, "arch.hcl"))
	require.NoError(t, err)
	require.Len(t, decl.Nodes, 5)

	goal, ok := decl.Nodes[0].(model.Goal)
	require.True(t, ok)
	assert.Equal(t, "G-1", goal.ID())
	assert.Equal(t, "Fast search", goal.Name())
	assert.Equal(t, "tests/test_search.py", goal.AcceptanceTest)
	assert.Equal(t, "Queries return within budget.", goal.Description)

	sol, ok := decl.Nodes[1].(model.Solution)
	require.True(t, ok)
	assert.Equal(t, []string{"G-1"}, sol.Satisfies)
	assert.Equal(t, []string{"S-2"}, sol.Requires)
	require.Len(t, sol.Constraints, 3)
	assert.True(t, sol.Constraints["latency_ms"].RawEquals(cty.NumberIntVal(200)))
	assert.True(t, sol.Constraints["approach"].RawEquals(cty.StringVal("event-driven")))
	assert.True(t, sol.Constraints["stages"].RawEquals(
		cty.TupleVal([]cty.Value{cty.StringVal("ingest"), cty.StringVal("query")})))

	sol2, ok := decl.Nodes[2].(model.Solution)
	require.True(t, ok)
	assert.Equal(t, []string{"S-1"}, sol2.ConflictsWith)
	assert.Nil(t, sol2.Constraints)

	impl, ok := decl.Nodes[3].(model.Implementation)
	require.True(t, ok)
	assert.Equal(t, "S-1", impl.Implements)
	assert.Equal(t, []string{"src/index.py"}, impl.CodeFiles)
	assert.Equal(t, map[string][]string{"src/index.py": {"build_index", "Index"}}, impl.MustDefine)

	ver, ok := decl.Nodes[4].(model.Verification)
	require.True(t, ok)
	assert.Equal(t, model.VerifyUnit, ver.Class)
	assert.Equal(t, "I-1", ver.Verifies)
	assert.Equal(t, []string{"test_build"}, ver.TestFunctions)

	require.Len(t, decl.Measurements, 1)
	assert.Equal(t, "S-1", decl.Measurements[0].NodeID)
	assert.Equal(t, "latency_ms", decl.Measurements[0].Key)
	assert.True(t, decl.Measurements[0].Value.RawEquals(cty.NumberIntVal(180)))
}

func TestLoadDirectoryMergesFilesInSortedOrder(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"arch/20-solutions.hcl": `
solution "S-1" {
  name      = "s"
  satisfies = ["G-1"]
}
`,
		"arch/10-goals.hcl": `
goal "G-1" {
  name            = "g"
  acceptance_test = "t.py"
}
`,
		"arch/notes.txt": "not a declaration\n",
	})

	decl, err := NewLoader().Load(context.Background(), filepath.Join(dir, "arch"))
	require.NoError(t, err)
	require.Len(t, decl.Nodes, 2)
	assert.Equal(t, "G-1", decl.Nodes[0].ID())
	assert.Equal(t, "S-1", decl.Nodes[1].ID())
}

func TestLoadDuplicateIDsPassThrough(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{"arch.hcl": `
goal "X-1" {
  name            = "first"
  acceptance_test = "t.py"
}

goal "X-1" {
  name            = "second"
  acceptance_test = "t.py"
}
`})

	decl, err := NewLoader().Load(context.Background(), filepath.Join(dir, "arch.hcl"))
	require.NoError(t, err, "duplicate ids are a validation finding, not a load error")
	assert.Len(t, decl.Nodes, 2)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{"arch.hcl": `goal "G-1" {`})

	_, err := NewLoader().Load(context.Background(), filepath.Join(dir, "arch.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arch.hcl")
}

func TestLoadMissingRequiredAttribute(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{"arch.hcl": `
goal "G-1" {
  name = "no acceptance test"
}
`})

	_, err := NewLoader().Load(context.Background(), filepath.Join(dir, "arch.hcl"))
	require.Error(t, err)
}

func TestLoadUnknownVerificationKind(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{"arch.hcl": `
verification "V-1" {
  name      = "v"
  kind      = "vibes"
  verifies  = "S-1"
  test_file = "t.py"
}
`})

	_, err := NewLoader().Load(context.Background(), filepath.Join(dir, "arch.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown kind "vibes"`)
}

func TestLoadEmptyDirectory(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{"arch/.keep": ""})

	_, err := NewLoader().Load(context.Background(), filepath.Join(dir, "arch"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .hcl declaration files")
}

func TestLoadMissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), "/does/not/exist")
	require.Error(t, err)
}
