package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/archgrid/internal/model"
	"github.com/vk/archgrid/internal/report"
	"github.com/vk/archgrid/internal/symbols"
	"github.com/vk/archgrid/internal/testutil"
)

func reconcile(t *testing.T, baseDir string, workers int, nodes ...model.Node) *report.Report {
	t.Helper()
	reg := testutil.MustRegistry(t, nodes...)
	rep := report.New()
	r := New(symbols.New(), Options{BaseDir: baseDir, CodeRoots: []string{"."}, Workers: workers})
	require.NoError(t, r.Run(context.Background(), reg, rep))
	return rep
}

func codes(rep *report.Report) []report.Code {
	var out []report.Code
	for _, f := range append(rep.Errors(), rep.Warnings()...) {
		out = append(out, f.Code)
	}
	return out
}

func TestCleanProject(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"tests/test_g1.py": "def test_ok():\n    pass\n",
		"src/a.py":         "def handler():\n    pass\n",
	})

	rep := reconcile(t, dir, 1,
		testutil.Goal("G-1", "tests/test_g1.py"),
		testutil.Solution("S-1", []string{"G-1"}, nil),
		testutil.Implementation("I-1", "S-1", []string{"src/a.py"},
			map[string][]string{"src/a.py": {"handler"}}),
	)
	assert.False(t, rep.HasErrors(), rep.Render())
}

func TestMissingFileAndMissingSymbol(t *testing.T) {
	// The acceptance test file is absent entirely; the code file exists but
	// declares Bar where Foo is required. Exactly two errors, one per cause.
	dir := testutil.WriteTree(t, map[string]string{
		"a.py": "def Bar():\n    pass\n",
	})

	rep := reconcile(t, dir, 1,
		testutil.Goal("G-1", "t.py"),
		testutil.Solution("S-1", []string{"G-1"}, nil),
		testutil.Implementation("I-1", "S-1", []string{"a.py"},
			map[string][]string{"a.py": {"Foo"}}),
	)

	errs := rep.Errors()
	require.Len(t, errs, 2, rep.Render())

	assert.Equal(t, report.MissingFile, errs[0].Code)
	assert.Equal(t, "G-1", errs[0].NodeID)
	assert.Equal(t, "t.py", errs[0].File)

	assert.Equal(t, report.MissingSymbol, errs[1].Code)
	assert.Equal(t, "I-1", errs[1].NodeID)
	assert.Equal(t, "a.py", errs[1].File)
	assert.Equal(t, "Foo", errs[1].Symbol)
	assert.Equal(t, "symbol not declared at top level", errs[1].Detail)
}

func TestMissingDeclaredFileReportedOnce(t *testing.T) {
	// A declared file that does not exist yields MissingFile only; the
	// symbol job for the same file stays silent.
	dir := testutil.WriteTree(t, nil)

	rep := reconcile(t, dir, 1,
		testutil.Implementation("I-1", "S-1", []string{"gone.py"},
			map[string][]string{"gone.py": {"Foo"}}),
	)

	errs := rep.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, report.MissingFile, errs[0].Code)
}

func TestUndeclaredFile(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"src/a.py":     "x = 1\n",
		"src/rogue.py": "y = 2\n",
		"notes.md":     "not code\n",
	})

	rep := reconcile(t, dir, 1,
		testutil.Implementation("I-1", "S-1", []string{"src/a.py"}, nil),
	)

	errs := rep.Errors()
	require.Len(t, errs, 1, rep.Render())
	assert.Equal(t, report.UndeclaredFile, errs[0].Code)
	assert.Equal(t, "src/rogue.py", errs[0].File)
	assert.Equal(t, "not claimed by any implementation", errs[0].Detail)
}

func TestAcceptanceAndVerificationFilesCountAsClaims(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"tests/test_g1.py": "def test_g1():\n    pass\n",
		"tests/test_v1.py": "def test_v1():\n    pass\n",
	})

	rep := reconcile(t, dir, 1,
		testutil.Goal("G-1", "tests/test_g1.py"),
		model.Verification{
			Base:     model.Base{Tag: "V-1", Title: "v"},
			Class:    model.VerifyUnit,
			Verifies: "G-1",
			TestFile: "tests/test_v1.py",
		},
	)
	assert.NotContains(t, codes(rep), report.UndeclaredFile, rep.Render())
}

func TestDuplicateFileOwnership(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"shared.py": "x = 1\n",
	})

	rep := reconcile(t, dir, 1,
		testutil.Implementation("I-2", "S-1", []string{"shared.py"}, nil),
		testutil.Implementation("I-1", "S-1", []string{"shared.py"}, nil),
	)

	errs := rep.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, report.DuplicateFileOwnership, errs[0].Code)
	assert.Equal(t, "shared.py", errs[0].File)
	assert.Equal(t, "claimed by I-1, I-2", errs[0].Detail)
}

func TestSameImplementationMayListFileTwice(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"both.py": "x = 1\n",
	})

	impl := testutil.Implementation("I-1", "S-1", []string{"both.py"}, nil)
	impl.TestFiles = []string{"both.py"}

	rep := reconcile(t, dir, 1, impl)
	assert.NotContains(t, codes(rep), report.DuplicateFileOwnership)
}

func TestMissingTestFunction(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"tests/test_v1.py": "def test_present():\n    pass\n",
	})

	rep := reconcile(t, dir, 1,
		testutil.Implementation("I-1", "S-1", []string{"tests/test_v1.py"}, nil),
		model.Verification{
			Base:          model.Base{Tag: "V-1", Title: "v"},
			Class:         model.VerifyUnit,
			Verifies:      "I-1",
			TestFile:      "tests/test_v1.py",
			TestFunctions: []string{"test_present", "test_absent"},
		},
	)

	errs := rep.Errors()
	require.Len(t, errs, 1, rep.Render())
	assert.Equal(t, report.MissingTestFunction, errs[0].Code)
	assert.Equal(t, "V-1", errs[0].NodeID)
	assert.Equal(t, "test_absent", errs[0].Symbol)
}

func TestParseFailureOnBinaryFile(t *testing.T) {
	dir := testutil.WriteTree(t, nil)
	testutil.WriteFile(t, dir, "blob.py", "\x00\x01\x02")

	rep := reconcile(t, dir, 1,
		testutil.Implementation("I-1", "S-1", []string{"blob.py"},
			map[string][]string{"blob.py": {"Foo"}}),
	)

	errs := rep.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, report.ParseFailure, errs[0].Code)
	assert.Equal(t, "I-1", errs[0].NodeID)
	assert.Contains(t, errs[0].Detail, "binary or non-UTF-8")
}

func TestNonCodeFilesAreExcluded(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"config.toml": "[section]\nkey = 1\n",
	})

	rep := reconcile(t, dir, 1,
		testutil.Implementation("I-1", "S-1", []string{"config.toml"},
			map[string][]string{"config.toml": {"section"}}),
	)
	assert.False(t, rep.HasErrors(), rep.Render())
}

func TestFileConstraintReference(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"docs/adr-001.md": "# decision\n",
	})

	sol := testutil.Solution("S-1", nil, nil)
	sol.Constraints = map[string]cty.Value{
		"decision_record": cty.StringVal("docs/adr-002.md"),
		"latency_ms":      cty.NumberIntVal(200),
	}

	reg := testutil.MustRegistry(t, sol)
	rep := report.New()
	r := New(symbols.New(), Options{
		BaseDir:            dir,
		CodeRoots:          []string{"."},
		FileConstraintKeys: []string{"decision_record"},
		Workers:            1,
	})
	require.NoError(t, r.Run(context.Background(), reg, rep))

	errs := rep.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, report.MissingFile, errs[0].Code)
	assert.Equal(t, "S-1", errs[0].NodeID)
	assert.Equal(t, "docs/adr-002.md", errs[0].File)
}

func TestPoolOutputIsDeterministic(t *testing.T) {
	files := map[string]string{}
	var nodes []model.Node
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		files["src/"+name+".py"] = "def present():\n    pass\n"
	}
	dir := testutil.WriteTree(t, files)
	for _, name := range []string{"f", "b", "d", "a", "e", "c"} {
		rel := "src/" + name + ".py"
		nodes = append(nodes, testutil.Implementation("I-"+name, "S-1", []string{rel},
			map[string][]string{rel: {"present", "absent_" + name}}))
	}

	first := reconcile(t, dir, 4, nodes...).Render()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, reconcile(t, dir, 4, nodes...).Render())
	}
}
