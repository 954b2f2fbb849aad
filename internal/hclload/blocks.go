package hclload

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes all recognized top-level blocks from any declaration
// file. Blocks may be spread across files in any combination.
type fileRoot struct {
	Goals           []*goalBlock           `hcl:"goal,block"`
	Solutions       []*solutionBlock       `hcl:"solution,block"`
	Implementations []*implementationBlock `hcl:"implementation,block"`
	Verifications   []*verificationBlock   `hcl:"verification,block"`
	Measurements    []*measurementBlock    `hcl:"measurement,block"`
}

type goalBlock struct {
	ID             string `hcl:"id,label"`
	Name           string `hcl:"name"`
	AcceptanceTest string `hcl:"acceptance_test"`
	Description    string `hcl:"description,optional"`
}

type solutionBlock struct {
	ID            string            `hcl:"id,label"`
	Name          string            `hcl:"name"`
	Satisfies     []string          `hcl:"satisfies,optional"`
	Requires      []string          `hcl:"requires,optional"`
	ConflictsWith []string          `hcl:"conflicts_with,optional"`
	Description   string            `hcl:"description,optional"`
	Constraints   *constraintsBlock `hcl:"constraints,block"`
}

// constraintsBlock keeps its body undecoded; constraint values are opaque
// to the loader and are evaluated attribute-by-attribute into cty values.
type constraintsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type implementationBlock struct {
	ID          string              `hcl:"id,label"`
	Name        string              `hcl:"name"`
	Implements  string              `hcl:"implements"`
	CodeFiles   []string            `hcl:"code_files,optional"`
	TestFiles   []string            `hcl:"test_files,optional"`
	MustDefine  map[string][]string `hcl:"must_define,optional"`
	Description string              `hcl:"description,optional"`
}

type verificationBlock struct {
	ID            string   `hcl:"id,label"`
	Name          string   `hcl:"name"`
	Class         string   `hcl:"kind"`
	Verifies      string   `hcl:"verifies"`
	TestFile      string   `hcl:"test_file"`
	TestFunctions []string `hcl:"test_functions,optional"`
}

// measurementBlock attaches observed constraint values to an existing node
// after the fact. Its label is the target node id.
type measurementBlock struct {
	Target string   `hcl:"target,label"`
	Body   hcl.Body `hcl:",remain"`
}
