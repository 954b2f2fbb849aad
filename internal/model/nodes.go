package model

import "github.com/zclconf/go-cty/cty"

// Kind identifies which variant of the node set a value belongs to. The set
// is closed: every node in an architecture is exactly one of these.
type Kind int

const (
	KindGoal Kind = iota
	KindSolution
	KindImplementation
	KindVerification
)

// String returns the lowercase block-type name used in declaration files.
func (k Kind) String() string {
	switch k {
	case KindGoal:
		return "goal"
	case KindSolution:
		return "solution"
	case KindImplementation:
		return "implementation"
	case KindVerification:
		return "verification"
	}
	return "unknown"
}

// Node is the capability shared by every architecture node. Kind-specific
// payloads live on the concrete structs; callers type-switch when they need
// them.
type Node interface {
	ID() string
	Name() string
	Kind() Kind
}

// Base carries the fields common to all node kinds.
type Base struct {
	Tag   string // unique id, e.g. "G-1"
	Title string // human-readable name
}

func (b Base) ID() string   { return b.Tag }
func (b Base) Name() string { return b.Title }

// Goal is a business objective, verified by an external acceptance artifact.
type Goal struct {
	Base
	AcceptanceTest string
	Description    string
}

func (Goal) Kind() Kind { return KindGoal }

// Solution is an architectural strategy. It satisfies Goals, may require
// other Solutions (the requires relation must form a DAG), may declare
// incompatibility with other Solutions, and carries an open map of opaque
// constraint values.
type Solution struct {
	Base
	Satisfies     []string
	Requires      []string
	ConflictsWith []string
	Constraints   map[string]cty.Value
	Description   string
}

func (Solution) Kind() Kind { return KindSolution }

// Implementation declares the physical code and test artifacts realizing
// exactly one Solution, plus the symbols each file must define.
type Implementation struct {
	Base
	Implements  string
	CodeFiles   []string
	TestFiles   []string
	MustDefine  map[string][]string
	Description string
}

func (Implementation) Kind() Kind { return KindImplementation }

// Files returns the implementation's code and test files as one list, code
// files first, in declared order.
func (i Implementation) Files() []string {
	out := make([]string, 0, len(i.CodeFiles)+len(i.TestFiles))
	out = append(out, i.CodeFiles...)
	out = append(out, i.TestFiles...)
	return out
}

// VerificationClass distinguishes the level a verification record operates at.
type VerificationClass string

const (
	VerifyAcceptance  VerificationClass = "acceptance"
	VerifySystem      VerificationClass = "system"
	VerifyIntegration VerificationClass = "integration"
	VerifyUnit        VerificationClass = "unit"
)

// Valid reports whether the class is one of the recognized levels.
func (c VerificationClass) Valid() bool {
	switch c {
	case VerifyAcceptance, VerifySystem, VerifyIntegration, VerifyUnit:
		return true
	}
	return false
}

// Verification records a test artifact that verifies a target node: the
// file holding the tests and the test function symbols required in it.
type Verification struct {
	Base
	Class         VerificationClass
	Verifies      string
	TestFile      string
	TestFunctions []string
}

func (Verification) Kind() Kind { return KindVerification }
