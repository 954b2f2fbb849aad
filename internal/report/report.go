package report

import (
	"fmt"
	"sort"
	"strings"
)

// Severity splits findings into the two classes the validate command cares
// about: errors fail the run, warnings are reported and do not.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Code identifies one class of finding.
type Code string

const (
	// Errors.
	DuplicateID            Code = "DuplicateId"
	UnknownReference       Code = "UnknownReference"
	CircularDependency     Code = "CircularDependency"
	OrphanGoal             Code = "OrphanGoal"
	OrphanSolution         Code = "OrphanSolution"
	MissingFile            Code = "MissingFile"
	MissingSymbol          Code = "MissingSymbol"
	MissingTestFunction    Code = "MissingTestFunction"
	UndeclaredFile         Code = "UndeclaredFile"
	DuplicateFileOwnership Code = "DuplicateFileOwnership"
	ParseFailure           Code = "ParseFailure"

	// Warnings.
	UnimplementedSolution Code = "UnimplementedSolution"
	AsymmetricConflict    Code = "AsymmetricConflict"
	ConstraintOverrun     Code = "ConstraintOverrun"
)

// Finding is one accumulated validation result. Findings are data, not Go
// errors: no check short-circuits another, everything is collected and
// reported in one pass.
type Finding struct {
	Severity Severity
	Code     Code
	NodeID   string // owning/attributed node, may be empty (e.g. UndeclaredFile)
	File     string
	Symbol   string
	Detail   string
}

// String renders one finding as a stable single line.
func (f Finding) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]", f.Severity, f.Code)
	if f.NodeID != "" {
		fmt.Fprintf(&b, " %s", f.NodeID)
	}
	b.WriteString(":")
	if f.File != "" {
		fmt.Fprintf(&b, " %s", f.File)
	}
	if f.Symbol != "" {
		fmt.Fprintf(&b, " %s", f.Symbol)
	}
	if f.Detail != "" {
		fmt.Fprintf(&b, " %s", f.Detail)
	}
	return b.String()
}

// Report accumulates findings across all checks of one validation pass.
type Report struct {
	findings []Finding
}

// New creates an empty report.
func New() *Report {
	return &Report{}
}

// Add appends a finding.
func (r *Report) Add(f Finding) {
	r.findings = append(r.findings, f)
}

// AddError is shorthand for Add with SeverityError.
func (r *Report) AddError(code Code, nodeID, file, symbol, detail string) {
	r.Add(Finding{Severity: SeverityError, Code: code, NodeID: nodeID, File: file, Symbol: symbol, Detail: detail})
}

// AddWarning is shorthand for Add with SeverityWarning.
func (r *Report) AddWarning(code Code, nodeID, file, symbol, detail string) {
	r.Add(Finding{Severity: SeverityWarning, Code: code, NodeID: nodeID, File: file, Symbol: symbol, Detail: detail})
}

// Merge appends every finding of other into r.
func (r *Report) Merge(other *Report) {
	r.findings = append(r.findings, other.findings...)
}

// HasErrors reports whether any error-severity finding was accumulated.
// Warnings alone never fail a validation run.
func (r *Report) HasErrors() bool {
	for _, f := range r.findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the error-severity findings in sorted order.
func (r *Report) Errors() []Finding {
	return r.bySeverity(SeverityError)
}

// Warnings returns the warning-severity findings in sorted order.
func (r *Report) Warnings() []Finding {
	return r.bySeverity(SeverityWarning)
}

func (r *Report) bySeverity(s Severity) []Finding {
	var out []Finding
	for _, f := range r.findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	sortFindings(out)
	return out
}

// sortFindings orders findings by a deterministic key so that neither
// registration order nor worker completion order influences report content.
func sortFindings(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		a, b := fs[i], fs[j]
		if a.NodeID != b.NodeID {
			return a.NodeID < b.NodeID
		}
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Detail < b.Detail
	})
}

// Render writes the full report as plain text: errors first, then warnings,
// then a one-line summary. Output is byte-identical for identical findings.
func (r *Report) Render() string {
	var b strings.Builder
	errs := r.Errors()
	warns := r.Warnings()

	for _, f := range errs {
		b.WriteString(f.String())
		b.WriteString("\n")
	}
	for _, f := range warns {
		b.WriteString(f.String())
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%d error(s), %d warning(s)\n", len(errs), len(warns))
	return b.String()
}
