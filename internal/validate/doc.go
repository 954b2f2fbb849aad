// Package validate holds the graph-side consistency checks: reference
// resolution, cycle detection over solution dependencies, traceability and
// orphan detection, conflict-declaration symmetry, and the measured
// constraint comparison layer. Filesystem reality is the inventory
// package's job; both feed the same report.
package validate
