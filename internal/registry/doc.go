// Package registry stores the node set of one architecture declaration and
// resolves id references between nodes.
//
// Construction is explicit: the caller builds the complete node list and
// hands it to FromNodes. There is no process-wide registry and no
// registration as a side effect of node construction, so repeated, isolated
// validation runs can coexist in one process.
package registry
