// Package hclload reads an architecture declaration from HCL files: goal,
// solution, implementation, verification, and measurement blocks. It
// produces a flat, caller-owned node list; it does not build the registry
// itself and performs no validation beyond decoding.
package hclload
