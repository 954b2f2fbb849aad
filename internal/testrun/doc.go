// Package testrun resolves a node id to its verification artifacts and
// hands them to an external test-execution tool. The tool's exit code is
// propagated unchanged; nothing about its output is interpreted.
package testrun
