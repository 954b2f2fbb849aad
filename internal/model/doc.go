// Package model defines the typed node set of an architecture declaration:
// Goals (the why), Solutions (the how), Implementations (the reality), and
// Verifications (the proof). Nodes are plain values constructed by the
// caller; all cross-node references are by id string and are resolved
// against a registry, never by pointer.
package model
