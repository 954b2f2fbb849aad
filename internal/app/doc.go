// Package app wires the application together: configuration, logging,
// declaration loading, registry population, and command dispatch.
package app
