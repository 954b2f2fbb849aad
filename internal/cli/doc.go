// Package cli is the thin argument-parsing shell around the application:
// subcommand selection, flags, and exit codes. All real work happens in the
// app package and below.
package cli
