package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/archgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usageText = `
archgrid - an executable architecture validator.

Usage:
  archgrid <command> [options]

Commands:
  validate   Check the declared architecture against itself and the filesystem.
  spec       Write the mission briefing for one node to stdout (requires --id).
  test       Run the external test tool against one node's tests (requires --id).

Options:
`

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("archgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageText)
		flagSet.PrintDefaults()
	}

	if len(args) == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	command := args[0]
	switch command {
	case "validate", "spec", "test":
		// valid
	case "-h", "--help", "help":
		flagSet.Usage()
		return nil, true, nil
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q (expected validate, spec, or test)", command)}
	}

	idFlag := flagSet.String("id", "", "Target node id for the spec and test commands.")
	archFlag := flagSet.String("arch", "architecture", "Path to the declaration file or directory.")
	aFlag := flagSet.String("a", "", "Path to the declaration file or directory (shorthand).")
	rootFlag := flagSet.String("root", ".", "Project root all declared paths are relative to.")
	configFlag := flagSet.String("config", "", "Path to the optional archgrid.yaml project file.")
	workersFlag := flagSet.Int("workers", 10, "Number of concurrent workers for symbol extraction.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	archPath := *archFlag
	if *aFlag != "" {
		archPath = *aFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Command:     command,
		NodeID:      *idFlag,
		ArchPath:    archPath,
		BaseDir:     *rootFlag,
		ProjectFile: *configFlag,
		Workers:     *workersFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
