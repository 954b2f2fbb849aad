package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command string // validate, spec, or test
	NodeID  string // target node for spec/test

	ArchPath    string // declaration file or directory
	BaseDir     string // project root for all declared paths
	ProjectFile string // optional archgrid.yaml; "" means BaseDir/archgrid.yaml if present

	CodeRoots          []string // roots for bottom-up enumeration, relative to BaseDir
	IgnoreDirs         []string
	FileConstraintKeys []string // constraint keys validated as file references
	TestCommand        []string // external test tool and fixed leading args

	LogFormat string
	LogLevel  string
	Workers   int
}

// NewConfig validates a Config and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case "validate", "spec", "test":
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	if cfg.ArchPath == "" {
		return nil, errors.New("ArchPath is a required configuration field and cannot be empty")
	}
	if (cfg.Command == "spec" || cfg.Command == "test") && cfg.NodeID == "" {
		return nil, fmt.Errorf("the %s command requires --id", cfg.Command)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
	if len(cfg.CodeRoots) == 0 {
		cfg.CodeRoots = []string{"."}
	}
	if len(cfg.TestCommand) == 0 {
		cfg.TestCommand = []string{"pytest"}
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &cfg, nil
}
