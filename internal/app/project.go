package app

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// projectFile is the optional archgrid.yaml at the project root. It carries
// the settings that belong to the project rather than to one invocation;
// command-line flags take precedence over it.
type projectFile struct {
	// ArchPath points at the declaration file or directory.
	ArchPath string `yaml:"arch_path"`

	// CodeRoots lists the directories enumerated bottom-up.
	CodeRoots []string `yaml:"code_roots"`

	// IgnoreDirs lists directory names skipped during enumeration.
	IgnoreDirs []string `yaml:"ignore_dirs"`

	// FileConstraintKeys names the constraint keys whose values are file
	// references to be existence-checked by the reconciler.
	FileConstraintKeys []string `yaml:"file_constraint_keys"`

	// TestCommand is the external test tool, e.g. ["pytest"] or
	// ["go", "test"].
	TestCommand []string `yaml:"test_command"`
}

// mergeProjectFile loads the project file, if any, and fills in every
// config field the command line left empty. A missing default file is fine;
// an explicitly configured one must exist.
func mergeProjectFile(cfg *Config) error {
	path := cfg.ProjectFile
	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.BaseDir, "archgrid.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("reading project file %s: %w", path, err)
	}

	var pf projectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parsing project file %s: %w", path, err)
	}

	if pf.ArchPath != "" && cfg.ArchPath == "architecture" {
		// Only the flag default yields to the project file.
		cfg.ArchPath = pf.ArchPath
	}
	if len(cfg.CodeRoots) == 0 || equalStrings(cfg.CodeRoots, []string{"."}) {
		if len(pf.CodeRoots) > 0 {
			cfg.CodeRoots = pf.CodeRoots
		}
	}
	if len(cfg.IgnoreDirs) == 0 {
		cfg.IgnoreDirs = pf.IgnoreDirs
	}
	if len(cfg.FileConstraintKeys) == 0 {
		cfg.FileConstraintKeys = pf.FileConstraintKeys
	}
	if equalStrings(cfg.TestCommand, []string{"pytest"}) && len(pf.TestCommand) > 0 {
		cfg.TestCommand = pf.TestCommand
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
