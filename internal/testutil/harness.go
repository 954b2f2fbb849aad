// Package testutil provides shared helpers for package tests: temp project
// trees and pre-registered architecture fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/archgrid/internal/model"
	"github.com/vk/archgrid/internal/registry"
)

// WriteTree materializes the given relative-path→content map under a fresh
// temp directory and returns its path.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		WriteFile(t, dir, rel, content)
	}
	return dir
}

// WriteFile writes one file under dir, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// MustRegistry builds a registry from nodes and fails the test on any
// duplicate id.
func MustRegistry(t *testing.T, nodes ...model.Node) *registry.Registry {
	t.Helper()
	reg, errs := registry.FromNodes(nodes)
	require.Empty(t, errs)
	return reg
}

// Goal is a fixture shorthand.
func Goal(id, acceptanceTest string) model.Goal {
	return model.Goal{
		Base:           model.Base{Tag: id, Title: "goal " + id},
		AcceptanceTest: acceptanceTest,
	}
}

// Solution is a fixture shorthand; satisfies and requires may be nil.
func Solution(id string, satisfies, requires []string) model.Solution {
	return model.Solution{
		Base:      model.Base{Tag: id, Title: "solution " + id},
		Satisfies: satisfies,
		Requires:  requires,
	}
}

// Implementation is a fixture shorthand.
func Implementation(id, implements string, codeFiles []string, mustDefine map[string][]string) model.Implementation {
	return model.Implementation{
		Base:       model.Base{Tag: id, Title: "implementation " + id},
		Implements: implements,
		CodeFiles:  codeFiles,
		MustDefine: mustDefine,
	}
}
