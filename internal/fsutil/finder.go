// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultIgnoreDirs are directory names skipped during source enumeration
// when the caller does not supply its own set.
var DefaultIgnoreDirs = []string{".git", "node_modules", "vendor", "__pycache__", ".venv", "venv"}

// FindSourceFiles recursively enumerates all files under the given roots
// whose extension is in extensions, skipping any directory whose base name
// is in ignoreDirs. Paths are returned relative to baseDir, deduplicated,
// and sorted so enumeration order is stable across runs and platforms.
//
// A root that does not exist is not an error; it contributes no files.
func FindSourceFiles(baseDir string, roots []string, extensions []string, ignoreDirs []string) ([]string, error) {
	if len(extensions) == 0 {
		return nil, nil
	}
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	ignore := make(map[string]struct{}, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignore[d] = struct{}{}
	}

	seen := make(map[string]struct{})
	var files []string

	for _, root := range roots {
		rootPath := filepath.Join(baseDir, root)
		if _, err := os.Stat(rootPath); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if _, skip := ignore[d.Name()]; skip && path != rootPath {
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := extSet[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil
			}
			rel, err := filepath.Rel(baseDir, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if _, dup := seen[rel]; !dup {
				seen[rel] = struct{}{}
				files = append(files, rel)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
