package hclload

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/archgrid/internal/ctxlog"
	"github.com/vk/archgrid/internal/model"
)

// Measurement is one observed constraint value destined for the registry's
// annotation layer.
type Measurement struct {
	NodeID string
	Key    string
	Value  cty.Value
}

// Declaration is the loaded architecture: the complete node list in file
// order plus any post-hoc measurements. The caller owns it and hands it to
// the registry explicitly.
type Declaration struct {
	Nodes        []model.Node
	Measurements []Measurement
}

// Loader reads architecture declarations from .hcl files.
type Loader struct{}

// NewLoader creates a new declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file at path (a file or a directory walked
// recursively) and translates the blocks into model nodes. Files are
// processed in sorted path order so the resulting node order is stable.
//
// A malformed declaration is a hard error: it is caller input, not a
// validation finding. Duplicate ids are deliberately NOT rejected here; the
// registry collects them so validate can report every collision at once.
func (l *Loader) Load(ctx context.Context, path string) (*Declaration, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findDeclFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl declaration files found at %s", path)
	}
	logger.Debug("Discovered declaration files.", "count", len(files))

	parser := hclparse.NewParser()
	decl := &Declaration{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse declaration file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode declaration file %s: %w", file, diags)
		}

		if err := l.translate(decl, &root); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}

	logger.Debug("Declaration loading complete.",
		"nodes", len(decl.Nodes), "measurements", len(decl.Measurements))
	return decl, nil
}

// findDeclFiles resolves path to the sorted list of .hcl files beneath it.
func findDeclFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing declaration path %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(p) == ".hcl" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// opaqueAttributes evaluates every attribute of a body into a cty value.
// Values stay opaque: no schema, no functions, no variables.
func opaqueAttributes(body hcl.Body) (map[string]cty.Value, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("decoding attributes: %w", diags)
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	out := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating attribute %q: %w", name, diags)
		}
		out[name] = val
	}
	return out, nil
}
