package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/archgrid/internal/ctxlog"
	"github.com/vk/archgrid/internal/hclload"
	"github.com/vk/archgrid/internal/registry"
	"github.com/vk/archgrid/internal/report"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle for one invocation.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	cfg    *Config

	reg *registry.Registry
	// duplicates holds the id collisions found while populating the
	// registry; they surface as DuplicateId findings during validate.
	duplicates []*registry.DuplicateIDError
}

// NewApp is the constructor for the main application. It builds an isolated
// logger, merges the project file into the config, loads the declaration,
// and populates the registry. Duplicate ids do not fail construction; they
// are carried into the validation report so every collision is reported at
// once.
func NewApp(outW, errW io.Writer, cfg *Config, loader *hclload.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	if err := mergeProjectFile(cfg); err != nil {
		return nil, err
	}
	logger.Debug("Configuration assembled.", "command", cfg.Command, "arch", cfg.ArchPath, "root", cfg.BaseDir)

	decl, err := loader.Load(ctx, cfg.ArchPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load declaration: %w", err)
	}

	reg, regErrs := registry.FromNodes(decl.Nodes)
	var duplicates []*registry.DuplicateIDError
	for _, err := range regErrs {
		var dup *registry.DuplicateIDError
		if errors.As(err, &dup) {
			duplicates = append(duplicates, dup)
			continue
		}
		return nil, err
	}

	for _, m := range decl.Measurements {
		if _, ok := reg.Resolve(m.NodeID); !ok {
			logger.Warn("Measurement targets an unknown node; ignored.", "node", m.NodeID, "key", m.Key)
			continue
		}
		reg.SetMeasured(m.NodeID, m.Key, m.Value)
	}
	logger.Debug("Registry populated.", "nodes", reg.Len(), "duplicate_ids", len(duplicates))

	return &App{
		outW:       outW,
		errW:       errW,
		logger:     logger,
		cfg:        cfg,
		reg:        reg,
		duplicates: duplicates,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.reg
}

// duplicateFindings converts registration collisions into report findings.
func (a *App) duplicateFindings(rep *report.Report) {
	for _, dup := range a.duplicates {
		rep.AddError(report.DuplicateID, dup.ID, "", "",
			fmt.Sprintf("id declared more than once (first as %s)", dup.Existing))
	}
}
