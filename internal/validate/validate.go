package validate

import (
	"context"

	"github.com/vk/archgrid/internal/ctxlog"
	"github.com/vk/archgrid/internal/registry"
	"github.com/vk/archgrid/internal/report"
)

// Run executes every graph check against the registry, accumulating
// findings into rep. Checks never short-circuit one another; each runs to
// completion over the whole graph.
func Run(ctx context.Context, reg *registry.Registry, rep *report.Report) {
	logger := ctxlog.FromContext(ctx)

	checkReferences(reg, rep)
	checkCycles(reg, rep)
	checkTraceability(reg, rep)
	checkConflicts(reg, rep)
	checkMeasured(reg, rep)

	logger.Debug("Graph checks complete.", "nodes", reg.Len())
}
