package validate

import (
	"github.com/vk/archgrid/internal/registry"
	"github.com/vk/archgrid/internal/report"
)

// checkTraceability enforces the Goal↔Solution↔Implementation chains: every
// Goal needs a satisfying Solution, every Solution needs a satisfied Goal.
// A Solution without an Implementation is only a warning; implementation
// may be in progress.
func checkTraceability(reg *registry.Registry, rep *report.Report) {
	satisfiedGoals := make(map[string]int)
	implementedSolutions := make(map[string]int)

	for _, sol := range reg.Solutions() {
		for _, goalID := range sol.Satisfies {
			satisfiedGoals[goalID]++
		}
	}
	for _, impl := range reg.Implementations() {
		implementedSolutions[impl.Implements]++
	}

	for _, goal := range reg.Goals() {
		if satisfiedGoals[goal.ID()] == 0 {
			rep.AddError(report.OrphanGoal, goal.ID(), "", "",
				"not satisfied by any solution")
		}
	}

	for _, sol := range reg.Solutions() {
		if len(sol.Satisfies) == 0 {
			rep.AddError(report.OrphanSolution, sol.ID(), "", "",
				"satisfies no goals")
		}
		if implementedSolutions[sol.ID()] == 0 {
			rep.AddWarning(report.UnimplementedSolution, sol.ID(), "", "",
				"has no implementation")
		}
	}
}
