package validate

import (
	"fmt"

	"github.com/vk/archgrid/internal/model"
	"github.com/vk/archgrid/internal/registry"
	"github.com/vk/archgrid/internal/report"
)

// checkConflicts verifies conflict declarations are symmetric: if A
// declares a conflict with B, B should declare one with A. Asymmetry is a
// warning, reported once per missing direction.
func checkConflicts(reg *registry.Registry, rep *report.Report) {
	solutions := reg.Solutions()
	byID := make(map[string]model.Solution, len(solutions))
	for _, sol := range solutions {
		byID[sol.ID()] = sol
	}

	declares := func(sol model.Solution, other string) bool {
		for _, id := range sol.ConflictsWith {
			if id == other {
				return true
			}
		}
		return false
	}

	for _, sol := range solutions {
		for _, otherID := range sol.ConflictsWith {
			other, known := byID[otherID]
			if !known {
				continue // unknown reference, reported elsewhere
			}
			if !declares(other, sol.ID()) {
				rep.AddWarning(report.AsymmetricConflict, sol.ID(), "", "",
					fmt.Sprintf("declares conflict with %s, which does not declare the reverse", otherID))
			}
		}
	}
}
