package validate

import (
	"strings"

	"github.com/vk/archgrid/internal/model"
	"github.com/vk/archgrid/internal/registry"
	"github.com/vk/archgrid/internal/report"
)

// Depth-first search colors over the requires relation.
const (
	unvisited = iota
	inProgress
	done
)

// checkCycles detects cycles in the requires relation among Solutions. Each
// cycle is reported once with its full path, e.g. [S-1, S-2, S-3, S-1].
// Edges to unknown solutions are ignored here; checkReferences owns those.
func checkCycles(reg *registry.Registry, rep *report.Report) {
	solutions := reg.Solutions()
	byID := make(map[string]model.Solution, len(solutions))
	for _, sol := range solutions {
		byID[sol.ID()] = sol
	}

	color := make(map[string]int, len(solutions))
	var stack []string

	var visit func(id string)
	visit = func(id string) {
		color[id] = inProgress
		stack = append(stack, id)

		for _, req := range byID[id].Requires {
			if _, known := byID[req]; !known {
				continue
			}
			switch color[req] {
			case unvisited:
				visit(req)
			case inProgress:
				reportCycle(rep, cycleFromStack(stack, req))
			}
		}

		stack = stack[:len(stack)-1]
		color[id] = done
	}

	for _, sol := range solutions {
		if color[sol.ID()] == unvisited {
			visit(sol.ID())
		}
	}
}

// cycleFromStack slices the current traversal path from the first
// occurrence of the back-edge target and closes the loop.
func cycleFromStack(stack []string, target string) []string {
	start := 0
	for i, id := range stack {
		if id == target {
			start = i
			break
		}
	}
	cycle := append([]string{}, stack[start:]...)
	return append(cycle, target)
}

// reportCycle emits one CircularDependency finding. The path is rotated so
// the lexicographically smallest id comes first: the same cycle must
// produce the same report regardless of registration order.
func reportCycle(rep *report.Report, cycle []string) {
	rotated := rotateCycle(cycle)
	rep.AddError(report.CircularDependency, rotated[0], "", "",
		"["+strings.Join(rotated, ", ")+"]")
}

func rotateCycle(cycle []string) []string {
	// cycle is closed: first element equals last. Rotate the open part.
	open := cycle[:len(cycle)-1]
	min := 0
	for i, id := range open {
		if id < open[min] {
			min = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, open[min:]...)
	out = append(out, open[:min]...)
	return append(out, out[0])
}
