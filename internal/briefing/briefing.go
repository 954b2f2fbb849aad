package briefing

import (
	"fmt"

	"github.com/vk/archgrid/internal/model"
	"github.com/vk/archgrid/internal/registry"
)

// Briefing is the minimal induced subgraph for one target node: the fields
// populated depend on the target's kind. A Goal stands alone; a Solution
// brings its requires closure and satisfied goals; an Implementation adds
// its artifact declarations on top of its solution's slice.
type Briefing struct {
	Goal     *model.Goal
	Impl     *model.Implementation
	Solution *model.Solution  // the primary solution
	Required []model.Solution // transitive requires closure, traversal order
	Goals    []model.Goal     // satisfied goals, first-encounter order
}

// Slice computes the briefing for the given target id.
//
// The subgraph is minimal: sibling implementations and solutions unrelated
// to the target's dependency chain are never included. Goals are the union
// of direct satisfies edges across the requires closure.
func Slice(reg *registry.Registry, targetID string) (*Briefing, error) {
	node, ok := reg.Resolve(targetID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", registry.ErrNodeNotFound, targetID)
	}

	switch n := node.(type) {
	case model.Goal:
		return &Briefing{Goal: &n}, nil

	case model.Solution:
		b := &Briefing{Solution: &n}
		b.Required, b.Goals = closure(reg, n)
		return b, nil

	case model.Implementation:
		sol, ok := reg.Resolve(n.Implements)
		if !ok {
			return nil, fmt.Errorf("implementation %q: %w: solution %q", targetID, registry.ErrNodeNotFound, n.Implements)
		}
		primary, ok := sol.(model.Solution)
		if !ok {
			return nil, fmt.Errorf("implementation %q: implements %q which is not a solution", targetID, n.Implements)
		}
		b := &Briefing{Impl: &n, Solution: &primary}
		b.Required, b.Goals = closure(reg, primary)
		return b, nil

	default:
		return nil, fmt.Errorf("no briefing for %s node %q", node.Kind(), targetID)
	}
}

// closure walks the requires relation depth-first from the primary
// solution, following edges in declared order so the traversal is a pure
// function of the graph. It returns the required solutions (excluding the
// primary) in visit order and the satisfied goals in first-encounter order.
func closure(reg *registry.Registry, primary model.Solution) ([]model.Solution, []model.Goal) {
	var required []model.Solution
	var goals []model.Goal
	visited := map[string]struct{}{}
	seenGoal := map[string]struct{}{}

	var visit func(sol model.Solution)
	visit = func(sol model.Solution) {
		if _, done := visited[sol.ID()]; done {
			return
		}
		visited[sol.ID()] = struct{}{}

		if sol.ID() != primary.ID() {
			required = append(required, sol)
		}

		for _, goalID := range sol.Satisfies {
			if _, dup := seenGoal[goalID]; dup {
				continue
			}
			if n, ok := reg.Resolve(goalID); ok {
				if goal, isGoal := n.(model.Goal); isGoal {
					seenGoal[goalID] = struct{}{}
					goals = append(goals, goal)
				}
			}
		}

		for _, reqID := range sol.Requires {
			if n, ok := reg.Resolve(reqID); ok {
				if next, isSol := n.(model.Solution); isSol {
					visit(next)
				}
			}
		}
	}

	visit(primary)
	return required, goals
}
