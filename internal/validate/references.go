package validate

import (
	"fmt"

	"github.com/vk/archgrid/internal/model"
	"github.com/vk/archgrid/internal/registry"
	"github.com/vk/archgrid/internal/report"
)

// checkReferences verifies that every cross-node reference resolves to an
// existing node of the expected kind.
func checkReferences(reg *registry.Registry, rep *report.Report) {
	requireKind := func(owner model.Node, relation, target string, want model.Kind) {
		n, ok := reg.Resolve(target)
		if !ok {
			rep.AddError(report.UnknownReference, owner.ID(), "", "",
				fmt.Sprintf("%s %q does not exist", relation, target))
			return
		}
		if n.Kind() != want {
			rep.AddError(report.UnknownReference, owner.ID(), "", "",
				fmt.Sprintf("%s %q is a %s, expected %s", relation, target, n.Kind(), want))
		}
	}

	for _, sol := range reg.Solutions() {
		for _, id := range sol.Satisfies {
			requireKind(sol, "satisfies", id, model.KindGoal)
		}
		for _, id := range sol.Requires {
			requireKind(sol, "requires", id, model.KindSolution)
		}
		for _, id := range sol.ConflictsWith {
			requireKind(sol, "conflicts_with", id, model.KindSolution)
		}
	}

	for _, impl := range reg.Implementations() {
		requireKind(impl, "implements", impl.Implements, model.KindSolution)
	}

	for _, ver := range reg.Verifications() {
		if _, ok := reg.Resolve(ver.Verifies); !ok {
			rep.AddError(report.UnknownReference, ver.ID(), "", "",
				fmt.Sprintf("verifies %q does not exist", ver.Verifies))
		}
	}
}
