package validate

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/archgrid/internal/registry"
	"github.com/vk/archgrid/internal/report"
)

// checkMeasured compares measured constraint values against declared ones.
// Only numeric pairs are comparable; a measurement above its declared
// budget is a warning, never a hard error. Measurements for unknown keys or
// non-numeric values are opaque and pass through unchecked.
func checkMeasured(reg *registry.Registry, rep *report.Report) {
	for _, sol := range reg.Solutions() {
		measured := reg.Measured(sol.ID())
		if len(measured) == 0 {
			continue
		}

		keys := make([]string, 0, len(measured))
		for key := range measured {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			declared, ok := sol.Constraints[key]
			if !ok {
				continue
			}
			got := measured[key]
			if !isNumber(declared) || !isNumber(got) {
				continue
			}
			if got.GreaterThan(declared).True() {
				rep.AddWarning(report.ConstraintOverrun, sol.ID(), "", key,
					fmt.Sprintf("measured %s exceeds declared %s", numString(got), numString(declared)))
			}
		}
	}
}

func isNumber(v cty.Value) bool {
	return v.IsKnown() && !v.IsNull() && v.Type().Equals(cty.Number)
}

func numString(v cty.Value) string {
	f := v.AsBigFloat()
	return f.Text('g', -1)
}
