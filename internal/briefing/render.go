package briefing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Render emits the briefing as markdown. Output is a pure function of the
// briefing: stable section order, constraint keys sorted, file lists in
// declared order. Identical graph and target always yield identical bytes.
func (b *Briefing) Render() string {
	var w strings.Builder

	switch {
	case b.Impl != nil:
		fmt.Fprintf(&w, "# Mission Briefing: %s\n", b.Impl.Name())
		fmt.Fprintf(&w, "> Context: implementing solution '%s'\n", b.Solution.Name())
		if b.Impl.Description != "" {
			fmt.Fprintf(&w, "\n%s\n", b.Impl.Description)
		}
	case b.Solution != nil:
		fmt.Fprintf(&w, "# Solution Briefing: %s\n", b.Solution.Name())
	default:
		fmt.Fprintf(&w, "# Goal Briefing: %s\n", b.Goal.Name())
		if b.Goal.Description != "" {
			fmt.Fprintf(&w, "\n%s\n", b.Goal.Description)
		}
		fmt.Fprintf(&w, "\nVerify via `%s`\n", b.Goal.AcceptanceTest)
		return w.String()
	}

	w.WriteString("\n## 1. Goals (The Why)\n")
	if len(b.Goals) == 0 {
		w.WriteString("- No goals reachable from this node\n")
	}
	for _, goal := range b.Goals {
		fmt.Fprintf(&w, "- **%s** (verify via `%s`)\n", goal.Name(), goal.AcceptanceTest)
		if goal.Description != "" {
			fmt.Fprintf(&w, "  %s\n", goal.Description)
		}
	}

	w.WriteString("\n## 2. Solution Context\n")
	if b.Solution.Description != "" {
		fmt.Fprintf(&w, "%s\n", b.Solution.Description)
	}
	for _, req := range b.Required {
		fmt.Fprintf(&w, "\nRequires **%s** (`%s`)\n", req.Name(), req.ID())
		if req.Description != "" {
			fmt.Fprintf(&w, "  %s\n", req.Description)
		}
		writeConstraints(&w, req.Constraints, "  ")
	}

	w.WriteString("\n## 3. Constraints (The Boundaries)\n")
	if len(b.Solution.Constraints) == 0 {
		w.WriteString("- No constraints specified\n")
	} else {
		writeConstraints(&w, b.Solution.Constraints, "")
	}

	if b.Impl == nil {
		return w.String()
	}

	w.WriteString("\n## 4. Required Output\n")
	w.WriteString("Modify/Create these files:\n")
	for _, file := range b.Impl.CodeFiles {
		fmt.Fprintf(&w, "- `%s`\n", file)
	}
	if len(b.Impl.MustDefine) > 0 {
		w.WriteString("\nEnsure these symbols exist:\n")
		files := make([]string, 0, len(b.Impl.MustDefine))
		for file := range b.Impl.MustDefine {
			files = append(files, file)
		}
		sort.Strings(files)
		for _, file := range files {
			fmt.Fprintf(&w, "- `%s`: %s\n", file, strings.Join(b.Impl.MustDefine[file], ", "))
		}
	}
	if len(b.Impl.TestFiles) > 0 {
		w.WriteString("\nProve it with these tests:\n")
		for _, file := range b.Impl.TestFiles {
			fmt.Fprintf(&w, "- `%s`\n", file)
		}
	}

	return w.String()
}

func writeConstraints(w *strings.Builder, constraints map[string]cty.Value, indent string) {
	keys := make([]string, 0, len(constraints))
	for key := range constraints {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s- **%s**: `%s`\n", indent, key, ctyString(constraints[key]))
	}
}

// ctyString renders an opaque constraint value deterministically. It
// intentionally covers only what a declaration can express: primitives,
// lists/sets/tuples, and maps/objects.
func ctyString(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	if !v.IsKnown() {
		return "unknown"
	}
	ty := v.Type()
	switch {
	case ty.Equals(cty.String):
		return v.AsString()
	case ty.Equals(cty.Number):
		return v.AsBigFloat().Text('g', -1)
	case ty.Equals(cty.Bool):
		if v.True() {
			return "true"
		}
		return "false"
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		var parts []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			parts = append(parts, ctyString(ev))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ty.IsMapType() || ty.IsObjectType():
		vals := v.AsValueMap()
		keys := make([]string, 0, len(vals))
		for key := range vals {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var parts []string
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", key, ctyString(vals[key])))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return v.GoString()
	}
}
