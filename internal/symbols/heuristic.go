package symbols

import (
	"regexp"
	"strings"
)

// The heuristic tier is the last resort of every profile: line-oriented
// matching of common declaration keywords. It may yield false negatives
// for unusual syntactic forms.

type pattern struct {
	kind SymbolKind
	re   *regexp.Regexp
}

var goPatterns = []pattern{
	{KindFunc, regexp.MustCompile(`^func\s+(?:\([^)]*\)\s*)?([A-Za-z_]\w*)`)},
	{KindType, regexp.MustCompile(`^type\s+([A-Za-z_]\w*)`)},
	{KindVar, regexp.MustCompile(`^(?:var|const)\s+([A-Za-z_]\w*)`)},
}

var hclPatterns = []pattern{
	{KindType, regexp.MustCompile(`^\w+\s+"([^"]+)"`)},
	{KindType, regexp.MustCompile(`^([A-Za-z_]\w*)\s*\{`)},
	{KindVar, regexp.MustCompile(`^([A-Za-z_]\w*)\s*=`)},
}

var pythonPatterns = []pattern{
	{KindType, regexp.MustCompile(`^class\s+([A-Za-z_]\w*)`)},
	{KindFunc, regexp.MustCompile(`^(?:async\s+)?def\s+([A-Za-z_]\w*)`)},
	{KindVar, regexp.MustCompile(`^([A-Za-z_]\w*)\s*(?::[^=]+)?=[^=]`)},
}

var javascriptPatterns = []pattern{
	{KindType, regexp.MustCompile(`^(?:export\s+(?:default\s+)?)?class\s+([A-Za-z_$]\w*)`)},
	{KindFunc, regexp.MustCompile(`^(?:export\s+(?:default\s+)?)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$]\w*)`)},
	{KindType, regexp.MustCompile(`^(?:export\s+)?(?:interface|enum)\s+([A-Za-z_$]\w*)`)},
	{KindType, regexp.MustCompile(`^(?:export\s+)?type\s+([A-Za-z_$]\w*)\s*=`)},
	{KindVar, regexp.MustCompile(`^(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$]\w*)`)},
	{KindVar, regexp.MustCompile(`^(?:window|globalThis)\.([A-Za-z_$]\w*)\s*=`)},
}

// heuristicTier builds the tier function for one language's pattern set.
func heuristicTier(patterns []pattern) tierFunc {
	return func(path string, src []byte) ([]Symbol, error) {
		var syms []Symbol
		seen := make(map[string]struct{})
		for i, line := range strings.Split(string(src), "\n") {
			for _, p := range patterns {
				m := p.re.FindStringSubmatch(line)
				if m == nil {
					continue
				}
				name := m[1]
				if _, dup := seen[name]; dup {
					continue
				}
				seen[name] = struct{}{}
				syms = append(syms, Symbol{Kind: p.kind, Name: name, Line: i + 1})
				break
			}
		}
		return syms, nil
	}
}
