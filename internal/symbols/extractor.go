package symbols

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/vk/archgrid/internal/ctxlog"
)

// SymbolKind classifies a top-level declaration.
type SymbolKind string

const (
	KindType SymbolKind = "type" // type, class, interface, enum, block
	KindFunc SymbolKind = "func" // callable
	KindVar  SymbolKind = "var"  // top-level bound name
)

// Symbol is one top-level declaration found in a source file.
type Symbol struct {
	Kind SymbolKind
	Name string
	Line int
}

// Tier identifies which extraction stage produced a result. Lower tiers are
// more authoritative.
type Tier int

const (
	// TierNative is a full parser for the file's own language.
	TierNative Tier = iota
	// TierGrammar is a grammar-based general parser over declaration
	// headers, used where no native Go parser exists for the language.
	TierGrammar
	// TierHeuristic is a line-oriented pattern match on declaration
	// keywords. Best-effort: unusual syntactic forms may be missed, and
	// that limitation is part of the contract.
	TierHeuristic
)

func (t Tier) String() string {
	switch t {
	case TierNative:
		return "native"
	case TierGrammar:
		return "grammar"
	default:
		return "heuristic"
	}
}

// Result is the outcome of extracting one file.
type Result struct {
	Symbols []Symbol
	Tier    Tier
}

// Names returns the set of extracted symbol names.
func (r Result) Names() map[string]struct{} {
	out := make(map[string]struct{}, len(r.Symbols))
	for _, s := range r.Symbols {
		out[s.Name] = struct{}{}
	}
	return out
}

// tierFunc attempts one extraction stage. A nil error means the stage is
// authoritative for this file; symbols may still be empty.
type tierFunc func(path string, src []byte) ([]Symbol, error)

type tier struct {
	level Tier
	fn    tierFunc
}

// profile binds a language to its ordered fallback chain of tiers.
type profile struct {
	language string
	tiers    []tier
}

// Extractor dispatches source text to a language profile by file extension
// and walks the profile's tiers until one succeeds.
type Extractor struct {
	profiles map[string]*profile
}

// New returns an Extractor with the built-in language profiles: Go and HCL
// with native parsers, Python and JavaScript/TypeScript with the grammar
// tier, and a heuristic last resort for all of them.
func New() *Extractor {
	goProfile := &profile{
		language: "go",
		tiers: []tier{
			{TierNative, extractGoNative},
			{TierHeuristic, heuristicTier(goPatterns)},
		},
	}
	hclProfile := &profile{
		language: "hcl",
		tiers: []tier{
			{TierNative, extractHCLNative},
			{TierHeuristic, heuristicTier(hclPatterns)},
		},
	}
	pyProfile := &profile{
		language: "python",
		tiers: []tier{
			{TierGrammar, extractPythonGrammar},
			{TierHeuristic, heuristicTier(pythonPatterns)},
		},
	}
	jsProfile := &profile{
		language: "javascript",
		tiers: []tier{
			{TierGrammar, extractJavaScriptGrammar},
			{TierHeuristic, heuristicTier(javascriptPatterns)},
		},
	}

	return &Extractor{profiles: map[string]*profile{
		".go":  goProfile,
		".hcl": hclProfile,
		".py":  pyProfile,
		".js":  jsProfile,
		".jsx": jsProfile,
		".ts":  jsProfile,
		".tsx": jsProfile,
	}}
}

// Recognizes reports whether the file's extension maps to a language
// profile. Files that are not recognized are classified non-code and are
// excluded from inventory checks.
func (e *Extractor) Recognizes(path string) bool {
	_, ok := e.profiles[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions returns the recognized extensions in sorted order.
func (e *Extractor) Extensions() []string {
	out := make([]string, 0, len(e.profiles))
	for ext := range e.profiles {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Extract turns source text into the set of top-level symbols declared in
// it. Only top-level declarations are recognized; block-scoped and
// re-exported bindings are a documented limitation.
//
// Tiers are attempted in profile order. If every available tier fails the
// error describes the final cause; the caller attributes it to the file as
// a parse failure and continues the run.
func (e *Extractor) Extract(ctx context.Context, path string, src []byte) (Result, error) {
	logger := ctxlog.FromContext(ctx)

	prof, ok := e.profiles[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Result{}, fmt.Errorf("%s: no language profile for extension %q", path, filepath.Ext(path))
	}

	if bytes.IndexByte(src, 0) >= 0 || !utf8.Valid(src) {
		return Result{}, fmt.Errorf("%s: binary or non-UTF-8 content", path)
	}

	var lastErr error
	for _, t := range prof.tiers {
		syms, err := t.fn(path, src)
		if err != nil {
			logger.Debug("extraction tier failed, falling back",
				"file", path, "language", prof.language, "tier", t.level.String(), "error", err)
			lastErr = err
			continue
		}
		sortSymbols(syms)
		if t.level == TierHeuristic {
			logger.Debug("symbols extracted by heuristic tier; result is best-effort",
				"file", path, "language", prof.language, "count", len(syms))
		}
		return Result{Symbols: syms, Tier: t.level}, nil
	}
	return Result{}, fmt.Errorf("%s: all extraction tiers failed: %w", path, lastErr)
}

func sortSymbols(syms []Symbol) {
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].Name != syms[j].Name {
			return syms[i].Name < syms[j].Name
		}
		return syms[i].Line < syms[j].Line
	})
}
