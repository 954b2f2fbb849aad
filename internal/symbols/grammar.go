package symbols

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The grammar tier tokenizes and parses declaration headers instead of
// pattern-matching raw text. It is the middle of the fallback chain for
// languages that have no native parser in Go. Each top-level line is cut at
// the first structural delimiter and the remaining header is run through a
// small participle grammar, so comments and string literals are handled by
// a real lexer rather than regexes.

var declLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'|` + "`[^`]*`"},
	{Name: "Ident", Pattern: `[A-Za-z_$][A-Za-z0-9_$]*`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Punct", Pattern: `=>|->|[-!?+/*=:;.,<>()\[\]{}@&|^%~#]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// --- Python ---

type pythonHeader struct {
	Class *pythonClass `parser:"  @@"`
	Func  *pythonFunc  `parser:"| @@"`
	Bind  *pythonBind  `parser:"| @@"`
}

type pythonClass struct {
	Name string `parser:"'class' @Ident ( '(' | ':' )?"`
}

type pythonFunc struct {
	Async bool   `parser:"@'async'?"`
	Name  string `parser:"'def' @Ident '('?"`
}

type pythonBind struct {
	Name string `parser:"@Ident ( ':' | '=' )"`
}

var pythonParser = participle.MustBuild[pythonHeader](
	participle.Lexer(declLexer),
	participle.Elide("Whitespace"),
)

// pythonStmtKeywords lead statements that can never be declarations.
var pythonStmtKeywords = map[string]struct{}{
	"if": {}, "elif": {}, "else": {}, "for": {}, "while": {}, "try": {},
	"except": {}, "finally": {}, "with": {}, "import": {}, "from": {},
	"return": {}, "raise": {}, "pass": {}, "del": {}, "global": {},
	"nonlocal": {}, "assert": {}, "match": {}, "print": {}, "yield": {},
}

func extractPythonGrammar(path string, src []byte) ([]Symbol, error) {
	var syms []Symbol
	for _, ln := range topLevelLines(src) {
		if kw := firstWord(ln.text); kw != "" {
			if _, skip := pythonStmtKeywords[kw]; skip {
				continue
			}
		}
		header, ok := cutHeader(ln.text, ":(=")
		if !ok {
			continue
		}
		hdr, err := pythonParser.ParseString(path, header)
		if err != nil {
			continue // not a declaration header
		}
		switch {
		case hdr.Class != nil:
			syms = append(syms, Symbol{Kind: KindType, Name: hdr.Class.Name, Line: ln.num})
		case hdr.Func != nil:
			syms = append(syms, Symbol{Kind: KindFunc, Name: hdr.Func.Name, Line: ln.num})
		case hdr.Bind != nil:
			syms = append(syms, Symbol{Kind: KindVar, Name: hdr.Bind.Name, Line: ln.num})
		}
	}
	return syms, nil
}

// --- JavaScript / TypeScript ---

type jsHeader struct {
	Export bool    `parser:"( @'export' 'default'? )?"`
	Decl   *jsDecl `parser:"@@"`
}

type jsDecl struct {
	Class *jsClass `parser:"  @@"`
	Func  *jsFunc  `parser:"| @@"`
	Type  *jsType  `parser:"| @@"`
	Bind  *jsBind  `parser:"| @@"`
	Prop  *jsProp  `parser:"| @@"`
}

type jsClass struct {
	Name string `parser:"'class' @Ident ( 'extends' Ident ( '.' Ident )* )? '{'?"`
}

type jsFunc struct {
	Async bool   `parser:"@'async'?"`
	Name  string `parser:"'function' '*'? @Ident '('?"`
}

type jsType struct {
	Name string `parser:"( 'interface' | 'enum' | 'type' ) @Ident ( '{' | '=' )?"`
}

type jsBind struct {
	Names []string `parser:"( 'const' | 'let' | 'var' ) @Ident ( ',' @Ident )* '='?"`
}

type jsProp struct {
	Name string `parser:"( 'window' | 'globalThis' ) '.' @Ident '='?"`
}

var jsParser = participle.MustBuild[jsHeader](
	participle.Lexer(declLexer),
	participle.Elide("Whitespace"),
)

func extractJavaScriptGrammar(path string, src []byte) ([]Symbol, error) {
	var syms []Symbol
	for _, ln := range topLevelLines(src) {
		header, ok := cutHeader(ln.text, "({=;")
		if !ok {
			continue
		}
		hdr, err := jsParser.ParseString(path, header)
		if err != nil {
			continue
		}
		d := hdr.Decl
		switch {
		case d.Class != nil:
			syms = append(syms, Symbol{Kind: KindType, Name: d.Class.Name, Line: ln.num})
		case d.Func != nil:
			syms = append(syms, Symbol{Kind: KindFunc, Name: d.Func.Name, Line: ln.num})
		case d.Type != nil:
			syms = append(syms, Symbol{Kind: KindType, Name: d.Type.Name, Line: ln.num})
		case d.Bind != nil:
			for _, name := range d.Bind.Names {
				syms = append(syms, Symbol{Kind: KindVar, Name: name, Line: ln.num})
			}
		case d.Prop != nil:
			syms = append(syms, Symbol{Kind: KindVar, Name: d.Prop.Name, Line: ln.num})
		}
	}
	return syms, nil
}

// --- shared helpers ---

type numberedLine struct {
	num  int // 1-based
	text string
}

// topLevelLines returns the non-empty, non-comment lines that start at
// column zero. Indented lines are block-scoped by definition and are
// excluded from top-level symbol recognition.
func topLevelLines(src []byte) []numberedLine {
	var out []numberedLine
	for i, line := range strings.Split(string(src), "\n") {
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
			continue
		}
		out = append(out, numberedLine{num: i + 1, text: line})
	}
	return out
}

// cutHeader truncates a line just after the first delimiter rune found in
// delims. Lines with no delimiter are not declaration headers.
func cutHeader(line, delims string) (string, bool) {
	if idx := strings.IndexAny(line, delims); idx >= 0 {
		return line[:idx+1], true
	}
	return "", false
}

// firstWord returns the leading identifier of a line, or "".
func firstWord(line string) string {
	end := 0
	for end < len(line) {
		c := line[end]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || (end > 0 && c >= '0' && c <= '9') {
			end++
			continue
		}
		break
	}
	return line[:end]
}
