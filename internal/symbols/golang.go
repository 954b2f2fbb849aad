package symbols

import (
	"go/ast"
	"go/parser"
	"go/token"
)

// extractGoNative is the native tier for Go sources. The standard library
// parser handles arbitrarily nested syntax; only file-level declarations
// are reported.
func extractGoNative(path string, src []byte) ([]Symbol, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	var syms []Symbol
	add := func(kind SymbolKind, name string, pos token.Pos) {
		if name == "" || name == "_" {
			return
		}
		syms = append(syms, Symbol{Kind: kind, Name: name, Line: fset.Position(pos).Line})
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			// Methods are file-level declarations too; only the bare
			// name is recorded.
			add(KindFunc, d.Name.Name, d.Pos())
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					add(KindType, s.Name.Name, s.Pos())
				case *ast.ValueSpec:
					for _, name := range s.Names {
						add(KindVar, name.Name, name.Pos())
					}
				}
			}
		}
	}
	return syms, nil
}
