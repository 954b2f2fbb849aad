package symbols

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// extractHCLNative is the native tier for HCL sources. Top-level attributes
// are reported as bound names; top-level blocks as types, named by their
// first label when present.
func extractHCLNative(path string, src []byte) ([]Symbol, error) {
	file, diags := hclsyntax.ParseConfig(src, path, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %w", path, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("parse %s: unexpected body type", path)
	}

	var syms []Symbol
	for _, attr := range body.Attributes {
		syms = append(syms, Symbol{Kind: KindVar, Name: attr.Name, Line: attr.SrcRange.Start.Line})
	}
	for _, block := range body.Blocks {
		name := block.Type
		if len(block.Labels) > 0 {
			name = block.Labels[0]
		}
		syms = append(syms, Symbol{Kind: KindType, Name: name, Line: block.TypeRange.Start.Line})
	}
	return syms, nil
}
