package hclcfg

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/taskgridgo/internal/decl"
)

// refPath renders a traversal as a dotted variable-context path. Only root
// and attribute steps are allowed; index steps have no equivalent in the
// context's path grammar.
func refPath(traversal hcl.Traversal) (string, error) {
	var parts []string
	for _, step := range traversal {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			parts = append(parts, s.Name)
		case hcl.TraverseAttr:
			parts = append(parts, s.Name)
		default:
			return "", fmt.Errorf("indexing is not supported in variable references")
		}
	}
	return strings.Join(parts, "."), nil
}

// scalarFromExpr reads an attribute expression as a decl.Scalar: a plain
// traversal becomes an unresolved reference, anything else must evaluate to
// a literal number with no context.
func scalarFromExpr(expr hcl.Expression) (decl.Scalar, hcl.Diagnostics) {
	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() {
		path, err := refPath(traversal)
		if err != nil {
			return decl.Scalar{}, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid variable reference",
				Detail:   err.Error(),
				Subject:  expr.Range().Ptr(),
			}}
		}
		return decl.RefScalar(path), nil
	}

	var v float64
	diags := gohcl.DecodeExpression(expr, nil, &v)
	if diags.HasErrors() {
		return decl.Scalar{}, diags
	}
	return decl.LitScalar(v), nil
}

// vectorFromExpr reads an attribute expression as a decl.Vector, with the
// same traversal-or-literal rule as scalarFromExpr.
func vectorFromExpr(expr hcl.Expression) (decl.Vector, hcl.Diagnostics) {
	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() {
		path, err := refPath(traversal)
		if err != nil {
			return decl.Vector{}, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid variable reference",
				Detail:   err.Error(),
				Subject:  expr.Range().Ptr(),
			}}
		}
		return decl.Vector{Ref: path}, nil
	}

	var v []float64
	diags := gohcl.DecodeExpression(expr, nil, &v)
	if diags.HasErrors() {
		return decl.Vector{}, diags
	}
	return decl.Vector{Lit: v}, nil
}

// sourceOf renders a block's definition range as "file.hcl:12".
func sourceOf(block *hcl.Block) string {
	return fmt.Sprintf("%s:%d", block.DefRange.Filename, block.DefRange.Start.Line)
}
