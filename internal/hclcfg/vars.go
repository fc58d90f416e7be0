package hclcfg

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/taskgridgo/internal/varctx"
	"github.com/zclconf/go-cty/cty"
)

// parseVarsBlock folds one 'vars' block into the variable context. Numbers
// become scalars, number sequences become vectors, and objects nest into
// dotted paths. Expressions may reference bindings made by earlier vars
// blocks (earlier in the same file, or in files loaded before it); bindings
// made in the same block are not visible to each other.
func parseVarsBlock(block *hcl.Block, vars *varctx.Context) hcl.Diagnostics {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}

	evalCtx, err := vars.EvalContext()
	if err != nil {
		return append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid variable context",
			Detail:   err.Error(),
			Subject:  &block.DefRange,
		})
	}

	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(evalCtx)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		diags = append(diags, bindValue(vars, name, val, attr.Expr.Range().Ptr())...)
	}

	return diags
}

func bindValue(vars *varctx.Context, path string, val cty.Value, rng *hcl.Range) hcl.Diagnostics {
	var diags hcl.Diagnostics

	invalid := func(detail string) hcl.Diagnostics {
		return append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid variable value",
			Detail:   detail,
			Subject:  rng,
		})
	}

	switch {
	case val.Type() == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		vars.SetScalar(path, f)

	case val.Type().IsTupleType() || val.Type().IsListType():
		vec := []float64{}
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if elem.Type() != cty.Number {
				return invalid("Variable '" + path + "' must be a sequence of numbers.")
			}
			f, _ := elem.AsBigFloat().Float64()
			vec = append(vec, f)
		}
		vars.SetVector(path, vec)

	case val.Type().IsObjectType() || val.Type().IsMapType():
		for it := val.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			diags = append(diags, bindValue(vars, path+"."+key.AsString(), elem, rng)...)
		}

	default:
		return invalid("Variable '" + path + "' must be a number, a sequence of numbers, or a nested object of those.")
	}

	return diags
}
