package hclcfg

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/taskgridgo/internal/decl"
)

// taskBodySchema is the HCL schema for the body of a 'task' block.
var taskBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "level"},
		{Name: "property"},
		{Name: "element_refs"},
		{Name: "datasets"},
		{Name: "metrics"},
		{Name: "train_on_free_atoms"},
		{Name: "eval_on_free_atoms"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "loss"},
		{Type: "out"},
		{Type: "normalizer"},
	},
}

var lossBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "wrapper"},
		{Name: "fn"},
		{Name: "coefficient"},
		{Name: "reduction"},
	},
}

var outBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "dim"},
		{Name: "dtype"},
	},
}

var normalizerBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "mean"},
		{Name: "rmsd"},
	},
}

// parseTaskBlock decodes one 'task' block into its raw declaration.
func parseTaskBlock(block *hcl.Block) (decl.Task, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	task := decl.Task{
		Name:   block.Labels[0],
		Source: sourceOf(block),
	}

	content, contentDiags := block.Body.Content(taskBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return task, diags
	}

	decodeString := func(name string, dst *string, required bool) {
		attr, exists := content.Attributes[name]
		if !exists {
			if required {
				_, attrDiags := requireAttr(block.Body, content, name)
				diags = append(diags, attrDiags...)
			}
			return
		}
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, dst)...)
	}

	decodeString("level", &task.Level, true)
	decodeString("property", &task.Property, true)

	if attr, exists := content.Attributes["datasets"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &task.Datasets)...)
	} else {
		_, attrDiags := requireAttr(block.Body, content, "datasets")
		diags = append(diags, attrDiags...)
	}

	if attr, exists := content.Attributes["metrics"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &task.Metrics)...)
	}

	if attr, exists := content.Attributes["element_refs"]; exists {
		vec, vecDiags := vectorFromExpr(attr.Expr)
		diags = append(diags, vecDiags...)
		if !vecDiags.HasErrors() {
			task.ElementRefs = &vec
		}
	}

	decodeBool := func(name string, dst **bool) {
		attr, exists := content.Attributes[name]
		if !exists {
			return
		}
		var v bool
		exprDiags := gohcl.DecodeExpression(attr.Expr, nil, &v)
		diags = append(diags, exprDiags...)
		if !exprDiags.HasErrors() {
			*dst = &v
		}
	}

	decodeBool("train_on_free_atoms", &task.TrainOnFreeAtoms)
	decodeBool("eval_on_free_atoms", &task.EvalOnFreeAtoms)

	lossDiags := parseLossBlock(content.Blocks, &task)
	diags = append(diags, lossDiags...)

	outDiags := parseOutBlock(content.Blocks, &task)
	diags = append(diags, outDiags...)

	normDiags := parseNormalizerBlock(content.Blocks, &task)
	diags = append(diags, normDiags...)

	return task, diags
}

func parseLossBlock(blocks hcl.Blocks, task *decl.Task) hcl.Diagnostics {
	block, diags := findUniqueBlock(blocks, "loss")
	if block == nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'loss' block",
			Detail:   "Every task must declare a loss block.",
		})
		return diags
	}

	content, contentDiags := block.Body.Content(lossBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return diags
	}

	for name, dst := range map[string]*string{
		"wrapper": &task.Loss.Wrapper,
		"fn":      &task.Loss.Inner,
	} {
		attr, attrDiags := requireAttr(block.Body, content, name)
		diags = append(diags, attrDiags...)
		if attr != nil {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, dst)...)
		}
	}

	if attr, attrDiags := requireAttr(block.Body, content, "coefficient"); attr != nil {
		coeff, coeffDiags := scalarFromExpr(attr.Expr)
		diags = append(diags, coeffDiags...)
		task.Loss.Coefficient = coeff
	} else {
		diags = append(diags, attrDiags...)
	}

	if attr, exists := content.Attributes["reduction"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &task.Loss.Reduction)...)
	}

	return diags
}

func parseOutBlock(blocks hcl.Blocks, task *decl.Task) hcl.Diagnostics {
	block, diags := findUniqueBlock(blocks, "out")
	if block == nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'out' block",
			Detail:   "Every task must declare an out block with 'dim' and 'dtype'.",
		})
		return diags
	}

	content, contentDiags := block.Body.Content(outBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return diags
	}

	if attr, attrDiags := requireAttr(block.Body, content, "dim"); attr != nil {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &task.Out.Dims)...)
	} else {
		diags = append(diags, attrDiags...)
	}

	if attr, attrDiags := requireAttr(block.Body, content, "dtype"); attr != nil {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &task.Out.DType)...)
	} else {
		diags = append(diags, attrDiags...)
	}

	return diags
}

func parseNormalizerBlock(blocks hcl.Blocks, task *decl.Task) hcl.Diagnostics {
	block, diags := findUniqueBlock(blocks, "normalizer")
	if block == nil {
		return diags
	}

	content, contentDiags := block.Body.Content(normalizerBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return diags
	}

	norm := &decl.Normalizer{Target: "normalizer"}

	if attr, attrDiags := requireAttr(block.Body, content, "mean"); attr != nil {
		mean, meanDiags := scalarFromExpr(attr.Expr)
		diags = append(diags, meanDiags...)
		norm.Mean = mean
	} else {
		diags = append(diags, attrDiags...)
	}

	if attr, attrDiags := requireAttr(block.Body, content, "rmsd"); attr != nil {
		rmsd, rmsdDiags := scalarFromExpr(attr.Expr)
		diags = append(diags, rmsdDiags...)
		norm.RMSD = rmsd
	} else {
		diags = append(diags, attrDiags...)
	}

	task.Normalizer = norm
	return diags
}
