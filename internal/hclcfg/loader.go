package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/decl"
	"github.com/vk/taskgridgo/internal/varctx"
)

// rootSchema is the top-level structure of a task document.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "task", LabelNames: []string{"name"}},
		{Type: "dataset", LabelNames: []string{"name"}},
		{Type: "vars"},
	},
}

// ParseFile parses one HCL document into raw declarations, folding its vars
// blocks into the given context. The context carries bindings from files
// loaded before this one, so vars expressions may reference them.
func ParseFile(ctx context.Context, path string, vars *varctx.Context) (*decl.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing HCL task document.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", path, diags.Error())
	}

	return parseBody(ctx, file, path, vars)
}

// ParseBytes parses an in-memory HCL document. The filename is used only for
// source locations in error messages.
func ParseBytes(ctx context.Context, src []byte, filename string, vars *varctx.Context) (*decl.Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL document %s: %s", filename, diags.Error())
	}

	return parseBody(ctx, file, filename, vars)
}

func parseBody(ctx context.Context, file *hcl.File, path string, vars *varctx.Context) (*decl.Document, error) {
	logger := ctxlog.FromContext(ctx)

	doc := &decl.Document{}

	content, allDiags := file.Body.Content(rootSchema)

	// Blocks of each kind keep their in-file order, which is what gives the
	// registry its declaration-order semantics.
	for _, block := range content.Blocks {
		switch block.Type {
		case "task":
			task, taskDiags := parseTaskBlock(block)
			allDiags = append(allDiags, taskDiags...)
			if !taskDiags.HasErrors() {
				doc.Tasks = append(doc.Tasks, task)
			}

		case "dataset":
			var body struct {
				Elements []int `hcl:"elements"`
			}
			dsDiags := gohcl.DecodeBody(block.Body, nil, &body)
			allDiags = append(allDiags, dsDiags...)
			if !dsDiags.HasErrors() {
				doc.Datasets = append(doc.Datasets, decl.Dataset{
					Name:     block.Labels[0],
					Elements: body.Elements,
					Source:   sourceOf(block),
				})
			}

		case "vars":
			allDiags = append(allDiags, parseVarsBlock(block, vars)...)
		}
	}

	if allDiags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %s", path, allDiags.Error())
	}

	logger.Debug("HCL task document parsed.", "path", path,
		"tasks", len(doc.Tasks), "datasets", len(doc.Datasets))
	return doc, nil
}
