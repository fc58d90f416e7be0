package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/decl"
	"github.com/vk/taskgridgo/internal/fsutil"
	"github.com/vk/taskgridgo/internal/hclcfg"
	"github.com/vk/taskgridgo/internal/hydra"
	"github.com/vk/taskgridgo/internal/varctx"
)

// load discovers and parses every task document under the configured path
// and assembles the variable context. Documents are processed in lexical
// order; --vars files are merged last so they override document bindings,
// which is what lets one sweep coefficients without editing the documents.
func (a *App) load(ctx context.Context) (*decl.Document, *varctx.Context, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading task documents...", "path", a.config.ConfigPath)

	files, err := fsutil.FindFilesByExtension(a.config.ConfigPath, ".hcl", ".yaml", ".yml")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to discover task documents: %w", err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no task documents found under %s", a.config.ConfigPath)
	}
	logger.Debug("Found task documents to load.", "files", files)

	doc := &decl.Document{}
	vars := varctx.New()

	for _, path := range files {
		switch {
		case strings.HasSuffix(path, ".hcl"):
			// The accumulated context is threaded through so vars blocks may
			// reference bindings from files loaded earlier.
			fileDoc, err := hclcfg.ParseFile(ctx, path, vars)
			if err != nil {
				return nil, nil, err
			}
			doc.Merge(fileDoc)

		default: // .yaml / .yml
			fileDoc, err := hydra.ParseFile(ctx, path)
			if err != nil {
				return nil, nil, err
			}
			doc.Merge(fileDoc)
		}
	}

	for _, path := range a.config.VarsFiles {
		fileVars, err := varctx.LoadYAMLFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load variables file: %w", err)
		}
		vars.Merge(fileVars)
	}

	logger.Info("Task documents loaded.", "files", len(files),
		"task_declarations", len(doc.Tasks), "dataset_manifests", len(doc.Datasets),
		"variables", len(vars.Paths()))
	return doc, vars, nil
}
