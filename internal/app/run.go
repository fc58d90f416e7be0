package app

import (
	"context"
	"fmt"

	"github.com/vk/taskgridgo/internal/bridge"
	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/registry"
)

// Run executes the main application logic: load documents, build the
// registry, summarize it, and optionally emit it to the experiment tracker.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	doc, vars, err := a.load(ctx)
	if err != nil {
		return err
	}

	reg, err := registry.Build(ctx, doc, vars)
	if err != nil {
		return fmt.Errorf("registry build failed: %w", err)
	}
	a.registry = reg

	a.summarize(ctx)

	if a.config.BridgeURL != "" {
		cfg := bridge.Config{
			URL:       a.config.BridgeURL,
			Namespace: a.config.BridgeNamespace,
			Timeout:   a.config.BridgeTimeout,
		}
		if err := bridge.Emit(ctx, cfg, bridge.SnapshotOf(reg)); err != nil {
			return fmt.Errorf("bridge emission failed: %w", err)
		}
		a.logger.Info("Registry snapshot delivered to experiment tracker.", "url", a.config.BridgeURL)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// summarize logs the built registry, optionally restricted to one dataset.
func (a *App) summarize(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	if a.config.Dataset != "" {
		count := 0
		for t := range a.registry.ForDataset(a.config.Dataset) {
			logger.Info("Task active for dataset.", "dataset", a.config.Dataset,
				"task", t.Name, "property", t.Property, "level", t.Level,
				"coefficient", t.Loss.Coefficient, "metrics", t.Metrics)
			count++
		}
		logger.Info("Dataset summary complete.", "dataset", a.config.Dataset, "tasks", count)
		return
	}

	for _, t := range a.registry.Tasks() {
		attrs := []any{
			"task", t.Name, "property", t.Property, "level", t.Level,
			"loss", fmt.Sprintf("%s(%s)", t.Loss.Wrapper, t.Loss.Inner),
			"coefficient", t.Loss.Coefficient,
			"datasets", t.Datasets,
		}
		if t.Normalizer != nil {
			attrs = append(attrs, "normalizer_mean", t.Normalizer.Mean, "normalizer_rmsd", t.Normalizer.RMSD)
		}
		if len(t.ElementRefs) > 0 {
			attrs = append(attrs, "element_refs", len(t.ElementRefs))
		}
		logger.Info("Task registered.", attrs...)
	}
	logger.Info("Registry summary complete.", "tasks", a.registry.Len(), "datasets", a.registry.Datasets())
}
