package registry

import (
	"fmt"

	"github.com/vk/taskgridgo/internal/model"
)

// The maps below are the closed factory registries for the constructor names
// that may appear in declarations. Each key is either the native kind string
// or the upstream class-style target name, so Hydra documents written for
// the original research configs load unchanged.

var wrapperTargets = map[string]model.LossWrapperKind{
	"ddp_loss": model.WrapperDDP,
	"DDPLoss":  model.WrapperDDP,
}

var innerLossTargets = map[string]model.InnerLossKind{
	"mae":            model.LossMAE,
	"MAELoss":        model.LossMAE,
	"mse":            model.LossMSE,
	"MSELoss":        model.LossMSE,
	"per_atom_mae":   model.LossPerAtomMAE,
	"PerAtomMAELoss": model.LossPerAtomMAE,
	"l2norm":         model.LossL2Norm,
	"L2NormLoss":     model.LossL2Norm,
}

var normalizerTargets = map[string]struct{}{
	"normalizer": {},
	"Normalizer": {},
}

// lookupWrapper resolves a declaration target to a loss wrapper kind.
func lookupWrapper(target string) (model.LossWrapperKind, error) {
	kind, ok := wrapperTargets[target]
	if !ok {
		return "", fmt.Errorf("unknown loss wrapper target %q", target)
	}
	return kind, nil
}

// lookupInnerLoss resolves a declaration target to an elementary loss kind.
func lookupInnerLoss(target string) (model.InnerLossKind, error) {
	kind, ok := innerLossTargets[target]
	if !ok {
		return "", fmt.Errorf("unknown loss target %q", target)
	}
	return kind, nil
}

// checkNormalizerTarget verifies a normalizer declaration target.
func checkNormalizerTarget(target string) error {
	if _, ok := normalizerTargets[target]; !ok {
		return fmt.Errorf("unknown normalizer target %q", target)
	}
	return nil
}
