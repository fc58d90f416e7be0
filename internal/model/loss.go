// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the LossSpec, the composite loss specification of a task.
//
// Why a wrapper/inner split?
//
// The training objective of a task is always an elementary loss (mean
// absolute error, L2 norm, ...) wrapped in an outer reduction layer that is
// aware of distributed training: the wrapper owns the task's contribution
// weight (coefficient) and, for atom-level losses, the reduction mode across
// atoms. Keeping the two as separate closed enumerations mirrors how the
// declarations compose them, and lets validation reject an unknown kind with
// a message naming exactly which layer is wrong.
package model

import "fmt"

// LossWrapperKind is the outer reduction/weighting layer of a loss.
type LossWrapperKind string

// InnerLossKind is the elementary loss wrapped by a LossWrapperKind.
type InnerLossKind string

// Reduction is how an atom-level loss is reduced across the atoms of a batch.
type Reduction string

const (
	// WrapperDDP is the distributed-training-aware multi-task loss wrapper.
	WrapperDDP LossWrapperKind = "ddp_loss"

	LossMAE        InnerLossKind = "mae"
	LossMSE        InnerLossKind = "mse"
	LossPerAtomMAE InnerLossKind = "per_atom_mae"
	LossL2Norm     InnerLossKind = "l2norm"

	ReduceMean           Reduction = "mean"
	ReduceSum            Reduction = "sum"
	ReduceMeanStructures Reduction = "mean_over_structures"
)

// LossSpec is the fully-resolved loss specification of one task.
type LossSpec struct {
	// Wrapper is the outer reduction/weighting layer.
	Wrapper LossWrapperKind

	// Inner is the elementary loss the wrapper applies.
	Inner InnerLossKind

	// Coefficient weights this task's contribution to the combined training
	// objective. Must be non-negative.
	Coefficient float64

	// Reduction is optional and only meaningful for atom-level losses.
	Reduction Reduction
}

// ParseLossWrapperKind converts a raw string into a LossWrapperKind.
func ParseLossWrapperKind(s string) (LossWrapperKind, error) {
	switch LossWrapperKind(s) {
	case WrapperDDP:
		return LossWrapperKind(s), nil
	default:
		return "", fmt.Errorf("unknown loss wrapper %q: must be %q", s, WrapperDDP)
	}
}

// ParseInnerLossKind converts a raw string into an InnerLossKind.
func ParseInnerLossKind(s string) (InnerLossKind, error) {
	switch InnerLossKind(s) {
	case LossMAE, LossMSE, LossPerAtomMAE, LossL2Norm:
		return InnerLossKind(s), nil
	default:
		return "", fmt.Errorf("unknown loss function %q: must be one of %q, %q, %q, %q",
			s, LossMAE, LossMSE, LossPerAtomMAE, LossL2Norm)
	}
}

// ParseReduction converts a raw string into a Reduction. The empty string is
// valid and means the wrapper's default.
func ParseReduction(s string) (Reduction, error) {
	switch Reduction(s) {
	case "", ReduceMean, ReduceSum, ReduceMeanStructures:
		return Reduction(s), nil
	default:
		return "", fmt.Errorf("unknown reduction %q: must be one of %q, %q, %q",
			s, ReduceMean, ReduceSum, ReduceMeanStructures)
	}
}

// Validate checks the internal consistency of the spec.
func (l LossSpec) Validate() error {
	if _, err := ParseLossWrapperKind(string(l.Wrapper)); err != nil {
		return err
	}
	if _, err := ParseInnerLossKind(string(l.Inner)); err != nil {
		return err
	}
	if _, err := ParseReduction(string(l.Reduction)); err != nil {
		return err
	}
	if l.Coefficient < 0 {
		return fmt.Errorf("coefficient must be non-negative, got %v", l.Coefficient)
	}
	return nil
}
