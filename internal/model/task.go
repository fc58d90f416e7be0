// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the TaskDefinition, the fully-resolved form of one
// learnable objective.
//
// Why distinguish between a declaration and a TaskDefinition?
//
// A declaration is what the user writes: free-form, full of symbolic
// references into the variable context, possibly spread across several
// documents. A TaskDefinition is what the training loop consumes: every
// reference resolved, every enumeration parsed, every invariant checked.
// The registry builder is the only code that turns one into the other, and
// it does so all-or-nothing, so a TaskDefinition that exists is a
// TaskDefinition that is valid.
package model

import (
	"fmt"
	"slices"
)

// TaskDefinition is one learnable objective: a property of a molecular
// system bound to a loss, an output spec, optional target transforms, the
// datasets it applies to, and the metrics computed for it.
type TaskDefinition struct {
	// Name uniquely identifies the task across the registry.
	Name string

	// Level is the scope of the property: per-system or per-atom.
	Level Level

	// Property is the physical quantity predicted, e.g. "energy", "forces".
	Property string

	// Loss is the composite loss specification.
	Loss LossSpec

	// Out is the shape and precision of the predicted tensor.
	Out OutSpec

	// Normalizer optionally standardizes targets before loss computation.
	Normalizer *Normalizer

	// ElementRefs optionally holds a per-element baseline subtracted from
	// raw targets before normalization. Only meaningful for intensive
	// energy-like properties.
	ElementRefs ElementRefs

	// Datasets lists the dataset identifiers this task is evaluated
	// against, in declaration order. Never empty.
	Datasets []string

	// Metrics lists the evaluation metric names, in declaration order.
	Metrics []string

	// TrainOnFreeAtoms and EvalOnFreeAtoms optionally restrict atom-level
	// loss/metric computation to atoms not held fixed in the simulation.
	// Nil means the trainer's default.
	TrainOnFreeAtoms *bool
	EvalOnFreeAtoms  *bool
}

// AppliesTo reports whether the task is evaluated against the dataset.
func (t *TaskDefinition) AppliesTo(dataset string) bool {
	return slices.Contains(t.Datasets, dataset)
}

// Validate checks every invariant that does not require dataset manifests.
// Element reference cardinality is checked by the registry builder, which
// owns the manifests.
func (t *TaskDefinition) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task has no name")
	}
	if _, err := ParseLevel(string(t.Level)); err != nil {
		return err
	}
	if t.Property == "" {
		return fmt.Errorf("property must not be empty")
	}
	if err := t.Loss.Validate(); err != nil {
		return err
	}
	if t.Loss.Reduction != "" && t.Level != LevelAtom {
		return fmt.Errorf("loss reduction %q is only valid for atom-level tasks", t.Loss.Reduction)
	}
	if err := t.Out.Validate(t.Level); err != nil {
		return err
	}
	if t.Normalizer != nil {
		if err := t.Normalizer.Validate(); err != nil {
			return err
		}
	}
	if len(t.Datasets) == 0 {
		return fmt.Errorf("datasets must not be empty")
	}
	seen := make(map[string]struct{}, len(t.Datasets))
	for _, d := range t.Datasets {
		if d == "" {
			return fmt.Errorf("dataset identifier must not be empty")
		}
		if _, dup := seen[d]; dup {
			return fmt.Errorf("duplicate dataset %q", d)
		}
		seen[d] = struct{}{}
	}
	seenMetrics := make(map[string]struct{}, len(t.Metrics))
	for _, m := range t.Metrics {
		if err := ValidateMetric(m); err != nil {
			return err
		}
		if _, dup := seenMetrics[m]; dup {
			return fmt.Errorf("duplicate metric %q", m)
		}
		seenMetrics[m] = struct{}{}
	}
	if t.Level != LevelAtom && (t.TrainOnFreeAtoms != nil || t.EvalOnFreeAtoms != nil) {
		return fmt.Errorf("free-atom restrictions are only valid for atom-level tasks")
	}
	return nil
}
