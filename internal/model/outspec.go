// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "fmt"

// OutSpec describes the shape and numeric precision of the tensor a task
// predicts. Dims excludes the batch/system dimensions: an energy task
// predicts [1], a force task predicts [3] per atom.
type OutSpec struct {
	Dims  []int
	DType DType
}

// Validate checks that the shape is well-formed for the given level.
func (o OutSpec) Validate(level Level) error {
	if len(o.Dims) == 0 {
		return fmt.Errorf("out_spec.dim must not be empty for a %s-level task", level)
	}
	for i, d := range o.Dims {
		if d <= 0 {
			return fmt.Errorf("out_spec.dim[%d] must be positive, got %d", i, d)
		}
	}
	if _, err := ParseDType(string(o.DType)); err != nil {
		return err
	}
	return nil
}
