// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines ElementRefs, the per-chemical-element additive baseline
// of a task.
//
// Why element references?
//
// Intensive energy-like quantities are dominated by a linear per-element
// baseline: most of a structure's energy is explained by which atoms it
// contains, not by their arrangement. Subtracting a per-element reference
// from the raw target before normalization removes that variance and leaves
// the model to learn the interesting residual. References are declared as an
// ordered vector in the variable context and zipped against the sorted
// distinct elements of the task's datasets at build time, so by the time
// this type exists every value is keyed by atomic number.
package model

import (
	"fmt"
	"sort"
)

// ElementRefs maps atomic number to the reference value subtracted from a
// raw target before normalization. A nil map means the task declares no
// element references.
type ElementRefs map[int]float64

// ZipElementRefs pairs an ordered reference vector with the sorted distinct
// elements it covers. The two must have exactly the same length.
func ZipElementRefs(elements []int, values []float64) (ElementRefs, error) {
	if len(values) != len(elements) {
		return nil, fmt.Errorf("element reference table has %d values but the task's datasets contain %d distinct elements",
			len(values), len(elements))
	}
	refs := make(ElementRefs, len(elements))
	for i, z := range elements {
		refs[z] = values[i]
	}
	return refs, nil
}

// Apply subtracts the per-element baseline of a structure, given the atomic
// numbers of its atoms, from a raw target value.
func (r ElementRefs) Apply(target float64, atomicNumbers []int) (float64, error) {
	for _, z := range atomicNumbers {
		ref, ok := r[z]
		if !ok {
			return 0, fmt.Errorf("no element reference for atomic number %d", z)
		}
		target -= ref
	}
	return target, nil
}

// Elements returns the covered atomic numbers in ascending order.
func (r ElementRefs) Elements() []int {
	zs := make([]int, 0, len(r))
	for z := range r {
		zs = append(zs, z)
	}
	sort.Ints(zs)
	return zs
}
