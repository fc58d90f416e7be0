// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"sort"
)

// maxAtomicNumber is the heaviest element currently on the periodic table.
const maxAtomicNumber = 118

// DatasetManifest declares the distinct chemical elements present in a
// dataset. Manifests are the ground truth that element reference tables are
// validated against.
type DatasetManifest struct {
	Name     string
	Elements []int
}

// Validate checks that every element is a plausible atomic number and that
// there are no duplicates.
func (m DatasetManifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("dataset manifest has no name")
	}
	seen := make(map[int]struct{}, len(m.Elements))
	for _, z := range m.Elements {
		if z < 1 || z > maxAtomicNumber {
			return fmt.Errorf("dataset %q: atomic number %d out of range [1, %d]", m.Name, z, maxAtomicNumber)
		}
		if _, dup := seen[z]; dup {
			return fmt.Errorf("dataset %q: duplicate element %d", m.Name, z)
		}
		seen[z] = struct{}{}
	}
	return nil
}

// DistinctElements returns the sorted union of elements across manifests.
func DistinctElements(manifests ...DatasetManifest) []int {
	seen := make(map[int]struct{})
	for _, m := range manifests {
		for _, z := range m.Elements {
			seen[z] = struct{}{}
		}
	}
	union := make([]int, 0, len(seen))
	for z := range seen {
		union = append(union, z)
	}
	sort.Ints(union)
	return union
}
