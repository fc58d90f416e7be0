// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "fmt"

// Normalizer is a mean/spread pair used to standardize target values before
// loss computation and de-standardize predictions afterwards.
type Normalizer struct {
	Mean float64
	RMSD float64
}

// Validate rejects a non-positive RMSD, which would be used as a divisor.
func (n Normalizer) Validate() error {
	if n.RMSD <= 0 {
		return fmt.Errorf("normalizer rmsd must be positive, got %v", n.RMSD)
	}
	return nil
}

// Normalize standardizes a raw target value.
func (n Normalizer) Normalize(v float64) float64 {
	return (v - n.Mean) / n.RMSD
}

// Denormalize maps a standardized prediction back to the raw scale.
func (n Normalizer) Denormalize(v float64) float64 {
	return v*n.RMSD + n.Mean
}
