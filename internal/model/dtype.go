// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "fmt"

// DType is the numeric precision of a predicted tensor.
type DType string

const (
	Float16 DType = "float16"
	Float32 DType = "float32"
	Float64 DType = "float64"
)

// ParseDType converts a raw string into a DType.
func ParseDType(s string) (DType, error) {
	switch DType(s) {
	case Float16, Float32, Float64:
		return DType(s), nil
	default:
		return "", fmt.Errorf("unknown dtype %q: must be one of %q, %q, %q", s, Float16, Float32, Float64)
	}
}
