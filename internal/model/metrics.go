// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "fmt"

// knownMetrics is the closed set of evaluation metric names. Metrics are
// computed for monitoring only and are independent of the loss used for
// optimization.
var knownMetrics = map[string]struct{}{
	"mae":                     {},
	"mse":                     {},
	"per_atom_mae":            {},
	"forcesx_mae":             {},
	"forcesy_mae":             {},
	"forcesz_mae":             {},
	"cosine_similarity":       {},
	"magnitude_error":         {},
	"energy_within_threshold": {},
}

// ValidateMetric rejects metric names outside the closed set.
func ValidateMetric(name string) error {
	if _, ok := knownMetrics[name]; !ok {
		return fmt.Errorf("unknown metric %q", name)
	}
	return nil
}
