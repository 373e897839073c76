// Copyright 2025 The fuzzdiff Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matdiff

import (
	"slices"

	"fuzzdiff.io/diff"
	"fuzzdiff.io/diff/internal/config"
)

// Weights sets per-column weights for row scoring. Row pairs are scored by
// the weighted fraction of equal cells, so a zero weight makes a column
// irrelevant for row alignment. The weight vector must match the column
// count of both matrices; [Aligned] fails with a [ShapeError] otherwise.
//
// Weights must be non-negative with a positive sum.
func Weights(w []float64) diff.Option {
	sum := 0.0
	for _, v := range w {
		if v < 0 {
			panic("matdiff: Weights must be non-negative")
		}
		sum += v
	}
	if sum <= 0 {
		panic("matdiff: Weights must have a positive sum")
	}
	w = slices.Clone(w)
	return func(cfg *config.Config) config.Flag {
		cfg.Weights = w
		return config.Weights
	}
}
