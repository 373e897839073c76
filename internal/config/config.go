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

// Package config provides shared configuration mechanisms for packages in this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// diff.Option.
package config

import "math"

// Unbounded is the default value for the cost and call budgets.
const Unbounded = math.MaxInt

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Accept is the minimum similarity score for two elements to be treated as aligned.
	Accept float64

	// MinRatio is the similarity ratio below which a search may stop early. It translates into
	// a cost budget of (n+m)*(1-MinRatio).
	MinRatio float64

	// MaxCost is the maximum edit cost the engine explores before giving up.
	MaxCost int

	// MaxCostRow is a separate cost budget applied to nested (row-level) comparisons. Zero means
	// MaxCost applies on every level.
	MaxCostRow int

	// MaxCalls is the maximum number of scorer invocations per top-level search round.
	MaxCalls int

	// MaxDepth limits how deep nested containers are explored.
	MaxDepth int

	// KernelOnly restricts comparator resolution to specialized buffer kernels.
	KernelOnly bool

	// Weights holds per-column weights for row comparisons of matrices.
	Weights []float64
}

// Default is the default configuration.
var Default = Config{
	Accept:     1.0,
	MinRatio:   0,
	MaxCost:    Unbounded,
	MaxCostRow: 0,
	MaxCalls:   Unbounded,
	MaxDepth:   255,
	KernelOnly: false,
	Weights:    nil,
}

// Flag describes a single config entry. This is used to detect options that are being set on
// functions that don't support them.
type Flag int

const (
	Accept Flag = 1 << iota
	MinRatio
	MaxCost
	MaxCostRow
	MaxCalls
	MaxDepth
	KernelOnly
	Weights
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Accept:
		return "diff.Accept"
	case MinRatio:
		return "diff.MinRatio"
	case MaxCost:
		return "diff.MaxCost"
	case MaxCostRow:
		return "diff.MaxCostRow"
	case MaxCalls:
		return "diff.MaxCalls"
	case MaxDepth:
		return "diff.MaxDepth"
	case KernelOnly:
		return "diff.KernelOnly"
	case Weights:
		return "matdiff.Weights"
	default:
		panic("never reached")
	}
}
