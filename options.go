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

package diff

import "fuzzdiff.io/diff/internal/config"

// Option configures the comparison functions of this package and of the
// matdiff subpackage. Every function documents the options it supports;
// passing an unsupported option panics.
type Option = config.Option

// Accept sets the similarity score at and above which a pair of elements is
// considered aligned. It must be in (0, 1].
//
// The default is 1: only full matches align.
func Accept(v float64) Option {
	if v <= 0 || v > 1 {
		panic("diff: Accept must be in (0, 1]")
	}
	return func(cfg *config.Config) config.Flag {
		cfg.Accept = v
		return config.Accept
	}
}

// MinRatio sets the similarity ratio below which the search may stop early.
// It translates into a cost budget: a comparison of n and m elements spends
// at most (n+m)·(1-v) edits before giving up and reporting the remainder as
// a plain mismatch. Values closer to 1 result in faster comparisons of
// dissimilar inputs. Must be in [0, 1].
//
// The default is 0: the search always runs to completion.
func MinRatio(v float64) Option {
	if v < 0 || v > 1 {
		panic("diff: MinRatio must be in [0, 1]")
	}
	return func(cfg *config.Config) config.Flag {
		cfg.MinRatio = v
		return config.MinRatio
	}
}

// MaxCost sets the maximum edit cost the search explores: the maximum number
// of unmatched elements on both sides combined. Setting it to 0 is
// equivalent to MinRatio(1). When the budget is exhausted, the unresolved
// remainder is reported as a plain mismatch.
//
// The default is unbounded.
func MaxCost(n int) Option {
	if n < 0 {
		panic("diff: MaxCost must be >= 0")
	}
	return func(cfg *config.Config) config.Flag {
		cfg.MaxCost = n
		return config.MaxCost
	}
}

// MaxCostRow sets a separate edit cost budget for comparisons below the top
// level: element pairs inside nested containers and row pairs of matrices.
// A value of 0 leaves [MaxCost] in effect on every level.
//
// The default is 0.
func MaxCostRow(n int) Option {
	if n < 0 {
		panic("diff: MaxCostRow must be >= 0")
	}
	return func(cfg *config.Config) config.Flag {
		cfg.MaxCostRow = n
		return config.MaxCostRow
	}
}

// MaxCalls sets the maximum number of similarity evaluations the top-level
// search performs before giving up. It has to be lower than n·m to have any
// effect. Unlike [MaxCost] it bounds the work spent per element pair, which
// is useful when single evaluations are expensive (nested containers,
// matrix rows).
//
// The default is unbounded.
func MaxCalls(n int) Option {
	if n < 0 {
		panic("diff: MaxCalls must be >= 0")
	}
	return func(cfg *config.Config) config.Flag {
		cfg.MaxCalls = n
		return config.MaxCalls
	}
}

// MaxDepth limits how deep [Nested] explores nested containers. Levels below
// the limit are compared element-wise without further alignment.
//
// The default is 255.
func MaxDepth(n int) Option {
	if n < 1 {
		panic("diff: MaxDepth must be >= 1")
	}
	return func(cfg *config.Config) config.Flag {
		cfg.MaxDepth = n
		return config.MaxDepth
	}
}

// KernelOnly restricts [Nested] and [NestedRatio] to the specialized buffer
// kernels: strings, byte slices, fixed-width numeric slices and slices
// thereof. Pairs that would fall back to reflection-based comparison fail
// with a [ProtocolError] instead.
func KernelOnly() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.KernelOnly = true
		return config.KernelOnly
	}
}
