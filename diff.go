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

import (
	"fuzzdiff.io/diff/internal/config"
	"fuzzdiff.io/diff/internal/myers"
	"fuzzdiff.io/diff/internal/script"
)

// Compare computes a diff between x and y using element equality.
//
// The following options are supported: [MinRatio], [MaxCost], [MaxCalls].
func Compare[T comparable](x, y []T, opts ...Option) Result[T] {
	cfg := config.FromOptions(opts, config.MinRatio|config.MaxCost|config.MaxCalls)
	return compare(x, y, eqScore(x, y), cfg)
}

// CompareFunc computes a diff between x and y using the provided similarity
// score. The score must return values in [0, 1]; pairs scoring at least the
// accept threshold are treated as aligned.
//
// The following options are supported: [Accept], [MinRatio], [MaxCost],
// [MaxCalls].
func CompareFunc[T any](x, y []T, score func(a, b T) float64, opts ...Option) Result[T] {
	cfg := config.FromOptions(opts, config.Accept|config.MinRatio|config.MaxCost|config.MaxCalls)
	return compare(x, y, func(i, j int) float64 { return score(x[i], y[j]) }, cfg)
}

// Ratio computes the similarity ratio of x and y without producing chunks.
// This is cheaper than Compare: the search stops as soon as the minimal cost
// is known.
//
// The following options are supported: [MinRatio], [MaxCost], [MaxCalls].
func Ratio[T comparable](x, y []T, opts ...Option) float64 {
	cfg := config.FromOptions(opts, config.MinRatio|config.MaxCost|config.MaxCalls)
	return ratioOnly(len(x), len(y), eqScore(x, y), cfg)
}

// RatioFunc computes the similarity ratio of x and y using the provided
// similarity score, without producing chunks.
//
// The following options are supported: [Accept], [MinRatio], [MaxCost],
// [MaxCalls].
func RatioFunc[T any](x, y []T, score func(a, b T) float64, opts ...Option) float64 {
	cfg := config.FromOptions(opts, config.Accept|config.MinRatio|config.MaxCost|config.MaxCalls)
	return ratioOnly(len(x), len(y), func(i, j int) float64 { return score(x[i], y[j]) }, cfg)
}

// Strings computes a code-point-wise diff between two strings.
//
// The following options are supported: [MinRatio], [MaxCost], [MaxCalls].
func Strings(x, y string, opts ...Option) Result[rune] {
	cfg := config.FromOptions(opts, config.MinRatio|config.MaxCost|config.MaxCalls)
	rx, ry := []rune(x), []rune(y)
	return compare(rx, ry, eqScore(rx, ry), cfg)
}

func eqScore[T comparable](x, y []T) func(i, j int) float64 {
	return func(i, j int) float64 {
		if x[i] == y[j] {
			return 1
		}
		return 0
	}
}

func compare[T any](x, y []T, score func(i, j int) float64, cfg config.Config) Result[T] {
	total := len(x) + len(y)
	if total == 0 {
		return Result[T]{Ratio: 1}
	}
	codes := make([]script.Op, total)
	cost := myers.Search(len(x), len(y), score, codes, searchParams(cfg, total))
	script.Canonize(codes)

	var chunks []Chunk[T]
	ox, oy := 0, 0
	for run := range script.Runs(codes) {
		chunks = append(chunks, Chunk[T]{
			A:  x[ox : ox+run.NX : ox+run.NX],
			B:  y[oy : oy+run.NY : oy+run.NY],
			Eq: run.Eq,
		})
		ox += run.NX
		oy += run.NY
	}
	return Result[T]{Ratio: float64(total-cost) / float64(total), Chunks: chunks}
}

func ratioOnly(n, m int, score func(i, j int) float64, cfg config.Config) float64 {
	total := n + m
	if total == 0 {
		return 1
	}
	cost := myers.Search(n, m, score, nil, searchParams(cfg, total))
	return float64(total-cost) / float64(total)
}

// searchParams translates a config into engine parameters. MinRatio becomes
// a cost budget: a result below the requested ratio is not worth refining.
func searchParams(cfg config.Config, total int) myers.Params {
	maxCost := cfg.MaxCost
	if b := total - int(float64(total)*cfg.MinRatio); b < maxCost {
		maxCost = b
	}
	return myers.Params{Accept: cfg.Accept, MaxCost: maxCost, MaxCalls: cfg.MaxCalls}
}
