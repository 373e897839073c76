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

// Package matdiff aligns matrices in both dimensions.
//
// [Aligned] first aligns the rows of two matrices using the fuzzy diff
// engine of the parent package, then merges the per-row-pair column scripts
// into a single common column signature, and finally inflates both matrices
// with a fill value until they share a shape. Removing the inserted rows and
// columns from an inflated matrix recovers the original exactly. The result
// carries an equality mask that is true exactly where the inflated values
// are equal and neither side is fill-inserted, which makes cell-level
// differences between tables of different shapes directly addressable.
package matdiff

import (
	"fmt"

	"fuzzdiff.io/diff"
	"fuzzdiff.io/diff/internal/config"
	"fuzzdiff.io/diff/internal/myers"
	"fuzzdiff.io/diff/internal/script"
)

// defaultRowFloor is the row similarity at which two rows count as aligned
// when no [diff.MinRatio] is set.
const defaultRowFloor = 0.75

// ShapeError reports incompatible shapes: ragged row input, a weight vector
// that does not match the column count, or weights combined with matrices of
// different widths.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "matdiff: " + e.Reason
}

// Result describes an aligned diff between two matrices.
type Result[T comparable] struct {
	// A and B are the inflated matrices. They have identical shapes; cells
	// inserted during inflation hold the fill value.
	A, B *Matrix[T]

	// Eq is an equality mask of the same shape, true exactly where A and B
	// hold equal values and neither side is fill-inserted.
	Eq *Matrix[bool]

	// RowSig and ColSig describe how rows and columns of the inputs
	// interleave in the inflated shape.
	RowSig, ColSig diff.Signature
}

// Ratio returns the fraction of aligned rows in the total row count of both
// inputs. Two empty matrices have ratio 1.
func (r *Result[T]) Ratio() float64 {
	eq, total := 0, 0
	for _, p := range r.RowSig.Parts {
		n := p.SizeA + p.SizeB
		total += n
		if p.Eq {
			eq += n
		}
	}
	if total == 0 {
		return 1
	}
	return float64(eq) / float64(total)
}

// AlignedRatio returns the fraction of true cells in the equality mask.
// An empty mask has ratio 1.
func (r *Result[T]) AlignedRatio() float64 {
	total := r.Eq.rows * r.Eq.cols
	if total == 0 {
		return 1
	}
	eq := 0
	for _, v := range r.Eq.data {
		if v {
			eq++
		}
	}
	return float64(eq) / float64(total)
}

// Aligned computes an aligned diff between two matrices.
//
// Rows count as aligned when their similarity reaches the row floor, which
// is [diff.MinRatio] when set and 0.75 otherwise. Matrices of equal width
// score row pairs by the fraction of equal cells, optionally weighted per
// column with [Weights]; matrices of different widths score row pairs by
// their one-dimensional alignment ratio. Weights combined with different
// widths fail with a [ShapeError].
//
// The following options are supported: [diff.MinRatio], [diff.MaxCost],
// [diff.MaxCostRow], [diff.MaxCalls], [Weights].
func Aligned[T comparable](a, b *Matrix[T], fill T, opts ...diff.Option) (*Result[T], error) {
	cfg := config.FromOptions(opts, config.MinRatio|config.MaxCost|config.MaxCostRow|config.MaxCalls|config.Weights)

	rowFloor := cfg.MinRatio
	if rowFloor <= 0 {
		rowFloor = defaultRowFloor
	}

	sameWidth := a.cols == b.cols
	if cfg.Weights != nil {
		if !sameWidth {
			return nil, &ShapeError{Reason: fmt.Sprintf("weights require equal widths, got %d and %d columns", a.cols, b.cols)}
		}
		if len(cfg.Weights) != a.cols {
			return nil, &ShapeError{Reason: fmt.Sprintf("%d weights for %d columns", len(cfg.Weights), a.cols)}
		}
	}

	// The budget for comparisons of individual row pairs. Rows below the
	// floor never align, so edit costs past the floor are not worth exploring.
	rowCost := func(total int) int {
		c := total - int(float64(total)*rowFloor)
		if cfg.MaxCostRow > 0 && cfg.MaxCostRow < c {
			c = cfg.MaxCostRow
		}
		return c
	}

	var rowScore func(i, j int) float64
	if sameWidth {
		rowScore = cellScore(a, b, cfg.Weights)
	} else {
		rowScore = func(i, j int) float64 {
			ra, rb := a.Row(i), b.Row(j)
			total := len(ra) + len(rb)
			if total == 0 {
				return 1
			}
			cost := myers.Search(len(ra), len(rb), eqScore(ra, rb), nil, myers.Params{
				Accept:   1,
				MaxCost:  rowCost(total),
				MaxCalls: config.Unbounded,
			})
			return float64(total-cost) / float64(total)
		}
	}

	rowSig, pairs := alignRows(a.rows, b.rows, rowScore, rowFloor, cfg)

	var colSig diff.Signature
	switch {
	case sameWidth && a.cols == 0:
		colSig = diff.Signature{}
	case sameWidth:
		colSig = diff.Signature{Parts: []diff.ChunkSig{{SizeA: a.cols, SizeB: b.cols, Eq: true}}}
	default:
		// Merge the column scripts of all aligned row pairs into the single
		// column alignment that agrees with as many of them as possible.
		pairSigs := make([]diff.Signature, len(pairs))
		for k, pr := range pairs {
			pairSigs[k] = rowScript(a.Row(pr[0]), b.Row(pr[1]), rowCost(a.cols+b.cols))
		}
		colSig = commonSig(a.cols, b.cols, pairSigs)
	}

	ia, ib := inflateRows(a, b, fill, rowSig)
	ia, ib = inflateCols(ia, ib, fill, colSig)

	return &Result[T]{
		A:      ia,
		B:      ib,
		Eq:     eqMask(ia, ib, rowSig, colSig),
		RowSig: rowSig,
		ColSig: colSig,
	}, nil
}

func eqScore[T comparable](x, y []T) func(i, j int) float64 {
	return func(i, j int) float64 {
		if x[i] == y[j] {
			return 1
		}
		return 0
	}
}

// cellScore scores a row pair of equal-width matrices by the weighted
// fraction of equal cells. Nil weights weigh every column equally.
func cellScore[T comparable](a, b *Matrix[T], weights []float64) func(i, j int) float64 {
	cols := a.cols
	if cols == 0 {
		return func(i, j int) float64 { return 1 }
	}
	if weights == nil {
		return func(i, j int) float64 {
			ra, rb := a.Row(i), b.Row(j)
			eq := 0
			for k := range ra {
				if ra[k] == rb[k] {
					eq++
				}
			}
			return float64(eq) / float64(cols)
		}
	}
	wsum := 0.0
	for _, w := range weights {
		wsum += w
	}
	return func(i, j int) float64 {
		ra, rb := a.Row(i), b.Row(j)
		s := 0.0
		for k := range ra {
			if ra[k] == rb[k] {
				s += weights[k]
			}
		}
		return s / wsum
	}
}

// alignRows runs the row-level search and folds the script into a row
// signature plus the list of aligned row index pairs.
func alignRows(n, m int, score func(i, j int) float64, rowFloor float64, cfg config.Config) (diff.Signature, [][2]int) {
	total := n + m
	if total == 0 {
		return diff.Signature{}, nil
	}
	maxCost := cfg.MaxCost
	if b := total - int(float64(total)*cfg.MinRatio); b < maxCost {
		maxCost = b
	}
	codes := make([]script.Op, total)
	myers.Search(n, m, score, codes, myers.Params{
		Accept:   rowFloor,
		MaxCost:  maxCost,
		MaxCalls: cfg.MaxCalls,
	})
	script.Canonize(codes)

	var parts []diff.ChunkSig
	var pairs [][2]int
	ox, oy := 0, 0
	for run := range script.Runs(codes) {
		parts = append(parts, diff.ChunkSig{SizeA: run.NX, SizeB: run.NY, Eq: run.Eq})
		if run.Eq {
			for k := range run.NX {
				pairs = append(pairs, [2]int{ox + k, oy + k})
			}
		}
		ox += run.NX
		oy += run.NY
	}
	return diff.Signature{Parts: parts}, pairs
}

// rowScript computes the column script of one aligned row pair.
func rowScript[T comparable](ra, rb []T, maxCost int) diff.Signature {
	total := len(ra) + len(rb)
	if total == 0 {
		return diff.Signature{}
	}
	codes := make([]script.Op, total)
	myers.Search(len(ra), len(rb), eqScore(ra, rb), codes, myers.Params{
		Accept:   1,
		MaxCost:  maxCost,
		MaxCalls: config.Unbounded,
	})
	script.Canonize(codes)
	var parts []diff.ChunkSig
	for run := range script.Runs(codes) {
		parts = append(parts, diff.ChunkSig{SizeA: run.NX, SizeB: run.NY, Eq: run.Eq})
	}
	return diff.Signature{Parts: parts}
}

// eqMask builds the equality mask: cell-wise equality with every
// fill-inserted row and column range forced to false.
func eqMask[T comparable](ia, ib *Matrix[T], rowSig, colSig diff.Signature) *Matrix[bool] {
	eq := New[bool](ia.rows, ia.cols)
	for k := range eq.data {
		eq.data[k] = ia.data[k] == ib.data[k]
	}
	off := 0
	for _, p := range rowSig.Parts {
		if !p.Eq {
			for r := off; r < off+p.SizeA+p.SizeB; r++ {
				row := eq.Row(r)
				for c := range row {
					row[c] = false
				}
			}
			off += p.SizeA + p.SizeB
		} else {
			off += p.SizeA
		}
	}
	off = 0
	for _, p := range colSig.Parts {
		if !p.Eq {
			for r := 0; r < eq.rows; r++ {
				row := eq.Row(r)
				for c := off; c < off+p.SizeA+p.SizeB; c++ {
					row[c] = false
				}
			}
			off += p.SizeA + p.SizeB
		} else {
			off += p.SizeA
		}
	}
	return eq
}
