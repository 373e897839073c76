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

import "fuzzdiff.io/diff"

// commonSig merges the column scripts of aligned row pairs into a single
// column signature for inputs of n and m columns.
//
// Each pair script votes for the column pairings it aligns; a dynamic
// program then finds the non-crossing set of column pairings with the
// maximum number of votes and the leftover columns become unmatched ranges.
// Pairings without any vote may appear when no pair script constrains a
// region; they cost nothing and keep the signature minimal.
func commonSig(n, m int, pairSigs []diff.Signature) diff.Signature {
	if n == 0 && m == 0 {
		return diff.Signature{}
	}
	if n == 0 || m == 0 {
		return diff.Signature{Parts: []diff.ChunkSig{{SizeA: n, SizeB: m, Eq: false}}}
	}

	// Collect votes: space[x*m+y] counts the pair scripts aligning column x
	// of the first input with column y of the second.
	space := make([]int, n*m)
	for _, sig := range pairSigs {
		x, y := 0, 0
		for _, p := range sig.Parts {
			if p.Eq {
				for i := range p.SizeA {
					space[(x+i)*m+y+i]++
				}
			}
			x += p.SizeA
			y += p.SizeB
		}
	}

	// space[x*m+y] becomes the maximum total vote of any non-crossing
	// pairing of the prefix columns [0, x] x [0, y].
	for y := 0; y < m; y++ {
		if y == 0 {
			for x := 1; x < n; x++ {
				space[x*m] = max(space[x*m], space[(x-1)*m])
			}
		} else {
			space[y] = max(space[y], space[y-1])
			for x := 1; x < n; x++ {
				space[x*m+y] = max(space[(x-1)*m+y], space[x*m+y-1], space[(x-1)*m+y-1]+space[x*m+y])
			}
		}
	}

	// Trace back one optimal pairing. The walk is laid out as a merged
	// sequence of n+m slots; isB marks slots taken from the second input and
	// isEq marks the slot pairs that are aligned.
	x, y := n-1, m-1
	isB := make([]bool, n+m)
	isEq := make([]bool, n+m+2)
	pos := n + m
	for x >= 0 && y >= 0 {
		switch {
		case x > 0 && space[x*m+y] == space[(x-1)*m+y]:
			x--
			pos--
		case y > 0 && space[x*m+y] == space[x*m+y-1]:
			y--
			pos--
			isB[pos] = true
		default:
			isEq[pos] = true
			isEq[pos-1] = true
			x--
			y--
			pos -= 2
			isB[pos+1] = true
		}
	}
	x++
	y++
	for k := x; k < x+y; k++ {
		isB[k] = true
	}

	// Sentinel flips so that every run boundary shows up as a transition.
	isEq[0] = !isEq[1]
	isEq[n+m+1] = !isEq[n+m]

	var ix []int
	for k := 0; k <= n+m; k++ {
		if isEq[k] != isEq[k+1] {
			ix = append(ix, k)
		}
	}
	parts := make([]diff.ChunkSig, 0, len(ix)-1)
	for t := 1; t < len(ix); t++ {
		fr, to := ix[t-1], ix[t]
		nb := 0
		for k := fr; k < to; k++ {
			if isB[k] {
				nb++
			}
		}
		parts = append(parts, diff.ChunkSig{SizeA: to - fr - nb, SizeB: nb, Eq: isEq[fr+1]})
	}
	return diff.Signature{Parts: parts}
}

// inflateRows pads both matrices with fill rows according to sig such that
// aligned rows land on the same index and unmatched rows get exclusive
// indices, a rows first.
func inflateRows[T comparable](a, b *Matrix[T], fill T, sig diff.Signature) (*Matrix[T], *Matrix[T]) {
	s := sig.Inflated()
	ra := full(s, a.cols, fill)
	rb := full(s, b.cols, fill)
	offA, offB, off := 0, 0, 0
	for _, p := range sig.Parts {
		for k := range p.SizeA {
			copy(ra.Row(off+k), a.Row(offA+k))
		}
		offA += p.SizeA
		if !p.Eq {
			off += p.SizeA
		}
		for k := range p.SizeB {
			copy(rb.Row(off+k), b.Row(offB+k))
		}
		offB += p.SizeB
		off += p.SizeB
	}
	return ra, rb
}

// inflateCols is the column-dimension counterpart of inflateRows.
func inflateCols[T comparable](a, b *Matrix[T], fill T, sig diff.Signature) (*Matrix[T], *Matrix[T]) {
	s := sig.Inflated()
	ra := full(a.rows, s, fill)
	rb := full(b.rows, s, fill)
	offA, offB, off := 0, 0, 0
	for _, p := range sig.Parts {
		for r := 0; r < a.rows; r++ {
			copy(ra.Row(r)[off:off+p.SizeA], a.Row(r)[offA:offA+p.SizeA])
		}
		offA += p.SizeA
		if !p.Eq {
			off += p.SizeA
		}
		for r := 0; r < b.rows; r++ {
			copy(rb.Row(r)[off:off+p.SizeB], b.Row(r)[offB:offB+p.SizeB])
		}
		offB += p.SizeB
		off += p.SizeB
	}
	return ra, rb
}
