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

// Package myers implements a linear-space variant of Myers' algorithm
// generalized from element equality to a continuous similarity score.
//
// # Myers Algorithm
//
// The algorithm is a graph search on the grid of all possible edits that
// transform x into y. A vertex (s, t) stands for "the first s elements of x
// and the first t elements of y have been consumed". A horizontal edge is a
// deletion from x, a vertical edge an insertion from y, and a diagonal edge
// (s, t) -> (s+1, t+1) exists iff score(s, t) >= accept. Horizontal and
// vertical edges cost 1, diagonal edges are free; a minimum-cost path from
// (0, 0) to (n, m) is an optimal edit script and its cost is the number of
// unmatched elements on both sides.
//
// Myers, E.W. An O(ND) difference algorithm and its variations.
// Algorithmica 1, 251-266 (1986). https://doi.org/10.1007/BF01840446
//
// # This variant
//
// Instead of the v-arrays indexed by diagonal k used in most presentations,
// this implementation rotates the grid by 45 degrees and tracks the search in
// (diag, progress) coordinates, both running 0..n+m:
//
//	diag     = s - t + m
//	progress = s + t
//
// A breadth-first round advances a front: for every active diagonal it holds
// the furthest progress reached so far. Two fronts run simultaneously, a
// forward one starting at progress 0 and a reverse one starting at progress
// n+m, advanced in alternating rounds; the round counter is exactly the cost
// explored so far. Each round has two phases: phase 1 slides every active
// diagonal as far as the score allows and checks whether the fronts crossed,
// phase 2 spends one edit to step onto the adjacent diagonals.
//
// Since during round c a front can only occupy diagonals of one parity within
// a window of at most min(n, m)+1 active diagonals, both fronts live in
// circular buffers of that size indexed by (diag/2) mod size. That keeps the
// memory linear in the smaller input regardless of cost.
//
// When the fronts cross, the crossing diagonal lies on an optimal path and
// the minimal cost is fixed. To recover the script, the two rectangles on
// either side of the crossing run are solved recursively with the remaining
// cost split between them (Hirschberg's trick), so full scripts are produced
// in linear space as well.
//
// # Budgets
//
// The search degrades gracefully instead of failing: when the round counter
// exceeds the cost budget, or the number of score calls exceeds the call
// budget at a round boundary, the unresolved rectangle is reported as a pure
// delete-then-insert stretch. Recursive calls after a crossing inherit
// halved cost budgets but are never call-limited; the call budget only bounds
// the top-level search.
package myers

import (
	"math"

	"fuzzdiff.io/diff/internal/script"
)

// Params controls a single search.
type Params struct {
	// Accept is the minimum score at which a pair of elements counts as
	// aligned, i.e. at which the diagonal edge exists. Must be > 0.
	Accept float64

	// MaxCost aborts the search once the explored cost exceeds it.
	MaxCost int

	// MaxCalls aborts the top-level search once the number of score calls
	// exceeds it. Checked between phases, so it may overshoot by one round.
	MaxCalls int
}

// Search finds a cheapest edit script turning a length-n sequence into a
// length-m one, where score reports the similarity of element i of the first
// sequence and element j of the second. It returns the cost of the script:
// the total number of unmatched elements on both sides.
//
// If out is non-nil it must hold n+m slots; the script is written to it. If
// out is nil only the cost is computed, which returns as soon as the minimal
// cost is known and is considerably cheaper.
//
// If a budget is exhausted the remainder is reported as deletions followed by
// insertions and the returned cost reflects that fallback script.
func Search(n, m int, score func(i, j int) float64, out []script.Op, p Params) int {
	s := search{
		score:  score,
		accept: p.Accept,
		out:    out,
	}
	return s.run(n, m, 0, 0, p.MaxCost, p.MaxCalls)
}

type search struct {
	score  func(i, j int) float64
	accept float64
	out    []script.Op

	// Scratch space for the two fronts. Allocated once at the top level and
	// reused by recursive calls: by the time a call recurses it has fully
	// consumed its own fronts.
	buf []int
}

// fronts returns the forward and reverse front buffers with nm slots each.
func (s *search) fronts(nm int) (fwd, rev []int) {
	if cap(s.buf) < 2*nm {
		s.buf = make([]int, 2*nm)
	}
	buf := s.buf[:2*nm]
	return buf[:nm], buf[nm:]
}

// run searches the rectangle of size n x m whose top-left corner is at
// (i, j) in the original inputs.
func (s *search) run(n, m, i, j, maxCost, maxCalls int) int {
	ncalls := 2 // accounts for the final probe of each stripping loop
	maxCost = min(maxCost, n+m)

	// Strip the accepted prefix and suffix. Besides being the fast path for
	// mostly-equal inputs, this guarantees that recursive calls below always
	// shrink the rectangle, so the recursion terminates.
	for n > 0 && m > 0 && s.score(i, j) >= s.accept {
		ncalls++
		if s.out != nil {
			s.out[i+j] = script.Match
			s.out[i+j+1] = script.None
		}
		i++
		j++
		n--
		m--
	}
	for n > 0 && m > 0 && s.score(i+n-1, j+m-1) >= s.accept {
		ncalls++
		if s.out != nil {
			ix := i + j + n + m - 2
			s.out[ix] = script.Match
			s.out[ix+1] = script.None
		}
		n--
		m--
	}
	if n == 0 || m == 0 {
		return s.giveUp(n, m, i, j)
	}

	nm := min(n, m) + 1
	fwd, rev := s.fronts(nm)
	for k := range fwd {
		fwd[k] = 0
		rev[k] = n + m
	}

	// The round counter doubles as the cost explored so far.
	for cost := 0; cost <= maxCost; cost++ {
		isRev := cost & 1
		sign := 1 - 2*isRev // +1 forward, -1 reverse

		var front []int
		var diagSrc, diagDst int
		if isRev == 1 {
			front = rev
			diagSrc, diagDst = n, m
		} else {
			front = fwd
			diagSrc, diagDst = m, n
		}

		// The window of diagonals the updated front occupies this round, and
		// the window the facing front occupied after its last round. Both
		// windows hold every second diagonal only.
		p := cost / 2
		diagFrom := abs(diagSrc - p)
		diagTo := n + m - abs(diagDst-p)
		fp := (cost + 1) / 2
		faceFrom := abs(diagDst - fp)
		faceTo := n + m - abs(diagSrc-fp)

		// Phase 1: slide every active diagonal while the score accepts, then
		// check whether the fronts crossed on it.
		for diag := diagFrom; diag < diagTo+2; diag += 2 {
			ix := (diag / 2) % nm
			progress0 := front[ix]
			progress := progress0

			// Translate (diag, progress) back to grid coordinates. The
			// reverse front probes the diagonal edge behind its position,
			// hence the shift.
			x := (progress+diag-m)/2 - isRev
			y := (progress-diag+m)/2 - isRev

			for 0 <= x && x < n && 0 <= y && y < m {
				ncalls++
				if s.score(x+i, y+j) < s.accept {
					break
				}
				progress += 2 * sign
				x += sign
				y += sign
			}
			front[ix] = progress

			if faceFrom <= diag && diag <= faceTo && (diag-faceFrom)%2 == 0 && fwd[ix] >= rev[ix] {
				// The fronts crossed: cost is the minimal script cost for
				// this rectangle.
				if s.out == nil {
					return cost
				}

				// Write the middle run of matches, then solve the rectangles
				// on either side of it with the cost split between them.
				for k := progress0 - 2*isRev; k != progress-2*isRev; k += 2 * sign {
					s.out[i+j+k] = script.Match
					s.out[i+j+k+1] = script.None
				}
				x0 := (progress0 + diag - m) / 2
				y0 := (progress0 - diag + m) / 2
				x1 := (progress + diag - m) / 2
				y1 := (progress - diag + m) / 2
				if isRev == 1 {
					x0, y0, x1, y1 = x1, y1, x0, y0
				}
				s.run(x0, y0, i, j, cost/2+cost%2, math.MaxInt)
				s.run(n-x1, m-y1, i+x1, j+y1, cost/2, math.MaxInt)
				return cost
			}
		}

		if ncalls > maxCalls {
			break
		}

		// Phase 2: step onto the adjacent diagonals. Every target diagonal
		// takes the better of its two neighbors; writes are delayed by one
		// iteration so that fresh values never feed the next diagonal.
		p2 := cost/2 + 1
		from2 := abs(diagSrc - p2)
		to2 := n + m - abs(diagDst-p2)

		ix := -1
		previous := -1
		for diag := from2; diag < to2+2; diag += 2 {
			left := front[idx(diag-1, nm)]
			right := front[idx(diag+1, nm)]

			var progress int
			switch {
			case diag == diagFrom-1: // window grows on the left
				progress = right
			case diag == diagTo+1: // window grows on the right
				progress = left
			case isRev == 1:
				progress = min(left, right)
			default:
				progress = max(left, right)
			}

			if ix != -1 {
				front[ix] = previous + sign
			}
			previous = progress
			ix = idx(diag, nm)
		}
		if ix != -1 {
			front[ix] = previous + sign
		}
	}

	return s.giveUp(n, m, i, j)
}

// giveUp reports the rectangle as deletions followed by insertions.
func (s *search) giveUp(n, m, i, j int) int {
	if s.out != nil {
		for ix := i + j; ix < i+j+n; ix++ {
			s.out[ix] = script.Delete
		}
		for ix := i + j + n; ix < i+j+n+m; ix++ {
			s.out[ix] = script.Insert
		}
	}
	return n + m
}

// idx maps a possibly negative diagonal to its slot in a front buffer.
// The shift floors the halving for negative diagonals.
func idx(diag, nm int) int {
	k := (diag >> 1) % nm
	if k < 0 {
		k += nm
	}
	return k
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
