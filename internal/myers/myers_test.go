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

package myers

import (
	"crypto/sha256"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"fuzzdiff.io/diff/internal/script"
)

var unbounded = Params{Accept: 1, MaxCost: math.MaxInt, MaxCalls: math.MaxInt}

func eqScore[T comparable](x, y []T) func(i, j int) float64 {
	return func(i, j int) float64 {
		if x[i] == y[j] {
			return 1
		}
		return 0
	}
}

// checkScript verifies that codes is a well-formed script for an n x m
// problem: it consumes exactly n and m elements, places matches only on
// accepted pairs and contains exactly cost unmatched elements.
func checkScript(t *testing.T, n, m int, score func(i, j int) float64, accept float64, codes []script.Op, cost int) {
	t.Helper()
	s, c, edits := 0, 0, 0
	for k := 0; k < len(codes); k++ {
		switch codes[k] {
		case script.Delete:
			s++
			edits++
		case script.Insert:
			c++
			edits++
		case script.Match:
			if score(s, c) < accept {
				t.Errorf("script matches (%d, %d) with score %v < accept %v", s, c, score(s, c), accept)
			}
			s++
			c++
			k++ // skip the None filler
		default:
			t.Errorf("unexpected op %v at slot %d", codes[k], k)
		}
	}
	if s != n || c != m {
		t.Errorf("script consumes (%d, %d) elements, want (%d, %d)", s, c, n, m)
	}
	if edits != cost {
		t.Errorf("script contains %d edits, want cost %d", edits, cost)
	}
}

// refCost computes the minimal script cost with a quadratic-space DP:
// n + m - 2*L where L is the longest chain of accepted diagonal pairs.
func refCost(n, m int, score func(i, j int) float64, accept float64) int {
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			switch {
			case score(i-1, j-1) >= accept:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return n + m - 2*prev[m]
}

func render(codes []script.Op) string {
	var sb strings.Builder
	for _, c := range codes {
		switch c {
		case script.Delete:
			sb.WriteByte('D')
		case script.Insert:
			sb.WriteByte('I')
		case script.Match:
			sb.WriteByte('M')
		}
	}
	return sb.String()
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name     string
		x, y     string
		wantCost int
		want     string // canonized rendering, empty to skip the exact check
	}{
		{name: "empty", x: "", y: "", wantCost: 0, want: ""},
		{name: "identical", x: "abc", y: "abc", wantCost: 0, want: "MMM"},
		{name: "x-empty", x: "", y: "abc", wantCost: 3, want: "III"},
		{name: "y-empty", x: "abc", y: "", wantCost: 3, want: "DDD"},
		{name: "same-prefix", x: "fg", y: "fh", wantCost: 2, want: "MDI"},
		{name: "same-suffix", x: "ag", y: "bg", wantCost: 2, want: "DIM"},
		{name: "disjoint", x: "ab", y: "cd", wantCost: 4, want: "DDII"},
		{name: "classic", x: "ABCABBA", y: "CBABAC", wantCost: 5},
		{name: "overlap", x: "abcd", y: "bcde", wantCost: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := []byte(tt.x), []byte(tt.y)
			score := eqScore(x, y)
			codes := make([]script.Op, len(x)+len(y))
			cost := Search(len(x), len(y), score, codes, unbounded)
			if cost != tt.wantCost {
				t.Errorf("Search(%q, %q) cost = %d, want %d", tt.x, tt.y, cost, tt.wantCost)
			}
			checkScript(t, len(x), len(y), score, 1, codes, cost)
			if tt.want != "" {
				script.Canonize(codes)
				if got := render(codes); got != tt.want {
					t.Errorf("Search(%q, %q) script = %s, want %s", tt.x, tt.y, got, tt.want)
				}
			}
		})
	}
}

func TestSearchEqOnly(t *testing.T) {
	tests := []struct {
		x, y string
	}{
		{"", ""},
		{"abc", "abc"},
		{"ABCABBA", "CBABAC"},
		{"abcdefg", "zabdefgh"},
		{"aaaa", "bbbb"},
	}
	for _, tt := range tests {
		x, y := []byte(tt.x), []byte(tt.y)
		score := eqScore(x, y)
		got := Search(len(x), len(y), score, nil, unbounded)
		codes := make([]script.Op, len(x)+len(y))
		want := Search(len(x), len(y), score, codes, unbounded)
		if got != want {
			t.Errorf("Search(%q, %q, out=nil) = %d, full search found %d", tt.x, tt.y, got, want)
		}
	}
}

func TestSearchAccept(t *testing.T) {
	x := []float64{1.0, 5.0, 9.0}
	y := []float64{1.2, 9.3}
	score := func(i, j int) float64 { return 1 - math.Abs(x[i]-y[j])/10 }

	// With accept = 0.95 only pairs closer than 0.5 align: (1.0, 1.2) and
	// (9.0, 9.3). The 5.0 in the middle is a deletion.
	codes := make([]script.Op, len(x)+len(y))
	cost := Search(len(x), len(y), score, codes, Params{Accept: 0.95, MaxCost: math.MaxInt, MaxCalls: math.MaxInt})
	if cost != 1 {
		t.Errorf("cost = %d, want 1", cost)
	}
	script.Canonize(codes)
	if got := render(codes); got != "MDM" {
		t.Errorf("script = %s, want MDM", got)
	}

	// With a strict accept nothing aligns.
	cost = Search(len(x), len(y), score, nil, Params{Accept: 1, MaxCost: math.MaxInt, MaxCalls: math.MaxInt})
	if cost != 5 {
		t.Errorf("cost = %d, want 5", cost)
	}
}

func TestSearchMaxCost(t *testing.T) {
	x, y := []byte("ABCABBA"), []byte("CBABAC") // optimal cost is 5
	score := eqScore(x, y)

	// A budget below the optimum falls back to delete-then-insert.
	codes := make([]script.Op, len(x)+len(y))
	cost := Search(len(x), len(y), score, codes, Params{Accept: 1, MaxCost: 3, MaxCalls: math.MaxInt})
	if want := len(x) + len(y); cost != want {
		t.Errorf("cost = %d, want fallback %d", cost, want)
	}
	if got := render(codes); got != "DDDDDDDIIIIII" {
		t.Errorf("script = %s, want DDDDDDDIIIIII", got)
	}

	// A budget at the optimum still finds the script.
	codes = make([]script.Op, len(x)+len(y))
	cost = Search(len(x), len(y), score, codes, Params{Accept: 1, MaxCost: 5, MaxCalls: math.MaxInt})
	if cost != 5 {
		t.Errorf("cost = %d, want 5", cost)
	}
	checkScript(t, len(x), len(y), score, 1, codes, cost)
}

func TestSearchMaxCostKeepsStrippedEnds(t *testing.T) {
	// The common prefix and suffix survive even when the budget is too small
	// for the middle.
	x, y := []byte("ccABCABBAdd"), []byte("ccCBABACdd")
	score := eqScore(x, y)
	codes := make([]script.Op, len(x)+len(y))
	cost := Search(len(x), len(y), score, codes, Params{Accept: 1, MaxCost: 3, MaxCalls: math.MaxInt})
	if want := 13; cost != want { // 7 + 6 unmatched middle elements
		t.Errorf("cost = %d, want %d", cost, want)
	}
	script.Canonize(codes)
	if got := render(codes); got != "MMDDDDDDDIIIIIIMM" {
		t.Errorf("script = %s, want MMDDDDDDDIIIIIIMM", got)
	}
}

func TestSearchMaxCalls(t *testing.T) {
	x, y := []byte("ABCABBA"), []byte("CBABAC")
	score := eqScore(x, y)
	codes := make([]script.Op, len(x)+len(y))
	cost := Search(len(x), len(y), score, codes, Params{Accept: 1, MaxCost: math.MaxInt, MaxCalls: 0})
	if want := len(x) + len(y); cost != want {
		t.Errorf("cost = %d, want fallback %d", cost, want)
	}
	checkScript(t, len(x), len(y), score, 1, codes, cost)
}

func TestSearchRandomized(t *testing.T) {
	for i := range 50 {
		seed := sha256.Sum256(fmt.Append(nil, i))
		t.Run(fmt.Sprintf("seed=%x", seed[:8]), func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewChaCha8(seed))
			x := make([]byte, rng.IntN(80))
			for k := range x {
				x[k] = byte('a' + rng.IntN(4))
			}
			y := make([]byte, rng.IntN(80))
			for k := range y {
				y[k] = byte('a' + rng.IntN(4))
			}
			score := eqScore(x, y)

			want := refCost(len(x), len(y), score, 1)
			codes := make([]script.Op, len(x)+len(y))
			cost := Search(len(x), len(y), score, codes, unbounded)
			if cost != want {
				t.Errorf("Search(%q, %q) cost = %d, reference DP found %d", x, y, cost, want)
			}
			checkScript(t, len(x), len(y), score, 1, codes, cost)

			if eqOnly := Search(len(x), len(y), score, nil, unbounded); eqOnly != want {
				t.Errorf("Search(%q, %q, out=nil) = %d, reference DP found %d", x, y, eqOnly, want)
			}
		})
	}
}

func TestSearchRandomizedBudget(t *testing.T) {
	// Whatever the budget, the result must be a well-formed script whose cost
	// matches the return value.
	for i := range 30 {
		seed := sha256.Sum256(fmt.Append(nil, 1000+i))
		t.Run(fmt.Sprintf("seed=%x", seed[:8]), func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewChaCha8(seed))
			x := make([]byte, rng.IntN(60))
			for k := range x {
				x[k] = byte('a' + rng.IntN(3))
			}
			y := make([]byte, rng.IntN(60))
			for k := range y {
				y[k] = byte('a' + rng.IntN(3))
			}
			score := eqScore(x, y)

			p := Params{Accept: 1, MaxCost: rng.IntN(10), MaxCalls: math.MaxInt}
			codes := make([]script.Op, len(x)+len(y))
			cost := Search(len(x), len(y), score, codes, p)
			checkScript(t, len(x), len(y), score, 1, codes, cost)

			if optimal := refCost(len(x), len(y), score, 1); cost < optimal {
				t.Errorf("budgeted search found cost %d below the optimum %d", cost, optimal)
			}
		})
	}
}
