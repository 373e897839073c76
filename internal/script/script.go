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

// Package script defines the flat edit-script representation shared between the
// alignment engine and the public packages.
//
// An edit script for inputs of length n and m is a buffer of exactly n+m ops,
// one slot per input element. Delete consumes one element of x, Insert consumes
// one element of y and Match consumes one element of each, taking up two slots:
// a Match op followed by one None filler. This fixed-size layout lets the engine
// write script fragments at absolute positions i+j without any bookkeeping.
package script

import "iter"

// Op is a single edit-script slot.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op uint8

const (
	None   Op = iota // filler slot following a Match
	Delete           // consumes one element of x
	Insert           // consumes one element of y
	Match            // consumes one element of each, followed by a None slot
)

// Canonize rewrites codes in place such that within every maximal run of
// non-matching ops all deletions come before all insertions.
//
// The engine emits deletions and insertions in search order, which interleaves
// them more or less arbitrarily. Canonical order makes script consumers simpler
// and the resulting chunks deterministic.
func Canonize(codes []Op) {
	nd, ni := 0, 0
	n := len(codes)
	for k := 0; k <= n; k++ {
		var c Op
		if k != n {
			c = codes[k]
		}
		switch c {
		case Delete:
			nd++
		case Insert:
			ni++
		default:
			if nd+ni > 0 {
				for i := k - nd - ni; i < k-ni; i++ {
					codes[i] = Delete
				}
				for i := k - ni; i < k; i++ {
					codes[i] = Insert
				}
				nd, ni = 0, 0
			}
		}
	}
}

// Run is a maximal stretch of an edit script in which all ops agree on
// equality: either a run of matches or a run of deletions and insertions.
type Run struct {
	NX, NY int // number of elements consumed from x and y
	Eq     bool
}

// Runs folds codes into maximal runs. The codes must be canonized first,
// otherwise a single mixed stretch may fold into several unequal runs.
func Runs(codes []Op) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		var run Run
		started := false
		for _, c := range codes {
			if c == None {
				continue
			}
			eq := c == Match
			if started && eq != run.Eq {
				if !yield(run) {
					return
				}
				started = false
			}
			if !started {
				run = Run{Eq: eq}
				started = true
			}
			switch c {
			case Delete:
				run.NX++
			case Insert:
				run.NY++
			case Match:
				run.NX++
				run.NY++
			}
		}
		if started {
			yield(run)
		}
	}
}
