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

// Chunk is a contiguous piece of a pairwise alignment: either a run of
// aligned element pairs (Eq is true and A and B have the same length) or a
// run of unmatched elements on one or both sides.
//
// A and B are subslices of the compared inputs, no elements are copied.
type Chunk[T any] struct {
	A, B []T
	Eq   bool
}

// Result describes a diff between two sequences.
type Result[T any] struct {
	// Ratio is the similarity of the inputs: 1 - cost/(len(a)+len(b)),
	// where cost is the number of unmatched elements on both sides.
	// Two empty sequences have ratio 1.
	Ratio float64

	// Chunks is the sequence of alignment chunks. Equality alternates
	// between consecutive chunks. Concatenating the A sides yields the
	// first input, the B sides the second.
	Chunks []Chunk[T]
}

// A reconstructs the first input from the chunks.
func (r *Result[T]) A() []T {
	var out []T
	for _, c := range r.Chunks {
		out = append(out, c.A...)
	}
	return out
}

// B reconstructs the second input from the chunks.
func (r *Result[T]) B() []T {
	var out []T
	for _, c := range r.Chunks {
		out = append(out, c.B...)
	}
	return out
}

// Signature returns the shape of the diff with the element data dropped.
func (r *Result[T]) Signature() Signature {
	parts := make([]ChunkSig, len(r.Chunks))
	for i, c := range r.Chunks {
		parts[i] = ChunkSig{SizeA: len(c.A), SizeB: len(c.B), Eq: c.Eq}
	}
	return Signature{Parts: parts}
}

// ChunkSig is the shape of a single chunk: how many elements it holds on
// each side and whether they are aligned.
type ChunkSig struct {
	SizeA, SizeB int
	Eq           bool
}

// Inflated returns the number of slots the chunk occupies once both sides
// are padded to a common length: aligned elements share a slot, unmatched
// ones get a slot each.
func (s ChunkSig) Inflated() int {
	if s.Eq {
		return s.SizeA
	}
	return s.SizeA + s.SizeB
}

// Signature is the shape of a diff: the chunk sizes and equality flags
// without the element data. Signatures describe how two sequences interleave
// and are the input to aligned inflation in the matdiff subpackage.
type Signature struct {
	Parts []ChunkSig
}

// Inflated returns the total number of slots of the padded alignment.
func (s Signature) Inflated() int {
	n := 0
	for _, p := range s.Parts {
		n += p.Inflated()
	}
	return n
}

// SumA returns the length of the first of the two described sequences.
func (s Signature) SumA() int {
	n := 0
	for _, p := range s.Parts {
		n += p.SizeA
	}
	return n
}

// SumB returns the length of the second of the two described sequences.
func (s Signature) SumB() int {
	n := 0
	for _, p := range s.Parts {
		n += p.SizeB
	}
	return n
}
