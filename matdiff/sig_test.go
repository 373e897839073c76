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
	"testing"

	"github.com/stretchr/testify/assert"

	"fuzzdiff.io/diff"
)

func sig(parts ...diff.ChunkSig) diff.Signature {
	return diff.Signature{Parts: parts}
}

func TestCommonSig(t *testing.T) {
	tests := []struct {
		name     string
		n, m     int
		pairSigs []diff.Signature
		want     diff.Signature
	}{
		{
			name: "empty",
			want: diff.Signature{},
		},
		{
			name: "left-empty",
			m:    3,
			want: sig(diff.ChunkSig{SizeA: 0, SizeB: 3}),
		},
		{
			name: "right-empty",
			n:    2,
			want: sig(diff.ChunkSig{SizeA: 2, SizeB: 0}),
		},
		{
			name: "agreeing-pairs",
			n:    2,
			m:    3,
			pairSigs: []diff.Signature{
				sig(diff.ChunkSig{SizeA: 2, SizeB: 2, Eq: true}, diff.ChunkSig{SizeA: 0, SizeB: 1}),
				sig(diff.ChunkSig{SizeA: 2, SizeB: 2, Eq: true}, diff.ChunkSig{SizeA: 0, SizeB: 1}),
			},
			want: sig(
				diff.ChunkSig{SizeA: 2, SizeB: 2, Eq: true},
				diff.ChunkSig{SizeA: 0, SizeB: 1},
			),
		},
		{
			name: "majority-wins",
			n:    2,
			m:    2,
			pairSigs: []diff.Signature{
				sig(diff.ChunkSig{SizeA: 2, SizeB: 2, Eq: true}),
				sig(diff.ChunkSig{SizeA: 2, SizeB: 2, Eq: true}),
				sig(diff.ChunkSig{SizeA: 1, SizeB: 0}, diff.ChunkSig{SizeA: 1, SizeB: 1, Eq: true}, diff.ChunkSig{SizeA: 0, SizeB: 1}),
			},
			want: sig(diff.ChunkSig{SizeA: 2, SizeB: 2, Eq: true}),
		},
		{
			// With no votes at all the walk still pairs leading columns; the
			// pairing costs nothing and keeps the signature minimal.
			name: "no-votes",
			n:    2,
			m:    3,
			want: sig(
				diff.ChunkSig{SizeA: 1, SizeB: 1, Eq: true},
				diff.ChunkSig{SizeA: 1, SizeB: 2},
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := commonSig(tt.n, tt.m, tt.pairSigs)
			assert.Equal(t, tt.want, got)

			sumA, sumB := 0, 0
			for _, p := range got.Parts {
				sumA += p.SizeA
				sumB += p.SizeB
			}
			assert.Equal(t, tt.n, sumA, "signature must consume all left columns")
			assert.Equal(t, tt.m, sumB, "signature must consume all right columns")
		})
	}
}

func TestInflate(t *testing.T) {
	a, _ := FromRows([][]int{{1, 2}})
	b, _ := FromRows([][]int{{1, 0, 2}})
	colSig := sig(
		diff.ChunkSig{SizeA: 1, SizeB: 1, Eq: true},
		diff.ChunkSig{SizeA: 0, SizeB: 1},
		diff.ChunkSig{SizeA: 1, SizeB: 1, Eq: true},
	)
	ia, ib := inflateCols(a, b, -1, colSig)
	assert.Equal(t, [][]int{{1, -1, 2}}, ia.ToRows())
	assert.Equal(t, [][]int{{1, 0, 2}}, ib.ToRows())

	rowSig := sig(
		diff.ChunkSig{SizeA: 1, SizeB: 0},
		diff.ChunkSig{SizeA: 1, SizeB: 1, Eq: true},
	)
	ra, rb := inflateRows(New[int](2, 1), New[int](1, 1), -1, rowSig)
	assert.Equal(t, [][]int{{0}, {0}}, ra.ToRows())
	assert.Equal(t, [][]int{{-1}, {0}}, rb.ToRows())
}
