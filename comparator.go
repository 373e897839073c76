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
	"bytes"
	"fmt"
	"math"
	"reflect"

	"fuzzdiff.io/diff/internal/config"
)

// ProtocolError reports that a pair of dynamically-typed values cannot be
// compared: the types differ, a value is not a sequence, or the comparison
// would require the reflection protocol while [KernelOnly] is set.
type ProtocolError struct {
	TypeA, TypeB string
	Reason       string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("diff: cannot compare %s and %s: %s", e.TypeA, e.TypeB, e.Reason)
}

// kind identifies the comparison kernel a pair of values resolved to.
type kind int

const (
	kindText      kind = iota // string pairs, compared code-point-wise
	kindBytes                 // []byte pairs
	kindFixed                 // fixed-width numeric slices, bit-pattern equality
	kindRagged                // []string and [][]byte, exact range equality
	kindObject                // same-typed slices via reflection
	kindContainer             // []any pairs, elements may nest
)

// view is a resolved pair of sequences: lengths, a scoring kernel and
// accessors producing subsequences with the inputs' dynamic types.
//
// Resolution happens once per call; the score function dispatches on nothing.
type view struct {
	n, m   int
	kind   kind
	score  func(i, j int) float64
	sliceA func(lo, hi int) any
	sliceB func(lo, hi int) any
}

// bufView builds a view over two typed slices with the given equality.
func bufView[T any](a, b []T, k kind, eq func(x, y T) bool) *view {
	return &view{
		n:    len(a),
		m:    len(b),
		kind: k,
		score: func(i, j int) float64 {
			if eq(a[i], b[j]) {
				return 1
			}
			return 0
		},
		sliceA: func(lo, hi int) any { return a[lo:hi:hi] },
		sliceB: func(lo, hi int) any { return b[lo:hi:hi] },
	}
}

func fixedView[T comparable](a, b []T) *view {
	return bufView(a, b, kindFixed, func(x, y T) bool { return x == y })
}

// resolve maps a pair of dynamically-typed values to a comparison kernel.
//
// Floating-point kernels compare bit patterns at their native width, so NaN
// has a stable identity and -0 differs from 0. The reflection kernel and the
// container kernel are refused when cfg.KernelOnly is set.
func resolve(a, b any, cfg config.Config) (*view, error) {
	mismatch := func(reason string) error {
		return &ProtocolError{TypeA: fmt.Sprintf("%T", a), TypeB: fmt.Sprintf("%T", b), Reason: reason}
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			ra, rb := []rune(av), []rune(bv)
			v := bufView(ra, rb, kindText, func(x, y rune) bool { return x == y })
			v.sliceA = func(lo, hi int) any { return string(ra[lo:hi]) }
			v.sliceB = func(lo, hi int) any { return string(rb[lo:hi]) }
			return v, nil
		}
	case []byte:
		if bv, ok := b.([]byte); ok {
			return bufView(av, bv, kindBytes, func(x, y byte) bool { return x == y }), nil
		}
	case []int8:
		if bv, ok := b.([]int8); ok {
			return fixedView(av, bv), nil
		}
	case []int16:
		if bv, ok := b.([]int16); ok {
			return fixedView(av, bv), nil
		}
	case []int32:
		if bv, ok := b.([]int32); ok {
			return fixedView(av, bv), nil
		}
	case []int64:
		if bv, ok := b.([]int64); ok {
			return fixedView(av, bv), nil
		}
	case []int:
		if bv, ok := b.([]int); ok {
			return fixedView(av, bv), nil
		}
	case []uint16:
		if bv, ok := b.([]uint16); ok {
			return fixedView(av, bv), nil
		}
	case []uint32:
		if bv, ok := b.([]uint32); ok {
			return fixedView(av, bv), nil
		}
	case []uint64:
		if bv, ok := b.([]uint64); ok {
			return fixedView(av, bv), nil
		}
	case []uint:
		if bv, ok := b.([]uint); ok {
			return fixedView(av, bv), nil
		}
	case []uintptr:
		if bv, ok := b.([]uintptr); ok {
			return fixedView(av, bv), nil
		}
	case []float32:
		if bv, ok := b.([]float32); ok {
			return bufView(av, bv, kindFixed, func(x, y float32) bool {
				return math.Float32bits(x) == math.Float32bits(y)
			}), nil
		}
	case []float64:
		if bv, ok := b.([]float64); ok {
			return bufView(av, bv, kindFixed, func(x, y float64) bool {
				return math.Float64bits(x) == math.Float64bits(y)
			}), nil
		}
	case []complex64:
		if bv, ok := b.([]complex64); ok {
			return bufView(av, bv, kindFixed, func(x, y complex64) bool {
				return math.Float32bits(real(x)) == math.Float32bits(real(y)) &&
					math.Float32bits(imag(x)) == math.Float32bits(imag(y))
			}), nil
		}
	case []complex128:
		if bv, ok := b.([]complex128); ok {
			return bufView(av, bv, kindFixed, func(x, y complex128) bool {
				return math.Float64bits(real(x)) == math.Float64bits(real(y)) &&
					math.Float64bits(imag(x)) == math.Float64bits(imag(y))
			}), nil
		}
	case []string:
		if bv, ok := b.([]string); ok {
			return bufView(av, bv, kindRagged, func(x, y string) bool { return x == y }), nil
		}
	case [][]byte:
		if bv, ok := b.([][]byte); ok {
			return bufView(av, bv, kindRagged, bytes.Equal), nil
		}
	case []any:
		if bv, ok := b.([]any); ok {
			if cfg.KernelOnly {
				return nil, mismatch("nested containers require the reflection protocol")
			}
			return bufView(av, bv, kindContainer, func(x, y any) bool { return reflect.DeepEqual(x, y) }), nil
		}
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() {
		return nil, mismatch("nil input")
	}
	if ra.Type() != rb.Type() {
		return nil, mismatch("mismatched types")
	}
	if ra.Kind() != reflect.Slice {
		return nil, mismatch("not a sequence")
	}
	if cfg.KernelOnly {
		return nil, mismatch("no buffer kernel for this element type")
	}
	return &view{
		n:    ra.Len(),
		m:    rb.Len(),
		kind: kindObject,
		score: func(i, j int) float64 {
			if reflect.DeepEqual(ra.Index(i).Interface(), rb.Index(j).Interface()) {
				return 1
			}
			return 0
		},
		sliceA: func(lo, hi int) any { return ra.Slice3(lo, hi, hi).Interface() },
		sliceB: func(lo, hi int) any { return rb.Slice3(lo, hi, hi).Interface() },
	}, nil
}
