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
	"errors"
	"math"
	"reflect"

	"fuzzdiff.io/diff/internal/config"
	"fuzzdiff.io/diff/internal/myers"
	"fuzzdiff.io/diff/internal/script"
)

// ErrCyclicInput is returned by [Nested] and [NestedRatio] when a container
// contains itself, directly or indirectly.
var ErrCyclicInput = errors.New("diff: cyclic input")

// Node is the result of comparing two dynamically-typed values.
type Node struct {
	// Ratio is the similarity of the two values, between 0 and 1.
	Ratio float64

	// Chunks is the sequence of alignment chunks.
	Chunks []NodeChunk
}

// NodeChunk is one chunk of a nested diff. A and B hold subsequences of the
// inputs with their original dynamic types: substrings for string inputs,
// subslices otherwise.
//
// For aligned chunks whose pairs differ below the surface, Nested carries
// one child node per aligned pair.
type NodeChunk struct {
	A, B   any
	Eq     bool
	Nested []*Node
}

// Nested compares two dynamically-typed values.
//
// Strings, byte slices and fixed-width numeric slices are compared with
// specialized kernels; see [ProtocolError] for the resolution rules. Pairs
// of []any containers are aligned by the recursive similarity of their
// elements: two elements align when their own comparison reaches [MinRatio],
// and aligned pairs that are not identical are compared again in full to
// attach per-pair detail.
//
// The following options are supported: [MinRatio], [MaxCost], [MaxCostRow],
// [MaxCalls], [MaxDepth], [KernelOnly].
func Nested(a, b any, opts ...Option) (*Node, error) {
	cfg := config.FromOptions(opts, config.MinRatio|config.MaxCost|config.MaxCostRow|config.MaxCalls|config.MaxDepth|config.KernelOnly)
	n := nester{cfg: cfg, blA: map[uintptr]struct{}{}, blB: map[uintptr]struct{}{}}
	return n.node(a, b, 0)
}

// NestedRatio computes the similarity ratio of two dynamically-typed values
// without producing chunks.
//
// The following options are supported: [MinRatio], [MaxCost], [MaxCostRow],
// [MaxCalls], [MaxDepth], [KernelOnly].
func NestedRatio(a, b any, opts ...Option) (float64, error) {
	cfg := config.FromOptions(opts, config.MinRatio|config.MaxCost|config.MaxCostRow|config.MaxCalls|config.MaxDepth|config.KernelOnly)
	n := nester{cfg: cfg, blA: map[uintptr]struct{}{}, blB: map[uintptr]struct{}{}}
	return n.ratio(a, b, 0)
}

// nester carries the state of one Nested or NestedRatio call: the
// configuration and the per-side blacklists of containers on the current
// recursion path, used for cycle detection.
type nester struct {
	cfg      config.Config
	blA, blB map[uintptr]struct{}
}

// cfgAt returns the configuration in effect at the given depth: below the
// top level MaxCostRow replaces MaxCost when set.
func (n *nester) cfgAt(depth int) config.Config {
	cfg := n.cfg
	if depth > 0 && cfg.MaxCostRow > 0 {
		cfg.MaxCost = cfg.MaxCostRow
	}
	return cfg
}

// alignAccept is the similarity threshold at which container elements count
// as aligned. A zero MinRatio still requires some similarity: aligning
// completely dissimilar elements would make every pair interchangeable.
func (n *nester) alignAccept() float64 {
	if n.cfg.MinRatio > 0 {
		return n.cfg.MinRatio
	}
	return math.SmallestNonzeroFloat64
}

// guard registers a container pair on the recursion path and reports a cycle
// if either side is already on it. The returned release removes the pair
// again; it must be called when the pair's subtree is done.
func (n *nester) guard(a, b any) (release func(), err error) {
	pa, pb := seqPointer(a), seqPointer(b)
	if pa != 0 {
		if _, ok := n.blA[pa]; ok {
			return nil, ErrCyclicInput
		}
	}
	if pb != 0 {
		if _, ok := n.blB[pb]; ok {
			return nil, ErrCyclicInput
		}
	}
	if pa != 0 {
		n.blA[pa] = struct{}{}
	}
	if pb != 0 {
		n.blB[pb] = struct{}{}
	}
	return func() {
		delete(n.blA, pa)
		delete(n.blB, pb)
	}, nil
}

// seqPointer identifies a non-empty slice for cycle detection. Empty slices
// cannot participate in a cycle and share backing pointers, so they get no
// identity.
func seqPointer(v any) uintptr {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Len() > 0 {
		return rv.Pointer()
	}
	return 0
}

func (n *nester) node(a, b any, depth int) (*Node, error) {
	v, err := resolve(a, b, n.cfg)
	if err != nil {
		return nil, err
	}
	if v.kind == kindContainer && n.cfg.MaxDepth-depth > 1 {
		return n.containerNode(a.([]any), b.([]any), v, depth)
	}
	return n.flatNode(v, depth), nil
}

// flatNode compares a resolved pair with its kernel. Kernel scores are
// binary, so the accept threshold is pinned to 1.
func (n *nester) flatNode(v *view, depth int) *Node {
	total := v.n + v.m
	if total == 0 {
		return &Node{Ratio: 1}
	}
	cfg := n.cfgAt(depth)
	cfg.Accept = 1
	codes := make([]script.Op, total)
	cost := myers.Search(v.n, v.m, v.score, codes, searchParams(cfg, total))
	script.Canonize(codes)

	node := &Node{Ratio: float64(total-cost) / float64(total)}
	ox, oy := 0, 0
	for run := range script.Runs(codes) {
		node.Chunks = append(node.Chunks, NodeChunk{
			A:  v.sliceA(ox, ox+run.NX),
			B:  v.sliceB(oy, oy+run.NY),
			Eq: run.Eq,
		})
		ox += run.NX
		oy += run.NY
	}
	return node
}

func (n *nester) containerNode(as, bs []any, v *view, depth int) (*Node, error) {
	release, err := n.guard(as, bs)
	if err != nil {
		return nil, err
	}
	defer release()

	total := len(as) + len(bs)
	if total == 0 {
		return &Node{Ratio: 1}, nil
	}

	// Score element pairs by their recursive eq-only similarity. The engine
	// only accepts float64, so errors escape through scoreErr.
	var scoreErr error
	score := func(i, j int) float64 {
		if scoreErr != nil {
			return 0
		}
		r, err := n.elemRatio(as[i], bs[j], depth+1)
		if err != nil {
			scoreErr = err
			return 0
		}
		return r
	}

	cfg := n.cfgAt(depth)
	cfg.Accept = n.alignAccept()
	codes := make([]script.Op, total)
	cost := myers.Search(len(as), len(bs), score, codes, searchParams(cfg, total))
	if scoreErr != nil {
		return nil, scoreErr
	}
	script.Canonize(codes)

	node := &Node{Ratio: float64(total-cost) / float64(total)}
	ox, oy := 0, 0
	for run := range script.Runs(codes) {
		if !run.Eq {
			node.Chunks = append(node.Chunks, NodeChunk{
				A: as[ox : ox+run.NX : ox+run.NX],
				B: bs[oy : oy+run.NY : oy+run.NY],
			})
			ox += run.NX
			oy += run.NY
			continue
		}

		// Dig into the aligned pairs and split the run into stretches of
		// identical pairs and stretches carrying per-pair detail.
		children := make([]*Node, run.NX)
		for k := range run.NX {
			child, err := n.elemNode(as[ox+k], bs[oy+k], depth+1)
			if err != nil {
				return nil, err
			}
			children[k] = child
		}
		for lo := 0; lo < run.NX; {
			hi := lo + 1
			ident := nodeIdentical(children[lo])
			for hi < run.NX && nodeIdentical(children[hi]) == ident {
				hi++
			}
			chunk := NodeChunk{
				A:  as[ox+lo : ox+hi : ox+hi],
				B:  bs[oy+lo : oy+hi : oy+hi],
				Eq: true,
			}
			if !ident {
				chunk.Nested = children[lo:hi:hi]
			}
			node.Chunks = append(node.Chunks, chunk)
			lo = hi
		}
		ox += run.NX
		oy += run.NY
	}
	return node, nil
}

// elemNode compares a pair of container elements in full. Scalar elements
// and elements of mismatched types compare atomically.
func (n *nester) elemNode(a, b any, depth int) (*Node, error) {
	v, err := resolve(a, b, n.cfg)
	if err != nil {
		var perr *ProtocolError
		if errors.As(err, &perr) {
			if reflect.DeepEqual(a, b) {
				return &Node{Ratio: 1}, nil
			}
			return &Node{Ratio: 0}, nil
		}
		return nil, err
	}
	if v.kind == kindContainer && n.cfg.MaxDepth-depth > 1 {
		return n.containerNode(a.([]any), b.([]any), v, depth)
	}
	return n.flatNode(v, depth), nil
}

func (n *nester) ratio(a, b any, depth int) (float64, error) {
	v, err := resolve(a, b, n.cfg)
	if err != nil {
		return 0, err
	}
	if v.kind == kindContainer && n.cfg.MaxDepth-depth > 1 {
		return n.containerRatio(a.([]any), b.([]any), depth)
	}
	return n.flatRatio(v, depth), nil
}

func (n *nester) flatRatio(v *view, depth int) float64 {
	total := v.n + v.m
	if total == 0 {
		return 1
	}
	cfg := n.cfgAt(depth)
	cfg.Accept = 1
	cost := myers.Search(v.n, v.m, v.score, nil, searchParams(cfg, total))
	return float64(total-cost) / float64(total)
}

func (n *nester) containerRatio(as, bs []any, depth int) (float64, error) {
	release, err := n.guard(as, bs)
	if err != nil {
		return 0, err
	}
	defer release()

	total := len(as) + len(bs)
	if total == 0 {
		return 1, nil
	}

	var scoreErr error
	score := func(i, j int) float64 {
		if scoreErr != nil {
			return 0
		}
		r, err := n.elemRatio(as[i], bs[j], depth+1)
		if err != nil {
			scoreErr = err
			return 0
		}
		return r
	}

	cfg := n.cfgAt(depth)
	cfg.Accept = n.alignAccept()
	cost := myers.Search(len(as), len(bs), score, nil, searchParams(cfg, total))
	if scoreErr != nil {
		return 0, scoreErr
	}
	return float64(total-cost) / float64(total), nil
}

// elemRatio is the eq-only similarity of a pair of container elements.
// Scalar elements and elements of mismatched types compare atomically.
func (n *nester) elemRatio(a, b any, depth int) (float64, error) {
	v, err := resolve(a, b, n.cfg)
	if err != nil {
		var perr *ProtocolError
		if errors.As(err, &perr) {
			if reflect.DeepEqual(a, b) {
				return 1, nil
			}
			return 0, nil
		}
		return 0, err
	}
	if v.kind == kindContainer && n.cfg.MaxDepth-depth > 1 {
		return n.containerRatio(a.([]any), b.([]any), depth)
	}
	return n.flatRatio(v, depth), nil
}

// nodeIdentical reports whether a node describes two identical values.
func nodeIdentical(nd *Node) bool {
	for _, c := range nd.Chunks {
		if !c.Eq || len(c.Nested) > 0 {
			return false
		}
	}
	return true
}
