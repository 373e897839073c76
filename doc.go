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

// Package diff computes fuzzy diffs between sequences.
//
// The package generalizes Myers' diff algorithm from exact element equality
// to a continuous similarity score: two elements align when their score
// reaches the accept threshold (see [Accept]), and the overall similarity of
// two sequences is reported as a ratio between 0 (nothing aligns) and 1
// (everything aligns). Cost and call budgets ([MinRatio], [MaxCost],
// [MaxCalls]) bound the work spent on dissimilar inputs; an exhausted budget
// degrades the result to a coarser diff instead of failing.
//
// [Compare] and [CompareFunc] produce chunked diffs of typed slices, [Ratio]
// and [RatioFunc] compute the similarity ratio alone, which is cheaper.
// [Nested] compares dynamically-typed values, digging into nested containers
// and aligning their elements by recursive similarity.
//
// Aligned two-dimensional comparison of matrices lives in the matdiff
// subpackage.
package diff
