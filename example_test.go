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

package diff_test

import (
	"fmt"
	"strings"

	"fuzzdiff.io/diff"
)

func ExampleCompare() {
	a := []string{"apples", "bananas", "carrots", "dill"}
	b := []string{"apples", "carrots", "dill", "eggplant"}
	res := diff.Compare(a, b)
	fmt.Printf("ratio: %.2f\n", res.Ratio)
	for _, c := range res.Chunks {
		if c.Eq {
			fmt.Printf("  %v\n", c.A)
			continue
		}
		for _, v := range c.A {
			fmt.Printf("- %v\n", v)
		}
		for _, v := range c.B {
			fmt.Printf("+ %v\n", v)
		}
	}
	// Output:
	// ratio: 0.75
	//   [apples]
	// - bananas
	//   [carrots dill]
	// + eggplant
}

func ExampleStrings() {
	res := diff.Strings("kitten", "sitting")
	var out strings.Builder
	for _, c := range res.Chunks {
		if c.Eq {
			out.WriteString(string(c.A))
		} else {
			fmt.Fprintf(&out, "[%s|%s]", string(c.A), string(c.B))
		}
	}
	fmt.Printf("ratio: %.2f\n", res.Ratio)
	fmt.Println(out.String())
	// Output:
	// ratio: 0.62
	// [k|s]itt[e|i]n[|g]
}
