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

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fuzzdiff.io/diff"
	"fuzzdiff.io/diff/matdiff"
)

// Theme defines the color scheme for console output.
type Theme struct {
	Match   lipgloss.Style
	Delete  lipgloss.Style
	Insert  lipgloss.Style
	Changed lipgloss.Style
	Summary lipgloss.Style
	Dim     lipgloss.Style
}

var theme = Theme{
	Match:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	Delete:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	Insert:  lipgloss.NewStyle().Foreground(lipgloss.Color("83")),
	Changed: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("221")),
	Summary: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")),
	Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

func printLines(res diff.Result[string]) {
	fmt.Printf("%s %s\n", theme.Summary.Render("ratio:"), fmt.Sprintf("%.3f", res.Ratio))
	for _, c := range res.Chunks {
		if c.Eq {
			for _, l := range c.A {
				fmt.Println(theme.Match.Render("  " + l))
			}
			continue
		}
		for _, l := range c.A {
			fmt.Println(theme.Delete.Render("- " + l))
		}
		for _, l := range c.B {
			fmt.Println(theme.Insert.Render("+ " + l))
		}
	}
}

func printTable(res *matdiff.Result[string]) {
	fmt.Printf("%s rows %.3f, cells %.3f\n",
		theme.Summary.Render("aligned:"), res.Ratio(), res.AlignedRatio())

	widths := make([]int, res.A.Cols())
	for c := range widths {
		for r := 0; r < res.A.Rows(); r++ {
			widths[c] = max(widths[c], len(cellText(res, r, c)))
		}
	}

	for r := 0; r < res.A.Rows(); r++ {
		cells := make([]string, res.A.Cols())
		for c := range cells {
			text := fmt.Sprintf("%-*s", widths[c], cellText(res, r, c))
			switch {
			case res.Eq.At(r, c):
				cells[c] = theme.Match.Render(text)
			case res.A.At(r, c) == res.B.At(r, c):
				cells[c] = theme.Dim.Render(text)
			default:
				cells[c] = theme.Changed.Render(text)
			}
		}
		fmt.Println(strings.Join(cells, " | "))
	}
}

// cellText shows an aligned cell as its value and a changed cell as both
// values separated by an arrow.
func cellText(res *matdiff.Result[string], r, c int) string {
	va, vb := res.A.At(r, c), res.B.At(r, c)
	if va == vb {
		return va
	}
	return va + "→" + vb
}
