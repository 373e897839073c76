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

// alignview is a development tool to eyeball fuzzy alignments.
//
// It has two modes: "lines" prints a line-level diff of two text files and
// "table" prints the cell-level alignment of two CSV files, both with the
// alignment ratios that the library reports for them.
package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fuzzdiff.io/diff"
	"fuzzdiff.io/diff/matdiff"
)

var (
	minRatio float64
	maxCost  int
	fill     string
)

func main() {
	root := &cobra.Command{
		Use:           "alignview",
		Short:         "Inspect fuzzy alignments of line and table data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Float64Var(&minRatio, "min-ratio", 0, "give up early when the ratio cannot reach this value")
	root.PersistentFlags().IntVar(&maxCost, "max-cost", 0, "edit cost budget, 0 means unbounded")

	lines := &cobra.Command{
		Use:   "lines FILE_A FILE_B",
		Short: "Line-level diff of two text files",
		Args:  cobra.ExactArgs(2),
		RunE:  runLines,
	}

	table := &cobra.Command{
		Use:   "table FILE_A FILE_B",
		Short: "Aligned cell-level diff of two CSV files",
		Args:  cobra.ExactArgs(2),
		RunE:  runTable,
	}
	table.Flags().StringVar(&fill, "fill", "·", "cell value used to pad inserted rows and columns")

	root.AddCommand(lines, table)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "alignview: %v\n", err)
		os.Exit(1)
	}
}

func opts() []diff.Option {
	var o []diff.Option
	if minRatio > 0 {
		o = append(o, diff.MinRatio(minRatio))
	}
	if maxCost > 0 {
		o = append(o, diff.MaxCost(maxCost))
	}
	return o
}

func runLines(cmd *cobra.Command, args []string) error {
	a, err := readLines(args[0])
	if err != nil {
		return err
	}
	b, err := readLines(args[1])
	if err != nil {
		return err
	}
	printLines(diff.Compare(a, b, opts()...))
	return nil
}

func runTable(cmd *cobra.Command, args []string) error {
	a, err := readCSV(args[0])
	if err != nil {
		return err
	}
	b, err := readCSV(args[1])
	if err != nil {
		return err
	}
	res, err := matdiff.Aligned(a, b, fill, opts()...)
	if err != nil {
		return err
	}
	printTable(res)
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(nil, 16<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %v", path, err)
	}
	return lines, nil
}

// readCSV reads a CSV file into a matrix, padding short records with the
// fill value so that ragged files remain inspectable.
func readCSV(path string) (*matdiff.Matrix[string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %v", path, err)
	}

	cols := 0
	for _, rec := range records {
		cols = max(cols, len(rec))
	}
	for i, rec := range records {
		for len(rec) < cols {
			rec = append(rec, fill)
		}
		records[i] = rec
	}
	return matdiff.FromRows(records)
}
