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

import "fmt"

// Matrix is a dense row-major matrix. The zero value is an empty matrix;
// use [New] or [FromRows] to construct one with a shape.
type Matrix[T comparable] struct {
	rows, cols int
	data       []T
}

// New returns a rows x cols matrix of zero values.
func New[T comparable](rows, cols int) *Matrix[T] {
	if rows < 0 || cols < 0 {
		panic("matdiff: negative matrix dimension")
	}
	return &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// full returns a rows x cols matrix with every cell set to fill.
func full[T comparable](rows, cols int, fill T) *Matrix[T] {
	m := New[T](rows, cols)
	for i := range m.data {
		m.data[i] = fill
	}
	return m
}

// FromRows builds a matrix from a slice of rows. All rows must have the same
// length, otherwise FromRows fails with a [ShapeError]. The row data is
// copied.
func FromRows[T comparable](rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 {
		return &Matrix[T]{}, nil
	}
	cols := len(rows[0])
	m := New[T](len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil, &ShapeError{Reason: fmt.Sprintf("row %d has %d columns, row 0 has %d", r, len(row), cols)}
		}
		copy(m.Row(r), row)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.cols }

// At returns the element at row r, column c.
func (m *Matrix[T]) At(r, c int) T {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("matdiff: index (%d, %d) out of range for %dx%d matrix", r, c, m.rows, m.cols))
	}
	return m.data[r*m.cols+c]
}

// Set stores v at row r, column c.
func (m *Matrix[T]) Set(r, c int, v T) {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("matdiff: index (%d, %d) out of range for %dx%d matrix", r, c, m.rows, m.cols))
	}
	m.data[r*m.cols+c] = v
}

// Row returns row r as a slice sharing the matrix storage.
func (m *Matrix[T]) Row(r int) []T {
	if r < 0 || r >= m.rows {
		panic(fmt.Sprintf("matdiff: row %d out of range for %dx%d matrix", r, m.rows, m.cols))
	}
	lo := r * m.cols
	return m.data[lo : lo+m.cols : lo+m.cols]
}

// ToRows returns a copy of the matrix as a slice of rows.
func (m *Matrix[T]) ToRows() [][]T {
	out := make([][]T, m.rows)
	for r := range out {
		row := make([]T, m.cols)
		copy(row, m.Row(r))
		out[r] = row
	}
	return out
}
