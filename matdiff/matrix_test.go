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
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	m := New[int](2, 3)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())

	m.Set(1, 2, 42)
	assert.Equal(t, 42, m.At(1, 2))
	assert.Equal(t, 0, m.At(0, 0))

	// Row shares storage.
	m.Row(0)[1] = 7
	assert.Equal(t, 7, m.At(0, 1))

	// ToRows copies.
	rows := m.ToRows()
	rows[0][0] = 99
	assert.Equal(t, 0, m.At(0, 0))
	assert.Equal(t, [][]int{{0, 7, 0}, {0, 0, 42}}, m.ToRows())
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]string{{"a", "b"}, {"c", "d"}})
	require.NoError(t, err)
	assert.Equal(t, "c", m.At(1, 0))

	empty, err := FromRows[int](nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Rows())

	_, err = FromRows([][]int{{1, 2}, {3}})
	var serr *ShapeError
	require.ErrorAs(t, err, &serr)
}

func TestMatrixPanics(t *testing.T) {
	assert.Panics(t, func() { New[int](-1, 2) })
	m := New[int](1, 1)
	assert.Panics(t, func() { m.At(1, 0) })
	assert.Panics(t, func() { m.Set(0, 1, 0) })
	assert.Panics(t, func() { m.Row(-1) })
}
