// SPDX-License-Identifier: MIT

package field_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linsolve/field"
	"github.com/katalvlaran/linsolve/matrix"
)

// reals builds a Real matrix from float rows.
func reals(t *testing.T, rows [][]float64) *field.Matrix[field.Real] {
	t.Helper()
	grid := make([][]field.Real, len(rows))
	for i, row := range rows {
		for _, v := range row {
			grid[i] = append(grid[i], field.Real(v))
		}
	}
	m, err := field.NewMatrixFrom[field.Real](field.RealField{}, grid)
	require.NoError(t, err)

	return m
}

func subjectMatrix(t *testing.T) *field.Matrix[field.Real] {
	t.Helper()

	return reals(t, [][]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
	})
}

func TestRowsAndColumns(t *testing.T) {
	t.Parallel()

	m := subjectMatrix(t)
	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []field.Real{5, 6, 7, 8}, row)
	row[0] = 99
	v, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, field.Real(5), v, "Row must return a copy")

	col, err := m.Column(3)
	require.NoError(t, err)
	require.Equal(t, []field.Real{4, 8, 12}, col)

	require.NoError(t, m.SetRow(0, []field.Real{0, 0, 0, 0}))
	require.NoError(t, m.SetColumn(0, []field.Real{-1, -2, -3}))
	require.True(t, m.Equal(reals(t, [][]float64{
		{-1, 0, 0, 0},
		{-2, 6, 7, 8},
		{-3, 10, 11, 12},
	})))

	_, err = m.Row(3)
	require.ErrorIs(t, err, field.ErrOutOfRange)
	_, err = m.Column(-1)
	require.ErrorIs(t, err, field.ErrOutOfRange)
	require.ErrorIs(t, m.SetRow(0, []field.Real{1}), field.ErrDimensionMismatch)
	require.ErrorIs(t, m.SetColumn(4, []field.Real{1, 2, 3}), field.ErrOutOfRange)
	require.ErrorIs(t, m.SetColumn(1, []field.Real{1, 2}), field.ErrDimensionMismatch)

	rv, err := m.RowVector(2)
	require.NoError(t, err)
	require.Equal(t, "[-3, 10, 11, 12]", rv.String())
	cv, err := m.ColumnVector(1)
	require.NoError(t, err)
	require.NoError(t, m.SetColumnVector(2, cv))
	require.NoError(t, m.SetRowVector(1, rv))
	got, err := m.Column(2)
	require.NoError(t, err)
	require.Equal(t, []field.Real{0, 11, 10}, got)
	require.ErrorIs(t, m.SetRowVector(0, nil), field.ErrNilMatrix)
	require.ErrorIs(t, m.SetColumnVector(0, nil), field.ErrNilMatrix)
}

func TestSubMatrix(t *testing.T) {
	t.Parallel()

	m := subjectMatrix(t)
	sub, err := m.SubMatrix(0, 1, 2, 3)
	require.NoError(t, err)
	require.True(t, sub.Equal(reals(t, [][]float64{{3, 4}, {7, 8}})))

	single, err := m.SubMatrix(2, 2, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, single.Rows())
	require.Equal(t, 1, single.Cols())

	cases := []struct {
		name           string
		r0, r1, c0, c1 int
		want           error
	}{
		{"row past end", 0, 3, 0, 0, field.ErrOutOfRange},
		{"negative col", 0, 0, -1, 0, field.ErrOutOfRange},
		{"inverted rows", 2, 1, 0, 0, field.ErrRangeInverted},
		{"inverted cols", 0, 0, 3, 2, field.ErrRangeInverted},
		// index checks win over the inversion check
		{"inverted and outside", 2, 5, 0, 0, field.ErrOutOfRange},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := m.SubMatrix(tc.r0, tc.r1, tc.c0, tc.c1)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSubMatrixIndices(t *testing.T) {
	t.Parallel()

	m := subjectMatrix(t)
	sub, err := m.SubMatrixIndices([]int{2, 0, 2}, []int{3, 1})
	require.NoError(t, err)
	require.True(t, sub.Equal(reals(t, [][]float64{{12, 10}, {4, 2}, {12, 10}})))

	_, err = m.SubMatrixIndices(nil, []int{0})
	require.ErrorIs(t, err, field.ErrEmptySelection)
	_, err = m.SubMatrixIndices([]int{0}, []int{})
	require.ErrorIs(t, err, field.ErrEmptySelection)
	_, err = m.SubMatrixIndices([]int{3}, []int{0})
	require.ErrorIs(t, err, field.ErrOutOfRange)
	_, err = m.SubMatrixIndices([]int{0}, []int{4})
	require.ErrorIs(t, err, field.ErrOutOfRange)
}

func TestSetSubMatrix(t *testing.T) {
	t.Parallel()

	m := subjectMatrix(t)
	require.NoError(t, m.SetSubMatrix([][]field.Real{{0, 0}, {0, 0}}, 1, 2))
	require.True(t, m.Equal(reals(t, [][]float64{
		{1, 2, 3, 4},
		{5, 6, 0, 0},
		{9, 10, 0, 0},
	})))

	before := m.Clone()
	require.ErrorIs(t, m.SetSubMatrix([][]field.Real{{1, 1, 1}}, 0, 2), field.ErrOutOfRange)
	require.ErrorIs(t, m.SetSubMatrix([][]field.Real{{1}}, -1, 0), field.ErrOutOfRange)
	require.ErrorIs(t, m.SetSubMatrix(nil, 0, 0), field.ErrBadShape)
	require.ErrorIs(t, m.SetSubMatrix([][]field.Real{{1, 2}, {3}}, 0, 0), field.ErrBadShape)
	require.True(t, m.Equal(before), "failed writes must leave the matrix unchanged")
}

func TestSetSubMatrixEmpty(t *testing.T) {
	t.Parallel()

	f := field.RationalField{}
	m, err := field.NewEmptyMatrix[field.Rational](f)
	require.NoError(t, err)
	require.Zero(t, m.Rows())

	// away from the origin, or a bad block: still empty
	require.ErrorIs(t, m.SetSubMatrix([][]field.Rational{{rat(1, 1)}}, 1, 0), field.ErrIllegalState)
	require.ErrorIs(t, m.SetSubMatrix([][]field.Rational{{rat(1, 1)}, {}}, 0, 0), field.ErrBadShape)
	require.Zero(t, m.Rows())
	require.Zero(t, m.Cols())

	require.NoError(t, m.SetSubMatrix([][]field.Rational{{rat(1, 2), rat(1, 3)}, {rat(1, 4), rat(1, 5)}}, 0, 0))
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 2, m.Cols())
	require.Equal(t, "[1/2, 1/3]\n[1/4, 1/5]\n", m.String())

	// once shaped, the usual bounds apply
	require.ErrorIs(t, m.SetSubMatrix([][]field.Rational{{rat(1, 1), rat(1, 1)}}, 1, 1), field.ErrOutOfRange)
	require.NoError(t, m.SetSubMatrix([][]field.Rational{{rat(7, 1)}}, 1, 1))
	v, err := m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, "7", v.String())

	var zero field.Matrix[field.Rational]
	require.ErrorIs(t, zero.SetSubMatrix([][]field.Rational{{rat(1, 1)}}, 0, 0), field.ErrNilField)
	_, err = field.NewEmptyMatrix[field.Rational](nil)
	require.ErrorIs(t, err, field.ErrNilField)
}

func TestWalkAndVisit(t *testing.T) {
	t.Parallel()

	m := subjectMatrix(t)
	var seen [][2]int
	n, err := m.Visit(matrix.ColumnOrder, 0, 1, 1, 2, func(i, j int, _ field.Real) {
		seen = append(seen, [2]int{i, j})
	})
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, [][2]int{{0, 1}, {1, 1}, {0, 2}, {1, 2}}, seen)

	seen = seen[:0]
	n, err = m.Visit(matrix.RowOrder, 0, 1, 1, 2, func(i, j int, _ field.Real) {
		seen = append(seen, [2]int{i, j})
	})
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 1}, {1, 2}}, seen)

	var sum field.Real
	n, err = m.Visit(matrix.OptimizedOrder, 0, 2, 0, 3, func(_, _ int, v field.Real) { sum = sum.Add(v) })
	require.NoError(t, err)
	require.Equal(t, 12, n)
	require.Equal(t, field.Real(78), sum)

	n, err = m.Walk(matrix.RowOrder, 1, 2, 2, 3, func(_, _ int, v field.Real) field.Real { return v.Neg() })
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.True(t, m.Equal(reals(t, [][]float64{
		{1, 2, 3, 4},
		{5, 6, -7, -8},
		{9, 10, -11, -12},
	})))

	_, err = m.Walk(matrix.RowOrder, 0, 3, 0, 0, func(_, _ int, v field.Real) field.Real { return v })
	require.ErrorIs(t, err, field.ErrOutOfRange)
	_, err = m.Visit(matrix.ColumnOrder, 1, 0, 0, 0, func(int, int, field.Real) {})
	require.ErrorIs(t, err, field.ErrRangeInverted)
}
