// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linsolve/matrix"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestNewDenseFrom(t *testing.T) {
	t.Parallel()

	src := [][]float64{{1, 2, 3}, {4, 5, 6}}
	m, err := matrix.NewDenseFrom(src)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	CompareExact(t, src, m)

	// deep copy
	src[0][0] = 100
	require.Equal(t, 1.0, MustAt(t, m, 0, 0))

	_, err = matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewDenseFrom(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFrom([][]float64{{}})
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFrom([][]float64{{1, math.NaN()}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	nan, err := matrix.NewDenseFrom([][]float64{{1, math.NaN()}}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.True(t, math.IsNaN(MustAt(t, nan, 0, 1)))
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 2, 2)

	_, err := m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	t.Parallel()

	m := MustFrom(t, [][]float64{{1, 0}, {0, 2}})
	clone := m.Clone()
	MustSet(t, clone, 0, 0, 3.0)

	require.Equal(t, 1.0, MustAt(t, m, 0, 0))
	require.Equal(t, 3.0, MustAt(t, clone, 0, 0))
}

// TestStringOutput checks that String() formats the matrix as expected.
func TestStringOutput(t *testing.T) {
	t.Parallel()

	m := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}

func TestDenseOperate(t *testing.T) {
	t.Parallel()

	m := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	y, err := m.Operate(matrix.NewVecDenseFrom([]float64{1, 0, -1}, false))
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, vecValues(t, y))

	// caller-defined vector type
	y, err = m.Operate(&hideVec{data: []float64{1, 1, 1}})
	require.NoError(t, err)
	require.Equal(t, []float64{6, 15}, vecValues(t, y))

	_, err = m.Operate(matrix.NewVecDenseFrom([]float64{1, 2}, false))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = m.Operate(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestViewWritesThrough(t *testing.T) {
	t.Parallel()

	m := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	v, err := m.View(1, 1, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 2, v.Rows())
	require.Equal(t, 2, v.Cols())

	got, err := v.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 5.0, got)

	require.NoError(t, v.Set(1, 1, -9))
	require.Equal(t, -9.0, MustAt(t, m, 2, 2))
	require.InDelta(t, math.Sqrt(25+36+64+81), v.FrobeniusNorm(), 1e-12)

	_, err = v.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = m.View(2, 2, 2, 1)
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestInduced(t *testing.T) {
	t.Parallel()

	m := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	sub, err := m.Induced([]int{1, 1}, []int{2, 0})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{6, 4}, {6, 4}}, sub)

	_, err = m.Induced([]int{}, []int{0})
	require.ErrorIs(t, err, matrix.ErrEmptySelection)

	_, err = m.Induced([]int{0}, []int{3})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDoApply(t *testing.T) {
	t.Parallel()

	m := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	seen := 0
	m.Do(func(i, j int, v float64) bool {
		seen++
		return v < 2 // stop after the second element
	})
	require.Equal(t, 2, seen)

	require.NoError(t, m.Apply(func(_, _ int, v float64) float64 { return v * 10 }))
	CompareExact(t, [][]float64{{10, 20}, {30, 40}}, m)

	err := m.Apply(func(i, j int, v float64) float64 {
		if i == 1 && j == 0 {
			return math.NaN()
		}
		return -v
	})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	CompareExact(t, [][]float64{{10, 20}, {30, 40}}, m)
}

func TestDataAndRawDataAreCopies(t *testing.T) {
	t.Parallel()

	m := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	raw := m.RawData()
	raw[0] = 99
	rows := m.Data()
	rows[1][1] = 99
	CompareExact(t, [][]float64{{1, 2}, {3, 4}}, m)
}
