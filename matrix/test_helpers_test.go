// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Small, deterministic fixtures and comparison utilities for kernels and
//     decompositions.
//   • hide{} and hideVec{} mask concrete types to exercise interface paths.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linsolve/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions, so
// code under test takes its generic At/Set path instead of the *Dense one.
type hide struct{ matrix.Matrix }

// hideVec is a caller-defined Vector: solvers must accept it like a VecDense.
type hideVec struct{ data []float64 }

func (v *hideVec) Len() int { return len(v.data) }

func (v *hideVec) AtVec(i int) (float64, error) {
	if i < 0 || i >= len(v.data) {
		return 0, matrix.ErrOutOfRange
	}

	return v.data[i], nil
}

func (v *hideVec) SetVec(i int, x float64) error {
	if i < 0 || i >= len(v.data) {
		return matrix.ErrOutOfRange
	}
	v.data[i] = x

	return nil
}

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// MustFrom builds a *Dense from literal rows or fails the test.
func MustFrom(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// MustMul returns a·b or fails the test.
func MustMul(t *testing.T, a, b matrix.Matrix) matrix.Matrix {
	t.Helper()
	p, err := matrix.Mul(a, b)
	require.NoError(t, err)

	return p
}

// MustT returns mᵀ or fails the test.
func MustT(t *testing.T, m matrix.Matrix) matrix.Matrix {
	t.Helper()
	mt, err := matrix.Transpose(m)
	require.NoError(t, err)

	return mt
}

// RandFilledDense returns an r×c matrix with entries in [-1,1).
func RandFilledDense(t *testing.T, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	m := MustDense(t, r, c)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			MustSet(t, m, i, j, rng.Float64()*2-1)
		}
	}

	return m
}

// MustSet writes m[i,j] or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d,%v)", i, j, v)
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// CompareExact asserts m equals want bit for bit.
func CompareExact(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols of row %d", i)
		for j := range want[i] {
			require.Equal(t, want[i][j], MustAt(t, m, i, j), "m[%d,%d]", i, j)
		}
	}
}

// CompareAbs asserts max |m - want| <= atol.
func CompareAbs(t *testing.T, want [][]float64, m matrix.Matrix, atol float64) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols of row %d", i)
		for j := range want[i] {
			require.InDelta(t, want[i][j], MustAt(t, m, i, j), atol, "m[%d,%d]", i, j)
		}
	}
}

// CompareClose asserts AllClose(a, b, rtol, atol).
func CompareClose(t *testing.T, a, b matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, rtol, atol)
	require.NoError(t, err)
	require.True(t, ok, "AllClose=false (rtol=%g, atol=%g)\n%v\nvs\n%v", rtol, atol, a, b)
}

// maxAbsDiff returns max |a_ij - b_ij| for same-shaped matrices.
func maxAbsDiff(t *testing.T, a, b matrix.Matrix) float64 {
	t.Helper()
	diff, err := matrix.Sub(a, b)
	require.NoError(t, err)
	worst := 0.0
	for i := 0; i < diff.Rows(); i++ {
		for j := 0; j < diff.Cols(); j++ {
			worst = math.Max(worst, math.Abs(MustAt(t, diff, i, j)))
		}
	}

	return worst
}

// RequireOrthogonal asserts QᵀQ = I within atol.
func RequireOrthogonal(t *testing.T, q matrix.Matrix, atol float64) {
	t.Helper()
	id, err := matrix.NewIdentity(q.Cols())
	require.NoError(t, err)
	require.LessOrEqual(t, maxAbsDiff(t, MustMul(t, MustT(t, q), q), id), atol)
}

// vecValues reads every entry of v.
func vecValues(t *testing.T, v matrix.Vector) []float64 {
	t.Helper()
	out, err := matrix.ToSlice(v)
	require.NoError(t, err)

	return out
}

// mustDense allocates a zero matrix for benchmarks.
func mustDense(b *testing.B, r, c int) *matrix.Dense {
	d, err := matrix.NewZeros(r, c)
	if err != nil {
		b.Fatalf("NewZeros(%d,%d): %v", r, c, err)
	}

	return d
}

// fillDenseRand fills d with entries in [-1,1) for benchmarks.
func fillDenseRand(b *testing.B, d *matrix.Dense, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	rows, cols := d.Rows(), d.Cols()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			_ = d.Set(i, j, rng.Float64()*2-1)
		}
	}
}

func onesVec(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}

	return v
}
