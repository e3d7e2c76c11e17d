// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linsolve/matrix"
)

func TestQRFactors(t *testing.T) {
	t.Parallel()

	for name, a := range map[string]*matrix.Dense{
		"square": MustFrom(t, [][]float64{{12, -51, 4}, {6, 167, -68}, {-4, 24, -41}}),
		"tall":   RandFilledDense(t, 5, 3, 7),
		"wide":   RandFilledDense(t, 3, 5, 8),
	} {
		a := a
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			qr, err := matrix.NewQR(a)
			require.NoError(t, err)

			q, r := qr.Q(), qr.R()
			require.Equal(t, a.Rows(), q.Rows())
			require.Equal(t, a.Rows(), q.Cols())
			require.Equal(t, a.Rows(), r.Rows())
			require.Equal(t, a.Cols(), r.Cols())

			require.LessOrEqual(t, maxAbsDiff(t, MustMul(t, q, r), a), 1e-12*matrix.FrobeniusNorm(a))
			RequireOrthogonal(t, q, 1e-14)
			require.True(t, matrix.Equal(qr.QT(), MustT(t, q)))
			for i := 0; i < r.Rows(); i++ {
				for j := 0; j < i && j < r.Cols(); j++ {
					require.Zero(t, MustAt(t, r, i, j), "R[%d,%d]", i, j)
				}
			}
			require.Equal(t, a.Rows(), qr.H().Rows())
			require.Equal(t, a.Cols(), qr.H().Cols())
			require.Same(t, q, qr.Q())
		})
	}
}

func TestQRSolveSquare(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, [][]float64{{12, -51, 4}, {6, 167, -68}, {-4, 24, -41}})
	qr, err := matrix.NewQR(a)
	require.NoError(t, err)
	s := qr.Solver()
	require.True(t, s.IsNonSingular())

	b, err := matrix.MatVec(a, []float64{1, 2, 3})
	require.NoError(t, err)
	x, err := s.Solve(&hideVec{data: b})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{1, 2, 3}, x.RawData(), 1e-12)

	inv, err := s.Inverse()
	require.NoError(t, err)
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	require.LessOrEqual(t, maxAbsDiff(t, MustMul(t, a, inv), id), 1e-13)
}

// TestQRLeastSquares fits the exact line 1 + 2t through four points.
func TestQRLeastSquares(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, [][]float64{{1, 0}, {1, 1}, {1, 2}, {1, 3}})
	qr, err := matrix.NewQR(a)
	require.NoError(t, err)
	x, err := qr.Solver().Solve(matrix.NewVecDenseFrom([]float64{1, 3, 5, 7}, false))
	require.NoError(t, err)
	require.Equal(t, 2, x.Len())
	require.InDeltaSlice(t, []float64{1, 2}, x.RawData(), 1e-13)

	// noisy data: the residual is orthogonal to the columns of A
	b := []float64{1.1, 2.9, 5.2, 6.8}
	x, err = qr.Solver().Solve(matrix.NewVecDenseFrom(b, false))
	require.NoError(t, err)
	fit, err := matrix.MatVec(a, x.RawData())
	require.NoError(t, err)
	res := matrix.NewVecDenseFrom(b, true)
	res, err = res.Sub(matrix.NewVecDenseFrom(fit, false))
	require.NoError(t, err)
	for j := 0; j < 2; j++ {
		col, err := a.ColumnVector(j)
		require.NoError(t, err)
		dot, err := col.Dot(res)
		require.NoError(t, err)
		require.InDelta(t, 0, dot, 1e-12)
	}

	_, err = qr.Solver().Solve(matrix.NewVecDenseFrom([]float64{1, 2}, false))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestQRSingularThreshold(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, [][]float64{{1, 2}, {2, 4}})
	qr, err := matrix.NewQR(a, matrix.WithQRThreshold(1e-10))
	require.NoError(t, err)
	require.False(t, qr.Solver().IsNonSingular())
	_, err = qr.Solver().Solve(matrix.NewVecDenseFrom([]float64{1, 2}, false))
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = matrix.NewQR(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
