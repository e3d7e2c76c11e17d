// SPDX-License-Identifier: MIT
// Package matrix_test provides benchmarks for core matrix package operations,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/linsolve/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{128, 256, 512}

// sinks to defeat dead-code elimination
var (
	sinkM matrix.Matrix
	sinkV []float64
	sinkS matrix.Solver
)

func BenchmarkAdd(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n, n)
			B := mustDense(b, n, n)
			fillDenseRand(b, A, 1337)
			fillDenseRand(b, B, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Add(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkMatVec(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n, n)
			fillDenseRand(b, A, 7)
			x := onesVec(n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				y, err := matrix.MatVec(A, x)
				if err != nil {
					b.Fatal(err)
				}
				sinkV = y
			}
		})
	}
}

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{64, 128} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n, n)
			B := mustDense(b, n, n)
			fillDenseRand(b, A, 1)
			fillDenseRand(b, B, 2)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkLU(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{32, 64, 96} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n, n)
			fillDenseRand(b, A, 303)
			// shift the diagonal to eliminate zero pivots
			for i := 0; i < n; i++ {
				aii, _ := A.At(i, i)
				_ = A.Set(i, i, aii+float64(n)+1)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lu, err := matrix.NewLU(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkS = lu.Solver()
			}
		})
	}
}

func BenchmarkQR(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{32, 64, 96} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n, n)
			fillDenseRand(b, A, 404)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				qr, err := matrix.NewQR(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = qr.R()
			}
		})
	}
}

func BenchmarkSVD(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{16, 32, 64} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n, n)
			fillDenseRand(b, A, 606)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				d, err := matrix.NewSVD(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = d.S()
			}
		})
	}
}

func BenchmarkInverse(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{16, 32, 64} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			M := mustDense(b, n, n)
			fillDenseRand(b, M, 505)
			Mt, _ := matrix.Transpose(M)
			PD, _ := matrix.Mul(Mt, M)
			for i := 0; i < n; i++ {
				aii, _ := PD.At(i, i)
				_ = PD.Set(i, i, aii+float64(n)+2)
			}
			c, err := matrix.NewCholesky(PD, matrix.WithSymmetryThreshold(1e-12))
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				inv, err := c.Solver().Inverse()
				if err != nil {
					b.Fatal(err)
				}
				sinkM = inv
			}
		})
	}
}
