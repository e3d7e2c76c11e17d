// Package matrix provides dense real matrices and vectors together with the
// direct solvers built on them.
//
// The package offers:
//
//   - Dense, a row-major Matrix with safe accessors, row/column and
//     submatrix access, and visitors over rectangular regions.
//   - VecDense, a Vector with the usual entrywise and BLAS-1 style kernels.
//   - Kernels (Add, Sub, Mul, Transpose, Scale, Hadamard, MatVec, Power).
//   - Decompositions LU, Cholesky, QR, RRQR and SVD. Each is computed once at
//     construction and exposes a Solver for A·x = b, A·X = B and A⁻¹.
//   - Conversions to and from gonum's mat types.
//
// Errors are package sentinels (see errors.go) wrapped with operation
// context; match them with errors.Is. Numeric thresholds are configured with
// functional options (see options.go).
package matrix
