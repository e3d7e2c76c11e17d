// Package linsolve is a linear-algebra toolkit for solving A·x = b, from
// small exact systems to large symmetric operators known only through their
// action on vectors.
//
// 🚀 What is inside?
//
//	field/     — Field abstraction (Real, Rational, Prime), generic Matrix[E] and Vector[E], exact LU
//	matrix/    — dense float64 Matrix/Vector, kernels, LU, Cholesky, QR, RRQR, SVD, Eigen
//	iterative/ — LinearOperator, Conjugate Gradient, SymmLQ, preconditioners, listeners
//	cmd/krylov — demo CLI: solves a test system and plots the residual history
//
// ✨ Conventions shared by every package:
//
//   - Sentinel errors matched with errors.Is, wrapped with operation context.
//   - Functional options (With*) over documented Default* constants.
//   - Decompositions are computed once; their Solver reuses the factors.
//   - Single-threaded and synchronous; listeners run inline.
//
// Quick example:
//
//	a, _ := matrix.NewDenseFrom([][]float64{{4, 1}, {1, 3}})
//	b := matrix.NewVecDenseFrom([]float64{1, 2}, false)
//	x, _ := iterative.NewConjugateGradient().Solve(a, b)
//
//	go get github.com/katalvlaran/linsolve
package linsolve
