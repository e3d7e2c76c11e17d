// SPDX-License-Identifier: MIT

// Package iterative provides Krylov-subspace solvers for large symmetric
// systems A·x = b where A is known only through a LinearOperator.
//
// Solvers:
//
//	ConjugateGradient  A symmetric positive definite; residual vector in events
//	SymmLQ             A symmetric, possibly indefinite, optional shift
//
// Both accept a symmetric positive definite preconditioner M ≈ A⁻¹ (for
// example NewJacobi) and report progress through an IterationManager that
// fires Events to registered Listeners. A solve fails with
// ErrMaxCountExceeded once the iteration budget (WithMaxIterations) is
// spent.
//
// Quick start:
//
//	cg := iterative.NewConjugateGradient(iterative.WithDelta(1e-8))
//	x, err := cg.Solve(a, b)
//
// Solvers hold per-solve state and are not safe for concurrent use.
package iterative
