// SPDX-License-Identifier: MIT

package iterative

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/linsolve/matrix"
)

const opCG = "ConjugateGradient"

// ConjugateGradient solves A·x = b for a symmetric positive definite A,
// optionally preconditioned by a symmetric positive definite M ≈ A⁻¹.
//
// The iteration stops when ‖b - A·x‖ <= delta·‖b‖. Events carry the
// residual vector itself. Positive definiteness is not checked upfront.
// Detecting a non-positive r·M·r or p·A·p requires WithCheck, which makes
// the solve fail with ErrNonPositiveDefiniteOperator (or
// ErrNonPositiveDefinitePreconditioner). Under the default DefaultCheck
// (false) an indefinite operator is not reported: the iteration runs on
// and typically ends in ErrMaxCountExceeded or a NaN iterate.
//
// A ConjugateGradient is not safe for concurrent solves: its
// IterationManager is shared.
type ConjugateGradient struct {
	opts    Options
	manager *IterationManager
}

// NewConjugateGradient returns a solver configured by opts
// (WithMaxIterations, WithDelta, WithCheck, WithListener).
func NewConjugateGradient(opts ...Option) *ConjugateGradient {
	o := gatherOptions(opts...)
	cg := &ConjugateGradient{opts: o, manager: NewIterationManager(o.maxIterations)}
	for _, l := range o.listeners {
		cg.manager.AddListener(l)
	}

	return cg
}

// Manager returns the solver's iteration manager.
func (cg *ConjugateGradient) Manager() *IterationManager { return cg.manager }

// Solve solves A·x = b from the zero vector.
func (cg *ConjugateGradient) Solve(a LinearOperator, b matrix.Vector) (*matrix.VecDense, error) {
	return solveCopy(opCG, cg.iterate, a, nil, b, nil)
}

// SolveWithGuess solves A·x = b starting from x0, which is not modified.
func (cg *ConjugateGradient) SolveWithGuess(a LinearOperator, b, x0 matrix.Vector) (*matrix.VecDense, error) {
	return solveCopy(opCG, cg.iterate, a, nil, b, x0)
}

// SolvePreconditioned solves A·x = b with preconditioner m (nil for none)
// starting from x0 (nil for zero), which is not modified.
func (cg *ConjugateGradient) SolvePreconditioned(a, m LinearOperator, b, x0 matrix.Vector) (*matrix.VecDense, error) {
	return solveCopy(opCG, cg.iterate, a, m, b, x0)
}

// SolveInPlace is SolvePreconditioned writing the solution into x0, which
// is returned. On failure x0 holds the last iterate.
func (cg *ConjugateGradient) SolveInPlace(a, m LinearOperator, b, x0 matrix.Vector) (matrix.Vector, error) {
	return solveInPlace(opCG, cg.iterate, a, m, b, x0)
}

// iterate is the preconditioned CG loop:
//
//	z = M·r, ρ = r·z, p = z + (ρ/ρ')·p, q = A·p, α = ρ/(p·q)
//	x += α·p, r -= α·q
func (cg *ConjugateGradient) iterate(a, m LinearOperator, b, x []float64) error {
	mgr := cg.manager
	mgr.ResetIterationCount()
	n := len(b)

	ax, err := apply(a, x)
	if err != nil {
		return err
	}
	r := make([]float64, n)
	floats.SubTo(r, b, ax)
	rmax := cg.opts.delta * floats.Norm(b, 2)
	rnorm := floats.Norm(r, 2)

	xv, bv, rv := readOnly(x), readOnly(b), readOnly(r)
	event := func() Event {
		return Event{Iterations: mgr.Iterations(), X: xv, B: bv, R: rv, NormOfResidual: rnorm}
	}
	log.Debugf("CG: n=%d, ‖r0‖=%g, target %g", n, rnorm, rmax)

	mgr.FireInitializationPerformed(event())
	if rnorm <= rmax {
		mgr.FireTerminationPerformed(event())
		return nil
	}

	p := make([]float64, n)
	var z, q []float64
	var rho, rhoPrev, pq, alpha float64
	for {
		if err = mgr.IncrementIterationCount(); err != nil {
			log.Warnf("CG: no convergence after %d iterations, ‖r‖=%g", mgr.Iterations(), rnorm)
			return err
		}
		mgr.FireIterationStarted(event())

		z = r
		if m != nil {
			if z, err = apply(m, r); err != nil {
				return err
			}
		}
		rho = floats.Dot(r, z)
		if cg.opts.check && m != nil && rho <= 0 {
			return fmt.Errorf("iteration %d: r·M·r = %g: %w", mgr.Iterations(), rho, ErrNonPositiveDefinitePreconditioner)
		}
		if mgr.Iterations() == 1 {
			copy(p, z)
		} else {
			floats.AddScaledTo(p, z, rho/rhoPrev, p)
		}

		if q, err = apply(a, p); err != nil {
			return err
		}
		pq = floats.Dot(p, q)
		if cg.opts.check && pq <= 0 {
			return fmt.Errorf("iteration %d: p·A·p = %g: %w", mgr.Iterations(), pq, ErrNonPositiveDefiniteOperator)
		}
		alpha = rho / pq
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q)
		rhoPrev = rho
		rnorm = floats.Norm(r, 2)

		mgr.FireIterationPerformed(event())
		if rnorm <= rmax {
			log.Debugf("CG: converged in %d iterations, ‖r‖=%g", mgr.Iterations(), rnorm)
			mgr.FireTerminationPerformed(event())
			return nil
		}
	}
}
