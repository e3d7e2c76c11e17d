// SPDX-License-Identifier: MIT

package iterative

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/linsolve/matrix"
)

const opSymmLQ = "SymmLQ"

const machEps = 0x1p-52

// cbrtEps is the tolerance of the self-adjointness check.
var cbrtEps = math.Cbrt(machEps)

// SymmLQ solves (A - shift·I)·x = b for a symmetric, possibly indefinite A,
// using the method of Paige and Saunders. A preconditioner M must be
// symmetric positive definite.
//
// The residual vector is never formed: events carry the estimated norm of
// r = b - (A - shift·I)·x (in the M-norm when preconditioned) and a nil R.
// The initial guess only fixes the dimension; SymmLQ always starts from
// zero.
type SymmLQ struct {
	opts    Options
	manager *IterationManager
}

// NewSymmLQ returns a solver configured by opts (WithMaxIterations,
// WithDelta, WithCheck, WithShift, WithGoodB, WithListener).
func NewSymmLQ(opts ...Option) *SymmLQ {
	o := gatherOptions(opts...)
	s := &SymmLQ{opts: o, manager: NewIterationManager(o.maxIterations)}
	for _, l := range o.listeners {
		s.manager.AddListener(l)
	}

	return s
}

// Manager returns the solver's iteration manager.
func (s *SymmLQ) Manager() *IterationManager { return s.manager }

// Solve solves (A - shift·I)·x = b.
func (s *SymmLQ) Solve(a LinearOperator, b matrix.Vector) (*matrix.VecDense, error) {
	return solveCopy(opSymmLQ, s.iterate, a, nil, b, nil)
}

// SolveWithGuess validates x0 against A and then solves like Solve.
func (s *SymmLQ) SolveWithGuess(a LinearOperator, b, x0 matrix.Vector) (*matrix.VecDense, error) {
	return solveCopy(opSymmLQ, s.iterate, a, nil, b, x0)
}

// SolvePreconditioned solves with preconditioner m (nil for none).
func (s *SymmLQ) SolvePreconditioned(a, m LinearOperator, b, x0 matrix.Vector) (*matrix.VecDense, error) {
	return solveCopy(opSymmLQ, s.iterate, a, m, b, x0)
}

// SolveInPlace is SolvePreconditioned writing the solution into x0, which
// is returned.
func (s *SymmLQ) SolveInPlace(a, m LinearOperator, b, x0 matrix.Vector) (matrix.Vector, error) {
	return solveInPlace(opSymmLQ, s.iterate, a, m, b, x0)
}

// checkSelfAdjoint compares y·y with x·z for y = op·x, z = op·y.
func checkSelfAdjoint(op LinearOperator, x, y []float64, fail error) error {
	z, err := apply(op, y)
	if err != nil {
		return err
	}
	s, t := floats.Dot(y, y), floats.Dot(x, z)
	if math.Abs(s-t) > (s+machEps)*cbrtEps {
		return fmt.Errorf("y·y = %g, x·(A·y) = %g: %w", s, t, fail)
	}

	return nil
}

// lanczos carries the scalar state of one SymmLQ solve.
type lanczos struct {
	beta1        float64 // M-norm of b
	oldb, beta   float64
	gbar, dbar   float64
	gammaZeta    float64
	minusEpsZeta float64
	bstep        float64
	snprod       float64
	tnorm        float64 // squared Frobenius norm estimate of T
	ynorm2       float64
	gmax, gmin   float64
	lqnorm       float64
	cgnorm       float64
	rnorm        float64
	converged    bool
}

// updateNorms refreshes the residual estimates and the stopping test.
func (st *lanczos) updateNorms(delta float64) error {
	anorm := math.Sqrt(st.tnorm)
	ynorm := math.Sqrt(st.ynorm2)
	epsa := anorm * machEps
	epsx := anorm * ynorm * machEps
	epsr := anorm * ynorm * delta
	diag := st.gbar
	if diag == 0 {
		diag = epsa
	}
	st.lqnorm = math.Hypot(st.gammaZeta, st.minusEpsZeta)
	st.cgnorm = st.snprod * st.beta1 * st.beta / math.Abs(diag)

	var acond float64
	if st.lqnorm <= st.cgnorm {
		acond = st.gmax / st.gmin
	} else {
		acond = st.gmax / math.Min(st.gmin, math.Abs(diag))
	}
	if acond*machEps >= 0.1 {
		return fmt.Errorf("condition estimate %g: %w", acond, ErrIllConditionedOperator)
	}
	if st.beta1 <= epsx {
		return fmt.Errorf("‖b‖ = %g <= %g: %w", st.beta1, epsx, ErrSingularOperator)
	}
	st.rnorm = math.Min(st.cgnorm, st.lqnorm)
	st.converged = st.cgnorm <= epsx || st.cgnorm <= epsr

	return nil
}

// refine writes into x the better of the LQ and CG points from xL.
func (st *lanczos) refine(x, xL, wbar, mb []float64, goodb bool) {
	if st.lqnorm < st.cgnorm {
		copy(x, xL)
		if goodb {
			floats.AddScaled(x, st.bstep/st.beta1, mb)
		}

		return
	}
	diag := st.gbar
	if diag == 0 {
		diag = math.Sqrt(st.tnorm) * machEps
	}
	zbar := st.gammaZeta / diag
	floats.AddScaledTo(x, xL, zbar, wbar)
	if goodb {
		floats.AddScaled(x, (st.bstep+st.snprod*zbar)/st.beta1, mb)
	}
}

func (s *SymmLQ) iterate(a, m LinearOperator, b, x []float64) error {
	mgr := s.manager
	mgr.ResetIterationCount()
	n := len(b)
	shift, goodb, check := s.opts.shift, s.opts.goodb, s.opts.check
	st := &lanczos{}

	for i := range x {
		x[i] = 0
	}
	xv, bv := readOnly(x), readOnly(b)
	event := func() Event {
		return Event{Iterations: mgr.Iterations(), X: xv, B: bv, NormOfResidual: st.rnorm}
	}
	var err error

	// First Lanczos vector: beta1·v1 = M·b.
	r1 := append([]float64(nil), b...)
	y := r1
	if m != nil {
		if y, err = apply(m, r1); err != nil {
			return err
		}
		if check {
			if err = checkSelfAdjoint(m, r1, y, ErrNonSelfAdjointPreconditioner); err != nil {
				return err
			}
		}
	}
	mb := append([]float64(nil), y...)
	st.beta1 = floats.Dot(r1, y)
	if st.beta1 < 0 {
		return fmt.Errorf("b·M·b = %g: %w", st.beta1, ErrNonPositiveDefinitePreconditioner)
	}
	if st.beta1 == 0 {
		mgr.FireInitializationPerformed(event())
		mgr.FireTerminationPerformed(event())
		return nil
	}
	st.beta1 = math.Sqrt(st.beta1)

	v := make([]float64, n)
	floats.ScaleTo(v, 1/st.beta1, y)
	if y, err = apply(a, v); err != nil {
		return err
	}
	if check {
		if err = checkSelfAdjoint(a, v, y, ErrNonSelfAdjointOperator); err != nil {
			return err
		}
	}
	floats.AddScaled(y, -shift, v)
	alpha := floats.Dot(v, y)
	floats.AddScaled(y, -alpha/st.beta1, r1)
	// one step of reorthogonalization against v1
	floats.AddScaled(y, -floats.Dot(v, y)/floats.Dot(v, v), v)

	r2 := append([]float64(nil), y...)
	if m != nil {
		if y, err = apply(m, r2); err != nil {
			return err
		}
	}
	st.oldb = st.beta1
	st.beta = floats.Dot(r2, y)
	if st.beta < 0 {
		return fmt.Errorf("r·M·r = %g: %w", st.beta, ErrNonPositiveDefinitePreconditioner)
	}
	st.beta = math.Sqrt(st.beta)

	st.cgnorm = st.beta1
	st.gbar = alpha
	st.dbar = st.beta
	st.gammaZeta = st.beta1
	st.snprod = 1
	st.tnorm = alpha*alpha + st.beta*st.beta
	st.gmax = math.Abs(alpha) + machEps
	st.gmin = st.gmax

	xL := make([]float64, n)
	wbar := make([]float64, n)
	if !goodb {
		copy(wbar, v)
	}
	if err = st.updateNorms(s.opts.delta); err != nil {
		return err
	}
	st.refine(x, xL, wbar, mb, goodb)
	log.Debugf("SymmLQ: n=%d, β1=%g, shift=%g", n, st.beta1, shift)
	mgr.FireInitializationPerformed(event())

	if st.beta >= machEps && !st.converged {
		var gamma, c, sn, deltak, eps, zeta float64
		for {
			if err = mgr.IncrementIterationCount(); err != nil {
				log.Warnf("SymmLQ: no convergence after %d iterations, ‖r‖≈%g", mgr.Iterations(), st.rnorm)
				return err
			}
			mgr.FireIterationStarted(event())

			// Next Lanczos vector.
			floats.ScaleTo(v, 1/st.beta, y)
			if y, err = apply(a, v); err != nil {
				return err
			}
			floats.AddScaled(y, -shift, v)
			floats.AddScaled(y, -st.beta/st.oldb, r1)
			alpha = floats.Dot(v, y)
			floats.AddScaled(y, -alpha/st.beta, r2)
			r1, r2 = r2, y
			if m != nil {
				if y, err = apply(m, r2); err != nil {
					return err
				}
			} else {
				y = append([]float64(nil), r2...)
			}
			st.oldb = st.beta
			st.beta = floats.Dot(r2, y)
			if st.beta < 0 {
				return fmt.Errorf("iteration %d: r·M·r = %g: %w", mgr.Iterations(), st.beta, ErrNonPositiveDefinitePreconditioner)
			}
			st.beta = math.Sqrt(st.beta)
			st.tnorm += alpha*alpha + st.oldb*st.oldb + st.beta*st.beta

			// Plane rotation eliminating oldb from the tridiagonal T.
			gamma = math.Hypot(st.gbar, st.oldb)
			c, sn = st.gbar/gamma, st.oldb/gamma
			deltak = c*st.dbar + sn*alpha
			st.gbar = sn*st.dbar - c*alpha
			eps = sn * st.beta
			st.dbar = -c * st.beta
			zeta = st.gammaZeta / gamma

			zc, zs := zeta*c, zeta*sn
			for i := range xL {
				xi, vi, wi := xL[i], v[i], wbar[i]
				xL[i] = xi + wi*zc + vi*zs
				wbar[i] = wi*sn - vi*c
			}
			st.bstep += st.snprod * c * zeta
			st.snprod *= sn
			st.gmax = math.Max(st.gmax, gamma)
			st.gmin = math.Min(st.gmin, gamma)
			st.ynorm2 += zeta * zeta
			st.gammaZeta = st.minusEpsZeta - deltak*zeta
			st.minusEpsZeta = -eps * zeta

			if err = st.updateNorms(s.opts.delta); err != nil {
				return err
			}
			st.refine(x, xL, wbar, mb, goodb)
			mgr.FireIterationPerformed(event())
			if st.converged {
				break
			}
		}
	}
	log.Debugf("SymmLQ: converged in %d iterations, ‖r‖≈%g", mgr.Iterations(), st.rnorm)
	mgr.FireTerminationPerformed(event())

	return nil
}
