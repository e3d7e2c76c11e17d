// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/linsolve/iterative"
	"github.com/katalvlaran/linsolve/matrix"
)

var errUsage = errors.New("krylov: invalid arguments")

// maxSpectrumSize bounds the Jacobi eigen solve used for the condition report.
const maxSpectrumSize = 200

type config struct {
	problem string
	n       int
	column  int
	solver  string
	delta   float64
	maxit   int
	shift   float64
	jacobi  bool
	check   bool
}

// result is one solver run.
type result struct {
	solver     string
	iterations int
	history    []float64 // residual norm after each event
	x          []float64
	relErr     float64 // against the direct solution
	err        error
}

func (r result) String() string {
	if r.err != nil {
		return fmt.Sprintf("%-7s failed after %d iterations: %v", r.solver, r.iterations, r.err)
	}
	last := math.NaN()
	if len(r.history) > 0 {
		last = r.history[len(r.history)-1]
	}

	return fmt.Sprintf("%-7s %4d iterations  ‖r‖=%.3e  rel. error vs LU=%.3e", r.solver, r.iterations, last, r.relErr)
}

// buildProblem returns the operator, its materialized form and the
// right-hand side: e_column, or A·1 (the row sums) when column is -1.
func buildProblem(cfg config) (iterative.LinearOperator, *matrix.Dense, *matrix.VecDense, error) {
	if cfg.n <= 0 || cfg.column < -1 || cfg.column >= cfg.n {
		return nil, nil, nil, fmt.Errorf("n=%d, column=%d: %w", cfg.n, cfg.column, errUsage)
	}

	var a iterative.LinearOperator
	var dense *matrix.Dense
	var err error
	switch cfg.problem {
	case "hilbert":
		h := iterative.NewHilbert(cfg.n)
		if dense, err = h.Dense(); err != nil {
			return nil, nil, nil, err
		}
		a = h
	case "growing":
		// ones off the diagonal, diagonal 1, 1.2, 1.44, ...
		rows := make([][]float64, cfg.n)
		d := 1.0
		for i := range rows {
			rows[i] = make([]float64, cfg.n)
			for j := range rows[i] {
				rows[i][j] = 1
			}
			rows[i][i] = d
			d *= 1.2
		}
		if dense, err = matrix.NewDenseFrom(rows); err != nil {
			return nil, nil, nil, err
		}
		a = dense
	default:
		return nil, nil, nil, fmt.Errorf("unknown problem %q: %w", cfg.problem, errUsage)
	}

	if cfg.column == -1 {
		sums, err := matrix.RowSums(dense)
		if err != nil {
			return nil, nil, nil, err
		}
		return a, dense, matrix.NewVecDenseFrom(sums, false), nil
	}
	b, err := matrix.NewVecDense(cfg.n)
	if err != nil {
		return nil, nil, nil, err
	}
	if err = b.SetVec(cfg.column, 1); err != nil {
		return nil, nil, nil, err
	}

	return a, dense, b, nil
}

// run solves the configured problem with every selected solver. Solver
// failures are reported per result; only setup problems return an error.
func run(cfg config) ([]result, error) {
	var names []string
	switch cfg.solver {
	case "cg", "symmlq":
		names = []string{cfg.solver}
	case "both":
		names = []string{"cg", "symmlq"}
	default:
		return nil, fmt.Errorf("unknown solver %q: %w", cfg.solver, errUsage)
	}
	if cfg.delta <= 0 || math.IsNaN(cfg.delta) || cfg.maxit < 0 || math.IsNaN(cfg.shift) || math.IsInf(cfg.shift, 0) {
		return nil, fmt.Errorf("delta=%g, maxit=%d, shift=%g: %w", cfg.delta, cfg.maxit, cfg.shift, errUsage)
	}

	a, dense, b, err := buildProblem(cfg)
	if err != nil {
		return nil, err
	}
	var m iterative.LinearOperator
	if cfg.jacobi {
		if m, err = iterative.NewJacobi(dense); err != nil {
			return nil, err
		}
	}
	if cfg.n <= maxSpectrumSize {
		lo, hi, err := spectrum(dense)
		if err != nil {
			return nil, err
		}
		log.Infof("%s n=%d: eigenvalues in [%.3e, %.3e], condition %.3e", cfg.problem, cfg.n, lo, hi, math.Abs(hi/lo))
	}
	direct, err := directSolve(dense, b, cfg.shift)
	if err != nil {
		return nil, err
	}

	out := make([]result, 0, len(names))
	for _, name := range names {
		out = append(out, solveOne(name, cfg, a, m, b, direct))
	}

	return out, nil
}

// spectrum returns the smallest and largest eigenvalue of the symmetric a.
func spectrum(a *matrix.Dense) (lo, hi float64, err error) {
	e, err := matrix.NewEigen(a)
	if err != nil {
		return 0, 0, fmt.Errorf("spectrum: %w", err)
	}
	values := e.RealEigenvalues()

	return values[len(values)-1], values[0], nil
}

// directSolve returns the LU solution of (A - shift·I)·x = b.
func directSolve(a *matrix.Dense, b *matrix.VecDense, shift float64) ([]float64, error) {
	shifted := a.Clone().(*matrix.Dense)
	for i := 0; i < shifted.Rows(); i++ {
		v, err := shifted.At(i, i)
		if err != nil {
			return nil, err
		}
		if err = shifted.Set(i, i, v-shift); err != nil {
			return nil, err
		}
	}
	x, err := matrix.SolveVec(shifted, b)
	if err != nil {
		return nil, fmt.Errorf("direct solve: %w", err)
	}

	return x.RawData(), nil
}

func solveOne(name string, cfg config, a, m iterative.LinearOperator, b *matrix.VecDense, direct []float64) result {
	res := result{solver: name}
	record := func(e iterative.Event) { res.history = append(res.history, e.NormOfResidual) }
	opts := []iterative.Option{
		iterative.WithDelta(cfg.delta),
		iterative.WithMaxIterations(cfg.maxit),
		iterative.WithListener(&iterative.ListenerFuncs{OnInitialization: record, OnIteration: record}),
	}
	if cfg.check {
		opts = append(opts, iterative.WithCheck())
	}

	var x *matrix.VecDense
	var mgr *iterative.IterationManager
	switch name {
	case "cg":
		if cfg.shift != 0 {
			log.Warnf("cg ignores -shift=%g", cfg.shift)
		}
		cg := iterative.NewConjugateGradient(opts...)
		mgr = cg.Manager()
		x, res.err = cg.SolvePreconditioned(a, m, b, nil)
	default:
		s := iterative.NewSymmLQ(append(opts, iterative.WithShift(cfg.shift))...)
		mgr = s.Manager()
		x, res.err = s.SolvePreconditioned(a, m, b, nil)
	}
	res.iterations = mgr.Iterations()
	if res.err != nil {
		return res
	}

	res.x = x.RawData()
	diff := make([]float64, len(direct))
	floats.SubTo(diff, res.x, direct)
	res.relErr = floats.Norm(diff, 2) / floats.Norm(direct, 2)
	log.Debugf("%s: %d iterations, rel. error %g", name, res.iterations, res.relErr)

	return res
}
