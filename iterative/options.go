// SPDX-License-Identifier: MIT

// Package iterative: functional configuration of the Krylov solvers.
//
// Every solver constructor accepts ...Option. Options irrelevant to a solver
// (WithShift and WithGoodB for ConjugateGradient) are accepted and ignored,
// so one option list can configure both solvers.
package iterative

import "math"

const (
	// DefaultMaxIterations is the iteration budget of a solve.
	DefaultMaxIterations = 1000

	// DefaultDelta is the relative residual target: a solve stops once
	// ‖r‖ <= delta·‖b‖.
	DefaultDelta = 1e-10

	// DefaultCheck leaves the optional positivity and self-adjointness
	// checks off.
	DefaultCheck = false
)

const (
	panicMaxIterations = "iterative: WithMaxIterations: budget must be >= 0"
	panicDelta         = "iterative: WithDelta: delta must be finite and > 0"
	panicShift         = "iterative: WithShift: shift must be finite"
	panicListener      = "iterative: WithListener: nil listener"
)

// Option mutates solver options. Constructors panic only on nonsensical
// values.
type Option func(*Options)

// Options is the effective solver configuration.
type Options struct {
	maxIterations int
	delta         float64
	check         bool
	shift         float64 // SymmLQ only
	goodb         bool    // SymmLQ only
	listeners     []Listener
}

// WithMaxIterations sets the iteration budget. Panics when n < 0.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(panicMaxIterations)
	}

	return func(o *Options) { o.maxIterations = n }
}

// WithDelta sets the relative residual target. Panics unless delta is finite
// and positive.
func WithDelta(delta float64) Option {
	if math.IsNaN(delta) || math.IsInf(delta, 0) || delta <= 0 {
		panic(panicDelta)
	}

	return func(o *Options) { o.delta = delta }
}

// WithCheck turns on the positivity checks (CG, SymmLQ) and the
// self-adjointness checks (SymmLQ).
func WithCheck() Option {
	return func(o *Options) { o.check = true }
}

// WithShift makes SymmLQ solve (A - shift·I)·x = b.
func WithShift(shift float64) Option {
	if math.IsNaN(shift) || math.IsInf(shift, 0) {
		panic(panicShift)
	}

	return func(o *Options) { o.shift = shift }
}

// WithGoodB tells SymmLQ that b is a good approximation of x's direction;
// the solution is then computed in two parts, which is more accurate when
// b is close to an eigenvector.
func WithGoodB() Option {
	return func(o *Options) { o.goodb = true }
}

// WithListener registers l on the solver's IterationManager.
func WithListener(l Listener) Option {
	if l == nil {
		panic(panicListener)
	}

	return func(o *Options) { o.listeners = append(o.listeners, l) }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		maxIterations: DefaultMaxIterations,
		delta:         DefaultDelta,
		check:         DefaultCheck,
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}
