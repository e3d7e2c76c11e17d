// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for dense storage and the
// decompositions. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that applies setters over defaults.
//
// Notes:
//   - Thresholds are read once at construction; a decomposition never consults
//     options again afterwards.
//   - Each decomposition reads only the thresholds that concern it; others are
//     accepted and ignored so the same option list can be reused.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on
	// ingestion (NewDenseFrom) and Set.
	DefaultValidateNaNInf = true

	// DefaultSingularityThreshold is the LU pivot magnitude at or below which
	// the matrix is reported singular.
	DefaultSingularityThreshold = 1e-11

	// DefaultSymmetryThreshold is the relative tolerance of the Cholesky
	// symmetry check: |a_ij - a_ji| <= t·max(|a_ij|, |a_ji|).
	DefaultSymmetryThreshold = 1e-15

	// DefaultPositivityThreshold is the smallest admissible Cholesky pivot.
	DefaultPositivityThreshold = 1e-10

	// DefaultQRThreshold is the |R_kk| magnitude at or below which QR and
	// RRQR report a singular system.
	DefaultQRThreshold = 0.0

	// DefaultEigenTolerance is the relative Jacobi stopping point: rotations
	// stop once every |a_pq| <= t·‖A‖_F.
	DefaultEigenTolerance = 1e-14

	// DefaultEigenMaxSweeps caps the Jacobi rotations at sweeps·n(n-1)/2.
	DefaultEigenMaxSweeps = 50
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicSingularityInvalid = "matrix: WithSingularityThreshold: threshold must be finite, non-negative"
	panicSymmetryInvalid    = "matrix: WithSymmetryThreshold: threshold must be finite, non-negative"
	panicPositivityInvalid  = "matrix: WithPositivityThreshold: threshold must be finite, non-negative"
	panicQRInvalid          = "matrix: WithQRThreshold: threshold must be finite, non-negative"
	panicEigenTolInvalid    = "matrix: WithEigenTolerance: tolerance must be finite, positive"
	panicEigenSweepsInvalid = "matrix: WithEigenMaxSweeps: sweeps must be > 0"
)

// Option mutates internal options. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	validateNaNInf bool    // DefaultValidateNaNInf
	singularity    float64 // DefaultSingularityThreshold (LU)
	symmetry       float64 // DefaultSymmetryThreshold (Cholesky, relative)
	positivity     float64 // DefaultPositivityThreshold (Cholesky, absolute)
	qrThreshold    float64 // DefaultQRThreshold (QR, RRQR)
	eigenTol       float64 // DefaultEigenTolerance (Eigen, relative)
	eigenSweeps    int     // DefaultEigenMaxSweeps (Eigen)
}

func validThreshold(t float64) bool {
	return !math.IsNaN(t) && !math.IsInf(t, 0) && t >= 0
}

// WithValidateNaNInf enables rejection of NaN/±Inf in NewDenseFrom and Set.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables the finite-value guard. Required to store
// NaN in a matrix, e.g. to test how a decomposition propagates it.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithSingularityThreshold sets the LU pivot threshold.
// Panics when t is negative, NaN or infinite.
func WithSingularityThreshold(t float64) Option {
	if !validThreshold(t) {
		panic(panicSingularityInvalid)
	}

	return func(o *Options) { o.singularity = t }
}

// WithSymmetryThreshold sets the relative symmetry tolerance for Cholesky.
//
// Inputs:
//   - t: relative tolerance; 0 demands exact symmetry.
//
// Errors:
//   - Panics when t is negative, NaN or infinite.
func WithSymmetryThreshold(t float64) Option {
	if !validThreshold(t) {
		panic(panicSymmetryInvalid)
	}

	return func(o *Options) { o.symmetry = t }
}

// WithPositivityThreshold sets the smallest admissible Cholesky pivot.
// Panics when t is negative, NaN or infinite.
func WithPositivityThreshold(t float64) Option {
	if !validThreshold(t) {
		panic(panicPositivityInvalid)
	}

	return func(o *Options) { o.positivity = t }
}

// WithQRThreshold sets the |R_kk| threshold below which QR/RRQR solvers report
// singularity. Panics when t is negative, NaN or infinite.
func WithQRThreshold(t float64) Option {
	if !validThreshold(t) {
		panic(panicQRInvalid)
	}

	return func(o *Options) { o.qrThreshold = t }
}

// WithEigenTolerance sets the relative off-diagonal tolerance of the Jacobi
// eigen solver. Panics when t is not finite and positive.
func WithEigenTolerance(t float64) Option {
	if !validThreshold(t) || t == 0 {
		panic(panicEigenTolInvalid)
	}

	return func(o *Options) { o.eigenTol = t }
}

// WithEigenMaxSweeps caps the Jacobi eigen solver at sweeps full passes over
// the off-diagonal. Panics when sweeps <= 0.
func WithEigenMaxSweeps(sweeps int) Option {
	if sweeps <= 0 {
		panic(panicEigenSweepsInvalid)
	}

	return func(o *Options) { o.eigenSweeps = sweeps }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		validateNaNInf: DefaultValidateNaNInf,
		singularity:    DefaultSingularityThreshold,
		symmetry:       DefaultSymmetryThreshold,
		positivity:     DefaultPositivityThreshold,
		qrThreshold:    DefaultQRThreshold,
		eigenTol:       DefaultEigenTolerance,
		eigenSweeps:    DefaultEigenMaxSweeps,
	}
}

// gatherOptions applies user setters on top of defaults, last writer wins.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}
