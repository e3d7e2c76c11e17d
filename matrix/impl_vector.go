// SPDX-License-Identifier: MIT

// Package matrix - VecDense storage and BLAS-1 style kernels.
//
// Purpose:
//   - Contiguous float64 vector implementing Vector.
//   - Entrywise and reduction kernels delegate to gonum/floats once lengths
//     are validated (floats panics on mismatch; we return errors instead).
//   - ReadOnly wraps any Vector so listeners can observe solver state without
//     being able to modify it.

package matrix

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

const (
	opVecNew    = "NewVecDense"
	opVecAt     = "AtVec"
	opVecSet    = "SetVec"
	opVecAdd    = "VecDense.Add"
	opVecSub    = "VecDense.Sub"
	opVecEbeMul = "VecDense.EbeMul"
	opVecEbeDiv = "VecDense.EbeDiv"
	opVecDot    = "VecDense.Dot"
	opVecAxpy   = "VecDense.AddScaled"
	opVecOuter  = "VecDense.Outer"
	opToSlice   = "ToSlice"
)

// VecDense is a dense vector backed by a []float64.
type VecDense struct {
	data []float64
}

var (
	_ Vector       = (*VecDense)(nil)
	_ fmt.Stringer = (*VecDense)(nil)
)

// NewVecDense returns a zero vector of length n (n may be 0).
func NewVecDense(n int) (*VecDense, error) {
	if n < 0 {
		return nil, matrixErrorf(opVecNew, ErrInvalidDimensions)
	}

	return &VecDense{data: make([]float64, n)}, nil
}

// NewVecDenseFrom wraps data. When copyData is false the vector aliases the
// caller's slice and writes are visible on both sides.
func NewVecDenseFrom(data []float64, copyData bool) *VecDense {
	if !copyData {
		return &VecDense{data: data}
	}
	cp := make([]float64, len(data))
	copy(cp, data)

	return &VecDense{data: cp}
}

// Len returns the number of entries.
func (v *VecDense) Len() int { return len(v.data) }

// AtVec returns entry i or ErrOutOfRange.
func (v *VecDense) AtVec(i int) (float64, error) {
	if i < 0 || i >= len(v.data) {
		return 0, fmt.Errorf("%s(%d): %w", opVecAt, i, ErrOutOfRange)
	}

	return v.data[i], nil
}

// SetVec stores x at entry i or returns ErrOutOfRange.
func (v *VecDense) SetVec(i int, x float64) error {
	if i < 0 || i >= len(v.data) {
		return fmt.Errorf("%s(%d): %w", opVecSet, i, ErrOutOfRange)
	}
	v.data[i] = x

	return nil
}

// RawData returns the backing slice. Mutating it mutates v.
func (v *VecDense) RawData() []float64 { return v.data }

// Clone returns an independent copy.
func (v *VecDense) Clone() *VecDense { return NewVecDenseFrom(v.data, true) }

// Norm returns the Euclidean norm.
func (v *VecDense) Norm() float64 { return floats.Norm(v.data, 2) }

// Dot returns v·x.
func (v *VecDense) Dot(x Vector) (float64, error) {
	xs, err := sameLen(opVecDot, v, x)
	if err != nil {
		return 0, err
	}

	return floats.Dot(v.data, xs), nil
}

// Add returns v + x.
func (v *VecDense) Add(x Vector) (*VecDense, error) {
	xs, err := sameLen(opVecAdd, v, x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(v.data))
	floats.AddTo(out, v.data, xs)

	return &VecDense{data: out}, nil
}

// Sub returns v - x.
func (v *VecDense) Sub(x Vector) (*VecDense, error) {
	xs, err := sameLen(opVecSub, v, x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(v.data))
	floats.SubTo(out, v.data, xs)

	return &VecDense{data: out}, nil
}

// EbeMul returns the entrywise product of v and x.
func (v *VecDense) EbeMul(x Vector) (*VecDense, error) {
	xs, err := sameLen(opVecEbeMul, v, x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(v.data))
	floats.MulTo(out, v.data, xs)

	return &VecDense{data: out}, nil
}

// EbeDiv returns the entrywise quotient v / x. Division by zero follows
// IEEE-754 (±Inf or NaN).
func (v *VecDense) EbeDiv(x Vector) (*VecDense, error) {
	xs, err := sameLen(opVecEbeDiv, v, x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(v.data))
	floats.DivTo(out, v.data, xs)

	return &VecDense{data: out}, nil
}

// Scale returns alpha·v.
func (v *VecDense) Scale(alpha float64) *VecDense {
	out := make([]float64, len(v.data))
	floats.ScaleTo(out, alpha, v.data)

	return &VecDense{data: out}
}

// AddScaled returns v + alpha·x.
func (v *VecDense) AddScaled(alpha float64, x Vector) (*VecDense, error) {
	xs, err := sameLen(opVecAxpy, v, x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(v.data))
	floats.AddScaledTo(out, v.data, alpha, xs)

	return &VecDense{data: out}, nil
}

// Outer returns the len(v)×len(x) matrix v·xᵀ.
//
// Errors:
//   - ErrInvalidDimensions when either vector is empty.
func (v *VecDense) Outer(x Vector) (*Dense, error) {
	if x == nil {
		return nil, matrixErrorf(opVecOuter, ErrNilMatrix)
	}
	xs, err := ToSlice(x)
	if err != nil {
		return nil, matrixErrorf(opVecOuter, err)
	}
	out, err := NewDense(len(v.data), len(xs))
	if err != nil {
		return nil, matrixErrorf(opVecOuter, err)
	}
	var i int
	for i = range v.data {
		floats.ScaleTo(out.data[i*out.c:(i+1)*out.c], v.data[i], xs)
	}

	return out, nil
}

// Resize returns a copy of length n, truncated or zero-padded.
// A negative n is treated as 0.
func (v *VecDense) Resize(n int) *VecDense {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	copy(out, v.data)

	return &VecDense{data: out}
}

// String renders the vector as "[a, b, c]".
func (v *VecDense) String() string {
	var b strings.Builder
	b.WriteString(_fmtRowOpen)
	for i, x := range v.data {
		if i > 0 {
			b.WriteString(_fmtSep)
		}
		fmt.Fprintf(&b, "%g", x)
	}
	b.WriteString("]")

	return b.String()
}

// ToSlice copies any Vector into a new []float64.
func ToSlice(v Vector) ([]float64, error) {
	if v == nil {
		return nil, matrixErrorf(opToSlice, ErrNilMatrix)
	}
	if d, ok := v.(*VecDense); ok {
		return d.Clone().data, nil
	}
	n := v.Len()
	out := make([]float64, n)
	var err error
	for i := 0; i < n; i++ {
		if out[i], err = v.AtVec(i); err != nil {
			return nil, matrixErrorf(opToSlice, err)
		}
	}

	return out, nil
}

// sameLen validates x against v and returns x's entries. *VecDense operands
// are returned without copying.
func sameLen(op string, v *VecDense, x Vector) ([]float64, error) {
	if x == nil {
		return nil, matrixErrorf(op, ErrNilMatrix)
	}
	if x.Len() != len(v.data) {
		return nil, fmt.Errorf("%s: length %d, want %d: %w", op, x.Len(), len(v.data), ErrDimensionMismatch)
	}
	if d, ok := x.(*VecDense); ok {
		return d.data, nil
	}

	return ToSlice(x)
}

// readOnlyVector is a live, unmodifiable view of another Vector.
type readOnlyVector struct {
	v Vector
}

// ReadOnly returns a view of v whose SetVec always fails with ErrReadOnly.
// Reads reflect later changes to v.
func ReadOnly(v Vector) Vector {
	if ro, ok := v.(readOnlyVector); ok {
		return ro
	}

	return readOnlyVector{v: v}
}

func (r readOnlyVector) Len() int                     { return r.v.Len() }
func (r readOnlyVector) AtVec(i int) (float64, error) { return r.v.AtVec(i) }
func (r readOnlyVector) SetVec(i int, _ float64) error {
	return fmt.Errorf("%s(%d): %w", opVecSet, i, ErrReadOnly)
}
