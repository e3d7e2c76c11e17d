// SPDX-License-Identifier: MIT

package field

import (
	"fmt"
	"strings"
)

const (
	opVecNew   = "NewVector"
	opVecAt    = "Vector.At"
	opVecSet   = "Vector.Set"
	opVecAdd   = "Vector.Add"
	opVecSub   = "Vector.Sub"
	opVecDot   = "Vector.Dot"
	opVecOuter = "Vector.Outer"
)

// Vector is a dense vector over the field of E.
type Vector[E Element[E]] struct {
	field Field[E]
	data  []E
}

// NewVector returns a vector of n copies of f.Zero(); n may be 0.
func NewVector[E Element[E]](f Field[E], n int) (*Vector[E], error) {
	if f == nil {
		return nil, fieldErrorf(opVecNew, ErrNilField)
	}
	if n < 0 {
		return nil, fieldErrorf(opVecNew, ErrBadShape)
	}
	data := make([]E, n)
	zero := f.Zero()
	for k := range data {
		data[k] = zero
	}

	return &Vector[E]{field: f, data: data}, nil
}

// NewVectorFrom copies data.
func NewVectorFrom[E Element[E]](f Field[E], data []E) (*Vector[E], error) {
	if f == nil {
		return nil, fieldErrorf(opVecNew, ErrNilField)
	}

	return &Vector[E]{field: f, data: append([]E(nil), data...)}, nil
}

// Field returns the scalar field of v.
func (v *Vector[E]) Field() Field[E] { return v.field }

// Len returns the number of entries.
func (v *Vector[E]) Len() int { return len(v.data) }

// At returns entry i.
func (v *Vector[E]) At(i int) (E, error) {
	if i < 0 || i >= len(v.data) {
		var zero E
		return zero, fmt.Errorf("%s(%d): %w", opVecAt, i, ErrOutOfRange)
	}

	return v.data[i], nil
}

// Set stores e at entry i.
func (v *Vector[E]) Set(i int, e E) error {
	if i < 0 || i >= len(v.data) {
		return fmt.Errorf("%s(%d): %w", opVecSet, i, ErrOutOfRange)
	}
	v.data[i] = e

	return nil
}

// Data returns a copy of the entries.
func (v *Vector[E]) Data() []E { return append([]E(nil), v.data...) }

// Clone returns an independent copy.
func (v *Vector[E]) Clone() *Vector[E] {
	return &Vector[E]{field: v.field, data: v.Data()}
}

func (v *Vector[E]) sameLen(op string, x *Vector[E]) error {
	if x == nil {
		return fieldErrorf(op, ErrNilMatrix)
	}
	if len(x.data) != len(v.data) {
		return fieldErrorf(op, fmt.Errorf("length %d, want %d: %w", len(x.data), len(v.data), ErrDimensionMismatch))
	}

	return nil
}

// Add returns v + x.
func (v *Vector[E]) Add(x *Vector[E]) (*Vector[E], error) {
	if err := v.sameLen(opVecAdd, x); err != nil {
		return nil, err
	}
	out := v.Clone()
	for k := range out.data {
		out.data[k] = out.data[k].Add(x.data[k])
	}

	return out, nil
}

// Sub returns v - x.
func (v *Vector[E]) Sub(x *Vector[E]) (*Vector[E], error) {
	if err := v.sameLen(opVecSub, x); err != nil {
		return nil, err
	}
	out := v.Clone()
	for k := range out.data {
		out.data[k] = out.data[k].Sub(x.data[k])
	}

	return out, nil
}

// Scale returns alpha·v.
func (v *Vector[E]) Scale(alpha E) *Vector[E] {
	out := v.Clone()
	for k := range out.data {
		out.data[k] = out.data[k].Mul(alpha)
	}

	return out
}

// Dot returns Σ v_k·x_k.
func (v *Vector[E]) Dot(x *Vector[E]) (E, error) {
	if err := v.sameLen(opVecDot, x); err != nil {
		var zero E
		return zero, err
	}
	sum := v.field.Zero()
	for k := range v.data {
		sum = sum.Add(v.data[k].Mul(x.data[k]))
	}

	return sum, nil
}

// Outer returns the Len()×x.Len() matrix v·xᵀ.
func (v *Vector[E]) Outer(x *Vector[E]) (*Matrix[E], error) {
	if x == nil {
		return nil, fieldErrorf(opVecOuter, ErrNilMatrix)
	}
	out, err := NewMatrix(v.field, len(v.data), len(x.data))
	if err != nil {
		return nil, fieldErrorf(opVecOuter, err)
	}
	for i, a := range v.data {
		for j, b := range x.data {
			out.data[i*out.c+j] = a.Mul(b)
		}
	}

	return out, nil
}

// Equal reports same length and entry-wise equality.
func (v *Vector[E]) Equal(x *Vector[E]) bool {
	if v == nil || x == nil {
		return v == x
	}
	if len(v.data) != len(x.data) {
		return false
	}
	for k := range v.data {
		if !v.data[k].Equal(x.data[k]) {
			return false
		}
	}

	return true
}

// String renders the vector as "[a, b, c]".
func (v *Vector[E]) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for k, e := range v.data {
		if k > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteString("]")

	return sb.String()
}
