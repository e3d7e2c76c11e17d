// SPDX-License-Identifier: MIT

// Package matrix - conversions to and from gonum's mat types.
//
// All conversions copy; no buffer is shared across the boundary.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const opFromMat = "FromMat"

// FromMat copies any gonum matrix into a new Dense.
//
// Errors:
//   - ErrNilMatrix for a nil argument.
//   - ErrInvalidDimensions for an empty matrix.
//   - ErrNaNInf for non-finite entries when the policy is on.
func FromMat(src mat.Matrix, opts ...Option) (*Dense, error) {
	if src == nil {
		return nil, matrixErrorf(opFromMat, ErrNilMatrix)
	}
	r, c := src.Dims()
	out, err := NewDense(r, c, opts...)
	if err != nil {
		return nil, matrixErrorf(opFromMat, err)
	}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v = src.At(i, j)
			if out.validateNaNInf && !isFinite(v) {
				return nil, matrixErrorf(opFromMat, fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// ToMat copies m into a new *mat.Dense. An uninitialized Dense yields nil.
func (m *Dense) ToMat() *mat.Dense {
	if m.r == 0 || m.c == 0 {
		return nil
	}

	return mat.NewDense(m.r, m.c, m.RawData())
}

// FromVec copies a gonum vector into a new VecDense.
func FromVec(src mat.Vector) *VecDense {
	if src == nil {
		return &VecDense{}
	}
	out := make([]float64, src.Len())
	for i := range out {
		out[i] = src.AtVec(i)
	}

	return &VecDense{data: out}
}

// ToVec copies v into a new *mat.VecDense. An empty vector yields nil.
func (v *VecDense) ToVec() *mat.VecDense {
	if len(v.data) == 0 {
		return nil
	}

	return mat.NewVecDense(len(v.data), v.Clone().data)
}
