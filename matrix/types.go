// SPDX-License-Identifier: MIT

// Package matrix: public interfaces shared by storage, kernels and
// decompositions.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// All methods are O(1) except Clone (O(rows*cols)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Vector is a mutable one-dimensional array of float64 values.
// Solvers read right-hand sides only through this interface, so callers may
// pass their own implementations.
type Vector interface {
	// Len returns the number of entries.
	Len() int

	// AtVec returns entry i or ErrOutOfRange.
	AtVec(i int) (float64, error)

	// SetVec stores v at entry i. Read-only views return ErrReadOnly.
	SetVec(i int, v float64) error
}

// TraversalOrder selects the cell order used by Walk and Visit.
type TraversalOrder int

const (
	// OptimizedOrder lets the implementation choose the fastest order.
	// For *Dense it is row-major.
	OptimizedOrder TraversalOrder = iota
	// RowOrder visits row by row, left to right.
	RowOrder
	// ColumnOrder visits column by column, top to bottom.
	ColumnOrder
)

// String returns the order name.
func (o TraversalOrder) String() string {
	switch o {
	case RowOrder:
		return "row"
	case ColumnOrder:
		return "column"
	default:
		return "optimized"
	}
}
