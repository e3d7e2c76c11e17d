// SPDX-License-Identifier: MIT

package field

import "github.com/katalvlaran/linsolve/matrix"

const (
	opWalk  = "Walk"
	opVisit = "Visit"
)

// Walk visits [r0..r1]×[c0..c1] in the given order (matrix.RowOrder,
// matrix.ColumnOrder or matrix.OptimizedOrder, which is row-major) and
// stores fn's result into each cell. It returns the number of visited cells.
//
// Errors:
//   - ErrOutOfRange, ErrRangeInverted for a bad region (nothing visited).
func (m *Matrix[E]) Walk(order matrix.TraversalOrder, r0, r1, c0, c1 int, fn func(i, j int, v E) E) (int, error) {
	if err := m.checkRange(r0, r1, c0, c1); err != nil {
		return 0, fieldErrorf(opWalk, err)
	}

	return m.traverse(order, r0, r1, c0, c1, func(i, j int) {
		m.data[i*m.c+j] = fn(i, j, m.data[i*m.c+j])
	}), nil
}

// Visit is Walk without modification.
func (m *Matrix[E]) Visit(order matrix.TraversalOrder, r0, r1, c0, c1 int, fn func(i, j int, v E)) (int, error) {
	if err := m.checkRange(r0, r1, c0, c1); err != nil {
		return 0, fieldErrorf(opVisit, err)
	}

	return m.traverse(order, r0, r1, c0, c1, func(i, j int) {
		fn(i, j, m.data[i*m.c+j])
	}), nil
}

func (m *Matrix[E]) traverse(order matrix.TraversalOrder, r0, r1, c0, c1 int, step func(i, j int)) int {
	var i, j, count int
	if order == matrix.ColumnOrder {
		for j = c0; j <= c1; j++ {
			for i = r0; i <= r1; i++ {
				step(i, j)
				count++
			}
		}

		return count
	}
	for i = r0; i <= r1; i++ {
		for j = c0; j <= c1; j++ {
			step(i, j)
			count++
		}
	}

	return count
}
