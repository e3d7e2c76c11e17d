// SPDX-License-Identifier: MIT

// Package matrix - visitors over rectangular regions.
//
// Walk lets the callback replace each visited cell; Visit only observes.
// Both return the number of visited cells, always (r1-r0+1)*(c1-c0+1) on
// success. Cells outside the region are never touched.

package matrix

const (
	ctxWalk  = "Walk"
	ctxVisit = "Visit"
)

// Walk visits [r0..r1]×[c0..c1] in the given order and stores fn's result
// into each cell.
//
// Errors:
//   - ErrOutOfRange, ErrRangeInverted for a bad region (nothing visited).
//   - ErrNaNInf when fn returns a non-finite value under the numeric
//     policy. The matrix is left unchanged and the count is 0.
//
// Complexity:
//   - Time O(region), Space O(region).
func (m *Dense) Walk(order TraversalOrder, r0, r1, c0, c1 int, fn func(i, j int, v float64) float64) (int, error) {
	if err := m.checkRange(r0, r1, c0, c1); err != nil {
		return 0, matrixErrorf(ctxWalk, err)
	}
	// staged values commit only once every cell has passed
	staged := make([]float64, 0, (r1-r0+1)*(c1-c0+1))
	var err error
	m.traverse(order, r0, r1, c0, c1, func(i, j int) bool {
		nv := fn(i, j, m.data[i*m.c+j])
		if m.validateNaNInf && !isFinite(nv) {
			err = denseErrorf(ctxWalk, i, j, ErrNaNInf)
			return false
		}
		staged = append(staged, nv)

		return true
	})
	if err != nil {
		return 0, err
	}
	k := 0
	m.traverse(order, r0, r1, c0, c1, func(i, j int) bool {
		m.data[i*m.c+j] = staged[k]
		k++

		return true
	})

	return k, nil
}

// Visit visits [r0..r1]×[c0..c1] in the given order without modifying the
// matrix.
func (m *Dense) Visit(order TraversalOrder, r0, r1, c0, c1 int, fn func(i, j int, v float64)) (int, error) {
	if err := m.checkRange(r0, r1, c0, c1); err != nil {
		return 0, matrixErrorf(ctxVisit, err)
	}
	count := 0
	m.traverse(order, r0, r1, c0, c1, func(i, j int) bool {
		fn(i, j, m.data[i*m.c+j])
		count++

		return true
	})

	return count, nil
}

// traverse drives cell callbacks; step returning false stops early.
func (m *Dense) traverse(order TraversalOrder, r0, r1, c0, c1 int, step func(i, j int) bool) {
	var i, j int
	if order == ColumnOrder {
		for j = c0; j <= c1; j++ {
			for i = r0; i <= r1; i++ {
				if !step(i, j) {
					return
				}
			}
		}

		return
	}
	// RowOrder and OptimizedOrder: row-major matches the storage layout.
	for i = r0; i <= r1; i++ {
		for j = c0; j <= c1; j++ {
			if !step(i, j) {
				return
			}
		}
	}
}
