// SPDX-License-Identifier: MIT

// Package matrix - rank-revealing QR with column pivoting.

package matrix

const opRRQR = "RRQR"

// RRQR is the decomposition A·P = Q·R where P moves, at every step, the
// remaining column with the largest trailing norm into the pivot position.
// The magnitudes |R_kk| then decrease, which makes Rank meaningful.
type RRQR struct {
	*QR
	perm []int // column k of A·P is column perm[k] of A

	p *Dense
}

// NewRRQR decomposes m with column-pivoted Householder reflections.
//
// Inputs:
//   - opts: WithQRThreshold; with a positive threshold a rank-deficient
//     matrix yields a singular solver.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions.
func NewRRQR(m Matrix, opts ...Option) (*RRQR, error) {
	h, err := newHouseholder(m, opRRQR, opts)
	if err != nil {
		return nil, err
	}
	perm := make([]int, h.n)
	for i := range perm {
		perm[i] = i
	}
	h.factor(func(minor int) {
		best, bestNorm := minor, -1.0
		var col, row int
		var sq float64
		for col = minor; col < h.n; col++ {
			sq = NormZero
			for row = minor; row < h.m; row++ {
				sq += h.qrt[col][row] * h.qrt[col][row]
			}
			if sq > bestNorm {
				best, bestNorm = col, sq
			}
		}
		if best != minor {
			h.qrt[minor], h.qrt[best] = h.qrt[best], h.qrt[minor]
			perm[minor], perm[best] = perm[best], perm[minor]
		}
	})

	d := &RRQR{QR: newQRFrom(h), perm: perm}
	d.p = newDenseRaw(h.n, h.n, make([]float64, h.n*h.n))
	for k, src := range perm {
		d.p.data[src*h.n+k] = 1
	}

	return d, nil
}

// P returns the column permutation matrix (n×n).
func (d *RRQR) P() *Dense { return d.p }

// Permutation returns a copy of the column order.
func (d *RRQR) Permutation() []int {
	out := make([]int, len(d.perm))
	copy(out, d.perm)

	return out
}

// Rank returns the numerical rank: the number of leading diagonal blocks
// kept before the trailing Frobenius norm of R, scaled by ‖R‖_F over the
// previous trailing norm, drops below dropThreshold.
func (d *RRQR) Rank(dropThreshold float64) int {
	rows, cols := d.r.r, d.r.c
	rank := 1
	lastNorm := FrobeniusNorm(d.r)
	rNorm := lastNorm
	for rank < min(rows, cols) {
		view, err := d.r.View(rank, rank, rows-rank, cols-rank)
		if err != nil {
			break
		}
		thisNorm := view.FrobeniusNorm()
		if thisNorm == 0 || (thisNorm/lastNorm)*rNorm < dropThreshold {
			break
		}
		lastNorm = thisNorm
		rank++
	}

	return rank
}

// Solver returns a Solver for A·x = b: the QR solution of (A·P)·y = b
// mapped back through x = P·y.
func (d *RRQR) Solver() Solver { return solver{op: opRRQR, k: d} }

func (d *RRQR) shape() (int, int) { return d.h.shape() }
func (d *RRQR) nonSingular() bool { return d.h.nonSingular() }

func (d *RRQR) solveSlice(b []float64) []float64 {
	y := d.h.solveSlice(b)
	x := make([]float64, len(y))
	for k, src := range d.perm {
		x[src] = y[k]
	}

	return x
}
