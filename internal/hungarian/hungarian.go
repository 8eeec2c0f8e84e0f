// Package hungarian implements the Kuhn–Munkres algorithm for the
// minimum-cost assignment problem, used by the bipartite matching solver
// after worker/task factorization.
package hungarian

import "math"

// Forbidden marks a row/column pair the solver must never select.
// Any cost at or above this value is treated as an absent edge.
//
// The value must dwarf every real cost yet stay small enough that folding it
// into the row/column potentials keeps sub-unit differences between real
// costs representable in float64; at 1e6 the ULP is ~1e-10, at 1e18 it is
// ~128 and real edges become indistinguishable.
const Forbidden = 1e6

const inf = math.MaxFloat64 / 2

// Solve computes a minimum-cost assignment for a rectangular cost matrix.
//
// The implementation is the Jonker–Volgenant variant of Kuhn–Munkres with
// row/column potentials, O(n^3) in the padded dimension. Rectangular inputs
// are padded square with Forbidden entries, so excess rows simply stay
// unassigned.
//
// Parameters:
//   - cost: n x m cost matrix; entries >= Forbidden are treated as absent edges
//
// Returns:
//   - []int: assignment[i] = column matched to row i, or -1 when row i is
//     unmatched (only Forbidden edges were available)
func Solve(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	m := len(cost[0])
	if m == 0 {
		out := make([]int, n)
		for i := range out {
			out[i] = -1
		}

		return out
	}

	dim := max(n, m)

	// Padded square matrix; the padding keeps potentials finite.
	c := make([][]float64, dim)
	for i := 0; i < dim; i++ {
		c[i] = make([]float64, dim)
		for j := 0; j < dim; j++ {
			if i < n && j < m {
				c[i][j] = cost[i][j]
			} else {
				c[i][j] = Forbidden
			}
		}
	}

	// 1-indexed arrays internally for cleaner index arithmetic.
	u := make([]float64, dim+1)   // row potentials
	v := make([]float64, dim+1)   // column potentials
	p := make([]int, dim+1)       // p[j] = row assigned to column j
	way := make([]int, dim+1)     // previous column on the augmenting path
	minv := make([]float64, dim+1)
	used := make([]bool, dim+1)

	for i := 1; i <= dim; i++ {
		p[0] = i
		j0 := 0
		for j := 1; j <= dim; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := 0

			for j := 1; j <= dim; j++ {
				if used[j] {
					continue
				}
				cur := c[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= dim; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Augment along the alternating path.
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	result := make([]int, n)
	for i := range result {
		result[i] = -1
	}
	for j := 1; j <= dim; j++ {
		i := p[j] - 1
		if i < 0 || i >= n || j-1 >= m {
			continue
		}
		// Matches carried only by Forbidden padding are not real assignments.
		if c[i][j-1] >= Forbidden {
			continue
		}
		result[i] = j - 1
	}

	return result
}
