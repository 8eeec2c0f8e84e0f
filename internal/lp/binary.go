// Package lp solves small binary integer programs by branch-and-bound over
// LP relaxations computed with the pure-Go simplex in
// github.com/willauld/lpsimplex.
package lp

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/willauld/lpsimplex"

	"github.com/speters9/JobMatch/types"
)

// Constraint is a sparse "sum coeff*x <= rhs" row.
type Constraint struct {
	Coeffs map[int]float64
	RHS    float64
}

// Model is a binary maximization program: maximize Objective·x subject to
// the LE rows, x in {0,1}^NumVars.
type Model struct {
	NumVars   int
	Objective []float64
	LE        []Constraint
}

// Options bounds the branch-and-bound search.
type Options struct {
	// MaxNodes caps explored nodes; 0 means DefaultMaxNodes.
	MaxNodes int

	// MaxIter caps simplex iterations per relaxation; 0 means DefaultMaxIter.
	MaxIter int

	// Tol is the integrality/optimality tolerance; 0 means DefaultTol.
	Tol float64
}

// Defaults for Options.
const (
	DefaultMaxNodes = 50000
	DefaultMaxIter  = 4000
	DefaultTol      = 1e-9
)

// Solution is an integer-feasible result.
type Solution struct {
	// X holds the binary variable values (0 or 1).
	X []int

	// Objective is the achieved objective value.
	Objective float64

	// Nodes is the number of branch-and-bound nodes explored.
	Nodes int

	// Complete is false when the search stopped on a node limit or
	// cancellation and X is merely the best incumbent found.
	Complete bool
}

type node struct {
	fixings map[int]float64
}

// SolveBinary maximizes the model over binary variables.
//
// The search is depth-first: each node solves the LP relaxation (with branch
// fixings as equality rows), prunes on infeasibility or bound, and otherwise
// branches on the most fractional variable, exploring the x=1 child first.
//
// Parameters:
//   - ctx: Cancellation; a cancelled search returns the best incumbent with
//     Complete=false, or ErrInfeasible if none was found
//   - m: Binary maximization model
//   - opts: Search bounds
//
// Returns:
//   - *Solution: Best integer solution found
//   - error: types.ErrInfeasible (wrapped) when no integer-feasible point exists
func SolveBinary(ctx context.Context, m *Model, opts Options) (*Solution, error) {
	if opts.MaxNodes == 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.MaxIter == 0 {
		opts.MaxIter = DefaultMaxIter
	}
	if opts.Tol == 0 {
		opts.Tol = DefaultTol
	}

	if m.NumVars == 0 {
		return &Solution{X: nil, Objective: 0, Nodes: 0, Complete: true}, nil
	}

	// Simplex minimizes, so negate the objective once up front.
	c := make([]float64, m.NumVars)
	for i, w := range m.Objective {
		c[i] = -w
	}

	aub, bub := denseRows(m)

	var (
		best     *Solution
		bestObj  = math.Inf(-1)
		explored = 0
		complete = true
	)

	stack := []node{{fixings: nil}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			complete = false

			break
		}
		if explored >= opts.MaxNodes {
			complete = false

			break
		}

		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		explored++

		aeq, beq := fixingRows(m.NumVars, cur.fixings)
		res := lpsimplex.LPSimplex(c, aub, bub, aeq, beq, nil,
			lpsimplex.Callbackfunc(nil), false, opts.MaxIter, opts.Tol, false)
		if !res.Success {
			// Infeasible subproblem (or iteration limit): prune.
			continue
		}

		bound := -res.Fun
		if bound <= bestObj+opts.Tol {
			continue
		}

		branch := mostFractional(res.X, opts.Tol)
		if branch == -1 {
			// Integer-feasible relaxation: new incumbent.
			sol := &Solution{X: roundBinary(res.X), Objective: objectiveOf(m, res.X), Nodes: explored}
			if sol.Objective > bestObj {
				bestObj = sol.Objective
				best = sol
			}

			continue
		}

		// x=1 child first so the depth-first dive grabs assignments greedily.
		stack = append(stack, node{fixings: withFixing(cur.fixings, branch, 0)})
		stack = append(stack, node{fixings: withFixing(cur.fixings, branch, 1)})
	}

	if best == nil {
		if !complete {
			return nil, fmt.Errorf("%w: branch-and-bound stopped before finding an integer solution", types.ErrInfeasible)
		}

		return nil, fmt.Errorf("%w: no integer-feasible point", types.ErrInfeasible)
	}

	best.Nodes = explored
	best.Complete = complete

	return best, nil
}

// denseRows expands the sparse LE rows plus per-variable x<=1 box rows into
// the dense A_ub/b_ub form the simplex expects.
func denseRows(m *Model) ([][]float64, []float64) {
	rows := len(m.LE) + m.NumVars
	aub := make([][]float64, 0, rows)
	bub := make([]float64, 0, rows)

	for _, con := range m.LE {
		row := make([]float64, m.NumVars)
		for idx, coeff := range con.Coeffs {
			row[idx] = coeff
		}
		aub = append(aub, row)
		bub = append(bub, con.RHS)
	}

	for i := 0; i < m.NumVars; i++ {
		row := make([]float64, m.NumVars)
		row[i] = 1
		aub = append(aub, row)
		bub = append(bub, 1)
	}

	return aub, bub
}

// fixingRows emits branch fixings as equality rows in ascending variable
// order, keeping relaxations deterministic across runs.
func fixingRows(numVars int, fixings map[int]float64) ([][]float64, []float64) {
	if len(fixings) == 0 {
		return nil, nil
	}

	idxs := make([]int, 0, len(fixings))
	for idx := range fixings {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)

	aeq := make([][]float64, 0, len(fixings))
	beq := make([]float64, 0, len(fixings))
	for _, idx := range idxs {
		row := make([]float64, numVars)
		row[idx] = 1
		aeq = append(aeq, row)
		beq = append(beq, fixings[idx])
	}

	return aeq, beq
}

func withFixing(parent map[int]float64, idx int, val float64) map[int]float64 {
	child := make(map[int]float64, len(parent)+1)
	for k, v := range parent {
		child[k] = v
	}
	child[idx] = val

	return child
}

// mostFractional returns the index of the variable farthest from integrality,
// or -1 when every variable is integral within tol.
func mostFractional(x []float64, tol float64) int {
	best := -1
	bestDist := tol

	for i, v := range x {
		frac := math.Abs(v - math.Round(v))
		if frac > bestDist {
			bestDist = frac
			best = i
		}
	}

	return best
}

func roundBinary(x []float64) []int {
	out := make([]int, len(x))
	for i, v := range x {
		if math.Round(v) >= 1 {
			out[i] = 1
		}
	}

	return out
}

func objectiveOf(m *Model, x []float64) float64 {
	total := 0.0
	for i, w := range m.Objective {
		total += w * math.Round(x[i])
	}

	return total
}
