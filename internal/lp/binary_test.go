package lp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/speters9/JobMatch/types"
)

func TestSolveBinary(t *testing.T) {
	t.Run("picks the heavier of two exclusive variables", func(t *testing.T) {
		m := &Model{
			NumVars:   2,
			Objective: []float64{1, 3},
			LE: []Constraint{
				{Coeffs: map[int]float64{0: 1, 1: 1}, RHS: 1},
			},
		}

		sol, err := SolveBinary(context.Background(), m, Options{})

		require.NoError(t, err)
		require.True(t, sol.Complete)
		require.Equal(t, []int{0, 1}, sol.X)
		require.InDelta(t, 3.0, sol.Objective, 1e-6)
	})

	t.Run("solves a small knapsack", func(t *testing.T) {
		// weights 2,3,4 with budget 6: best is items 0+2 (value 7).
		m := &Model{
			NumVars:   3,
			Objective: []float64{3, 2, 4},
			LE: []Constraint{
				{Coeffs: map[int]float64{0: 2, 1: 3, 2: 4}, RHS: 6},
			},
		}

		sol, err := SolveBinary(context.Background(), m, Options{})

		require.NoError(t, err)
		require.Equal(t, []int{1, 0, 1}, sol.X)
		require.InDelta(t, 7.0, sol.Objective, 1e-6)
	})

	t.Run("reports infeasibility", func(t *testing.T) {
		// x0 <= 0 and -x0 <= -1 force x0 to be both 0 and >= 1.
		m := &Model{
			NumVars:   1,
			Objective: []float64{1},
			LE: []Constraint{
				{Coeffs: map[int]float64{0: 1}, RHS: 0},
				{Coeffs: map[int]float64{0: -1}, RHS: -1},
			},
		}

		_, err := SolveBinary(context.Background(), m, Options{})

		require.ErrorIs(t, err, types.ErrInfeasible)
	})

	t.Run("empty model solves trivially", func(t *testing.T) {
		sol, err := SolveBinary(context.Background(), &Model{}, Options{})

		require.NoError(t, err)
		require.True(t, sol.Complete)
		require.Empty(t, sol.X)
	})

	t.Run("identical inputs yield identical solutions", func(t *testing.T) {
		m := &Model{
			NumVars:   4,
			Objective: []float64{2, 2, 1, 1},
			LE: []Constraint{
				{Coeffs: map[int]float64{0: 1, 1: 1}, RHS: 1},
				{Coeffs: map[int]float64{2: 1, 3: 1}, RHS: 1},
			},
		}

		first, err := SolveBinary(context.Background(), m, Options{})
		require.NoError(t, err)
		second, err := SolveBinary(context.Background(), m, Options{})
		require.NoError(t, err)

		require.Equal(t, first.X, second.X)
		require.InDelta(t, first.Objective, second.Objective, 1e-9)
	})
}
