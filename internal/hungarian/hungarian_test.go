package hungarian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolve(t *testing.T) {
	t.Run("solves a classic 3x3 instance optimally", func(t *testing.T) {
		cost := [][]float64{
			{4, 1, 3},
			{2, 0, 5},
			{3, 2, 2},
		}

		assignment := Solve(cost)

		require.Len(t, assignment, 3)
		total := 0.0
		seen := make(map[int]struct{})
		for i, j := range assignment {
			require.NotEqual(t, -1, j)
			_, dup := seen[j]
			require.False(t, dup, "column %d assigned twice", j)
			seen[j] = struct{}{}
			total += cost[i][j]
		}
		// Optimum is 1 + 2 + 2 = 5 (rows -> columns 1, 0, 2).
		require.InDelta(t, 5.0, total, 1e-9)
	})

	t.Run("leaves rows unmatched when only forbidden edges remain", func(t *testing.T) {
		cost := [][]float64{
			{1, Forbidden},
			{Forbidden, Forbidden},
		}

		assignment := Solve(cost)

		require.Equal(t, 0, assignment[0])
		require.Equal(t, -1, assignment[1])
	})

	t.Run("handles rectangular matrices with more rows than columns", func(t *testing.T) {
		cost := [][]float64{
			{1},
			{2},
			{3},
		}

		assignment := Solve(cost)

		matched := 0
		for _, j := range assignment {
			if j != -1 {
				matched++
				require.Equal(t, 0, j)
			}
		}
		require.Equal(t, 1, matched)
		require.Equal(t, 0, assignment[0], "cheapest row should win the single column")
	})

	t.Run("handles rectangular matrices with more columns than rows", func(t *testing.T) {
		cost := [][]float64{
			{5, 1, 9},
		}

		assignment := Solve(cost)

		require.Equal(t, []int{1}, assignment)
	})

	t.Run("empty input", func(t *testing.T) {
		require.Nil(t, Solve(nil))
	})

	t.Run("sub-unit cost differences survive forbidden padding", func(t *testing.T) {
		// Six budget slots over three sections, costs all inside (0, 2) the
		// way the matching solver prices preference weights. The padding the
		// solver adds for the excess rows must not wash out the 0.25 gap that
		// separates the optimal matching (total 4.5) from the next one (4.75).
		cost := [][]float64{
			{1.5, 1.5, 1.75},
			{1.5, 1.5, 1.75},
			{1.5, 1.5, Forbidden},
			{1.5, 1.5, Forbidden},
			{1.75, 1.75, 1.5},
			{1.75, 1.75, 1.5},
		}

		assignment := Solve(cost)

		total := 0.0
		colTwo := -1
		for i, j := range assignment {
			if j == -1 {
				continue
			}
			total += cost[i][j]
			if j == 2 {
				colTwo = i
			}
		}
		require.InDelta(t, 4.5, total, 1e-9)
		require.Contains(t, []int{4, 5}, colTwo, "column 2 must go to a row that prices it cheapest")
	})
}
