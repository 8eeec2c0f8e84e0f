package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/speters9/JobMatch/types"
)

func TestGenetic(t *testing.T) {
	t.Run("seeded run produces a legal assignment", func(t *testing.T) {
		g := NewGenetic(WithGeneticSeed(7), WithGenerations(80))
		prob := scenarioProblem(t)

		res, err := g.Solve(context.Background(), prob)

		require.NoError(t, err)
		requireLegal(t, prob, res.Assignment)
		require.Positive(t, res.Diagnostics.Generations)
		require.Len(t, res.Diagnostics.FitnessHistory, res.Diagnostics.Generations)
	})

	t.Run("best fitness never decreases under elitism", func(t *testing.T) {
		g := NewGenetic(WithGeneticSeed(11), WithGenerations(60), WithElitism(2))

		res, err := g.Solve(context.Background(), scenarioProblem(t))

		require.NoError(t, err)
		history := res.Diagnostics.FitnessHistory
		require.NotEmpty(t, history)
		for i := 1; i < len(history); i++ {
			require.GreaterOrEqual(t, history[i], history[i-1])
		}
		require.Equal(t, history[len(history)-1], res.Diagnostics.BestFitness)
	})

	t.Run("same seed reproduces the run exactly", func(t *testing.T) {
		mk := func() (*types.Result, error) {
			return NewGenetic(WithGeneticSeed(99), WithGenerations(40)).
				Solve(context.Background(), scenarioProblem(t))
		}

		first, err := mk()
		require.NoError(t, err)
		second, err := mk()
		require.NoError(t, err)

		require.Equal(t, first.Assignment, second.Assignment)
		require.Equal(t, first.Diagnostics.FitnessHistory, second.Diagnostics.FitnessHistory)
	})

	t.Run("parallel evaluation scores identically to sequential", func(t *testing.T) {
		seq, err := NewGenetic(WithGeneticSeed(5), WithGenerations(30)).
			Solve(context.Background(), scenarioProblem(t))
		require.NoError(t, err)

		par, err := NewGenetic(WithGeneticSeed(5), WithGenerations(30), WithParallelism(4)).
			Solve(context.Background(), scenarioProblem(t))
		require.NoError(t, err)

		require.Equal(t, seq.Diagnostics.FitnessHistory, par.Diagnostics.FitnessHistory)
		require.Equal(t, seq.Assignment, par.Assignment)
	})

	t.Run("plateau triggers early stop with complete status", func(t *testing.T) {
		g := NewGenetic(
			WithGeneticSeed(3),
			WithGenerations(500),
			WithEarlyStopping(5, 1e-6),
		)

		res, err := g.Solve(context.Background(), scenarioProblem(t))

		require.NoError(t, err)
		require.Equal(t, types.StatusComplete, res.Diagnostics.Status)
		require.Less(t, res.Diagnostics.Generations, 500)
	})

	t.Run("generation cap without plateau reports partial", func(t *testing.T) {
		g := NewGenetic(
			WithGeneticSeed(3),
			WithGenerations(2),
			WithEarlyStopping(0, 0), // disabled
		)

		res, err := g.Solve(context.Background(), scenarioProblem(t))

		require.NoError(t, err)
		require.Equal(t, types.StatusPartial, res.Diagnostics.Status)
		requireLegal(t, scenarioProblem(t), res.Assignment)
	})

	t.Run("director genes are fixed from the start", func(t *testing.T) {
		workers := []types.Worker{
			{ID: "boss", Preferences: []string{"taskB"}, MaxSections: 2, Priority: 1},
			{ID: "w2", Preferences: []string{"taskA", "taskB"}, MaxSections: 2, Priority: 2},
		}
		tasks := []types.Task{
			{ID: "taskA", Capacity: 2, Director: "boss"},
			{ID: "taskB", Capacity: 1},
		}
		prob := mustProblem(t, workers, tasks)

		res, err := NewGenetic(WithGeneticSeed(21), WithGenerations(50)).
			Solve(context.Background(), prob)

		require.NoError(t, err)
		requireLegal(t, prob, res.Assignment)
		require.True(t, holdsTask(res.Assignment, "boss", "taskA"))
	})

	t.Run("reports skipped workers", func(t *testing.T) {
		workers := []types.Worker{
			{ID: "active", Preferences: []string{"taskA"}, MaxSections: 1, Priority: 1},
			{ID: "idle", MaxSections: 1, Priority: 2},
		}
		tasks := []types.Task{{ID: "taskA", Capacity: 1}}
		prob := mustProblem(t, workers, tasks)

		res, err := NewGenetic(WithGeneticSeed(1), WithGenerations(10)).
			Solve(context.Background(), prob)

		require.NoError(t, err)
		require.Equal(t, []string{"idle"}, res.Diagnostics.SkippedWorkers)
	})

	t.Run("cached fitness matches direct evaluation", func(t *testing.T) {
		g := NewGenetic(WithGeneticSeed(13))
		ev, _ := g.newContext(scenarioProblem(t))

		ind := genome{0, 1, 2} // w1, w2, w3 over taskA#1, taskA#2, taskB#1
		direct := g.fitnessOf(ev, ind)

		for pass := 0; pass < 2; pass++ { // second pass hits the cache
			got := g.evaluate(ev, []genome{ind})
			require.InDelta(t, direct, got[0], 1e-12)
		}
	})

	t.Run("cancelled context returns partial without error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := NewGenetic(WithGeneticSeed(1)).Solve(ctx, scenarioProblem(t))

		require.NoError(t, err)
		require.Equal(t, types.StatusPartial, res.Diagnostics.Status)
		requireLegal(t, scenarioProblem(t), res.Assignment)
	})
}
