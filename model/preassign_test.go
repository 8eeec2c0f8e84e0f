package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/speters9/JobMatch/types"
)

func TestPreassignDirectors(t *testing.T) {
	t.Run("grants each director one section and debits capacity", func(t *testing.T) {
		workers := []types.Worker{
			{ID: "boss", Preferences: []string{"taskA"}, MaxSections: 2},
			{ID: "w2", Preferences: []string{"taskA"}, MaxSections: 1},
		}
		tasks := []types.Task{
			{ID: "taskA", Capacity: 3, Director: "boss"},
			{ID: "taskB", Capacity: 1},
		}

		prob, err := PreassignDirectors(workers, tasks)

		require.NoError(t, err)
		require.Equal(t, []types.SectionRef{{TaskID: "taskA", Section: 1}}, prob.Preassigned["boss"])
		require.Equal(t, 2, prob.Remaining["taskA"])
		require.Equal(t, 1, prob.Remaining["taskB"])
		require.Equal(t, 3, prob.OpenSections())
	})

	t.Run("is deterministic across task ordering", func(t *testing.T) {
		workers := []types.Worker{
			{ID: "d1", MaxSections: 1},
			{ID: "d2", MaxSections: 1},
		}
		forward := []types.Task{
			{ID: "taskA", Capacity: 1, Director: "d1"},
			{ID: "taskB", Capacity: 1, Director: "d2"},
		}
		reversed := []types.Task{forward[1], forward[0]}

		p1, err := PreassignDirectors(workers, forward)
		require.NoError(t, err)
		p2, err := PreassignDirectors(workers, reversed)
		require.NoError(t, err)

		require.Equal(t, p1.Preassigned, p2.Preassigned)
	})

	t.Run("zero budget director fails", func(t *testing.T) {
		workers := []types.Worker{{ID: "boss", MaxSections: 0}}
		tasks := []types.Task{{ID: "taskA", Capacity: 1, Director: "boss"}}

		_, err := PreassignDirectors(workers, tasks)

		require.ErrorIs(t, err, types.ErrDirectorBudget)
		require.ErrorContains(t, err, "boss")
	})

	t.Run("director of too many tasks fails", func(t *testing.T) {
		workers := []types.Worker{{ID: "boss", MaxSections: 5}}
		tasks := []types.Task{
			{ID: "taskA", Capacity: 1, Director: "boss"},
			{ID: "taskB", Capacity: 1, Director: "boss"},
			{ID: "taskC", Capacity: 1, Director: "boss"},
		}

		_, err := PreassignDirectors(workers, tasks)

		require.ErrorIs(t, err, types.ErrDirectorBudget)
	})

	t.Run("unknown director is guarded", func(t *testing.T) {
		tasks := []types.Task{{ID: "taskA", Capacity: 1, Director: "ghost"}}

		_, err := PreassignDirectors(nil, tasks)

		require.ErrorIs(t, err, types.ErrInvalidInput)
	})
}
