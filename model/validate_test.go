package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/speters9/JobMatch/types"
)

func TestValidate(t *testing.T) {
	goodTasks := []types.Task{
		{ID: "taskA", Capacity: 2},
		{ID: "taskB", Capacity: 1, Director: "w1"},
	}
	goodWorkers := []types.Worker{
		{ID: "w1", Preferences: []string{"taskA", "taskB"}, MaxSections: 2},
		{ID: "w2", Preferences: []string{"taskB"}, MaxSections: 1},
	}

	t.Run("valid input has no violations", func(t *testing.T) {
		require.Empty(t, Validate(goodWorkers, goodTasks))
	})

	t.Run("empty preferences and zero budget are not violations", func(t *testing.T) {
		workers := []types.Worker{
			{ID: "idle", MaxSections: 2},
			{ID: "full", Preferences: []string{"taskA"}, MaxSections: 0},
		}

		require.Empty(t, Validate(workers, goodTasks[:1]))
	})

	t.Run("flags every failure at once", func(t *testing.T) {
		workers := []types.Worker{
			{ID: "w1", Preferences: []string{"ghost"}, MaxSections: 1},
			{ID: "w1", MaxSections: -1},
		}
		tasks := []types.Task{
			{ID: "taskA", Capacity: 0},
			{ID: "taskA", Capacity: 1, Director: "nobody"},
		}

		violations := Validate(workers, tasks)

		details := make(map[string]bool)
		for _, v := range violations {
			details[v.Detail] = true
		}
		require.Len(t, violations, 6)
		require.True(t, details[`preference references unknown task "ghost"`])
		require.True(t, details["duplicate worker ID"])
		require.True(t, details["duplicate task ID"])
		require.True(t, details[`director references unknown worker "nobody"`])
	})
}

func TestViolationsError(t *testing.T) {
	t.Run("nil for empty list", func(t *testing.T) {
		require.NoError(t, ViolationsError(nil))
	})

	t.Run("wraps ErrInvalidInput and joins details", func(t *testing.T) {
		err := ViolationsError([]Violation{
			{Subject: "w1", Detail: "duplicate worker ID"},
			{Subject: "taskA", Detail: "capacity must be positive, got 0"},
		})

		require.ErrorIs(t, err, types.ErrInvalidInput)
		require.ErrorContains(t, err, "w1: duplicate worker ID")
		require.ErrorContains(t, err, "taskA: capacity must be positive")
	})
}
