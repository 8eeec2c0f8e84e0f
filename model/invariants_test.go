package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/speters9/JobMatch/types"
)

func invariantProblem(t *testing.T) *types.Problem {
	t.Helper()

	workers := []types.Worker{
		{ID: "w1", Preferences: []string{"taskA", "taskB"}, MaxSections: 2},
		{ID: "w2", Preferences: []string{"taskA"}, MaxSections: 1},
		{ID: "boss", Preferences: []string{"taskB"}, MaxSections: 2},
	}
	tasks := []types.Task{
		{ID: "taskA", Capacity: 2},
		{ID: "taskB", Capacity: 2, Director: "boss"},
	}

	prob, err := PreassignDirectors(workers, tasks)
	require.NoError(t, err)

	return prob
}

func TestCheckInvariants(t *testing.T) {
	t.Run("accepts a legal assignment", func(t *testing.T) {
		prob := invariantProblem(t)
		asg := prob.Preassigned.Clone()
		asg.Grant("w1", types.SectionRef{TaskID: "taskA", Section: 1})
		asg.Grant("w2", types.SectionRef{TaskID: "taskA", Section: 2})

		require.NoError(t, CheckInvariants(prob, asg))
	})

	t.Run("rejects double-granted sections", func(t *testing.T) {
		prob := invariantProblem(t)
		asg := prob.Preassigned.Clone()
		asg.Grant("w1", types.SectionRef{TaskID: "taskA", Section: 1})
		asg.Grant("w2", types.SectionRef{TaskID: "taskA", Section: 1})

		err := CheckInvariants(prob, asg)

		require.ErrorIs(t, err, types.ErrInvariantViolation)
		require.ErrorContains(t, err, "taskA#1")
	})

	t.Run("rejects section index beyond capacity", func(t *testing.T) {
		prob := invariantProblem(t)
		asg := prob.Preassigned.Clone()
		asg.Grant("w1", types.SectionRef{TaskID: "taskA", Section: 3})

		require.ErrorIs(t, CheckInvariants(prob, asg), types.ErrInvariantViolation)
	})

	t.Run("rejects a blown section budget", func(t *testing.T) {
		prob := invariantProblem(t)
		asg := prob.Preassigned.Clone()
		asg.Grant("w2", types.SectionRef{TaskID: "taskA", Section: 1})
		asg.Grant("w2", types.SectionRef{TaskID: "taskA", Section: 2})

		require.ErrorIs(t, CheckInvariants(prob, asg), types.ErrInvariantViolation)
	})

	t.Run("rejects too many distinct tasks", func(t *testing.T) {
		workers := []types.Worker{
			{ID: "w1", Preferences: []string{"taskA", "taskB", "taskC"}, MaxSections: 3},
		}
		tasks := []types.Task{
			{ID: "taskA", Capacity: 1},
			{ID: "taskB", Capacity: 1},
			{ID: "taskC", Capacity: 1},
		}
		prob, err := PreassignDirectors(workers, tasks)
		require.NoError(t, err)

		asg := make(types.Assignment)
		asg.Grant("w1", types.SectionRef{TaskID: "taskA", Section: 1})
		asg.Grant("w1", types.SectionRef{TaskID: "taskB", Section: 1})
		asg.Grant("w1", types.SectionRef{TaskID: "taskC", Section: 1})

		require.ErrorIs(t, CheckInvariants(prob, asg), types.ErrInvariantViolation)
	})

	t.Run("rejects a dropped director grant", func(t *testing.T) {
		prob := invariantProblem(t)
		asg := make(types.Assignment) // director grant missing

		err := CheckInvariants(prob, asg)

		require.ErrorIs(t, err, types.ErrInvariantViolation)
		require.ErrorContains(t, err, "boss")
	})

	t.Run("rejects grants for unknown workers", func(t *testing.T) {
		prob := invariantProblem(t)
		asg := prob.Preassigned.Clone()
		asg.Grant("ghost", types.SectionRef{TaskID: "taskA", Section: 1})

		require.ErrorIs(t, CheckInvariants(prob, asg), types.ErrInvariantViolation)
	})
}
