package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/speters9/JobMatch/model"
	jmtest "github.com/speters9/JobMatch/testing"
	"github.com/speters9/JobMatch/types"
)

// mustProblem validates and director-preassigns the inputs the way the facade
// does before handing a Problem to a solver.
func mustProblem(t *testing.T, workers []types.Worker, tasks []types.Task) *types.Problem {
	t.Helper()

	require.Empty(t, model.Validate(workers, tasks))

	prob, err := model.PreassignDirectors(workers, tasks)
	require.NoError(t, err)

	return prob
}

// scenarioProblem is the contested three-worker instance used across the
// solver tests: two sections of taskA, one of taskB, three workers whose
// priorities and preferences force an interesting allocation.
func scenarioProblem(t *testing.T) *types.Problem {
	t.Helper()

	workers, tasks := jmtest.ContestedProblem()

	return mustProblem(t, workers, tasks)
}

// requireLegal asserts the five assignment invariants a solver must uphold.
func requireLegal(t *testing.T, prob *types.Problem, asg types.Assignment) {
	t.Helper()
	require.NoError(t, model.CheckInvariants(prob, asg))
}

// holdsTask reports whether the worker was granted at least one section of
// the task.
func holdsTask(asg types.Assignment, workerID, taskID string) bool {
	return asg.CountFor(workerID, taskID) > 0
}
