package testing

import "github.com/speters9/JobMatch/types"

// SmallProblem returns two workers with non-conflicting top preferences over
// two single-section tasks; every strategy should assign both workers their
// first choice.
func SmallProblem() ([]types.Worker, []types.Task) {
	workers := []types.Worker{
		{ID: "w1", Preferences: []string{"taskA"}, MaxSections: 1, Priority: 1},
		{ID: "w2", Preferences: []string{"taskB"}, MaxSections: 1, Priority: 2},
	}
	tasks := []types.Task{
		{ID: "taskA", Capacity: 1},
		{ID: "taskB", Capacity: 1},
	}

	return workers, tasks
}

// ContestedProblem returns three workers competing over two tasks with three
// total sections: taskA is contested between w1 and w2 while w3 prefers
// taskB. Useful for exercising priority resolution and weight optimality.
func ContestedProblem() ([]types.Worker, []types.Task) {
	workers := []types.Worker{
		{ID: "w1", Preferences: []string{"taskA", "taskB"}, MaxSections: 2, Priority: 1},
		{ID: "w2", Preferences: []string{"taskA"}, MaxSections: 2, Priority: 2},
		{ID: "w3", Preferences: []string{"taskB", "taskA"}, MaxSections: 2, Priority: 3},
	}
	tasks := []types.Task{
		{ID: "taskA", Capacity: 2},
		{ID: "taskB", Capacity: 1},
	}

	return workers, tasks
}

// DirectorProblem returns an instance with a designated director whose grant
// must survive every strategy untouched.
func DirectorProblem() ([]types.Worker, []types.Task) {
	workers := []types.Worker{
		{ID: "boss", Preferences: []string{"taskB"}, MaxSections: 2, Priority: 1},
		{ID: "w2", Preferences: []string{"taskA", "taskB"}, MaxSections: 2, Priority: 2},
		{ID: "w3", Preferences: []string{"taskA"}, MaxSections: 1, Priority: 3},
	}
	tasks := []types.Task{
		{ID: "taskA", Capacity: 2, Director: "boss"},
		{ID: "taskB", Capacity: 2},
	}

	return workers, tasks
}
