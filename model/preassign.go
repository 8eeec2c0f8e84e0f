package model

import (
	"fmt"
	"sort"

	"github.com/speters9/JobMatch/types"
)

// PreassignDirectors grants each designated director one section of their
// task before any solver runs.
//
// Processing is deterministic: tasks are visited in ID order, so repeated
// calls over the same input produce the same partial Assignment. Each grant
// consumes one unit of the task's remaining capacity and one unit of the
// director's section budget.
//
// The returned Problem is the common starting state every solver must respect
// and never overwrite.
//
// Parameters:
//   - workers: Validated worker records (Priority already filled in)
//   - tasks: Validated task records
//
// Returns:
//   - *types.Problem: Problem with Preassigned grants and Remaining capacities
//   - error: ErrDirectorBudget (wrapped) when a director's budget cannot
//     cover their directorship
func PreassignDirectors(workers []types.Worker, tasks []types.Task) (*types.Problem, error) {
	prob := &types.Problem{
		Workers:     workers,
		Tasks:       tasks,
		Preassigned: make(types.Assignment),
		Remaining:   make(map[string]int, len(tasks)),
	}

	for _, t := range tasks {
		prob.Remaining[t.ID] = t.Capacity
	}

	ordered := append([]types.Task(nil), tasks...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, t := range ordered {
		if t.Director == "" {
			continue
		}

		director, ok := prob.WorkerByID(t.Director)
		if !ok {
			// Validate catches unknown directors; guard for direct callers.
			return nil, fmt.Errorf("%w: task %s names unknown director %q",
				types.ErrInvalidInput, t.ID, t.Director)
		}

		if director.MaxSections-prob.Preassigned.Sections(director.ID) < 1 {
			return nil, fmt.Errorf("%w: worker %s cannot take a section of %s (budget %d)",
				types.ErrDirectorBudget, director.ID, t.ID, director.MaxSections)
		}
		if prob.Preassigned.DistinctTasks(director.ID) >= director.UniqueCap() {
			return nil, fmt.Errorf("%w: worker %s directs more than %d tasks",
				types.ErrDirectorBudget, director.ID, director.UniqueCap())
		}

		section := t.Capacity - prob.Remaining[t.ID] + 1
		prob.Preassigned.Grant(director.ID, types.SectionRef{TaskID: t.ID, Section: section})
		prob.Remaining[t.ID]--
	}

	return prob, nil
}
