package model

import (
	"fmt"

	"github.com/speters9/JobMatch/types"
)

// CheckInvariants verifies a candidate Assignment against the constraint
// model. Any failure is reported as a wrapped types.ErrInvariantViolation:
// the Matcher treats this as an internal solver defect, never as bad input.
//
// Checked invariants:
//  1. Every section is assigned to at most one worker, and every section
//     index lies within its task's capacity.
//  2. Per worker, total assigned sections <= that worker's section budget.
//  3. Per worker, distinct task count <= the worker's unique cap.
//  4. Every designated director holds at least one section of their task.
//
// Invariant 5 (preference membership) is solver-specific fallback behavior
// and is asserted in solver tests rather than here.
//
// Parameters:
//   - prob: The problem the assignment was produced for
//   - asg: Candidate assignment to verify
//
// Returns:
//   - error: First violation found, wrapping types.ErrInvariantViolation;
//     nil when all invariants hold
func CheckInvariants(prob *types.Problem, asg types.Assignment) error {
	held := make(map[types.SectionRef]string)

	for workerID, refs := range asg {
		worker, ok := prob.WorkerByID(workerID)
		if !ok {
			return fmt.Errorf("%w: grant for unknown worker %q", types.ErrInvariantViolation, workerID)
		}

		if len(refs) > worker.MaxSections {
			return fmt.Errorf("%w: worker %s holds %d sections, budget %d",
				types.ErrInvariantViolation, workerID, len(refs), worker.MaxSections)
		}

		if distinct := asg.DistinctTasks(workerID); distinct > worker.UniqueCap() {
			return fmt.Errorf("%w: worker %s holds %d distinct tasks, cap %d",
				types.ErrInvariantViolation, workerID, distinct, worker.UniqueCap())
		}

		for _, ref := range refs {
			task, ok := prob.TaskByID(ref.TaskID)
			if !ok {
				return fmt.Errorf("%w: grant for unknown task %q", types.ErrInvariantViolation, ref.TaskID)
			}
			if ref.Section < 1 || ref.Section > task.Capacity {
				return fmt.Errorf("%w: section %s outside capacity %d",
					types.ErrInvariantViolation, ref, task.Capacity)
			}
			if holder, dup := held[ref]; dup {
				return fmt.Errorf("%w: section %s granted to both %s and %s",
					types.ErrInvariantViolation, ref, holder, workerID)
			}
			held[ref] = workerID
		}
	}

	for _, t := range prob.Tasks {
		if t.Director == "" {
			continue
		}
		if asg.CountFor(t.Director, t.ID) < 1 {
			return fmt.Errorf("%w: director %s holds no section of %s",
				types.ErrInvariantViolation, t.Director, t.ID)
		}
	}

	return nil
}
