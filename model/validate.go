package model

import (
	"fmt"
	"strings"

	"github.com/speters9/JobMatch/types"
)

// Violation describes a single validation failure.
type Violation struct {
	// Subject is the worker or task ID the violation concerns.
	Subject string

	// Detail is a human-readable description of the failure.
	Detail string
}

// String returns "subject: detail".
func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Subject, v.Detail)
}

// Validate checks worker and task records against the constraint model.
//
// Rules:
//   - No duplicate worker or task identifiers
//   - Every preference references a known task
//   - Every director references a known worker
//   - Task capacities are positive
//   - Worker section budgets are non-negative
//
// A worker with an empty preference list or a zero budget is NOT a violation;
// such workers are skipped (and reported) by the solvers.
//
// Parameters:
//   - workers: Worker records to validate
//   - tasks: Task records to validate
//
// Returns:
//   - []Violation: All failures found, empty when the input is valid
func Validate(workers []types.Worker, tasks []types.Task) []Violation {
	var violations []Violation

	taskIDs := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			violations = append(violations, Violation{Subject: t.DisplayName(), Detail: "task has empty ID"})

			continue
		}
		if _, dup := taskIDs[t.ID]; dup {
			violations = append(violations, Violation{Subject: t.ID, Detail: "duplicate task ID"})
		}
		taskIDs[t.ID] = struct{}{}

		if t.Capacity <= 0 {
			violations = append(violations, Violation{
				Subject: t.ID,
				Detail:  fmt.Sprintf("capacity must be positive, got %d", t.Capacity),
			})
		}
	}

	workerIDs := make(map[string]struct{}, len(workers))
	for _, w := range workers {
		if w.ID == "" {
			violations = append(violations, Violation{Subject: "<worker>", Detail: "worker has empty ID"})

			continue
		}
		if _, dup := workerIDs[w.ID]; dup {
			violations = append(violations, Violation{Subject: w.ID, Detail: "duplicate worker ID"})
		}
		workerIDs[w.ID] = struct{}{}

		if w.MaxSections < 0 {
			violations = append(violations, Violation{
				Subject: w.ID,
				Detail:  fmt.Sprintf("max sections must be non-negative, got %d", w.MaxSections),
			})
		}

		for _, pref := range w.Preferences {
			if _, ok := taskIDs[pref]; !ok {
				violations = append(violations, Violation{
					Subject: w.ID,
					Detail:  fmt.Sprintf("preference references unknown task %q", pref),
				})
			}
		}
	}

	for _, t := range tasks {
		if t.Director == "" {
			continue
		}
		if _, ok := workerIDs[t.Director]; !ok {
			violations = append(violations, Violation{
				Subject: t.ID,
				Detail:  fmt.Sprintf("director references unknown worker %q", t.Director),
			})
		}
	}

	return violations
}

// ViolationsError wraps a violation list into a single error chained to
// types.ErrInvalidInput, so callers can errors.Is-check the class and still
// read every failure from the message.
//
// Returns nil when the list is empty.
func ViolationsError(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}

	details := make([]string, len(violations))
	for i, v := range violations {
		details[i] = v.String()
	}

	return fmt.Errorf("%w: %s", types.ErrInvalidInput, strings.Join(details, "; "))
}
