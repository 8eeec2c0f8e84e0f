package types

import (
	"fmt"
	"sort"
)

// SectionRef identifies one allocatable section of a task.
//
// Section indices are 1-based and only meaningful within their task; sections
// of one task are interchangeable.
type SectionRef struct {
	TaskID  string `yaml:"taskId"`
	Section int    `yaml:"section"`
}

// String returns "taskID#section" for logging and error messages.
func (s SectionRef) String() string {
	return fmt.Sprintf("%s#%d", s.TaskID, s.Section)
}

// Compare orders SectionRefs by task ID, then by section index.
func (s SectionRef) Compare(o SectionRef) int {
	if s.TaskID != o.TaskID {
		if s.TaskID < o.TaskID {
			return -1
		}

		return 1
	}

	switch {
	case s.Section < o.Section:
		return -1
	case s.Section > o.Section:
		return 1
	default:
		return 0
	}
}

// Assignment maps a Worker ID to the ordered sections granted to it.
//
// An Assignment is produced fresh by each solve and owned by the caller on
// return; solvers hold no longer-lived state.
type Assignment map[string][]SectionRef

// Grant appends a section to the worker's grant list.
func (a Assignment) Grant(workerID string, ref SectionRef) {
	a[workerID] = append(a[workerID], ref)
}

// Sections returns the total number of sections granted to the worker.
func (a Assignment) Sections(workerID string) int {
	return len(a[workerID])
}

// CountFor returns how many sections of taskID the worker holds.
func (a Assignment) CountFor(workerID, taskID string) int {
	n := 0
	for _, ref := range a[workerID] {
		if ref.TaskID == taskID {
			n++
		}
	}

	return n
}

// DistinctTasks returns the number of distinct tasks the worker holds.
func (a Assignment) DistinctTasks(workerID string) int {
	seen := make(map[string]struct{}, len(a[workerID]))
	for _, ref := range a[workerID] {
		seen[ref.TaskID] = struct{}{}
	}

	return len(seen)
}

// TotalSections returns the number of sections granted across all workers.
func (a Assignment) TotalSections() int {
	n := 0
	for _, refs := range a {
		n += len(refs)
	}

	return n
}

// Workers returns the worker IDs present in the assignment, sorted.
func (a Assignment) Workers() []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Clone returns a deep copy of the assignment.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for id, refs := range a {
		out[id] = append([]SectionRef(nil), refs...)
	}

	return out
}
