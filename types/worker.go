package types

// DefaultMaxUniqueTasks is the distinct-task cap applied when a Worker does
// not specify one. Every built-in solver enforces the same cap.
const DefaultMaxUniqueTasks = 2

// Worker is an assignable participant with an ordered preference list and a
// section budget.
//
// Workers are read-only inputs: solvers keep their own bookkeeping and never
// mutate the Worker values handed to Solve.
type Worker struct {
	// ID uniquely identifies the worker.
	ID string `yaml:"id"`

	// Preferences is the ordered list of Task IDs, strongest first.
	// Rank is the 1-based position in this list.
	Preferences []string `yaml:"preferences"`

	// MaxSections is the hard cap on total sections this worker may hold.
	MaxSections int `yaml:"maxSections"`

	// MaxUniqueTasks caps the number of distinct tasks this worker may hold.
	// Zero means DefaultMaxUniqueTasks.
	MaxUniqueTasks int `yaml:"maxUniqueTasks"`

	// Priority is the seniority rank used as a tie-break (1 = most senior).
	// Zero means "derive from input order"; the Matcher fills it in before
	// any solver runs so solvers never rely on incidental list position.
	Priority int `yaml:"priority"`
}

// Rank returns the 1-based preference rank of taskID, and whether the task
// appears in the worker's preference list at all.
func (w Worker) Rank(taskID string) (int, bool) {
	for i, id := range w.Preferences {
		if id == taskID {
			return i + 1, true
		}
	}

	return 0, false
}

// UniqueCap returns the effective distinct-task cap for this worker.
func (w Worker) UniqueCap() int {
	if w.MaxUniqueTasks > 0 {
		return w.MaxUniqueTasks
	}

	return DefaultMaxUniqueTasks
}

// Task is a unit of demand with a number of interchangeable sections.
type Task struct {
	// ID uniquely identifies the task.
	ID string `yaml:"id"`

	// Name is the human-readable task name (defaults to ID when empty).
	Name string `yaml:"name"`

	// Capacity is the total number of sections available (must be positive).
	Capacity int `yaml:"capacity"`

	// Director optionally names a Worker that must receive exactly one
	// section of this task before general solving begins.
	Director string `yaml:"director"`
}

// DisplayName returns Name, falling back to ID when Name is empty.
func (t Task) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}

	return t.ID
}
