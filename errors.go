package jobmatch

import "github.com/speters9/JobMatch/types"

// Re-export sentinel errors from the types subpackage so callers can match
// with errors.Is without importing it.
var (
	// ErrInvalidConfig indicates an invalid Config value.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrUnknownStrategy indicates an unsupported or misspelled strategy.
	ErrUnknownStrategy = types.ErrUnknownStrategy

	// ErrInvalidInput indicates worker/task records that fail validation.
	ErrInvalidInput = types.ErrInvalidInput

	// ErrDirectorBudget indicates a director whose section budget cannot
	// cover their directorship.
	ErrDirectorBudget = types.ErrDirectorBudget

	// ErrInfeasible indicates the solver found no feasible assignment; a
	// legitimate outcome the caller may answer with a different strategy.
	ErrInfeasible = types.ErrInfeasible

	// ErrInvariantViolation indicates a solver returned an assignment that
	// breaks the shared invariants; always an internal defect.
	ErrInvariantViolation = types.ErrInvariantViolation
)
