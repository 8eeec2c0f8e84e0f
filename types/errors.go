package types

import "errors"

// Sentinel errors for the JobMatch library.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). All components should use these sentinel errors for known
// error conditions and wrap them with context using fmt.Errorf("...: %w", err).
//
// The taxonomy has three classes:
//   - Configuration errors (ErrInvalidConfig, ErrUnknownStrategy,
//     ErrInvalidInput, ErrDirectorBudget): always fatal, surfaced before any
//     solver starts, never retried.
//   - ErrInfeasible: a legitimate outcome; the caller may retry with a
//     different strategy.
//   - ErrInvariantViolation: an internal defect in a solver; should never
//     occur in a correct implementation and is not user-recoverable.

// Configuration errors - surfaced by the Matcher before solving.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownStrategy is returned for unsupported or misspelled strategy values.
	ErrUnknownStrategy = errors.New("unknown solve strategy")

	// ErrInvalidInput is returned when worker/task records fail validation
	// (unknown preference IDs, unknown directors, duplicate identifiers,
	// non-positive capacities).
	ErrInvalidInput = errors.New("invalid worker/task input")

	// ErrDirectorBudget is returned when a designated director has no
	// section budget left for their own task.
	ErrDirectorBudget = errors.New("director has no section budget")
)

// Solve outcome errors.
var (
	// ErrInfeasible is returned when no feasible assignment exists, e.g.
	// total capacity below committed director assignments.
	ErrInfeasible = errors.New("no feasible assignment")

	// ErrInvariantViolation is returned when a solver's output violates the
	// assignment invariants. This indicates a programming defect, not bad input.
	ErrInvariantViolation = errors.New("assignment invariant violated")
)
