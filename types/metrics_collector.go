package types

// MetricsCollector defines methods for recording solve metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods may be called from solver goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces so callers can
// implement only the slices they care about and embed a nop for the rest.
type MetricsCollector interface {
	SolveMetrics
	SolverProgressMetrics
}

// SolveMetrics defines metrics recorded once per Solve call by the Matcher.
type SolveMetrics interface {
	// RecordSolveDuration records the wall-clock duration of a solve.
	//
	// Parameters:
	//   - strategy: Strategy label ("stable_marriage", "linear_programming", ...)
	//   - seconds: Time taken in seconds
	RecordSolveDuration(strategy string, seconds float64)

	// RecordSolveOutcome records the outcome of a solve attempt.
	//
	// Parameters:
	//   - strategy: Strategy label
	//   - outcome: One of "complete", "partial", "infeasible", "invalid_input",
	//     "invariant_violation", "error"
	RecordSolveOutcome(strategy string, outcome string)

	// RecordObjective records the solver's own objective value (gauge).
	RecordObjective(strategy string, value float64)

	// RecordUnassignedSections sets the number of sections left open (gauge).
	RecordUnassignedSections(strategy string, count int)
}

// SolverProgressMetrics defines metrics recorded by individual solvers.
type SolverProgressMetrics interface {
	// RecordProposalRounds records proposals processed by stable marriage.
	RecordProposalRounds(rounds int)

	// RecordGenerations records generations evaluated by the genetic solver.
	RecordGenerations(generations int)

	// RecordBranchNodes records branch-and-bound nodes explored by the LP solver.
	RecordBranchNodes(nodes int)
}
