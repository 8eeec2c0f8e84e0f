package types

import (
	"context"
	"fmt"
	"time"
)

// Strategy selects one of the built-in solving algorithms.
type Strategy string

// Built-in solving strategies.
const (
	// StrategyStableMarriage runs the sequential, priority-ordered proposal
	// algorithm with greedy multi-section extension.
	StrategyStableMarriage Strategy = "stable_marriage"

	// StrategyBipartiteMatching factorizes workers and tasks into atomic
	// nodes and runs maximum-weight bipartite matching.
	StrategyBipartiteMatching Strategy = "bipartite_matching"

	// StrategyLinearProgramming formulates and solves a binary integer
	// program over the factorized sections.
	StrategyLinearProgramming Strategy = "linear_programming"

	// StrategyGeneticAlgorithm evolves a population of full assignments
	// under a constraint-encoding fitness function.
	StrategyGeneticAlgorithm Strategy = "genetic_algorithm"
)

// Strategies returns all built-in strategies in their canonical order.
func Strategies() []Strategy {
	return []Strategy{
		StrategyStableMarriage,
		StrategyBipartiteMatching,
		StrategyLinearProgramming,
		StrategyGeneticAlgorithm,
	}
}

// ParseStrategy converts a string into a Strategy.
//
// Returns:
//   - Strategy: Parsed strategy value
//   - error: ErrUnknownStrategy (wrapped with the offending value) for
//     unsupported or misspelled input
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyStableMarriage, StrategyBipartiteMatching,
		StrategyLinearProgramming, StrategyGeneticAlgorithm:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Problem is the validated, director-preassigned input every solver consumes.
//
// The Matcher builds one Problem per solve call; solvers treat all fields as
// read-only and clone Preassigned before extending it.
type Problem struct {
	// Workers are the validated worker records with Priority filled in.
	Workers []Worker

	// Tasks are the validated task records.
	Tasks []Task

	// Preassigned holds the director grants applied before solving.
	// Solvers must respect and never overwrite these grants.
	Preassigned Assignment

	// Remaining maps Task ID to the number of sections still open after
	// director pre-assignment.
	Remaining map[string]int
}

// TaskByID returns the task with the given ID, or false if absent.
func (p *Problem) TaskByID(id string) (Task, bool) {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t, true
		}
	}

	return Task{}, false
}

// WorkerByID returns the worker with the given ID, or false if absent.
func (p *Problem) WorkerByID(id string) (Worker, bool) {
	for _, w := range p.Workers {
		if w.ID == id {
			return w, true
		}
	}

	return Worker{}, false
}

// OpenSections returns the total number of sections still open.
func (p *Problem) OpenSections() int {
	n := 0
	for _, c := range p.Remaining {
		n += c
	}

	return n
}

// Status indicates whether a solve ran to its natural completion.
type Status string

const (
	// StatusComplete means the solver terminated by its own convergence
	// criterion (proposal exhaustion, optimality, fitness plateau).
	StatusComplete Status = "complete"

	// StatusPartial means the solver hit an external bound (generation cap,
	// node limit, cancellation) and returned the best assignment seen.
	// Partial results satisfy all assignment invariants; Partial is a
	// convergence flag, not an error.
	StatusPartial Status = "partial"
)

// Diagnostics carries per-solver metadata alongside an Assignment.
//
// Fields are populated only where meaningful for the strategy that ran:
// Rounds for stable marriage, Objective for bipartite matching and linear
// programming, Generations/BestFitness/FitnessHistory for the genetic solver.
type Diagnostics struct {
	// RunID uniquely identifies this solve invocation.
	RunID string

	// Strategy is the algorithm that produced the result.
	Strategy Strategy

	// Status reports whether the solver converged or was bounded.
	Status Status

	// Rounds is the number of proposal rounds run (stable marriage).
	Rounds int

	// Generations is the number of generations evaluated (genetic).
	Generations int

	// Objective is the solver's own objective value (matching weight or LP
	// objective).
	Objective float64

	// BestFitness is the fitness of the returned individual (genetic).
	BestFitness float64

	// FitnessHistory records the best fitness per generation (genetic).
	FitnessHistory []float64

	// SkippedWorkers lists workers skipped for empty preferences or zero
	// section budget (reported, not fatal).
	SkippedWorkers []string

	// Unassigned is the number of sections left open by the solver.
	// A legitimate outcome when supply exceeds demand.
	Unassigned int

	// Elapsed is the wall-clock duration of the solve.
	Elapsed time.Duration
}

// Result is the canonical output of every solver.
type Result struct {
	Assignment  Assignment
	Diagnostics Diagnostics
}

// Solver is the common contract implemented by all four strategies.
//
// Solver implementations should:
//   - Be deterministic given the same Problem and seed
//   - Respect Problem.Preassigned and never overwrite director grants
//   - Honor context cancellation on long runs, returning best-so-far with
//     StatusPartial rather than running unbounded
//   - Hold no state across Solve calls
type Solver interface {
	// Strategy returns the strategy this solver implements.
	Strategy() Strategy

	// Solve computes a candidate Assignment for the given problem.
	//
	// Parameters:
	//   - ctx: Context for cancellation of long-running solves
	//   - prob: Validated, director-preassigned problem instance
	//
	// Returns:
	//   - *Result: Candidate assignment with per-solver diagnostics
	//   - error: ErrInfeasible when no feasible assignment exists, nil otherwise
	Solve(ctx context.Context, prob *Problem) (*Result, error)
}
