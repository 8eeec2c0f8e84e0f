package jobmatch

import "github.com/speters9/JobMatch/types"

// Re-export types from the types subpackage.
//
// This file provides a stable public API for the library's core types and
// interfaces via type aliases. Internal packages depend on `types` without
// depending on the root package, while users get `jobmatch.Worker`,
// `jobmatch.Assignment`, etc. without a second import.
type (
	Worker      = types.Worker
	Task        = types.Task
	SectionRef  = types.SectionRef
	Assignment  = types.Assignment
	Problem     = types.Problem
	Result      = types.Result
	Diagnostics = types.Diagnostics
	Status      = types.Status
	Strategy    = types.Strategy
)

// Re-export interfaces from the types subpackage for convenience.
type (
	Solver           = types.Solver
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
)

// Re-export Strategy constants from the types subpackage.
const (
	StrategyStableMarriage    = types.StrategyStableMarriage
	StrategyBipartiteMatching = types.StrategyBipartiteMatching
	StrategyLinearProgramming = types.StrategyLinearProgramming
	StrategyGeneticAlgorithm  = types.StrategyGeneticAlgorithm
)

// Re-export Status constants from the types subpackage.
const (
	StatusComplete = types.StatusComplete
	StatusPartial  = types.StatusPartial
)
