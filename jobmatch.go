package jobmatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/speters9/JobMatch/internal/logging"
	"github.com/speters9/JobMatch/internal/metrics"
	"github.com/speters9/JobMatch/model"
	"github.com/speters9/JobMatch/solver"
	"github.com/speters9/JobMatch/types"
)

// Matcher is the single entry point of the library: it validates inputs,
// pre-assigns directors, dispatches to the selected solver, and re-checks the
// returned assignment against the shared invariants.
//
// A Matcher is safe for concurrent use: solvers hold no state across Solve
// calls and every call builds its own Problem.
type Matcher struct {
	cfg     Config
	logger  Logger
	metrics MetricsCollector
	solvers map[Strategy]Solver
}

// New creates a Matcher from the given configuration.
//
// Parameters:
//   - cfg: Configuration (nil uses DefaultConfig; defaults are applied in place)
//   - opts: Optional dependencies (WithLogger, WithMetrics, WithSolver)
//
// Returns:
//   - *Matcher: Ready-to-use matcher
//   - error: ErrInvalidConfig or ErrUnknownStrategy on bad configuration
//
// Example:
//
//	cfg := jobmatch.DefaultConfig()
//	cfg.Strategy = string(jobmatch.StrategyLinearProgramming)
//	m, err := jobmatch.New(&cfg)
func New(cfg *Config, opts ...Option) (*Matcher, error) {
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	SetDefaults(cfg)

	options := &matcherOptions{
		logger:  logging.NewSlogDefault(),
		metrics: metrics.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	m := &Matcher{
		cfg:     *cfg,
		logger:  options.logger,
		metrics: options.metrics,
		solvers: make(map[Strategy]Solver, 4),
	}
	m.registerBuiltins()
	for _, s := range options.solvers {
		m.solvers[s.Strategy()] = s
	}

	if err := cfg.Validate(); err != nil {
		// A registered custom solver makes its strategy name legal even
		// though ParseStrategy does not know it.
		_, custom := m.solvers[Strategy(cfg.Strategy)]
		if !custom || !errors.Is(err, ErrUnknownStrategy) {
			return nil, err
		}
	}
	if _, ok := m.solvers[Strategy(cfg.Strategy)]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
	}

	return m, nil
}

// registerBuiltins wires the four built-in solvers from the configuration.
func (m *Matcher) registerBuiltins() {
	cfg := m.cfg

	sm := solver.NewStableMarriage(
		solver.WithStableMarriageLogger(m.logger),
		solver.WithStableMarriageMetrics(m.metrics),
	)

	bp := solver.NewBipartite(
		solver.WithSeniorityWeighting(cfg.Bipartite.SeniorityWeighted),
		solver.WithBipartiteLogger(m.logger),
	)

	lpOpts := []solver.LinearProgramOption{
		solver.WithLPSeniorityWeighting(cfg.LinearProgram.SeniorityWeighted),
		solver.WithMaxNodes(cfg.LinearProgram.MaxNodes),
		solver.WithLPLogger(m.logger),
		solver.WithLPMetrics(m.metrics),
	}
	if cfg.LinearProgram.Perturb {
		lpOpts = append(lpOpts, solver.WithPerturbation(cfg.LinearProgram.Seed))
	}
	lp := solver.NewLinearProgram(lpOpts...)

	ga := solver.NewGenetic(
		solver.WithPopulationSize(cfg.Genetic.PopulationSize),
		solver.WithGenerations(cfg.Genetic.Generations),
		solver.WithMutationRate(cfg.Genetic.MutationRate),
		solver.WithElitism(cfg.Genetic.Elitism),
		solver.WithEarlyStopping(cfg.Genetic.EarlyStopWindow, cfg.Genetic.MinFitnessDelta),
		solver.WithParallelism(cfg.Genetic.Parallelism),
		solver.WithGeneticSeed(cfg.Genetic.Seed),
		solver.WithGeneticLogger(m.logger),
		solver.WithGeneticMetrics(m.metrics),
	)

	for _, s := range []Solver{sm, bp, lp, ga} {
		m.solvers[s.Strategy()] = s
	}
}

// Solve runs the configured strategy over the given workers and tasks.
//
// See SolveWith for semantics.
func (m *Matcher) Solve(ctx context.Context, workers []Worker, tasks []Task) (*Result, error) {
	return m.SolveWith(ctx, workers, tasks, Strategy(m.cfg.Strategy))
}

// SolveWith runs one solve with an explicit strategy.
//
// The pipeline is: validate records, derive missing priorities from input
// order, pre-assign directors, dispatch to the solver, then re-check the
// returned assignment against the shared invariants. The invariant re-check
// is defensive: a violation means a solver bug, reported as
// ErrInvariantViolation rather than returned as a result.
//
// Parameters:
//   - ctx: Context for cancellation of long-running solves
//   - workers: Worker records (IDs unique, preferences referencing known tasks)
//   - tasks: Task records (IDs unique, positive capacities)
//   - strategy: Strategy to dispatch to
//
// Returns:
//   - *Result: Assignment plus per-solver diagnostics (run ID, status,
//     objective, fitness history, skipped workers, elapsed time)
//   - error: ErrUnknownStrategy, ErrInvalidInput, ErrDirectorBudget,
//     ErrInfeasible, or ErrInvariantViolation
func (m *Matcher) SolveWith(ctx context.Context, workers []Worker, tasks []Task, strategy Strategy) (*Result, error) {
	start := time.Now()

	sv, ok := m.solvers[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	if violations := model.Validate(workers, tasks); len(violations) > 0 {
		m.recordOutcome(strategy, "invalid_input", start)

		return nil, model.ViolationsError(violations)
	}

	prob, err := model.PreassignDirectors(fillPriorities(workers), tasks)
	if err != nil {
		m.recordOutcome(strategy, "invalid_input", start)

		return nil, err
	}

	m.logger.Debug("dispatching solve",
		"strategy", strategy, "workers", len(workers), "tasks", len(tasks),
		"openSections", prob.OpenSections())

	res, err := sv.Solve(ctx, prob)
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrInfeasible) {
			outcome = "infeasible"
		}
		m.recordOutcome(strategy, outcome, start)

		return nil, err
	}

	if err := model.CheckInvariants(prob, res.Assignment); err != nil {
		m.recordOutcome(strategy, "invariant_violation", start)
		m.logger.Error("solver returned an illegal assignment",
			"strategy", strategy, "error", err)

		return nil, err
	}

	res.Diagnostics.RunID = uuid.NewString()
	res.Diagnostics.Strategy = strategy

	elapsed := time.Since(start)
	m.metrics.RecordSolveDuration(string(strategy), elapsed.Seconds())
	m.metrics.RecordSolveOutcome(string(strategy), string(res.Diagnostics.Status))
	m.metrics.RecordObjective(string(strategy), res.Diagnostics.Objective)
	m.metrics.RecordUnassignedSections(string(strategy), res.Diagnostics.Unassigned)

	for _, id := range res.Diagnostics.SkippedWorkers {
		m.logger.Warn("worker skipped", "worker", id, "strategy", strategy)
	}
	m.logger.Info("solve finished",
		"strategy", strategy, "runId", res.Diagnostics.RunID,
		"status", res.Diagnostics.Status,
		"assigned", res.Assignment.TotalSections(),
		"unassigned", res.Diagnostics.Unassigned,
		"elapsed", elapsed)

	return res, nil
}

// Strategies returns the strategies this Matcher can dispatch to, including
// custom solvers, in no particular order beyond built-ins first.
func (m *Matcher) Strategies() []Strategy {
	out := make([]Strategy, 0, len(m.solvers))
	for _, s := range types.Strategies() {
		if _, ok := m.solvers[s]; ok {
			out = append(out, s)
		}
	}
	for s := range m.solvers {
		if _, err := types.ParseStrategy(string(s)); err != nil {
			out = append(out, s)
		}
	}

	return out
}

func (m *Matcher) recordOutcome(strategy Strategy, outcome string, start time.Time) {
	m.metrics.RecordSolveDuration(string(strategy), time.Since(start).Seconds())
	m.metrics.RecordSolveOutcome(string(strategy), outcome)
}

// fillPriorities derives missing priority ranks from input order, after the
// largest explicit rank, so list position never silently out-ranks an
// explicit seniority field.
func fillPriorities(workers []Worker) []Worker {
	next := 0
	for _, w := range workers {
		if w.Priority > next {
			next = w.Priority
		}
	}

	out := append([]Worker(nil), workers...)
	for i := range out {
		if out[i].Priority == 0 {
			next++
			out[i].Priority = next
		}
	}

	return out
}
