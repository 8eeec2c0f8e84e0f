package solver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/speters9/JobMatch/internal/logging"
	"github.com/speters9/JobMatch/internal/lp"
	"github.com/speters9/JobMatch/internal/metrics"
	"github.com/speters9/JobMatch/model"
	"github.com/speters9/JobMatch/types"
)

const (
	// indicatorPenalty nudges unused (worker, task) indicators to zero so
	// they never consume distinct-task slack spuriously.
	indicatorPenalty = 1e-6

	// perturbScale bounds the multiplicative jitter applied in perturbed
	// mode: small enough to never reorder distinct weights, large enough to
	// break exact ties between symmetric optima.
	perturbScale = 1e-3
)

// LinearProgram implements the integer-programming strategy: one binary
// variable per eligible (worker, task, section) triple plus one indicator per
// (worker, task) pair, maximized over preference weights by branch-and-bound.
type LinearProgram struct {
	seniorityWeighted bool
	perturb           bool
	seed              uint64
	maxNodes          int
	logger            types.Logger
	metrics           types.SolverProgressMetrics
}

var _ types.Solver = (*LinearProgram)(nil)

// LinearProgramOption configures a LinearProgram solver.
type LinearProgramOption func(*LinearProgram)

// NewLinearProgram creates a new integer-programming solver.
//
// Parameters:
//   - opts: Optional configuration (WithPerturbation, WithLPSeniorityWeighting,
//     WithMaxNodes, WithLPLogger, WithLPMetrics)
//
// Returns:
//   - *LinearProgram: Initialized solver ready for use
func NewLinearProgram(opts ...LinearProgramOption) *LinearProgram {
	s := &LinearProgram{
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// WithPerturbation enables seeded multiplicative jitter on objective weights.
//
// Multiple optimal assignments are common when workers share preferences; the
// jitter makes the solver pick one of them deterministically per seed instead
// of systematically favoring low variable indices.
func WithPerturbation(seed uint64) LinearProgramOption {
	return func(s *LinearProgram) {
		s.perturb = true
		s.seed = seed
	}
}

// WithLPSeniorityWeighting adds a priority-derived bonus to objective weights.
func WithLPSeniorityWeighting(enabled bool) LinearProgramOption {
	return func(s *LinearProgram) {
		s.seniorityWeighted = enabled
	}
}

// WithMaxNodes caps branch-and-bound nodes; past the cap the solver returns
// the best incumbent with StatusPartial.
func WithMaxNodes(n int) LinearProgramOption {
	return func(s *LinearProgram) {
		s.maxNodes = n
	}
}

// WithLPLogger sets the logger used for solve diagnostics.
func WithLPLogger(logger types.Logger) LinearProgramOption {
	return func(s *LinearProgram) {
		s.logger = logger
	}
}

// WithLPMetrics sets the collector for branch-node metrics.
func WithLPMetrics(m types.SolverProgressMetrics) LinearProgramOption {
	return func(s *LinearProgram) {
		s.metrics = m
	}
}

// Strategy returns types.StrategyLinearProgramming.
func (s *LinearProgram) Strategy() types.Strategy {
	return types.StrategyLinearProgramming
}

// lpVar ties an assignment variable index back to its (worker, section)
// meaning.
type lpVar struct {
	workerID string
	ref      types.SectionRef
	weight   float64
}

// Solve formulates and maximizes the binary program.
//
// Director grants are fixed before formulation: they are excluded from the
// open sections and already debited from budgets, so the program only decides
// the remainder. Infeasibility is reported as ErrInfeasible, a legitimate
// outcome the caller may answer with a different strategy.
//
// Parameters:
//   - ctx: Cancellation; a cancelled search keeps the best incumbent and
//     returns it with StatusPartial
//   - prob: Validated, director-preassigned problem
//
// Returns:
//   - *types.Result: Optimal (or best-incumbent) assignment with the LP
//     objective as Objective
//   - error: types.ErrInfeasible (wrapped) when no integer solution exists
func (s *LinearProgram) Solve(ctx context.Context, prob *types.Problem) (*types.Result, error) {
	start := time.Now()

	m, vars, skipped := s.formulate(prob)

	sol, err := lp.SolveBinary(ctx, m, lp.Options{MaxNodes: s.maxNodes})
	if err != nil {
		if errors.Is(err, types.ErrInfeasible) {
			return nil, fmt.Errorf("linear program: %w", err)
		}

		return nil, err
	}

	asg := prob.Preassigned.Clone()
	objective := 0.0
	assigned := 0
	for i, v := range vars {
		if sol.X[i] != 1 {
			continue
		}
		asg.Grant(v.workerID, v.ref)
		objective += v.weight
		assigned++
	}

	status := types.StatusComplete
	if !sol.Complete {
		status = types.StatusPartial
	}

	s.metrics.RecordBranchNodes(sol.Nodes)
	s.logger.Debug("linear program solved",
		"variables", m.NumVars, "constraints", len(m.LE),
		"nodes", sol.Nodes, "objective", objective, "status", status)

	return &types.Result{
		Assignment: asg,
		Diagnostics: types.Diagnostics{
			Strategy:       s.Strategy(),
			Status:         status,
			Objective:      objective,
			SkippedWorkers: skipped,
			Unassigned:     prob.OpenSections() - assigned,
			Elapsed:        time.Since(start),
		},
	}, nil
}

// wtPair is a (worker, task) indicator key.
type wtPair struct {
	workerID string
	taskID   string
}

// formulate builds the binary model: assignment variables first, indicator
// variables after them, constraints in a fixed order so identical inputs
// yield identical programs.
func (s *LinearProgram) formulate(prob *types.Problem) (*lp.Model, []lpVar, []string) {
	workers := append([]types.Worker(nil), prob.Workers...)
	sort.Slice(workers, func(i, j int) bool { return workers[i].ID < workers[j].ID })

	sections := openSections(prob)

	var (
		vars      []lpVar
		skipped   []string
		active    []types.Worker          // workers with at least a budget and preferences
		byWorker  = make(map[string][]int) // worker ID -> x indices
		bySection = make(map[int][]int)    // section position -> x indices
		byPair    = make(map[wtPair][]int) // (worker, task) -> x indices
		pairOrder []wtPair
	)

	for _, w := range workers {
		budget := w.MaxSections - prob.Preassigned.Sections(w.ID)
		if len(w.Preferences) == 0 || budget <= 0 {
			skipped = append(skipped, w.ID)

			continue
		}
		active = append(active, w)

		for j, ref := range sections {
			weight, ok := model.PreferenceWeight(w, ref.TaskID, prob.Tasks, s.seniorityWeighted)
			if !ok {
				continue
			}
			if s.perturb {
				weight *= 1 + perturbScale*jitter(s.seed, w.ID, ref)
			}

			idx := len(vars)
			vars = append(vars, lpVar{workerID: w.ID, ref: ref, weight: weight})
			byWorker[w.ID] = append(byWorker[w.ID], idx)
			bySection[j] = append(bySection[j], idx)

			key := wtPair{workerID: w.ID, taskID: ref.TaskID}
			if _, seen := byPair[key]; !seen {
				pairOrder = append(pairOrder, key)
			}
			byPair[key] = append(byPair[key], idx)
		}
	}
	sort.Strings(skipped)

	// Indicator variables follow the assignment block. Tasks a worker already
	// directs are debited from its cap up front and need no indicator.
	numX := len(vars)
	yIdx := make(map[wtPair]int)
	for _, key := range pairOrder {
		if preassignedTo(prob, key.workerID, key.taskID) {
			continue
		}
		yIdx[key] = numX + len(yIdx)
	}

	m := &lp.Model{NumVars: numX + len(yIdx)}
	m.Objective = make([]float64, m.NumVars)
	for i, v := range vars {
		m.Objective[i] = v.weight
	}
	for _, idx := range yIdx {
		m.Objective[idx] = -indicatorPenalty
	}

	// Each section goes to at most one worker.
	for j := range sections {
		idxs := bySection[j]
		if len(idxs) == 0 {
			continue
		}
		m.LE = append(m.LE, sumLE(idxs, 1))
	}

	// Each worker stays within its remaining section budget.
	for _, w := range active {
		budget := w.MaxSections - prob.Preassigned.Sections(w.ID)
		m.LE = append(m.LE, sumLE(byWorker[w.ID], float64(budget)))
	}

	// Link x to y, then cap distinct tasks per worker.
	for _, key := range pairOrder {
		y, hasY := yIdx[key]
		if !hasY {
			continue
		}
		for _, x := range byPair[key] {
			m.LE = append(m.LE, lp.Constraint{
				Coeffs: map[int]float64{x: 1, y: -1},
				RHS:    0,
			})
		}
	}
	for _, w := range active {
		coeffs := make(map[int]float64)
		for _, key := range pairOrder {
			if key.workerID != w.ID {
				continue
			}
			if y, hasY := yIdx[key]; hasY {
				coeffs[y] = 1
			}
		}
		if len(coeffs) == 0 {
			continue
		}
		slack := w.UniqueCap() - prob.Preassigned.DistinctTasks(w.ID)
		if slack < 0 {
			slack = 0
		}
		m.LE = append(m.LE, lp.Constraint{Coeffs: coeffs, RHS: float64(slack)})
	}

	return m, vars, skipped
}

func preassignedTo(prob *types.Problem, workerID, taskID string) bool {
	for _, ref := range prob.Preassigned[workerID] {
		if ref.TaskID == taskID {
			return true
		}
	}

	return false
}

func sumLE(idxs []int, rhs float64) lp.Constraint {
	coeffs := make(map[int]float64, len(idxs))
	for _, idx := range idxs {
		coeffs[idx] = 1
	}

	return lp.Constraint{Coeffs: coeffs, RHS: rhs}
}

// jitter derives a deterministic value in [0, 1) from the seed and the
// variable's identity.
func jitter(seed uint64, workerID string, ref types.SectionRef) float64 {
	h := xxh3.HashStringSeed(fmt.Sprintf("%s|%s", workerID, ref), seed)

	return float64(h%1_000_000) / 1_000_000
}
