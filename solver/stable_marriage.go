package solver

import (
	"context"
	"sort"
	"time"

	"github.com/speters9/JobMatch/internal/logging"
	"github.com/speters9/JobMatch/internal/metrics"
	"github.com/speters9/JobMatch/types"
)

// StableMarriage implements the sequential proposal strategy: workers propose
// in priority order, tasks hold proposals tentatively and evict weaker holders,
// and a worker that secures a task greedily extends into further sections of
// the same task before moving down its preference list.
type StableMarriage struct {
	logger  types.Logger
	metrics types.SolverProgressMetrics
}

var _ types.Solver = (*StableMarriage)(nil)

// StableMarriageOption configures a StableMarriage solver.
type StableMarriageOption func(*StableMarriage)

// NewStableMarriage creates a new stable-marriage solver.
//
// The solver has no algorithmic knobs; its outcome is fully determined by
// worker priorities and preference order.
//
// Parameters:
//   - opts: Optional configuration (WithStableMarriageLogger, WithStableMarriageMetrics)
//
// Returns:
//   - *StableMarriage: Initialized solver ready for use
func NewStableMarriage(opts ...StableMarriageOption) *StableMarriage {
	sm := &StableMarriage{
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(sm)
		}
	}

	return sm
}

// WithStableMarriageLogger sets the logger used for solve diagnostics.
func WithStableMarriageLogger(logger types.Logger) StableMarriageOption {
	return func(sm *StableMarriage) {
		sm.logger = logger
	}
}

// WithStableMarriageMetrics sets the collector for proposal-round metrics.
func WithStableMarriageMetrics(m types.SolverProgressMetrics) StableMarriageOption {
	return func(sm *StableMarriage) {
		sm.metrics = m
	}
}

// Strategy returns types.StrategyStableMarriage.
func (sm *StableMarriage) Strategy() types.Strategy {
	return types.StrategyStableMarriage
}

// hold is one tentatively granted section of a task.
type hold struct {
	worker   int // index into the sorted worker arena
	priority int
}

// smState is the arena-style bookkeeping for one solve: indexed arrays keyed
// by worker position, no pointer-linked structures, so runs replay
// deterministically.
type smState struct {
	workers  []types.Worker
	budget   []int             // sections each worker may still take
	distinct []map[string]bool // tasks each worker currently holds (incl. preassigned)
	rejected []map[string]bool // tasks that have rejected each worker
	holds    map[string][]hold // task ID -> tentative section holds
	open     map[string]int    // task ID -> sections available to the solver
	skip     []bool            // workers excluded up front
	rounds   int
}

// Solve runs proposal rounds to exhaustion.
//
// Each round processes every worker once, in priority order (ties broken by
// ID): the worker proposes to its best-ranked task that has not rejected it
// and fits its distinct-task cap, and on acceptance greedily extends into
// further free sections of the same task. A full task holds proposals
// tentatively: it evicts its weakest holder when the proposer out-ranks it,
// and the evicted worker simply proposes again in later rounds. The loop ends
// when a full round produces no proposals, which always happens: a worker
// never re-proposes to a task that rejected it, and every eviction strictly
// strengthens the holder of a section.
//
// Parameters:
//   - ctx: Cancellation; checked between rounds
//   - prob: Validated, director-preassigned problem
//
// Returns:
//   - *types.Result: Stable assignment with proposal-round diagnostics
//   - error: Always nil; cancellation yields StatusPartial, not an error
func (sm *StableMarriage) Solve(ctx context.Context, prob *types.Problem) (*types.Result, error) {
	start := time.Now()
	st, skipped := sm.newState(prob)

	status := types.StatusComplete
	for {
		if ctx.Err() != nil {
			status = types.StatusPartial

			break
		}

		if !sm.runRound(st) {
			break
		}
	}

	asg := sm.project(st, prob)
	unassigned := prob.OpenSections() - (asg.TotalSections() - prob.Preassigned.TotalSections())

	sm.metrics.RecordProposalRounds(st.rounds)
	sm.logger.Debug("stable marriage converged",
		"rounds", st.rounds, "unassigned", unassigned, "skipped", len(skipped))

	return &types.Result{
		Assignment: asg,
		Diagnostics: types.Diagnostics{
			Strategy:       sm.Strategy(),
			Status:         status,
			Rounds:         st.rounds,
			SkippedWorkers: skipped,
			Unassigned:     unassigned,
			Elapsed:        time.Since(start),
		},
	}, nil
}

// newState builds the arena, workers sorted into priority order.
func (sm *StableMarriage) newState(prob *types.Problem) (*smState, []string) {
	workers := append([]types.Worker(nil), prob.Workers...)
	sort.Slice(workers, func(i, j int) bool {
		if workers[i].Priority != workers[j].Priority {
			return workers[i].Priority < workers[j].Priority
		}

		return workers[i].ID < workers[j].ID
	})

	st := &smState{
		workers:  workers,
		budget:   make([]int, len(workers)),
		distinct: make([]map[string]bool, len(workers)),
		rejected: make([]map[string]bool, len(workers)),
		holds:    make(map[string][]hold, len(prob.Tasks)),
		open:     make(map[string]int, len(prob.Tasks)),
		skip:     make([]bool, len(workers)),
	}
	for id, n := range prob.Remaining {
		st.open[id] = n
	}

	var skipped []string
	for i, w := range workers {
		st.budget[i] = w.MaxSections - prob.Preassigned.Sections(w.ID)
		st.distinct[i] = make(map[string]bool)
		st.rejected[i] = make(map[string]bool)
		for _, ref := range prob.Preassigned[w.ID] {
			st.distinct[i][ref.TaskID] = true
		}

		if len(w.Preferences) == 0 || st.budget[i] <= 0 {
			skipped = append(skipped, w.ID)
			st.skip[i] = true
		}
	}
	sort.Strings(skipped)

	return st, skipped
}

// runRound gives every worker one proposal in priority order and reports
// whether any were made.
func (sm *StableMarriage) runRound(st *smState) bool {
	proposed := false
	for w := range st.workers {
		if st.skip[w] || st.budget[w] <= 0 {
			continue
		}

		taskID, ok := st.nextProposal(w)
		if !ok {
			continue
		}
		proposed = true

		if !st.propose(w, taskID) {
			st.rejected[w][taskID] = true

			continue
		}

		// Greedy multi-section extension: take further free sections of the
		// same task before the next worker moves.
		for st.budget[w] > 0 && st.free(taskID) > 0 {
			st.grant(w, taskID)
		}
	}

	if proposed {
		st.rounds++
	}

	return proposed
}

// nextProposal returns the best-ranked task the worker may still propose to.
func (st *smState) nextProposal(w int) (string, bool) {
	uniqueCap := st.workers[w].UniqueCap()
	for _, taskID := range st.workers[w].Preferences {
		if st.rejected[w][taskID] {
			continue
		}
		if _, tracked := st.open[taskID]; !tracked {
			continue
		}
		if !st.distinct[w][taskID] && len(st.distinct[w]) >= uniqueCap {
			continue
		}

		return taskID, true
	}

	return "", false
}

// free returns how many sections of the task are unheld.
func (st *smState) free(taskID string) int {
	return st.open[taskID] - len(st.holds[taskID])
}

// propose attempts to secure one section of taskID for worker w, evicting the
// weakest current holder when the task is full and w out-ranks it.
func (st *smState) propose(w int, taskID string) bool {
	if st.free(taskID) > 0 {
		st.grant(w, taskID)

		return true
	}

	victim := st.weakestHolder(taskID)
	if victim == -1 || st.holds[taskID][victim].priority <= st.workers[w].Priority {
		return false
	}

	st.evict(taskID, victim)
	st.grant(w, taskID)

	return true
}

// weakestHolder returns the index into holds[taskID] of the lowest-priority
// holder (ties broken by worker ID, later ID loses), or -1 when no holds exist.
func (st *smState) weakestHolder(taskID string) int {
	weakest := -1
	for i, h := range st.holds[taskID] {
		if weakest == -1 {
			weakest = i

			continue
		}

		cur := st.holds[taskID][weakest]
		if h.priority > cur.priority ||
			(h.priority == cur.priority && st.workers[h.worker].ID > st.workers[cur.worker].ID) {
			weakest = i
		}
	}

	return weakest
}

func (st *smState) grant(w int, taskID string) {
	st.holds[taskID] = append(st.holds[taskID], hold{worker: w, priority: st.workers[w].Priority})
	st.budget[w]--
	st.distinct[w][taskID] = true
}

// evict releases one section hold; the displaced worker regains budget and
// proposes again in later rounds.
func (st *smState) evict(taskID string, idx int) {
	victim := st.holds[taskID][idx].worker
	st.holds[taskID] = append(st.holds[taskID][:idx], st.holds[taskID][idx+1:]...)

	st.budget[victim]++
	if st.countHolds(victim, taskID) == 0 {
		delete(st.distinct[victim], taskID)
	}
}

func (st *smState) countHolds(w int, taskID string) int {
	n := 0
	for _, h := range st.holds[taskID] {
		if h.worker == w {
			n++
		}
	}

	return n
}

// project converts the tentative holds into the canonical Assignment, keeping
// the director grants and numbering open sections after them in hold order.
func (sm *StableMarriage) project(st *smState, prob *types.Problem) types.Assignment {
	asg := prob.Preassigned.Clone()

	taskIDs := make([]string, 0, len(st.holds))
	for id := range st.holds {
		taskIDs = append(taskIDs, id)
	}
	sort.Strings(taskIDs)

	for _, taskID := range taskIDs {
		task, _ := prob.TaskByID(taskID)
		next := task.Capacity - prob.Remaining[taskID] + 1
		for _, h := range st.holds[taskID] {
			asg.Grant(st.workers[h.worker].ID, types.SectionRef{TaskID: taskID, Section: next})
			next++
		}
	}

	return asg
}
