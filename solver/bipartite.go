package solver

import (
	"context"
	"sort"
	"time"

	"github.com/speters9/JobMatch/internal/hungarian"
	"github.com/speters9/JobMatch/internal/logging"
	"github.com/speters9/JobMatch/model"
	"github.com/speters9/JobMatch/types"
)

// costOffset shifts edge weights into positive costs for the minimum-cost
// matcher. It must exceed the largest possible preference weight so that every
// real edge stays cheaper than an absent one.
const costOffset = 2.0

// Bipartite implements the factorized matching strategy: each worker expands
// into one node per budgeted slot, each task into one node per open section,
// and a maximum-weight matching over preference-weighted edges decides the
// assignment.
type Bipartite struct {
	seniorityWeighted bool
	logger            types.Logger
}

var _ types.Solver = (*Bipartite)(nil)

// BipartiteOption configures a Bipartite solver.
type BipartiteOption func(*Bipartite)

// NewBipartite creates a new bipartite matching solver.
//
// Parameters:
//   - opts: Optional configuration (WithSeniorityWeighting, WithBipartiteLogger)
//
// Returns:
//   - *Bipartite: Initialized solver ready for use
func NewBipartite(opts ...BipartiteOption) *Bipartite {
	b := &Bipartite{
		logger: logging.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	return b
}

// WithSeniorityWeighting adds a priority-derived bonus to edge weights so
// senior workers win contested sections even when ranks tie.
func WithSeniorityWeighting(enabled bool) BipartiteOption {
	return func(b *Bipartite) {
		b.seniorityWeighted = enabled
	}
}

// WithBipartiteLogger sets the logger used for solve diagnostics.
func WithBipartiteLogger(logger types.Logger) BipartiteOption {
	return func(b *Bipartite) {
		b.logger = logger
	}
}

// Strategy returns types.StrategyBipartiteMatching.
func (b *Bipartite) Strategy() types.Strategy {
	return types.StrategyBipartiteMatching
}

// slot is one unit of a worker's section budget, factorized for matching.
type slot struct {
	worker types.Worker
}

// matchedSection is a post-matching (worker, section) pair with its weight
// and rank, used for distinct-task pruning.
type matchedSection struct {
	workerID string
	ref      types.SectionRef
	weight   float64
	rank     int
}

// Solve builds the factorized graph, runs the matching, and projects the
// result back onto workers.
//
// Unmatched sections remain empty; that is a legitimate outcome when supply
// exceeds demand, not an error. Slots that resolve to more than a worker's
// distinct-task cap are pruned lowest-weight-first after matching, since the
// matcher itself cannot express the cap.
//
// Parameters:
//   - ctx: Cancellation; checked before the matching runs
//   - prob: Validated, director-preassigned problem
//
// Returns:
//   - *types.Result: Matching-derived assignment with the total edge weight
//     as Objective
//   - error: Context error when cancelled before matching
func (b *Bipartite) Solve(ctx context.Context, prob *types.Problem) (*types.Result, error) {
	start := time.Now()

	slots, skipped := b.factorizeWorkers(prob)
	sections := openSections(prob)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cost := make([][]float64, len(slots))
	for i, s := range slots {
		cost[i] = make([]float64, len(sections))
		for j, ref := range sections {
			w, ok := model.PreferenceWeight(s.worker, ref.TaskID, prob.Tasks, b.seniorityWeighted)
			if !ok {
				cost[i][j] = hungarian.Forbidden

				continue
			}
			cost[i][j] = costOffset - w
		}
	}

	match := hungarian.Solve(cost)

	matched := make([]matchedSection, 0, len(slots))
	for i, j := range match {
		if j == -1 {
			continue
		}
		w := slots[i].worker
		rank, _ := w.Rank(sections[j].TaskID)
		matched = append(matched, matchedSection{
			workerID: w.ID,
			ref:      sections[j],
			weight:   costOffset - cost[i][j],
			rank:     rank,
		})
	}

	kept, objective := b.pruneDistinct(prob, matched)

	asg := prob.Preassigned.Clone()
	for _, m := range kept {
		asg.Grant(m.workerID, m.ref)
	}

	unassigned := len(sections) - len(kept)
	b.logger.Debug("bipartite matching solved",
		"slots", len(slots), "sections", len(sections),
		"objective", objective, "unassigned", unassigned)

	return &types.Result{
		Assignment: asg,
		Diagnostics: types.Diagnostics{
			Strategy:       b.Strategy(),
			Status:         types.StatusComplete,
			Objective:      objective,
			SkippedWorkers: skipped,
			Unassigned:     unassigned,
			Elapsed:        time.Since(start),
		},
	}, nil
}

// factorizeWorkers expands each worker into one slot per remaining budget
// unit, in priority order so the cost matrix is deterministic.
func (b *Bipartite) factorizeWorkers(prob *types.Problem) ([]slot, []string) {
	workers := append([]types.Worker(nil), prob.Workers...)
	sort.Slice(workers, func(i, j int) bool {
		if workers[i].Priority != workers[j].Priority {
			return workers[i].Priority < workers[j].Priority
		}

		return workers[i].ID < workers[j].ID
	})

	var (
		slots   []slot
		skipped []string
	)
	for _, w := range workers {
		budget := w.MaxSections - prob.Preassigned.Sections(w.ID)
		if len(w.Preferences) == 0 || budget <= 0 {
			skipped = append(skipped, w.ID)

			continue
		}

		for k := 0; k < budget; k++ {
			slots = append(slots, slot{worker: w})
		}
	}
	sort.Strings(skipped)

	return slots, skipped
}

// openSections lists every section still open after director pre-assignment,
// in task-ID order with indices following the preassigned ones.
func openSections(prob *types.Problem) []types.SectionRef {
	taskIDs := make([]string, 0, len(prob.Remaining))
	for id := range prob.Remaining {
		taskIDs = append(taskIDs, id)
	}
	sort.Strings(taskIDs)

	var refs []types.SectionRef
	for _, id := range taskIDs {
		task, _ := prob.TaskByID(id)
		for s := task.Capacity - prob.Remaining[id] + 1; s <= task.Capacity; s++ {
			refs = append(refs, types.SectionRef{TaskID: id, Section: s})
		}
	}

	return refs
}

// pruneDistinct enforces the distinct-task cap the matcher cannot express:
// when a worker's matched slots span too many tasks, whole excess tasks are
// dropped, weakest aggregate weight first. Preassigned tasks always count
// toward the cap and are never dropped.
func (b *Bipartite) pruneDistinct(prob *types.Problem, matched []matchedSection) ([]matchedSection, float64) {
	type taskGroup struct {
		taskID   string
		weight   float64
		bestRank int
	}

	byWorker := make(map[string][]matchedSection)
	for _, m := range matched {
		byWorker[m.workerID] = append(byWorker[m.workerID], m)
	}

	var (
		kept      []matchedSection
		objective float64
	)
	for _, workerID := range sortedKeys(byWorker) {
		w, _ := prob.WorkerByID(workerID)

		allowed := make(map[string]bool)
		budget := w.UniqueCap()
		for _, ref := range prob.Preassigned[workerID] {
			if !allowed[ref.TaskID] {
				allowed[ref.TaskID] = true
				budget--
			}
		}

		groups := make(map[string]*taskGroup)
		for _, m := range byWorker[workerID] {
			g, ok := groups[m.ref.TaskID]
			if !ok {
				g = &taskGroup{taskID: m.ref.TaskID, bestRank: m.rank}
				groups[m.ref.TaskID] = g
			}
			g.weight += m.weight
			if m.rank < g.bestRank {
				g.bestRank = m.rank
			}
		}

		ordered := make([]*taskGroup, 0, len(groups))
		for _, g := range groups {
			ordered = append(ordered, g)
		}
		// Strongest tasks first; on equal weight the better-ranked preference
		// survives.
		sort.Slice(ordered, func(i, j int) bool {
			if ordered[i].weight != ordered[j].weight {
				return ordered[i].weight > ordered[j].weight
			}
			if ordered[i].bestRank != ordered[j].bestRank {
				return ordered[i].bestRank < ordered[j].bestRank
			}

			return ordered[i].taskID < ordered[j].taskID
		})

		for _, g := range ordered {
			if allowed[g.taskID] {
				continue
			}
			if budget <= 0 {
				b.logger.Debug("pruning excess task after matching",
					"worker", workerID, "task", g.taskID, "weight", g.weight)

				continue
			}
			allowed[g.taskID] = true
			budget--
		}

		for _, m := range byWorker[workerID] {
			if !allowed[m.ref.TaskID] {
				continue
			}
			kept = append(kept, m)
			objective += m.weight
		}
	}

	return kept, objective
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
