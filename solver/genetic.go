package solver

import (
	"context"
	"encoding/binary"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/zeebo/xxh3"

	"github.com/speters9/JobMatch/internal/logging"
	"github.com/speters9/JobMatch/internal/metrics"
	"github.com/speters9/JobMatch/model"
	"github.com/speters9/JobMatch/types"
)

// Genetic solver defaults.
const (
	DefaultPopulationSize  = 60
	DefaultGenerations     = 150
	DefaultMutationRate    = 0.1
	DefaultElitism         = 2
	DefaultEarlyStopWindow = 10
	DefaultMinFitnessDelta = 1e-3

	// constraintPenalty is the fitness cost per violated unit (excess
	// section or excess distinct task). Construction and repair keep
	// individuals legal, so the penalty is a safety net that makes any
	// slip-through strictly worse than an empty gene.
	constraintPenalty = 25.0
)

// Genetic implements the population-based strategy: a chromosome assigns a
// worker (or nobody) to every open section, evolved by truncation selection,
// single-point crossover with repair, and swap/evict mutation under elitism.
type Genetic struct {
	populationSize  int
	generations     int
	mutationRate    float64
	elitism         int
	earlyStopWindow int
	minFitnessDelta float64
	parallelism     int
	seed            uint64
	logger          types.Logger
	metrics         types.SolverProgressMetrics
}

var _ types.Solver = (*Genetic)(nil)

// GeneticOption configures a Genetic solver.
type GeneticOption func(*Genetic)

// NewGenetic creates a new genetic solver.
//
// Without WithGeneticSeed the run is seeded from the clock and results vary
// between invocations; seeded runs are fully deterministic, including the
// parallel fitness-evaluation path.
//
// Parameters:
//   - opts: Optional configuration (WithPopulationSize, WithGenerations,
//     WithMutationRate, WithElitism, WithEarlyStopping, WithParallelism,
//     WithGeneticSeed, WithGeneticLogger, WithGeneticMetrics)
//
// Returns:
//   - *Genetic: Initialized solver ready for use
func NewGenetic(opts ...GeneticOption) *Genetic {
	g := &Genetic{
		populationSize:  DefaultPopulationSize,
		generations:     DefaultGenerations,
		mutationRate:    DefaultMutationRate,
		elitism:         DefaultElitism,
		earlyStopWindow: DefaultEarlyStopWindow,
		minFitnessDelta: DefaultMinFitnessDelta,
		parallelism:     1,
		logger:          logging.NewNop(),
		metrics:         metrics.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	g.normalize()

	return g
}

func (g *Genetic) normalize() {
	if g.populationSize < 4 {
		g.populationSize = 4
	}
	if g.generations < 1 {
		g.generations = 1
	}
	if g.mutationRate < 0 || g.mutationRate > 1 {
		g.mutationRate = DefaultMutationRate
	}
	if g.elitism < 0 {
		g.elitism = 0
	}
	if g.elitism > g.populationSize/2 {
		g.elitism = g.populationSize / 2
	}
	if g.parallelism < 1 {
		g.parallelism = 1
	}
}

// WithPopulationSize sets the number of individuals per generation.
func WithPopulationSize(n int) GeneticOption {
	return func(g *Genetic) {
		g.populationSize = n
	}
}

// WithGenerations sets the generation cap.
func WithGenerations(n int) GeneticOption {
	return func(g *Genetic) {
		g.generations = n
	}
}

// WithMutationRate sets the per-child mutation probability in [0, 1].
func WithMutationRate(rate float64) GeneticOption {
	return func(g *Genetic) {
		g.mutationRate = rate
	}
}

// WithElitism sets how many top individuals survive unchanged per generation.
func WithElitism(k int) GeneticOption {
	return func(g *Genetic) {
		g.elitism = k
	}
}

// WithEarlyStopping stops the run when the best fitness improved less than
// minDelta over the last window generations. A window of 0 disables it.
func WithEarlyStopping(window int, minDelta float64) GeneticOption {
	return func(g *Genetic) {
		g.earlyStopWindow = window
		g.minFitnessDelta = minDelta
	}
}

// WithParallelism sets the number of goroutines used for fitness evaluation.
// Fitness is a pure function, so parallel and sequential runs score
// identically.
func WithParallelism(n int) GeneticOption {
	return func(g *Genetic) {
		g.parallelism = n
	}
}

// WithGeneticSeed fixes the random source, making the run reproducible.
func WithGeneticSeed(seed uint64) GeneticOption {
	return func(g *Genetic) {
		g.seed = seed
	}
}

// WithGeneticLogger sets the logger used for solve diagnostics.
func WithGeneticLogger(logger types.Logger) GeneticOption {
	return func(g *Genetic) {
		g.logger = logger
	}
}

// WithGeneticMetrics sets the collector for generation metrics.
func WithGeneticMetrics(m types.SolverProgressMetrics) GeneticOption {
	return func(g *Genetic) {
		g.metrics = m
	}
}

// Strategy returns types.StrategyGeneticAlgorithm.
func (g *Genetic) Strategy() types.Strategy {
	return types.StrategyGeneticAlgorithm
}

// genome assigns a worker index (or -1 for empty) to every open section.
// Director sections are not part of the genome; they are fixed in
// Problem.Preassigned and merged back on decode, so no mutation can touch
// them.
type genome []int

// gaContext is the per-solve evaluation state shared by all individuals.
type gaContext struct {
	prob     *types.Problem
	workers  []types.Worker
	sections []types.SectionRef
	budgets  []int                   // remaining budget per worker index
	preTasks []map[string]bool       // preassigned tasks per worker index
	weights  []map[int]float64       // section position -> eligible worker index -> weight
	cache    *xsync.MapOf[uint64, float64]
}

// Solve evolves the population and returns the best individual ever seen.
//
// Parameters:
//   - ctx: Cancellation; a cancelled run returns best-so-far with StatusPartial
//   - prob: Validated, director-preassigned problem
//
// Returns:
//   - *types.Result: Best assignment found, with generation count, best
//     fitness, and per-generation fitness history in Diagnostics
//   - error: Always nil; the genetic search cannot be infeasible
func (g *Genetic) Solve(ctx context.Context, prob *types.Problem) (*types.Result, error) {
	start := time.Now()

	ev, skipped := g.newContext(prob)
	seed := g.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(int64(xxh3.HashString("genetic") ^ seed))) //nolint:gosec // deterministic search, not crypto

	population := make([]genome, g.populationSize)
	for i := range population {
		population[i] = g.randomIndividual(ev, rng)
	}

	var (
		bestEver        genome
		bestEverFitness float64
		history         []float64
		status          = types.StatusPartial
		generations     = 0
	)

	for gen := 0; gen < g.generations; gen++ {
		if ctx.Err() != nil {
			break
		}
		generations = gen + 1

		fitness := g.evaluate(ev, population)
		order := rankOrder(population, fitness)

		top := order[0]
		if bestEver == nil || fitness[top] > bestEverFitness {
			bestEver = append(genome(nil), population[top]...)
			bestEverFitness = fitness[top]
		}
		history = append(history, bestEverFitness)

		if g.plateaued(history) {
			status = types.StatusComplete

			break
		}

		population = g.nextGeneration(ev, population, order, rng)
	}

	if bestEver == nil {
		// Generation cap of zero iterations cannot happen (normalize
		// enforces >= 1) unless the context was cancelled immediately.
		fitness := g.evaluate(ev, population[:1])
		bestEver = population[0]
		bestEverFitness = fitness[0]
	}

	asg, unassigned := g.decode(ev, bestEver)

	g.metrics.RecordGenerations(generations)
	g.logger.Debug("genetic search finished",
		"generations", generations, "bestFitness", bestEverFitness,
		"unassigned", unassigned, "status", status)

	return &types.Result{
		Assignment: asg,
		Diagnostics: types.Diagnostics{
			Strategy:       g.Strategy(),
			Status:         status,
			Generations:    generations,
			BestFitness:    bestEverFitness,
			FitnessHistory: history,
			SkippedWorkers: skipped,
			Unassigned:     unassigned,
			Elapsed:        time.Since(start),
		},
	}, nil
}

// newContext precomputes eligibility, weights, and budgets for one solve.
func (g *Genetic) newContext(prob *types.Problem) (*gaContext, []string) {
	workers := append([]types.Worker(nil), prob.Workers...)
	sort.Slice(workers, func(i, j int) bool { return workers[i].ID < workers[j].ID })

	ev := &gaContext{
		prob:     prob,
		workers:  workers,
		sections: openSections(prob),
		budgets:  make([]int, len(workers)),
		preTasks: make([]map[string]bool, len(workers)),
		cache:    xsync.NewMapOf[uint64, float64](),
	}

	var skipped []string
	eligible := make([]bool, len(workers))
	for i, w := range workers {
		ev.budgets[i] = w.MaxSections - prob.Preassigned.Sections(w.ID)
		ev.preTasks[i] = make(map[string]bool)
		for _, ref := range prob.Preassigned[w.ID] {
			ev.preTasks[i][ref.TaskID] = true
		}

		if len(w.Preferences) == 0 || ev.budgets[i] <= 0 {
			skipped = append(skipped, w.ID)

			continue
		}
		eligible[i] = true
	}
	sort.Strings(skipped)

	ev.weights = make([]map[int]float64, len(ev.sections))
	for j, ref := range ev.sections {
		ev.weights[j] = make(map[int]float64)
		for i, w := range workers {
			if !eligible[i] {
				continue
			}
			if weight, ok := model.PreferenceWeight(w, ref.TaskID, prob.Tasks, false); ok {
				ev.weights[j][i] = weight
			}
		}
	}

	return ev, skipped
}

// randomIndividual builds one legal chromosome by filling sections in a
// random order with randomly chosen eligible workers.
func (g *Genetic) randomIndividual(ev *gaContext, rng *rand.Rand) genome {
	ind := make(genome, len(ev.sections))
	for j := range ind {
		ind[j] = -1
	}

	order := rng.Perm(len(ev.sections))
	budgets := append([]int(nil), ev.budgets...)
	distinct := cloneTaskSets(ev.preTasks)

	for _, j := range order {
		candidates := make([]int, 0, len(ev.weights[j]))
		taskID := ev.sections[j].TaskID
		for w := range ev.weights[j] {
			if budgets[w] <= 0 {
				continue
			}
			if !distinct[w][taskID] && len(distinct[w]) >= ev.workers[w].UniqueCap() {
				continue
			}
			candidates = append(candidates, w)
		}
		if len(candidates) == 0 {
			continue
		}
		sort.Ints(candidates) // map iteration order must not leak into the run

		w := candidates[rng.Intn(len(candidates))]
		ind[j] = w
		budgets[w]--
		distinct[w][taskID] = true
	}

	return ind
}

// evaluate scores the population, optionally in parallel, memoizing by
// chromosome hash.
func (g *Genetic) evaluate(ev *gaContext, population []genome) []float64 {
	fitness := make([]float64, len(population))

	score := func(i int) {
		key := hashGenome(population[i])
		if f, ok := ev.cache.Load(key); ok {
			fitness[i] = f

			return
		}
		f := g.fitnessOf(ev, population[i])
		ev.cache.Store(key, f)
		fitness[i] = f
	}

	if g.parallelism <= 1 || len(population) < 2 {
		for i := range population {
			score(i)
		}

		return fitness
	}

	var wg sync.WaitGroup
	chunk := (len(population) + g.parallelism - 1) / g.parallelism
	for lo := 0; lo < len(population); lo += chunk {
		hi := min(lo+chunk, len(population))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				score(i)
			}
		}(lo, hi)
	}
	wg.Wait()

	return fitness
}

// fitnessOf is the pure scoring function: preference weight per filled gene,
// minus a penalty per constraint violation.
func (g *Genetic) fitnessOf(ev *gaContext, ind genome) float64 {
	total := 0.0
	used := make(map[int]int)
	tasks := make(map[int]map[string]bool)

	for j, w := range ind {
		if w == -1 {
			continue
		}
		weight, ok := ev.weights[j][w]
		if !ok {
			total -= constraintPenalty

			continue
		}
		total += weight
		used[w]++
		if tasks[w] == nil {
			tasks[w] = make(map[string]bool)
			for t := range ev.preTasks[w] {
				tasks[w][t] = true
			}
		}
		tasks[w][ev.sections[j].TaskID] = true
	}

	for w, n := range used {
		if over := n - ev.budgets[w]; over > 0 {
			total -= constraintPenalty * float64(over)
		}
		if over := len(tasks[w]) - ev.workers[w].UniqueCap(); over > 0 {
			total -= constraintPenalty * float64(over)
		}
	}

	return total
}

// rankOrder returns population indices sorted best-first, with deterministic
// tie-breaking.
func rankOrder(population []genome, fitness []float64) []int {
	order := make([]int, len(population))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fitness[order[a]] > fitness[order[b]]
	})

	return order
}

// nextGeneration applies elitism, truncation selection (top half breeds),
// single-point crossover, and swap/evict mutation, repairing every child.
func (g *Genetic) nextGeneration(ev *gaContext, population []genome, order []int, rng *rand.Rand) []genome {
	next := make([]genome, 0, len(population))
	for _, idx := range order[:g.elitism] {
		next = append(next, append(genome(nil), population[idx]...))
	}

	pool := order[:max(2, len(order)/2)]
	for len(next) < len(population) {
		p1 := population[pool[rng.Intn(len(pool))]]
		p2 := population[pool[rng.Intn(len(pool))]]

		child := g.crossover(p1, p2, rng)
		if rng.Float64() < g.mutationRate {
			g.mutate(child, rng)
		}
		g.repair(ev, child)

		next = append(next, child)
	}

	return next
}

// crossover is single-point; the caller repairs the child afterwards since a
// naive cut can break the capacity and uniqueness invariants.
func (g *Genetic) crossover(p1, p2 genome, rng *rand.Rand) genome {
	child := make(genome, len(p1))
	if len(p1) == 0 {
		return child
	}

	point := rng.Intn(len(p1))
	copy(child[:point], p1[:point])
	copy(child[point:], p2[point:])

	return child
}

// mutate either swaps the occupants of two sections or evicts one.
func (g *Genetic) mutate(ind genome, rng *rand.Rand) {
	if len(ind) == 0 {
		return
	}

	if rng.Intn(2) == 0 {
		a, b := rng.Intn(len(ind)), rng.Intn(len(ind))
		ind[a], ind[b] = ind[b], ind[a]
	} else {
		ind[rng.Intn(len(ind))] = -1
	}
}

// repair clears genes front-to-back until the chromosome is legal again:
// ineligible workers, exhausted budgets, and excess distinct tasks all reduce
// to empty sections.
func (g *Genetic) repair(ev *gaContext, ind genome) {
	budgets := append([]int(nil), ev.budgets...)
	distinct := cloneTaskSets(ev.preTasks)

	for j, w := range ind {
		if w == -1 {
			continue
		}
		taskID := ev.sections[j].TaskID

		if _, ok := ev.weights[j][w]; !ok {
			ind[j] = -1

			continue
		}
		if budgets[w] <= 0 {
			ind[j] = -1

			continue
		}
		if !distinct[w][taskID] && len(distinct[w]) >= ev.workers[w].UniqueCap() {
			ind[j] = -1

			continue
		}

		budgets[w]--
		distinct[w][taskID] = true
	}
}

// plateaued reports whether best fitness improved less than the configured
// delta over the early-stopping window.
func (g *Genetic) plateaued(history []float64) bool {
	if g.earlyStopWindow <= 0 || len(history) < g.earlyStopWindow+1 {
		return false
	}

	delta := history[len(history)-1] - history[len(history)-1-g.earlyStopWindow]

	return delta < g.minFitnessDelta
}

// decode merges the chromosome back over the director grants.
func (g *Genetic) decode(ev *gaContext, ind genome) (types.Assignment, int) {
	asg := ev.prob.Preassigned.Clone()
	unassigned := 0
	for j, w := range ind {
		if w == -1 {
			unassigned++

			continue
		}
		asg.Grant(ev.workers[w].ID, ev.sections[j])
	}

	return asg, unassigned
}

func cloneTaskSets(sets []map[string]bool) []map[string]bool {
	out := make([]map[string]bool, len(sets))
	for i, s := range sets {
		out[i] = make(map[string]bool, len(s))
		for k := range s {
			out[i][k] = true
		}
	}

	return out
}

func hashGenome(ind genome) uint64 {
	buf := make([]byte, len(ind)*4)
	for i, w := range ind {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(w))) //nolint:gosec // worker counts are tiny
	}

	return xxh3.Hash(buf)
}
