package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/speters9/JobMatch/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metrics are registered lazily on first use so constructing the collector
// never panics on duplicate registration in tests.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	solveDuration  *prometheus.HistogramVec
	solveOutcomes  *prometheus.CounterVec
	objectiveValue *prometheus.GaugeVec
	unassigned     *prometheus.GaugeVec
	proposalRounds prometheus.Histogram
	generations    prometheus.Histogram
	branchNodes    prometheus.Histogram
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "jobmatch" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "jobmatch"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.solveDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock duration of solve calls by strategy.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms .. ~8s
		}, []string{"strategy"})

		p.solveOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "solve_outcomes_total",
			Help:      "Solve outcomes (complete, partial, infeasible, invalid_input, invariant_violation, error) by strategy.",
		}, []string{"strategy", "outcome"})

		p.objectiveValue = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "objective_value",
			Help:      "Objective value of the most recent solve by strategy.",
		}, []string{"strategy"})

		p.unassigned = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "unassigned_sections",
			Help:      "Sections left open by the most recent solve by strategy.",
		}, []string{"strategy"})

		p.proposalRounds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "stable_marriage",
			Name:      "proposal_rounds",
			Help:      "Proposals processed per stable-marriage solve.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		})

		p.generations = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "genetic",
			Name:      "generations",
			Help:      "Generations evaluated per genetic solve.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		})

		p.branchNodes = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "linear_programming",
			Name:      "branch_nodes",
			Help:      "Branch-and-bound nodes explored per LP solve.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		})

		p.reg.MustRegister(p.solveDuration)
		p.reg.MustRegister(p.solveOutcomes)
		p.reg.MustRegister(p.objectiveValue)
		p.reg.MustRegister(p.unassigned)
		p.reg.MustRegister(p.proposalRounds)
		p.reg.MustRegister(p.generations)
		p.reg.MustRegister(p.branchNodes)
	})
}

// RecordSolveDuration observes solve latency for the strategy.
func (p *PrometheusCollector) RecordSolveDuration(strategy string, seconds float64) {
	p.ensureRegistered()
	p.solveDuration.WithLabelValues(strategy).Observe(seconds)
}

// RecordSolveOutcome increments the outcome counter for the strategy.
func (p *PrometheusCollector) RecordSolveOutcome(strategy string, outcome string) {
	p.ensureRegistered()
	p.solveOutcomes.WithLabelValues(strategy, outcome).Inc()
}

// RecordObjective sets the objective gauge for the strategy.
func (p *PrometheusCollector) RecordObjective(strategy string, value float64) {
	p.ensureRegistered()
	p.objectiveValue.WithLabelValues(strategy).Set(value)
}

// RecordUnassignedSections sets the unassigned-sections gauge for the strategy.
func (p *PrometheusCollector) RecordUnassignedSections(strategy string, count int) {
	p.ensureRegistered()
	p.unassigned.WithLabelValues(strategy).Set(float64(count))
}

// RecordProposalRounds observes proposals processed by stable marriage.
func (p *PrometheusCollector) RecordProposalRounds(rounds int) {
	p.ensureRegistered()
	p.proposalRounds.Observe(float64(rounds))
}

// RecordGenerations observes generations evaluated by the genetic solver.
func (p *PrometheusCollector) RecordGenerations(generations int) {
	p.ensureRegistered()
	p.generations.Observe(float64(generations))
}

// RecordBranchNodes observes branch-and-bound nodes explored by the LP solver.
func (p *PrometheusCollector) RecordBranchNodes(nodes int) {
	p.ensureRegistered()
	p.branchNodes.Observe(float64(nodes))
}
