package jobmatch

// Option configures a Matcher with optional dependencies.
type Option func(*matcherOptions)

// matcherOptions holds optional Matcher configuration.
type matcherOptions struct {
	logger  Logger
	metrics MetricsCollector
	solvers []Solver
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	logger := logging.NewSlog(slog.Default())
//	m, err := jobmatch.New(&cfg, jobmatch.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *matcherOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	collector := metrics.NewPrometheus(nil, "jobmatch")
//	m, err := jobmatch.New(&cfg, jobmatch.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *matcherOptions) {
		o.metrics = metrics
	}
}

// WithSolver registers a solver, replacing the built-in one for the same
// strategy. Custom strategies become selectable by the name the solver
// reports.
//
// Parameters:
//   - s: Solver implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	m, err := jobmatch.New(&cfg, jobmatch.WithSolver(myAnnealingSolver))
func WithSolver(s Solver) Option {
	return func(o *matcherOptions) {
		o.solvers = append(o.solvers, s)
	}
}
