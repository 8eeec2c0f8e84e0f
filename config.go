package jobmatch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/speters9/JobMatch/solver"
	"github.com/speters9/JobMatch/types"
)

// BipartiteConfig controls the bipartite matching solver.
type BipartiteConfig struct {
	// SeniorityWeighted adds a priority-derived bonus to edge weights so
	// senior workers win contested sections even when preference ranks tie.
	SeniorityWeighted bool `yaml:"seniorityWeighted"`
}

// LinearProgramConfig controls the integer-programming solver.
type LinearProgramConfig struct {
	// SeniorityWeighted adds a priority-derived bonus to objective weights.
	SeniorityWeighted bool `yaml:"seniorityWeighted"`

	// Perturb enables seeded multiplicative jitter on objective weights to
	// break systematic ties between equally optimal assignments.
	Perturb bool `yaml:"perturb"`

	// Seed drives the perturbation jitter; ignored when Perturb is false.
	Seed uint64 `yaml:"seed"`

	// MaxNodes caps branch-and-bound nodes (0 = solver default). Past the
	// cap the solver returns its best incumbent with a partial status.
	MaxNodes int `yaml:"maxNodes"`
}

// GeneticConfig controls the genetic solver.
//
// Runs are reproducible only when Seed is non-zero; an unseeded run draws
// from the clock.
type GeneticConfig struct {
	// PopulationSize is the number of individuals per generation.
	PopulationSize int `yaml:"populationSize"`

	// Generations is the generation cap.
	Generations int `yaml:"generations"`

	// MutationRate is the per-child mutation probability in [0, 1].
	MutationRate float64 `yaml:"mutationRate"`

	// Elitism is how many top individuals survive unchanged per generation.
	Elitism int `yaml:"elitism"`

	// EarlyStopWindow stops the run when best fitness improved less than
	// MinFitnessDelta over this many generations (0 disables early stopping).
	EarlyStopWindow int `yaml:"earlyStopWindow"`

	// MinFitnessDelta is the plateau threshold used with EarlyStopWindow.
	MinFitnessDelta float64 `yaml:"minFitnessDelta"`

	// Parallelism is the number of goroutines used for fitness evaluation.
	// Parallel and sequential evaluation produce identical fitness values.
	Parallelism int `yaml:"parallelism"`

	// Seed fixes the random source for reproducible runs.
	Seed uint64 `yaml:"seed"`
}

// Config is the configuration for the Matcher.
type Config struct {
	// Strategy selects the solver used by Solve. One of "stable_marriage",
	// "bipartite_matching", "linear_programming", "genetic_algorithm".
	Strategy string `yaml:"strategy"`

	// Bipartite configures the bipartite matching solver.
	Bipartite BipartiteConfig `yaml:"bipartiteMatching"`

	// LinearProgram configures the integer-programming solver.
	LinearProgram LinearProgramConfig `yaml:"linearProgramming"`

	// Genetic configures the genetic solver.
	Genetic GeneticConfig `yaml:"geneticAlgorithm"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Strategy: string(types.StrategyBipartiteMatching),
		Genetic: GeneticConfig{
			PopulationSize:  solver.DefaultPopulationSize,
			Generations:     solver.DefaultGenerations,
			MutationRate:    solver.DefaultMutationRate,
			Elitism:         solver.DefaultElitism,
			EarlyStopWindow: solver.DefaultEarlyStopWindow,
			MinFitnessDelta: solver.DefaultMinFitnessDelta,
			Parallelism:     1,
		},
	}
}

// TestConfig returns a Config tuned for fast, deterministic tests.
//
// Returns:
//   - Config: Configuration with a small, seeded genetic section
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.Genetic.PopulationSize = 12
	cfg.Genetic.Generations = 30
	cfg.Genetic.Seed = 1

	return cfg
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Strategy == "" {
		cfg.Strategy = defaults.Strategy
	}
	if cfg.Genetic.PopulationSize == 0 {
		cfg.Genetic.PopulationSize = defaults.Genetic.PopulationSize
	}
	if cfg.Genetic.Generations == 0 {
		cfg.Genetic.Generations = defaults.Genetic.Generations
	}
	if cfg.Genetic.MutationRate == 0 {
		cfg.Genetic.MutationRate = defaults.Genetic.MutationRate
	}
	if cfg.Genetic.Elitism == 0 {
		cfg.Genetic.Elitism = defaults.Genetic.Elitism
	}
	if cfg.Genetic.EarlyStopWindow == 0 {
		cfg.Genetic.EarlyStopWindow = defaults.Genetic.EarlyStopWindow
	}
	if cfg.Genetic.MinFitnessDelta == 0 {
		cfg.Genetic.MinFitnessDelta = defaults.Genetic.MinFitnessDelta
	}
	if cfg.Genetic.Parallelism == 0 {
		cfg.Genetic.Parallelism = defaults.Genetic.Parallelism
	}
	// MaxNodes of 0 means "solver default", so no value is forced here.
}

// Validate checks configuration constraints and returns an error for invalid
// values.
//
// Returns:
//   - error: ErrInvalidConfig (wrapped) with a clear explanation, nil if valid
func (cfg *Config) Validate() error {
	// Both sentinels stay in the chain: New relies on errors.Is to tell an
	// unknown strategy name apart from other configuration failures.
	if _, err := types.ParseStrategy(cfg.Strategy); err != nil {
		return fmt.Errorf("%w: strategy: %w", types.ErrInvalidConfig, err)
	}

	if cfg.LinearProgram.MaxNodes < 0 {
		return fmt.Errorf("%w: linearProgramming.maxNodes must be >= 0, got %d",
			types.ErrInvalidConfig, cfg.LinearProgram.MaxNodes)
	}

	g := cfg.Genetic
	if g.PopulationSize < 2 {
		return fmt.Errorf("%w: geneticAlgorithm.populationSize must be >= 2, got %d",
			types.ErrInvalidConfig, g.PopulationSize)
	}
	if g.Generations < 1 {
		return fmt.Errorf("%w: geneticAlgorithm.generations must be >= 1, got %d",
			types.ErrInvalidConfig, g.Generations)
	}
	if g.MutationRate < 0 || g.MutationRate > 1 {
		return fmt.Errorf("%w: geneticAlgorithm.mutationRate must be in [0, 1], got %g",
			types.ErrInvalidConfig, g.MutationRate)
	}
	if g.Elitism < 0 || g.Elitism > g.PopulationSize {
		return fmt.Errorf("%w: geneticAlgorithm.elitism must be in [0, populationSize], got %d",
			types.ErrInvalidConfig, g.Elitism)
	}
	if g.EarlyStopWindow < 0 {
		return fmt.Errorf("%w: geneticAlgorithm.earlyStopWindow must be >= 0, got %d",
			types.ErrInvalidConfig, g.EarlyStopWindow)
	}
	if g.Parallelism < 0 {
		return fmt.Errorf("%w: geneticAlgorithm.parallelism must be >= 0, got %d",
			types.ErrInvalidConfig, g.Parallelism)
	}

	return nil
}

// ParseConfig parses a YAML configuration document.
//
// Parameters:
//   - data: YAML document bytes
//
// Returns:
//   - Config: Parsed configuration (defaults not yet applied)
//   - error: ErrInvalidConfig (wrapped) on malformed YAML
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - Config: Parsed configuration (defaults not yet applied)
//   - error: ErrInvalidConfig (wrapped) on read or parse failure
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: read %s: %v", types.ErrInvalidConfig, path, err)
	}

	return ParseConfig(data)
}
