package jobmatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	t.Run("default config validates", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("test config validates and is seeded", func(t *testing.T) {
		cfg := TestConfig()
		require.NoError(t, cfg.Validate())
		require.NotZero(t, cfg.Genetic.Seed)
	})

	t.Run("SetDefaults fills zero values", func(t *testing.T) {
		var cfg Config
		SetDefaults(&cfg)

		require.Equal(t, string(StrategyBipartiteMatching), cfg.Strategy)
		require.Equal(t, DefaultConfig().Genetic, cfg.Genetic)
		require.NoError(t, cfg.Validate())
	})

	t.Run("SetDefaults keeps explicit values", func(t *testing.T) {
		cfg := Config{Strategy: string(StrategyGeneticAlgorithm)}
		cfg.Genetic.PopulationSize = 99
		SetDefaults(&cfg)

		require.Equal(t, string(StrategyGeneticAlgorithm), cfg.Strategy)
		require.Equal(t, 99, cfg.Genetic.PopulationSize)
	})
}

func TestConfigValidate(t *testing.T) {
	base := func() Config { return DefaultConfig() }

	cases := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{
			name:    "unknown strategy",
			mutate:  func(c *Config) { c.Strategy = "tabu_search" },
			message: "strategy",
		},
		{
			name:    "negative node cap",
			mutate:  func(c *Config) { c.LinearProgram.MaxNodes = -1 },
			message: "maxNodes",
		},
		{
			name:    "population too small",
			mutate:  func(c *Config) { c.Genetic.PopulationSize = 1 },
			message: "populationSize",
		},
		{
			name:    "mutation rate out of range",
			mutate:  func(c *Config) { c.Genetic.MutationRate = 1.5 },
			message: "mutationRate",
		},
		{
			name:    "elitism exceeds population",
			mutate:  func(c *Config) { c.Genetic.Elitism = c.Genetic.PopulationSize + 1 },
			message: "elitism",
		},
		{
			name:    "negative parallelism",
			mutate:  func(c *Config) { c.Genetic.Parallelism = -2 },
			message: "parallelism",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)

			err := cfg.Validate()

			require.ErrorIs(t, err, ErrInvalidConfig)
			require.ErrorContains(t, err, tc.message)
		})
	}

	t.Run("unknown strategy keeps both sentinels in the chain", func(t *testing.T) {
		cfg := base()
		cfg.Strategy = "tabu_search"

		err := cfg.Validate()

		require.ErrorIs(t, err, ErrInvalidConfig)
		require.ErrorIs(t, err, ErrUnknownStrategy)
	})
}

func TestConfigLoading(t *testing.T) {
	doc := []byte(`
strategy: linear_programming
bipartiteMatching:
  seniorityWeighted: true
linearProgramming:
  perturb: true
  seed: 42
geneticAlgorithm:
  populationSize: 24
  generations: 50
  mutationRate: 0.2
  seed: 7
`)

	t.Run("ParseConfig round-trips yaml", func(t *testing.T) {
		cfg, err := ParseConfig(doc)

		require.NoError(t, err)
		require.Equal(t, string(StrategyLinearProgramming), cfg.Strategy)
		require.True(t, cfg.Bipartite.SeniorityWeighted)
		require.True(t, cfg.LinearProgram.Perturb)
		require.EqualValues(t, 42, cfg.LinearProgram.Seed)
		require.Equal(t, 24, cfg.Genetic.PopulationSize)
		require.InDelta(t, 0.2, cfg.Genetic.MutationRate, 1e-9)

		SetDefaults(&cfg)
		require.NoError(t, cfg.Validate())
	})

	t.Run("ParseConfig rejects malformed yaml", func(t *testing.T) {
		_, err := ParseConfig([]byte("strategy: [unclosed"))

		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("LoadConfig reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, doc, 0o600))

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		require.Equal(t, string(StrategyLinearProgramming), cfg.Strategy)
	})

	t.Run("LoadConfig surfaces missing files", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}
