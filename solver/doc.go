// Package solver provides the built-in assignment solving strategies.
//
// Every solver consumes the same validated, director-preassigned
// types.Problem and produces the same canonical types.Result; they are
// interchangeable strategies over one shared constraint model. The package
// includes four built-in solvers:
//
//   - StableMarriage: sequential, priority-ordered proposals with greedy multi-section extension (fast, stable, not globally optimal)
//   - Bipartite: factorized maximum-weight bipartite matching (recommended default)
//   - LinearProgram: binary integer program over the factorized sections (optimal, slowest)
//   - Genetic: population-based search with constraint-encoding fitness (large or irregular instances)
//
// # Strategy Selection Guide
//
// StableMarriage:
//   - Use when seniority order should dominate the outcome
//   - Output is stable: no worker can improve by displacing a weaker holder
//   - Bounded by worker/task count, no tuning knobs
//
// Bipartite:
//   - Use when aggregate preference satisfaction matters most
//   - Maximum-weight matching over worker-slots and task sections
//   - Optional seniority weighting biases edges toward senior workers
//
// LinearProgram:
//   - Use when a certified optimum is worth the solve time
//   - Branch-and-bound over LP relaxations; reports infeasibility explicitly
//   - Optional seeded perturbation breaks systematic ties between optima
//
// Genetic:
//   - Use for large instances where exact methods are too slow
//   - Deterministic only when seeded; supports parallel fitness evaluation
//   - Returns the best individual ever seen, with per-generation history
//
// Custom strategies can be implemented by satisfying the types.Solver interface.
package solver
