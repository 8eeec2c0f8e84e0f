// Package jobmatch assigns a fixed pool of workers to task sections under
// capacity and preference constraints, using a choice of four interchangeable
// solving strategies over one shared constraint model.
//
// Workers carry an ordered preference list, a total-section budget, and a
// distinct-task cap; tasks carry a section capacity and an optional director
// who receives one section before general solving begins. Every strategy
// consumes the same validated inputs and produces the same canonical
// Assignment shape:
//
//   - StrategyStableMarriage: sequential, priority-ordered proposals with greedy multi-section extension
//   - StrategyBipartiteMatching: maximum-weight matching over factorized worker slots and task sections
//   - StrategyLinearProgramming: binary integer program solved by branch-and-bound
//   - StrategyGeneticAlgorithm: population-based search with a constraint-encoding fitness function
//
// # Usage
//
//	cfg := jobmatch.DefaultConfig()
//	m, err := jobmatch.New(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := m.Solve(ctx, workers, tasks)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, workerID := range res.Assignment.Workers() {
//	    fmt.Println(workerID, res.Assignment[workerID])
//	}
//
// Solvers are stateless and the Matcher is safe for concurrent use. Errors
// follow a small sentinel taxonomy (ErrInvalidInput, ErrDirectorBudget,
// ErrUnknownStrategy, ErrInfeasible, ErrInvariantViolation) matched with
// errors.Is; partial convergence is not an error but a Status flag on the
// returned diagnostics.
package jobmatch
