// Package types defines the shared contracts of the JobMatch library.
//
// It contains the canonical entities (Worker, Task, SectionRef, Assignment),
// the Problem/Result pair exchanged between the Matcher facade and the
// solvers, the Solver and Strategy contracts, and the Logger and
// MetricsCollector interfaces used for observability.
//
// Keeping these definitions in a leaf package lets the solver and internal
// packages depend on them without importing the root jobmatch package,
// which re-exports everything here via type aliases for convenience.
package types
