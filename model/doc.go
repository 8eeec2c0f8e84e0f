// Package model implements the constraint model shared by every solver.
//
// It provides input validation (Validate), deterministic director
// pre-assignment (PreassignDirectors), the post-solve invariant check
// (CheckInvariants), and the preference-rank-to-weight conversion
// (PreferenceWeight) used by the bipartite and linear-programming solvers.
//
// The model is the single source of truth for assignment semantics: all four
// solvers consume the Problem it produces and are checked against the same
// invariants regardless of their internal representation.
package model
