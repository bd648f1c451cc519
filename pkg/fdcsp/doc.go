// Package fdcsp provides an embeddable finite-domain constraint-satisfaction
// and optimisation library.
//
// Callers declare typed decision Variables bound to explicit finite Domains,
// build arithmetic and boolean expression trees over them with the Expr and
// BoolExpr constructors, install hard constraints (Require), weighted soft
// constraints (Prefer), and one or more objectives (Maximize / Minimize) on
// a Solver, then call Solve or AllSolutions to search for a feasible
// assignment.
//
// The native Solver performs a depth-first backtracking search in
// registration order, pruning only on constraints that definitely evaluate
// to false against the current partial assignment. A second backend,
// internal/satbackend, solves the same problem shape via a SAT engine and
// satisfies the same Backend contract, so the two are interchangeable for
// any problem built against this package (see Backend's documentation for
// what "interchangeable" guarantees and does not guarantee).
package fdcsp
