package fdcsp

import "context"

// Backend is the contract an alternative solving engine must satisfy to be
// interchangeable with the native Solver for any problem built against this
// package. A backend MUST, for the same problem, produce a solution whose
// penalty is minimal among feasible assignments and whose objective score
// is optimal subject to that; it MAY return a different assignment when
// ties exist, so callers must not rely on tie-break identity across
// backends. It MUST translate an internal unsat into a *Error with Kind
// NoFeasibleSolution (errors.Is-compatible with *Error{Kind:
// NoFeasibleSolution}) and
// populate a diagnostic set retrievable via WhyUnsat — a minimal unsat core
// is acceptable and preferred, unlike the native solver's over-approximate
// set. It MUST translate an internal timeout into the same Timeout error
// for SolveContext and into an early, partial return for
// AllSolutionsContext.
//
// internal/satbackend implements this contract over github.com/go-air/gini.
type Backend interface {
	// AddVariables explicitly registers vs, failing with MissingDomain if
	// any has no domain bound.
	AddVariables(vs ...*Variable) error

	// Require installs pred as a hard constraint. Domain constraints a
	// backend derives from a variable's membership in an expression MUST be
	// imposed as disjunctions over the variable's explicit domain values,
	// never as numeric ranges, to preserve finite-domain semantics
	// (including discrete float steps).
	Require(pred *BoolExpr, name ...string) error

	// Prefer installs pred as a soft constraint.
	Prefer(pred *BoolExpr, opts ...SoftOption) error

	// Maximize installs e as an objective to maximize.
	Maximize(e *Expr, opts ...ObjectiveOption) error

	// Minimize installs e as an objective to minimize.
	Minimize(e *Expr, opts ...ObjectiveOption) error

	// SolveContext returns the optimal feasible assignment, or a Timeout or
	// NoFeasibleSolution *Error.
	SolveContext(ctx context.Context) (Solution, error)

	// AllSolutionsContext enumerates up to limit feasible assignments
	// (limit <= 0 means unlimited); on timeout it returns a partial result
	// with no error, matching the native solver's contract.
	AllSolutionsContext(ctx context.Context, limit int) ([]Solution, error)

	// WhyUnsat returns the diagnostic set implicated in the most recent
	// infeasible search. Implementations should document in their own doc
	// comment whether the set is a minimal core or an over-approximation.
	WhyUnsat() []string
}

var _ Backend = (*nativeBackendAdapter)(nil)

// nativeBackendAdapter exposes *Solver through the Backend interface so
// code written against Backend can also target the native solver directly,
// e.g. in tests that run the same problem through both backends.
type nativeBackendAdapter struct {
	*Solver
}

// AsBackend wraps s so it satisfies Backend.
func AsBackend(s *Solver) Backend { return &nativeBackendAdapter{Solver: s} }
