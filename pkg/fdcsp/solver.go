package fdcsp

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// hardConstraint pairs an installed predicate with the name its violations
// are recorded under for why-unsat diagnosis.
type hardConstraint struct {
	name string
	pred *BoolExpr
}

// Solver is the native backtracking solver: registered variables, hard and
// soft constraints, and objectives, searched depth-first in registration
// order. A Solver is not safe for concurrent use; the expression trees it
// references are immutable and may be shared across solver instances.
type Solver struct {
	mode ObjectiveMode
	cfg  solverConfig

	logger zerolog.Logger

	vars []*Variable
	seen map[*Variable]bool

	hard       []hardConstraint
	soft       []Soft
	objectives []Objective

	// failed is the solver-local, per-invocation set of hard-constraint
	// names that falsified at least one partial assignment during the most
	// recent Solve/AllSolutions call.
	failed map[string]bool
}

// NewSolver constructs a Solver in the given objective mode ("lex" or
// "sum"); any other value is an invalid-mode error raised at construction.
func NewSolver(mode string, opts ...Option) (*Solver, error) {
	m, err := ParseObjectiveMode(mode)
	if err != nil {
		return nil, err
	}
	cfg := solverConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Solver{
		mode:   m,
		cfg:    cfg,
		logger: newTraceLogger(cfg.trace),
		seen:   make(map[*Variable]bool),
		failed: make(map[string]bool),
	}, nil
}

// registerFree implicitly registers every variable in a free set, failing
// with MissingDomain if any has no domain bound yet.
func (s *Solver) registerFree(free []*Variable) error {
	for _, v := range free {
		if !v.hasDomain() {
			return newError(MissingDomain, "variable %q referenced by an installed expression has no domain bound", v.name)
		}
	}
	for _, v := range free {
		if !s.seen[v] {
			s.seen[v] = true
			s.vars = append(s.vars, v)
		}
	}
	return nil
}

// AddVariables explicitly registers vs in the given order, failing with
// MissingDomain if any has no domain bound.
func (s *Solver) AddVariables(vs ...*Variable) error {
	for _, v := range vs {
		if !v.hasDomain() {
			return newError(MissingDomain, "variable %q has no domain bound", v.name)
		}
	}
	for _, v := range vs {
		if !s.seen[v] {
			s.seen[v] = true
			s.vars = append(s.vars, v)
		}
	}
	return nil
}

// Require installs pred as a hard constraint every feasible assignment must
// satisfy. An optional name overrides pred's own display name for why-unsat
// reporting.
func (s *Solver) Require(pred *BoolExpr, name ...string) error {
	if err := s.registerFree(pred.FreeVars()); err != nil {
		return err
	}
	n := pred.Name()
	if len(name) > 0 && name[0] != "" {
		n = name[0]
	}
	s.hard = append(s.hard, hardConstraint{name: n, pred: pred})
	return nil
}

// RequireAll posts f(v) as a hard constraint for every v in vs, ported from
// the adapter contract's require_all convenience.
func (s *Solver) RequireAll(f func(*Variable) *BoolExpr, vs []*Variable) error {
	for _, v := range vs {
		if err := s.Require(f(v)); err != nil {
			return err
		}
	}
	return nil
}

// RequireIf posts cond -> then as a hard constraint, ported from the
// adapter contract's require_if convenience.
func (s *Solver) RequireIf(cond, then *BoolExpr) error {
	return s.Require(cond.Implies(then))
}

// Prefer installs pred as a soft constraint; see SoftOption for penalty,
// weight, and name overrides.
func (s *Solver) Prefer(pred *BoolExpr, opts ...SoftOption) error {
	if err := s.registerFree(pred.FreeVars()); err != nil {
		return err
	}
	s.soft = append(s.soft, NewSoft(pred, opts...))
	return nil
}

// Maximize installs e as an objective to maximize.
func (s *Solver) Maximize(e *Expr, opts ...ObjectiveOption) error {
	if err := s.registerFree(e.FreeVars()); err != nil {
		return err
	}
	s.objectives = append(s.objectives, newObjective(e, Maximize, opts...))
	return nil
}

// Minimize installs e as an objective to minimize.
func (s *Solver) Minimize(e *Expr, opts ...ObjectiveOption) error {
	if err := s.registerFree(e.FreeVars()); err != nil {
		return err
	}
	s.objectives = append(s.objectives, newObjective(e, Minimize, opts...))
	return nil
}

// WhyUnsat returns the hard-constraint names implicated in the most recent
// Solve/AllSolutions invocation's infeasibility: every name whose predicate
// falsified at least one partial assignment during the search. This is an
// over-approximation, not a minimal unsat core; see internal/satbackend for
// a backend that computes a minimal core instead.
func (s *Solver) WhyUnsat() []string {
	names := make([]string, 0, len(s.failed))
	for n := range s.failed {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Pretty renders sol per the deterministic pretty-printing contract.
func (s *Solver) Pretty(sol Solution) string { return sol.Pretty() }

// Solve searches for the optimal feasible assignment within timeout. A
// non-positive timeout is already-expired, per the timeout contract.
func (s *Solver) Solve(timeout time.Duration) (Solution, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.SolveContext(ctx)
}

// SolveContext searches for the optimal feasible assignment, cancellable
// via ctx; pass context.Background() for no timeout.
func (s *Solver) SolveContext(ctx context.Context) (Solution, error) {
	s.failed = make(map[string]bool)
	pool := newAssignmentPool(len(s.vars))
	a := pool.get()
	defer pool.put(a)

	run := &searchRun{solver: s, ctx: ctx, pool: pool}

	var best *Solution
	run.backtrack(a, 0, func(leaf Assignment) bool {
		cp := make(Assignment, len(leaf))
		for k, v := range leaf {
			cp[k] = v
		}
		sol, err := s.computeScore(cp)
		if err != nil {
			run.fatalErr = err
			return false
		}
		if best == nil || BetterSolution(sol, *best) {
			best = &sol
			if s.cfg.trace {
				s.logger.Info().Int("penalty", sol.Penalty).Msg("new best")
			}
		}
		return true
	})

	if run.fatalErr != nil {
		return Solution{}, run.fatalErr
	}
	if run.timedOut {
		if s.cfg.trace {
			s.logger.Info().Msg("solve timed out")
		}
		return Solution{}, newError(Timeout, "solve exceeded its time budget")
	}
	if best == nil {
		if s.cfg.trace {
			s.logger.Info().Strs("failed", s.WhyUnsat()).Msg("no feasible solution")
		}
		return Solution{}, newError(NoFeasibleSolution, "no feasible solution")
	}
	return *best, nil
}

// AllSolutions enumerates up to limit feasible assignments (limit <= 0
// means unlimited) within timeout, in DFS order. On timeout it returns
// whatever it has collected so far, with no error.
func (s *Solver) AllSolutions(limit int, timeout time.Duration) ([]Solution, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.AllSolutionsContext(ctx, limit)
}

// AllSolutionsContext enumerates feasible assignments, cancellable via ctx;
// pass context.Background() for no timeout.
func (s *Solver) AllSolutionsContext(ctx context.Context, limit int) ([]Solution, error) {
	s.failed = make(map[string]bool)
	pool := newAssignmentPool(len(s.vars))
	a := pool.get()
	defer pool.put(a)

	run := &searchRun{solver: s, ctx: ctx, pool: pool}

	var out []Solution
	run.backtrack(a, 0, func(leaf Assignment) bool {
		cp := make(Assignment, len(leaf))
		for k, v := range leaf {
			cp[k] = v
		}
		sol, err := s.computeScore(cp)
		if err != nil {
			run.fatalErr = err
			return false
		}
		out = append(out, sol)
		if s.cfg.trace {
			s.logger.Info().Int("count", len(out)).Msg("collected solution")
		}
		if limit > 0 && len(out) >= limit {
			return false
		}
		return true
	})

	if run.fatalErr != nil {
		return nil, run.fatalErr
	}
	if run.timedOut && s.cfg.trace {
		s.logger.Info().Int("collected", len(out)).Msg("all_solutions timed out, returning partial results")
	}
	return out, nil
}
