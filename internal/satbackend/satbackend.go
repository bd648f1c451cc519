// Package satbackend implements fdcsp.Backend over github.com/go-air/gini, a
// pure-Go SAT solver. Finite domains are encoded as one-hot boolean literal
// sets, hard constraints are compiled into SAT circuits by enumerating their
// free variables' domains and evaluating the predicate natively (the same
// "naive enumeration" spec.md licenses for at_least_k/exactly_k,
// generalized to any predicate), and soft constraints and objectives are
// never encoded into SAT at all: every decoded model is scored by the exact
// same fdcsp.ScoreSolution/fdcsp.BetterSolution routines the native solver
// uses, which is what makes the two backends' penalty and objective scores
// agree by construction.
//
// Grounded on operator-framework-operator-lifecycle-manager's
// pkg/controller/registry/resolver/solver package, the only user of
// github.com/go-air/gini in the retrieval pack.
package satbackend

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/gitrdm/fdcsp/pkg/fdcsp"
)

// namedGate pairs a hard constraint's display name with the SAT literal
// whose truth represents it. Its assumption must hold in every solve.
type namedGate struct {
	name string
	lit  z.Lit
}

// Backend is a fdcsp.Backend implementation backed by a single incremental
// gini instance. Like fdcsp.Solver, a Backend is not safe for concurrent
// use. When a SolveContext or AllSolutionsContext call times out mid-solve,
// the SAT call it started keeps running in the background after the method
// returns — see solveWithContext's doc comment.
type Backend struct {
	mode fdcsp.ObjectiveMode

	g *gini.Gini
	c *logic.C

	// marks tracks which circuit nodes logic.C has already taught g's CNF,
	// per the incremental CnfSince pattern (see lit_mapping.go's
	// CardinalityConstrainer in the retrieval pack).
	marks []int8

	vars    []*fdcsp.Variable
	seen    map[*fdcsp.Variable]bool
	varLits map[*fdcsp.Variable][]z.Lit

	// domainGates holds one "exactly one value selected" gate per
	// registered variable, assumed unconditionally on every solve; these
	// are structural and never appear in WhyUnsat.
	domainGates []z.Lit

	hard       []namedGate
	// unsatNames holds hard constraints that enumerated to an empty truth
	// table (unconditionally false for every combination of their free
	// variables' domain values) or a variable registered with an empty
	// domain: the problem is infeasible regardless of search, so these
	// names are reported by WhyUnsat without ever invoking the SAT search.
	unsatNames []string

	soft       []fdcsp.Soft
	objectives []fdcsp.Objective

	lastCore []string
}

var _ fdcsp.Backend = (*Backend)(nil)

// New constructs a Backend in the given objective mode ("lex" or "sum").
func New(mode string) (*Backend, error) {
	m, err := fdcsp.ParseObjectiveMode(mode)
	if err != nil {
		return nil, err
	}
	return &Backend{
		mode:    m,
		g:       gini.New(),
		c:       logic.NewCCap(64),
		seen:    make(map[*fdcsp.Variable]bool),
		varLits: make(map[*fdcsp.Variable][]z.Lit),
	}, nil
}

// teach incrementally hands logic.C's newest clauses rooted at lit to g,
// per the CnfSince pattern: marks records which circuit nodes were already
// taught so only the newly built portion of the circuit is converted.
func (b *Backend) teach(lit z.Lit) {
	b.marks, _ = b.c.CnfSince(b.g, b.marks, lit)
}

// registerOne allocates one literal per domain value for v and a structural
// "exactly one" gate over them, teaching it immediately. A variable with an
// empty domain makes the whole problem unconditionally infeasible.
func (b *Backend) registerOne(v *fdcsp.Variable) error {
	if b.seen[v] {
		return nil
	}
	if !v.HasDomain() {
		return &fdcsp.Error{Kind: fdcsp.MissingDomain, Msg: "variable \"" + v.Name() + "\" has no domain bound"}
	}
	b.seen[v] = true
	b.vars = append(b.vars, v)

	dom := v.Domain()
	if dom.Len() == 0 {
		b.unsatNames = append(b.unsatNames, "variable \""+v.Name()+"\" has an empty domain")
		b.varLits[v] = nil
		return nil
	}

	lits := make([]z.Lit, dom.Len())
	for i := range lits {
		lits[i] = b.c.Lit()
	}
	b.varLits[v] = lits

	atLeastOne := b.c.Ors(lits...)
	atMostOne := b.c.CardSort(lits).Leq(1)
	gate := b.c.Ands(atLeastOne, atMostOne)
	b.teach(gate)
	b.domainGates = append(b.domainGates, gate)
	return nil
}

func (b *Backend) registerFree(free []*fdcsp.Variable) error {
	for _, v := range free {
		if err := b.registerOne(v); err != nil {
			return err
		}
	}
	return nil
}

// AddVariables explicitly registers vs, failing with MissingDomain if any
// has no domain bound.
func (b *Backend) AddVariables(vs ...*fdcsp.Variable) error {
	return b.registerFree(vs)
}

// Require installs pred as a hard constraint, compiling it into a SAT gate
// by truth-table enumeration over its free variables' domains (see
// encode.go's compilePredicate).
func (b *Backend) Require(pred *fdcsp.BoolExpr, name ...string) error {
	if err := b.registerFree(pred.FreeVars()); err != nil {
		return err
	}
	n := pred.Name()
	if len(name) > 0 && name[0] != "" {
		n = name[0]
	}

	gate, alwaysTrue, alwaysFalse, err := b.compilePredicate(pred)
	if err != nil {
		return err
	}
	switch {
	case alwaysFalse:
		b.unsatNames = append(b.unsatNames, n)
	case alwaysTrue:
		// Vacuously satisfied; no SAT gate needed.
	default:
		b.teach(gate)
		b.hard = append(b.hard, namedGate{name: n, lit: gate})
	}
	return nil
}

// Prefer installs pred as a soft constraint. Soft constraints are never
// encoded into SAT; every decoded model is scored against them natively.
func (b *Backend) Prefer(pred *fdcsp.BoolExpr, opts ...fdcsp.SoftOption) error {
	if err := b.registerFree(pred.FreeVars()); err != nil {
		return err
	}
	b.soft = append(b.soft, fdcsp.NewSoft(pred, opts...))
	return nil
}

// Maximize installs e as an objective to maximize.
func (b *Backend) Maximize(e *fdcsp.Expr, opts ...fdcsp.ObjectiveOption) error {
	return b.addObjective(e, fdcsp.Maximize, opts...)
}

// Minimize installs e as an objective to minimize.
func (b *Backend) Minimize(e *fdcsp.Expr, opts ...fdcsp.ObjectiveOption) error {
	return b.addObjective(e, fdcsp.Minimize, opts...)
}

func (b *Backend) addObjective(e *fdcsp.Expr, sense fdcsp.Sense, opts ...fdcsp.ObjectiveOption) error {
	if err := b.registerFree(e.FreeVars()); err != nil {
		return err
	}
	o := fdcsp.Objective{Expr: e, Sense: sense, Weight: 1}
	for _, opt := range opts {
		opt(&o)
	}
	b.objectives = append(b.objectives, o)
	return nil
}

// WhyUnsat returns the hard-constraint names implicated in the most recent
// infeasible SolveContext call; AllSolutionsContext does not update it.
// Unlike the native
// Solver's over-approximate set, this is a locally minimal unsat core: see
// unsatcore.go's deletion-based minimization.
func (b *Backend) WhyUnsat() []string { return b.lastCore }
