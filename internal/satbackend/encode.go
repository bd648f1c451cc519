package satbackend

import (
	"github.com/go-air/gini/z"

	"github.com/gitrdm/fdcsp/pkg/fdcsp"
)

// compilePredicate compiles pred into a SAT gate by enumerating the
// Cartesian product of its free variables' domains and evaluating pred
// natively (via BoolExpr.Evaluate) against each combination: the combination
// is satisfied iff that row's conjunction of "variable equals this value"
// literals holds, so the whole predicate becomes the disjunction ("Or") of
// every true row's conjunction ("And") of per-variable equality literals.
// This is exhaustive and exact because every free variable's domain is
// finite — the same justification spec.md gives for naive at_least_k /
// exactly_k enumeration, generalized to an arbitrary predicate.
//
// alwaysTrue is reported when every row is satisfied (no gate needed,
// caller should not assume anything). alwaysFalse is reported when no row
// is satisfied (the constraint can never hold; caller should treat the
// whole problem as infeasible without compiling a gate).
func (b *Backend) compilePredicate(pred *fdcsp.BoolExpr) (gate z.Lit, alwaysTrue, alwaysFalse bool, err error) {
	free := pred.FreeVars()
	rows := cartesian(free, b)

	var rowGates []z.Lit
	trueRows, totalRows := 0, len(rows)
	for _, row := range rows {
		a := make(fdcsp.Assignment, len(free))
		for i, v := range free {
			a[v.Name()] = row[i].value
		}
		t, evalErr := pred.Evaluate(a)
		if evalErr != nil {
			return z.LitNull, false, false, evalErr
		}
		if t != fdcsp.TriTrue {
			continue
		}
		trueRows++

		lits := make([]z.Lit, len(free))
		for i, v := range free {
			lits[i] = b.varLits[v][row[i].index]
		}
		rowGates = append(rowGates, b.c.Ands(lits...))
	}

	if trueRows == 0 {
		return z.LitNull, false, true, nil
	}
	if trueRows == totalRows {
		return z.LitNull, true, false, nil
	}
	return b.c.Ors(rowGates...), false, false, nil
}

// domainChoice is one row's chosen value for one free variable: its index
// into that variable's domain (used to look up the corresponding literal)
// and the concrete value (used to build a native Assignment to evaluate the
// predicate against).
type domainChoice struct {
	index int
	value float64
}

// cartesian enumerates every combination of free variables' domain values,
// in domain-declaration order, free-variable order. Every free variable must
// already be registered (Require/Prefer/Maximize/Minimize register their
// free set before compiling), so b.varLits[v] and v.Domain() agree on
// length and order.
func cartesian(free []*fdcsp.Variable, b *Backend) [][]domainChoice {
	if len(free) == 0 {
		return [][]domainChoice{{}}
	}
	domains := make([][]domainChoice, len(free))
	for i, v := range free {
		values := v.Domain().Values()
		choices := make([]domainChoice, len(values))
		for j, dv := range values {
			choices[j] = domainChoice{index: j, value: dv.Value}
		}
		domains[i] = choices
	}

	rows := [][]domainChoice{{}}
	for _, choices := range domains {
		var next [][]domainChoice
		for _, row := range rows {
			for _, c := range choices {
				r := make([]domainChoice, len(row), len(row)+1)
				copy(r, row)
				next = append(next, append(r, c))
			}
		}
		rows = next
	}
	return rows
}

// decode reads the current SAT model into a native fdcsp.Assignment: for
// each registered variable, the one literal among its one-hot set that g
// reports true identifies the selected domain value.
func (b *Backend) decode() fdcsp.Assignment {
	a := make(fdcsp.Assignment, len(b.vars))
	for _, v := range b.vars {
		lits := b.varLits[v]
		values := v.Domain().Values()
		for i, lit := range lits {
			if b.g.Value(lit) {
				a[v.Name()] = values[i].Value
				break
			}
		}
	}
	return a
}

// blockingGate builds the clause that forbids exactly the assignment
// currently encoded by a's selected literals, so the next solve (if any)
// must find a different one.
func (b *Backend) blockingGate(a fdcsp.Assignment) z.Lit {
	selected := make([]z.Lit, 0, len(b.vars))
	for _, v := range b.vars {
		lits := b.varLits[v]
		values := v.Domain().Values()
		val := a[v.Name()]
		for i, dv := range values {
			if dv.Value == val {
				selected = append(selected, lits[i].Not())
				break
			}
		}
	}
	return b.c.Ors(selected...)
}
