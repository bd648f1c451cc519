package satbackend

import (
	"context"
	"sort"

	"github.com/pkg/errors"
)

const (
	satSatisfiable   = 1
	satUnsatisfiable = -1
)

// solveWithContext runs g.Solve() under assumptions already posted by the
// caller, honouring ctx's deadline. gini's Solve has no native cancellation
// hook, so the call runs in a background goroutine; on a context timeout
// this function returns immediately with timedOut=true, but the goroutine
// keeps running against the shared *gini.Gini until Solve() itself returns.
// SolveContext, AllSolutionsContext and findUnsatCore return as soon as this
// reports a timeout, so the abandoned Solve() may still be running when
// control is back with their caller; a further Assume/Solve on the same
// Backend before it finishes runs alongside it on the same *gini.Gini.
func (b *Backend) solveWithContext(ctx context.Context) (outcome int, timedOut bool) {
	done := make(chan int, 1)
	go func() { done <- b.g.Solve() }()
	select {
	case outcome = <-done:
		return outcome, false
	case <-ctx.Done():
		return 0, true
	}
}

// assumeStructural posts the unconditional domain-validity assumptions
// every solve needs regardless of which hard constraints are live.
func (b *Backend) assumeStructural() {
	b.g.Assume(b.domainGates...)
}

// assumeHard posts the assumption for every gate in gates.
func (b *Backend) assumeHard(gates []namedGate) {
	for _, ng := range gates {
		b.g.Assume(ng.lit)
	}
}

// findUnsatCore computes a locally minimal unsat core over b.hard by
// deletion: starting from the full set, it repeatedly tries dropping one
// constraint and re-solving; if the remainder is still unsatisfiable
// without it, that constraint is permanently dropped from the core,
// otherwise it is restored. What remains when every constraint has been
// tried is a set where removing any single member makes the rest
// satisfiable — the same guarantee deletion-based QuickXplain-style
// minimization gives, traded here for O(n) extra solves instead of a
// smarter divide-and-conquer, which is an acceptable cost at the problem
// sizes this package targets. Any b.unsatNames (predicates that compiled to
// an unconditionally-false gate, or variables with an empty domain) are
// always part of the core since no amount of dropping other constraints
// can make them satisfiable.
func (b *Backend) findUnsatCore(ctx context.Context) ([]string, error) {
	core := append([]namedGate(nil), b.hard...)

	for i := 0; i < len(core); {
		candidate := make([]namedGate, 0, len(core)-1)
		candidate = append(candidate, core[:i]...)
		candidate = append(candidate, core[i+1:]...)

		b.assumeStructural()
		b.assumeHard(candidate)
		outcome, timedOut := b.solveWithContext(ctx)
		if timedOut {
			return nil, errors.New("unsat core minimization timed out")
		}
		switch outcome {
		case satUnsatisfiable:
			core = candidate // constraint i wasn't needed; drop it permanently
		case satSatisfiable:
			i++ // constraint i is necessary; keep it and move on
		default:
			return nil, errors.Errorf("gini returned an indeterminate outcome %d during unsat core minimization", outcome)
		}
	}

	names := make([]string, 0, len(core)+len(b.unsatNames))
	names = append(names, b.unsatNames...)
	for _, ng := range core {
		names = append(names, ng.name)
	}
	sort.Strings(names)
	return names, nil
}
