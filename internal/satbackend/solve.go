package satbackend

import (
	"context"
	"sort"

	"github.com/go-air/gini/z"
	"github.com/pkg/errors"

	"github.com/gitrdm/fdcsp/pkg/fdcsp"
)

// SolveContext searches for the optimal feasible assignment via blocking-
// clause enumeration: solve, decode and score the model, record it if it
// betters the incumbent, add a clause forbidding exactly that assignment,
// and repeat until the formula becomes unsatisfiable (every assignment has
// been seen) or ctx's deadline passes. This mirrors the adapter contract's
// own description of a blocking-clause optimization loop over a SAT
// backend. Cancellable via ctx; pass context.Background() for no timeout.
func (b *Backend) SolveContext(ctx context.Context) (fdcsp.Solution, error) {
	if len(b.unsatNames) > 0 {
		b.lastCore = sortedCopy(b.unsatNames)
		return fdcsp.Solution{}, &fdcsp.Error{Kind: fdcsp.NoFeasibleSolution, Msg: "no feasible solution"}
	}
	b.lastCore = nil

	var best *fdcsp.Solution
	var blocking []z.Lit

	for ctx.Err() == nil {
		b.assumeStructural()
		b.assumeHard(b.hard)
		b.g.Assume(blocking...)

		outcome, timedOut := b.solveWithContext(ctx)
		if timedOut {
			break
		}
		if outcome == satUnsatisfiable {
			break
		}
		if outcome != satSatisfiable {
			return fdcsp.Solution{}, errors.Errorf("gini returned an indeterminate outcome %d", outcome)
		}

		a := b.decode()
		sol, err := fdcsp.ScoreSolution(b.mode, b.soft, b.objectives, a)
		if err != nil {
			return fdcsp.Solution{}, err
		}
		if best == nil || fdcsp.BetterSolution(sol, *best) {
			best = &sol
		}

		gate := b.blockingGate(a)
		b.teach(gate)
		blocking = append(blocking, gate)
	}

	if ctx.Err() != nil {
		return fdcsp.Solution{}, &fdcsp.Error{Kind: fdcsp.Timeout, Msg: "solve exceeded its time budget"}
	}
	if best == nil {
		core, err := b.findUnsatCore(ctx)
		if err != nil {
			return fdcsp.Solution{}, errors.Wrap(err, "why-unsat diagnosis failed")
		}
		b.lastCore = core
		return fdcsp.Solution{}, &fdcsp.Error{Kind: fdcsp.NoFeasibleSolution, Msg: "no feasible solution"}
	}
	return *best, nil
}

// AllSolutionsContext enumerates up to limit feasible assignments (limit <=
// 0 means unlimited) via the same blocking-clause loop as SolveContext,
// stopping when the formula is exhausted, the limit is reached, or ctx's
// deadline passes. On timeout or exhaustion it returns whatever it has
// collected with no error, matching the native solver's contract; only a
// fatal evaluation error while scoring a decoded model is returned as an
// error.
func (b *Backend) AllSolutionsContext(ctx context.Context, limit int) ([]fdcsp.Solution, error) {
	if len(b.unsatNames) > 0 {
		return nil, nil
	}

	var out []fdcsp.Solution
	var blocking []z.Lit

	for ctx.Err() == nil {
		b.assumeStructural()
		b.assumeHard(b.hard)
		b.g.Assume(blocking...)

		outcome, timedOut := b.solveWithContext(ctx)
		if timedOut || outcome != satSatisfiable {
			break
		}

		a := b.decode()
		sol, err := fdcsp.ScoreSolution(b.mode, b.soft, b.objectives, a)
		if err != nil {
			return nil, err
		}
		out = append(out, sol)
		if limit > 0 && len(out) >= limit {
			break
		}

		gate := b.blockingGate(a)
		b.teach(gate)
		blocking = append(blocking, gate)
	}
	return out, nil
}

func sortedCopy(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	sort.Strings(out)
	return out
}
