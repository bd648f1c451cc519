package fdcsp

import "context"

// searchRun holds the mutable state of one Solve/AllSolutions invocation:
// the context governing timeout, the assignment-map pool backing
// copy-on-write search nodes, and the two ways a search can end early
// other than exhausting the tree (a fatal evaluation error, or the
// context's deadline).
type searchRun struct {
	solver   *Solver
	ctx      context.Context
	pool     *assignmentPool
	timedOut bool
	fatalErr error
}

// consistent evaluates every hard constraint against the partial assignment
// a. It returns false either because a constraint definitively evaluated to
// false (pruning this branch and recording the constraint's name for
// why-unsat) or because evaluation itself failed fatally, in which case
// r.fatalErr is set and the caller must stop the entire search rather than
// merely prune this branch.
func (r *searchRun) consistent(a Assignment) bool {
	for _, hc := range r.solver.hard {
		t, err := hc.pred.Evaluate(a)
		if err != nil {
			r.fatalErr = err
			return false
		}
		if t == TriFalse {
			r.solver.failed[hc.name] = true
			return false
		}
	}
	return true
}

// backtrack performs depth-first search by variable index, as required:
// select the variable at this depth, iterate its domain in order, assign
// into a fresh pooled copy of a, check consistency, and recurse. It returns
// false to signal the caller that the entire search must stop (the leaf
// callback asked to stop, the context deadline was hit, or a fatal
// evaluation error occurred), true to keep exploring sibling values.
func (r *searchRun) backtrack(a Assignment, idx int, onLeaf func(Assignment) bool) bool {
	if r.ctx.Err() != nil {
		r.timedOut = true
		return false
	}
	if idx == len(r.solver.vars) {
		return onLeaf(a)
	}

	v := r.solver.vars[idx]
	dom := v.Domain()
	for i := 0; i < dom.Len(); i++ {
		next := r.pool.clone(a)
		next[v.name] = dom.At(i).Value

		ok := r.consistent(next)
		if r.fatalErr != nil {
			r.pool.put(next)
			return false
		}

		cont := true
		if ok {
			cont = r.backtrack(next, idx+1, onLeaf)
		}
		r.pool.put(next)
		if !cont {
			return false
		}
	}
	return true
}

// computeScore implements §4.5's scoring rule for a complete leaf
// assignment by delegating to the package-level ScoreSolution, the same
// routine any alternative Backend uses.
func (s *Solver) computeScore(a Assignment) (Solution, error) {
	return ScoreSolution(s.mode, s.soft, s.objectives, a)
}
