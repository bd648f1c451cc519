package fdcsp

import "sync"

// assignmentPool recycles the map each search-tree node would otherwise
// allocate fresh, mirroring the teacher's SolverState pooling for the same
// reason: backtracking churns through one short-lived map per node, and the
// pool amortises that churn without changing search semantics.
type assignmentPool struct {
	pool sync.Pool
}

func newAssignmentPool(hint int) *assignmentPool {
	p := &assignmentPool{}
	p.pool.New = func() interface{} {
		return make(Assignment, hint)
	}
	return p
}

func (p *assignmentPool) get() Assignment {
	return p.pool.Get().(Assignment)
}

// put clears and returns the map to the pool.
func (p *assignmentPool) put(a Assignment) {
	for k := range a {
		delete(a, k)
	}
	p.pool.Put(a)
}

// clone returns a pooled copy of a, used when branching needs an
// independent map for the recursive call while the caller retains its own.
func (p *assignmentPool) clone(a Assignment) Assignment {
	cp := p.get()
	for k, v := range a {
		cp[k] = v
	}
	return cp
}
