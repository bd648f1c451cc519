package satbackend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdcsp/pkg/fdcsp"
)

// S1 from spec.md §8, authored independently of pkg/fdcsp's own
// backend_test.go (a _test.go helper in another package can't be imported
// across package boundaries): x in [1..9], y in {2,4,6,8}; require
// x+y=10; maximize x*y. Expected penalty 0, objective 24.
func TestScenarioS1(t *testing.T) {
	b, err := New("lex")
	require.NoError(t, err)

	x := fdcsp.NewVar("x").Interval(1, 9)
	y := fdcsp.NewVar("y").Set(2, 4, 6, 8)

	require.NoError(t, b.Require(x.Expr().Add(y.Expr()).Eq(fdcsp.Lit(10)), "x_plus_y_is_10"))
	require.NoError(t, b.Maximize(x.Expr().Mul(y.Expr())))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sol, err := b.SolveContext(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, sol.Penalty)
	require.Len(t, sol.Objectives, 1)
	assert.Equal(t, float64(24), sol.Objectives[0])

	xv, yv := sol.Assignment["x"], sol.Assignment["y"]
	assert.True(t, (xv == 4 && yv == 6) || (xv == 6 && yv == 4), "unexpected assignment x=%v y=%v", xv, yv)
}

// S2 from spec.md §8: a,b,c in [1..3]; require distinct; maximize sum.
func TestScenarioS2(t *testing.T) {
	b, err := New("lex")
	require.NoError(t, err)

	a := fdcsp.NewVar("a").Interval(1, 3)
	bb := fdcsp.NewVar("b").Interval(1, 3)
	c := fdcsp.NewVar("c").Interval(1, 3)

	require.NoError(t, b.Require(fdcsp.Distinct(a, bb, c)))
	require.NoError(t, b.Maximize(fdcsp.SumOf(a, bb, c)))

	sol, err := b.SolveContext(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sol.Penalty)
	assert.Equal(t, float64(6), sol.Objectives[0])

	seen := map[float64]bool{sol.Assignment["a"]: true, sol.Assignment["b"]: true, sol.Assignment["c"]: true}
	assert.True(t, seen[1] && seen[2] && seen[3])
}

// S3 from spec.md §8: x in {1}, y in {2}; require x+y=100 — unconditionally
// false for the only combination of x and y's fixed domains, so this
// exercises the compile-time (not search-time) infeasibility path.
func TestScenarioS3TrivialInfeasibility(t *testing.T) {
	b, err := New("lex")
	require.NoError(t, err)

	x := fdcsp.NewVar("x").Set(1)
	y := fdcsp.NewVar("y").Set(2)
	require.NoError(t, b.Require(x.Expr().Add(y.Expr()).Eq(fdcsp.Lit(100)), "sum_is_100"))

	_, err = b.SolveContext(context.Background())
	require.Error(t, err)
	var fe *fdcsp.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fdcsp.NoFeasibleSolution, fe.Kind)
	assert.Equal(t, []string{"sum_is_100"}, b.WhyUnsat())
}

// A case that is infeasible only through the interaction of two hard
// constraints on x, alongside a third, independently satisfiable
// constraint on an unrelated variable y that is never needed for the
// conflict. This exercises the deletion-based unsat-core search actually
// running a SAT check to prove y's constraint droppable, rather than the
// compile-time trivial-falsity shortcut Require takes for a constraint
// whose truth table is empty.
func TestUnsatCoreDropsIrrelevantConstraint(t *testing.T) {
	b, err := New("lex")
	require.NoError(t, err)

	x := fdcsp.NewVar("x").Interval(1, 3)
	y := fdcsp.NewVar("y").Interval(1, 5)

	require.NoError(t, b.Require(x.Expr().Le(fdcsp.Lit(1)), "x_at_most_1"))
	require.NoError(t, b.Require(x.Expr().Ge(fdcsp.Lit(2)), "x_at_least_2"))
	require.NoError(t, b.Require(y.Expr().Le(fdcsp.Lit(3)), "y_at_most_3"))

	_, err = b.SolveContext(context.Background())
	require.Error(t, err)
	var fe *fdcsp.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fdcsp.NoFeasibleSolution, fe.Kind)

	assert.Equal(t, []string{"x_at_least_2", "x_at_most_1"}, b.WhyUnsat())
}

// S4 from spec.md §8, sum mode: x,y in {0,1}; prefer x=1 (penalty 1, weight
// 5); prefer y=1 (penalty 1, weight 1); require x+y=1. Expected (x=1,y=0),
// penalty 1, objective -1.
func TestScenarioS4(t *testing.T) {
	b, err := New("sum")
	require.NoError(t, err)

	x := fdcsp.NewVar("x").Set(0, 1)
	y := fdcsp.NewVar("y").Set(0, 1)

	require.NoError(t, b.Prefer(x.Expr().Eq(fdcsp.Lit(1)), fdcsp.WithPenalty(1), fdcsp.WithWeight(5)))
	require.NoError(t, b.Prefer(y.Expr().Eq(fdcsp.Lit(1)), fdcsp.WithPenalty(1), fdcsp.WithWeight(1)))
	require.NoError(t, b.Require(x.Expr().Add(y.Expr()).Eq(fdcsp.Lit(1))))

	sol, err := b.SolveContext(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(1), sol.Assignment["x"])
	assert.Equal(t, float64(0), sol.Assignment["y"])
	assert.Equal(t, 1, sol.Penalty)
	assert.Equal(t, float64(-1), sol.Objective)
}

// S5 from spec.md §8: x,y in [1..3]; require x+y=4; all_solutions(limit=2).
func TestScenarioS5AllSolutionsWithLimit(t *testing.T) {
	b, err := New("lex")
	require.NoError(t, err)

	x := fdcsp.NewVar("x").Interval(1, 3)
	y := fdcsp.NewVar("y").Interval(1, 3)
	require.NoError(t, b.Require(x.Expr().Add(y.Expr()).Eq(fdcsp.Lit(4))))

	sols, err := b.AllSolutionsContext(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, sols, 2)

	for _, sol := range sols {
		xv, yv := sol.Assignment["x"], sol.Assignment["y"]
		assert.Equal(t, float64(4), xv+yv)
	}
}

func TestAllSolutionsExhaustiveWithoutLimit(t *testing.T) {
	b, err := New("lex")
	require.NoError(t, err)

	x := fdcsp.NewVar("x").Interval(1, 3)
	y := fdcsp.NewVar("y").Interval(1, 3)
	require.NoError(t, b.Require(x.Expr().Add(y.Expr()).Eq(fdcsp.Lit(4))))

	sols, err := b.AllSolutionsContext(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, sols, 3)
}

func TestMissingDomainFailsRegistration(t *testing.T) {
	b, err := New("lex")
	require.NoError(t, err)
	x := fdcsp.NewVar("x") // no domain bound
	err = b.Require(x.Expr().Eq(fdcsp.Lit(1)))
	require.Error(t, err)
	var fe *fdcsp.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fdcsp.MissingDomain, fe.Kind)
}

func TestEmptyDomainIsInfeasibleNotAConstructionError(t *testing.T) {
	b, err := New("lex")
	require.NoError(t, err)
	x := fdcsp.NewVar("x").Interval(5, 1) // deliberately empty per domain.go
	require.NoError(t, b.AddVariables(x))

	_, err = b.SolveContext(context.Background())
	require.Error(t, err)
	var fe *fdcsp.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fdcsp.NoFeasibleSolution, fe.Kind)
}

func TestSolveContextCancellationRaisesTimeout(t *testing.T) {
	b, err := New("lex")
	require.NoError(t, err)
	x := fdcsp.NewVar("x").Interval(1, 9)
	require.NoError(t, b.AddVariables(x))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.SolveContext(ctx)
	require.Error(t, err)
	var fe *fdcsp.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fdcsp.Timeout, fe.Kind)
}

func TestAllSolutionsContextTimeoutReturnsPartialNoError(t *testing.T) {
	b, err := New("lex")
	require.NoError(t, err)
	x := fdcsp.NewVar("x").Interval(1, 9)
	require.NoError(t, b.AddVariables(x))

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	sols, err := b.AllSolutionsContext(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, sols)
}

// *Backend is assignable to fdcsp.Backend, confirming the method set
// matches without relying on reflection.
func TestBackendSatisfiesInterface(t *testing.T) {
	b, err := New("lex")
	require.NoError(t, err)
	var _ fdcsp.Backend = b
}
