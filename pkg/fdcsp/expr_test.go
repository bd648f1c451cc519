package fdcsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprEvalArithmetic(t *testing.T) {
	x := NewVar("x").Interval(1, 9)
	y := NewVar("y").Set(2, 4, 6, 8)
	e := x.Expr().Add(y.Expr()).Mul(Lit(2))

	v, ok, err := e.Eval(Assignment{"x": 3, "y": 4})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(14), v)
}

func TestExprEvalMissingVariableIsUndeterminedNotError(t *testing.T) {
	x := NewVar("x").Interval(1, 9)
	e := x.Expr().Add(Lit(1))

	_, ok, err := e.Eval(Assignment{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExprEvalDivisionByZeroIsFatal(t *testing.T) {
	x := NewVar("x").Interval(1, 9)
	e := x.Expr().Div(Lit(0))

	_, _, err := e.Eval(Assignment{"x": 5})
	require.Error(t, err)
	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, Evaluation, fe.Kind)
}

func TestExprEvalModuloByZeroIsFatal(t *testing.T) {
	x := NewVar("x").Interval(1, 9)
	e := x.Expr().Mod(Lit(0))

	_, _, err := e.Eval(Assignment{"x": 5})
	require.Error(t, err)
}

func TestExprFreeVars(t *testing.T) {
	x := NewVar("x").Interval(1, 9)
	y := NewVar("y").Interval(1, 9)
	e := x.Expr().Add(y.Expr()).Mul(Lit(3))
	free := e.FreeVars()
	assert.Len(t, free, 2)
}

func TestExprAbsAndNeg(t *testing.T) {
	x := NewVar("x").Interval(-5, 5)
	v, ok, err := x.Expr().Neg().Abs().Eval(Assignment{"x": -3})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(3), v)
}

func TestFloorDivAndPow(t *testing.T) {
	v, _, err := FloorDiv(Lit(7), Lit(2)).Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, float64(3), v)

	v, _, err = Pow(Lit(2), Lit(10)).Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, float64(1024), v)
}
