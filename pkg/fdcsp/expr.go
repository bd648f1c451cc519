package fdcsp

import "math"

// exprKind tags the variant an Expr node holds. Evaluation dispatches on
// this tag rather than on closures, so expression trees are plain data and
// safe to share across solvers.
type exprKind int

const (
	exprLiteral exprKind = iota
	exprVar
	exprNeg
	exprAbs
	exprAdd
	exprSub
	exprMul
	exprDiv
	exprFloorDiv
	exprMod
	exprPow
)

// Expr is an immutable arithmetic expression tree node. Leaves are literals
// or variable references; internal nodes are unary negation/absolute value
// or one of the binary arithmetic operators. Every node carries its free
// set — the variables it transitively depends on — computed once at
// construction.
type Expr struct {
	kind     exprKind
	literal  float64
	variable *Variable
	left     *Expr
	right    *Expr
	free     []*Variable
}

// Lit lifts a constant numeric literal into an arithmetic expression leaf.
func Lit(v float64) *Expr {
	return &Expr{kind: exprLiteral, literal: v}
}

// coerceExpr lifts any of *Variable, *Expr, int, or float64 into an *Expr.
// It is the single entry point every arithmetic operator funnels through,
// per the re-architecture away from the source's runtime type branching.
func coerceExpr(operand interface{}) *Expr {
	switch t := operand.(type) {
	case *Expr:
		return t
	case *Variable:
		return t.Expr()
	case int:
		return Lit(float64(t))
	case float64:
		return Lit(t)
	default:
		panic(newError(TypeErr, "cannot coerce %T into an arithmetic expression", operand))
	}
}

// freeSet computes the node's free set once, in a deterministic left-to-right
// first-seen traversal order rather than map iteration order: spec §5
// requires that registration order (and so search order) be stable and
// reproducible from the expression tree's own structure.
func (e *Expr) freeSet() []*Variable {
	if e.free != nil {
		return e.free
	}
	seen := make(map[*Variable]bool)
	var free []*Variable
	add := func(v *Variable) {
		if !seen[v] {
			seen[v] = true
			free = append(free, v)
		}
	}
	if e.kind == exprVar {
		add(e.variable)
	}
	if e.left != nil {
		for _, v := range e.left.freeSet() {
			add(v)
		}
	}
	if e.right != nil {
		for _, v := range e.right.freeSet() {
			add(v)
		}
	}
	e.free = free
	return free
}

// FreeVars returns the variables this expression transitively depends on,
// in deterministic first-seen traversal order.
func (e *Expr) FreeVars() []*Variable {
	free := e.freeSet()
	out := make([]*Variable, len(free))
	copy(out, free)
	return out
}

func binaryExpr(kind exprKind, a, b interface{}) *Expr {
	l, r := coerceExpr(a), coerceExpr(b)
	e := &Expr{kind: kind, left: l, right: r}
	e.freeSet()
	return e
}

func unaryExpr(kind exprKind, a interface{}) *Expr {
	l := coerceExpr(a)
	e := &Expr{kind: kind, left: l}
	e.freeSet()
	return e
}

// Add, Sub, Mul, Div, FloorDiv, Mod, and Pow build binary arithmetic nodes.
// Each accepts *Variable, *Expr, int, or float64 on either side.
func Add(a, b interface{}) *Expr      { return binaryExpr(exprAdd, a, b) }
func Sub(a, b interface{}) *Expr      { return binaryExpr(exprSub, a, b) }
func Mul(a, b interface{}) *Expr      { return binaryExpr(exprMul, a, b) }
func Div(a, b interface{}) *Expr      { return binaryExpr(exprDiv, a, b) }
func FloorDiv(a, b interface{}) *Expr { return binaryExpr(exprFloorDiv, a, b) }
func Mod(a, b interface{}) *Expr      { return binaryExpr(exprMod, a, b) }
func Pow(a, b interface{}) *Expr      { return binaryExpr(exprPow, a, b) }

// Neg and Abs build unary arithmetic nodes.
func Neg(a interface{}) *Expr { return unaryExpr(exprNeg, a) }
func Abs(a interface{}) *Expr { return unaryExpr(exprAbs, a) }

// Method forms mirroring the overloaded-operator surface for chaining.
func (e *Expr) Add(o interface{}) *Expr      { return Add(e, o) }
func (e *Expr) Sub(o interface{}) *Expr      { return Sub(e, o) }
func (e *Expr) Mul(o interface{}) *Expr      { return Mul(e, o) }
func (e *Expr) Div(o interface{}) *Expr      { return Div(e, o) }
func (e *Expr) FloorDiv(o interface{}) *Expr { return FloorDiv(e, o) }
func (e *Expr) Mod(o interface{}) *Expr      { return Mod(e, o) }
func (e *Expr) Pow(o interface{}) *Expr      { return Pow(e, o) }
func (e *Expr) Neg() *Expr                   { return Neg(e) }
func (e *Expr) Abs() *Expr                   { return Abs(e) }

// Comparison operators produce BoolExpr leaves.
func (e *Expr) Eq(o interface{}) *BoolExpr { return compareExpr(cmpEq, e, o) }
func (e *Expr) Ne(o interface{}) *BoolExpr { return compareExpr(cmpNe, e, o) }
func (e *Expr) Lt(o interface{}) *BoolExpr { return compareExpr(cmpLt, e, o) }
func (e *Expr) Le(o interface{}) *BoolExpr { return compareExpr(cmpLe, e, o) }
func (e *Expr) Gt(o interface{}) *BoolExpr { return compareExpr(cmpGt, e, o) }
func (e *Expr) Ge(o interface{}) *BoolExpr { return compareExpr(cmpGe, e, o) }

// Eval evaluates the expression against a complete or partial assignment.
// The first return is the numeric result, valid only when ok is true. ok is
// false when a variable in the free set is absent from the assignment — the
// "missing variable" signal callers in partial-consistency checking must
// treat as undetermined, never as an error. A non-nil error means the
// expression could not be evaluated at all (division or modulus by zero)
// and is always fatal, independent of ok.
func (e *Expr) Eval(a Assignment) (float64, bool, error) {
	switch e.kind {
	case exprLiteral:
		return e.literal, true, nil
	case exprVar:
		v, present := a[e.variable.name]
		if !present {
			return 0, false, nil
		}
		return v, true, nil
	case exprNeg:
		v, ok, err := e.left.Eval(a)
		if err != nil || !ok {
			return 0, ok, err
		}
		return -v, true, nil
	case exprAbs:
		v, ok, err := e.left.Eval(a)
		if err != nil || !ok {
			return 0, ok, err
		}
		return math.Abs(v), true, nil
	}

	lv, lok, lerr := e.left.Eval(a)
	if lerr != nil {
		return 0, false, lerr
	}
	rv, rok, rerr := e.right.Eval(a)
	if rerr != nil {
		return 0, false, rerr
	}
	if !lok || !rok {
		return 0, false, nil
	}

	switch e.kind {
	case exprAdd:
		return lv + rv, true, nil
	case exprSub:
		return lv - rv, true, nil
	case exprMul:
		return lv * rv, true, nil
	case exprDiv:
		if rv == 0 {
			return 0, false, newError(Evaluation, "division by zero")
		}
		return lv / rv, true, nil
	case exprFloorDiv:
		if rv == 0 {
			return 0, false, newError(Evaluation, "floor division by zero")
		}
		return math.Floor(lv / rv), true, nil
	case exprMod:
		if rv == 0 {
			return 0, false, newError(Evaluation, "modulus by zero")
		}
		return math.Mod(lv, rv), true, nil
	case exprPow:
		return math.Pow(lv, rv), true, nil
	default:
		return 0, false, newError(Evaluation, "unknown arithmetic node kind %d", e.kind)
	}
}
