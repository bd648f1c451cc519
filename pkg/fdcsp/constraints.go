package fdcsp

// coerceBools lifts a list of booleans (BoolExpr or boolean Variable) into
// BoolExpr form, mirroring coerceBool for the combinator signatures that
// take a slice.
func coerceBools(xs []interface{}) []*BoolExpr {
	out := make([]*BoolExpr, len(xs))
	for i, x := range xs {
		out[i] = coerceBool(x)
	}
	return out
}

// Distinct requires that every variable in vs takes a pairwise different
// value. |vs| <= 1 is trivially true.
func Distinct(vs ...*Variable) *BoolExpr {
	if len(vs) <= 1 {
		return trueExpr().Named("distinct")
	}
	var acc *BoolExpr
	for i := 0; i < len(vs); i++ {
		for j := i + 1; j < len(vs); j++ {
			ne := vs[i].Expr().Ne(vs[j].Expr())
			if acc == nil {
				acc = ne
			} else {
				acc = acc.And(ne)
			}
		}
	}
	return acc.Named("distinct")
}

func trueExpr() *BoolExpr {
	return Lit(0).Eq(Lit(0))
}

func falseExpr() *BoolExpr {
	return Lit(0).Eq(Lit(1))
}

// AtLeastOne requires that at least one of xs holds. Empty is false.
func AtLeastOne(xs ...interface{}) *BoolExpr {
	if len(xs) == 0 {
		return falseExpr().Named("at_least_one")
	}
	bs := coerceBools(xs)
	acc := bs[0]
	for _, b := range bs[1:] {
		acc = acc.Or(b)
	}
	return acc.Named("at_least_one")
}

// AtMostOne requires that no two of xs both hold. Empty is true.
func AtMostOne(xs ...interface{}) *BoolExpr {
	bs := coerceBools(xs)
	if len(bs) <= 1 {
		return trueExpr().Named("at_most_one")
	}
	var acc *BoolExpr
	for i := 0; i < len(bs); i++ {
		for j := i + 1; j < len(bs); j++ {
			pair := Not(bs[i].And(bs[j]))
			if acc == nil {
				acc = pair
			} else {
				acc = acc.And(pair)
			}
		}
	}
	return acc.Named("at_most_one")
}

// ExactlyOne requires exactly one of xs to hold.
func ExactlyOne(xs ...interface{}) *BoolExpr {
	return AtLeastOne(xs...).And(AtMostOne(xs...)).Named("exactly_one")
}

// combinations returns every k-element subset of indices [0, n).
func combinations(n, k int) [][]int {
	if k < 0 || k > n {
		return nil
	}
	if k == 0 {
		return [][]int{{}}
	}
	var out [][]int
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		cp := make([]int, k)
		copy(cp, idx)
		out = append(out, cp)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[i] + (j - i)
		}
	}
	return out
}

// AtLeastK requires that at least k of xs hold, via naive enumeration: the
// disjunction, over every k-combination of xs, of that combination's
// members being jointly true. k<=0 is trivially true; k>n is trivially
// false.
func AtLeastK(xs []interface{}, k int) *BoolExpr {
	n := len(xs)
	if k <= 0 {
		return trueExpr().Named("at_least_k")
	}
	if k > n {
		return falseExpr().Named("at_least_k")
	}
	bs := coerceBools(xs)
	combos := combinations(n, k)
	var acc *BoolExpr
	for _, combo := range combos {
		var clause *BoolExpr
		for _, i := range combo {
			if clause == nil {
				clause = bs[i]
			} else {
				clause = clause.And(bs[i])
			}
		}
		if acc == nil {
			acc = clause
		} else {
			acc = acc.Or(clause)
		}
	}
	return acc.Named("at_least_k")
}

// ExactlyK requires exactly k of xs to hold. Outside [0, n] it is false.
func ExactlyK(xs []interface{}, k int) *BoolExpr {
	n := len(xs)
	if k < 0 || k > n {
		return falseExpr().Named("exactly_k")
	}
	negated := make([]interface{}, n)
	for i, x := range xs {
		negated[i] = coerceBool(x).Not()
	}
	return AtLeastK(xs, k).And(AtLeastK(negated, n-k)).Named("exactly_k")
}

// ForAll folds f(v) with AND over every v in vs. Empty is true.
func ForAll(vs []*Variable, f func(*Variable) *BoolExpr) *BoolExpr {
	if len(vs) == 0 {
		return trueExpr().Named("forall")
	}
	acc := f(vs[0])
	for _, v := range vs[1:] {
		acc = acc.And(f(v))
	}
	return acc.Named("forall")
}

// Exists folds f(v) with OR over every v in vs. Empty is false.
func Exists(vs []*Variable, f func(*Variable) *BoolExpr) *BoolExpr {
	if len(vs) == 0 {
		return falseExpr().Named("exists")
	}
	acc := f(vs[0])
	for _, v := range vs[1:] {
		acc = acc.Or(f(v))
	}
	return acc.Named("exists")
}

// Quantifier is the deferred form of ForAll/Exists: syntactic sugar that
// folds a predicate over a fixed variable list once given.
type Quantifier struct {
	vs  []*Variable
	all bool
}

// ForAllOf returns a deferred universal quantifier over vs.
func ForAllOf(vs ...*Variable) Quantifier { return Quantifier{vs: vs, all: true} }

// ExistsOf returns a deferred existential quantifier over vs.
func ExistsOf(vs ...*Variable) Quantifier { return Quantifier{vs: vs, all: false} }

// Apply folds f over the quantifier's variables per its quantification kind.
func (q Quantifier) Apply(f func(*Variable) *BoolExpr) *BoolExpr {
	if q.all {
		return ForAll(q.vs, f)
	}
	return Exists(q.vs, f)
}

// SumOf arithmetically folds xs with +. Empty sum is 0.
func SumOf(xs ...interface{}) *Expr {
	if len(xs) == 0 {
		return Lit(0)
	}
	acc := coerceExpr(xs[0])
	for _, x := range xs[1:] {
		acc = acc.Add(x)
	}
	return acc
}

// ProductOf arithmetically folds xs with *. Empty product is 1.
func ProductOf(xs ...interface{}) *Expr {
	if len(xs) == 0 {
		return Lit(1)
	}
	acc := coerceExpr(xs[0])
	for _, x := range xs[1:] {
		acc = acc.Mul(x)
	}
	return acc
}

// WhenThen is the builder returned by When; calling Then completes the
// equivalent of p -> q.
type WhenThen struct {
	p *BoolExpr
}

// When begins a when(p).then(q) implication builder.
func When(p interface{}) WhenThen {
	return WhenThen{p: coerceBool(p)}
}

// Then completes the implication p -> q.
func (w WhenThen) Then(q interface{}) *BoolExpr {
	return w.p.Implies(q).Named("when_then")
}
