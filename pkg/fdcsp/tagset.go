package fdcsp

import "strconv"

// TagSet groups a set of boolean variables under a common prefix and offers
// cardinality helpers over them, ported from the source package's TagSet
// convenience wrapper. It adds no new solver semantics: every method is a
// thin call into the constraint combinators already required for boolean
// variables.
type TagSet struct {
	prefix string
	vars   []*Variable
}

// NewTagSet creates n boolean variables named "<prefix>_0".."<prefix>_(n-1)".
func NewTagSet(prefix string, n int) *TagSet {
	vars := make([]*Variable, n)
	for i := 0; i < n; i++ {
		vars[i] = NewBoolVar(prefix + "_" + strconv.Itoa(i))
	}
	return &TagSet{prefix: prefix, vars: vars}
}

// Vars returns the TagSet's boolean variables in creation order.
func (t *TagSet) Vars() []*Variable { return t.vars }

// Var returns the i'th boolean variable in the set.
func (t *TagSet) Var(i int) *Variable { return t.vars[i] }

// EnforceExactlyOne returns a hard constraint requiring exactly one tag in
// the set to be true.
func (t *TagSet) EnforceExactlyOne() *BoolExpr {
	return ExactlyOne(t.asInterfaces()...).Named(t.prefix + "_exactly_one")
}

// EnforceAtLeastOne returns a hard constraint requiring at least one tag in
// the set to be true.
func (t *TagSet) EnforceAtLeastOne() *BoolExpr {
	return AtLeastOne(t.asInterfaces()...).Named(t.prefix + "_at_least_one")
}

// EnforceAtMost returns a hard constraint requiring at most k tags in the
// set to be true, built as at_least_k over the negated tags per the
// source's _at_most_k helper (at_least_k(~xs, n-k)).
func (t *TagSet) EnforceAtMost(k int) *BoolExpr {
	n := len(t.vars)
	negated := make([]interface{}, n)
	for i, v := range t.vars {
		negated[i] = v.Expr().Eq(Lit(0))
	}
	return AtLeastK(negated, n-k).Named(t.prefix + "_at_most")
}

func (t *TagSet) asInterfaces() []interface{} {
	out := make([]interface{}, len(t.vars))
	for i, v := range t.vars {
		out[i] = v
	}
	return out
}
