package fdcsp

// Soft is a boolean predicate tagged with a penalty and weight: violating
// the predicate contributes penalty to the hard penalty total and
// penalty*weight to the weighted cost.
type Soft struct {
	Predicate *BoolExpr
	Penalty   int
	Weight    float64
	Name      string
}

// SoftOption configures a Soft constraint at construction.
type SoftOption func(*Soft)

// WithPenalty sets the soft constraint's penalty (default 1).
func WithPenalty(p int) SoftOption { return func(s *Soft) { s.Penalty = p } }

// WithWeight sets the soft constraint's weight (default 1).
func WithWeight(w float64) SoftOption { return func(s *Soft) { s.Weight = w } }

// WithSoftName overrides the soft constraint's display name (defaults to
// the predicate's own name).
func WithSoftName(name string) SoftOption { return func(s *Soft) { s.Name = name } }

// NewSoft builds a soft constraint with default penalty 1 and weight 1.
func NewSoft(predicate *BoolExpr, opts ...SoftOption) Soft {
	s := Soft{Predicate: predicate, Penalty: 1, Weight: 1, Name: predicate.Name()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// violated reports whether the soft constraint's predicate is false under a
// complete assignment; an undetermined evaluation is treated as not
// violated, matching the solver's "definitively false only" pruning rule
// carried over to scoring a completed leaf. A predicate evaluation error is
// returned, chained behind context naming which soft constraint failed,
// since ScoreSolution's caller only sees the returned error, never s itself.
func (s Soft) violated(a Assignment) (bool, error) {
	t, err := s.Predicate.Evaluate(a)
	if err != nil {
		return false, wrapError(Evaluation, err, "evaluating soft constraint %q", s.Name)
	}
	return t == TriFalse, nil
}
