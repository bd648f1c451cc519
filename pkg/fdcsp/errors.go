package fdcsp

import "fmt"

// Kind classifies the fatal conditions a Solver or expression tree can
// raise. Every Kind maps to one row of the error table a Backend
// implementation must honour: constructing or installing something invalid
// fails the call immediately; solving an infeasible or over-budget problem
// fails Solve/AllSolutions.
type Kind int

const (
	// InvalidDomain means a domain was specified in an unsupported form,
	// e.g. a stepped range with a non-positive step.
	InvalidDomain Kind = iota
	// MissingDomain means a variable reachable from an installed
	// expression has no domain bound.
	MissingDomain
	// TypeErr means an operator was applied to an operand it cannot
	// coerce, e.g. a logical connective over an arithmetic expression
	// that was never compared to anything.
	TypeErr
	// InvalidMode means an objective mode outside {lex, sum} was
	// requested at Solver construction.
	InvalidMode
	// NoFeasibleSolution means Solve exhausted the search space without
	// finding an assignment that satisfies every hard constraint.
	NoFeasibleSolution
	// Timeout means the search's time budget was exceeded.
	Timeout
	// Evaluation means an arithmetic expression could not be evaluated
	// at all, independent of any missing variable (division or modulus
	// by zero). Unlike a missing variable, this is never swallowed as
	// "undetermined" — it is always fatal.
	Evaluation
)

func (k Kind) String() string {
	switch k {
	case InvalidDomain:
		return "invalid domain"
	case MissingDomain:
		return "missing domain"
	case TypeErr:
		return "type error"
	case InvalidMode:
		return "invalid mode"
	case NoFeasibleSolution:
		return "no feasible solution"
	case Timeout:
		return "timeout"
	case Evaluation:
		return "evaluation error"
	default:
		return "unknown error"
	}
}

// Error is the single error type fdcsp returns or panics with. Its Kind
// identifies which row of the error table applies; callers that need to
// branch on it should use errors.As, or errors.Is against a value of the
// same Kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fdcsp: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("fdcsp: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, &fdcsp.Error{Kind: fdcsp.Timeout}) without needing
// the exact message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}
