package fdcsp

// Option configures a Solver at construction, mirroring the teacher's
// functional-options shape for NewModelWithConfig.
type Option func(*solverConfig)

type solverConfig struct {
	trace bool
}

// WithTrace enables structured tracing of the search: improving-score
// events and timeout/unsat path entry and exit are logged at info level.
// Tracing is off by default.
func WithTrace(enabled bool) Option {
	return func(c *solverConfig) { c.trace = enabled }
}
