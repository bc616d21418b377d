package simplex

import "q.log/linprog/model"

const (
	// DefaultOptimalityTol bounds reduced costs and pivot-column entries.
	// Smaller values chase rounding noise and may pivot forever on
	// near-zero reduced costs; larger values stop short of the optimum.
	DefaultOptimalityTol = 1e-8

	// DefaultFeasibilityTol is the largest value an artificial variable may
	// keep in the final basis before the problem is declared infeasible.
	DefaultFeasibilityTol = 1e-6

	// DefaultBigM penalizes artificial variables. It must dominate every
	// objective magnitude the caller expects; larger values make the
	// penalty reliable at the cost of conditioning (reduced costs mix
	// terms of order M with terms of order c, losing ~log10(M) digits).
	DefaultBigM = 1e6

	// iterationsPerDimension scales the pivot cap: 200 * (m + n).
	iterationsPerDimension = 200
)

// Option configures a solve.
type Option func(*solveConfig)

type solveConfig struct {
	tol           float64
	feasTol       float64
	bigM          float64
	maxIterations int
	trace         *Trace
}

func newSolveConfig(opts []Option) *solveConfig {
	cfg := &solveConfig{
		tol:     DefaultOptimalityTol,
		feasTol: DefaultFeasibilityTol,
		bigM:    DefaultBigM,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// iterationCap returns the configured cap or 200 * (m + n).
func (c *solveConfig) iterationCap(lp *model.LinearProgram) int {
	if c.maxIterations > 0 {
		return c.maxIterations
	}
	return iterationsPerDimension * (lp.NumRows + lp.NumCols)
}

// WithTolerance sets the optimality / pivot tolerance.
func WithTolerance(tol float64) Option {
	return func(c *solveConfig) {
		if tol > 0 {
			c.tol = tol
		}
	}
}

// WithFeasibilityTolerance sets the artificial-variable feasibility tolerance.
func WithFeasibilityTolerance(tol float64) Option {
	return func(c *solveConfig) {
		if tol > 0 {
			c.feasTol = tol
		}
	}
}

// WithBigM sets the artificial-variable penalty used by BigM.
func WithBigM(m float64) Option {
	return func(c *solveConfig) {
		if m > 0 {
			c.bigM = m
		}
	}
}

// WithMaxIterations overrides the pivot cap. Values <= 0 keep the default.
func WithMaxIterations(n int) Option {
	return func(c *solveConfig) {
		c.maxIterations = n
	}
}

// WithTrace records every pivot into t. t is reset at the start of the solve.
func WithTrace(t *Trace) Option {
	return func(c *solveConfig) {
		c.trace = t
	}
}
