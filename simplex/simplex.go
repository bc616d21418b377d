// Package simplex solves small dense linear programs with the tableau
// simplex method.
//
// Three strategies share one tableau engine:
//
//	Standard  slack-only basis; every row "<=" with b >= 0
//	BigM      slack, surplus and artificial columns; any mix of <=, >=, =
//	Minimize  negates the objective and delegates to Standard
//
// Entering columns follow the largest reduced cost (lowest index on ties),
// leaving rows the minimum ratio (lowest row on ties). There is no
// anti-cycling rule: a degenerate tableau may cycle, and the solve then
// stops with model.ErrCycleGuard after 200*(m+n) pivots.
package simplex

import (
	"strings"

	"github.com/pkg/errors"
	"q.log/linprog/model"
)

// Solver is implemented by every simplex strategy.
type Solver interface {
	Solve(lp *model.LinearProgram, opts ...Option) (*model.Solution, error)
}

// Standard is the slack-only tableau simplex.
type Standard struct{}

// Solve maximizes (or minimizes, by negation) lp. Every constraint must be
// "<=" with a nonnegative rhs.
func (Standard) Solve(lp *model.LinearProgram, opts ...Option) (*model.Solution, error) {
	if lp == nil {
		return nil, errors.Wrap(model.ErrInvalidDimensions, "nil linear program")
	}
	if !lp.IsCanonical() {
		return nil, errors.Wrap(model.ErrUnsupportedConstraints, "standard simplex requires every constraint to be <= with b >= 0")
	}
	np, err := model.Normalize(lp)
	if err != nil {
		return nil, err
	}

	cfg := newSolveConfig(opts)
	t := newTableau(internalObjective(lp), np, SlackBasis, 0, cfg.tol)
	iters, err := t.run(cfg.iterationCap(lp), cfg.trace)
	if err != nil {
		return nil, err
	}
	return t.solution(lp.Sense(), 0, iters), nil
}

// ByName returns the strategy for "simplex" (or "standard"), "bigm" and
// "minimize" (or "min").
func ByName(name string) (Solver, error) {
	switch strings.ToLower(name) {
	case "simplex", "standard":
		return Standard{}, nil
	case "bigm", "big-m", "big_m":
		return BigM{}, nil
	case "minimize", "min", "minimization":
		return Minimize{}, nil
	}
	return nil, errors.Errorf("unknown simplex strategy %q", name)
}

// internalObjective returns the coefficients maximized by the engine.
func internalObjective(lp *model.LinearProgram) []float64 {
	c := lp.C()
	if lp.Sense() == model.Minimize {
		for i := range c {
			c[i] = -c[i]
		}
	}
	return c
}
