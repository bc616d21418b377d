package simplex

import (
	"github.com/pkg/errors"
	"q.log/linprog/model"
)

// BigM solves programs with any mix of "<=", ">=" and "=" rows by seeding
// the basis with artificial variables penalized by -M.
type BigM struct{}

// Solve normalizes lp so that b >= 0, runs the penalized simplex and
// rejects the result if an artificial variable stays positive.
func (BigM) Solve(lp *model.LinearProgram, opts ...Option) (*model.Solution, error) {
	if lp == nil {
		return nil, errors.Wrap(model.ErrInvalidDimensions, "nil linear program")
	}
	np, err := model.Normalize(lp)
	if err != nil {
		return nil, err
	}

	cfg := newSolveConfig(opts)
	t := newTableau(internalObjective(lp), np, PenaltyBasis, cfg.bigM, cfg.tol)
	iters, err := t.run(cfg.iterationCap(lp), cfg.trace)
	if err != nil {
		return nil, err
	}

	if residual, col := t.artificialResidual(); col >= 0 && residual > cfg.feasTol {
		return nil, errors.Wrapf(model.ErrInfeasible, "artificial variable x_%d = %g at optimum", col+1, residual)
	}
	return t.solution(lp.Sense(), cfg.bigM, iters), nil
}
