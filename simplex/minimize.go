package simplex

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"q.log/linprog/model"
)

// Minimize minimizes C·x by maximizing -C·x with Standard. The Sense of its
// input is ignored.
type Minimize struct{}

func (Minimize) Solve(lp *model.LinearProgram, opts ...Option) (*model.Solution, error) {
	if lp == nil {
		return nil, errors.Wrap(model.ErrInvalidDimensions, "nil linear program")
	}
	c := lp.C()
	floats.Scale(-1, c)
	maxLP, err := lp.WithObjective(c, model.Maximize)
	if err != nil {
		return nil, err
	}

	sol, err := Standard{}.Solve(maxLP, opts...)
	if err != nil {
		return nil, err
	}
	sol.Objective = -sol.Objective
	return sol, nil
}
