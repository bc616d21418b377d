package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimensions indicates inconsistent or zero-sized inputs.
	ErrInvalidDimensions = errors.New("lp: invalid dimensions")
	// ErrUnsupportedConstraints indicates the slack-only simplex was given a
	// row that is not "<=" or has a negative rhs.
	ErrUnsupportedConstraints = errors.New("lp: constraints not supported by strategy")
	// ErrUnsupportedDimension indicates the graphical method was given n != 2.
	ErrUnsupportedDimension = errors.New("lp: graphical method requires exactly 2 variables")
	// ErrUnbounded indicates the objective improves without bound.
	ErrUnbounded = errors.New("lp: problem is unbounded")
	// ErrInfeasible indicates there is no feasible point.
	ErrInfeasible = errors.New("lp: problem is infeasible")
	// ErrCycleGuard indicates the pivot loop hit its iteration cap, most
	// likely cycling on a degenerate tableau.
	ErrCycleGuard = errors.New("lp: iteration limit reached (possible degenerate cycling)")
)
