package model

import "github.com/pkg/errors"

// Status is the outcome of a solve.
type Status int

const (
	Optimal Status = iota
	Unbounded
	Infeasible
)

// String returns the lower-case wire name of the status.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Unbounded:
		return "unbounded"
	case Infeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Solution is the result of a successful solve.
type Solution struct {
	// Values holds one entry per original decision variable.
	Values []float64

	// Objective is C·Values in the caller's sense.
	Objective float64

	Status Status

	// Iterations is the number of pivots performed (0 for the graphical method).
	Iterations int
}

// IsOptimal returns true if the solution is optimal.
func (s *Solution) IsOptimal() bool {
	return s.Status == Optimal
}

// Value returns x[index], or 0 if the index is out of range.
func (s *Solution) Value(index int) float64 {
	if index < 0 || index >= len(s.Values) {
		return 0
	}
	return s.Values[index]
}

// StatusOf maps a solve error to the status a boundary layer should report.
// The second result is false for errors that are not a solve outcome
// (bad input, cycle guard).
func StatusOf(err error) (Status, bool) {
	switch {
	case err == nil:
		return Optimal, true
	case errors.Is(err, ErrUnbounded):
		return Unbounded, true
	case errors.Is(err, ErrInfeasible):
		return Infeasible, true
	}
	return Optimal, false
}
