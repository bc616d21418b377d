// Package graphical solves two-variable linear programs by enumerating the
// vertices of the feasible region.
//
// Every pair of boundary lines (the two axes plus one line per constraint,
// with "=" rows contributing two coincident lines) is intersected; the
// feasible, nonnegative intersections are deduplicated and the objective
// is evaluated at each. The vertex list is returned in angular order so it
// can be drawn as a polygon.
package graphical

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"q.log/linprog/model"
)

const (
	// DefaultParallelTol is the determinant magnitude below which two lines
	// are treated as parallel.
	DefaultParallelTol = 1e-12
	// DefaultFeasibleTol is the slack allowed when testing a candidate
	// against the constraints and the nonnegativity axes.
	DefaultFeasibleTol = 1e-10
	// DefaultDedupTol merges vertices whose coordinates both differ by less.
	DefaultDedupTol = 1e-8
	// DefaultUnboundedDistance is the distance from the origin beyond which
	// a vertex suggests an unbounded region.
	DefaultUnboundedDistance = 1e6
)

// Option configures Solve.
type Option func(*config)

type config struct {
	parallelTol       float64
	feasibleTol       float64
	dedupTol          float64
	unboundedDistance float64
}

// WithParallelTolerance overrides DefaultParallelTol.
func WithParallelTolerance(tol float64) Option {
	return func(c *config) { c.parallelTol = tol }
}

// WithFeasibleTolerance overrides DefaultFeasibleTol.
func WithFeasibleTolerance(tol float64) Option {
	return func(c *config) { c.feasibleTol = tol }
}

// WithDedupTolerance overrides DefaultDedupTol.
func WithDedupTolerance(tol float64) Option {
	return func(c *config) { c.dedupTol = tol }
}

// WithUnboundedDistance overrides DefaultUnboundedDistance.
func WithUnboundedDistance(d float64) Option {
	return func(c *config) { c.unboundedDistance = d }
}

// Result is the graphical solution plus the data needed to draw it.
type Result struct {
	model.Solution

	// Vertices of the feasible region in angular order about their
	// centroid (enumeration order when there are fewer than three).
	Vertices []Vertex

	// Chosen indexes the optimal vertex in Vertices.
	Chosen int

	// MaybeUnbounded is an advisory flag: fewer than three vertices or a
	// vertex farther than the unbounded distance from the origin.
	MaybeUnbounded bool

	// Lines are the boundary lines that were intersected.
	Lines []Line
}

// Solve finds the optimal vertex of a two-variable program.
func Solve(lp *model.LinearProgram, opts ...Option) (*Result, error) {
	cfg := &config{
		parallelTol:       DefaultParallelTol,
		feasibleTol:       DefaultFeasibleTol,
		dedupTol:          DefaultDedupTol,
		unboundedDistance: DefaultUnboundedDistance,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if lp == nil {
		return nil, errors.Wrap(model.ErrInvalidDimensions, "nil linear program")
	}
	if lp.NumCols != 2 {
		return nil, errors.Wrapf(model.ErrUnsupportedDimension, "got %d variables", lp.NumCols)
	}
	np, err := model.Normalize(lp)
	if err != nil {
		return nil, err
	}

	halfPlanes := np.HalfPlanes()
	lines := Lines(halfPlanes)
	var feasible []Vertex
	for _, v := range Candidates(lines, halfPlanes, cfg.parallelTol, cfg.feasibleTol) {
		if v.Feasible {
			feasible = append(feasible, v)
		}
	}
	vertices := Dedup(feasible, cfg.dedupTol)
	if len(vertices) == 0 {
		return nil, errors.Wrap(model.ErrInfeasible, "feasible region is empty")
	}

	c := lp.C()
	sign := 1.0
	if lp.Sense() == model.Minimize {
		sign = -1
	}
	best, bestValue := -1, math.Inf(-1)
	for i := range vertices {
		v := &vertices[i]
		v.Objective = c[0]*v.X + c[1]*v.Y
		if z := sign * v.Objective; z > bestValue {
			best, bestValue = i, z
		}
	}

	order := angularOrder(vertices)
	sorted := make([]Vertex, len(vertices))
	chosen := 0
	for i, idx := range order {
		sorted[i] = vertices[idx]
		if idx == best {
			chosen = i
		}
	}

	opt := vertices[best]
	return &Result{
		Solution: model.Solution{
			Values:    []float64{opt.X, opt.Y},
			Objective: opt.Objective,
			Status:    model.Optimal,
		},
		Vertices:       sorted,
		Chosen:         chosen,
		MaybeUnbounded: maybeUnbounded(vertices, cfg.unboundedDistance),
		Lines:          lines,
	}, nil
}

func maybeUnbounded(vs []Vertex, limit float64) bool {
	if len(vs) < 3 {
		return true
	}
	for _, v := range vs {
		if math.Hypot(v.X, v.Y) > limit {
			return true
		}
	}
	return false
}

// angularOrder returns the permutation that sorts vs by angle about their
// centroid. Fewer than three vertices keep their order.
func angularOrder(vs []Vertex) []int {
	idx := make([]int, len(vs))
	for i := range idx {
		idx[i] = i
	}
	if len(vs) < 3 {
		return idx
	}

	var cx, cy float64
	for _, v := range vs {
		cx += v.X
		cy += v.Y
	}
	cx /= float64(len(vs))
	cy /= float64(len(vs))

	angle := make([]float64, len(vs))
	for i, v := range vs {
		angle[i] = math.Atan2(v.Y-cy, v.X-cx)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return angle[idx[a]] < angle[idx[b]]
	})
	return idx
}

// SortAngular returns a copy of vs in angular order about their centroid.
func SortAngular(vs []Vertex) []Vertex {
	out := make([]Vertex, len(vs))
	for i, idx := range angularOrder(vs) {
		out[i] = vs[idx]
	}
	return out
}
