package graphical

import (
	"math"

	"q.log/linprog/model"
)

// Vertex is a candidate corner of the feasible region. Objective is
// filled in by Solve with the caller's coefficients.
type Vertex struct {
	X, Y      float64
	Feasible  bool
	Objective float64
}

// Line is the boundary A*x + B*y = C. Row is the constraint it came from,
// or -1 for the nonnegativity axes.
type Line struct {
	A, B, C float64
	Row     int
}

// Lines returns the axes x=0 and y=0 followed by one line per half-plane.
func Lines(halfPlanes []model.HalfPlane) []Line {
	lines := make([]Line, 0, len(halfPlanes)+2)
	lines = append(lines,
		Line{A: 1, B: 0, C: 0, Row: -1},
		Line{A: 0, B: 1, C: 0, Row: -1},
	)
	for _, hp := range halfPlanes {
		lines = append(lines, Line{A: hp.Coef[0], B: hp.Coef[1], C: hp.RHS, Row: hp.Row})
	}
	return lines
}

// Intersect solves the 2x2 system by Cramer's rule. ok is false for
// parallel (or coincident) lines.
func Intersect(l1, l2 Line, parallelTol float64) (x, y float64, ok bool) {
	det := l1.A*l2.B - l2.A*l1.B
	if math.Abs(det) < parallelTol {
		return 0, 0, false
	}
	x = (l1.C*l2.B - l2.C*l1.B) / det
	y = (l1.A*l2.C - l2.A*l1.C) / det
	return x, y, true
}

// Candidates intersects every unordered pair of lines, in order, and tags
// each nonnegative intersection with its feasibility. Coordinates within
// tol below zero are clamped to zero.
func Candidates(lines []Line, halfPlanes []model.HalfPlane, parallelTol, tol float64) []Vertex {
	var out []Vertex
	for i := range lines {
		for j := i + 1; j < len(lines); j++ {
			x, y, ok := Intersect(lines[i], lines[j], parallelTol)
			if !ok || x < -tol || y < -tol {
				continue
			}
			out = append(out, Vertex{
				X:        math.Max(0, x),
				Y:        math.Max(0, y),
				Feasible: satisfies(halfPlanes, x, y, tol),
			})
		}
	}
	return out
}

func satisfies(halfPlanes []model.HalfPlane, x, y, tol float64) bool {
	if x < -tol || y < -tol {
		return false
	}
	for _, hp := range halfPlanes {
		if hp.Coef[0]*x+hp.Coef[1]*y > hp.RHS+tol {
			return false
		}
	}
	return true
}

// Dedup drops vertices whose coordinates are both within tol of an earlier
// kept vertex. Applying it twice yields the same list.
func Dedup(vs []Vertex, tol float64) []Vertex {
	var unique []Vertex
	for _, v := range vs {
		dup := false
		for _, u := range unique {
			if math.Abs(v.X-u.X) < tol && math.Abs(v.Y-u.Y) < tol {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, v)
		}
	}
	return unique
}
