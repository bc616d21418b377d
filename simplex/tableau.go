package simplex

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"q.log/linprog/model"
)

// VarKind tags a tableau column.
type VarKind int

const (
	Original VarKind = iota
	Slack
	Artificial
)

func (k VarKind) String() string {
	switch k {
	case Slack:
		return "slack"
	case Artificial:
		return "artificial"
	default:
		return "original"
	}
}

// BasisKind selects how the initial basis is built.
type BasisKind int

const (
	// SlackBasis appends one +1 slack per row; valid only for "<=" rows
	// with b >= 0.
	SlackBasis BasisKind = iota
	// PenaltyBasis appends slack, surplus and artificial columns per
	// constraint type and penalizes artificials with -M.
	PenaltyBasis
)

// Tableau is the working state of one simplex solve. It is mutated in place
// by pivots and must not be shared between solves.
type Tableau struct {
	// T holds the constraint coefficients, m x (n + extra).
	T   *mat.Dense
	RHS []float64

	// Cost is the extended objective (maximized).
	Cost []float64

	// Basis maps row -> basic column.
	Basis []int
	Kinds []VarKind

	NumRows int
	NumCols int
	NumVars int

	inBasis []bool
	tol     float64
}

// newTableau builds the initial basis for np with the maximized objective c.
func newTableau(c []float64, np *model.NormalizedProgram, kind BasisKind, bigM, tol float64) *Tableau {
	m, n := np.NumRows, np.NumCols

	extra := m
	if kind == PenaltyBasis {
		extra = 0
		for _, ct := range np.Types {
			if ct == model.GreaterEq {
				extra += 2
			} else {
				extra++
			}
		}
	}

	t := &Tableau{
		T:       mat.NewDense(m, n+extra, nil),
		RHS:     append([]float64(nil), np.B...),
		Cost:    make([]float64, n+extra),
		Basis:   make([]int, m),
		Kinds:   make([]VarKind, n+extra),
		NumRows: m,
		NumCols: n + extra,
		NumVars: n,
		inBasis: make([]bool, n+extra),
		tol:     tol,
	}
	t.T.Slice(0, m, 0, n).(*mat.Dense).Copy(np.A)
	copy(t.Cost, c)

	col := n
	addCol := func(row int, coef, cost float64, k VarKind, basic bool) {
		t.T.Set(row, col, coef)
		t.Cost[col] = cost
		t.Kinds[col] = k
		if basic {
			t.Basis[row] = col
			t.inBasis[col] = true
		}
		col++
	}

	for r := range m {
		if kind == SlackBasis {
			addCol(r, 1, 0, Slack, true)
			continue
		}
		switch np.Types[r] {
		case model.LessEq:
			addCol(r, 1, 0, Slack, true)
		case model.GreaterEq:
			addCol(r, -1, 0, Slack, false)
			addCol(r, 1, -bigM, Artificial, true)
		case model.Equal:
			addCol(r, 1, -bigM, Artificial, true)
		}
	}

	return t
}

// ReducedCost returns cost[col] - sum_r cost[basis[r]] * T[r, col].
func (t *Tableau) ReducedCost(col int) float64 {
	rc := t.Cost[col]
	for r, v := range t.Basis {
		rc -= t.Cost[v] * t.T.At(r, col)
	}
	return rc
}

// IsBasic reports whether col is currently in the basis.
func (t *Tableau) IsBasic(col int) bool {
	return t.inBasis[col]
}

// selectEntering returns the non-basic column with the largest reduced cost.
// Ties keep the lowest index. ok is false when no reduced cost exceeds the
// tolerance, i.e. the tableau is optimal.
func (t *Tableau) selectEntering() (col int, ok bool) {
	best := math.Inf(-1)
	col = -1
	for j := range t.NumCols {
		if t.inBasis[j] {
			continue
		}
		if rc := t.ReducedCost(j); rc > best {
			best = rc
			col = j
		}
	}
	if col == -1 || best <= t.tol {
		return -1, false
	}
	return col, true
}

// Optimal reports whether no non-basic column can improve the objective.
func (t *Tableau) Optimal() bool {
	_, ok := t.selectEntering()
	return !ok
}

func (t *Tableau) isUnbounded(col int) bool {
	for r := range t.NumRows {
		if t.T.At(r, col) > t.tol {
			return false
		}
	}
	return true
}

// selectLeaving runs the minimum-ratio test on col. Ties keep the lowest row.
func (t *Tableau) selectLeaving(col int) int {
	row := -1
	minRatio := math.Inf(1)
	for r := range t.NumRows {
		v := t.T.At(r, col)
		if v <= t.tol {
			continue
		}
		if ratio := t.RHS[r] / v; ratio < minRatio {
			minRatio = ratio
			row = r
		}
	}
	return row
}

// pivot performs one Gauss-Jordan step on (row, col) and swaps col into
// the basis.
func (t *Tableau) pivot(row, col int) {
	pr := t.T.RawRowView(row)
	p := pr[col]
	floats.Scale(1/p, pr)
	pr[col] = 1
	t.RHS[row] /= p

	for r := range t.NumRows {
		if r == row {
			continue
		}
		other := t.T.RawRowView(r)
		f := other[col]
		if f == 0 {
			continue
		}
		floats.AddScaled(other, -f, pr)
		other[col] = 0
		t.RHS[r] -= f * t.RHS[row]
	}

	t.inBasis[t.Basis[row]] = false
	t.Basis[row] = col
	t.inBasis[col] = true
}

// Objective returns sum_r cost[basis[r]] * RHS[r], penalties included.
func (t *Tableau) Objective() float64 {
	z := float64(0)
	for r, v := range t.Basis {
		z += t.Cost[v] * t.RHS[r]
	}
	return z
}

// Values returns the value of every column: RHS for basic columns, zero
// otherwise.
func (t *Tableau) Values() []float64 {
	x := make([]float64, t.NumCols)
	for r, v := range t.Basis {
		x[v] = t.RHS[r]
	}
	return x
}

// run pivots until optimal, unbounded, or maxIter pivots have been made.
// It returns the number of pivots performed.
func (t *Tableau) run(maxIter int, trace *Trace) (int, error) {
	trace.start(t)
	for iter := 0; ; iter++ {
		entering, ok := t.selectEntering()
		if !ok {
			return iter, nil
		}
		if iter >= maxIter {
			return iter, errors.Wrapf(model.ErrCycleGuard, "stopped after %d pivots", iter)
		}
		if t.isUnbounded(entering) {
			return iter, errors.Wrapf(model.ErrUnbounded, "column %d has no positive entry", entering)
		}
		row := t.selectLeaving(entering)
		leaving := t.Basis[row]
		t.pivot(row, entering)
		trace.record(iter+1, entering, leaving, row, t)
	}
}

// artificialResidual returns the largest |RHS| of an artificial column
// still in the basis, and its column (-1 if none).
func (t *Tableau) artificialResidual() (float64, int) {
	worst, col := 0.0, -1
	for r, v := range t.Basis {
		if t.Kinds[v] != Artificial {
			continue
		}
		if a := math.Abs(t.RHS[r]); col == -1 || a > worst {
			worst, col = a, v
		}
	}
	return worst, col
}

// solution extracts the caller-facing solution. bigM is added back for
// every artificial value so penalties never leak into the objective.
func (t *Tableau) solution(sense model.Sense, bigM float64, iterations int) *model.Solution {
	x := t.Values()
	z := t.Objective()
	for j, k := range t.Kinds {
		if k == Artificial {
			z += bigM * x[j]
		}
	}
	if sense == model.Minimize {
		z = -z
	}
	return &model.Solution{
		Values:     x[:t.NumVars],
		Objective:  z,
		Status:     model.Optimal,
		Iterations: iterations,
	}
}
