package model

import (
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Sense is the optimization direction of the objective.
type Sense int

const (
	Maximize Sense = iota
	Minimize
)

func (s Sense) String() string {
	if s == Minimize {
		return "min"
	}
	return "max"
}

// ParseSense accepts "max"/"min" (and the long forms). Empty means max.
func ParseSense(s string) (Sense, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "max", "maximize":
		return Maximize, nil
	case "min", "minimize":
		return Minimize, nil
	}
	return Maximize, errors.Errorf("unknown sense %q", s)
}

// ConstraintType is the relation between a constraint row and its rhs.
type ConstraintType int

const (
	LessEq ConstraintType = iota
	GreaterEq
	Equal
)

func (t ConstraintType) String() string {
	switch t {
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	default:
		return "<="
	}
}

// Flip returns the relation obtained by multiplying the row by -1.
func (t ConstraintType) Flip() ConstraintType {
	switch t {
	case LessEq:
		return GreaterEq
	case GreaterEq:
		return LessEq
	}
	return t
}

// ParseConstraintType accepts "<=", ">=", "=" and the unicode forms.
func ParseConstraintType(s string) (ConstraintType, error) {
	switch strings.TrimSpace(s) {
	case "<=", "≤", "":
		return LessEq, nil
	case ">=", "≥":
		return GreaterEq, nil
	case "=", "==":
		return Equal, nil
	}
	return LessEq, errors.Errorf("unknown constraint type %q", s)
}

// LinearProgram is an immutable LP instance:
//
//	optimize  C·x
//	s.t.      A·x {<=,>=,=} B
//	          x >= 0
type LinearProgram struct {
	//C objective function coefficients
	c []float64

	//A constraints matrix
	a *mat.Dense

	//B constraints rhs
	b []float64

	types []ConstraintType
	sense Sense

	NumRows int
	NumCols int
}

// New validates the shapes and copies every argument. A nil types slice
// means every constraint is "<=".
func New(c []float64, a *mat.Dense, b []float64, sense Sense, types []ConstraintType) (*LinearProgram, error) {
	if a == nil || a.IsEmpty() {
		return nil, errors.Wrap(ErrInvalidDimensions, "empty constraints matrix")
	}
	rows, cols := a.Dims()
	if len(c) != cols {
		return nil, errors.Wrapf(ErrInvalidDimensions, "mismatch number of variables: len(c)=%d, A has %d columns", len(c), cols)
	}
	if len(b) != rows {
		return nil, errors.Wrapf(ErrInvalidDimensions, "mismatch number of constraints: len(b)=%d, A has %d rows", len(b), rows)
	}
	if types == nil {
		types = make([]ConstraintType, rows)
	}
	if len(types) != rows {
		return nil, errors.Wrapf(ErrInvalidDimensions, "mismatch number of constraint types: %d for %d rows", len(types), rows)
	}

	return &LinearProgram{
		c:       append([]float64(nil), c...),
		a:       mat.DenseCopyOf(a),
		b:       append([]float64(nil), b...),
		types:   append([]ConstraintType(nil), types...),
		sense:   sense,
		NumRows: rows,
		NumCols: cols,
	}, nil
}

// FromRows builds a LinearProgram from a row-major coefficient matrix.
func FromRows(c []float64, rows [][]float64, b []float64, sense Sense, types []ConstraintType) (*LinearProgram, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrInvalidDimensions, "empty constraints matrix")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, errors.Wrapf(ErrInvalidDimensions, "row %d has %d coefficients, want %d", i, len(r), cols)
		}
		data = append(data, r...)
	}
	return New(c, mat.NewDense(len(rows), cols, data), b, sense, types)
}

func (lp *LinearProgram) Sense() Sense { return lp.sense }

// C returns a copy of the objective coefficients.
func (lp *LinearProgram) C() []float64 { return append([]float64(nil), lp.c...) }

// A returns a copy of the constraints matrix.
func (lp *LinearProgram) A() *mat.Dense { return mat.DenseCopyOf(lp.a) }

// B returns a copy of the right-hand sides.
func (lp *LinearProgram) B() []float64 { return append([]float64(nil), lp.b...) }

// Types returns a copy of the constraint relations.
func (lp *LinearProgram) Types() []ConstraintType {
	return append([]ConstraintType(nil), lp.types...)
}

// At returns A[row, col].
func (lp *LinearProgram) At(row, col int) float64 { return lp.a.At(row, col) }

// WithObjective returns a copy of lp with the objective and sense replaced.
func (lp *LinearProgram) WithObjective(c []float64, sense Sense) (*LinearProgram, error) {
	return New(c, lp.a, lp.b, sense, lp.types)
}

// Objective evaluates C·x.
func (lp *LinearProgram) Objective(x []float64) float64 {
	z := float64(0)
	for j := range lp.NumCols {
		z += lp.c[j] * x[j]
	}
	return z
}

// Satisfies reports whether x is nonnegative and meets every constraint
// within tol.
func (lp *LinearProgram) Satisfies(x []float64, tol float64) bool {
	if len(x) != lp.NumCols {
		return false
	}
	for _, v := range x {
		if v < -tol {
			return false
		}
	}
	for r := range lp.NumRows {
		lhs := mat.Dot(lp.a.RowView(r), mat.NewVecDense(lp.NumCols, x))
		switch lp.types[r] {
		case LessEq:
			if lhs > lp.b[r]+tol {
				return false
			}
		case GreaterEq:
			if lhs < lp.b[r]-tol {
				return false
			}
		case Equal:
			if lhs > lp.b[r]+tol || lhs < lp.b[r]-tol {
				return false
			}
		}
	}
	return true
}

// IsCanonical reports whether every constraint is "<=" with a nonnegative
// rhs, i.e. whether a slack-only basis is feasible.
func (lp *LinearProgram) IsCanonical() bool {
	for r := range lp.NumRows {
		if lp.types[r] != LessEq || lp.b[r] < 0 {
			return false
		}
	}
	return true
}
