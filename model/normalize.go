package model

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// NormalizedProgram is a row-sign-normalized copy of a LinearProgram:
// every rhs is nonnegative and rows that were negated had their relation
// flipped. It belongs to the solve call that created it.
type NormalizedProgram struct {
	A     *mat.Dense
	B     []float64
	Types []ConstraintType

	// Flipped[r] is true when row r was multiplied by -1.
	Flipped []bool

	NumRows int
	NumCols int
}

// Normalize returns the row-sign-normalized form of lp. lp is not modified.
func Normalize(lp *LinearProgram) (*NormalizedProgram, error) {
	if lp == nil || lp.NumRows == 0 || lp.NumCols == 0 {
		return nil, errors.Wrap(ErrInvalidDimensions, "empty linear program")
	}
	if r, c := lp.a.Dims(); r != lp.NumRows || c != lp.NumCols || len(lp.b) != r || len(lp.types) != r || len(lp.c) != c {
		return nil, errors.Wrap(ErrInvalidDimensions, "inconsistent linear program")
	}

	np := &NormalizedProgram{
		A:       mat.DenseCopyOf(lp.a),
		B:       lp.B(),
		Types:   lp.Types(),
		Flipped: make([]bool, lp.NumRows),
		NumRows: lp.NumRows,
		NumCols: lp.NumCols,
	}
	for r := range np.NumRows {
		if np.B[r] >= 0 {
			continue
		}
		np.MultiplyConstraint(r, -1)
		np.Types[r] = np.Types[r].Flip()
		np.Flipped[r] = true
	}
	return np, nil
}

// MultiplyConstraint scales row r and its rhs by mul.
func (np *NormalizedProgram) MultiplyConstraint(row int, mul float64) {
	for col := range np.NumCols {
		np.A.Set(row, col, np.A.At(row, col)*mul)
	}
	np.B[row] *= mul
}

// HalfPlane is a single "<=" row: Coef·x <= RHS.
type HalfPlane struct {
	Coef []float64
	RHS  float64

	// Row is the index of the constraint this half-plane came from.
	Row int
}

// HalfPlanes rewrites every row in "<=" form: ">=" rows are negated and
// "=" rows are expanded into the pair Coef·x <= b and -Coef·x <= -b.
func (np *NormalizedProgram) HalfPlanes() []HalfPlane {
	hp := make([]HalfPlane, 0, np.NumRows)
	for r := range np.NumRows {
		row := mat.Row(nil, r, np.A)
		neg := make([]float64, len(row))
		for j, v := range row {
			neg[j] = -v
		}
		switch np.Types[r] {
		case LessEq:
			hp = append(hp, HalfPlane{Coef: row, RHS: np.B[r], Row: r})
		case GreaterEq:
			hp = append(hp, HalfPlane{Coef: neg, RHS: -np.B[r], Row: r})
		case Equal:
			hp = append(hp,
				HalfPlane{Coef: row, RHS: np.B[r], Row: r},
				HalfPlane{Coef: neg, RHS: -np.B[r], Row: r},
			)
		}
	}
	return hp
}
