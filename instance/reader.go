package instance

import (
	"math"
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"q.log/linprog/model"
)

// ErrUnsupportedBounds indicates a column whose bounds cannot be expressed
// on top of x >= 0 (a negative or infinite lower bound).
var ErrUnsupportedBounds = errors.New("instance: column bounds incompatible with x >= 0")

// Reader reads a mps file to construct a model
type Reader struct {
	filename string
}

func NewReader(filename string) *Reader {
	return &Reader{
		filename: filename,
	}
}

// LinearProgram reads the file and returns it as a LinearProgram. Ranged
// rows become a ">=" and a "<=" row; finite column bounds other than
// 0 <= x become extra rows.
func (r *Reader) LinearProgram() (*model.LinearProgram, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(glpk.MPS_FILE, nil, r.filename); err != nil {
		return nil, errors.Wrapf(err, "read mps %s", r.filename)
	}

	numCols := lp.NumCols()
	if numCols == 0 || lp.NumRows() == 0 {
		return nil, errors.Wrapf(model.ErrInvalidDimensions, "%s has %d rows and %d columns", r.filename, lp.NumRows(), numCols)
	}

	//populate obj function
	cVec := make([]float64, numCols)
	for c := range numCols {
		cVec[c] = lp.ObjCoef(c + 1)
	}
	sense := model.Minimize
	if lp.ObjDir() == glpk.MAX {
		sense = model.Maximize
	}

	//populate constraints
	var (
		aVec  []float64
		rhs   []float64
		types []model.ConstraintType
	)
	addRow := func(row []float64, t model.ConstraintType, b float64) {
		aVec = append(aVec, row...)
		types = append(types, t)
		rhs = append(rhs, b)
	}

	for i := 1; i <= lp.NumRows(); i++ {
		rowVec := make([]float64, numCols)
		idxs, vals := lp.MatRow(i)
		for k, v := range idxs {
			if v == 0 {
				continue
			}
			rowVec[v-1] = vals[k]
		}

		lb, ub := lp.RowLB(i), lp.RowUB(i)
		lower, upper := !isInf(lb), !isInf(ub)
		switch {
		case lower && upper && lb == ub:
			addRow(rowVec, model.Equal, lb)
		case lower && upper:
			addRow(rowVec, model.GreaterEq, lb)
			addRow(append([]float64(nil), rowVec...), model.LessEq, ub)
		case lower:
			addRow(rowVec, model.GreaterEq, lb)
		case upper:
			addRow(rowVec, model.LessEq, ub)
		}
	}

	for c := range numCols {
		lb, ub := lp.ColLB(c+1), lp.ColUB(c+1)
		if isInf(lb) || lb < 0 {
			return nil, errors.Wrapf(ErrUnsupportedBounds, "column %s has lower bound %g", lp.ColName(c+1), lb)
		}
		if lb > 0 {
			rowVec := make([]float64, numCols)
			rowVec[c] = 1
			addRow(rowVec, model.GreaterEq, lb)
		}
		if !isInf(ub) {
			rowVec := make([]float64, numCols)
			rowVec[c] = 1
			addRow(rowVec, model.LessEq, ub)
		}
	}

	if len(rhs) == 0 {
		return nil, errors.Wrapf(model.ErrInvalidDimensions, "%s has no bounded constraint rows", r.filename)
	}
	a := mat.NewDense(len(rhs), numCols, aVec)
	return model.New(cVec, a, rhs, sense, types)
}

// glpk reports missing bounds as +-DBL_MAX.
func isInf(v float64) bool {
	return math.IsInf(v, 0) || math.Abs(v) == math.MaxFloat64
}
