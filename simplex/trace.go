package simplex

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// Snapshot is a copy of the tableau state at one point of a solve.
type Snapshot struct {
	Tableau *mat.Dense
	RHS     []float64
	Basis   []int

	// Objective is the internal (maximized, penalty-including) value.
	Objective float64
}

// Step records one pivot.
type Step struct {
	Iteration int
	Entering  int
	Leaving   int
	Row       int
	Snapshot
}

// Trace collects the pivots of a single solve. Pass it with WithTrace; a
// Trace must not be shared by concurrent solves.
type Trace struct {
	Kinds   []VarKind
	Initial Snapshot
	Steps   []Step
}

func snapshot(t *Tableau) Snapshot {
	return Snapshot{
		Tableau:   mat.DenseCopyOf(t.T),
		RHS:       append([]float64(nil), t.RHS...),
		Basis:     append([]int(nil), t.Basis...),
		Objective: t.Objective(),
	}
}

func (tr *Trace) start(t *Tableau) {
	if tr == nil {
		return
	}
	tr.Kinds = append([]VarKind(nil), t.Kinds...)
	tr.Initial = snapshot(t)
	tr.Steps = tr.Steps[:0]
}

func (tr *Trace) record(iter, entering, leaving, row int, t *Tableau) {
	if tr == nil {
		return
	}
	tr.Steps = append(tr.Steps, Step{
		Iteration: iter,
		Entering:  entering,
		Leaving:   leaving,
		Row:       row,
		Snapshot:  snapshot(t),
	})
}

// Objectives returns the internal objective before the first pivot and
// after every pivot.
func (tr *Trace) Objectives() []float64 {
	z := make([]float64, 0, len(tr.Steps)+1)
	z = append(z, tr.Initial.Objective)
	for _, s := range tr.Steps {
		z = append(z, s.Objective)
	}
	return z
}

// Format writes a human-readable pivot log. It writes nothing when the
// solve was rejected before a tableau was built.
func (tr *Trace) Format(w io.Writer) error {
	if tr == nil || tr.Initial.Tableau == nil {
		return nil
	}
	if err := tr.printSnapshot(w, "initial tableau", tr.Initial); err != nil {
		return err
	}
	for _, s := range tr.Steps {
		_, err := fmt.Fprintf(w, "-------------------- ITERATION %v: BASE CHANGE x_%d -> x_%d (row %d) ----------------------\n",
			s.Iteration, s.Leaving+1, s.Entering+1, s.Row+1)
		if err != nil {
			return err
		}
		if err := tr.printSnapshot(w, "tableau", s.Snapshot); err != nil {
			return err
		}
	}
	return nil
}

func (tr *Trace) printSnapshot(w io.Writer, title string, s Snapshot) error {
	r, _ := s.Tableau.Dims()
	var aug mat.Dense
	aug.Augment(s.Tableau, mat.NewDense(r, 1, s.RHS))

	basis := make([]string, len(s.Basis))
	for i, v := range s.Basis {
		kind := ""
		if v < len(tr.Kinds) && tr.Kinds[v] != Original {
			kind = " (" + tr.Kinds[v].String() + ")"
		}
		basis[i] = fmt.Sprintf("x_%d%s", v+1, kind)
	}

	_, err := fmt.Fprintf(w, "%s:\nB = %v\nT = %v\nz = %v\n",
		title, basis, mat.Formatted(&aug, mat.Prefix("    "), mat.Squeeze()), s.Objective)
	return err
}
