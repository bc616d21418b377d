package instance

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"q.log/linprog/model"
)

// Problem is the wire/file shape of a linear program:
//
//	{"c": [...], "A": [[...], ...], "b": [...], "sense": "max", "constraint_types": ["<=", ...]}
//
// ConstraintTypes may be omitted, in which case every row is "<=".
type Problem struct {
	C               []float64   `json:"c" yaml:"c" binding:"required,min=1"`
	A               [][]float64 `json:"A" yaml:"A" binding:"required,min=1"`
	B               []float64   `json:"b" yaml:"b" binding:"required,min=1"`
	Sense           string      `json:"sense,omitempty" yaml:"sense,omitempty" binding:"omitempty,oneof=max min maximize minimize"`
	ConstraintTypes []string    `json:"constraint_types,omitempty" yaml:"constraint_types,omitempty" binding:"omitempty,dive,oneof=<= >= = ≤ ≥"`
}

// LinearProgram validates p and converts it.
func (p *Problem) LinearProgram() (*model.LinearProgram, error) {
	sense, err := model.ParseSense(p.Sense)
	if err != nil {
		return nil, err
	}

	var types []model.ConstraintType
	if len(p.ConstraintTypes) > 0 {
		types = make([]model.ConstraintType, len(p.ConstraintTypes))
		for i, s := range p.ConstraintTypes {
			if types[i], err = model.ParseConstraintType(s); err != nil {
				return nil, errors.Wrapf(err, "constraint %d", i+1)
			}
		}
	}

	return model.FromRows(p.C, p.A, p.B, sense, types)
}

// FromLinearProgram converts lp back into its wire shape.
func FromLinearProgram(lp *model.LinearProgram) *Problem {
	a := lp.A()
	p := &Problem{
		C:     lp.C(),
		A:     make([][]float64, lp.NumRows),
		B:     lp.B(),
		Sense: lp.Sense().String(),
	}
	for r := range lp.NumRows {
		p.A[r] = append([]float64(nil), a.RawRowView(r)...)
	}
	for _, t := range lp.Types() {
		p.ConstraintTypes = append(p.ConstraintTypes, t.String())
	}
	return p
}

// LoadProblem reads a problem from a YAML or JSON file.
func LoadProblem(path string) (*model.LinearProgram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read problem %s", path)
	}
	var p Problem
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(err, "parse problem %s", path)
	}
	lp, err := p.LinearProgram()
	if err != nil {
		return nil, errors.Wrapf(err, "problem %s", path)
	}
	return lp, nil
}
