package instance

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"q.log/linprog/model"
)

func TestReader_LinearProgram(t *testing.T) {
	lp, err := NewReader(filepath.Join("testdata", "small.mps")).LinearProgram()
	require.NoError(t, err)

	assert.Equal(t, model.Minimize, lp.Sense())
	assert.Equal(t, []float64{1, 2}, lp.C())
	// lim1, lim2, then the upper bound on x2
	assert.Equal(t, []model.ConstraintType{model.GreaterEq, model.LessEq, model.LessEq}, lp.Types())
	assert.Equal(t, []float64{2, 3, 4}, lp.B())
	assert.True(t, mat.Equal(mat.NewDense(3, 2, []float64{
		1, 1,
		1, 0,
		0, 1,
	}), lp.A()))
}

func TestReader_MissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join("testdata", "missing.mps")).LinearProgram()
	assert.Error(t, err)
}
