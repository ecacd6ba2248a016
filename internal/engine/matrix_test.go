package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMatrix_GetIsOneBased(t *testing.T) {
	m, err := MatrixFromRows([][]float64{{1, 2, 3}, {4, 5, 6}}, []string{"o1", "o2"}, []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	v, err := m.Get(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
	assert.Equal(t, "o2", m.RowName(2))
	assert.Equal(t, "b", m.ColName(2))
	assert.Equal(t, "", m.ColName(4))

	col, err := m.Column(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, col)

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, row)
}

func TestMatrix_OutOfRange(t *testing.T) {
	m, err := NewMatrix(1, 1, []float64{9}, nil, nil)
	require.NoError(t, err)

	_, err = m.Get(0, 1)
	var ie *IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "row", ie.What)

	_, err = m.Get(1, 2)
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "column", ie.What)
	assert.Equal(t, 1, ie.Max)
}

func TestMatrix_ShapeErrors(t *testing.T) {
	_, err := NewMatrix(2, 2, []float64{1, 2, 3}, nil, nil)
	assert.Error(t, err)

	_, err = MatrixFromRows([][]float64{{1, 2}, {3}}, nil, nil)
	assert.Error(t, err)

	_, err = NewMatrix(1, 2, []float64{1, 2}, nil, []string{"only-one"})
	assert.Error(t, err)
}

func TestMatrixFromDense_CopiesValues(t *testing.T) {
	d := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	m, err := MatrixFromDense(d.T(), nil, []string{"x", "y"})
	require.NoError(t, err)

	d.Set(0, 0, 99)
	v, err := m.Get(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = m.Get(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	out := m.Dense()
	out.Set(0, 0, -1)
	v, _ = m.Get(1, 1)
	assert.Equal(t, 1.0, v)
}

func TestMatrix_Empty(t *testing.T) {
	m, err := MatrixFromRows(nil, nil, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Rows())
	assert.Equal(t, 2, m.Cols())
	assert.Nil(t, m.Dense())

	col, err := m.Column(1)
	require.NoError(t, err)
	assert.Empty(t, col)
}
