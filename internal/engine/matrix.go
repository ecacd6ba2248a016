package engine

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense float matrix with optional row and column names. Get is
// 1-based. Empty matrices (zero rows or columns) have no backing storage.
type Matrix struct {
	dense    *mat.Dense
	rows     int
	cols     int
	rowNames []string
	colNames []string
}

// NewMatrix builds a rows x cols matrix from row-major data. Name slices may
// be nil; otherwise their lengths must match.
func NewMatrix(rows, cols int, data []float64, rowNames, colNames []string) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid matrix shape %dx%d", rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("matrix data has %d values, want %d for %dx%d", len(data), rows*cols, rows, cols)
	}
	var d *mat.Dense
	if rows > 0 && cols > 0 {
		d = mat.NewDense(rows, cols, data)
	}
	return newMatrix(d, rows, cols, rowNames, colNames)
}

// MatrixFromRows builds a matrix from a slice of equal-length rows.
func MatrixFromRows(rows [][]float64, rowNames, colNames []string) (*Matrix, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	} else if colNames != nil {
		cols = len(colNames)
	}
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("matrix row %d has %d values, want %d", i+1, len(r), cols)
		}
		data = append(data, r...)
	}
	return NewMatrix(len(rows), cols, data, rowNames, colNames)
}

// MatrixFromDense wraps a copy of d with names.
func MatrixFromDense(d mat.Matrix, rowNames, colNames []string) (*Matrix, error) {
	r, c := d.Dims()
	return newMatrix(mat.DenseCopyOf(d), r, c, rowNames, colNames)
}

func newMatrix(d *mat.Dense, rows, cols int, rowNames, colNames []string) (*Matrix, error) {
	if rowNames != nil && len(rowNames) != rows {
		return nil, fmt.Errorf("matrix has %d row names for %d rows", len(rowNames), rows)
	}
	if colNames != nil && len(colNames) != cols {
		return nil, fmt.Errorf("matrix has %d column names for %d columns", len(colNames), cols)
	}
	return &Matrix{dense: d, rows: rows, cols: cols, rowNames: rowNames, colNames: colNames}, nil
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// Dense returns a copy of the values, or nil for an empty matrix.
func (m *Matrix) Dense() *mat.Dense {
	if m.dense == nil {
		return nil
	}
	return mat.DenseCopyOf(m.dense)
}

// Get returns the value at a 1-based row and column.
func (m *Matrix) Get(row, col int) (float64, error) {
	if err := CheckIndex("row", row, m.rows); err != nil {
		return 0, err
	}
	if err := CheckIndex("column", col, m.cols); err != nil {
		return 0, err
	}
	return m.dense.At(row-1, col-1), nil
}

// Row returns a copy of a 1-based row.
func (m *Matrix) Row(row int) ([]float64, error) {
	if err := CheckIndex("row", row, m.rows); err != nil {
		return nil, err
	}
	if m.cols == 0 {
		return []float64{}, nil
	}
	return mat.Row(nil, row-1, m.dense), nil
}

// Column returns a copy of a 1-based column.
func (m *Matrix) Column(col int) ([]float64, error) {
	if err := CheckIndex("column", col, m.cols); err != nil {
		return nil, err
	}
	if m.rows == 0 {
		return []float64{}, nil
	}
	return mat.Col(nil, col-1, m.dense), nil
}

// RowName returns the name of a 1-based row, or "" when rows are unnamed.
func (m *Matrix) RowName(row int) string {
	if row < 1 || row > len(m.rowNames) {
		return ""
	}
	return m.rowNames[row-1]
}

// ColName returns the name of a 1-based column, or "" when columns are unnamed.
func (m *Matrix) ColName(col int) string {
	if col < 1 || col > len(m.colNames) {
		return ""
	}
	return m.colNames[col-1]
}
