package pattern

import "fmt"

// Matrix is a rows×cols grid of patterns stored row-major.
// Rows follow the guess vocabulary, columns the answer vocabulary.
// A Matrix is not modified after it has been built.
type Matrix struct {
	rows, cols int
	data       []Pattern
}

// NewMatrix wraps row-major data. len(data) must equal rows*cols.
func NewMatrix(rows, cols int, data []Pattern) (*Matrix, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, fmt.Errorf("matrix: %d values do not fit %dx%d", len(data), rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// At returns the pattern of guess row r against answer column c.
func (m *Matrix) At(r, c int) Pattern { return m.data[r*m.cols+c] }

// Row returns a copy of row r.
func (m *Matrix) Row(r int) []Pattern {
	out := make([]Pattern, m.cols)
	copy(out, m.data[r*m.cols:(r+1)*m.cols])
	return out
}

// Bytes returns a copy of the row-major payload as raw bytes.
func (m *Matrix) Bytes() []byte {
	out := make([]byte, len(m.data))
	for i, p := range m.data {
		out[i] = byte(p)
	}
	return out
}

// MatrixFromBytes is the inverse of Bytes. Every byte must be a valid pattern.
func MatrixFromBytes(rows, cols int, b []byte) (*Matrix, error) {
	if len(b) != rows*cols {
		return nil, fmt.Errorf("matrix: %d bytes do not fit %dx%d", len(b), rows, cols)
	}
	data := make([]Pattern, len(b))
	for i, x := range b {
		if int(x) >= Count {
			return nil, fmt.Errorf("%w: byte %d at offset %d", ErrInvalidPattern, x, i)
		}
		data[i] = Pattern(x)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// Slice returns a new matrix made of the given rows and columns, in the order given.
// Indices must be in range.
func (m *Matrix) Slice(rowIdx, colIdx []int) *Matrix {
	out := &Matrix{rows: len(rowIdx), cols: len(colIdx), data: make([]Pattern, len(rowIdx)*len(colIdx))}
	for i, r := range rowIdx {
		base := r * m.cols
		dst := out.data[i*out.cols : (i+1)*out.cols]
		for j, c := range colIdx {
			dst[j] = m.data[base+c]
		}
	}
	return out
}

// Grid returns the matrix as nested int slices (JSON friendly).
func (m *Matrix) Grid() [][]int {
	out := make([][]int, m.rows)
	for r := range out {
		row := make([]int, m.cols)
		for c := range row {
			row[c] = int(m.At(r, c))
		}
		out[r] = row
	}
	return out
}
