package weighting

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Storage selects the sentence-word matrix representation.
type Storage string

const (
	// StorageDense keeps every entry in a gonum dense matrix.
	StorageDense Storage = "dense"
	// StorageSparse keeps only non-zero entries per row.
	StorageSparse Storage = "sparse"
)

// ParseStorage maps a config value to a Storage. Empty selects StorageDense.
func ParseStorage(s string) (Storage, error) {
	switch Storage(s) {
	case "", StorageDense:
		return StorageDense, nil
	case StorageSparse:
		return StorageSparse, nil
	default:
		return "", fmt.Errorf("unknown matrix storage %q", s)
	}
}

// Matrix is a sentence-by-term weight matrix. Row i is global sentence i; column j is
// vocabulary term j. Implementations are read-only once built.
type Matrix interface {
	Dims() (rows, cols int)
	At(i, j int) float64
	// Row returns row i as a dense slice. Callers must not modify it.
	Row(i int) []float64
}

// rowSetter is implemented by matrices under construction. SetRow on distinct rows
// may run concurrently.
type rowSetter interface {
	Matrix
	SetRow(i int, row []float64)
}

// NewMatrix allocates an all-zero matrix in the given storage.
func NewMatrix(storage Storage, rows, cols int) (Matrix, error) {
	m, err := newRowSetter(storage, rows, cols)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newRowSetter(storage Storage, rows, cols int) (rowSetter, error) {
	switch storage {
	case StorageDense, "":
		return NewDense(rows, cols), nil
	case StorageSparse:
		return NewSparse(rows, cols), nil
	default:
		return nil, fmt.Errorf("unknown matrix storage %q", storage)
	}
}

// Dense is a Matrix backed by gonum. Zero-sized matrices carry no backing store
// because gonum rejects them.
type Dense struct {
	rows, cols int
	m          *mat.Dense
}

// NewDense returns a rows x cols zero matrix.
func NewDense(rows, cols int) *Dense {
	d := &Dense{rows: rows, cols: cols}
	if rows > 0 && cols > 0 {
		d.m = mat.NewDense(rows, cols, nil)
	}
	return d
}

// Dims returns the matrix dimensions.
func (d *Dense) Dims() (int, int) {
	return d.rows, d.cols
}

// At returns entry (i, j).
func (d *Dense) At(i, j int) float64 {
	return d.m.At(i, j)
}

// Row returns a view of row i.
func (d *Dense) Row(i int) []float64 {
	if d.m == nil {
		return make([]float64, d.cols)
	}
	return d.m.RawRowView(i)
}

// SetRow copies row into row i.
func (d *Dense) SetRow(i int, row []float64) {
	if d.m == nil {
		return
	}
	d.m.SetRow(i, row)
}

// Sparse is a Matrix that stores the non-zero entries of each row in a map.
type Sparse struct {
	rows, cols int
	data       []map[int]float64
}

// NewSparse returns a rows x cols zero matrix.
func NewSparse(rows, cols int) *Sparse {
	return &Sparse{rows: rows, cols: cols, data: make([]map[int]float64, rows)}
}

// Dims returns the matrix dimensions.
func (s *Sparse) Dims() (int, int) {
	return s.rows, s.cols
}

// At returns entry (i, j).
func (s *Sparse) At(i, j int) float64 {
	if i < 0 || i >= s.rows || j < 0 || j >= s.cols {
		panic(fmt.Sprintf("sparse: index (%d, %d) out of range %dx%d", i, j, s.rows, s.cols))
	}
	return s.data[i][j]
}

// Row materializes row i.
func (s *Sparse) Row(i int) []float64 {
	out := make([]float64, s.cols)
	for j, v := range s.data[i] {
		out[j] = v
	}
	return out
}

// SetRow stores the non-zero entries of row as row i.
func (s *Sparse) SetRow(i int, row []float64) {
	entries := make(map[int]float64)
	for j, v := range row {
		if v != 0 {
			entries[j] = v
		}
	}
	s.data[i] = entries
}

// NonZero returns the number of stored entries.
func (s *Sparse) NonZero() int {
	n := 0
	for _, r := range s.data {
		n += len(r)
	}
	return n
}
