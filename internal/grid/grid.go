// Package grid holds the dense single-channel sample grids shared by the
// transform stages.
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxExtent bounds either dimension of a grid.
const MaxExtent = 32768

// Grid is a dense row-major rectangle of float64 samples. Its dimensions are
// fixed at construction.
type Grid struct {
	Rows int
	Cols int
	Data []float64
}

// New returns a zero-filled rows x cols grid. Both extents must lie in
// 1..MaxExtent.
func New(rows, cols int) (*Grid, error) {
	if err := validateDimensions(rows, cols); err != nil {
		return nil, err
	}

	return &Grid{
		Rows: rows,
		Cols: cols,
		Data: make([]float64, rows*cols),
	}, nil
}

// NewFilled returns a rows x cols grid with every sample set to value.
func NewFilled(rows, cols int, value float64) (*Grid, error) {
	g, err := New(rows, cols)
	if err != nil {
		return nil, err
	}

	for i := range g.Data {
		g.Data[i] = value
	}
	return g, nil
}

// FromRows copies a rectangular slice of rows into a new grid.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}

	g, err := New(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		if len(row) != g.Cols {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d",
				ErrInvalidDimensions, i, len(row), g.Cols)
		}
		copy(g.Row(i), row)
	}
	return g, nil
}

func (g *Grid) At(row, col int) float64 {
	return g.Data[row*g.Cols+col]
}

func (g *Grid) Set(row, col int, value float64) {
	g.Data[row*g.Cols+col] = value
}

// Row returns the backing slice of one row; writes go to the grid.
func (g *Grid) Row(row int) []float64 {
	return g.Data[row*g.Cols : (row+1)*g.Cols]
}

// Rows2D returns a copy of the samples as a slice of rows.
func (g *Grid) Rows2D() [][]float64 {
	out := make([][]float64, g.Rows)
	for i := range out {
		out[i] = append([]float64(nil), g.Row(i)...)
	}
	return out
}

func (g *Grid) Clone() *Grid {
	return &Grid{
		Rows: g.Rows,
		Cols: g.Cols,
		Data: append([]float64(nil), g.Data...),
	}
}

// SubGrid copies the top-left rows x cols window.
func (g *Grid) SubGrid(rows, cols int) (*Grid, error) {
	if rows > g.Rows || cols > g.Cols {
		return nil, fmt.Errorf("%w: window %s exceeds grid %s",
			ErrInvalidDimensions, Shape(rows, cols), Shape(g.Rows, g.Cols))
	}

	sub, err := New(rows, cols)
	if err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		copy(sub.Row(i), g.Row(i)[:cols])
	}
	return sub, nil
}

func (g *Grid) SameShape(other *Grid) bool {
	return other != nil && g.Rows == other.Rows && g.Cols == other.Cols
}

// Equal reports whether both grids have the same shape and samples within tol.
func (g *Grid) Equal(other *Grid, tol float64) bool {
	if !g.SameShape(other) {
		return false
	}
	return floats.EqualApprox(g.Data, other.Data, tol)
}

func (g *Grid) MinMax() (float64, float64) {
	return floats.Min(g.Data), floats.Max(g.Data)
}

// Apply replaces every sample with fn(sample).
func (g *Grid) Apply(fn func(float64) float64) {
	for i, v := range g.Data {
		g.Data[i] = fn(v)
	}
}

func (g *Grid) String() string {
	return "Grid(" + Shape(g.Rows, g.Cols) + ")"
}

// Shape formats grid extents for messages, rows first.
func Shape(rows, cols int) string {
	return fmt.Sprintf("%d rows x %d cols", rows, cols)
}

// Validate checks the structural invariants and that every sample is finite.
func Validate(g *Grid) error {
	if g == nil {
		return fmt.Errorf("%w: grid is nil", ErrInvalidDimensions)
	}

	if err := validateDimensions(g.Rows, g.Cols); err != nil {
		return err
	}

	if len(g.Data) != g.Rows*g.Cols {
		return fmt.Errorf("%w: %d samples for %s grid",
			ErrInvalidDimensions, len(g.Data), Shape(g.Rows, g.Cols))
	}

	for i, v := range g.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite sample at row %d col %d",
				ErrUnsupportedInput, i/g.Cols, i%g.Cols)
		}
	}

	return nil
}

func validateDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDimensions, Shape(rows, cols))
	}

	if rows > MaxExtent || cols > MaxExtent {
		return fmt.Errorf("%w: %s exceeds maximum size", ErrInvalidDimensions, Shape(rows, cols))
	}

	return nil
}
