package grid

import "fmt"

// Complex is a complex-valued field stored as two same-shaped planes.
type Complex struct {
	Re *Grid
	Im *Grid
}

// NewComplex pairs two planes of the same shape without copying them.
func NewComplex(re, im *Grid) (*Complex, error) {
	if re == nil || im == nil {
		return nil, fmt.Errorf("%w: complex plane is nil", ErrInvalidDimensions)
	}

	if !re.SameShape(im) {
		return nil, fmt.Errorf("%w: real plane %s, imaginary plane %s",
			ErrInvalidDimensions, Shape(re.Rows, re.Cols), Shape(im.Rows, im.Cols))
	}

	return &Complex{Re: re, Im: im}, nil
}

// FromReal copies g into the real plane of a field with a zero imaginary plane.
func FromReal(g *Grid) *Complex {
	return &Complex{
		Re: g.Clone(),
		Im: &Grid{Rows: g.Rows, Cols: g.Cols, Data: make([]float64, len(g.Data))},
	}
}

func (c *Complex) Rows() int { return c.Re.Rows }
func (c *Complex) Cols() int { return c.Re.Cols }

func (c *Complex) At(row, col int) complex128 {
	i := row*c.Re.Cols + col
	return complex(c.Re.Data[i], c.Im.Data[i])
}

func (c *Complex) Set(row, col int, v complex128) {
	i := row*c.Re.Cols + col
	c.Re.Data[i] = real(v)
	c.Im.Data[i] = imag(v)
}
