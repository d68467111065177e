package spectrum

import (
	"spectral-workbench/internal/grid"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/dsp/fourier"
)

// OptimalDFTSize returns the smallest m >= n whose only prime factors are 2,
// 3 and 5.
func OptimalDFTSize(n int) int {
	if n <= 1 {
		return 1
	}
	return gocv.GetOptimalDFTSize(n)
}

// Pad copies g into the top-left corner of a zero grid of rows x cols.
func Pad(g *grid.Grid, rows, cols int) (*grid.Grid, error) {
	padded, err := grid.New(rows, cols)
	if err != nil {
		return nil, err
	}

	for i := 0; i < g.Rows && i < rows; i++ {
		src := g.Row(i)
		if len(src) > cols {
			src = src[:cols]
		}
		copy(padded.Row(i), src)
	}
	return padded, nil
}

// FFT2D computes the unnormalized forward 2-D DFT of c in place, rows first
// and then columns.
func FFT2D(c *grid.Complex) {
	transform2D(c, func(fft *fourier.CmplxFFT, seq []complex128) {
		fft.Coefficients(seq, seq)
	})
}

// IFFT2D computes the inverse 2-D DFT of c in place, scaled by 1/(rows*cols).
func IFFT2D(c *grid.Complex) {
	transform2D(c, func(fft *fourier.CmplxFFT, seq []complex128) {
		fft.Sequence(seq, seq)
	})

	scale := 1 / float64(c.Rows()*c.Cols())
	for i := range c.Re.Data {
		c.Re.Data[i] *= scale
		c.Im.Data[i] *= scale
	}
}

func transform2D(c *grid.Complex, apply func(*fourier.CmplxFFT, []complex128)) {
	rows, cols := c.Rows(), c.Cols()

	if cols > 1 {
		fft := fourier.NewCmplxFFT(cols)
		seq := make([]complex128, cols)
		for i := 0; i < rows; i++ {
			for j := range seq {
				seq[j] = c.At(i, j)
			}
			apply(fft, seq)
			for j, v := range seq {
				c.Set(i, j, v)
			}
		}
	}

	if rows > 1 {
		fft := fourier.NewCmplxFFT(rows)
		seq := make([]complex128, rows)
		for j := 0; j < cols; j++ {
			for i := range seq {
				seq[i] = c.At(i, j)
			}
			apply(fft, seq)
			for i, v := range seq {
				c.Set(i, j, v)
			}
		}
	}
}
