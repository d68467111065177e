// Package spectrum renders the centered log-magnitude Fourier spectrum of an
// intensity grid.
package spectrum

import (
	"fmt"
	"math"

	"spectral-workbench/internal/grid"
)

const (
	DisplayMin = 0.0
	DisplayMax = 255.0
)

// ComputeSpectrum pads g to an efficient transform size, takes the 2-D DFT
// and returns log(1+|F|) with the zero frequency moved to the center,
// rescaled and quantized to [DisplayMin, DisplayMax]. The result has the
// padded dimensions rounded down to even values. g is not modified.
func ComputeSpectrum(g *grid.Grid) (*grid.Grid, error) {
	if err := grid.Validate(g); err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	magnitude, err := LogMagnitudeSpectrum(g)
	if err != nil {
		return nil, err
	}

	cropped, err := CropEven(magnitude)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	SwapQuadrants(cropped)
	return ToDisplay(cropped), nil
}

// LogMagnitudeSpectrum returns log(1+|DFT|) of the zero-padded grid without
// cropping or reordering.
func LogMagnitudeSpectrum(g *grid.Grid) (*grid.Grid, error) {
	padded, err := Pad(g, OptimalDFTSize(g.Rows), OptimalDFTSize(g.Cols))
	if err != nil {
		return nil, fmt.Errorf("spectrum: pad: %w", err)
	}

	field := grid.FromReal(padded)
	FFT2D(field)

	magnitude := LogMagnitude(field)
	for _, v := range magnitude.Data {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("spectrum: %w: magnitude overflow", grid.ErrNumericInstability)
		}
	}
	return magnitude, nil
}

// LogMagnitude returns log(1 + sqrt(re² + im²)) per sample.
func LogMagnitude(c *grid.Complex) *grid.Grid {
	out := &grid.Grid{Rows: c.Rows(), Cols: c.Cols(), Data: make([]float64, len(c.Re.Data))}
	for i := range out.Data {
		out.Data[i] = math.Log1p(math.Hypot(c.Re.Data[i], c.Im.Data[i]))
	}
	return out
}

// CropEven drops a trailing row and/or column so both extents are even.
func CropEven(g *grid.Grid) (*grid.Grid, error) {
	return g.SubGrid(g.Rows&^1, g.Cols&^1)
}

// SwapQuadrants exchanges the top-left with the bottom-right quadrant and the
// top-right with the bottom-left one, in place. Rows and cols must be even;
// a trailing odd row or column is left untouched.
func SwapQuadrants(g *grid.Grid) {
	cy, cx := g.Rows/2, g.Cols/2

	for i := 0; i < cy; i++ {
		top := g.Row(i)
		bottom := g.Row(i + cy)
		for j := 0; j < cx; j++ {
			top[j], bottom[j+cx] = bottom[j+cx], top[j]
			top[j+cx], bottom[j] = bottom[j], top[j+cx]
		}
	}
}

// ToDisplay min-max rescales g onto the display range and quantizes it.
func ToDisplay(g *grid.Grid) *grid.Grid {
	return grid.Quantize(grid.Rescale(g, DisplayMin, DisplayMax))
}
