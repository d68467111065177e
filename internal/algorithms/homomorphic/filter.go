// Package homomorphic implements a homomorphic illumination/reflectance
// filter: the image is moved to the log domain, sharpened there and brought
// back with the exponential.
package homomorphic

import (
	"fmt"
	"math"

	"spectral-workbench/internal/grid"
)

// maxExponent is the largest argument for which math.Exp stays finite.
const maxExponent = 709.0

// ApplyDefault runs Apply with DefaultParams.
func ApplyDefault(g *grid.Grid) (*grid.Grid, error) {
	return Apply(g, DefaultParams())
}

// Apply filters g and returns an 8-bit-range grid. Odd extents lose their
// last row or column. g is not modified.
func Apply(g *grid.Grid, p Params) (*grid.Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := grid.Validate(g); err != nil {
		return nil, fmt.Errorf("homomorphic: %w", err)
	}

	logGrid, err := TrimEven(g)
	if err != nil {
		return nil, fmt.Errorf("homomorphic: %w", err)
	}

	// Negative intensities have no logarithm; they are treated as black.
	logGrid.Apply(func(v float64) float64 {
		return math.Log(math.Max(v, 0) + p.Epsilon)
	})

	if p.SpectralPass {
		// Only the failure of this stage is observable: the unsharp mask
		// below replaces its reconstruction.
		if _, _, err := SpectralPass(logGrid, p); err != nil {
			return nil, fmt.Errorf("homomorphic: %w", err)
		}
	}

	blurred, err := GaussianBlur(logGrid, p.KernelSize, p.Sigma, p.Sigma)
	if err != nil {
		return nil, fmt.Errorf("homomorphic: %w", err)
	}

	out := logGrid.Clone()
	for i, v := range out.Data {
		sharpened := (1+p.Alpha)*v - p.Alpha*blurred.Data[i]
		out.Data[i] = float64(grid.QuantizeUint8(math.Exp(math.Min(sharpened, maxExponent))))
	}

	return out, nil
}

// TrimEven copies g without its last row and/or column when they are odd.
func TrimEven(g *grid.Grid) (*grid.Grid, error) {
	rows, cols := g.Rows&^1, g.Cols&^1
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: %s has no even-sized region", grid.ErrInvalidDimensions, grid.Shape(g.Rows, g.Cols))
	}
	return g.SubGrid(rows, cols)
}

// SpectralPass transforms the log-domain grid with the DCT, builds the
// high-emphasis weighting surface and reconstructs the grid from the squared
// coefficients. The surface is returned but never multiplied in; squaring is
// the composition the filter has always used.
func SpectralPass(logGrid *grid.Grid, p Params) (*grid.Grid, *grid.Grid, error) {
	coeffs, err := DCT2D(logGrid)
	if err != nil {
		return nil, nil, err
	}

	weights := WeightingSurface(logGrid.Rows, logGrid.Cols, p)

	for i, v := range coeffs.Data {
		coeffs.Data[i] = v * v
	}

	reconstructed, err := IDCT2D(coeffs)
	if err != nil {
		return nil, nil, err
	}
	return reconstructed, weights, nil
}

// WeightingSurface returns H(u,v) = (γH-γL)(1-exp(-c·d²/d0)) + γL with
// d² = u²+v² and d0 = (rows/2)² + (cols/2)², and H(0,0) = DCBoost.
func WeightingSurface(rows, cols int, p Params) *grid.Grid {
	h := &grid.Grid{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}

	halfRows, halfCols := rows/2, cols/2
	d0 := float64(halfRows*halfRows + halfCols*halfCols)

	for u := 0; u < rows; u++ {
		for v := 0; v < cols; v++ {
			d2 := float64(u*u + v*v)
			h.Set(u, v, (p.GammaHigh-p.GammaLow)*(1-math.Exp(-p.C*d2/d0))+p.GammaLow)
		}
	}

	h.Set(0, 0, p.DCBoost)
	return h
}
