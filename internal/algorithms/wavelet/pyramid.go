// Package wavelet decomposes a grid into a multi-level average/difference
// pyramid, row pass first and column pass second.
package wavelet

import (
	"fmt"

	"spectral-workbench/internal/grid"
)

// fillValue initializes both working buffers. Cells outside the paired
// region of every level keep it.
const fillValue = 1.0

// Params configures Decompose.
type Params struct {
	// Depth is the number of levels, at least 1.
	Depth int
}

// DefaultParams returns a three-level decomposition.
func DefaultParams() Params {
	return Params{Depth: 3}
}

// Validate reports ErrInvalidParameter for a depth below 1.
func (p Params) Validate() error {
	if p.Depth < 1 {
		return fmt.Errorf("%w: depth must be at least 1, got %d", grid.ErrInvalidParameter, p.Depth)
	}
	return nil
}

// Decompose runs depth levels over g and returns the final level buffer.
//
// Level k works on the leading rows/(k+1) x cols/(k+1) region of the previous
// level's output. The extent shrinks by the level count rather than halving,
// so deeper levels revisit difference bands written by earlier ones.
func Decompose(g *grid.Grid, depth int) (*grid.Grid, error) {
	if err := (Params{Depth: depth}).Validate(); err != nil {
		return nil, err
	}

	if err := grid.Validate(g); err != nil {
		return nil, fmt.Errorf("wavelet: %w", err)
	}

	tmp, err := grid.NewFilled(g.Rows, g.Cols, fillValue)
	if err != nil {
		return nil, err
	}
	out, err := grid.NewFilled(g.Rows, g.Cols, fillValue)
	if err != nil {
		return nil, err
	}

	src := g
	for level := 1; level <= depth; level++ {
		h, w := g.Rows/level, g.Cols/level
		rowPass(src, tmp, h, w)
		columnPass(tmp, out, h, w)
		src = out
	}

	return out, nil
}

func rowPass(src, dst *grid.Grid, h, w int) {
	half := w / 2
	for i := 0; i < h; i++ {
		in, res := src.Row(i), dst.Row(i)
		for j := 0; j < half; j++ {
			a, b := in[2*j], in[2*j+1]
			res[j] = (a + b) / 2
			res[j+half] = (a - b) / 2
		}
	}
}

// src and dst must not alias.
func columnPass(src, dst *grid.Grid, h, w int) {
	half := h / 2
	for i := 0; i < half; i++ {
		top, bottom := src.Row(2*i), src.Row(2*i+1)
		avg, diff := dst.Row(i), dst.Row(i+half)
		for j := 0; j < w; j++ {
			avg[j] = (top[j] + bottom[j]) / 2
			diff[j] = (top[j] - bottom[j]) / 2
		}
	}
}
