package homomorphic

import (
	"fmt"

	"spectral-workbench/internal/grid"
	"spectral-workbench/internal/opencv/bridge"

	"gocv.io/x/gocv"
)

// DCT2D returns the orthonormal 2-D DCT-II of g. Both extents must be even.
func DCT2D(g *grid.Grid) (*grid.Grid, error) {
	return cosineTransform(g, gocv.DftForward)
}

// IDCT2D inverts DCT2D.
func IDCT2D(g *grid.Grid) (*grid.Grid, error) {
	return cosineTransform(g, gocv.DctInverse)
}

func cosineTransform(g *grid.Grid, flags gocv.DftFlags) (*grid.Grid, error) {
	if err := grid.Validate(g); err != nil {
		return nil, fmt.Errorf("%w: %w", grid.ErrTransformUnsupported, err)
	}

	// OpenCV only implements the cosine transform for even sizes.
	if g.Rows%2 != 0 || g.Cols%2 != 0 {
		return nil, fmt.Errorf("%w: cosine transform needs even extents, got %s",
			grid.ErrTransformUnsupported, grid.Shape(g.Rows, g.Cols))
	}

	src, err := bridge.GridToMat(g)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	if err := gocv.DCT(src, &dst, flags); err != nil {
		return nil, fmt.Errorf("%w: %w", grid.ErrTransformUnsupported, err)
	}

	return bridge.Float64MatToGrid(dst)
}
