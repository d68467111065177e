package homomorphic

import (
	"fmt"
	"image"

	"spectral-workbench/internal/grid"
	"spectral-workbench/internal/opencv/bridge"

	"gocv.io/x/gocv"
)

// GaussianBlur smooths g with a size x size Gaussian kernel. Borders are
// reflected without repeating the edge sample (…cb|abcd|cb…). g is not
// modified.
func GaussianBlur(g *grid.Grid, size int, sigmaX, sigmaY float64) (*grid.Grid, error) {
	if size < 1 || size%2 == 0 {
		return nil, fmt.Errorf("%w: kernel size must be odd and positive, got %d", grid.ErrInvalidParameter, size)
	}
	if sigmaX <= 0 || sigmaY <= 0 {
		return nil, fmt.Errorf("%w: sigma must be positive, got %f/%f", grid.ErrInvalidParameter, sigmaX, sigmaY)
	}

	src, err := bridge.GridToMat(g)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	if err := gocv.GaussianBlur(src, &dst, image.Point{X: size, Y: size}, sigmaX, sigmaY, gocv.BorderDefault); err != nil {
		return nil, fmt.Errorf("gaussian blur failed: %w", err)
	}

	return bridge.Float64MatToGrid(dst)
}
