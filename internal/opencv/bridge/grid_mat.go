// Package bridge moves sample grids in and out of gocv matrices and encoded
// image files.
package bridge

import (
	"fmt"
	"strings"

	"spectral-workbench/internal/grid"
	"spectral-workbench/internal/opencv/conversion"
	"spectral-workbench/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// sixteenToEight maps 16-bit intensities onto the 8-bit range.
const sixteenToEight = 1.0 / 257.0

// MatToGrid converts mat to a single-channel intensity grid. Color matrices
// are converted to gray and 16-bit depths are scaled to 0..255.
func MatToGrid(mat gocv.Mat) (*grid.Grid, error) {
	if err := safe.ValidateMatForOperation(mat, "MatToGrid"); err != nil {
		return nil, err
	}

	gray, err := conversion.ToGrayscale(mat)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	samples := gocv.NewMat()
	defer samples.Close()

	switch gray.Type() {
	case gocv.MatTypeCV16UC1:
		gray.ConvertToWithParams(&samples, gocv.MatTypeCV64FC1, sixteenToEight, 0)
	default:
		gray.ConvertTo(&samples, gocv.MatTypeCV64FC1)
	}

	return Float64MatToGrid(samples)
}

// Float64MatToGrid copies a CV_64FC1 matrix into a new grid.
func Float64MatToGrid(mat gocv.Mat) (*grid.Grid, error) {
	if err := safe.ValidateMatForOperation(mat, "Float64MatToGrid"); err != nil {
		return nil, err
	}
	if mat.Type() != gocv.MatTypeCV64FC1 {
		return nil, fmt.Errorf("%w: expected CV_64FC1, got %v", safe.ErrInvalidMat, mat.Type())
	}

	data, err := mat.DataPtrFloat64()
	if err != nil {
		return nil, fmt.Errorf("failed to access converted samples: %w", err)
	}

	g, err := grid.New(mat.Rows(), mat.Cols())
	if err != nil {
		return nil, err
	}
	copy(g.Data, data)

	return g, nil
}

// GridToMat copies g into a new CV_64FC1 matrix. The caller closes it.
func GridToMat(g *grid.Grid) (gocv.Mat, error) {
	if err := grid.Validate(g); err != nil {
		return gocv.NewMat(), err
	}

	mat := gocv.NewMatWithSize(g.Rows, g.Cols, gocv.MatTypeCV64FC1)
	data, err := mat.DataPtrFloat64()
	if err != nil {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("failed to access Mat samples: %w", err)
	}
	copy(data, g.Data)

	return mat, nil
}

// GridToGrayMat quantizes g into a new CV_8UC1 matrix. The caller closes it.
func GridToGrayMat(g *grid.Grid) (gocv.Mat, error) {
	if err := grid.Validate(g); err != nil {
		return gocv.NewMat(), err
	}

	pixels := make([]byte, len(g.Data))
	for i, v := range g.Data {
		pixels[i] = grid.QuantizeUint8(v)
	}

	mat, err := gocv.NewMatFromBytes(g.Rows, g.Cols, gocv.MatTypeCV8UC1, pixels)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to create gray Mat: %w", err)
	}
	return mat, nil
}

// DecodeGrid decodes any image format OpenCV reads into an intensity grid.
func DecodeGrid(data []byte) (*grid.Grid, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image data", grid.ErrUnsupportedInput)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadUnchanged)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image with OpenCV: %w", grid.ErrUnsupportedInput, err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("%w: OpenCV could not decode image", grid.ErrUnsupportedInput)
	}

	return MatToGrid(mat)
}

// EncodeGrid writes g as an 8-bit gray image. format is a file extension
// with or without the leading dot: png, jpg, jpeg, bmp, tif or tiff.
func EncodeGrid(g *grid.Grid, format string) ([]byte, error) {
	ext, err := fileExt(format)
	if err != nil {
		return nil, err
	}

	mat, err := GridToGrayMat(g)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(ext, mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ext, err)
	}
	defer buf.Close()

	encoded := make([]byte, buf.Len())
	copy(encoded, buf.GetBytes())
	return encoded, nil
}

func fileExt(format string) (gocv.FileExt, error) {
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "png":
		return gocv.PNGFileExt, nil
	case "jpg", "jpeg":
		return gocv.JPEGFileExt, nil
	case "bmp":
		return gocv.FileExt(".bmp"), nil
	case "tif", "tiff":
		return gocv.FileExt(".tiff"), nil
	default:
		return "", fmt.Errorf("unsupported output format: %q", format)
	}
}
