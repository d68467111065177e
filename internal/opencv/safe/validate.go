// Package safe checks gocv matrices before they are handed to OpenCV.
package safe

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// MaxDimension bounds either extent of a matrix.
const MaxDimension = 32768

var ErrInvalidMat = errors.New("invalid mat")

func ValidateDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: invalid dimensions: %d rows x %d cols", ErrInvalidMat, rows, cols)
	}

	if rows > MaxDimension || cols > MaxDimension {
		return fmt.Errorf("%w: dimensions %d rows x %d cols exceed maximum size", ErrInvalidMat, rows, cols)
	}

	return nil
}

func ValidateMatForOperation(mat gocv.Mat, operation string) error {
	if mat.Empty() {
		return fmt.Errorf("%w: Mat is empty for operation: %s", ErrInvalidMat, operation)
	}

	if err := ValidateDimensions(mat.Rows(), mat.Cols()); err != nil {
		return fmt.Errorf("%w (operation: %s)", err, operation)
	}

	return nil
}

// ValidateColorConversion checks the source channel count for the
// conversions used by this module.
func ValidateColorConversion(src gocv.Mat, code gocv.ColorConversionCode) error {
	if err := ValidateMatForOperation(src, "CvtColor"); err != nil {
		return err
	}

	channels := src.Channels()

	switch code {
	case gocv.ColorBGRToGray, gocv.ColorRGBToGray:
		if channels != 3 {
			return fmt.Errorf("%w: BGR/RGB to Gray conversion requires 3 channels, got %d", ErrInvalidMat, channels)
		}
	case gocv.ColorBGRAToGray:
		if channels != 4 {
			return fmt.Errorf("%w: BGRA to Gray conversion requires 4 channels, got %d", ErrInvalidMat, channels)
		}
	case gocv.ColorGrayToBGR:
		if channels != 1 {
			return fmt.Errorf("%w: Gray to BGR conversion requires 1 channel, got %d", ErrInvalidMat, channels)
		}
	}

	return nil
}
