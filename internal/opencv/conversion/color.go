package conversion

import (
	"fmt"

	"spectral-workbench/internal/opencv/safe"

	"gocv.io/x/gocv"
)

func CvtColorSafe(src gocv.Mat, dst *gocv.Mat, code gocv.ColorConversionCode) error {
	if err := safe.ValidateColorConversion(src, code); err != nil {
		return fmt.Errorf("color conversion validation failed: %w", err)
	}

	if err := gocv.CvtColor(src, dst, code); err != nil {
		return fmt.Errorf("color conversion failed: %w", err)
	}
	if dst.Empty() {
		return fmt.Errorf("%w: color conversion produced an empty Mat", safe.ErrInvalidMat)
	}

	return nil
}

// ToGrayscale returns a new single-channel copy of src. The caller closes it.
func ToGrayscale(src gocv.Mat) (gocv.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "ToGrayscale"); err != nil {
		return gocv.NewMat(), err
	}

	var code gocv.ColorConversionCode
	switch channels := src.Channels(); channels {
	case 1:
		return src.Clone(), nil
	case 3:
		code = gocv.ColorBGRToGray
	case 4:
		code = gocv.ColorBGRAToGray
	default:
		return gocv.NewMat(), fmt.Errorf("%w: unsupported channel count for grayscale conversion: %d",
			safe.ErrInvalidMat, channels)
	}

	dst := gocv.NewMat()
	if err := CvtColorSafe(src, &dst, code); err != nil {
		dst.Close()
		return gocv.NewMat(), err
	}

	return dst, nil
}
