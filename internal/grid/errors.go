package grid

import "errors"

var (
	// ErrUnsupportedInput reports samples the transform primitives cannot
	// consume, such as NaN or infinite values.
	ErrUnsupportedInput = errors.New("unsupported input kind")

	// ErrInvalidDimensions reports a zero, negative or inconsistent extent.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrTransformUnsupported reports a frequency-domain step that cannot run
	// on the supplied grid.
	ErrTransformUnsupported = errors.New("transform unsupported")

	// ErrNumericInstability reports values that left the finite range while
	// being transformed.
	ErrNumericInstability = errors.New("numeric instability")

	ErrInvalidParameter = errors.New("invalid parameter")
)
