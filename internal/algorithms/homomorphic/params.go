package homomorphic

import (
	"fmt"

	"spectral-workbench/internal/grid"
)

// Params configures the filter. The zero value is not usable; start from
// DefaultParams.
type Params struct {
	GammaHigh float64
	GammaLow  float64
	C         float64
	DCBoost   float64
	Epsilon   float64

	Alpha      float64
	KernelSize int
	Sigma      float64

	// SpectralPass runs the cosine-transform stage. Its reconstruction is
	// replaced by the unsharp mask, so disabling it leaves the output
	// unchanged and only skips the work and its failure mode.
	SpectralPass bool
}

// DefaultParams returns α 0.5 with a 9x9, σ 1.5 blur and the spectral pass on.
func DefaultParams() Params {
	return Params{
		GammaHigh:    1.5,
		GammaLow:     0.5,
		C:            1,
		DCBoost:      1.1,
		Epsilon:      1e-4,
		Alpha:        0.5,
		KernelSize:   9,
		Sigma:        1.5,
		SpectralPass: true,
	}
}

// Validate reports ErrInvalidParameter for out-of-range fields.
func (p Params) Validate() error {
	if !(p.GammaHigh > 1) {
		return fmt.Errorf("%w: gamma_high must be greater than 1, got %f", grid.ErrInvalidParameter, p.GammaHigh)
	}

	if !(p.GammaLow > 0 && p.GammaLow < 1) {
		return fmt.Errorf("%w: gamma_low must be in (0, 1), got %f", grid.ErrInvalidParameter, p.GammaLow)
	}

	if !(p.C > 0) {
		return fmt.Errorf("%w: c must be positive, got %f", grid.ErrInvalidParameter, p.C)
	}

	if !(p.Epsilon > 0) {
		return fmt.Errorf("%w: epsilon must be positive, got %g", grid.ErrInvalidParameter, p.Epsilon)
	}

	if p.Alpha < 0 || p.Alpha > 10 {
		return fmt.Errorf("%w: alpha must be between 0 and 10, got %f", grid.ErrInvalidParameter, p.Alpha)
	}

	if p.KernelSize < 3 || p.KernelSize > 31 || p.KernelSize%2 == 0 {
		return fmt.Errorf("%w: kernel_size must be odd number between 3 and 31, got %d", grid.ErrInvalidParameter, p.KernelSize)
	}

	if !(p.Sigma > 0) {
		return fmt.Errorf("%w: sigma must be positive, got %f", grid.ErrInvalidParameter, p.Sigma)
	}

	return nil
}
