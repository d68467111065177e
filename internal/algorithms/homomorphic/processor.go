package homomorphic

import (
	"context"
	"fmt"

	"spectral-workbench/internal/grid"
)

type Processor struct {
	name string
}

// NewProcessor returns the homomorphic filter processor.
func NewProcessor() *Processor {
	return &Processor{
		name: "Homomorphic Filter",
	}
}

func (p *Processor) Name() string {
	return p.name
}

func (p *Processor) DefaultParameters() map[string]interface{} {
	d := DefaultParams()
	return map[string]interface{}{
		"gamma_high":    d.GammaHigh,
		"gamma_low":     d.GammaLow,
		"c":             d.C,
		"dc_boost":      d.DCBoost,
		"epsilon":       d.Epsilon,
		"alpha":         d.Alpha,
		"kernel_size":   d.KernelSize,
		"sigma":         d.Sigma,
		"spectral_pass": d.SpectralPass,
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	parsed, err := p.parseParameters(params)
	if err != nil {
		return err
	}
	return parsed.Validate()
}

func (p *Processor) Process(ctx context.Context, input *grid.Grid, params map[string]interface{}) (*grid.Grid, error) {
	parsed, err := p.parseParameters(params)
	if err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return Apply(input, parsed)
}

// parseParameters overlays params on DefaultParams. Unknown keys and values of
// the wrong type are rejected.
func (p *Processor) parseParameters(params map[string]interface{}) (Params, error) {
	parsed := DefaultParams()

	floatFields := map[string]*float64{
		"gamma_high": &parsed.GammaHigh,
		"gamma_low":  &parsed.GammaLow,
		"c":          &parsed.C,
		"dc_boost":   &parsed.DCBoost,
		"epsilon":    &parsed.Epsilon,
		"alpha":      &parsed.Alpha,
		"sigma":      &parsed.Sigma,
	}

	for key, value := range params {
		if field, ok := floatFields[key]; ok {
			f, err := getFloatParam(key, value)
			if err != nil {
				return Params{}, err
			}
			*field = f
			continue
		}

		switch key {
		case "kernel_size":
			size, ok := value.(int)
			if !ok {
				return Params{}, fmt.Errorf("%w: kernel_size must be int, got %T", grid.ErrInvalidParameter, value)
			}
			parsed.KernelSize = size
		case "spectral_pass":
			enabled, ok := value.(bool)
			if !ok {
				return Params{}, fmt.Errorf("%w: spectral_pass must be bool, got %T", grid.ErrInvalidParameter, value)
			}
			parsed.SpectralPass = enabled
		default:
			return Params{}, fmt.Errorf("%w: unknown parameter %q for %s", grid.ErrInvalidParameter, key, p.name)
		}
	}

	return parsed, parsed.Validate()
}

func getFloatParam(key string, value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %s must be numeric, got %T", grid.ErrInvalidParameter, key, value)
	}
}
