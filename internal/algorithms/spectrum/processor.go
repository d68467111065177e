package spectrum

import (
	"context"
	"fmt"

	"spectral-workbench/internal/grid"
)

type Processor struct {
	name string
}

// NewProcessor returns the parameterless spectrum processor.
func NewProcessor() *Processor {
	return &Processor{
		name: "Fourier Spectrum",
	}
}

func (p *Processor) Name() string {
	return p.name
}

func (p *Processor) DefaultParameters() map[string]interface{} {
	return map[string]interface{}{}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	for key := range params {
		return fmt.Errorf("%w: %s takes no parameters, got %q", grid.ErrInvalidParameter, p.name, key)
	}
	return nil
}

func (p *Processor) Process(ctx context.Context, input *grid.Grid, params map[string]interface{}) (*grid.Grid, error) {
	if err := p.ValidateParameters(params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return ComputeSpectrum(input)
}
