package wavelet

import (
	"context"
	"fmt"

	"spectral-workbench/internal/grid"
)

type Processor struct {
	name string
}

// NewProcessor returns the pyramid processor, configured by an int "depth".
func NewProcessor() *Processor {
	return &Processor{
		name: "Wavelet Pyramid",
	}
}

func (p *Processor) Name() string {
	return p.name
}

func (p *Processor) DefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"depth": DefaultParams().Depth,
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	_, err := p.parseParameters(params)
	return err
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

	return Decompose(input, parsed.Depth)
}

func (p *Processor) parseParameters(params map[string]interface{}) (Params, error) {
	parsed := DefaultParams()

	for key, value := range params {
		if key != "depth" {
			return Params{}, fmt.Errorf("%w: unknown parameter %q for %s", grid.ErrInvalidParameter, key, p.name)
		}

		depth, ok := value.(int)
		if !ok {
			return Params{}, fmt.Errorf("%w: depth must be int, got %T", grid.ErrInvalidParameter, value)
		}
		parsed.Depth = depth
	}

	return parsed, parsed.Validate()
}
