package homomorphic

import (
	"context"
	"testing"

	"spectral-workbench/internal/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessorDefaultsValidate(t *testing.T) {
	p := NewProcessor()
	assert.Equal(t, "Homomorphic Filter", p.Name())
	assert.NoError(t, p.ValidateParameters(p.DefaultParameters()))
	assert.NoError(t, p.ValidateParameters(nil))
}

func TestProcessorParsesParameters(t *testing.T) {
	p := NewProcessor()

	parsed, err := p.parseParameters(map[string]interface{}{
		"alpha":         1,
		"sigma":         float32(2),
		"kernel_size":   5,
		"spectral_pass": false,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, parsed.Alpha)
	assert.Equal(t, 2.0, parsed.Sigma)
	assert.Equal(t, 5, parsed.KernelSize)
	assert.False(t, parsed.SpectralPass)
	assert.Equal(t, 1.5, parsed.GammaHigh)
}

func TestProcessorRejectsBadParameters(t *testing.T) {
	p := NewProcessor()

	bad := []map[string]interface{}{
		{"alpha": "high"},
		{"kernel_size": 4.0},
		{"kernel_size": 4},
		{"spectral_pass": 1},
		{"unknown": 1},
		{"gamma_low": 2.0},
	}

	for _, params := range bad {
		assert.ErrorIs(t, p.ValidateParameters(params), grid.ErrInvalidParameter, "%v", params)
	}
}

func TestProcessorProcess(t *testing.T) {
	g, err := grid.NewFilled(6, 6, 90)
	require.NoError(t, err)

	out, err := NewProcessor().Process(context.Background(), g, map[string]interface{}{"alpha": 0.75})
	require.NoError(t, err)
	assert.Equal(t, 90.0, out.At(3, 3))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewProcessor().Process(ctx, g, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
