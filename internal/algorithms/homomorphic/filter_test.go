package homomorphic

import (
	"math"
	"testing"

	"spectral-workbench/internal/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientGrid(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	g, err := grid.New(rows, cols)
	require.NoError(t, err)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.Set(i, j, float64(20+(i*17+j*29)%200))
		}
	}
	return g
}

func TestApplyConstantIsIdentity(t *testing.T) {
	for _, value := range []float64{0, 1, 37, 128, 255} {
		g, err := grid.NewFilled(8, 10, value)
		require.NoError(t, err)

		out, err := ApplyDefault(g)
		require.NoError(t, err)
		for _, v := range out.Data {
			assert.Equal(t, value, v, "constant %v", value)
		}
	}
}

func TestApplyTrimsOddExtents(t *testing.T) {
	tests := []struct {
		rows, cols         int
		wantRows, wantCols int
	}{
		{8, 8, 8, 8},
		{9, 8, 8, 8},
		{8, 9, 8, 8},
		{9, 11, 8, 10},
		{2, 3, 2, 2},
	}

	for _, tt := range tests {
		out, err := ApplyDefault(gradientGrid(t, tt.rows, tt.cols))
		require.NoError(t, err)
		assert.Equal(t, tt.wantRows, out.Rows)
		assert.Equal(t, tt.wantCols, out.Cols)
	}
}

func TestApplyMatchesUnsharpMaskInLogDomain(t *testing.T) {
	g := gradientGrid(t, 12, 14)
	p := DefaultParams()

	out, err := Apply(g, p)
	require.NoError(t, err)

	logGrid := g.Clone()
	logGrid.Apply(func(v float64) float64 { return math.Log(v + p.Epsilon) })
	blurred, err := GaussianBlur(logGrid, 9, 1.5, 1.5)
	require.NoError(t, err)

	for i, v := range logGrid.Data {
		want := grid.QuantizeUint8(math.Exp(1.5*v - 0.5*blurred.Data[i]))
		assert.Equal(t, float64(want), out.Data[i], "sample %d", i)
	}
}

func TestSpectralPassDoesNotChangeOutput(t *testing.T) {
	g := gradientGrid(t, 10, 10)

	with := DefaultParams()
	without := DefaultParams()
	without.SpectralPass = false

	a, err := Apply(g, with)
	require.NoError(t, err)
	b, err := Apply(g, without)
	require.NoError(t, err)
	assert.Equal(t, a.Data, b.Data)
}

func TestApplyOutputRangeAndSharpening(t *testing.T) {
	g, err := grid.New(8, 8)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		for j := 4; j < 8; j++ {
			g.Set(i, j, 200)
		}
		for j := 0; j < 4; j++ {
			g.Set(i, j, 50)
		}
	}

	out, err := ApplyDefault(g)
	require.NoError(t, err)
	for _, v := range out.Data {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 255.0)
	}

	// The edge overshoots on both sides.
	assert.Less(t, out.At(4, 3), 50.0)
	assert.Greater(t, out.At(4, 4), 200.0)
}

func TestApplyClampsOverflow(t *testing.T) {
	g, err := grid.New(4, 4)
	require.NoError(t, err)
	g.Set(1, 1, 1e300)

	p := DefaultParams()
	p.Alpha = 10
	out, err := Apply(g, p)
	require.NoError(t, err)
	for _, v := range out.Data {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
	assert.Equal(t, 255.0, out.At(1, 1))
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	g := gradientGrid(t, 9, 9)
	before := g.Clone()

	_, err := ApplyDefault(g)
	require.NoError(t, err)
	assert.Equal(t, before.Data, g.Data)
}

func TestApplyErrors(t *testing.T) {
	_, err := ApplyDefault(&grid.Grid{Rows: 0, Cols: 0})
	assert.ErrorIs(t, err, grid.ErrInvalidDimensions)

	single, err := grid.NewFilled(1, 1, 5)
	require.NoError(t, err)
	_, err = ApplyDefault(single)
	assert.ErrorIs(t, err, grid.ErrInvalidDimensions)

	row, err := grid.NewFilled(1, 6, 5)
	require.NoError(t, err)
	_, err = ApplyDefault(row)
	assert.ErrorIs(t, err, grid.ErrInvalidDimensions)
	assert.Contains(t, err.Error(), "1 rows x 6 cols has no even-sized region")

	bad := gradientGrid(t, 4, 4)
	bad.Set(0, 0, math.NaN())
	_, err = ApplyDefault(bad)
	assert.ErrorIs(t, err, grid.ErrUnsupportedInput)

	p := DefaultParams()
	p.GammaLow = 1.2
	_, err = Apply(gradientGrid(t, 4, 4), p)
	assert.ErrorIs(t, err, grid.ErrInvalidParameter)
}

func TestWeightingSurface(t *testing.T) {
	p := DefaultParams()
	h := WeightingSurface(4, 6, p)

	assert.Equal(t, 1.1, h.At(0, 0))

	d0 := float64(2*2 + 3*3)
	want := func(u, v int) float64 {
		return (p.GammaHigh-p.GammaLow)*(1-math.Exp(-p.C*float64(u*u+v*v)/d0)) + p.GammaLow
	}
	assert.InDelta(t, want(0, 1), h.At(0, 1), 1e-15)
	assert.InDelta(t, want(3, 5), h.At(3, 5), 1e-15)

	for u := 0; u < h.Rows; u++ {
		for v := 1; v < h.Cols; v++ {
			assert.Greater(t, h.At(u, v), p.GammaLow)
			assert.Less(t, h.At(u, v), p.GammaHigh)
			if v > 1 || u > 0 {
				assert.Greater(t, h.At(u, v), h.At(u, v-1))
			}
		}
	}
}

func TestSpectralPassSquaresCoefficients(t *testing.T) {
	g := gradientGrid(t, 6, 8)
	coeffs, err := DCT2D(g)
	require.NoError(t, err)

	reconstructed, weights, err := SpectralPass(g, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 6, weights.Rows)
	assert.Equal(t, 8, weights.Cols)

	back, err := DCT2D(reconstructed)
	require.NoError(t, err)
	for i, v := range coeffs.Data {
		assert.InDelta(t, v*v, back.Data[i], 1e-6*math.Max(1, v*v))
	}
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"gamma high not above one", func(p *Params) { p.GammaHigh = 1 }},
		{"gamma low zero", func(p *Params) { p.GammaLow = 0 }},
		{"gamma low one", func(p *Params) { p.GammaLow = 1 }},
		{"c zero", func(p *Params) { p.C = 0 }},
		{"epsilon zero", func(p *Params) { p.Epsilon = 0 }},
		{"negative alpha", func(p *Params) { p.Alpha = -0.1 }},
		{"even kernel", func(p *Params) { p.KernelSize = 8 }},
		{"tiny kernel", func(p *Params) { p.KernelSize = 1 }},
		{"sigma NaN", func(p *Params) { p.Sigma = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			assert.ErrorIs(t, p.Validate(), grid.ErrInvalidParameter)
		})
	}
}
