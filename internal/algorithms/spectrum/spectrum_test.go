package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"spectral-workbench/internal/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampGrid(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	g, err := grid.New(rows, cols)
	require.NoError(t, err)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.Set(i, j, float64((i*7+j*13)%256))
		}
	}
	return g
}

func TestOptimalDFTSize(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1},
		{1, 1},
		{7, 8},
		{11, 12},
		{17, 18},
		{31, 32},
		{97, 100},
		{243, 243},
		{1001, 1024},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OptimalDFTSize(tt.in), "n=%d", tt.in)
	}
}

func smooth235(m int) bool {
	for _, p := range []int{2, 3, 5} {
		for m%p == 0 {
			m /= p
		}
	}
	return m == 1
}

func TestOptimalDFTSizeIsSmallestSmoothSize(t *testing.T) {
	for n := 2; n <= 1500; n++ {
		got := OptimalDFTSize(n)
		require.True(t, smooth235(got), "n=%d got %d", n, got)
		for m := n; m < got; m++ {
			require.False(t, smooth235(m), "n=%d: %d is smaller than %d", n, m, got)
		}
	}
}

func TestPadZeroFillsBottomRight(t *testing.T) {
	g, err := grid.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	padded, err := Pad(g, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{
		{1, 2, 0, 0},
		{3, 4, 0, 0},
		{0, 0, 0, 0},
	}, padded.Rows2D())
}

func TestFFT2DMatchesDirectDFT(t *testing.T) {
	g := rampGrid(t, 5, 6)
	field := grid.FromReal(g)
	FFT2D(field)

	for u := 0; u < g.Rows; u++ {
		for v := 0; v < g.Cols; v++ {
			var want complex128
			for x := 0; x < g.Rows; x++ {
				for y := 0; y < g.Cols; y++ {
					phase := -2 * math.Pi * (float64(u*x)/float64(g.Rows) + float64(v*y)/float64(g.Cols))
					want += complex(g.At(x, y), 0) * cmplx.Exp(complex(0, phase))
				}
			}
			got := field.At(u, v)
			assert.InDelta(t, real(want), real(got), 1e-7, "re(%d,%d)", u, v)
			assert.InDelta(t, imag(want), imag(got), 1e-7, "im(%d,%d)", u, v)
		}
	}
}

func TestIFFT2DInvertsFFT2D(t *testing.T) {
	g := rampGrid(t, 6, 10)
	field := grid.FromReal(g)
	FFT2D(field)
	IFFT2D(field)

	assert.True(t, field.Re.Equal(g, 1e-9))
	for _, v := range field.Im.Data {
		assert.InDelta(t, 0, v, 1e-9)
	}
}

func TestSwapQuadrantsIsInvolution(t *testing.T) {
	g := rampGrid(t, 6, 8)
	original := g.Clone()

	SwapQuadrants(g)
	assert.False(t, g.Equal(original, 0))
	assert.Equal(t, original.At(0, 0), g.At(3, 4))
	assert.Equal(t, original.At(0, 4), g.At(3, 0))

	SwapQuadrants(g)
	assert.True(t, g.Equal(original, 0))
}

func TestCropEven(t *testing.T) {
	g := rampGrid(t, 5, 7)
	cropped, err := CropEven(g)
	require.NoError(t, err)
	assert.Equal(t, 4, cropped.Rows)
	assert.Equal(t, 6, cropped.Cols)
	assert.Equal(t, g.At(3, 5), cropped.At(3, 5))
}

func TestComputeSpectrumDimensionsAndRange(t *testing.T) {
	tests := []struct {
		rows, cols         int
		wantRows, wantCols int
	}{
		{8, 8, 8, 8},
		{7, 11, 8, 12},
		{13, 9, 14, 8},
		{25, 3, 24, 2},
	}

	for _, tt := range tests {
		out, err := ComputeSpectrum(rampGrid(t, tt.rows, tt.cols))
		require.NoError(t, err)
		assert.Equal(t, tt.wantRows, out.Rows)
		assert.Equal(t, tt.wantCols, out.Cols)

		for _, v := range out.Data {
			assert.GreaterOrEqual(t, v, DisplayMin)
			assert.LessOrEqual(t, v, DisplayMax)
			assert.Equal(t, math.Trunc(v), v)
		}
	}
}

func TestComputeSpectrumFlatFieldCentersEnergy(t *testing.T) {
	g, err := grid.NewFilled(8, 8, 100)
	require.NoError(t, err)

	out, err := ComputeSpectrum(g)
	require.NoError(t, err)

	for i := 0; i < out.Rows; i++ {
		for j := 0; j < out.Cols; j++ {
			if i == out.Rows/2 && j == out.Cols/2 {
				assert.Equal(t, DisplayMax, out.At(i, j))
				continue
			}
			assert.Equal(t, DisplayMin, out.At(i, j), "sample (%d,%d)", i, j)
		}
	}
}

func TestComputeSpectrumIsDeterministic(t *testing.T) {
	g := rampGrid(t, 17, 23)
	first, err := ComputeSpectrum(g)
	require.NoError(t, err)
	second, err := ComputeSpectrum(g)
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
}

func TestComputeSpectrumLeavesInputUntouched(t *testing.T) {
	g := rampGrid(t, 9, 9)
	before := g.Clone()

	_, err := ComputeSpectrum(g)
	require.NoError(t, err)
	assert.Equal(t, before.Data, g.Data)
}

func TestComputeSpectrumErrors(t *testing.T) {
	_, err := ComputeSpectrum(&grid.Grid{Rows: 0, Cols: 4})
	assert.ErrorIs(t, err, grid.ErrInvalidDimensions)

	_, err = ComputeSpectrum(&grid.Grid{Rows: 4, Cols: 0})
	assert.ErrorIs(t, err, grid.ErrInvalidDimensions)

	row, err := grid.NewFilled(1, 8, 1)
	require.NoError(t, err)
	_, err = ComputeSpectrum(row)
	assert.ErrorIs(t, err, grid.ErrInvalidDimensions)

	bad, err := grid.NewFilled(4, 4, 1)
	require.NoError(t, err)
	bad.Set(2, 2, math.Inf(1))
	_, err = ComputeSpectrum(bad)
	assert.ErrorIs(t, err, grid.ErrUnsupportedInput)
}
