package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"spectral-workbench/internal/grid"
	"spectral-workbench/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedGray(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(10 + 20*x + 3*y)})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func loadedCoordinator(t *testing.T) *Coordinator {
	t.Helper()

	c := NewCoordinator(logger.Nop{})
	_, err := c.LoadBytes(encodedGray(t, 8, 6), ".png")
	require.NoError(t, err)
	return c
}

func TestCoordinatorLoad(t *testing.T) {
	c := loadedCoordinator(t)

	current := c.CurrentImage()
	require.NotNil(t, current)
	assert.Equal(t, 8, current.Width)
	assert.Equal(t, 6, current.Height)
	assert.Equal(t, "png", current.Format)
	assert.Equal(t, 30.0, current.Grid.At(0, 1))
	assert.Empty(t, current.Step)
	assert.False(t, c.CanUndo())
}

func TestCoordinatorProcessWithoutImage(t *testing.T) {
	c := NewCoordinator(logger.Nop{})

	_, err := c.ProcessImage("Fourier Spectrum", nil)
	assert.ErrorIs(t, err, ErrNoImage)
	assert.Nil(t, c.CurrentImage())
	assert.Nil(t, c.OriginalImage())
}

func TestCoordinatorAccessorsBeforeLoad(t *testing.T) {
	c := NewCoordinator(logger.Nop{})
	defer c.Shutdown()

	require.NotPanics(t, func() { c.Steps() })
	assert.Nil(t, c.Steps())
	assert.False(t, c.CanUndo())
	assert.False(t, c.CanRedo())

	undone, ok := c.Undo()
	assert.False(t, ok)
	assert.Nil(t, undone)

	redone, ok := c.Redo()
	assert.False(t, ok)
	assert.Nil(t, redone)

	c = loadedCoordinator(t)
	assert.Nil(t, c.Steps())
	assert.False(t, c.CanUndo())
}

func TestCoordinatorChainsOnLatestResult(t *testing.T) {
	c := loadedCoordinator(t)

	first, err := c.ProcessImage("Homomorphic Filter", nil)
	require.NoError(t, err)
	assert.Equal(t, "Homomorphic Filter", first.Step)

	second, err := c.ProcessImage("Wavelet Pyramid", map[string]interface{}{"depth": 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"Homomorphic Filter", "Wavelet Pyramid"}, c.Steps())

	a, b := first.Grid.At(0, 0), first.Grid.At(0, 1)
	d, e := first.Grid.At(1, 0), first.Grid.At(1, 1)
	assert.InDelta(t, (a+b+d+e)/4, second.Grid.At(0, 0), 1e-12)

	undone, ok := c.Undo()
	require.True(t, ok)
	assert.Equal(t, first.Grid.Data, undone.Grid.Data)

	original, ok := c.Undo()
	require.True(t, ok)
	assert.Equal(t, c.OriginalImage().Grid.Data, original.Grid.Data)

	_, ok = c.Undo()
	assert.False(t, ok)

	redone, ok := c.Redo()
	require.True(t, ok)
	assert.Equal(t, first.Grid.Data, redone.Grid.Data)
}

func TestCoordinatorRejectsBadParameters(t *testing.T) {
	c := loadedCoordinator(t)

	_, err := c.ProcessImage("Wavelet Pyramid", map[string]interface{}{"depth": 0})
	assert.ErrorIs(t, err, grid.ErrInvalidParameter)

	_, err = c.ProcessImage("Unknown", nil)
	assert.Error(t, err)
	assert.Empty(t, c.Steps())
}

func TestCoordinatorSaveRoundTrip(t *testing.T) {
	c := loadedCoordinator(t)

	spectrum, err := c.ProcessImage("Fourier Spectrum", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.SaveImageToWriter(&buf, spectrum, "PNG"))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, spectrum.Image.Bounds(), decoded.Bounds())

	path := filepath.Join(t.TempDir(), "spectrum.png")
	require.NoError(t, c.SaveFile(path, spectrum))

	reloaded, err := c.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, spectrum.Grid.Data, reloaded.Grid.Data)
	assert.False(t, c.CanUndo())
}

func TestLoadFileMissing(t *testing.T) {
	c := NewCoordinator(logger.Nop{})
	_, err := c.LoadFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDisplayImageRescalesCoefficients(t *testing.T) {
	g, err := grid.FromRows([][]float64{{-10, 0}, {10, 30}})
	require.NoError(t, err)

	img, ok := displayImage(g).(*image.Gray)
	require.True(t, ok)
	assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), img.GrayAt(1, 1).Y)

	inRange, err := grid.FromRows([][]float64{{0, 100}})
	require.NoError(t, err)
	img, ok = displayImage(inRange).(*image.Gray)
	require.True(t, ok)
	assert.Equal(t, uint8(100), img.GrayAt(1, 0).Y)
}

func TestNormalizeFormat(t *testing.T) {
	tests := map[string]string{
		".JPG":    "jpeg",
		"jpeg":    "jpeg",
		".png":    "png",
		"tif":     "tiff",
		"bmp":     "bmp",
		"unknown": "",
		"":        "",
	}
	for input, want := range tests {
		assert.Equal(t, want, normalizeFormat(input), "input %q", input)
	}
}

func TestComputeStats(t *testing.T) {
	g, err := grid.FromRows([][]float64{{1, 3}, {5, 7}})
	require.NoError(t, err)

	s := ComputeStats(g)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 7.0, s.Max)
	assert.Equal(t, 4.0, s.Mean)
	assert.InDelta(t, 2.5819888974716, s.StdDev, 1e-9)

	single, err := grid.NewFilled(1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, Stats{Min: 2, Max: 2, Mean: 2}, ComputeStats(single))
	assert.Equal(t, Stats{}, ComputeStats(nil))
}
