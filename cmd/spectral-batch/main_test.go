package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 12, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 12; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(40 + 10*x + y)})
		}
	}

	path := filepath.Join(dir, "input.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, img))
	require.NoError(t, file.Close())
	return path
}

func decodeOutput(t *testing.T, path string) image.Image {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	return img
}

func TestBatchCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantSize image.Point
	}{
		{"spectrum", []string{"spectrum"}, image.Pt(12, 10)},
		{"homomorphic", []string{"homomorphic", "--alpha", "1", "--skip-spectral-pass"}, image.Pt(12, 10)},
		{"wavelet", []string{"wavelet", "--depth", "2"}, image.Pt(12, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := writeInput(t, dir)
			output := filepath.Join(dir, "out.png")

			args := append([]string{"spectral-batch", "--log-level", "error"}, tt.args...)
			args = append(args, "--input", input, "--output", output)
			require.NoError(t, newApp().Run(args))

			assert.Equal(t, tt.wantSize, decodeOutput(t, output).Bounds().Size())
		})
	}
}

func TestBatchRejectsInvalidParameters(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)

	err := newApp().Run([]string{"spectral-batch", "--log-level", "error", "wavelet", "--depth", "0",
		"--input", input, "--output", filepath.Join(dir, "out.png")})
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "out.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBatchRequiresInput(t *testing.T) {
	err := newApp().Run([]string{"spectral-batch", "spectrum", "--output", "out.png"})
	assert.Error(t, err)
}
