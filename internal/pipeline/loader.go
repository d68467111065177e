package pipeline

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"spectral-workbench/internal/grid"
	"spectral-workbench/internal/logger"
	"spectral-workbench/internal/opencv/bridge"

	"fyne.io/fyne/v2"
)

type imageLoader struct {
	logger logger.Logger
}

func (l *imageLoader) LoadFromReader(reader fyne.URIReadCloser) (*ImageData, error) {
	originalURI := reader.URI()
	uriExtension := strings.ToLower(filepath.Ext(originalURI.Path()))

	bufferedReader := bufio.NewReader(reader)
	data, err := io.ReadAll(bufferedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	imageData, err := l.LoadFromBytes(data, uriExtension)
	if err != nil {
		return nil, err
	}
	imageData.Source = originalURI.Path()
	return imageData, nil
}

func (l *imageLoader) LoadFromPath(path string) (*ImageData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	imageData, err := l.LoadFromBytes(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, err
	}
	imageData.Source = path
	return imageData, nil
}

// LoadFromBytes decodes data with OpenCV into an intensity grid. extension
// is only used to name the format.
func (l *imageLoader) LoadFromBytes(data []byte, extension string) (*ImageData, error) {
	g, err := bridge.DecodeGrid(data)
	if err != nil {
		return nil, err
	}

	_, standardLibFormat, _ := image.DecodeConfig(bytes.NewReader(data))
	actualFormat := l.determineActualFormat(extension, standardLibFormat)

	imageData := newImageData(g, actualFormat, "")

	l.logger.Info("ImageLoader", "image loaded", map[string]interface{}{
		"width":  imageData.Width,
		"height": imageData.Height,
		"format": actualFormat,
	})

	return imageData, nil
}

func (l *imageLoader) determineActualFormat(uriExtension, stdLibFormat string) string {
	switch uriExtension {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		if stdLibFormat != "" {
			return stdLibFormat
		}
		return "unknown"
	}
}

func newImageData(g *grid.Grid, format, step string) *ImageData {
	return &ImageData{
		Grid:   g,
		Image:  displayImage(g),
		Width:  g.Cols,
		Height: g.Rows,
		Format: format,
		Step:   step,
	}
}
