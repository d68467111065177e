package pipeline

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"spectral-workbench/internal/grid"
	"spectral-workbench/internal/logger"
	"spectral-workbench/internal/opencv/bridge"

	"fyne.io/fyne/v2"
)

type imageSaver struct {
	logger logger.Logger
}

func (s *imageSaver) SaveToWriter(writer io.Writer, imageData *ImageData, format string) error {
	if imageData == nil || imageData.Image == nil {
		return fmt.Errorf("no image data to save")
	}

	saveFormat := normalizeFormat(format)
	if saveFormat == "" {
		if uriWriter, ok := writer.(fyne.URIWriteCloser); ok {
			saveFormat = normalizeFormat(uriWriter.URI().Extension())
		}
	}
	if saveFormat == "" {
		saveFormat = normalizeFormat(imageData.Format)
	}
	if saveFormat == "" {
		saveFormat = "png"
	}

	err := s.encode(writer, imageData.Image, saveFormat)
	if err != nil {
		s.logger.Error("ImageSaver", err, map[string]interface{}{
			"format": saveFormat,
		})
		return err
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"format": saveFormat,
	})

	return nil
}

func (s *imageSaver) SaveToPath(path string, imageData *ImageData) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := s.SaveToWriter(file, imageData, filepath.Ext(path)); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (s *imageSaver) encode(writer io.Writer, img image.Image, format string) error {
	switch format {
	case "jpeg":
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: 95})
	case "png":
		return png.Encode(writer, img)
	case "bmp", "tiff":
		g, err := grid.FromImage(img)
		if err != nil {
			return err
		}
		encoded, err := bridge.EncodeGrid(g, format)
		if err != nil {
			return err
		}
		_, err = writer.Write(encoded)
		return err
	default:
		s.logger.Warning("ImageSaver", "format not supported, using PNG", map[string]interface{}{
			"requested_format": strings.ToUpper(format),
		})
		return png.Encode(writer, img)
	}
}

// normalizeFormat maps extensions and format names to png, jpeg, bmp or
// tiff. Unknown names pass through lower-cased; empty stays empty.
func normalizeFormat(format string) string {
	f := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	switch f {
	case "jpg", "jpeg":
		return "jpeg"
	case "tif", "tiff":
		return "tiff"
	case "unknown":
		return ""
	default:
		return f
	}
}
