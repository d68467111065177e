package pipeline

import (
	"context"
	"fmt"
	"image"

	"spectral-workbench/internal/algorithms"
	"spectral-workbench/internal/grid"
	"spectral-workbench/internal/logger"
)

type imageProcessor struct {
	logger logger.Logger
}

func (p *imageProcessor) ProcessImage(ctx context.Context, inputData *ImageData, algorithm algorithms.Algorithm, params map[string]interface{}) (*ImageData, error) {
	if inputData == nil || inputData.Grid == nil {
		return nil, fmt.Errorf("no input grid")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	result, err := algorithm.Process(ctx, inputData.Grid, params)
	if err != nil {
		return nil, fmt.Errorf("algorithm processing failed: %w", err)
	}

	if result == nil {
		return nil, fmt.Errorf("algorithm returned nil result")
	}

	processedData := newImageData(result, inputData.Format, algorithm.Name())
	processedData.Source = inputData.Source

	p.logger.Info("ImageProcessor", "processing completed", map[string]interface{}{
		"algorithm":   algorithm.Name(),
		"input_size":  fmt.Sprintf("%dx%d", inputData.Width, inputData.Height),
		"output_size": fmt.Sprintf("%dx%d", processedData.Width, processedData.Height),
		"rescaled":    !inDisplayRange(result),
	})

	return processedData, nil
}

// displayImage renders g as gray pixels. Grids outside 0..255, such as
// wavelet coefficients, are stretched to that range first.
func displayImage(g *grid.Grid) image.Image {
	if inDisplayRange(g) {
		return grid.ToGray(g)
	}
	return grid.ToGray(grid.Rescale(g, 0, 255))
}

func inDisplayRange(g *grid.Grid) bool {
	lo, hi := g.MinMax()
	return lo >= 0 && hi <= 255
}
