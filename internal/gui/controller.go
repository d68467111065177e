package gui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"spectral-workbench/internal/algorithms"
	"spectral-workbench/internal/logger"
	"spectral-workbench/internal/pipeline"

	"fyne.io/fyne/v2"
)

// processTimeout bounds one transform started from the UI.
const processTimeout = 60 * time.Second

// Coordinator is the part of pipeline.Coordinator the controller drives.
type Coordinator interface {
	AlgorithmManager() *algorithms.Manager
	LoadImage(reader fyne.URIReadCloser) (*pipeline.ImageData, error)
	ProcessImageWithContext(ctx context.Context, algorithmName string, params map[string]interface{}) (*pipeline.ImageData, error)
	Undo() (*pipeline.ImageData, bool)
	Redo() (*pipeline.ImageData, bool)
	CanUndo() bool
	CanRedo() bool
	Steps() []string
	CurrentImage() *pipeline.ImageData
	SaveImage(writer fyne.URIWriteCloser, imageData *pipeline.ImageData) error
	SaveImageToWriter(writer io.Writer, imageData *pipeline.ImageData, format string) error
}

type Controller struct {
	view             *View
	coordinator      Coordinator
	algorithmManager *algorithms.Manager
	logger           logger.Logger

	mu               sync.RWMutex
	processingActive bool
	processCancel    context.CancelFunc
}

func NewController(coord Coordinator, log logger.Logger) *Controller {
	return &Controller{
		coordinator:      coord,
		algorithmManager: coord.AlgorithmManager(),
		logger:           log,
	}
}

func (c *Controller) SetView(view *View) {
	c.view = view

	algorithm := c.algorithmManager.CurrentAlgorithm()
	c.view.SelectAlgorithm(algorithm)
	c.view.UpdateParameterPanel(algorithm, c.algorithmManager.Parameters(algorithm))
	c.view.SetHistoryState(false, false)
}

func (c *Controller) LoadImage() {
	c.view.ShowFileDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			c.handleError("File selection error", err)
			return
		}
		// A cancelled dialog yields a nil reader.
		if reader == nil {
			return
		}

		c.updateStatus("Loading image...")

		go func() {
			defer reader.Close()

			start := time.Now()
			imageData, loadErr := c.coordinator.LoadImage(reader)

			fyne.Do(func() {
				if loadErr != nil {
					c.handleError("Image load error", loadErr)
					c.updateStatus("Ready")
					return
				}

				c.view.SetOriginalImage(imageData.Image)
				c.showCurrent(imageData)
				c.updateStatus(fmt.Sprintf("Loaded %dx%d %s", imageData.Width, imageData.Height, imageData.Format))

				c.logger.Info("Controller", "image loaded", map[string]interface{}{
					"width":     imageData.Width,
					"height":    imageData.Height,
					"format":    imageData.Format,
					"load_time": time.Since(start),
				})
			})
		}()
	})
}

func (c *Controller) SaveImage() {
	current := c.coordinator.CurrentImage()
	if current == nil {
		c.handleError("Save error", errors.New("no image to save"))
		return
	}

	c.view.ShowSaveDialog(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			c.handleError("File save error", err)
			return
		}
		if writer == nil {
			return
		}

		ext := strings.ToLower(writer.URI().Extension())
		if ext == "" {
			c.showFormatSelectionDialog(writer, current)
			return
		}

		c.saveImageWithWriter(writer, current)
	})
}

func (c *Controller) ChangeAlgorithm(algorithm string) {
	if err := c.algorithmManager.SetCurrentAlgorithm(algorithm); err != nil {
		c.handleError("Algorithm change error", err)
		return
	}

	c.view.UpdateParameterPanel(algorithm, c.algorithmManager.Parameters(algorithm))
	c.logger.Debug("Controller", "algorithm changed", map[string]interface{}{"algorithm": algorithm})
}

// UpdateParameter stores a value from the parameter panel. Rejected values
// are reported in the status line and leave the stored set unchanged.
func (c *Controller) UpdateParameter(name string, value interface{}) {
	algorithm := c.algorithmManager.CurrentAlgorithm()

	if err := c.algorithmManager.SetParameter(algorithm, name, value); err != nil {
		c.logger.Warning("Controller", "parameter rejected", map[string]interface{}{
			"algorithm": algorithm,
			"parameter": name,
			"error":     err.Error(),
		})
		c.updateStatus("Invalid " + name)
	}
}

func (c *Controller) ProcessImage() {
	if c.coordinator.CurrentImage() == nil {
		c.handleError("Processing error", pipeline.ErrNoImage)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	if !c.beginProcessing(cancel) {
		cancel()
		return
	}

	algorithm := c.algorithmManager.CurrentAlgorithm()
	params := c.algorithmManager.Parameters(algorithm)

	c.view.SetProcessing(true)
	c.updateStatus("Running " + algorithm + "...")

	go func() {
		defer cancel()

		start := time.Now()
		processed, err := c.coordinator.ProcessImageWithContext(ctx, algorithm, params)
		processingTime := time.Since(start)

		fyne.Do(func() {
			c.endProcessing()
			c.view.SetProcessing(false)

			if err != nil {
				c.handleError("Processing error", err)
				c.updateStatus("Processing failed")
				return
			}

			c.showCurrent(processed)
			c.updateStatus(fmt.Sprintf("%s completed in %s", algorithm, processingTime.Round(time.Millisecond)))

			c.logger.Info("Controller", "processing completed", map[string]interface{}{
				"algorithm":       algorithm,
				"width":           processed.Width,
				"height":          processed.Height,
				"processing_time": processingTime,
			})
		})
	}()
}

func (c *Controller) Undo() {
	if c.isProcessing() {
		return
	}
	if current, ok := c.coordinator.Undo(); ok {
		c.showCurrent(current)
		c.updateStatus("Undone")
	}
}

func (c *Controller) Redo() {
	if c.isProcessing() {
		return
	}
	if current, ok := c.coordinator.Redo(); ok {
		c.showCurrent(current)
		c.updateStatus("Redone")
	}
}

func (c *Controller) CancelProcessing() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.processCancel != nil {
		c.processCancel()
	}
}

// showCurrent displays the latest result with the chain of steps as title.
func (c *Controller) showCurrent(data *pipeline.ImageData) {
	if data == nil {
		return
	}

	title := "Result"
	if steps := c.coordinator.Steps(); len(steps) > 0 {
		title = strings.Join(steps, " > ")
	}

	c.view.SetResultImage(data.Image, title)
	c.view.SetHistoryState(c.coordinator.CanUndo(), c.coordinator.CanRedo())

	stats := pipeline.ComputeStats(data.Grid)
	c.view.SetStats(fmt.Sprintf("%dx%d | min %.2f max %.2f mean %.2f",
		data.Width, data.Height, stats.Min, stats.Max, stats.Mean))
}

func (c *Controller) updateStatus(status string) {
	c.view.SetStatus(status)
}

func (c *Controller) handleError(title string, err error) {
	c.logger.Error("Controller", err, map[string]interface{}{
		"title": title,
	})

	c.view.ShowError(title, err)
}

func (c *Controller) beginProcessing(cancel context.CancelFunc) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.processingActive {
		return false
	}
	c.processingActive = true
	c.processCancel = cancel
	return true
}

func (c *Controller) endProcessing() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.processingActive = false
	c.processCancel = nil
}

func (c *Controller) isProcessing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.processingActive
}

func (c *Controller) Shutdown() {
	c.CancelProcessing()
	c.logger.Info("Controller", "shutdown completed", nil)
}

func (c *Controller) showFormatSelectionDialog(writer fyne.URIWriteCloser, data *pipeline.ImageData) {
	originalPath := writer.URI().Path()
	writer.Close()

	if err := os.Remove(originalPath); err != nil {
		c.logger.Debug("Controller", "failed to remove empty file", map[string]interface{}{
			"path":  originalPath,
			"error": err.Error(),
		})
	}

	c.view.ShowFormatSelectionDialog(func(format string, confirmed bool) {
		if !confirmed {
			return
		}

		c.saveImageWithFormat(originalPath, data, format)
	})
}

func (c *Controller) saveImageWithFormat(imagePath string, data *pipeline.ImageData, format string) {
	c.updateStatus("Saving image...")

	go func() {
		ext := map[string]string{"JPEG": ".jpg", "BMP": ".bmp", "TIFF": ".tiff"}[format]
		if ext == "" {
			ext = ".png"
		}
		finalPath := imagePath + ext

		file, err := os.Create(finalPath)
		if err != nil {
			fyne.Do(func() {
				c.handleError("File create error", err)
			})
			return
		}

		saveErr := c.coordinator.SaveImageToWriter(file, data, format)
		if closeErr := file.Close(); saveErr == nil {
			saveErr = closeErr
		}

		fyne.Do(func() {
			if saveErr != nil {
				c.handleError("Image save error", saveErr)
				return
			}
			c.updateStatus("Image saved")
			c.logger.Info("Controller", "image saved with format", map[string]interface{}{
				"path":   finalPath,
				"format": format,
			})
		})
	}()
}

func (c *Controller) saveImageWithWriter(writer fyne.URIWriteCloser, data *pipeline.ImageData) {
	c.updateStatus("Saving image...")

	go func() {
		defer writer.Close()

		start := time.Now()
		saveErr := c.coordinator.SaveImage(writer, data)

		fyne.Do(func() {
			if saveErr != nil {
				c.handleError("Image save error", saveErr)
				return
			}
			c.updateStatus("Image saved")
			c.logger.Info("Controller", "image saved", map[string]interface{}{
				"path":      writer.URI().Path(),
				"save_time": time.Since(start),
			})
		})
	}()
}
