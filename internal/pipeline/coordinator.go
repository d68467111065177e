package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"sync"
	"time"

	"spectral-workbench/internal/algorithms"
	"spectral-workbench/internal/grid"
	"spectral-workbench/internal/history"
	"spectral-workbench/internal/logger"

	"fyne.io/fyne/v2"
)

var ErrNoImage = errors.New("no image loaded")

type ImageProcessor interface {
	ProcessImage(ctx context.Context, inputData *ImageData, algorithm algorithms.Algorithm, params map[string]interface{}) (*ImageData, error)
}

type ImageLoader interface {
	LoadFromReader(reader fyne.URIReadCloser) (*ImageData, error)
	LoadFromPath(path string) (*ImageData, error)
	LoadFromBytes(data []byte, extension string) (*ImageData, error)
}

type ImageSaver interface {
	SaveToWriter(writer io.Writer, imageData *ImageData, format string) error
	SaveToPath(path string, imageData *ImageData) error
}

// ImageData pairs a grid with its gray rendering.
type ImageData struct {
	Grid   *grid.Grid
	Image  image.Image
	Width  int
	Height int
	Format string
	// Step names the transform that produced the grid; empty for a
	// loaded image.
	Step   string
	Source string
}

// Coordinator owns the loaded image and the chain of results derived from it.
// Every transform runs on the most recent result.
type Coordinator struct {
	mu               sync.Mutex
	chain            *history.Chain
	format           string
	source           string
	logger           logger.Logger
	algorithmManager *algorithms.Manager
	loader           ImageLoader
	processor        ImageProcessor
	saver            ImageSaver
	ctx              context.Context
	cancel           context.CancelFunc
}

func NewCoordinator(log logger.Logger) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())

	coord := &Coordinator{
		chain:            history.NewChain(),
		logger:           log,
		algorithmManager: algorithms.NewManager(),
		ctx:              ctx,
		cancel:           cancel,
	}

	coord.loader = &imageLoader{logger: log}
	coord.processor = &imageProcessor{logger: log}
	coord.saver = &imageSaver{logger: log}

	log.Info("PipelineCoordinator", "initialized", nil)
	return coord
}

func (c *Coordinator) AlgorithmManager() *algorithms.Manager {
	return c.algorithmManager
}

func (c *Coordinator) LoadImage(reader fyne.URIReadCloser) (*ImageData, error) {
	return c.load("load_image", func() (*ImageData, error) {
		return c.loader.LoadFromReader(reader)
	})
}

func (c *Coordinator) LoadFile(path string) (*ImageData, error) {
	return c.load("load_file", func() (*ImageData, error) {
		return c.loader.LoadFromPath(path)
	})
}

func (c *Coordinator) LoadBytes(data []byte, extension string) (*ImageData, error) {
	return c.load("load_bytes", func() (*ImageData, error) {
		return c.loader.LoadFromBytes(data, extension)
	})
}

func (c *Coordinator) load(operation string, loadFn func() (*ImageData, error)) (*ImageData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()

	imageData, err := loadFn()
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"operation": operation,
		})
		return nil, err
	}

	c.chain.Reset(imageData.Grid)
	c.format = imageData.Format
	c.source = imageData.Source

	c.logger.Info("PipelineCoordinator", "image loaded", map[string]interface{}{
		"width":     imageData.Width,
		"height":    imageData.Height,
		"format":    imageData.Format,
		"load_time": time.Since(start),
	})

	return imageData, nil
}

// ProcessImage runs algorithmName on the current result with params, or with
// the stored parameters when params is nil.
func (c *Coordinator) ProcessImage(algorithmName string, params map[string]interface{}) (*ImageData, error) {
	return c.ProcessImageWithContext(c.ctx, algorithmName, params)
}

func (c *Coordinator) ProcessImageWithContext(ctx context.Context, algorithmName string, params map[string]interface{}) (*ImageData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.currentLocked()
	if current == nil {
		return nil, ErrNoImage
	}

	algorithm, err := c.algorithmManager.Algorithm(algorithmName)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"algorithm": algorithmName,
		})
		return nil, fmt.Errorf("failed to get algorithm: %w", err)
	}

	if params == nil {
		params = c.algorithmManager.Parameters(algorithmName)
	}

	start := time.Now()
	processedData, err := c.processor.ProcessImage(ctx, current, algorithm, params)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"algorithm": algorithmName,
		})
		return nil, err
	}

	c.chain.Push(algorithmName, processedData.Grid)

	c.logger.Info("PipelineCoordinator", "image processed", map[string]interface{}{
		"algorithm":       algorithmName,
		"width":           processedData.Width,
		"height":          processedData.Height,
		"chain_length":    c.chain.Len(),
		"processing_time": time.Since(start),
	})

	return processedData, nil
}

// Undo drops the latest result. The loaded image itself is never dropped.
func (c *Coordinator) Undo() (*ImageData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.chain.Undo() {
		return c.currentLocked(), false
	}
	c.logger.Debug("PipelineCoordinator", "undo", map[string]interface{}{"chain_length": c.chain.Len()})
	return c.currentLocked(), true
}

func (c *Coordinator) Redo() (*ImageData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.chain.Redo() {
		return c.currentLocked(), false
	}
	c.logger.Debug("PipelineCoordinator", "redo", map[string]interface{}{"chain_length": c.chain.Len()})
	return c.currentLocked(), true
}

func (c *Coordinator) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chain.CanUndo()
}

func (c *Coordinator) CanRedo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chain.CanRedo()
}

// Steps lists the transforms applied since the image was loaded. It is nil
// before the first transform.
func (c *Coordinator) Steps() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chain.Steps()
}

func (c *Coordinator) OriginalImage() *ImageData {
	c.mu.Lock()
	defer c.mu.Unlock()

	original := c.chain.Original()
	if original == nil {
		return nil
	}
	data := newImageData(original, c.format, "")
	data.Source = c.source
	return data
}

// CurrentImage returns the most recent result, which is the original right
// after a load.
func (c *Coordinator) CurrentImage() *ImageData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked()
}

func (c *Coordinator) currentLocked() *ImageData {
	current := c.chain.Current()
	if current == nil {
		return nil
	}

	var step string
	if steps := c.chain.Steps(); len(steps) > 0 {
		step = steps[len(steps)-1]
	}
	data := newImageData(current, c.format, step)
	data.Source = c.source
	return data
}

func (c *Coordinator) SaveImage(writer fyne.URIWriteCloser, imageData *ImageData) error {
	start := time.Now()
	err := c.saver.SaveToWriter(writer, imageData, "")
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"operation": "save_image",
		})
		return err
	}

	c.logger.Info("PipelineCoordinator", "image saved", map[string]interface{}{
		"path":      writer.URI().Path(),
		"save_time": time.Since(start),
	})

	return nil
}

func (c *Coordinator) SaveImageToWriter(writer io.Writer, imageData *ImageData, format string) error {
	start := time.Now()
	err := c.saver.SaveToWriter(writer, imageData, strings.ToLower(format))
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"operation": "save_image_with_format",
			"format":    format,
		})
		return err
	}

	c.logger.Info("PipelineCoordinator", "image saved with format", map[string]interface{}{
		"format":    format,
		"save_time": time.Since(start),
	})

	return nil
}

func (c *Coordinator) SaveFile(path string, imageData *ImageData) error {
	if err := c.saver.SaveToPath(path, imageData); err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"operation": "save_file",
			"path":      path,
		})
		return err
	}

	c.logger.Info("PipelineCoordinator", "image saved", map[string]interface{}{"path": path})
	return nil
}

func (c *Coordinator) Context() context.Context {
	return c.ctx
}

func (c *Coordinator) Cancel() {
	c.cancel()
}

func (c *Coordinator) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Info("PipelineCoordinator", "shutdown started", nil)

	c.cancel()

	c.logger.Info("PipelineCoordinator", "shutdown completed", nil)
}
