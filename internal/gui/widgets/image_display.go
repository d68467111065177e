package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 500
	ImageAreaHeight = 400
)

// ImageDisplay shows the loaded image next to the latest result.
type ImageDisplay struct {
	container     fyne.CanvasObject
	originalImage *canvas.Image
	resultImage   *canvas.Image
	resultTitle   *widget.RichText
	splitView     *container.Split
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func newImageCanvas() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	// Spectra and coefficient maps read better without interpolation.
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
	return img
}

func (id *ImageDisplay) createComponents() {
	id.originalImage = newImageCanvas()
	id.resultImage = newImageCanvas()
	id.resultTitle = widget.NewRichTextFromMarkdown("**Result**")
}

func (id *ImageDisplay) setupLayout() {
	originalContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Original**"),
		nil, nil, nil,
		id.originalImage,
	)

	resultContainer := container.NewBorder(
		id.resultTitle,
		nil, nil, nil,
		id.resultImage,
	)

	id.splitView = container.NewHSplit(originalContainer, resultContainer)
	id.splitView.SetOffset(0.5)
	id.container = id.splitView
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.container
}

func (id *ImageDisplay) SetOriginalImage(img image.Image) {
	id.originalImage.Image = img
	id.originalImage.Refresh()
	id.container.Refresh()
}

// SetResultImage shows img under a title naming the steps that produced it.
func (id *ImageDisplay) SetResultImage(img image.Image, title string) {
	if title == "" {
		title = "Result"
	}
	id.resultTitle.ParseMarkdown("**" + title + "**")
	id.resultImage.Image = img
	id.resultImage.Refresh()
}
