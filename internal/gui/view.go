package gui

import (
	"image"

	"spectral-workbench/internal/gui/widgets"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

type View struct {
	window     fyne.Window
	controller *Controller

	toolbar        *widgets.Toolbar
	imageDisplay   *widgets.ImageDisplay
	parameterPanel *widgets.ParameterPanel
	mainContainer  *fyne.Container
}

func NewView(window fyne.Window, algorithms []string) *View {
	view := &View{
		window: window,
	}

	view.toolbar = widgets.NewToolbar(algorithms)
	view.imageDisplay = widgets.NewImageDisplay()
	view.parameterPanel = widgets.NewParameterPanel()

	view.mainContainer = container.NewVBox(
		view.imageDisplay.GetContainer(),
		view.toolbar.GetContainer(),
		view.parameterPanel.GetContainer(),
	)

	return view
}

func (v *View) SetController(controller *Controller) {
	v.controller = controller
	v.setupEventHandlers()
}

func (v *View) setupEventHandlers() {
	if v.controller == nil {
		return
	}

	v.toolbar.SetLoadHandler(v.controller.LoadImage)
	v.toolbar.SetSaveHandler(v.controller.SaveImage)
	v.toolbar.SetProcessHandler(v.controller.ProcessImage)
	v.toolbar.SetUndoHandler(v.controller.Undo)
	v.toolbar.SetRedoHandler(v.controller.Redo)
	v.toolbar.SetAlgorithmChangeHandler(v.controller.ChangeAlgorithm)

	v.parameterPanel.SetParameterChangeHandler(v.controller.UpdateParameter)
}

func (v *View) GetMainContainer() *fyne.Container {
	return v.mainContainer
}

func (v *View) SetOriginalImage(img image.Image) {
	v.imageDisplay.SetOriginalImage(img)
}

func (v *View) SetResultImage(img image.Image, title string) {
	v.imageDisplay.SetResultImage(img, title)
}

func (v *View) SelectAlgorithm(algorithm string) {
	v.toolbar.SelectAlgorithm(algorithm)
}

func (v *View) UpdateParameterPanel(algorithm string, params map[string]interface{}) {
	v.parameterPanel.UpdateParameters(algorithm, params)
}

func (v *View) SetHistoryState(canUndo, canRedo bool) {
	v.toolbar.SetHistoryState(canUndo, canRedo)
}

func (v *View) SetProcessing(active bool) {
	v.toolbar.SetProcessing(active)
}

func (v *View) SetStatus(status string) {
	v.toolbar.SetStatus(status)
}

func (v *View) SetStats(text string) {
	v.toolbar.SetStats(text)
}

func (v *View) ShowError(title string, err error) {
	dialog.ShowError(err, v.window)
}

func (v *View) ShowFileDialog(callback func(fyne.URIReadCloser, error)) {
	dialog.ShowFileOpen(callback, v.window)
}

func (v *View) ShowSaveDialog(callback func(fyne.URIWriteCloser, error)) {
	dialog.ShowFileSave(callback, v.window)
}

func (v *View) ShowFormatSelectionDialog(callback func(string, bool)) {
	content := widget.NewLabel("No file extension detected. Please choose a format:")

	formatSelect := widget.NewSelect([]string{"PNG", "JPEG", "BMP", "TIFF"}, nil)
	formatSelect.SetSelected("PNG")

	form := container.NewVBox(
		content,
		formatSelect,
	)

	dialog.ShowCustomConfirm("Choose File Format", "Save", "Cancel",
		form, func(confirmed bool) {
			if confirmed && formatSelect.Selected != "" {
				callback(formatSelect.Selected, true)
			} else {
				callback("", false)
			}
		}, v.window)
}

func (v *View) GetWindow() fyne.Window {
	return v.window
}

func (v *View) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}
