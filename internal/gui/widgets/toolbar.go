package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type Toolbar struct {
	container       *fyne.Container
	loadButton      *widget.Button
	saveButton      *widget.Button
	algorithmSelect *widget.Select
	processButton   *widget.Button
	undoButton      *widget.Button
	redoButton      *widget.Button
	statusLabel     *widget.Label
	statsLabel      *widget.Label

	loadHandler            func()
	saveHandler            func()
	processHandler         func()
	undoHandler            func()
	redoHandler            func()
	algorithmChangeHandler func(string)
}

func NewToolbar(algorithms []string) *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents(algorithms)
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents(algorithms []string) {
	t.loadButton = widget.NewButton("Load", t.onLoadClicked)
	t.loadButton.Importance = widget.HighImportance

	t.saveButton = widget.NewButton("Save", t.onSaveClicked)
	t.saveButton.Importance = widget.HighImportance

	t.algorithmSelect = widget.NewSelect(algorithms, t.onAlgorithmChanged)

	t.processButton = widget.NewButton("Process", t.onProcessClicked)
	t.processButton.Importance = widget.HighImportance

	t.undoButton = widget.NewButton("Undo", t.onUndoClicked)
	t.redoButton = widget.NewButton("Redo", t.onRedoClicked)
	t.SetHistoryState(false, false)

	t.statusLabel = widget.NewLabel("Ready")
	t.statsLabel = widget.NewLabel("")
}

func (t *Toolbar) buildLayout() {
	background := canvas.NewRectangle(color.RGBA{R: 250, G: 249, B: 245, A: 255})
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeWidth = 1.0
	border.StrokeColor = color.RGBA{R: 231, G: 231, B: 231, A: 255}

	leftSection := container.NewHBox(t.loadButton, t.saveButton)
	centerSection := container.NewHBox(t.algorithmSelect, t.processButton, t.undoButton, t.redoButton)
	statusSection := container.NewHBox(t.statusLabel)
	rightSection := container.NewHBox(t.statsLabel)

	content := container.NewBorder(
		nil, nil,
		leftSection,
		rightSection,
		container.NewHBox(centerSection, widget.NewSeparator(), statusSection),
	)

	t.container = container.NewStack(
		border,
		container.NewPadded(
			container.NewStack(background, container.NewPadded(content)),
		),
	)
}

func (t *Toolbar) onLoadClicked() {
	if t.loadHandler != nil {
		t.loadHandler()
	}
}

func (t *Toolbar) onSaveClicked() {
	if t.saveHandler != nil {
		t.saveHandler()
	}
}

func (t *Toolbar) onProcessClicked() {
	if t.processHandler != nil {
		t.processHandler()
	}
}

func (t *Toolbar) onUndoClicked() {
	if t.undoHandler != nil {
		t.undoHandler()
	}
}

func (t *Toolbar) onRedoClicked() {
	if t.redoHandler != nil {
		t.redoHandler()
	}
}

func (t *Toolbar) onAlgorithmChanged(algorithm string) {
	if t.algorithmChangeHandler != nil {
		t.algorithmChangeHandler(algorithm)
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetLoadHandler(handler func()) {
	t.loadHandler = handler
}

func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

func (t *Toolbar) SetProcessHandler(handler func()) {
	t.processHandler = handler
}

func (t *Toolbar) SetUndoHandler(handler func()) {
	t.undoHandler = handler
}

func (t *Toolbar) SetRedoHandler(handler func()) {
	t.redoHandler = handler
}

func (t *Toolbar) SetAlgorithmChangeHandler(handler func(string)) {
	t.algorithmChangeHandler = handler
}

// SelectAlgorithm changes the selection without calling the change handler.
func (t *Toolbar) SelectAlgorithm(algorithm string) {
	handler := t.algorithmChangeHandler
	t.algorithmChangeHandler = nil
	t.algorithmSelect.SetSelected(algorithm)
	t.algorithmChangeHandler = handler
}

func (t *Toolbar) SetHistoryState(canUndo, canRedo bool) {
	setEnabled(t.undoButton, canUndo)
	setEnabled(t.redoButton, canRedo)
}

func (t *Toolbar) SetProcessing(active bool) {
	setEnabled(t.processButton, !active)
}

func (t *Toolbar) SetStatus(status string) {
	t.statusLabel.SetText(status)
}

func (t *Toolbar) SetStats(text string) {
	t.statsLabel.SetText(text)
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
	} else {
		button.Disable()
	}
}
