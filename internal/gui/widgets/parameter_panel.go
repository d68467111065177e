package widgets

import (
	"math"
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// sliderRange describes how a numeric parameter is edited.
type sliderRange struct {
	label    string
	min, max float64
	step     float64
	decimals int
}

var sliderRanges = map[string]sliderRange{
	"alpha":       {label: "Sharpening (alpha)", min: 0, max: 10, step: 0.1, decimals: 1},
	"sigma":       {label: "Blur Sigma", min: 0.1, max: 10, step: 0.1, decimals: 1},
	"kernel_size": {label: "Kernel Size", min: 3, max: 31, step: 2},
	"gamma_high":  {label: "Gamma High", min: 1.05, max: 3, step: 0.05, decimals: 2},
	"gamma_low":   {label: "Gamma Low", min: 0.05, max: 0.95, step: 0.05, decimals: 2},
	"c":           {label: "Sharpness c", min: 0.1, max: 5, step: 0.1, decimals: 1},
	"dc_boost":    {label: "DC Boost", min: 0.5, max: 2, step: 0.05, decimals: 2},
	"depth":       {label: "Depth", min: 1, max: 8, step: 1},
}

var checkLabels = map[string]string{
	"spectral_pass": "Run Cosine Transform Stage",
}

// ParameterPanel builds editors for whatever parameter map the current
// algorithm exposes. Keys without a known editor are not shown.
type ParameterPanel struct {
	container              *fyne.Container
	parametersContent      *fyne.Container
	parameterChangeHandler func(string, interface{})

	currentAlgorithm string
}

func NewParameterPanel() *ParameterPanel {
	panel := &ParameterPanel{}
	panel.parametersContent = container.NewVBox(widget.NewLabel("Parameters:"))
	panel.container = container.NewVBox(panel.parametersContent)
	return panel
}

func (pp *ParameterPanel) GetContainer() *fyne.Container {
	return pp.container
}

func (pp *ParameterPanel) SetParameterChangeHandler(handler func(string, interface{})) {
	pp.parameterChangeHandler = handler
}

func (pp *ParameterPanel) UpdateParameters(algorithm string, params map[string]interface{}) {
	pp.currentAlgorithm = algorithm
	pp.parametersContent.RemoveAll()
	pp.parametersContent.Add(widget.NewLabel("Parameters:"))

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	row := container.NewHBox()
	checks := container.NewHBox()
	for _, key := range keys {
		if editor := pp.sliderFor(key, params[key]); editor != nil {
			row.Add(editor)
		}
		if check := pp.checkFor(key, params[key]); check != nil {
			checks.Add(check)
		}
	}

	if len(row.Objects) == 0 && len(checks.Objects) == 0 {
		pp.parametersContent.Add(widget.NewLabel("No adjustable parameters for " + algorithm))
	} else {
		pp.parametersContent.Add(container.NewVBox(row, checks))
	}

	pp.container.Refresh()
}

func (pp *ParameterPanel) sliderFor(key string, value interface{}) fyne.CanvasObject {
	rng, ok := sliderRanges[key]
	if !ok {
		return nil
	}

	var current float64
	isInt := false
	switch v := value.(type) {
	case int:
		current, isInt = float64(v), true
	case float64:
		current = v
	default:
		return nil
	}

	label := widget.NewLabel(rng.label + ": " + formatValue(current, rng.decimals))
	slider := widget.NewSlider(rng.min, rng.max)
	slider.Step = rng.step
	slider.SetValue(current)

	slider.OnChanged = func(v float64) {
		label.SetText(rng.label + ": " + formatValue(v, rng.decimals))
		if pp.parameterChangeHandler == nil {
			return
		}
		if isInt {
			pp.parameterChangeHandler(key, int(math.Round(v)))
		} else {
			pp.parameterChangeHandler(key, v)
		}
	}

	return container.NewVBox(label, slider)
}

func (pp *ParameterPanel) checkFor(key string, value interface{}) fyne.CanvasObject {
	checked, ok := value.(bool)
	if !ok {
		return nil
	}

	text, ok := checkLabels[key]
	if !ok {
		text = key
	}

	check := widget.NewCheck(text, nil)
	check.SetChecked(checked)
	check.OnChanged = func(v bool) {
		if pp.parameterChangeHandler != nil {
			pp.parameterChangeHandler(key, v)
		}
	}
	return check
}

func formatValue(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
