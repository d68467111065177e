package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// WorkbenchTheme keeps backgrounds neutral so gray spectra and coefficient
// maps are not tinted by the surrounding chrome.
type WorkbenchTheme struct{}

func NewWorkbenchTheme() fyne.Theme {
	return &WorkbenchTheme{}
}

func (t *WorkbenchTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark

	switch name {
	case theme.ColorNameBackground:
		if dark {
			return color.Gray{Y: 24}
		}
		return color.Gray{Y: 246}

	case theme.ColorNameButton, theme.ColorNameInputBackground:
		if dark {
			return color.Gray{Y: 52}
		}
		return color.Gray{Y: 232}

	case theme.ColorNameForeground:
		if dark {
			return color.Gray{Y: 235}
		}
		return color.Gray{Y: 20}

	case theme.ColorNamePrimary:
		return color.RGBA{R: 0, G: 137, B: 123, A: 255}

	case theme.ColorNameSeparator:
		if dark {
			return color.Gray{Y: 70}
		}
		return color.Gray{Y: 210}

	case theme.ColorNameFocus:
		return t.Color(theme.ColorNamePrimary, variant)

	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *WorkbenchTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *WorkbenchTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *WorkbenchTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
