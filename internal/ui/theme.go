package ui

import (
	"image/color"

	"dicesim/internal/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// diceTheme wraps an existing theme so the window background matches the
// colour the session paints, avoiding a flash of the default colour before
// the first frame.
type diceTheme struct {
	fyne.Theme
}

// Ensure diceTheme implements fyne.Theme
var _ fyne.Theme = (*diceTheme)(nil)

// Color overrides the background; every other colour comes from the base theme.
func (t *diceTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameBackground {
		return session.Background
	}
	return t.Theme.Color(name, variant)
}

// Size removes the padding around the window content.
func (t *diceTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNamePadding {
		return 0
	}
	return t.Theme.Size(name)
}

// NewDiceTheme creates the theme wrapper around baseTheme.
func NewDiceTheme(baseTheme fyne.Theme) fyne.Theme {
	return &diceTheme{Theme: baseTheme}
}
