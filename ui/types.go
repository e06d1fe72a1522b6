// Package ui provides a descriptor-driven HUD and tuning panel for the game.
// Controls are declared as data bound to config fields, so adding a tunable
// parameter means adding one descriptor.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/windfall/config"
)

// SliderDescriptor binds a raygui slider to a numeric config field.
type SliderDescriptor struct {
	Label    string
	Format   string // Printf format for the value readout
	Min, Max float32
	Get      func(*config.Config) float32
	Set      func(*config.Config, float32)
}

// ToggleDescriptor binds a raygui check box to a boolean config field.
type ToggleDescriptor struct {
	Label string
	Get   func(*config.Config) bool
	Set   func(*config.Config, bool)
}

// SectionDescriptor groups controls under a header.
type SectionDescriptor struct {
	Title   string
	Sliders []SliderDescriptor
	Toggles []ToggleDescriptor
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
