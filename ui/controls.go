package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/windfall/config"
)

// TuningPanel renders raygui controls bound to the live config.
// Edits are written straight into the config and apply on the next tick.
type TuningPanel struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

// NewTuningPanel creates a hidden panel with the default control set.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		sections: DefaultSections(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (p *TuningPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *TuningPanel) IsVisible() bool {
	return p.visible
}

// SetPosition updates the panel position.
func (p *TuningPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Contains reports whether a screen point is over the visible panel.
func (p *TuningPanel) Contains(sx, sy float32) bool {
	if !p.visible {
		return false
	}
	return sx >= float32(p.x) && sx <= float32(p.x+p.width) &&
		sy >= float32(p.y) && sy <= float32(p.y+p.height)
}

// Draw renders the panel and applies any edits to cfg.
// Returns true if the pause button was pressed.
func (p *TuningPanel) Draw(cfg *config.Config, paused bool) bool {
	if !p.visible {
		return false
	}

	r := p.renderer
	pad := r.Theme.Padding
	x := p.x + pad
	w := p.width - 2*pad

	r.DrawPanel(p.x, p.y, p.width, p.height)
	y := p.y + pad

	label := "Pause"
	if paused {
		label = "Resume"
	}
	pressed := gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: 24}, label)
	y += 32

	for _, sec := range p.sections {
		y = r.DrawSectionHeader(x, y, sec.Title)

		for _, s := range sec.Sliders {
			rl.DrawText(s.Label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
			y += 14
			cur := s.Get(cfg)
			next := gui.SliderBar(
				rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w - 60), Height: 14},
				"", "",
				cur, s.Min, s.Max,
			)
			rl.DrawText(fmt.Sprintf(s.Format, cur), x+w-55, y, r.Theme.FontSize, r.Theme.ValueColor)
			if next != cur {
				s.Set(cfg, next)
			}
			y += 20
		}

		for _, t := range sec.Toggles {
			cur := t.Get(cfg)
			next := gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 12, Height: 12}, t.Label, cur)
			if next != cur {
				t.Set(cfg, next)
			}
			y += 18
		}
		y += 4
	}

	p.height = y - p.y + pad
	return pressed
}

// ms converts between a duration field and a slider value in milliseconds.
func ms(d time.Duration) float32 {
	return float32(d) / float32(time.Millisecond)
}

func fromMS(v float32) time.Duration {
	return time.Duration(float64(v) * float64(time.Millisecond))
}

// DefaultSections returns the tunable parameters shown in the panel.
func DefaultSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			Title: "Gravity",
			Sliders: []SliderDescriptor{
				{
					Label: "Strength", Format: "%.3f", Min: 0, Max: 1,
					Get: func(c *config.Config) float32 { return float32(c.Gravity.Strength) },
					Set: func(c *config.Config, v float32) { c.Gravity.Strength = float64(v) },
				},
				{
					Label: "Mass effect", Format: "%.2f", Min: 0, Max: 1,
					Get: func(c *config.Config) float32 { return float32(c.Gravity.MassEffect) },
					Set: func(c *config.Config, v float32) { c.Gravity.MassEffect = float64(v) },
				},
				{
					Label: "Friction", Format: "%.3f", Min: 0.9, Max: 1,
					Get: func(c *config.Config) float32 { return float32(c.Friction) },
					Set: func(c *config.Config, v float32) { c.Friction = float64(v) },
				},
				{
					Label: "Spawn interval (ms)", Format: "%.0f", Min: 0, Max: 3000,
					Get: func(c *config.Config) float32 { return ms(c.Spawn.Interval) },
					Set: func(c *config.Config, v float32) { c.Spawn.Interval = fromMS(v) },
				},
			},
			Toggles: []ToggleDescriptor{
				{
					Label: "Realistic gravity",
					Get:   func(c *config.Config) bool { return c.Gravity.Realistic },
					Set:   func(c *config.Config, v bool) { c.Gravity.Realistic = v },
				},
			},
		},
		{
			Title: "Wind",
			Sliders: []SliderDescriptor{
				{
					Label: "Influence radius", Format: "%.0f", Min: 0, Max: 100,
					Get: func(c *config.Config) float32 { return float32(c.Wind.InfluenceRadius) },
					Set: func(c *config.Config, v float32) { c.Wind.InfluenceRadius = float64(v) },
				},
				{
					Label: "Max speed", Format: "%.1f", Min: 0, Max: 10,
					Get: func(c *config.Config) float32 { return float32(c.Wind.MaxSpeed) },
					Set: func(c *config.Config, v float32) { c.Wind.MaxSpeed = float64(v) },
				},
				{
					Label: "Coupling", Format: "%.3f", Min: 0, Max: 0.1,
					Get: func(c *config.Config) float32 { return float32(c.Wind.CouplingStrength) },
					Set: func(c *config.Config, v float32) { c.Wind.CouplingStrength = float64(v) },
				},
				{
					Label: "Lifetime per px (ms)", Format: "%.1f", Min: 0, Max: 20,
					Get: func(c *config.Config) float32 { return ms(c.Wind.LifetimePerPixel) },
					Set: func(c *config.Config, v float32) { c.Wind.LifetimePerPixel = fromMS(v) },
				},
				{
					Label: "Smoothing", Format: "%.2f", Min: 0, Max: 1,
					Get: func(c *config.Config) float32 { return float32(c.Wind.Smoothing) },
					Set: func(c *config.Config, v float32) { c.Wind.Smoothing = float64(v) },
				},
				{
					Label: "Max angle", Format: "%.0f", Min: 0, Max: 180,
					Get: func(c *config.Config) float32 { return float32(c.Wind.MaxAngle) },
					Set: func(c *config.Config, v float32) { c.Wind.MaxAngle = float64(v) },
				},
			},
			Toggles: []ToggleDescriptor{
				{
					Label: "Angle snapping",
					Get:   func(c *config.Config) bool { return c.Wind.AngleSnapping },
					Set:   func(c *config.Config, v bool) { c.Wind.AngleSnapping = v },
				},
			},
		},
		{
			Title: "Slingshot",
			Sliders: []SliderDescriptor{
				{
					Label: "Max pull", Format: "%.0f", Min: 10, Max: 400,
					Get: func(c *config.Config) float32 { return float32(c.Slingshot.MaxPull) },
					Set: func(c *config.Config, v float32) { c.Slingshot.MaxPull = float64(v) },
				},
				{
					Label: "Power", Format: "%.2f", Min: 0, Max: 0.5,
					Get: func(c *config.Config) float32 { return float32(c.Slingshot.Power) },
					Set: func(c *config.Config, v float32) { c.Slingshot.Power = float64(v) },
				},
			},
			Toggles: []ToggleDescriptor{
				{
					Label: "Slingshot mode",
					Get:   func(c *config.Config) bool { return c.Slingshot.Enabled },
					Set:   func(c *config.Config, v bool) { c.Slingshot.Enabled = v },
				},
				{
					Label: "Reverse pull",
					Get:   func(c *config.Config) bool { return c.Slingshot.Reverse },
					Set:   func(c *config.Config, v bool) { c.Slingshot.Reverse = v },
				},
			},
		},
		{
			Title: "Combine",
			Toggles: []ToggleDescriptor{
				{
					Label: "Click to combine",
					Get:   func(c *config.Config) bool { return c.Combine.Click },
					Set:   func(c *config.Config, v bool) { c.Combine.Click = v },
				},
				{
					Label: "Child in middle",
					Get:   func(c *config.Config) bool { return c.Combine.InMiddle },
					Set:   func(c *config.Config, v bool) { c.Combine.InMiddle = v },
				},
				{
					Label: "Wildcards",
					Get:   func(c *config.Config) bool { return c.Combine.Wildcard },
					Set:   func(c *config.Config, v bool) { c.Combine.Wildcard = v },
				},
				{
					Label: "Simple mode",
					Get:   func(c *config.Config) bool { return c.Combine.SimpleMode },
					Set:   func(c *config.Config, v bool) { c.Combine.SimpleMode = v },
				},
				{
					Label: "Danger highlight",
					Get:   func(c *config.Config) bool { return c.Danger.Enabled },
					Set:   func(c *config.Config, v bool) { c.Danger.Enabled = v },
				},
			},
		},
	}
}
