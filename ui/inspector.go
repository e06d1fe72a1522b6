package ui

import (
	"fmt"
	"time"

	"github.com/pthm-cable/windfall/components"
	"github.com/pthm-cable/windfall/symbols"
)

// InspectorData holds what the inspector shows about one token.
type InspectorData struct {
	Token  components.Token
	Symbol symbols.Symbol
	Now    time.Duration
}

// Inspector renders a small panel describing the token under the pointer.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel and returns the bottom Y position.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	pad := r.Theme.Padding
	tok, def := data.Token, data.Symbol

	const rows = 8
	height := pad*2 + r.Theme.LineHeight*rows + 4
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	x := ins.x + pad
	y := r.DrawSectionHeader(x, ins.y+pad, fmt.Sprintf("%s  %s", def.ID, def.Glyph))

	y = r.DrawLabelValue(x, y, "Tier", fmt.Sprintf("%d", tok.Body.Tier))
	y = r.DrawLabelValue(x, y, "Radius", fmt.Sprintf("%.1f", tok.Body.Radius))
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("%.0f, %.0f", tok.Pos.X, tok.Pos.Y))
	y = r.DrawLabelValue(x, y, "Velocity", fmt.Sprintf("%.2f, %.2f", tok.Vel.X, tok.Vel.Y))
	y = r.DrawLabelValue(x, y, "Age", (data.Now - tok.ID.BornAt).Truncate(100*time.Millisecond).String())

	st := tok.State
	flags := ""
	if data.Now < st.GravityImmuneUntil {
		flags += "no-gravity "
	}
	if st.WindCaptured {
		flags += "captured "
	}
	if def.Wildcard {
		flags += "wildcard "
	}
	if def.WindImmune {
		flags += "wind-immune"
	}
	y = r.DrawLabelValue(x, y, "State", flags)

	recipe := "-"
	if def.HasRecipe() {
		recipe = def.SourceA + " + " + def.SourceB
	}
	y = r.DrawLabelValue(x, y, "Recipe", recipe)
	return y + pad
}
