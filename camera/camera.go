// Package camera maps the fixed-size playfield into a resizable window.
package camera

// Camera letterboxes the playfield into the window: uniform scale, centered,
// bars on the long side. The simulation never sees screen coordinates.
type Camera struct {
	// Scale is screen pixels per playfield unit
	Scale float32

	// OffsetX, OffsetY is the screen position of the playfield origin
	OffsetX, OffsetY float32

	// Viewport dimensions (window size)
	ViewportW, ViewportH float32

	// Playfield dimensions
	WorldW, WorldH float32
}

// New creates a camera fitting a worldW x worldH playfield into the viewport.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{WorldW: worldW, WorldH: worldH}
	c.Resize(viewportW, viewportH)
	return c
}

// Resize recomputes the fit for new viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	if c.WorldW <= 0 || c.WorldH <= 0 || viewportW <= 0 || viewportH <= 0 {
		c.Scale = 1
		c.OffsetX, c.OffsetY = 0, 0
		return
	}

	c.Scale = min(viewportW/c.WorldW, viewportH/c.WorldH)
	c.OffsetX = (viewportW - c.WorldW*c.Scale) / 2
	c.OffsetY = (viewportH - c.WorldH*c.Scale) / 2
}

// SetWorld changes the playfield size and refits.
func (c *Camera) SetWorld(worldW, worldH float32) {
	if worldW == c.WorldW && worldH == c.WorldH {
		return
	}
	c.WorldW = worldW
	c.WorldH = worldH
	c.Resize(c.ViewportW, c.ViewportH)
}

// WorldToScreen converts playfield coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return c.OffsetX + wx*c.Scale, c.OffsetY + wy*c.Scale
}

// ScreenToWorld converts screen coordinates to playfield coordinates.
// Points in the letterbox bars map outside the playfield.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return (sx - c.OffsetX) / c.Scale, (sy - c.OffsetY) / c.Scale
}

// ScaleLength converts a playfield length to screen pixels.
func (c *Camera) ScaleLength(l float32) float32 {
	return l * c.Scale
}

// Contains reports whether a screen point lies over the playfield.
func (c *Camera) Contains(sx, sy float32) bool {
	wx, wy := c.ScreenToWorld(sx, sy)
	return wx >= 0 && wy >= 0 && wx <= c.WorldW && wy <= c.WorldH
}

// VisibleWorldBounds returns the playfield area covered by the viewport,
// including the letterbox bars. Returns (minX, minY, maxX, maxY).
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	minX, minY = c.ScreenToWorld(0, 0)
	maxX, maxY = c.ScreenToWorld(c.ViewportW, c.ViewportH)
	return
}
