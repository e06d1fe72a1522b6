// Package renderer draws tokens, wind curves and the slingshot with raylib.
package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Colors
var (
	Background    = rl.Color{R: 0x44, G: 0x44, B: 0x44, A: 255}
	SymbolColor   = rl.White
	SelectedColor = rl.Color{R: 0xf1, G: 0xc4, B: 0x0f, A: 255}
	DangerColor   = rl.Color{R: 231, G: 76, B: 60, A: 255}
	ArrowColor    = rl.Color{R: 255, G: 223, B: 0, A: 178}
	WindFill      = rl.Color{R: 220, G: 235, B: 255, A: 178}
	fallbackTier  = rl.Color{R: 0xcc, G: 0xcc, B: 0xcc, A: 255}
)

// tierColors is indexed by tier-1.
var tierColors = []rl.Color{
	{R: 52, G: 152, B: 219, A: 178},  // Blue
	{R: 142, G: 68, B: 173, A: 178},  // Purple
	{R: 230, G: 126, B: 34, A: 178},  // Orange
	{R: 241, G: 196, B: 15, A: 178},  // Gold
	{R: 168, G: 204, B: 52, A: 178},  // Lime
	{R: 231, G: 76, B: 60, A: 178},   // Red
	{R: 190, G: 190, B: 190, A: 178}, // Silver
	{R: 0, G: 150, B: 100, A: 178},   // Emerald
	{R: 255, G: 0, B: 255, A: 178},   // Pink
	{R: 0, G: 0, B: 0, A: 255},       // Black
}

// TierColor returns the fill color for a tier.
func TierColor(tier int) rl.Color {
	if tier < 1 || tier > len(tierColors) {
		return fallbackTier
	}
	return tierColors[tier-1]
}
