package components

import (
	"math"

	"github.com/pthm-cable/windfall/config"
)

// Body holds physical properties of a token.
// Tier is fixed at creation; Radius is derived from it.
type Body struct {
	Radius float64
	Tier   int
}

// RadiusForTier returns the radius of a token of the given tier.
// Radius grows strictly with tier while size_increase_per_level is positive.
func RadiusForTier(cfg *config.Config, tier int) float64 {
	mult := 1.0 + float64(tier-1)*cfg.Token.SizeIncreasePerLevel
	return math.Max(cfg.Token.MinRadius, cfg.Token.BaseRadius*mult)
}
