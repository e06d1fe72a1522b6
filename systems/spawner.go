package systems

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/windfall/components"
	"github.com/pthm-cable/windfall/config"
	"github.com/pthm-cable/windfall/symbols"
)

// Spawner drops tier-1 tokens in from above the screen at a fixed interval.
// Kinds cycle round-robin so every tier-1 kind appears equally often.
type Spawner struct {
	ids      []string
	next     int
	elapsed  time.Duration
	interval time.Duration // interval seen by the last Update
	rng      *rand.Rand
}

// NewSpawner creates a spawner cycling through ids.
func NewSpawner(ids []string, seed int64) *Spawner {
	return &Spawner{
		ids: append([]string(nil), ids...),
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Update accumulates dt and queues at most one token per call when the interval elapses.
// A changed interval restarts the timer, and no backlog survives a spawn.
// Returns the number of tokens queued.
func (s *Spawner) Update(dt time.Duration, cfg *config.Config, table *symbols.Table, batch *Batch) int {
	interval := cfg.Spawn.Interval
	if interval != s.interval {
		s.interval = interval
		s.Reset()
	}
	if interval <= 0 || len(s.ids) == 0 {
		s.elapsed = 0
		return 0
	}
	s.elapsed += dt
	if s.elapsed < interval {
		return 0
	}
	s.elapsed = (s.elapsed - interval) % interval

	spec, ok := s.Next(cfg, table)
	if !ok {
		return 0
	}
	batch.Add(spec)
	return 1
}

// Next builds the next token in the round-robin.
// It sits just above the top edge at a random horizontal position fully on screen.
func (s *Spawner) Next(cfg *config.Config, table *symbols.Table) (components.Spec, bool) {
	id := s.ids[s.next]
	s.next = (s.next + 1) % len(s.ids)

	def, ok := table.Def(id)
	if !ok {
		return components.Spec{}, false
	}
	r := components.RadiusForTier(cfg, def.Tier)
	span := max(0, cfg.Derived.Width-2*r)

	return components.Spec{
		X:      r + s.rng.Float64()*span,
		Y:      -r - s.rng.Float64()*cfg.Spawn.JitterY,
		Tier:   def.Tier,
		Radius: r,
		Symbol: def.ID,
	}, true
}

// Reset restarts the interval timer, keeping the round-robin position.
func (s *Spawner) Reset() {
	s.elapsed = 0
}
