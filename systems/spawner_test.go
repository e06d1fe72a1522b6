package systems

import (
	"testing"
	"time"

	"github.com/pthm-cable/windfall/components"
)

func TestSpawnerRoundRobin(t *testing.T) {
	sc, cfg := newTestScene(t)
	s := NewSpawner(sc.Table.TierOne(), 7)

	ids := sc.Table.TierOne()
	for i := 0; i < 3*len(ids); i++ {
		spec, ok := s.Next(cfg, sc.Table)
		if !ok {
			t.Fatal("Next failed")
		}
		if want := ids[i%len(ids)]; spec.Symbol != want {
			t.Errorf("spawn %d = %s, want %s", i, spec.Symbol, want)
		}

		r := components.RadiusForTier(cfg, 1)
		if spec.X < r || spec.X > cfg.Derived.Width-r {
			t.Errorf("x = %f outside [%f, %f]", spec.X, r, cfg.Derived.Width-r)
		}
		if spec.Y > -r || spec.Y < -r-cfg.Spawn.JitterY {
			t.Errorf("y = %f, want just above the top edge", spec.Y)
		}
		if spec.Tier != 1 || spec.Radius != r {
			t.Errorf("tier %d radius %f, want tier-1 token", spec.Tier, spec.Radius)
		}
	}
}

func TestSpawnerInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		ticks    int
		want     int
	}{
		{"disabled", 0, 600, 0},
		{"negative disables", -time.Second, 600, 0},
		{"every 800ms over 10s", 800 * time.Millisecond, 600, 12},
		{"every tick", time.Second / 60, 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc, cfg := newTestScene(t)
			cfg.Spawn.Interval = tc.interval
			s := NewSpawner(sc.Table.TierOne(), 1)
			batch := NewBatch()

			got := 0
			for i := 0; i < tc.ticks; i++ {
				got += s.Update(cfg.Derived.TickDuration, cfg, sc.Table, batch)
			}
			if got != tc.want || len(batch.Additions()) != tc.want {
				t.Errorf("spawned %d (queued %d), want %d", got, len(batch.Additions()), tc.want)
			}
		})
	}
}

func TestSpawnerLoweredIntervalNoBurst(t *testing.T) {
	sc, cfg := newTestScene(t)
	cfg.Spawn.Interval = 3 * time.Second
	s := NewSpawner(sc.Table.TierOne(), 1)
	batch := NewBatch()

	// Two seconds in, nothing has spawned yet
	for range 120 {
		s.Update(cfg.Derived.TickDuration, cfg, sc.Table, batch)
	}
	if n := len(batch.Additions()); n != 0 {
		t.Fatalf("spawned %d before the first 3s interval", n)
	}

	// 200ms at a 100ms interval allows at most two spawns
	cfg.Spawn.Interval = 100 * time.Millisecond
	got := 0
	for range 12 {
		got += s.Update(cfg.Derived.TickDuration, cfg, sc.Table, batch)
	}
	if got > 2 {
		t.Errorf("spawned %d in 200ms after lowering the interval to 100ms, want at most 2", got)
	}
}

func TestSpawnerReset(t *testing.T) {
	sc, cfg := newTestScene(t)
	cfg.Spawn.Interval = 100 * time.Millisecond
	s := sc.Spawner()
	batch := NewBatch()

	for range 5 {
		s.Update(cfg.Derived.TickDuration, cfg, sc.Table, batch)
	}
	s.Reset()

	// A full interval (6 ticks fall just short of 100ms) is needed again
	got := 0
	for range 6 {
		got += s.Update(cfg.Derived.TickDuration, cfg, sc.Table, batch)
	}
	if got != 0 {
		t.Errorf("spawned %d within one interval of Reset, want 0", got)
	}
	if s.Update(cfg.Derived.TickDuration, cfg, sc.Table, batch) != 1 {
		t.Error("want a spawn once a full interval has passed since Reset")
	}
}
