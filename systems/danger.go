package systems

import (
	"github.com/pthm-cable/windfall/components"
	"github.com/pthm-cable/windfall/config"
	"github.com/pthm-cable/windfall/symbols"
)

// DangerHighlighter flags pairs about to produce a kind that already sits next to them.
// The flag is advisory; nothing in the simulation reads it.
type DangerHighlighter struct {
	byKind map[string][]int
}

// NewDangerHighlighter creates a highlighter.
func NewDangerHighlighter() *DangerHighlighter {
	return &DangerHighlighter{byKind: make(map[string][]int)}
}

// Update clears every flag, then marks each close pair (tier >= min_level) whose
// recipe result already exists within max_distance of either parent, together
// with that result token. Returns the number of flagged tokens.
func (d *DangerHighlighter) Update(toks []components.Token, cfg *config.Config, table *symbols.Table) int {
	for _, t := range toks {
		t.State.Danger = false
	}
	if !cfg.Danger.Enabled {
		return 0
	}

	clear(d.byKind)
	for i, t := range toks {
		d.byKind[t.Sym.ID] = append(d.byKind[t.Sym.ID], i)
	}

	maxDist := cfg.Danger.MaxDistance
	for i := 0; i < len(toks); i++ {
		a := toks[i]
		if a.Body.Tier < cfg.Danger.MinLevel {
			continue
		}
		for j := i + 1; j < len(toks); j++ {
			b := toks[j]
			if b.Body.Tier < cfg.Danger.MinLevel {
				continue
			}
			if distance(a.Pos.Vec(), b.Pos.Vec()) >= maxDist {
				continue
			}
			res, ok := table.Combine(a.Sym.ID, b.Sym.ID)
			if !ok {
				continue
			}

			match := -1
			for _, k := range d.byKind[res.ID] {
				r := toks[k].Pos.Vec()
				if distance(a.Pos.Vec(), r) < maxDist || distance(b.Pos.Vec(), r) < maxDist {
					match = k
					break
				}
			}
			if match < 0 {
				continue
			}
			a.State.Danger = true
			b.State.Danger = true
			toks[match].State.Danger = true
		}
	}

	n := 0
	for _, t := range toks {
		if t.State.Danger {
			n++
		}
	}
	return n
}
