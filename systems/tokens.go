package systems

import (
	"slices"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/windfall/components"
)

// Tokens is the token set, backed by an ECS world.
// Entities are stable handles; removal never shifts another token's handle.
type Tokens struct {
	world  *ecs.World
	mapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Body,
		components.Symbol,
		components.Interaction,
		components.Identity,
	]
	filter *ecs.Filter6[
		components.Position,
		components.Velocity,
		components.Body,
		components.Symbol,
		components.Interaction,
		components.Identity,
	]

	nextSerial uint64
	count      int
}

// NewTokens creates an empty token set in the given world.
func NewTokens(world *ecs.World) *Tokens {
	return &Tokens{
		world: world,
		mapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Body,
			components.Symbol,
			components.Interaction,
			components.Identity,
		](world),
		filter: ecs.NewFilter6[
			components.Position,
			components.Velocity,
			components.Body,
			components.Symbol,
			components.Interaction,
			components.Identity,
		](world),
	}
}

// Spawn creates a token. It must not be called while a query is open.
func (ts *Tokens) Spawn(spec components.Spec, now time.Duration) components.Token {
	pos := components.Position{X: spec.X, Y: spec.Y}
	vel := components.Velocity{X: spec.VX, Y: spec.VY}
	body := components.Body{Radius: spec.Radius, Tier: spec.Tier}
	sym := components.Symbol{ID: spec.Symbol}
	state := components.Interaction{GravityImmuneUntil: spec.GravityImmuneUntil}
	id := components.Identity{Serial: ts.nextSerial, BornAt: now}
	ts.nextSerial++

	e := ts.mapper.NewEntity(&pos, &vel, &body, &sym, &state, &id)
	ts.count++

	tok, _ := ts.Get(e)
	return tok
}

// Get returns the view of a live token.
func (ts *Tokens) Get(e ecs.Entity) (components.Token, bool) {
	if !ts.world.Alive(e) {
		return components.Token{}, false
	}
	pos, vel, body, sym, state, id := ts.mapper.Get(e)
	return components.Token{Entity: e, Pos: pos, Vel: vel, Body: body, Sym: sym, State: state, ID: id}, true
}

// Alive reports whether the handle refers to a live token.
func (ts *Tokens) Alive(e ecs.Entity) bool {
	return ts.world.Alive(e)
}

// Snapshot returns every token in insertion order.
// Views are valid until the next Spawn, Remove or Commit.
func (ts *Tokens) Snapshot() []components.Token {
	out := make([]components.Token, 0, ts.count)
	query := ts.filter.Query()
	for query.Next() {
		pos, vel, body, sym, state, id := query.Get()
		out = append(out, components.Token{
			Entity: query.Entity(),
			Pos:    pos,
			Vel:    vel,
			Body:   body,
			Sym:    sym,
			State:  state,
			ID:     id,
		})
	}

	slices.SortFunc(out, func(a, b components.Token) int {
		switch {
		case a.ID.Serial < b.ID.Serial:
			return -1
		case a.ID.Serial > b.ID.Serial:
			return 1
		}
		return 0
	})
	return out
}

// Remove deletes a token immediately. Unknown or dead handles are ignored.
func (ts *Tokens) Remove(e ecs.Entity) {
	if !ts.world.Alive(e) {
		return
	}
	ts.world.RemoveEntity(e)
	ts.count--
}

// Commit applies a batch: removals first, then additions in queue order.
// Returns the created tokens.
func (ts *Tokens) Commit(b *Batch, now time.Duration) []components.Token {
	for _, e := range b.removeOrder {
		ts.Remove(e)
	}

	if len(b.add) == 0 {
		return nil
	}
	added := make([]ecs.Entity, 0, len(b.add))
	for _, spec := range b.add {
		added = append(added, ts.Spawn(spec, now).Entity)
	}

	// Re-fetch views: later spawns may have moved earlier components
	out := make([]components.Token, 0, len(added))
	for _, e := range added {
		if tok, ok := ts.Get(e); ok {
			out = append(out, tok)
		}
	}
	return out
}

// Len returns the number of live tokens.
func (ts *Tokens) Len() int {
	return ts.count
}
