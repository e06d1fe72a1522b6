package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/windfall/components"
)

// Batch buffers structural changes for one tick.
// A token queued for removal counts as gone for the rest of the tick.
type Batch struct {
	removed     map[ecs.Entity]struct{}
	removeOrder []ecs.Entity
	add         []components.Spec
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{removed: make(map[ecs.Entity]struct{})}
}

// Reset clears the batch for the next tick, keeping allocations.
func (b *Batch) Reset() {
	clear(b.removed)
	b.removeOrder = b.removeOrder[:0]
	b.add = b.add[:0]
}

// Remove queues a token for removal. Queuing the same token twice is a no-op.
// Returns false if it was already queued.
func (b *Batch) Remove(e ecs.Entity) bool {
	if _, ok := b.removed[e]; ok {
		return false
	}
	b.removed[e] = struct{}{}
	b.removeOrder = append(b.removeOrder, e)
	return true
}

// Removed reports whether the token is queued for removal.
func (b *Batch) Removed(e ecs.Entity) bool {
	_, ok := b.removed[e]
	return ok
}

// Add queues a token for creation at commit.
func (b *Batch) Add(spec components.Spec) {
	b.add = append(b.add, spec)
}

// Removals returns the queued removals in order.
func (b *Batch) Removals() []ecs.Entity {
	return b.removeOrder
}

// Additions returns the queued creations in order.
func (b *Batch) Additions() []components.Spec {
	return b.add
}
