// Package components defines ECS components for the simulation.
package components

import (
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Symbol identifies the token's symbol kind. Combination recipes are keyed on it.
type Symbol struct {
	ID string
}

// Identity holds bookkeeping that never changes after creation.
type Identity struct {
	Serial uint64        // Insertion order; higher = drawn on top
	BornAt time.Duration // Simulation time of creation
}

// Interaction holds transient gesture and force-field state.
// All *Until fields are simulation-clock instants.
type Interaction struct {
	Grabbed  bool
	Selected bool
	Pull     r2.Vec // Slingshot pull vector while grabbed

	WindCaptured       bool
	CaptureUntil       time.Duration // Wind keeps influencing until this instant
	HasCapture         bool          // CaptureUntil is meaningful
	GravityImmuneUntil time.Duration
	WindImmuneUntil    time.Duration

	InPlayfield bool // Seen below the near-top threshold at least once
	Manipulated bool // Touched by wind; read by scoring collaborators
	Danger      bool // Advisory highlight
}

// ResetCapture clears wind capture state.
func (in *Interaction) ResetCapture() {
	in.WindCaptured = false
	in.HasCapture = false
	in.CaptureUntil = 0
}

// Token is a view over the components of one token entity.
// The pointers stay valid until the next entity is created or removed.
type Token struct {
	Entity ecs.Entity
	Pos    *Position
	Vel    *Velocity
	Body   *Body
	Sym    *Symbol
	State  *Interaction
	ID     *Identity
}

// Contains reports whether the point lies strictly inside the token's circle.
func (t Token) Contains(x, y float64) bool {
	dx := x - t.Pos.X
	dy := y - t.Pos.Y
	return dx*dx+dy*dy < t.Body.Radius*t.Body.Radius
}

// Spec describes a token to be created.
type Spec struct {
	X, Y               float64
	VX, VY             float64
	Tier               int
	Radius             float64
	Symbol             string
	GravityImmuneUntil time.Duration
}
