package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// ParticleType identifies the type of effect particle.
type ParticleType uint8

const (
	ParticlePop   ParticleType = iota // A token leaving the field through a collision
	ParticleMerge                     // A child token appearing
)

// EffectParticle is a short-lived visual spark. It does not interact with tokens.
type EffectParticle struct {
	Pos     r2.Vec
	Vel     r2.Vec
	Life    int32
	MaxLife int32
	Type    ParticleType
	Size    float64
	Tier    int
}

// Fade returns the remaining life as a fraction in [0, 1].
func (p EffectParticle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return clamp01(float64(p.Life) / float64(p.MaxLife))
}

// ParticleSystem manages effect particles for merge and pop feedback.
type ParticleSystem struct {
	Particles    []EffectParticle
	maxParticles int
	rng          *rand.Rand
}

// NewParticleSystem creates a new particle system.
func NewParticleSystem(seed int64) *ParticleSystem {
	return &ParticleSystem{
		Particles:    make([]EffectParticle, 0, 500),
		maxParticles: 500,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Update ages and moves all particles by one tick.
func (s *ParticleSystem) Update() {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life--
		if p.Life <= 0 {
			continue
		}

		switch p.Type {
		case ParticlePop:
			// Sink downward
			p.Vel.Y += 0.02
		case ParticleMerge:
			// Slight gravity
			p.Vel.Y += 0.005
		}

		// Drag
		p.Vel = r2.Scale(0.95, p.Vel)
		p.Pos = r2.Add(p.Pos, p.Vel)

		s.Particles[alive] = s.Particles[i]
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// EmitPop emits a few sinking sparks where a token disappeared.
func (s *ParticleSystem) EmitPop(pos r2.Vec, tier int) {
	count := 3 + s.rng.Intn(3)
	for range count {
		s.emit(pos, tier, ParticlePop)
	}
}

// EmitMerge emits a radial burst around a new child. Higher tiers burst harder.
func (s *ParticleSystem) EmitMerge(pos r2.Vec, tier int) {
	count := 8 + s.rng.Intn(7) + 2*tier
	for range count {
		s.emit(pos, tier, ParticleMerge)
	}
}

func (s *ParticleSystem) emit(pos r2.Vec, tier int, ptype ParticleType) {
	if len(s.Particles) >= s.maxParticles {
		return
	}

	var vel r2.Vec
	var life int32
	var size float64

	switch ptype {
	case ParticlePop:
		vel = r2.Vec{X: (s.rng.Float64() - 0.5) * 0.4, Y: s.rng.Float64() * 0.2}
		life = 40 + s.rng.Int31n(30)
		size = 1.5 + s.rng.Float64()
	default:
		// Radial burst
		angle := s.rng.Float64() * 2 * math.Pi
		speed := 0.5 + s.rng.Float64()*(0.8+0.1*float64(tier))
		vel = r2.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
		life = 30 + s.rng.Int31n(30)
		size = 2 + s.rng.Float64()*1.5
	}

	jitter := r2.Vec{X: (s.rng.Float64() - 0.5) * 6, Y: (s.rng.Float64() - 0.5) * 6}
	s.Particles = append(s.Particles, EffectParticle{
		Pos:     r2.Add(pos, jitter),
		Vel:     vel,
		Life:    life,
		MaxLife: life,
		Type:    ptype,
		Size:    size,
		Tier:    tier,
	})
}

// Count returns the current number of active particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}

// Clear drops all particles.
func (s *ParticleSystem) Clear() {
	s.Particles = s.Particles[:0]
}
