package snow

import (
	"math/rand"
	"time"
)

// Particle sampling constants
const (
	fallSpeedMin = 0.5
	fallSpeedMax = 1.5
	driftMin     = -0.25
	driftMax     = 0.25
	opacityMin   = 0.5
	opacityMax   = 1.0

	// RecycleY is where a particle re-enters after falling past the bottom edge
	RecycleY = -10.0
)

// Particle represents a single snowflake
type Particle struct {
	X         float64 // surface position
	Y         float64
	Size      float64 // radius
	FallSpeed float64 // pixels per tick before the speed multiplier
	Drift     float64 // horizontal pixels per tick before the speed multiplier, may be negative
	Opacity   float64 // fixed alpha in [0.5, 1.0)
}

// SurfaceSize is the current drawing area in surface pixels
type SurfaceSize struct {
	Width  float64
	Height float64
}

// Rand is the random source the simulator samples from.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a deterministic source for the given seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewEntropyRand returns a source seeded from the clock
func NewEntropyRand() *rand.Rand {
	return NewRand(time.Now().UnixNano())
}

// between samples uniformly from [min, max)
func between(rng Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// spawn creates one particle somewhere in the band above the surface
func spawn(cfg SimulationConfig, size SurfaceSize, rng Rand) Particle {
	return Particle{
		X:         rng.Float64() * size.Width,
		Y:         rng.Float64()*size.Height - size.Height,
		Size:      between(rng, cfg.SizeRange.Min, cfg.SizeRange.Max),
		FallSpeed: between(rng, fallSpeedMin, fallSpeedMax),
		Drift:     between(rng, driftMin, driftMax),
		Opacity:   between(rng, opacityMin, opacityMax),
	}
}

// Populate creates exactly cfg.ParticleCount particles for the given surface.
// Particles start above the visible area so they stream in.
func Populate(cfg SimulationConfig, size SurfaceSize, rng Rand) []Particle {
	count := cfg.ParticleCount
	if count < 0 {
		count = 0
	}
	particles := make([]Particle, count)
	for i := range particles {
		particles[i] = spawn(cfg, size, rng)
	}
	return particles
}

// Advance moves a particle one tick and returns the result.
// A particle that falls past the bottom is recycled to just above the top
// with a fresh x. Horizontal motion wraps: past the right edge lands on 0,
// past the left edge lands on the width.
func Advance(p Particle, cfg SimulationConfig, size SurfaceSize, rng Rand) Particle {
	p.Y += p.FallSpeed * cfg.SpeedMultiplier
	p.X += p.Drift * cfg.SpeedMultiplier

	if p.Y > size.Height {
		p.Y = RecycleY
		p.X = rng.Float64() * size.Width
	}

	if p.X > size.Width {
		p.X = 0
	} else if p.X < 0 {
		p.X = size.Width
	}
	return p
}
