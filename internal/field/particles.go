package field

import (
	"math/rand"
)

// Particle field tuning. Counts scale with surface width; sizes, speeds and
// opacities are drawn uniformly from the ranges noted.
const (
	MaxParticles      = 100
	ParticleSpacing   = 15  // one particle per this many pixels of width
	ParticleMinSize   = 1.0 // radius range [1, 4)
	ParticleSizeSpan  = 3.0
	ParticleSpeed     = 0.8 // velocity components in [-0.4, 0.4)
	ParticleMinAlpha  = 0.3 // opacity range [0.3, 1.0)
	ParticleAlphaSpan = 0.7
)

// Particle is a glowing point of the particle field.
type Particle struct {
	Point
	Size    float64
	Opacity float64
}

// ParticleCount is the number of particles generated for a surface of the
// given width: one per ParticleSpacing pixels, capped at MaxParticles.
func ParticleCount(width int) int {
	if width <= 0 {
		return 0
	}
	return min(MaxParticles, width/ParticleSpacing)
}

// Particles is the drifting glow field.
type Particles struct {
	rng       *rand.Rand
	w, h      int
	particles []Particle
}

// NewParticles returns an empty particle field drawing from rng. Call Reset
// once the surface size is known.
func NewParticles(rng *rand.Rand) *Particles {
	return &Particles{rng: rng}
}

func (f *Particles) Reset(w, h int) {
	f.w, f.h = w, h
	n := ParticleCount(w)
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = Particle{
			Point: Point{
				X:  f.rng.Float64() * float64(w),
				Y:  f.rng.Float64() * float64(h),
				VX: (f.rng.Float64() - 0.5) * ParticleSpeed,
				VY: (f.rng.Float64() - 0.5) * ParticleSpeed,
			},
			Size:    f.rng.Float64()*ParticleSizeSpan + ParticleMinSize,
			Opacity: f.rng.Float64()*ParticleAlphaSpan + ParticleMinAlpha,
		}
	}
	f.particles = particles
}

func (f *Particles) Frame(c Canvas) {
	c.Clear()
	w, h := float64(f.w), float64(f.h)
	for i := range f.particles {
		p := &f.particles[i]
		p.Step(w, h)
		c.FillCircle(p.X, p.Y, p.Size, Glow(p.Opacity))
	}
}

func (f *Particles) Len() int { return len(f.particles) }

// Particles returns the current set. The slice is owned by the field and is
// replaced wholesale on Reset.
func (f *Particles) Particles() []Particle { return f.particles }
