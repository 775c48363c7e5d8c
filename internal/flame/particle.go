// Package flame runs the cosmetic particle effects: the phoenix flame emitter
// and the sparkle rings that follow a moving card.
package flame

import (
	"fmt"
	"math"

	"github.com/olivier-w/shadows/internal/deck"
	"github.com/olivier-w/shadows/internal/tint"
)

// FrameMs is the step length the per-step constants are tuned for.
const FrameMs = 1000.0 / 60

// Kind tells flame bodies, short-lived embers and orbiting sparks apart.
type Kind int

const (
	KindFlame Kind = iota
	KindEmber
	KindSpark
)

func (k Kind) String() string {
	switch k {
	case KindFlame:
		return "flame"
	case KindEmber:
		return "ember"
	case KindSpark:
		return "spark"
	default:
		return "unknown"
	}
}

// Palette maps remaining life to a tint: Dying below 0.3, Mid below 0.6,
// Young otherwise.
type Palette struct {
	Young tint.Tint
	Mid   tint.Tint
	Dying tint.Tint
}

var (
	flamePalette = Palette{Young: 0xFFFFFF, Mid: 0xFFAA00, Dying: 0x88AAFF}
	sparkPalette = Palette{Young: 0xFFFF88, Mid: 0xFFFFFF, Dying: 0xFFE6C0}
)

// At returns the band colour for life.
func (p Palette) At(life float64) tint.Tint {
	switch {
	case life < 0.3:
		return p.Dying
	case life < 0.6:
		return p.Mid
	default:
		return p.Young
	}
}

// Physics holds the per-step forces shared by every particle of one emitter.
type Physics struct {
	Gravity float64 // added to vy each step
	Drag    float64 // velocity multiplier each step
	Wind    float64 // amplitude of the lateral sway
}

// Particle is one short-lived unit. Position is relative to the emitter origin.
type Particle struct {
	kind    Kind
	physics Physics
	palette Palette

	x, y     float64
	vx, vy   float64
	rotation float64
	spin     float64
	size     float64

	life  float64
	decay float64
	ageMs float64

	pulseSpeed   float64
	flickerSpeed float64
	phase        float64

	alpha float64
	scale float64
	tint  tint.Tint
}

func newParticle(kind Kind, physics Physics, palette Palette, decay float64) *Particle {
	if decay < 0 || math.IsNaN(decay) {
		panic(fmt.Sprintf("flame: negative particle decay %v", decay))
	}
	return &Particle{
		kind:    kind,
		physics: physics,
		palette: palette,
		life:    1,
		decay:   decay,
		size:    1,
		alpha:   1,
		scale:   1,
		tint:    palette.Young,
	}
}

// Step integrates one update of dtMs. Per-step constants are scaled by
// dtMs/FrameMs so a long frame moves as far as the frames it replaced.
func (p *Particle) Step(dtMs float64) {
	if dtMs < 0 {
		panic(fmt.Sprintf("flame: negative step %v", dtMs))
	}
	f := dtMs / FrameMs
	p.ageMs += dtMs

	p.x += p.vx * f
	p.y += p.vy * f
	p.rotation += p.spin * f

	p.vy += p.physics.Gravity * f
	drag := math.Pow(p.physics.Drag, f)
	p.vx *= drag
	p.vy *= drag
	p.vx += math.Sin(p.ageMs*0.001+p.x*0.01) * p.physics.Wind * f

	p.life -= p.decay * f

	flicker := math.Sin(p.ageMs*p.flickerSpeed+p.phase)*0.3 + 0.7
	p.alpha = math.Max(0, p.life) * flicker
	p.scale = 1 + math.Sin(p.ageMs*p.pulseSpeed+p.phase)*0.1
	p.tint = p.palette.At(p.life)
}

// Alive reports whether the particle still has life left.
func (p *Particle) Alive() bool { return p.life > 0 }

func (p *Particle) Kind() Kind { return p.kind }

func (p *Particle) Life() float64 { return p.life }

// Pose places the particle in world space around origin.
func (p *Particle) Pose(originX, originY float64) deck.Pose {
	return deck.Pose{
		X:        originX + p.x,
		Y:        originY + p.y,
		Rotation: p.rotation,
		ScaleX:   p.scale * p.size,
		ScaleY:   p.scale * p.size,
		Alpha:    p.alpha,
		Tint:     p.tint,
		Z:        p.life,
	}
}
