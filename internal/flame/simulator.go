package flame

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/harmonica"
	"github.com/olivier-w/shadows/internal/deck"
)

// Spawn holds the randomized ranges for freshly emitted particles. Offsets
// are relative to the emitter origin; positive Y is down.
type Spawn struct {
	HalfWidth float64
	MinDepth  float64
	MaxDepth  float64
	HalfVX    float64
	MinRise   float64
	MaxRise   float64
	MinDecay  float64
	MaxDecay  float64
	HalfSpin  float64
	MinSize   float64
	MaxSize   float64
}

// Config describes one emitter.
type Config struct {
	Capacity       int
	BurstAllowance int

	// Replenish tops the pool back up to Capacity after every tick. Sparkle
	// pools leave it off and only grow through Burst.
	Replenish   bool
	ExtraChance float64
	BurstChance float64

	Spawn   Spawn
	Physics Physics

	FPS       int
	Frequency float64
	Damping   float64
}

// FlameConfig is the phoenix flame emitter.
func FlameConfig() Config {
	return Config{
		Capacity:       10,
		BurstAllowance: 3,
		Replenish:      true,
		ExtraChance:    0.4,
		BurstChance:    0.1,
		Spawn: Spawn{
			HalfWidth: 150,
			MinDepth:  50,
			MaxDepth:  200,
			HalfVX:    2,
			MinRise:   2,
			MaxRise:   7,
			MinDecay:  0.008,
			MaxDecay:  0.023,
			HalfSpin:  0.15,
			MinSize:   15,
			MaxSize:   40,
		},
		Physics:   Physics{Gravity: 0.03, Drag: 0.98, Wind: 0.1},
		FPS:       60,
		Frequency: 4,
		Damping:   0.6,
	}
}

// SparkleConfig is a burst-only pool of capacity sparks that trails a card.
func SparkleConfig(capacity int) Config {
	return Config{
		Capacity:       capacity,
		BurstAllowance: 0,
		Spawn: Spawn{
			MinSize: 2,
			MaxSize: 6,
		},
		Physics:   Physics{Drag: 1},
		FPS:       60,
		Frequency: 8,
		Damping:   0.8,
	}
}

// Ring geometry of a sparkle burst.
const (
	ringMinRadius = 30.0
	ringMaxRadius = 50.0
	sizeUnit      = 40.0
)

// Simulator owns a bounded particle pool around an origin that springs
// toward its anchor.
type Simulator struct {
	cfg    Config
	rng    *rand.Rand
	spring harmonica.Spring

	particles []*Particle

	x, y    float64
	vx, vy  float64
	ax, ay  float64
	anchor  bool
	spawned int
}

// New builds a simulator. It panics on a non-positive capacity, a negative
// burst allowance or a negative decay range.
func New(cfg Config, rng *rand.Rand) *Simulator {
	if cfg.Capacity <= 0 {
		panic(fmt.Sprintf("flame: capacity must be positive, got %d", cfg.Capacity))
	}
	if cfg.BurstAllowance < 0 {
		panic(fmt.Sprintf("flame: negative burst allowance %d", cfg.BurstAllowance))
	}
	if cfg.Spawn.MinDecay < 0 || cfg.Spawn.MaxDecay < cfg.Spawn.MinDecay {
		panic(fmt.Sprintf("flame: bad decay range [%v,%v]", cfg.Spawn.MinDecay, cfg.Spawn.MaxDecay))
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Simulator{
		cfg:       cfg,
		rng:       rng,
		spring:    harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.Frequency, cfg.Damping),
		particles: make([]*Particle, 0, cfg.Capacity+cfg.BurstAllowance),
	}
}

// Limit is the most particles the pool can hold after any tick.
func (s *Simulator) Limit() int { return s.cfg.Capacity + s.cfg.BurstAllowance }

// Capacity is the steady-state population.
func (s *Simulator) Capacity() int { return s.cfg.Capacity }

// SetAnchor moves the point the origin follows. The first anchor snaps.
func (s *Simulator) SetAnchor(x, y float64) {
	s.ax, s.ay = x, y
	if !s.anchor {
		s.x, s.y = x, y
		s.anchor = true
	}
}

// Snap places the origin on (x, y) immediately.
func (s *Simulator) Snap(x, y float64) {
	s.ax, s.ay = x, y
	s.x, s.y = x, y
	s.vx, s.vy = 0, 0
	s.anchor = true
}

// Origin returns the current, spring-smoothed emitter position.
func (s *Simulator) Origin() (float64, float64) { return s.x, s.y }

// Tick steps every particle, reaps the dead and replenishes.
func (s *Simulator) Tick(dtMs float64) {
	s.x, s.vx = s.spring.Update(s.x, s.vx, s.ax)
	s.y, s.vy = s.spring.Update(s.y, s.vy, s.ay)

	live := s.particles[:0]
	for _, p := range s.particles {
		p.Step(dtMs)
		if p.Alive() {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(s.particles); i++ {
		s.particles[i] = nil
	}
	s.particles = live

	if !s.cfg.Replenish {
		return
	}
	for len(s.particles) < s.cfg.Capacity {
		s.emit(KindFlame)
	}
	if s.rng.Float64() < s.cfg.ExtraChance && len(s.particles) < s.Limit() {
		s.emit(KindEmber)
	}
	if s.rng.Float64() < s.cfg.BurstChance {
		for iter := 0; iter < 2; iter++ {
			if len(s.particles) >= s.Limit() {
				break
			}
			s.emit(KindEmber)
		}
	}
}

// Burst spawns n sparks on a ring around the origin that orbit half a turn
// over lifeMs. It returns how many fit under the limit.
func (s *Simulator) Burst(n int, lifeMs float64) int {
	if n <= 0 || lifeMs <= 0 {
		return 0
	}
	made := 0
	for i := 0; i < n; i++ {
		if len(s.particles) >= s.Limit() {
			break
		}
		angle := float64(i) / float64(n) * 2 * math.Pi
		radius := ringMinRadius + s.rng.Float64()*(ringMaxRadius-ringMinRadius)
		// Tangential speed that sweeps pi radians over the particle's life.
		speed := radius * math.Pi / lifeMs * FrameMs

		p := newParticle(KindSpark, s.cfg.Physics, sparkPalette, FrameMs/lifeMs)
		p.x = math.Cos(angle) * radius
		p.y = math.Sin(angle) * radius
		p.vx = -math.Sin(angle) * speed
		p.vy = math.Cos(angle) * speed
		p.spin = 0.1
		p.size = s.size() / sizeUnit
		p.pulseSpeed = 6 * math.Pi / lifeMs
		p.flickerSpeed = 8 * math.Pi / lifeMs
		p.phase = float64(i)
		s.particles = append(s.particles, p)
		s.spawned++
		made++
	}
	return made
}

func (s *Simulator) emit(kind Kind) {
	sp := s.cfg.Spawn
	decay := s.between(sp.MinDecay, sp.MaxDecay)
	if kind == KindEmber {
		decay *= 2
	}
	p := newParticle(kind, s.cfg.Physics, flamePalette, decay)
	p.x = (s.rng.Float64() - 0.5) * 2 * sp.HalfWidth
	p.y = s.between(sp.MinDepth, sp.MaxDepth)
	p.vx = (s.rng.Float64() - 0.5) * 2 * sp.HalfVX
	p.vy = -s.between(sp.MinRise, sp.MaxRise)
	p.spin = (s.rng.Float64() - 0.5) * 2 * sp.HalfSpin
	p.size = s.size() / sizeUnit
	p.pulseSpeed = s.between(0.01, 0.03)
	p.flickerSpeed = s.between(0.05, 0.15)
	p.phase = s.rng.Float64() * 2 * math.Pi
	s.particles = append(s.particles, p)
	s.spawned++
}

func (s *Simulator) size() float64 {
	return s.between(s.cfg.Spawn.MinSize, s.cfg.Spawn.MaxSize)
}

func (s *Simulator) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Count returns the live population.
func (s *Simulator) Count() int { return len(s.particles) }

// Spawned returns how many particles were ever emitted.
func (s *Simulator) Spawned() int { return s.spawned }

// Particles returns a snapshot of the pool.
func (s *Simulator) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	for i, p := range s.particles {
		out[i] = *p
	}
	return out
}

// Poses returns world-space render states for every live particle.
func (s *Simulator) Poses() []deck.Pose {
	out := make([]deck.Pose, len(s.particles))
	for i, p := range s.particles {
		out[i] = p.Pose(s.x, s.y)
	}
	return out
}

// Reset drops every particle. The origin is kept.
func (s *Simulator) Reset() {
	clear(s.particles)
	s.particles = s.particles[:0]
}
