package stage

import (
	"math/rand"

	"github.com/olivier-w/shadows/internal/deck"
	"github.com/olivier-w/shadows/internal/flame"
	"go.uber.org/zap"
)

// emitterLift is how far below centre the flame sits.
const emitterLift = 100

// Flame is the phoenix flame scene: one replenishing emitter under the
// centre of the viewport.
type Flame struct {
	Loop

	sim *flame.Simulator
	vp  deck.Viewport
	log *zap.Logger
}

// NewFlame places the emitter for vp and registers its frame step.
func NewFlame(cfg flame.Config, vp deck.Viewport, rng *rand.Rand, logger *zap.Logger) *Flame {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Flame{
		sim: flame.New(cfg, rng),
		log: logger.Named("flame"),
	}
	f.vp = vp
	x, y := f.origin()
	f.sim.Snap(x, y)
	f.Register("flame", func(dt, _ float64) { f.sim.Tick(dt) })
	f.log.Debug("emitter placed", zap.Float64("x", x), zap.Float64("y", y), zap.Int("capacity", cfg.Capacity))
	return f
}

func (f *Flame) origin() (float64, float64) {
	w, h := f.vp.Width, f.vp.Height
	if w <= 0 || h <= 0 {
		w, h = 1200, 600
	}
	return w / 2, h/2 + emitterLift
}

// OnTick advances the emitter by dtMs.
func (f *Flame) OnTick(dtMs float64) { f.step(dtMs) }

// OnViewportResize moves the emitter anchor; the origin springs over.
func (f *Flame) OnViewportResize(width, height float64) {
	f.vp = deck.Viewport{Width: width, Height: height}
	f.sim.SetAnchor(f.origin())
}

// Stop clears the particle pool.
func (f *Flame) Stop() { f.sim.Reset() }

func (f *Flame) Simulator() *flame.Simulator { return f.sim }

// Poses returns world-space particle poses.
func (f *Flame) Poses() []deck.Pose { return f.sim.Poses() }
