package deck

import (
	"math/rand"

	"github.com/olivier-w/shadows/internal/easing"
	"github.com/olivier-w/shadows/internal/tint"
)

// Fallback viewport used until the presentation layer reports a real size.
const (
	defaultViewportWidth  = 1200
	defaultViewportHeight = 600
)

// Viewport is the drawable area in layout units.
type Viewport struct {
	Width  float64
	Height float64
}

func (v Viewport) orDefault() Viewport {
	if v.Width <= 0 {
		v.Width = defaultViewportWidth
	}
	if v.Height <= 0 {
		v.Height = defaultViewportHeight
	}
	return v
}

// Pose is everything the renderer needs to draw one card or particle.
type Pose struct {
	X, Y     float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
	Alpha    float64
	Tint     tint.Tint
	Z        float64
}

// Placement addresses a slot inside a stack.
type Placement struct {
	Stack int
	Slot  int
	Total int
}

// Geometry describes how stacks are laid out side by side.
type Geometry struct {
	Stacks     int
	CardWidth  float64
	CardHeight float64
	Spacing    float64
	MinScale   float64
}

// DefaultGeometry returns 120x160 cards, 20 units apart.
func DefaultGeometry(stacks int) Geometry {
	return Geometry{
		Stacks:     stacks,
		CardWidth:  120,
		CardHeight: 160,
		Spacing:    20,
		MinScale:   0.5,
	}
}

// Motion tunes card transitions.
type Motion struct {
	GraceMs float64     // elapsed time past the duration before a flight is force-completed
	Ease    easing.Func // position and depth remap
}

// DefaultMotion uses a one second grace period and the cubic curve.
func DefaultMotion() Motion {
	return Motion{GraceMs: 1000, Ease: easing.InOutCubic}
}

// Board is the shared layout context for every stack and card: geometry,
// the live viewport and the jitter source. It is mutated only from the frame loop.
type Board struct {
	geom   Geometry
	motion Motion
	vp     Viewport
	rng    *rand.Rand
}

// NewBoard creates a board. A nil rng gets a fixed seed.
func NewBoard(geom Geometry, motion Motion, vp Viewport, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if motion.Ease == nil {
		motion.Ease = easing.InOutCubic
	}
	if motion.GraceMs < 0 {
		motion.GraceMs = 0
	}
	return &Board{geom: geom, motion: motion, vp: vp, rng: rng}
}

// Viewport returns the live viewport.
func (b *Board) Viewport() Viewport { return b.vp.orDefault() }

// Resize replaces the live viewport. Callers relayout stacks afterwards.
func (b *Board) Resize(vp Viewport) { b.vp = vp }

// Geometry returns the stack geometry.
func (b *Board) Geometry() Geometry { return b.geom }

// Motion returns the transition tuning.
func (b *Board) Motion() Motion { return b.motion }

// RestPose computes where a settled card sits, rolling a fresh rotation jitter.
func (b *Board) RestPose(p Placement) Pose {
	return RestPose(b.geom, b.Viewport(), p, (b.rng.Float64()-0.5)*0.1)
}

// RestPose is the deterministic placement formula. Stacks are centred across
// the viewport width; successive slots step right on a three-slot cycle and
// upward, with tighter spacing on short viewports. Deeper slots shrink and sit
// behind: Z = Total - Slot.
func RestPose(g Geometry, vp Viewport, p Placement, rotation float64) Pose {
	vp = vp.orDefault()
	stacks := float64(g.Stacks)
	totalWidth := g.CardWidth*stacks + g.Spacing*(stacks-1)
	startX := (vp.Width - totalWidth) / 2
	baseX := startX + float64(p.Stack)*(g.CardWidth+g.Spacing) + g.CardWidth/2
	baseY := vp.Height * 0.5

	step := 6.0
	if vp.Height < 600 {
		step = 4
	}
	offsetX := float64(p.Slot%3) * 3
	offsetY := float64(p.Slot) * step

	scale := 1 - float64(p.Slot)*0.01
	if scale < g.MinScale {
		scale = g.MinScale
	}

	return Pose{
		X:        baseX + offsetX,
		Y:        baseY - offsetY,
		Rotation: rotation,
		ScaleX:   scale,
		ScaleY:   scale,
		Alpha:    1,
		Tint:     tint.Neutral,
		Z:        float64(p.Total - p.Slot),
	}
}
