package deck

import (
	"math"

	"github.com/olivier-w/shadows/internal/easing"
	"github.com/olivier-w/shadows/internal/tint"
)

// Transfers longer than this take the arcing trajectory.
const longDistance = 200

// Flourish amplitudes.
const (
	swayWave    = 20.0
	swayShake   = 3.0
	swayCamera  = 30.0
	swayZoom    = 30.0
	floatHeight = 15.0
	arcFactor   = 0.5
	arcMax      = 240.0

	liftScale  = 0.6
	pulseScale = 0.25
	landScale  = 0.4

	spin       = math.Pi
	alphaDepth = 0.4
)

// Tint bands across progress.
const (
	launchGold   tint.Tint = 0xFFD700
	launchGlow   tint.Tint = 0xFFF3A0
	coolTrail    tint.Tint = 0x88AAFF
	coolGlow     tint.Tint = 0xBBDDFF
	warmTrail    tint.Tint = 0xFF6666
	warmGlow     tint.Tint = 0xFFAAAA
	approachLow  tint.Tint = 0xCCCCFF
	approachHigh tint.Tint = 0xEEEEFF
	landingWarm  tint.Tint = 0xFFE6C0
)

// Transition is the future returned by BeginTransition. It resolves exactly
// once, from inside Card.Advance or Card.ForceSettle, and never if the card is
// abandoned.
type Transition struct {
	card   *Card
	from   Pose
	to     Pose
	target Placement

	startMs    float64
	durationMs float64
	graceMs    float64
	ease       easing.Func
	distance   float64

	done     chan struct{}
	resolved bool
	timedOut bool
	onDone   []func()
}

// Card returns the flying card.
func (t *Transition) Card() *Card { return t.card }

// From is the start snapshot.
func (t *Transition) From() Pose { return t.from }

// To is the exact pose the card lands on.
func (t *Transition) To() Pose { return t.to }

// Target is the placement the card settles at.
func (t *Transition) Target() Placement { return t.target }

// StartMs is the logical time the flight began.
func (t *Transition) StartMs() float64 { return t.startMs }

// DurationMs is the nominal flight length.
func (t *Transition) DurationMs() float64 { return t.durationMs }

// Distance is the straight-line travel.
func (t *Transition) Distance() float64 { return t.distance }

// Done is closed when the flight resolves.
func (t *Transition) Done() <-chan struct{} { return t.done }

// Resolved reports whether Done has been closed.
func (t *Transition) Resolved() bool { return t.resolved }

// TimedOut reports whether the flight was force-completed.
func (t *Transition) TimedOut() bool { return t.timedOut }

// OnDone registers a continuation run synchronously on resolution, in
// registration order. Registering after resolution runs fn immediately.
func (t *Transition) OnDone(fn func()) {
	if t.resolved {
		fn()
		return
	}
	t.onDone = append(t.onDone, fn)
}

func (t *Transition) resolve() {
	if t.resolved {
		return
	}
	t.resolved = true
	close(t.done)
	fns := t.onDone
	t.onDone = nil
	for _, fn := range fns {
		fn()
	}
}

// Progress is the elapsed fraction of the duration at nowMs, in [0,1].
func (t *Transition) Progress(nowMs float64) float64 {
	if t.durationMs <= 0 {
		return 1
	}
	p := (nowMs - t.startMs) / t.durationMs
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Frame computes the full pose at progress p from the start snapshot alone.
// At p >= 1 it is exactly To.
func (t *Transition) Frame(p float64) Pose {
	if p >= 1 {
		return t.to
	}
	if p < 0 {
		p = 0
	}
	e := t.ease(p)
	ox, oy := flourish(p, t.distance)
	m := scaleEnvelope(p)

	return Pose{
		X:        t.from.X + (t.to.X-t.from.X)*e + ox,
		Y:        t.from.Y + (t.to.Y-t.from.Y)*e + oy,
		Z:        t.from.Z + (t.to.Z-t.from.Z)*e,
		Rotation: t.from.Rotation + spinOffset(p),
		ScaleX:   t.from.ScaleX * m,
		ScaleY:   t.from.ScaleY * m,
		Alpha:    t.from.Alpha * alphaEnvelope(p),
		Tint:     tintBand(p),
	}
}

// flourish is the cosmetic offset added to the eased path. Every term is a
// whole number of half periods over [0,1], so it vanishes at both ends.
func flourish(p, distance float64) (float64, float64) {
	wave := math.Sin(p*math.Pi*2) * swayWave
	bob := math.Sin(p*math.Pi*3) * floatHeight
	if distance > longDistance {
		shake := math.Sin(p*math.Pi*8) * swayShake
		camera := math.Sin(p*math.Pi*4) * swayCamera
		arc := math.Sin(p*math.Pi) * math.Min(distance*arcFactor, arcMax)
		return wave + shake + camera, bob - arc
	}
	zoom := math.Sin(p*math.Pi*3) * swayZoom
	return wave + zoom, bob
}

// scaleEnvelope: lift over the first 10%, pulse through the middle, damped
// landing over the last 10%. Exactly 1 at p=1.
func scaleEnvelope(p float64) float64 {
	switch {
	case p >= 1:
		return 1
	case p < 0.1:
		return 1 + (p/0.1)*liftScale
	case p > 0.9:
		lp := (p - 0.9) / 0.1
		return 1 + math.Sin(lp*math.Pi*3)*landScale*(1-lp)
	default:
		return 1 + math.Sin(p*math.Pi*6)*pulseScale
	}
}

func spinOffset(p float64) float64 {
	if p >= 1 {
		return 0
	}
	return p * spin
}

// alphaEnvelope pulses between 1-alphaDepth and 1, landing on 1.
func alphaEnvelope(p float64) float64 {
	if p >= 1 {
		return 1
	}
	s := math.Sin(p * math.Pi * 3)
	return 1 - alphaDepth*s*s
}

// tintBand walks launch, cool trail, warm trail, approach and return.
func tintBand(p float64) tint.Tint {
	switch {
	case p >= 1:
		return tint.Neutral
	case p < 0.15:
		return tint.Lerp(launchGold, launchGlow, math.Abs(math.Sin(p*math.Pi*12)))
	case p < 0.4:
		fp := (p - 0.15) / 0.25
		return tint.Lerp(coolTrail, coolGlow, math.Sin(fp*math.Pi*4)*0.5+0.5)
	case p < 0.7:
		ep := (p - 0.4) / 0.3
		return tint.Lerp(warmTrail, warmGlow, math.Sin(ep*math.Pi*5)*0.5+0.5)
	case p < 0.9:
		return tint.Lerp(approachLow, approachHigh, math.Abs(math.Sin(p*math.Pi*15)))
	default:
		rp := (p - 0.9) / 0.1
		return tint.Lerp(landingWarm, tint.Neutral, rp)
	}
}
