package deck

import (
	"errors"
	"fmt"
	"math"

	"github.com/olivier-w/shadows/internal/tint"
)

// ErrInTransition is returned when a flight is started on a card already in flight.
var ErrInTransition = errors.New("card already in transition")

// Card is one relocatable unit. Membership belongs to the holding Stack; the
// card only keeps a back-reference plus the placement it last settled at.
type Card struct {
	id     int
	board  *Board
	holder *Stack

	stack int
	slot  int
	pose  Pose

	lifted bool
	flight *Transition
}

// NewCard creates an unplaced card.
func NewCard(id int, board *Board) *Card {
	return &Card{
		id:    id,
		board: board,
		stack: -1,
		slot:  -1,
		pose:  Pose{ScaleX: 1, ScaleY: 1, Alpha: 1, Tint: tint.Neutral},
	}
}

func (c *Card) ID() int { return c.id }

// Stack is the index of the stack the card last settled in, or -1.
func (c *Card) Stack() int { return c.stack }

// Slot is the slot the card last settled in, or -1.
func (c *Card) Slot() int { return c.slot }

// Holder returns the stack whose member list contains the card. During a
// flight this is already the target stack.
func (c *Card) Holder() *Stack { return c.holder }

// InTransition reports whether a flight is outstanding.
func (c *Card) InTransition() bool { return c.flight != nil }

// Flight returns the outstanding transition, or nil.
func (c *Card) Flight() *Transition { return c.flight }

// Pose returns the current render state.
func (c *Card) Pose() Pose { return c.pose }

// settle applies a rest placement. Flying cards keep their snapshot, and a
// card lifted off a stack keeps its pose until its flight starts.
func (c *Card) settle(p Placement) {
	if c.flight != nil || c.lifted {
		return
	}
	c.stack = p.Stack
	c.slot = p.Slot
	c.pose = c.board.RestPose(p)
}

// BeginTransition starts a flight toward target. The start snapshot is the
// current pose; the target pose comes from the rest formula evaluated against
// the board's live viewport. Callers check InTransition first.
func (c *Card) BeginTransition(nowMs float64, target Placement, durationMs float64) (*Transition, error) {
	if c.flight != nil {
		return nil, fmt.Errorf("card %d: %w", c.id, ErrInTransition)
	}
	if durationMs < 0 || math.IsNaN(durationMs) {
		panic(fmt.Sprintf("deck: card %d: negative transition duration %v", c.id, durationMs))
	}

	from := c.pose
	rest := RestPose(c.board.Geometry(), c.board.Viewport(), target, from.Rotation)
	to := from
	to.X = rest.X
	to.Y = rest.Y
	to.Z = rest.Z
	to.Tint = tint.Neutral

	motion := c.board.Motion()
	t := &Transition{
		card:       c,
		from:       from,
		to:         to,
		target:     target,
		startMs:    nowMs,
		durationMs: durationMs,
		graceMs:    motion.GraceMs,
		ease:       motion.Ease,
		distance:   math.Hypot(to.X-from.X, to.Y-from.Y),
		done:       make(chan struct{}),
	}
	c.flight = t
	c.lifted = false
	return t, nil
}

// Advance recomputes the pose of an in-flight card at nowMs and completes the
// flight once progress reaches 1 or the grace margin is exceeded. It reports
// whether the flight resolved during this call.
func (c *Card) Advance(nowMs float64) bool {
	t := c.flight
	if t == nil {
		return false
	}
	elapsed := nowMs - t.startMs
	if elapsed > t.durationMs+t.graceMs {
		t.timedOut = true
		c.finish()
		return true
	}
	p := t.Progress(nowMs)
	if p >= 1 {
		c.finish()
		return true
	}
	c.pose = t.Frame(p)
	return false
}

// ForceSettle completes an outstanding flight immediately. It reports whether
// there was one.
func (c *Card) ForceSettle() bool {
	if c.flight == nil {
		return false
	}
	c.flight.timedOut = true
	c.finish()
	return true
}

// Abandon drops the continuations of an outstanding flight without resolving
// it. Used on teardown.
func (c *Card) Abandon() {
	if c.flight != nil {
		c.flight.onDone = nil
	}
}

func (c *Card) finish() {
	t := c.flight
	c.pose = t.to
	c.stack = t.target.Stack
	c.slot = t.target.Slot
	c.flight = nil
	t.resolve()
}
