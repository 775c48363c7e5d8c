// Package scheduler moves one card at a time from the fullest stack to a
// random other stack on a fixed timer.
package scheduler

import (
	"math/rand"

	"github.com/olivier-w/shadows/internal/deck"
	"go.uber.org/zap"
)

// State is the scheduler's position in its transfer cycle.
type State int

const (
	Idle State = iota
	Selecting
	Transferring
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case Transferring:
		return "transferring"
	default:
		return "unknown"
	}
}

// Outcome is what a single timer fire did.
type Outcome int

const (
	Transferred Outcome = iota
	SkippedBusy
	SkippedEmpty
	SkippedNoTarget
	SkippedInTransition
	SkippedStopped
)

func (o Outcome) String() string {
	switch o {
	case Transferred:
		return "transferred"
	case SkippedBusy:
		return "busy"
	case SkippedEmpty:
		return "empty"
	case SkippedNoTarget:
		return "no target"
	case SkippedInTransition:
		return "in transition"
	case SkippedStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Stats counts timer fires by outcome.
type Stats struct {
	Fires       int
	Transferred int
	Landed      int
	TimedOut    int
	Busy        int
	Empty       int
	NoTarget    int
	Stale       int
	Recovered   int
}

// Emitter is the sparkle effect that follows a moving card.
type Emitter interface {
	Snap(x, y float64)
	Burst(n int, lifeMs float64) int
}

// Config holds the timing knobs.
type Config struct {
	IntervalMs float64
	DurationMs float64
	Sparkles   int
}

// DefaultConfig moves a card every second over two seconds with eight sparkles.
func DefaultConfig() Config {
	return Config{IntervalMs: 1000, DurationMs: 2000, Sparkles: 8}
}

// Transfer is the job held by the guard while a card is in flight.
type Transfer struct {
	Card   *deck.Card
	From   int
	To     int
	Flight *deck.Transition
}

// Scheduler is the redistribution state machine. It is only driven from the
// frame loop.
type Scheduler struct {
	cfg     Config
	stacks  []*deck.Stack
	rng     *rand.Rand
	emitter Emitter
	log     *zap.Logger

	guard   Slot[*Transfer]
	state   State
	elapsed float64
	stopped bool
	stats   Stats
	onLand  []func(*Transfer)
}

// New builds a scheduler over stacks. emitter and logger may be nil.
func New(cfg Config, stacks []*deck.Stack, rng *rand.Rand, emitter Emitter, logger *zap.Logger) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cfg:     cfg,
		stacks:  stacks,
		rng:     rng,
		emitter: emitter,
		log:     logger.Named("scheduler"),
	}
}

// OnLand registers fn to run whenever a transfer's flight resolves.
func (s *Scheduler) OnLand(fn func(*Transfer)) {
	s.onLand = append(s.onLand, fn)
}

// State returns the current cycle state.
func (s *Scheduler) State() State { return s.state }

// Stats returns a copy of the counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// Busy reports whether a transfer holds the guard.
func (s *Scheduler) Busy() bool { return s.guard.Busy() }

// Current returns the transfer in flight, or nil.
func (s *Scheduler) Current() *Transfer {
	t, _ := s.guard.Current()
	return t
}

// Advance moves the timer by dtMs and fires once the interval has elapsed.
// The accumulator restarts from zero on a fire, so a long frame fires once.
func (s *Scheduler) Advance(dtMs, nowMs float64) (Outcome, bool) {
	if s.stopped {
		return SkippedStopped, false
	}
	s.elapsed += dtMs
	if s.elapsed < s.cfg.IntervalMs {
		return 0, false
	}
	s.elapsed = 0
	return s.PerformTransfer(nowMs), true
}

// PerformTransfer runs one timer fire: pick a source and a target, move the
// source's top card and start its flight. The guard is released only when the
// flight resolves.
func (s *Scheduler) PerformTransfer(nowMs float64) Outcome {
	if s.stopped {
		return SkippedStopped
	}
	s.stats.Fires++

	job := &Transfer{}
	tok, ok := s.guard.Offer(job)
	if !ok {
		s.stats.Busy++
		s.log.Debug("skip transfer", zap.Stringer("reason", SkippedBusy))
		return SkippedBusy
	}
	s.state = Selecting

	src := SelectSource(deck.Counts(s.stacks))
	if src < 0 {
		return s.skip(tok, SkippedEmpty)
	}
	dst, ok := SelectTarget(s.rng, len(s.stacks), src)
	if !ok {
		return s.skip(tok, SkippedNoTarget)
	}
	card, _ := s.stacks[src].Top()
	if card.InTransition() {
		return s.skip(tok, SkippedInTransition)
	}

	s.stacks[src].Remove(card)
	s.stacks[dst].Add(card)
	target := deck.Placement{Stack: dst, Slot: s.stacks[dst].Count() - 1, Total: s.stacks[dst].Count()}
	flight, err := card.BeginTransition(nowMs, target, s.cfg.DurationMs)
	if err != nil {
		// Checked above; reaching this means the card picked up a flight
		// between the check and the call.
		s.log.Error("begin transition", zap.Int("card", card.ID()), zap.Error(err))
		return s.skip(tok, SkippedInTransition)
	}

	job.Card = card
	job.From = src
	job.To = dst
	job.Flight = flight

	if s.emitter != nil {
		pose := card.Pose()
		s.emitter.Snap(pose.X, pose.Y)
		s.emitter.Burst(s.cfg.Sparkles, s.cfg.DurationMs)
	}

	s.state = Transferring
	s.stats.Transferred++
	s.log.Info("transfer started",
		zap.Int("card", card.ID()),
		zap.Int("from", src),
		zap.Int("to", dst),
		zap.Int("slot", target.Slot),
		zap.Float64("distance", flight.Distance()),
	)
	flight.OnDone(func() { s.land(tok, job) })
	return Transferred
}

func (s *Scheduler) skip(tok Token, why Outcome) Outcome {
	s.guard.Release(tok)
	s.state = Idle
	switch why {
	case SkippedEmpty:
		s.stats.Empty++
	case SkippedNoTarget:
		s.stats.NoTarget++
	case SkippedInTransition:
		s.stats.Stale++
	}
	s.log.Debug("skip transfer", zap.Stringer("reason", why))
	return why
}

func (s *Scheduler) land(tok Token, job *Transfer) {
	if !s.guard.Release(tok) {
		s.log.Debug("stale landing ignored", zap.Int("card", job.Card.ID()))
		return
	}
	s.stacks[job.To].Relayout()
	s.state = Idle
	s.stats.Landed++
	if job.Flight.TimedOut() {
		s.stats.TimedOut++
		s.log.Warn("transfer snapped after grace",
			zap.Int("card", job.Card.ID()),
			zap.Int("to", job.To),
		)
	} else {
		s.log.Info("transfer landed", zap.Int("card", job.Card.ID()), zap.Int("to", job.To))
	}
	for _, fn := range s.onLand {
		fn(job)
	}
}

// Reconcile frees a guard whose flight has already resolved without running
// its continuation, which happens after the continuation was abandoned. It
// reports whether the guard was freed.
func (s *Scheduler) Reconcile() bool {
	job, busy := s.guard.Current()
	if !busy || s.state == Selecting {
		return false
	}
	if job.Flight != nil && !job.Flight.Resolved() {
		return false
	}
	s.guard.Reset()
	s.state = Idle
	s.stats.Recovered++
	s.log.Warn("released stuck transfer guard")
	return true
}

// Stop halts the timer and drops the outstanding continuation without
// running it. A stopped scheduler never fires again.
func (s *Scheduler) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	if job, busy := s.guard.Current(); busy && job.Card != nil {
		job.Card.Abandon()
	}
	s.guard.Reset()
	s.state = Idle
	s.log.Debug("stopped", zap.Int("fires", s.stats.Fires))
}

// SelectSource returns the index of the stack with the greatest count, the
// lowest index on ties, or -1 when every stack is empty.
func SelectSource(counts []int) int {
	best, most := -1, 0
	for i, c := range counts {
		if c > most {
			best, most = i, c
		}
	}
	return best
}

// SelectTarget draws uniformly among the n-1 indices other than src. It
// reports false when there is no other stack.
func SelectTarget(rng *rand.Rand, n, src int) (int, bool) {
	if n < 2 {
		return 0, false
	}
	if src < 0 || src >= n {
		return rng.Intn(n), true
	}
	i := rng.Intn(n - 1)
	if i >= src {
		i++
	}
	return i, true
}
