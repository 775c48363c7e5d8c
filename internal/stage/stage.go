package stage

import (
	"math/rand"

	"github.com/olivier-w/shadows/internal/deck"
	"github.com/olivier-w/shadows/internal/flame"
	"github.com/olivier-w/shadows/internal/scheduler"
	"go.uber.org/zap"
)

// Options configures the cards scene.
type Options struct {
	Stacks          int
	Cards           int
	Viewport        deck.Viewport
	Motion          deck.Motion
	Scheduler       scheduler.Config
	SparkleCapacity int
	SweepIntervalMs float64
	StuckAfterMs    float64
}

// DefaultOptions is 144 cards over 8 stacks.
func DefaultOptions() Options {
	return Options{
		Stacks:          8,
		Cards:           144,
		Motion:          deck.DefaultMotion(),
		Scheduler:       scheduler.DefaultConfig(),
		SparkleCapacity: 24,
		SweepIntervalMs: 5000,
		StuckAfterMs:    6000,
	}
}

// Stage is the cards scene: stacks, the redistribution scheduler and the
// sparkle ring that trails the moving card.
type Stage struct {
	Loop

	opts     Options
	board    *deck.Board
	stacks   []*deck.Stack
	cards    []*deck.Card
	sched    *scheduler.Scheduler
	sparkles *flame.Simulator
	log      *zap.Logger

	sinceSweep float64
	swept      int
	stopped    bool
}

// New deals the cards and registers the frame order: scheduler timer, card
// animation, sparkles, stuck sweep.
func New(opts Options, rng *rand.Rand, logger *zap.Logger) *Stage {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Motion.Ease == nil {
		opts.Motion = deck.DefaultMotion()
	}
	board := deck.NewBoard(deck.DefaultGeometry(opts.Stacks), opts.Motion, opts.Viewport, rng)

	stacks := make([]*deck.Stack, opts.Stacks)
	for i := range stacks {
		stacks[i] = deck.NewStack(i, board)
	}
	cards := make([]*deck.Card, opts.Cards)
	for i := range cards {
		cards[i] = deck.NewCard(i, board)
	}
	deck.Distribute(stacks, cards)

	capacity := opts.SparkleCapacity
	if capacity <= 0 {
		capacity = 1
	}
	sparkles := flame.New(flame.SparkleConfig(capacity), rng)

	s := &Stage{
		opts:     opts,
		board:    board,
		stacks:   stacks,
		cards:    cards,
		sparkles: sparkles,
		log:      logger.Named("stage"),
	}
	s.sched = scheduler.New(opts.Scheduler, stacks, rng, sparkles, logger)

	s.Register("scheduler", func(dt, now float64) { s.sched.Advance(dt, now) })
	s.Register("cards", s.advanceCards)
	s.Register("sparkles", s.advanceSparkles)
	s.Register("sweep", s.sweep)

	s.log.Info("dealt",
		zap.Int("cards", opts.Cards),
		zap.Int("stacks", opts.Stacks),
		zap.Ints("counts", deck.Counts(stacks)),
	)
	return s
}

// OnTick advances the scene by dtMs.
func (s *Stage) OnTick(dtMs float64) {
	if s.stopped {
		return
	}
	s.step(dtMs)
}

// OnViewportResize relays out every settled card against the new size.
// Flights keep the target they started with.
func (s *Stage) OnViewportResize(width, height float64) {
	s.board.Resize(deck.Viewport{Width: width, Height: height})
	for _, st := range s.stacks {
		st.Relayout()
	}
}

// Stop halts the timer and drops every in-flight continuation unresolved.
func (s *Stage) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.sched.Stop()
	for _, c := range s.cards {
		c.Abandon()
	}
	s.sparkles.Reset()
	s.log.Info("stopped", zap.Float64("now_ms", s.Now()))
}

// OnLand registers fn to run after each transfer lands.
func (s *Stage) OnLand(fn func(*scheduler.Transfer)) { s.sched.OnLand(fn) }

func (s *Stage) advanceCards(_, now float64) {
	for _, c := range s.cards {
		c.Advance(now)
	}
}

func (s *Stage) advanceSparkles(dt, _ float64) {
	if job := s.sched.Current(); job != nil && job.Card != nil && job.Card.InTransition() {
		p := job.Card.Pose()
		s.sparkles.SetAnchor(p.X, p.Y)
	}
	s.sparkles.Tick(dt)
}

// sweep force-settles flights that outlived StuckAfterMs. It only matters when
// a continuation was lost; the grace snap in Card.Advance handles slow frames.
func (s *Stage) sweep(dt, now float64) {
	if s.opts.SweepIntervalMs <= 0 {
		return
	}
	s.sinceSweep += dt
	if s.sinceSweep < s.opts.SweepIntervalMs {
		return
	}
	s.sinceSweep = 0
	s.Sweep(now)
}

// Sweep runs the stuck-flight check immediately and returns how many cards
// it settled.
func (s *Stage) Sweep(now float64) int {
	n := 0
	for _, c := range s.cards {
		f := c.Flight()
		if f == nil || now-f.StartMs() <= s.opts.StuckAfterMs {
			continue
		}
		c.ForceSettle()
		n++
		s.log.Warn("settled stuck card",
			zap.Int("card", c.ID()),
			zap.Float64("age_ms", now-f.StartMs()),
		)
	}
	if s.sched.Reconcile() {
		n++
	}
	s.swept += n
	return n
}

// Swept is the total number of sweep recoveries.
func (s *Stage) Swept() int { return s.swept }

func (s *Stage) Board() *deck.Board { return s.board }

// Stacks returns the stacks in row order.
func (s *Stage) Stacks() []*deck.Stack { return s.stacks }

// Cards returns every card ordered by depth for drawing.
func (s *Stage) Cards() []*deck.Card {
	out := make([]*deck.Card, len(s.cards))
	copy(out, s.cards)
	deck.ByDepth(out)
	return out
}

// Counts returns per-stack member counts.
func (s *Stage) Counts() []int { return deck.Counts(s.stacks) }

// Settled reports whether no card is in flight.
func (s *Stage) Settled() bool {
	for _, c := range s.cards {
		if c.InTransition() {
			return false
		}
	}
	return true
}

func (s *Stage) Scheduler() *scheduler.Scheduler { return s.sched }

func (s *Stage) Sparkles() *flame.Simulator { return s.sparkles }

// Audit checks card conservation across stacks.
func (s *Stage) Audit() error { return deck.Audit(s.stacks, len(s.cards)) }
