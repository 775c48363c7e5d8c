package stage

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/olivier-w/shadows/internal/deck"
	"github.com/olivier-w/shadows/internal/flame"
	"github.com/olivier-w/shadows/internal/scheduler"
)

const frameMs = 1000.0 / 60

func newTestStage(seed int64) *Stage {
	opts := DefaultOptions()
	opts.Viewport = deck.Viewport{Width: 1400, Height: 800}
	return New(opts, rand.New(rand.NewSource(seed)), nil)
}

func TestFrameOrder(t *testing.T) {
	s := newTestStage(1)
	var order []string
	s.Register("probe", func(float64, float64) { order = append(order, "probe") })
	want := []string{"scheduler", "cards", "sparkles", "sweep", "probe"}
	if got := s.Frames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected frame order %v, got %v", want, got)
	}
	s.OnTick(frameMs)
	if len(order) != 1 {
		t.Fatalf("expected probe to run once per tick, got %d", len(order))
	}
}

func TestInitialDeal(t *testing.T) {
	s := newTestStage(1)
	for i, n := range s.Counts() {
		if n != 18 {
			t.Fatalf("expected 18 cards in stack %d, got %d", i, n)
		}
	}
	if err := s.Audit(); err != nil {
		t.Fatalf("Audit returned error: %v", err)
	}
}

func TestCardsConservedAcrossRun(t *testing.T) {
	s := newTestStage(21)
	settledChecks := 0
	for iter := 0; iter < 60*30; iter++ {
		s.OnTick(frameMs)
		if err := s.Audit(); err != nil {
			t.Fatalf("at %vms: %v", s.Now(), err)
		}
		if s.Settled() {
			settledChecks++
			total := 0
			for _, n := range s.Counts() {
				total += n
			}
			if total != 144 {
				t.Fatalf("expected 144 cards at a settled instant, got %d", total)
			}
		}
	}
	st := s.Scheduler().Stats()
	if st.Transferred < 10 {
		t.Fatalf("expected steady transfers over 30s, got %+v", st)
	}
	if st.Busy == 0 {
		t.Fatalf("expected fires during flights to be skipped, got %+v", st)
	}
	if settledChecks == 0 {
		t.Fatal("expected some settled instants")
	}
}

func TestTransferStartsAnimatingSameTick(t *testing.T) {
	s := newTestStage(2)
	for !s.Scheduler().Busy() {
		s.OnTick(frameMs)
	}
	job := s.Scheduler().Current()
	if job.Flight.StartMs() != s.Now() {
		t.Fatalf("expected flight to start at the firing tick, got %v vs %v", job.Flight.StartMs(), s.Now())
	}
	if job.Card.Pose() != job.Flight.Frame(0) {
		t.Fatal("expected card advanced on the firing tick")
	}
	if s.Sparkles().Count() == 0 {
		t.Fatal("expected sparkle burst on transfer")
	}
}

func TestResizeMidFlightKeepsTrajectory(t *testing.T) {
	s := newTestStage(4)
	for !s.Scheduler().Busy() {
		s.OnTick(frameMs)
	}
	job := s.Scheduler().Current()
	for iter := 0; iter < 30; iter++ {
		s.OnTick(frameMs)
	}
	from, to := job.Flight.From(), job.Flight.To()

	s.OnViewportResize(800, 500)
	if job.Flight.From() != from || job.Flight.To() != to {
		t.Fatal("expected flight snapshot to survive the resize")
	}
	s.OnTick(frameMs)
	if want := job.Flight.Frame(job.Flight.Progress(s.Now())); job.Card.Pose() != want {
		t.Fatal("expected flying card to follow its original trajectory")
	}

	vp := s.Board().Viewport()
	for _, st := range s.Stacks() {
		cards := st.Cards()
		for slot, c := range cards {
			if c.InTransition() {
				continue
			}
			want := deck.RestPose(s.Board().Geometry(), vp, deck.Placement{Stack: st.Index(), Slot: slot, Total: len(cards)}, c.Pose().Rotation)
			if c.Pose() != want {
				t.Fatalf("expected settled card %d relaid for %vx%v", c.ID(), vp.Width, vp.Height)
			}
		}
	}
}

func TestStopDropsContinuations(t *testing.T) {
	s := newTestStage(6)
	landed := 0
	s.OnLand(func(*scheduler.Transfer) { landed++ })
	for !s.Scheduler().Busy() {
		s.OnTick(frameMs)
	}
	job := s.Scheduler().Current()
	s.Stop()
	s.OnTick(5000)
	job.Card.Advance(s.Now() + 5000)
	if landed != 0 {
		t.Fatalf("expected no landing after stop, got %d", landed)
	}
}

func TestSweepSettlesLostFlights(t *testing.T) {
	s := newTestStage(8)
	for !s.Scheduler().Busy() {
		s.OnTick(frameMs)
	}
	job := s.Scheduler().Current()
	job.Card.Abandon()
	now := job.Flight.StartMs()

	if n := s.Sweep(now + 1000); n != 0 {
		t.Fatalf("expected young flight left alone, got %d", n)
	}
	if n := s.Sweep(now + 7000); n != 2 {
		t.Fatalf("expected card settled and guard freed, got %d", n)
	}
	if job.Card.InTransition() || s.Scheduler().Busy() {
		t.Fatal("expected card settled and scheduler free")
	}
	if err := s.Audit(); err != nil {
		t.Fatalf("Audit returned error: %v", err)
	}
}

func TestFlameSceneHoldsPopulation(t *testing.T) {
	f := NewFlame(flame.FlameConfig(), deck.Viewport{Width: 1000, Height: 600}, rand.New(rand.NewSource(3)), nil)
	x, y := f.Simulator().Origin()
	if x != 500 || y != 400 {
		t.Fatalf("expected emitter at (500,400), got (%v,%v)", x, y)
	}
	for iter := 0; iter < 600; iter++ {
		f.OnTick(frameMs)
		n := len(f.Poses())
		if n < 10 || n > 13 {
			t.Fatalf("expected population within [10,13], got %d", n)
		}
	}
	f.OnViewportResize(400, 200)
	for iter := 0; iter < 300; iter++ {
		f.OnTick(frameMs)
	}
	x, y = f.Simulator().Origin()
	if x < 199 || x > 201 || y < 199 || y > 201 {
		t.Fatalf("expected emitter to follow resize to (200,200), got (%v,%v)", x, y)
	}
}
