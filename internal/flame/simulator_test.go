package flame

import (
	"math"
	"math/rand"
	"testing"
)

func TestTickNeverExceedsLimit(t *testing.T) {
	s := New(FlameConfig(), rand.New(rand.NewSource(11)))
	s.Snap(600, 400)
	for i := 0; i < 2000; i++ {
		s.Tick(FrameMs)
		if s.Count() > s.Limit() {
			t.Fatalf("tick %d: expected at most %d particles, got %d", i, s.Limit(), s.Count())
		}
		if s.Count() < s.Capacity() {
			t.Fatalf("tick %d: expected replenish to capacity %d, got %d", i, s.Capacity(), s.Count())
		}
	}
}

func TestPopulationConvergesWithoutBursts(t *testing.T) {
	cfg := FlameConfig()
	cfg.ExtraChance = 1
	cfg.BurstChance = 1
	s := New(cfg, rand.New(rand.NewSource(5)))
	for iter := 0; iter < 5; iter++ {
		s.Tick(FrameMs)
	}
	if s.Count() != s.Limit() {
		t.Fatalf("expected pool filled to %d by bursts, got %d", s.Limit(), s.Count())
	}

	s.cfg.ExtraChance = 0
	s.cfg.BurstChance = 0
	// Embers decay at no less than 2*MinDecay per step, so they are gone
	// within 1/(2*0.008) steps.
	for iter := 0; iter < 70; iter++ {
		s.Tick(FrameMs)
	}
	if s.Count() != s.Capacity() {
		t.Fatalf("expected convergence to capacity %d, got %d", s.Capacity(), s.Count())
	}
}

func TestBurstRespectsLimit(t *testing.T) {
	s := New(SparkleConfig(12), rand.New(rand.NewSource(2)))
	s.Snap(100, 100)

	if got := s.Burst(8, 2000); got != 8 {
		t.Fatalf("expected 8 sparks, got %d", got)
	}
	if got := s.Burst(8, 2000); got != 4 {
		t.Fatalf("expected only 4 more to fit, got %d", got)
	}
	if s.Count() != 12 {
		t.Fatalf("expected 12 live sparks, got %d", s.Count())
	}
	if got := s.Burst(0, 2000); got != 0 {
		t.Fatalf("expected empty burst, got %d", got)
	}
}

func TestBurstRingRadius(t *testing.T) {
	s := New(SparkleConfig(24), rand.New(rand.NewSource(9)))
	s.Snap(300, 200)
	s.Burst(8, 2000)
	for _, p := range s.Poses() {
		r := math.Hypot(p.X-300, p.Y-200)
		if r < ringMinRadius-1e-9 || r > ringMaxRadius+1e-9 {
			t.Fatalf("expected spark on ring [%v,%v], got radius %v", ringMinRadius, ringMaxRadius, r)
		}
	}
}

func TestSparksExpireAfterLifetime(t *testing.T) {
	s := New(SparkleConfig(24), rand.New(rand.NewSource(4)))
	s.Snap(0, 0)
	s.Burst(8, 500)
	// 500ms is 30 steps; after 29 the sparks hold one step of life.
	for iter := 0; iter < 29; iter++ {
		s.Tick(FrameMs)
	}
	if s.Count() == 0 {
		t.Fatal("expected sparks alive before their lifetime")
	}
	s.Tick(FrameMs)
	s.Tick(FrameMs)
	if s.Count() != 0 {
		t.Fatalf("expected sparks reaped, got %d", s.Count())
	}
}

func TestOriginSpringsTowardAnchor(t *testing.T) {
	s := New(SparkleConfig(4), rand.New(rand.NewSource(1)))
	s.SetAnchor(0, 0)
	s.SetAnchor(100, 50)
	if x, y := s.Origin(); x != 0 || y != 0 {
		t.Fatalf("expected origin to stay until ticked, got (%v,%v)", x, y)
	}
	s.Tick(FrameMs)
	x, _ := s.Origin()
	if x <= 0 || x >= 100 {
		t.Fatalf("expected origin partway to anchor, got %v", x)
	}
	for iter := 0; iter < 300; iter++ {
		s.Tick(FrameMs)
	}
	x, y := s.Origin()
	if math.Abs(x-100) > 0.5 || math.Abs(y-50) > 0.5 {
		t.Fatalf("expected origin settled on anchor, got (%v,%v)", x, y)
	}
}

func TestNewPanicsOnBadCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero capacity")
		}
	}()
	New(Config{}, nil)
}

func TestResetEmptiesPool(t *testing.T) {
	s := New(FlameConfig(), rand.New(rand.NewSource(8)))
	s.Tick(FrameMs)
	s.Reset()
	if s.Count() != 0 {
		t.Fatalf("expected empty pool, got %d", s.Count())
	}
	if s.Spawned() < s.Capacity() {
		t.Fatalf("expected spawn counter kept, got %d", s.Spawned())
	}
}
