package easing

import (
	"math"
	"testing"
)

func TestEndpoints(t *testing.T) {
	for name, f := range map[string]Func{
		"linear":  Linear,
		"cubic":   InOutCubic,
		"bounce":  OutBounce,
		"elastic": OutElastic,
	} {
		if got := f(0); math.Abs(got) > 1e-12 {
			t.Fatalf("%s: expected f(0)=0, got %v", name, got)
		}
		if got := f(1); math.Abs(got-1) > 1e-12 {
			t.Fatalf("%s: expected f(1)=1, got %v", name, got)
		}
	}
}

func TestElasticEndpointsAreExact(t *testing.T) {
	if OutElastic(0) != 0 || OutElastic(1) != 1 {
		t.Fatalf("expected exact elastic endpoints, got %v and %v", OutElastic(0), OutElastic(1))
	}
}

func TestInOutCubicIsMonotonicAndSymmetric(t *testing.T) {
	prev := InOutCubic(0)
	for i := 1; i <= 1000; i++ {
		x := float64(i) / 1000
		y := InOutCubic(x)
		if y < prev {
			t.Fatalf("expected monotonic curve, f(%v)=%v < %v", x, y, prev)
		}
		prev = y
		if mirror := 1 - InOutCubic(1-x); math.Abs(mirror-y) > 1e-9 {
			t.Fatalf("expected symmetry at %v: %v vs %v", x, y, mirror)
		}
	}
	if got := InOutCubic(0.5); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("expected midpoint 0.5, got %v", got)
	}
}

func TestCurvesClampOutOfRangeInput(t *testing.T) {
	for _, f := range []Func{Linear, InOutCubic, OutBounce, OutElastic} {
		if got := f(-3); math.Abs(got) > 1e-12 {
			t.Fatalf("expected clamp to 0 for negative input, got %v", got)
		}
		if got := f(7); math.Abs(got-1) > 1e-12 {
			t.Fatalf("expected clamp to 1 above range, got %v", got)
		}
		if got := f(math.NaN()); got != 0 {
			t.Fatalf("expected NaN to map to 0, got %v", got)
		}
	}
}

func TestRepeatedCallsStayFinite(t *testing.T) {
	for i := 0; i <= 10000; i++ {
		x := float64(i) / 10000
		for _, f := range []Func{InOutCubic, OutBounce, OutElastic} {
			if y := f(x); math.IsNaN(y) || math.IsInf(y, 0) {
				t.Fatalf("expected finite output at %v, got %v", x, y)
			}
		}
	}
}

func TestByNameFallsBackToCubic(t *testing.T) {
	if got := ByName("nope")(0.25); got != InOutCubic(0.25) {
		t.Fatalf("expected cubic fallback, got %v", got)
	}
	if got := ByName("bounce")(0.5); got != OutBounce(0.5) {
		t.Fatalf("expected bounce, got %v", got)
	}
}
