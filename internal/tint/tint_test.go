package tint

import "testing"

func TestLerpEndpointsAreExact(t *testing.T) {
	a, b := Tint(0x88AAFF), Tint(0xFF6666)
	if got := Lerp(a, b, 0); got != a {
		t.Fatalf("expected %v at t=0, got %v", a, got)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Fatalf("expected %v at t=1, got %v", b, got)
	}
	if got := Lerp(a, b, 3); got != b {
		t.Fatalf("expected clamp to %v, got %v", b, got)
	}
}

func TestLerpMidpointIsBetweenChannels(t *testing.T) {
	got := Lerp(0x000000, 0xFFFFFF, 0.5)
	r, g, b := got.RGB()
	for _, ch := range []uint8{r, g, b} {
		if ch < 120 || ch > 135 {
			t.Fatalf("expected mid grey, got %v", got)
		}
	}
}

func TestHexAndParse(t *testing.T) {
	if got := Tint(0xFFD700).Hex(); got != "#ffd700" {
		t.Fatalf("expected #ffd700, got %s", got)
	}
	c, err := Parse("#88aaff")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if c != 0x88AAFF {
		t.Fatalf("expected 0x88aaff, got %v", c)
	}
	if _, err := Parse("nope"); err == nil {
		t.Fatal("expected error for malformed hex")
	}
}

func TestScaleToBlack(t *testing.T) {
	if got := Neutral.Scale(0); got != 0 {
		t.Fatalf("expected black, got %v", got)
	}
	if got := Neutral.Scale(1); got != Neutral {
		t.Fatalf("expected neutral, got %v", got)
	}
}
