package util

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		-time.Second:                   "0:00",
		0:                              "0:00",
		59 * time.Second:               "0:59",
		61 * time.Second:               "1:01",
		10*time.Minute + 5*time.Second: "10:05",
	}
	for d, want := range cases {
		if got := FormatDuration(d); got != want {
			t.Fatalf("expected %q for %v, got %q", want, d, got)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(125_400); got != "2:05" {
		t.Fatalf("expected 2:05, got %q", got)
	}
}

func TestPlural(t *testing.T) {
	if got := Plural(1, "card"); got != "1 card" {
		t.Fatalf("expected singular, got %q", got)
	}
	if got := Plural(3, "card"); got != "3 cards" {
		t.Fatalf("expected plural, got %q", got)
	}
}
