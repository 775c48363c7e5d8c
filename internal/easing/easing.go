// Package easing maps normalized progress in [0,1] to normalized output.
// All functions are pure and clamp their input to [0,1].
package easing

import "math"

// Func remaps progress.
type Func func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return clamp01(t)
}

// InOutCubic accelerates through the first half and decelerates through the second.
func InOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// OutBounce settles at 1 with three decaying rebounds.
func OutBounce(t float64) float64 {
	const (
		n1 = 7.5625
		d1 = 2.75
	)
	t = clamp01(t)
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// OutElastic overshoots and oscillates into 1. Both endpoints are exact.
func OutElastic(t float64) float64 {
	const c4 = (2 * math.Pi) / 3
	t = clamp01(t)
	if t == 0 {
		return 0
	}
	if t == 1 {
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
}

// ByName resolves a curve name used in tuning files. Unknown names fall back
// to InOutCubic.
func ByName(name string) Func {
	switch name {
	case "linear":
		return Linear
	case "bounce":
		return OutBounce
	case "elastic":
		return OutElastic
	default:
		return InOutCubic
	}
}

func clamp01(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
