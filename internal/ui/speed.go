package ui

// Speed scales wall-clock time before it reaches a scene.
type Speed int

const (
	SpeedNormal Speed = iota
	SpeedDouble
	SpeedHalf
)

// Next cycles 1x -> 2x -> 0.5x -> 1x.
func (s Speed) Next() Speed {
	switch s {
	case SpeedNormal:
		return SpeedDouble
	case SpeedDouble:
		return SpeedHalf
	default:
		return SpeedNormal
	}
}

// Factor is the multiplier applied to frame deltas.
func (s Speed) Factor() float64 {
	switch s {
	case SpeedDouble:
		return 2
	case SpeedHalf:
		return 0.5
	default:
		return 1
	}
}

func (s Speed) String() string {
	switch s {
	case SpeedDouble:
		return "2x"
	case SpeedHalf:
		return "0.5x"
	default:
		return "1x"
	}
}

// Icon returns a visual indicator, empty at normal speed.
func (s Speed) Icon() string {
	if s == SpeedNormal {
		return ""
	}
	return "[" + s.String() + "]"
}
