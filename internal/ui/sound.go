package ui

// SoundMode is whether the landing cue plays.
type SoundMode int

const (
	SoundOff SoundMode = iota
	SoundOn
)

// Toggle switches between sound on and off.
func (s SoundMode) Toggle() SoundMode {
	if s == SoundOn {
		return SoundOff
	}
	return SoundOn
}

// Icon returns a visual indicator for the sound mode.
func (s SoundMode) Icon() string {
	if s == SoundOn {
		return "[sound]"
	}
	return ""
}
