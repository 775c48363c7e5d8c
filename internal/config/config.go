// Package config loads the tuning file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/olivier-w/shadows/internal/deck"
	"github.com/olivier-w/shadows/internal/easing"
	"github.com/olivier-w/shadows/internal/flame"
	"github.com/olivier-w/shadows/internal/scheduler"
	"github.com/olivier-w/shadows/internal/stage"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "SHADOWS_"

// ErrInvalid marks a tuning value outside its allowed range.
var ErrInvalid = errors.New("invalid tuning")

type Tuning struct {
	Stacks          int     `yaml:"stacks" env:"STACKS"`
	Cards           int     `yaml:"cards" env:"CARDS"`
	MoveIntervalMs  float64 `yaml:"move_interval_ms" env:"MOVE_INTERVAL_MS"`
	TransitionMs    float64 `yaml:"transition_ms" env:"TRANSITION_MS"`
	GraceMs         float64 `yaml:"grace_ms" env:"GRACE_MS"`
	SweepIntervalMs float64 `yaml:"sweep_interval_ms" env:"SWEEP_INTERVAL_MS"`
	StuckAfterMs    float64 `yaml:"stuck_after_ms" env:"STUCK_AFTER_MS"`
	Easing          string  `yaml:"easing" env:"EASING"`

	FrameMs float64 `yaml:"frame_ms" env:"FRAME_MS"`
	FPS     int     `yaml:"fps" env:"FPS"`
	Seed    int64   `yaml:"seed" env:"SEED"`

	Flame    FlameTuning   `yaml:"flame" envPrefix:"FLAME_"`
	Sparkles SparkleTuning `yaml:"sparkles" envPrefix:"SPARKLE_"`

	LogFile  string `yaml:"log_file" env:"LOG_FILE"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	CuePath  string `yaml:"cue_path" env:"CUE_PATH"`
	Sound    bool   `yaml:"sound" env:"SOUND"`
}

type FlameTuning struct {
	Capacity       int     `yaml:"capacity" env:"CAPACITY"`
	BurstAllowance int     `yaml:"burst_allowance" env:"BURST_ALLOWANCE"`
	ExtraChance    float64 `yaml:"extra_chance" env:"EXTRA_CHANCE"`
	BurstChance    float64 `yaml:"burst_chance" env:"BURST_CHANCE"`
}

type SparkleTuning struct {
	Count    int `yaml:"count" env:"COUNT"`
	Capacity int `yaml:"capacity" env:"CAPACITY"`
}

// Default returns the built-in tuning.
func Default() Tuning {
	return Tuning{
		Stacks:          8,
		Cards:           144,
		MoveIntervalMs:  1000,
		TransitionMs:    2000,
		GraceMs:         1000,
		SweepIntervalMs: 5000,
		StuckAfterMs:    6000,
		Easing:          "cubic",
		FrameMs:         16.67,
		FPS:             60,
		Flame: FlameTuning{
			Capacity:       10,
			BurstAllowance: 3,
			ExtraChance:    0.4,
			BurstChance:    0.1,
		},
		Sparkles: SparkleTuning{Count: 8, Capacity: 24},
		LogLevel: "info",
	}
}

// Load starts from Default, applies the YAML file at path when path is not
// empty, then SHADOWS_* environment overrides, and validates the result.
func Load(path string) (Tuning, error) {
	t := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return t, fmt.Errorf("read tuning: %w", err)
		}
		if err := yaml.Unmarshal(raw, &t); err != nil {
			return t, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&t, env.Options{Prefix: EnvPrefix}); err != nil {
		return t, fmt.Errorf("parse env: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Validate reports every out-of-range field, each wrapping ErrInvalid.
func (t Tuning) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	if t.Stacks <= 0 {
		bad("stacks must be positive, got %d", t.Stacks)
	}
	if t.Cards < 0 {
		bad("cards must not be negative, got %d", t.Cards)
	}
	if t.MoveIntervalMs <= 0 {
		bad("move_interval_ms must be positive, got %v", t.MoveIntervalMs)
	}
	if t.TransitionMs < 0 {
		bad("transition_ms must not be negative, got %v", t.TransitionMs)
	}
	if t.GraceMs < 0 {
		bad("grace_ms must not be negative, got %v", t.GraceMs)
	}
	if t.SweepIntervalMs < 0 {
		bad("sweep_interval_ms must not be negative, got %v", t.SweepIntervalMs)
	}
	if t.StuckAfterMs < t.TransitionMs {
		bad("stuck_after_ms %v is shorter than transition_ms %v", t.StuckAfterMs, t.TransitionMs)
	}
	if t.FrameMs <= 0 {
		bad("frame_ms must be positive, got %v", t.FrameMs)
	}
	if t.FPS <= 0 {
		bad("fps must be positive, got %d", t.FPS)
	}
	if t.Flame.Capacity <= 0 {
		bad("flame.capacity must be positive, got %d", t.Flame.Capacity)
	}
	if t.Flame.BurstAllowance < 0 {
		bad("flame.burst_allowance must not be negative, got %d", t.Flame.BurstAllowance)
	}
	for name, p := range map[string]float64{"flame.extra_chance": t.Flame.ExtraChance, "flame.burst_chance": t.Flame.BurstChance} {
		if p < 0 || p > 1 {
			bad("%s must be within [0,1], got %v", name, p)
		}
	}
	if t.Sparkles.Count < 0 {
		bad("sparkles.count must not be negative, got %d", t.Sparkles.Count)
	}
	if t.Sparkles.Capacity <= 0 {
		bad("sparkles.capacity must be positive, got %d", t.Sparkles.Capacity)
	}
	switch t.Easing {
	case "", "linear", "cubic", "bounce", "elastic":
	default:
		bad("easing %q is not one of linear, cubic, bounce, elastic", t.Easing)
	}
	return errors.Join(errs...)
}

// StageOptions maps the tuning onto the cards scene.
func (t Tuning) StageOptions() stage.Options {
	return stage.Options{
		Stacks: t.Stacks,
		Cards:  t.Cards,
		Motion: deck.Motion{GraceMs: t.GraceMs, Ease: easing.ByName(t.Easing)},
		Scheduler: scheduler.Config{
			IntervalMs: t.MoveIntervalMs,
			DurationMs: t.TransitionMs,
			Sparkles:   t.Sparkles.Count,
		},
		SparkleCapacity: t.Sparkles.Capacity,
		SweepIntervalMs: t.SweepIntervalMs,
		StuckAfterMs:    t.StuckAfterMs,
	}
}

// FlameConfig maps the tuning onto the flame emitter.
func (t Tuning) FlameConfig() flame.Config {
	cfg := flame.FlameConfig()
	cfg.Capacity = t.Flame.Capacity
	cfg.BurstAllowance = t.Flame.BurstAllowance
	cfg.ExtraChance = t.Flame.ExtraChance
	cfg.BurstChance = t.Flame.BurstChance
	cfg.FPS = t.FPS
	return cfg
}
