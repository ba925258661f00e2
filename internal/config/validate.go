package config

import (
	"errors"
	"fmt"
)

// FieldError reports one invalid configuration value.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks the configuration for values that would produce degenerate
// terrain or physics (division by zero, negative widths, inverted ranges).
// All problems are reported together via errors.Join.
func (c CandleConfig) Validate() error {
	var v validator

	v.positiveInt("level.length", c.Level.Length)

	v.positive("physics.gravity", c.Physics.Gravity)
	v.positive("physics.max_fall_speed", c.Physics.MaxFallSpeed)
	v.positive("physics.jump_force", c.Physics.JumpForce)
	v.positive("physics.jump_scale", c.Physics.JumpScale)
	v.positiveInt("physics.max_jumps", c.Physics.MaxJumps)
	v.positive("physics.landing_band", c.Physics.LandingBand)
	v.positive("physics.fall_margin", c.Physics.FallMargin)
	for i, f := range c.Physics.JumpFalloff {
		v.positive(fmt.Sprintf("physics.jump_falloff[%d]", i), f)
	}

	v.positive("player.radius", c.Player.Radius)

	v.positive("platform.width_radii", c.Platform.WidthRadii)
	v.positive("platform.height", c.Platform.Height)

	t := c.Terrain
	v.positive("terrain.candle_width", t.CandleWidth)
	v.positive("terrain.min_gap", t.MinGap)
	v.ordered("terrain.max_gap", t.MinGap, t.MaxGap)
	v.positive("terrain.initial_height", t.InitialHeight)
	v.ordered("terrain.max_height", t.InitialHeight, t.MaxHeight)
	v.positive("terrain.initial_variation", t.InitialVariation)
	v.ordered("terrain.max_variation", t.InitialVariation, t.MaxVariation)
	v.positive("terrain.progression_rate", t.ProgressionRate)
	v.positive("terrain.easing", t.Easing)
	v.probability("terrain.outlier_chance", t.OutlierChance)
	v.positive("terrain.outlier_multiplier", t.OutlierMultiplier)
	v.positive("terrain.wick_min_multiplier", t.WickMinMultiplier)
	v.ordered("terrain.wick_max_multiplier", t.WickMinMultiplier, t.WickMaxMultiplier)
	v.nonNegative("terrain.wick_cap", t.WickCap)
	v.probability("terrain.group_chance", t.GroupChance)
	if t.MaxGroupSize < 2 {
		v.fail("terrain.max_group_size", fmt.Sprintf("must be at least 2, got %d", t.MaxGroupSize))
	}
	if t.GroupGapRatio <= 0 || t.GroupGapRatio > 1 {
		v.fail("terrain.group_gap_ratio", fmt.Sprintf("must be in (0, 1], got %g", t.GroupGapRatio))
	}

	v.positive("speed.base", c.Speed.Base)
	v.nonNegative("speed.gain", c.Speed.Gain)

	r := c.Reward
	if r.MinPerJump.IsNegative() {
		v.fail("reward.min_per_jump", "must not be negative")
	}
	if r.MaxPerJump.LessThan(r.MinPerJump) {
		v.fail("reward.max_per_jump", fmt.Sprintf("must be >= min_per_jump (%s), got %s", r.MinPerJump, r.MaxPerJump))
	}
	if r.Multiplier.IsNegative() {
		v.fail("reward.multiplier", "must not be negative")
	}
	if r.Precision < 0 || r.Precision > 18 {
		v.fail("reward.precision", fmt.Sprintf("must be in [0, 18], got %d", r.Precision))
	}

	if c.Camera.DeadZone < 0 || c.Camera.DeadZone >= 0.5 {
		v.fail("camera.dead_zone", fmt.Sprintf("must be in [0, 0.5), got %g", c.Camera.DeadZone))
	}
	v.probability("camera.tracking_speed", c.Camera.TrackingSpeed)

	v.positive("display.cell_width", c.Display.CellWidth)
	v.positive("display.cell_height", c.Display.CellHeight)

	v.probability("difficulty.initial_level", c.Difficulty.InitialLevel)
	switch c.Difficulty.Progression.Type {
	case "score", "none", "":
	default:
		v.fail("difficulty.progression.type", fmt.Sprintf("unknown type %q", c.Difficulty.Progression.Type))
	}
	if c.Difficulty.Progression.MaxAt < 0 {
		v.fail("difficulty.progression.max_at", "must not be negative")
	}

	return errors.Join(v.errs...)
}

type validator struct {
	errs []error
}

func (v *validator) fail(field, reason string) {
	v.errs = append(v.errs, &FieldError{Field: field, Reason: reason})
}

func (v *validator) positive(field string, val float64) {
	if !(val > 0) {
		v.fail(field, fmt.Sprintf("must be positive, got %g", val))
	}
}

func (v *validator) positiveInt(field string, val int) {
	if val <= 0 {
		v.fail(field, fmt.Sprintf("must be positive, got %d", val))
	}
}

func (v *validator) nonNegative(field string, val float64) {
	if !(val >= 0) {
		v.fail(field, fmt.Sprintf("must not be negative, got %g", val))
	}
}

func (v *validator) probability(field string, val float64) {
	if !(val >= 0 && val <= 1) {
		v.fail(field, fmt.Sprintf("must be in [0, 1], got %g", val))
	}
}

// ordered requires hi >= lo.
func (v *validator) ordered(field string, lo, hi float64) {
	if !(hi >= lo) {
		v.fail(field, fmt.Sprintf("must be >= %g, got %g", lo, hi))
	}
}
