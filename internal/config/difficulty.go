package config

import "math"

// DifficultyManager turns the score into difficulty levels in [0, 1].
// Every level it returns is a non-decreasing function of score that saturates
// once score reaches the progression cap.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
	levelLength  int
}

// NewDifficultyManager creates a new difficulty manager. levelLength is used as
// the progression cap when cfg.Progression.MaxAt is zero.
func NewDifficultyManager(cfg DifficultyConfig, levelLength int) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
		levelLength:  levelLength,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// MaxAt returns the score at which linear progression saturates.
func (d *DifficultyManager) MaxAt() int {
	if d.cfg.Progression.MaxAt > 0 {
		return d.cfg.Progression.MaxAt
	}
	return max(d.levelLength, 1)
}

// progress returns clamp(score / (MaxAt * rate), 0, 1).
func (d *DifficultyManager) progress(score int, rate float64) float64 {
	span := float64(d.MaxAt()) * rate
	if span <= 0 {
		return 1
	}
	return clampF(float64(score)/span, 0.0, 1.0)
}

// scale lifts a raw progress value by the initial level.
func (d *DifficultyManager) scale(p float64) float64 {
	return d.initialLevel + p*(1.0-d.initialLevel)
}

// Level returns the linear difficulty level for the given score.
func (d *DifficultyManager) Level(score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	return d.scale(d.progress(score, 1.0))
}

// EasedLevel returns the size-envelope level: progress over rate*MaxAt raised
// to exponent. An exponent below 1 ramps up quickly and flattens near the cap.
func (d *DifficultyManager) EasedLevel(score int, rate, exponent float64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	p := d.progress(score, rate)
	if exponent > 0 {
		p = math.Pow(p, exponent)
	}
	return d.scale(p)
}

// Speed returns the scroll speed: base at level 0, base+gain at level 1.
func (d *DifficultyManager) Speed(base, gain float64, score int) float64 {
	return base + gain*d.Level(score)
}

// MaxGap returns the current upper bound of the random gap range.
// It widens from minGap towards maxGap as the level rises.
func (d *DifficultyManager) MaxGap(minGap, maxGap float64, score int) float64 {
	return minGap + (maxGap-minGap)*d.Level(score)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
