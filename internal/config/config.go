// Package config provides YAML-based game configuration loading and
// difficulty management for Candle Jumper.
package config

import "github.com/shopspring/decimal"

// CandleConfig contains all configuration for the Candle Jumper game.
// Lengths are world units; one terminal cell covers Display.CellWidth by
// Display.CellHeight units. Per-tick quantities are for a nominal tick.
type CandleConfig struct {
	Level      LevelConfig      `yaml:"level"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Platform   PlatformConfig   `yaml:"platform"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Speed      SpeedConfig      `yaml:"speed"`
	Reward     RewardConfig     `yaml:"reward"`
	Camera     CameraConfig     `yaml:"camera"`
	Display    DisplayConfig    `yaml:"display"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// LevelConfig defines the length of a level.
type LevelConfig struct {
	Length int `yaml:"length"` // Segments to pass for victory; also the difficulty cap
}

// PhysicsConfig defines player physics.
type PhysicsConfig struct {
	Gravity      float64   `yaml:"gravity"`
	MaxFallSpeed float64   `yaml:"max_fall_speed"`
	JumpForce    float64   `yaml:"jump_force"`
	JumpScale    float64   `yaml:"jump_scale"`   // Touch drafts used 0.8
	JumpFalloff  []float64 `yaml:"jump_falloff"` // Multiplier per charge: 1st, 2nd, 3rd...
	MaxJumps     int       `yaml:"max_jumps"`
	LandingBand  float64   `yaml:"landing_band"` // Depth of the landable band below a body top
	FallMargin   float64   `yaml:"fall_margin"`  // Distance below the lowest body that ends the run
}

// PlayerConfig defines the player sprite.
type PlayerConfig struct {
	Radius float64 `yaml:"radius"`
}

// PlatformConfig defines the one-shot start ledge.
type PlatformConfig struct {
	WidthRadii float64 `yaml:"width_radii"` // Width as a multiple of the player radius
	Offset     float64 `yaml:"offset"`      // Distance below the viewport middle
	Height     float64 `yaml:"height"`
}

// TerrainConfig defines candlestick generation.
type TerrainConfig struct {
	CandleWidth       float64 `yaml:"candle_width"`
	MinGap            float64 `yaml:"min_gap"`
	MaxGap            float64 `yaml:"max_gap"` // Upper gap bound at full progress
	InitialHeight     float64 `yaml:"initial_height"`
	MaxHeight         float64 `yaml:"max_height"`
	InitialVariation  float64 `yaml:"initial_variation"`
	MaxVariation      float64 `yaml:"max_variation"`
	ProgressionRate   float64 `yaml:"progression_rate"` // Fraction of the level at which the size envelope peaks
	Easing            float64 `yaml:"easing"`           // Exponent applied to the size progress
	OutlierChance     float64 `yaml:"outlier_chance"`
	OutlierMultiplier float64 `yaml:"outlier_multiplier"`
	WickMinMultiplier float64 `yaml:"wick_min_multiplier"`
	WickMaxMultiplier float64 `yaml:"wick_max_multiplier"`
	WickCap           float64 `yaml:"wick_cap"` // Drawn wick length as a fraction of body height
	GroupChance       float64 `yaml:"group_chance"`
	MaxGroupSize      int     `yaml:"max_group_size"`
	GroupGapRatio     float64 `yaml:"group_gap_ratio"`
}

// SpeedConfig defines world scroll speed.
type SpeedConfig struct {
	Base float64 `yaml:"base"`
	Gain float64 `yaml:"gain"` // Added to Base at full progress
}

// RewardConfig defines the cosmetic per-landing reward.
type RewardConfig struct {
	Symbol     string          `yaml:"symbol"`
	MinPerJump decimal.Decimal `yaml:"min_per_jump"`
	MaxPerJump decimal.Decimal `yaml:"max_per_jump"`
	Multiplier decimal.Decimal `yaml:"multiplier"`
	Precision  int32           `yaml:"precision"` // Decimal places kept per landing
}

// CameraConfig defines vertical camera smoothing.
type CameraConfig struct {
	DeadZone      float64 `yaml:"dead_zone"`      // Band size as a fraction of viewport height
	TrackingSpeed float64 `yaml:"tracking_speed"` // Fraction of the overshoot corrected per tick
}

// DisplayConfig maps world units to terminal cells.
type DisplayConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases with score.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Score at which max difficulty is reached; 0 = level length
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
