package config

import (
	_ "embed"

	"github.com/shopspring/decimal"
)

//go:embed defaults/candles.yaml
var defaultCandlesYAML []byte

// DefaultCandleConfig returns the hard-coded Candle Jumper configuration.
// It matches defaults/candles.yaml and is used when the embedded file cannot be parsed.
func DefaultCandleConfig() CandleConfig {
	return CandleConfig{
		Level: LevelConfig{
			Length: 1000,
		},
		Physics: PhysicsConfig{
			Gravity:      0.4,
			MaxFallSpeed: 6,
			JumpForce:    12,
			JumpScale:    1.0,
			JumpFalloff:  []float64{1.0, 0.9, 0.8},
			MaxJumps:     3,
			LandingBand:  10,
			FallMargin:   200,
		},
		Player: PlayerConfig{
			Radius: 15,
		},
		Platform: PlatformConfig{
			WidthRadii: 10,
			Offset:     100,
			Height:     10,
		},
		Terrain: TerrainConfig{
			CandleWidth:       20,
			MinGap:            5,
			MaxGap:            200,
			InitialHeight:     50,
			MaxHeight:         300,
			InitialVariation:  30,
			MaxVariation:      150,
			ProgressionRate:   0.5,
			Easing:            0.7,
			OutlierChance:     0.03,
			OutlierMultiplier: 3,
			WickMinMultiplier: 1,
			WickMaxMultiplier: 3,
			WickCap:           0.5,
			GroupChance:       0.2,
			MaxGroupSize:      5,
			GroupGapRatio:     0.3,
		},
		Speed: SpeedConfig{
			Base: 3.0,
			Gain: 3.0,
		},
		Reward: RewardConfig{
			Symbol:     "$MUL",
			MinPerJump: decimal.RequireFromString("0.004"),
			MaxPerJump: decimal.RequireFromString("0.020"),
			Multiplier: decimal.NewFromInt(4),
			Precision:  6,
		},
		Camera: CameraConfig{
			DeadZone:      0.3,
			TrackingSpeed: 0.2,
		},
		Display: DisplayConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "candles", "candles_endless":
		return defaultCandlesYAML
	default:
		return nil
	}
}
