package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCandles loads Candle Jumper configuration and validates it.
// Search order: customPath -> ~/.candlejump/configs/candles.yaml -> ./configs/candles.yaml -> embedded default.
// Files only need to list the keys they override; everything else keeps its default.
func LoadCandles(customPath string) (CandleConfig, error) {
	cfg, err := loadCandles(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadCandles(customPath string) (CandleConfig, error) {
	cfg := baseCandleConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("candles.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			user := cfg
			if err := yaml.Unmarshal(data, &user); err == nil {
				return user, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "candles.yaml")); err == nil {
		local := cfg
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, nil
		}
	}

	return cfg, nil
}

// baseCandleConfig parses the embedded default YAML, falling back to the
// hard-coded defaults if the embed is unusable.
func baseCandleConfig() CandleConfig {
	cfg := DefaultCandleConfig()
	var embedded CandleConfig
	if err := yaml.Unmarshal(defaultCandlesYAML, &embedded); err != nil {
		return cfg
	}
	return embedded
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".candlejump", "configs", filename)
}

// ApplyCandlePreset modifies the config based on a difficulty preset.
func ApplyCandlePreset(cfg *CandleConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Physics.FallMargin *= 1.5
		cfg.Physics.MaxJumps = max(cfg.Physics.MaxJumps, 3)
	case DifficultyHard:
		cfg.Physics.MaxJumps = min(cfg.Physics.MaxJumps, 2)
	}
}
