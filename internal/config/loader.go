package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDoom loads the shooter configuration.
// Search order: customPath -> ~/.arcade/configs/doom.yaml -> ./configs/doom.yaml -> embedded default
//
// Files are layered over the defaults, so a file only needs the keys it
// changes. The result is validated.
func LoadDoom(customPath string) (DoomConfig, error) {
	cfg, err := loadDoom(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadDoom(customPath string) (DoomConfig, error) {
	cfg := DefaultDoomConfig()

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
	if userCfgPath := userConfigPath("doom.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultDoomConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/doom.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultDoomConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultDoomYAML, &cfg); err != nil {
		return DefaultDoomConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyDoomPreset modifies the config based on a difficulty preset.
func ApplyDoomPreset(cfg *DoomConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.Ammo = 50
		cfg.Enemies.AttackDamage = 5
		cfg.Enemies.AggroRange = 5
	case DifficultyHard:
		cfg.Player.Ammo = 20
		cfg.Enemies.AttackDamage = 20
		cfg.Enemies.AggroRange = 8
	}
}
