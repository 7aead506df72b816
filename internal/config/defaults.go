package config

import (
	_ "embed"
)

//go:embed defaults/doom.yaml
var defaultDoomYAML []byte

// DefaultDoomConfig returns the default shooter configuration.
func DefaultDoomConfig() DoomConfig {
	return DoomConfig{
		Caster: "dda",
		Player: DoomPlayer{
			SpawnX:         2,
			SpawnY:         2,
			SpawnAngle:     0,
			Health:         100,
			Ammo:           30,
			MoveSpeed:      0.05,
			TurnSpeed:      0.04,
			Sensitivity:    0.003,
			Slide:          false,
			FootstepChance: 0.1,
		},
		Combat: DoomCombat{
			HitRange:  5,
			HitAngle:  0.3,
			Damage:    50,
			KillScore: 100,
		},
		Enemies: DoomEnemies{
			Aggressive:       true,
			Health:           100,
			AggroRange:       6,
			AttackRange:      0.8,
			Speed:            0.02,
			AttackDamage:     10,
			AttackCooldownMs: 1000,
			Roster: []DoomSpawn{
				{X: 8, Y: 8, Sprite: 0},
				{X: 12, Y: 4, Sprite: 1},
				{X: 6, Y: 12, Sprite: 0},
			},
		},
		Sprites: DoomSprites{
			RenderDepth:     10,
			Aspect:          0.8,
			FlashDurationMs: 200,
		},
		Controls: DoomControls{
			RequireCapture: true,
		},
		Map: DoomMap{
			MaxDepth: 16,
		},
		Audio: DoomAudio{
			Enabled: true,
			Volume:  0.8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "doom", "doom_classic":
		return defaultDoomYAML
	default:
		return nil
	}
}
