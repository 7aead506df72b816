// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade.
package config

import (
	"errors"
	"fmt"
)

// DoomConfig contains all configuration for the raycasting shooter.
type DoomConfig struct {
	Caster     string           `yaml:"caster"` // "dda" or "march"
	Player     DoomPlayer       `yaml:"player"`
	Combat     DoomCombat       `yaml:"combat"`
	Enemies    DoomEnemies      `yaml:"enemies"`
	Sprites    DoomSprites      `yaml:"sprites"`
	Controls   DoomControls     `yaml:"controls"`
	Map        DoomMap          `yaml:"map"`
	Audio      DoomAudio        `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DoomPlayer defines spawn and movement parameters.
type DoomPlayer struct {
	SpawnX         float64 `yaml:"spawn_x"`
	SpawnY         float64 `yaml:"spawn_y"`
	SpawnAngle     float64 `yaml:"spawn_angle"`
	Health         int     `yaml:"health"`
	Ammo           int     `yaml:"ammo"`
	MoveSpeed      float64 `yaml:"move_speed"`  // cells per tick
	TurnSpeed      float64 `yaml:"turn_speed"`  // radians per tick of keyboard look
	Sensitivity    float64 `yaml:"sensitivity"` // radians per pointer unit
	Slide          bool    `yaml:"slide"`
	FootstepChance float64 `yaml:"footstep_chance"`
}

// DoomCombat defines the hitscan weapon.
type DoomCombat struct {
	HitRange  float64 `yaml:"hit_range"`
	HitAngle  float64 `yaml:"hit_angle"`
	Damage    int     `yaml:"damage"`
	KillScore int     `yaml:"kill_score"`
}

// DoomEnemies defines enemy behavior.
type DoomEnemies struct {
	Aggressive       bool        `yaml:"aggressive"`
	Health           int         `yaml:"health"`
	AggroRange       float64     `yaml:"aggro_range"`
	AttackRange      float64     `yaml:"attack_range"`
	Speed            float64     `yaml:"speed"`
	AttackDamage     int         `yaml:"attack_damage"`
	AttackCooldownMs int         `yaml:"attack_cooldown_ms"`
	Roster           []DoomSpawn `yaml:"roster"`
}

// DoomSpawn places one enemy.
type DoomSpawn struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Sprite int     `yaml:"sprite"`
}

// DoomSprites defines billboard projection.
type DoomSprites struct {
	RenderDepth     float64 `yaml:"render_depth"`
	Aspect          float64 `yaml:"aspect"`
	FlashDurationMs int     `yaml:"flash_duration_ms"`
}

// DoomControls defines input policy.
type DoomControls struct {
	RequireCapture bool `yaml:"require_capture"`
}

// DoomMap holds an optional custom arena. Empty rows select the built-in map.
type DoomMap struct {
	Rows     [][]int `yaml:"rows"`
	MaxDepth float64 `yaml:"max_depth"`
}

// DoomAudio defines sound output.
type DoomAudio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to enemy speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
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

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate rejects values the simulation cannot run with.
func (c DoomConfig) Validate() error {
	bad := func(field string, v any) error {
		return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, field, v)
	}

	switch c.Caster {
	case "", "dda", "march":
	default:
		return bad("caster", c.Caster)
	}
	if c.Player.Health <= 0 {
		return bad("player.health", c.Player.Health)
	}
	if c.Player.Ammo < 0 {
		return bad("player.ammo", c.Player.Ammo)
	}
	if c.Player.MoveSpeed <= 0 || c.Player.MoveSpeed >= 1 {
		return bad("player.move_speed", c.Player.MoveSpeed)
	}
	if c.Player.FootstepChance < 0 || c.Player.FootstepChance > 1 {
		return bad("player.footstep_chance", c.Player.FootstepChance)
	}
	if c.Combat.HitRange <= 0 {
		return bad("combat.hit_range", c.Combat.HitRange)
	}
	if c.Combat.HitAngle <= 0 {
		return bad("combat.hit_angle", c.Combat.HitAngle)
	}
	if c.Combat.Damage <= 0 {
		return bad("combat.damage", c.Combat.Damage)
	}
	if c.Enemies.Health <= 0 {
		return bad("enemies.health", c.Enemies.Health)
	}
	if c.Enemies.Speed < 0 || c.Enemies.Speed >= 1 {
		return bad("enemies.speed", c.Enemies.Speed)
	}
	if c.Enemies.AttackCooldownMs < 0 {
		return bad("enemies.attack_cooldown_ms", c.Enemies.AttackCooldownMs)
	}
	if c.Sprites.RenderDepth <= 0 {
		return bad("sprites.render_depth", c.Sprites.RenderDepth)
	}
	if c.Sprites.Aspect <= 0 {
		return bad("sprites.aspect", c.Sprites.Aspect)
	}
	if c.Map.MaxDepth < 0 {
		return bad("map.max_depth", c.Map.MaxDepth)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return bad("audio.volume", c.Audio.Volume)
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		return bad("difficulty.initial_level", c.Difficulty.InitialLevel)
	}
	switch c.Difficulty.Progression.Type {
	case "", "score", "time", "none":
	default:
		return bad("difficulty.progression.type", c.Difficulty.Progression.Type)
	}
	return nil
}
