package doom

import (
	"fmt"
	"time"

	"github.com/harbdog/raycaster-go/geom"

	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/raycast"
)

// Options translates a loaded config into simulation options. caster
// overrides cfg.Caster when non-empty.
func Options(cfg config.DoomConfig, caster string, seed int64) (raycast.Options, error) {
	opt := raycast.DefaultOptions()

	if len(cfg.Map.Rows) > 0 {
		m, err := raycast.NewMap(cfg.Map.Rows)
		if err != nil {
			return opt, fmt.Errorf("doom: map: %w", err)
		}
		opt.Map = m
	}

	kind := cfg.Caster
	if caster != "" {
		kind = caster
	}
	c, err := raycast.NewCaster(kind, cfg.Map.MaxDepth)
	if err != nil {
		return opt, fmt.Errorf("doom: %w", err)
	}
	opt.Caster = c

	opt.Spawn = raycast.Player{
		Pos:   geom.Vector2{X: cfg.Player.SpawnX, Y: cfg.Player.SpawnY},
		Angle: cfg.Player.SpawnAngle,
	}
	opt.InitialHealth = cfg.Player.Health
	opt.InitialAmmo = cfg.Player.Ammo
	opt.MoveSpeed = cfg.Player.MoveSpeed
	opt.TurnSpeed = cfg.Player.TurnSpeed
	opt.Sensitivity = cfg.Player.Sensitivity
	opt.Slide = cfg.Player.Slide
	opt.FootstepChance = cfg.Player.FootstepChance
	opt.RequireCapture = cfg.Controls.RequireCapture

	opt.Combat = raycast.CombatOptions{
		HitRange:  cfg.Combat.HitRange,
		HitAngle:  cfg.Combat.HitAngle,
		Damage:    cfg.Combat.Damage,
		KillScore: cfg.Combat.KillScore,
	}
	opt.Sprites = raycast.SpriteOptions{
		RenderDepth:   cfg.Sprites.RenderDepth,
		Aspect:        cfg.Sprites.Aspect,
		FlashDuration: time.Duration(cfg.Sprites.FlashDurationMs) * time.Millisecond,
	}
	opt.Enemies = raycast.EnemyOptions{
		Aggressive:     cfg.Enemies.Aggressive,
		Health:         cfg.Enemies.Health,
		AggroRange:     cfg.Enemies.AggroRange,
		AttackRange:    cfg.Enemies.AttackRange,
		Speed:          cfg.Enemies.Speed,
		AttackDamage:   cfg.Enemies.AttackDamage,
		AttackCooldown: time.Duration(cfg.Enemies.AttackCooldownMs) * time.Millisecond,
	}

	opt.Roster = make([]raycast.Enemy, 0, len(cfg.Enemies.Roster))
	for _, s := range cfg.Enemies.Roster {
		opt.Roster = append(opt.Roster, raycast.Enemy{
			Pos:    geom.Vector2{X: s.X, Y: s.Y},
			Health: cfg.Enemies.Health,
			Sprite: s.Sprite,
		})
	}

	opt.Pace = config.NewPaceCurve(cfg.Difficulty).Pace
	opt.Seed = seed
	return opt, nil
}
