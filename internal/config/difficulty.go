package config

// PaceCurve turns a game's progress into an enemy speed scale. The level
// rises from the configured initial level to 1 as the score (or the tick
// count) approaches max_at; the pace is 1 + level*speed_multiplier.
type PaceCurve struct {
	mode    string // "score", "time" or "" when progression is off
	maxAt   float64
	initial float64
	gain    float64
}

// NewPaceCurve builds the curve described by cfg.
func NewPaceCurve(cfg DifficultyConfig) PaceCurve {
	c := PaceCurve{
		maxAt:   max(float64(cfg.Progression.MaxAt), 1),
		initial: unit(cfg.InitialLevel),
		gain:    cfg.Scaling.SpeedMultiplier,
	}
	if cfg.Enabled {
		switch cfg.Progression.Type {
		case "score", "time":
			c.mode = cfg.Progression.Type
		}
	}
	return c
}

// Progressive reports whether the level moves at all.
func (c PaceCurve) Progressive() bool {
	return c.mode != ""
}

// Level is the difficulty in [0, 1] after score points and ticks.
func (c PaceCurve) Level(score int, ticks uint64) float64 {
	var p float64
	switch c.mode {
	case "score":
		p = float64(score) / c.maxAt
	case "time":
		p = float64(ticks) / c.maxAt
	default:
		return c.initial
	}
	return c.initial + unit(p)*(1-c.initial)
}

// Pace is the enemy speed scale after score points and ticks.
func (c PaceCurve) Pace(score int, ticks uint64) float64 {
	return 1 + c.Level(score, ticks)*c.gain
}

// WithInitial returns the curve starting at level, clamped to [0, 1].
func (c PaceCurve) WithInitial(level float64) PaceCurve {
	c.initial = unit(level)
	return c
}

func unit(v float64) float64 {
	return min(max(v, 0), 1)
}
