package doom

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Phase    string
	PlayerX  float64
	PlayerY  float64
	Angle    float64
	Health   int
	Ammo     int
	Score    int
	Enemies  int
	Captured bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	st := g.sim.State()
	return Snapshot{
		Tick:     g.tick,
		Phase:    st.Phase.String(),
		PlayerX:  st.Player.Pos.X,
		PlayerY:  st.Player.Pos.Y,
		Angle:    st.Player.Angle,
		Health:   st.Health,
		Ammo:     st.Ammo,
		Score:    st.Score,
		Enemies:  st.LiveEnemies(),
		Captured: g.controls.Captured(),
	}
}
