package raycast

import (
	"math"
	"testing"

	"github.com/harbdog/raycaster-go/geom"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestIntegrateForward(t *testing.T) {
	m := DefaultMap()
	p := Player{Pos: geom.Vector2{X: 5.5, Y: 5.5}, Angle: 0}

	got, moved := Integrate(p, Input{Forward: true}, m, 0.05)
	if !moved || !near(got.Pos.X, 5.55) || !near(got.Pos.Y, 5.5) {
		t.Errorf("forward: got %+v moved=%v", got.Pos, moved)
	}

	got, _ = Integrate(p, Input{Backward: true}, m, 0.05)
	if !near(got.Pos.X, 5.45) {
		t.Errorf("backward: got %+v", got.Pos)
	}
}

func TestIntegrateStrafe(t *testing.T) {
	m := DefaultMap()
	p := Player{Pos: geom.Vector2{X: 5.5, Y: 5.5}, Angle: 0}

	// Facing east, left is -y and right is +y.
	left, _ := Integrate(p, Input{StrafeLeft: true}, m, 0.05)
	if !near(left.Pos.Y, 5.45) || !near(left.Pos.X, 5.5) {
		t.Errorf("strafe left: got %+v", left.Pos)
	}
	right, _ := Integrate(p, Input{StrafeRight: true}, m, 0.05)
	if !near(right.Pos.Y, 5.55) {
		t.Errorf("strafe right: got %+v", right.Pos)
	}
}

func TestIntegrateOpposingKeysCancel(t *testing.T) {
	m := DefaultMap()
	p := Player{Pos: geom.Vector2{X: 5.5, Y: 5.5}, Angle: 1.1}
	got, moved := Integrate(p, Input{Forward: true, Backward: true}, m, 0.05)
	if moved || got != p {
		t.Errorf("forward+backward should not move, got %+v", got.Pos)
	}
}

func TestIntegrateRejectsWholeStep(t *testing.T) {
	m := DefaultMap()
	// Just inside the west boundary, facing it.
	p := Player{Pos: geom.Vector2{X: 1.02, Y: 1.5}, Angle: math.Pi}

	got, moved := Integrate(p, Input{Forward: true}, m, 0.05)
	if moved || got != p {
		t.Errorf("step into the wall should be rejected, got %+v", got.Pos)
	}

	// Diagonal into the corner: Integrate does not slide.
	p = Player{Pos: geom.Vector2{X: 1.02, Y: 1.5}, Angle: math.Pi * 3 / 4}
	got, moved = Integrate(p, Input{Forward: true}, m, 0.05)
	if moved || got != p {
		t.Errorf("diagonal step into the wall should be rejected, got %+v", got.Pos)
	}

	// Moving away is allowed.
	p.Angle = 0
	if _, moved := Integrate(p, Input{Forward: true}, m, 0.05); !moved {
		t.Error("step away from the wall should succeed")
	}
}

func TestSlideIntegrateAlongWall(t *testing.T) {
	m := DefaultMap()
	// Heading north-west against the west wall: X is blocked, Y slides.
	p := Player{Pos: geom.Vector2{X: 1.02, Y: 5.5}, Angle: -math.Pi * 3 / 4}

	got, moved := SlideIntegrate(p, Input{Forward: true}, m, 0.05)
	if !moved {
		t.Fatal("slide should move along the wall")
	}
	if got.Pos.X != p.Pos.X {
		t.Errorf("X changed to %f, expected %f", got.Pos.X, p.Pos.X)
	}
	if !(got.Pos.Y < p.Pos.Y) {
		t.Errorf("Y should decrease, got %f", got.Pos.Y)
	}
}

func TestMovementNeverEntersWall(t *testing.T) {
	m := DefaultMap()
	for _, integrate := range []func(Player, Input, *Map, float64) (Player, bool){Integrate, SlideIntegrate} {
		p := Player{Pos: geom.Vector2{X: 5.5, Y: 4.5}, Angle: 0.2}
		for i := 0; i < 2000; i++ {
			p.Angle = NormalizeAngle(p.Angle + 0.013)
			p, _ = integrate(p, Input{Forward: true, StrafeLeft: i%3 == 0}, m, 0.05)
			if m.IsWall(p.Pos.X, p.Pos.Y) {
				t.Fatalf("step %d: player inside a wall at %+v", i, p.Pos)
			}
		}
	}
}
