package raycast

import "testing"

func TestControlsHeldKeys(t *testing.T) {
	var c Controls
	c.KeyDown(KeyForward)
	c.KeyDown(KeyStrafeRight)
	c.KeyDown(KeyTurnLeft)

	in := c.Snapshot()
	if !in.Forward || !in.StrafeRight || in.Backward || in.StrafeLeft {
		t.Errorf("unexpected movement flags: %+v", in)
	}
	if in.Turn != -1 {
		t.Errorf("Turn = %d, expected -1", in.Turn)
	}

	// Held keys persist across snapshots until released.
	if !c.Snapshot().Forward {
		t.Error("forward should still be held")
	}
	c.KeyUp(KeyForward)
	if c.Snapshot().Forward {
		t.Error("forward should be released")
	}

	c.KeyDown(KeyTurnRight)
	if got := c.Snapshot().Turn; got != 0 {
		t.Errorf("both turn keys held: Turn = %d, expected 0", got)
	}
}

func TestControlsIgnoreUnknownKey(t *testing.T) {
	var c Controls
	c.KeyDown(Key(-1))
	c.KeyDown(keyCount)
	if c.Held(keyCount) || c.Held(Key(-1)) {
		t.Error("out of range keys must not register")
	}
}

func TestControlsFireIsEdgeTriggered(t *testing.T) {
	var c Controls

	c.FireDown()
	c.FireDown() // auto-repeat while held
	if !c.Snapshot().Fire {
		t.Fatal("first snapshot should carry the trigger pull")
	}
	if c.Snapshot().Fire {
		t.Error("holding the trigger must not fire again")
	}

	c.FireUp()
	c.FireDown()
	if !c.Snapshot().Fire {
		t.Error("release and press should fire again")
	}
}

func TestControlsFireBetweenTicks(t *testing.T) {
	// A click that goes down and up between two ticks still fires once.
	var c Controls
	c.FireDown()
	c.FireUp()
	if !c.Snapshot().Fire {
		t.Error("a quick click must not be lost")
	}
}

func TestControlsPointerRequiresCapture(t *testing.T) {
	var c Controls

	c.PointerMove(50)
	if got := c.Snapshot().LookDX; got != 0 {
		t.Errorf("uncaptured pointer moved view by %f", got)
	}

	c.SetCaptured(true)
	c.PointerMove(30)
	c.PointerMove(-10)
	in := c.Snapshot()
	if in.LookDX != 20 || !in.Captured {
		t.Errorf("LookDX = %f captured = %v, expected 20 true", in.LookDX, in.Captured)
	}
	if got := c.Snapshot().LookDX; got != 0 {
		t.Errorf("delta should be consumed, got %f", got)
	}

	c.PointerMove(15)
	c.SetCaptured(false)
	if got := c.Snapshot().LookDX; got != 0 {
		t.Errorf("release should drop pending motion, got %f", got)
	}
}

func TestControlsPointerClamp(t *testing.T) {
	var c Controls
	c.SetCaptured(true)
	for i := 0; i < 100; i++ {
		c.PointerMove(500)
	}
	if got := c.Snapshot().LookDX; got != MaxLookDelta {
		t.Errorf("LookDX = %f, expected clamp at %f", got, MaxLookDelta)
	}
	c.PointerMove(-1e9)
	if got := c.Snapshot().LookDX; got != -MaxLookDelta {
		t.Errorf("LookDX = %f, expected clamp at %f", got, -MaxLookDelta)
	}
}

func TestControlsStartAndReset(t *testing.T) {
	var c Controls
	c.SetCaptured(true)
	c.Start()
	c.KeyDown(KeyBackward)
	c.FireDown()

	c.Reset()
	in := c.Snapshot()
	if in.Start || in.Fire || in.Backward {
		t.Errorf("Reset should drop everything pending: %+v", in)
	}
	if !in.Captured {
		t.Error("Reset keeps capture")
	}

	c.Start()
	if !c.Snapshot().Start {
		t.Error("start request lost")
	}
	if c.Snapshot().Start {
		t.Error("start request should be consumed")
	}
}
