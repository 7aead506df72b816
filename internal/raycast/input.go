package raycast

// Key is a held movement control.
type Key int

const (
	KeyForward Key = iota
	KeyBackward
	KeyStrafeLeft
	KeyStrafeRight
	KeyTurnLeft
	KeyTurnRight
	keyCount
)

// MaxLookDelta bounds the pointer motion accumulated between two snapshots.
const MaxLookDelta = 2000.0

// Input is the per-tick control snapshot consumed by Simulation.Tick.
type Input struct {
	Forward     bool
	Backward    bool
	StrafeLeft  bool
	StrafeRight bool
	Turn        int     // -1 left, +1 right, from keyboard look
	LookDX      float64 // pointer motion since the last tick
	Fire        bool    // fire was pressed since the last tick
	Start       bool    // start/restart was requested since the last tick
	Captured    bool    // the host owns the pointer
}

// Controls turns discrete host events into Input snapshots. Hosts call the
// event methods from their event loop and Snapshot once per tick.
type Controls struct {
	held     [keyCount]bool
	captured bool
	lookDX   float64
	fireDown bool
	fire     bool
	start    bool
}

// KeyDown marks a movement key as held.
func (c *Controls) KeyDown(k Key) {
	if k >= 0 && k < keyCount {
		c.held[k] = true
	}
}

// KeyUp releases a movement key.
func (c *Controls) KeyUp(k Key) {
	if k >= 0 && k < keyCount {
		c.held[k] = false
	}
}

// Held reports whether a movement key is down.
func (c *Controls) Held(k Key) bool {
	return k >= 0 && k < keyCount && c.held[k]
}

// SetCaptured records pointer capture engagement. Releasing capture drops
// any motion that has not been consumed yet.
func (c *Controls) SetCaptured(on bool) {
	c.captured = on
	if !on {
		c.lookDX = 0
	}
}

// Captured reports whether the pointer is captured.
func (c *Controls) Captured() bool {
	return c.captured
}

// PointerMove accumulates horizontal motion while the pointer is captured.
func (c *Controls) PointerMove(dx float64) {
	if !c.captured {
		return
	}
	c.lookDX += dx
	if c.lookDX > MaxLookDelta {
		c.lookDX = MaxLookDelta
	} else if c.lookDX < -MaxLookDelta {
		c.lookDX = -MaxLookDelta
	}
}

// FireDown registers a trigger press. Holding the trigger fires once.
func (c *Controls) FireDown() {
	if !c.fireDown {
		c.fire = true
	}
	c.fireDown = true
}

// FireUp releases the trigger.
func (c *Controls) FireUp() {
	c.fireDown = false
}

// Start requests a start or restart on the next tick.
func (c *Controls) Start() {
	c.start = true
}

// Reset releases every key and drops pending events. Capture is kept.
func (c *Controls) Reset() {
	c.held = [keyCount]bool{}
	c.lookDX = 0
	c.fireDown = false
	c.fire = false
	c.start = false
}

// Snapshot returns the input for one tick and consumes the pointer delta
// and the fire/start edges.
func (c *Controls) Snapshot() Input {
	in := Input{
		Forward:     c.held[KeyForward],
		Backward:    c.held[KeyBackward],
		StrafeLeft:  c.held[KeyStrafeLeft],
		StrafeRight: c.held[KeyStrafeRight],
		LookDX:      c.lookDX,
		Fire:        c.fire,
		Start:       c.start,
		Captured:    c.captured,
	}
	if c.held[KeyTurnLeft] {
		in.Turn--
	}
	if c.held[KeyTurnRight] {
		in.Turn++
	}

	c.lookDX = 0
	c.fire = false
	c.start = false
	return in
}
