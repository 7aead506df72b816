package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionForward            // W, Up arrow - move along the view direction
	ActionBackward           // S, Down arrow - move against the view direction
	ActionStrafeLeft         // A - sidestep left
	ActionStrafeRight        // D - sidestep right
	ActionTurnLeft           // Left arrow - keyboard look
	ActionTurnRight          // Right arrow - keyboard look
	ActionFire               // Mouse click, F, Enter - shoot
	ActionStart              // Space - start or restart
	ActionCapture            // M - toggle mouse look capture
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionForward:
		return "Forward"
	case ActionBackward:
		return "Backward"
	case ActionStrafeLeft:
		return "StrafeLeft"
	case ActionStrafeRight:
		return "StrafeRight"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionFire:
		return "Fire"
	case ActionStart:
		return "Start"
	case ActionCapture:
		return "Capture"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input for a single simulation tick.
// Movement actions are held state; Fire and Start are read as edges by games.
type InputFrame struct {
	Actions map[Action]bool

	// Look is the horizontal pointer delta accumulated since the last tick.
	Look float64

	// Captured reports whether the host currently owns the pointer.
	Captured bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Unset clears a single action.
func (f *InputFrame) Unset(a Action) {
	delete(f.Actions, a)
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions and the look delta. Capture state is kept.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Look = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Look = f.Look
	clone.Captured = f.Captured
	return clone
}
