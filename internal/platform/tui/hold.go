package tui

import (
	"time"

	"github.com/vovakirdan/tui-doom/internal/core"
)

// Terminals report key presses and auto-repeats but never releases. A held
// key is emulated by keeping an action active for a short window after each
// press. The first press gets a longer window so it bridges the terminal's
// repeat delay; later repeats arrive quickly and get a short one.
const (
	firstHold  = 550 * time.Millisecond
	repeatHold = 120 * time.Millisecond
)

type holdState struct {
	until     time.Time
	repeating bool
}

// holdTracker turns press events into held actions.
type holdTracker struct {
	keys map[core.Action]*holdState
}

func newHoldTracker() *holdTracker {
	return &holdTracker{keys: make(map[core.Action]*holdState)}
}

// Press records a press (or auto-repeat) of a at now.
func (h *holdTracker) Press(a core.Action, now time.Time) {
	st, ok := h.keys[a]
	if !ok || !now.Before(st.until) {
		h.keys[a] = &holdState{until: now.Add(firstHold)}
		return
	}
	st.repeating = true
	st.until = now.Add(repeatHold)
}

// Active reports whether a is still held at now.
func (h *holdTracker) Active(a core.Action, now time.Time) bool {
	st, ok := h.keys[a]
	return ok && now.Before(st.until)
}

// Apply sets every held action on frame and forgets expired ones.
func (h *holdTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a, st := range h.keys {
		if now.Before(st.until) {
			frame.Set(a)
			continue
		}
		delete(h.keys, a)
	}
}

// Release drops a, as if its key went up.
func (h *holdTracker) Release(a core.Action) {
	delete(h.keys, a)
}

// Clear drops every held action.
func (h *holdTracker) Clear() {
	clear(h.keys)
}
