// Package audio defines the sound cues the simulation can trigger and the
// Sink capability that realizes them. The simulation calls Play
// unconditionally; a sink decides how, or whether, a cue becomes sound.
package audio

// SoundID names a short synthesized cue.
type SoundID int

const (
	SoundShoot SoundID = iota
	SoundHit
	SoundFootstep
)

// String returns the cue name used in logs and config.
func (id SoundID) String() string {
	switch id {
	case SoundShoot:
		return "shoot"
	case SoundHit:
		return "hit"
	case SoundFootstep:
		return "footstep"
	default:
		return "unknown"
	}
}

// Sounds lists every cue in declaration order.
func Sounds() []SoundID {
	return []SoundID{SoundShoot, SoundHit, SoundFootstep}
}

// Sink plays sound cues. Play must not block and must not fail loudly:
// an unavailable device is the sink's problem, never the caller's.
type Sink interface {
	Play(id SoundID)
}

// Nop is a Sink that discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(SoundID) {}

// Func adapts a plain function to the Sink interface.
type Func func(id SoundID)

// Play calls f(id).
func (f Func) Play(id SoundID) {
	if f != nil {
		f(id)
	}
}

// OrNop returns s, or Nop when s is nil.
func OrNop(s Sink) Sink {
	if s == nil {
		return Nop{}
	}
	return s
}
