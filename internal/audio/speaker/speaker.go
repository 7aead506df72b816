// Package speaker plays sound cues on the local audio device.
package speaker

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-doom/internal/audio"
	"github.com/vovakirdan/tui-doom/internal/audio/synth"
)

// Sink mixes cues into a single speaker stream. Play never blocks on the
// device.
type Sink struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

var (
	initOnce sync.Once
	initErr  error
)

// Open initializes the speaker and returns a sink playing at volume (0..1).
// The device can only be initialized once per process; later calls share it.
func Open(volume float64) (*Sink, error) {
	initOnce.Do(func() {
		initErr = speaker.Init(synth.SampleRate, synth.SampleRate.N(100*time.Millisecond))
	})
	if initErr != nil {
		return nil, initErr
	}

	s := &Sink{mixer: &beep.Mixer{}, volume: volume}
	speaker.Play(s.mixer)
	return s, nil
}

// OpenOrNop is Open that logs a failure and falls back to silence.
func OpenOrNop(volume float64, logger *log.Logger) audio.Sink {
	s, err := Open(volume)
	if err != nil {
		if logger != nil {
			logger.Warn("audio unavailable, continuing without sound", "err", err)
		}
		return audio.Nop{}
	}
	return s
}

// Play queues a cue on the mixer.
func (s *Sink) Play(id audio.SoundID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	cue := synth.Cue(id, synth.SampleRate, s.volume)
	if cue == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(cue)
	speaker.Unlock()
}

// Close silences the sink. Pending cues are dropped.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}
