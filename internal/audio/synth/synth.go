// Package synth generates the game's sound cues as beep streamers. Every cue
// is a single oscillator with an exponential decay, so nothing is loaded
// from disk.
package synth

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-doom/internal/audio"
)

// SampleRate is the rate cues are rendered at.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// Voice describes one cue.
type Voice struct {
	Wave     Wave
	Freq     float64
	Duration time.Duration
	Gain     float64 // starting gain, decays to FloorGain
}

// FloorGain is the level every cue decays to by its end.
const FloorGain = 0.01

var voices = map[audio.SoundID]Voice{
	audio.SoundShoot:    {Wave: WaveSaw, Freq: 150, Duration: 100 * time.Millisecond, Gain: 0.5},
	audio.SoundHit:      {Wave: WaveSquare, Freq: 100, Duration: 200 * time.Millisecond, Gain: 0.3},
	audio.SoundFootstep: {Wave: WaveSine, Freq: 80, Duration: 100 * time.Millisecond, Gain: 0.1},
}

// VoiceFor returns the voice of a cue.
func VoiceFor(id audio.SoundID) (Voice, bool) {
	v, ok := voices[id]
	return v, ok
}

// Cue renders id at rate scaled by master volume (0..1). Unknown cues
// return nil.
func Cue(id audio.SoundID, rate beep.SampleRate, master float64) beep.Streamer {
	v, ok := voices[id]
	if !ok {
		return nil
	}
	return newVolume(newTone(v, rate), master)
}

// tone is an oscillator with a built-in exponential gain ramp.
type tone struct {
	voice    Voice
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

func newTone(v Voice, rate beep.SampleRate) *tone {
	return &tone{voice: v, rate: rate, total: rate.N(v.Duration)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		var val float64
		switch t.voice.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (t.phase - 0.5)
		}
		val *= t.gain()

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.voice.Freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// gain ramps from Gain to FloorGain exponentially over the cue.
func (t *tone) gain() float64 {
	g := t.voice.Gain
	if g <= 0 || t.total == 0 {
		return 0
	}
	progress := float64(t.position) / float64(t.total)
	return g * math.Pow(FloorGain/g, progress)
}

// newVolume wraps s in a volume effect. math.Log2(0) is -Inf, so zero
// volume is made silent instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
