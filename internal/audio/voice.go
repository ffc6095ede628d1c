// Package audio synthesizes the game's sound cues with beep.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// voice is a single oscillator with a pitch sweep and a percussive envelope.
type voice struct {
	wave     Wave
	from, to float64 // Pitch in Hz at the start and the end
	attack   int
	total    int
	pos      int
	phase    float64
	rate     beep.SampleRate
	rng      *rand.Rand
}

// newVoice returns a streamer that plays for exactly d and then drains.
func newVoice(wave Wave, from, to float64, d time.Duration, rate beep.SampleRate) *voice {
	return &voice{
		wave:   wave,
		from:   from,
		to:     to,
		attack: rate.N(5 * time.Millisecond),
		total:  rate.N(d),
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(from*1000 + to))),
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.pos >= v.total {
			return i, i > 0
		}
		p := float64(v.pos) / float64(v.total)

		var val float64
		switch v.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * v.phase)
		case WaveSquare:
			val = 1
			if v.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (v.phase - 0.5)
		case WaveNoise:
			val = v.rng.Float64()*2 - 1
		}

		amp := (1 - p) * (1 - p)
		if v.pos < v.attack {
			amp *= float64(v.pos) / float64(v.attack)
		}
		samples[i][0] = val * amp
		samples[i][1] = val * amp

		freq := v.from + (v.to-v.from)*p
		v.phase += freq / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// volume scales s linearly; 0 mutes it.
func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// notes plays a sine arpeggio, each note lasting d.
func notes(d time.Duration, rate beep.SampleRate, hz ...float64) beep.Streamer {
	seq := make([]beep.Streamer, len(hz))
	for i, f := range hz {
		seq[i] = newVoice(WaveSine, f, f, d, rate)
	}
	return beep.Seq(seq...)
}
