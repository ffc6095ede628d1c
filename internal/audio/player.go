package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/tomz197/starfall/internal/loop"
)

// Nop discards every cue. It is used when no audio device is available.
type Nop struct{}

func (Nop) Play(loop.Sound) {}

// Cue builds a fresh streamer for a sound at the given rate.
func Cue(s loop.Sound, rate beep.SampleRate) (beep.Streamer, bool) {
	switch s {
	case loop.SoundShot:
		return volume(newVoice(WaveSquare, 1320, 440, 90*time.Millisecond, rate), 0.25), true
	case loop.SoundExplosion:
		return beep.Mix(
			volume(newVoice(WaveNoise, 0, 0, 450*time.Millisecond, rate), 0.5),
			volume(newVoice(WaveSine, 90, 40, 450*time.Millisecond, rate), 0.6),
		), true
	case loop.SoundHit:
		return volume(newVoice(WaveSaw, 160, 70, 250*time.Millisecond, rate), 0.5), true
	case loop.SoundYouWin:
		return volume(notes(140*time.Millisecond, rate, 523.25, 659.25, 783.99, 1046.5), 0.5), true
	case loop.SoundGameOver:
		return volume(notes(260*time.Millisecond, rate, 392, 311.13, 261.63, 196), 0.5), true
	default:
		return nil, false
	}
}

// Player implements loop.Audio by streaming cues into a sink, usually the
// speaker opened by package device.
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	sink   func(beep.Streamer)
	logger *log.Logger
}

var _ loop.Audio = (*Player)(nil)

// NewPlayer returns a player that hands every cue, rendered at rate, to sink.
// Calls to sink are serialized.
func NewPlayer(rate beep.SampleRate, sink func(beep.Streamer), logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default().WithPrefix("audio")
	}
	return &Player{rate: rate, sink: sink, logger: logger}
}

// Play starts the cue and returns at once.
func (p *Player) Play(s loop.Sound) {
	st, ok := Cue(s, p.rate)
	if !ok {
		p.logger.Warn("unknown sound", "sound", int(s))
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sink(st)
}
