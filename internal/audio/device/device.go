// Package device connects audio players to the host speaker. It is the only
// package that links the speaker backend, which needs cgo and ALSA on Linux.
package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/starfall/internal/audio"
)

// initOnce guards speaker.Init, which may only run once per process.
var (
	initOnce sync.Once
	initErr  error
)

// Open initializes the speaker and returns a player that mixes into it.
// Every Player shares the one speaker.
func Open(logger *log.Logger) (*audio.Player, error) {
	initOnce.Do(func() {
		initErr = speaker.Init(audio.SampleRate, audio.SampleRate.N(time.Second/10))
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", initErr)
	}
	return audio.NewPlayer(audio.SampleRate, func(s beep.Streamer) { speaker.Play(s) }, logger), nil
}
