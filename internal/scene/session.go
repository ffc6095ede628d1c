package scene

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/object"
)

// SessionOptions configures NewSession. Only Tuning and Audio are required.
type SessionOptions struct {
	Tuning     config.Tuning
	Assets     object.Assets // Nil uses DefaultCatalog
	Audio      loop.Audio
	Logger     *log.Logger
	SoundDelay time.Duration
}

// Session wires one game: the loop, the stage it reports to and the latch it
// polls. Frontends feed the latch and call Advance once per frame.
type Session struct {
	Loop   *loop.Loop
	Stage  *Stage
	Latch  *input.Latch
	Tuning config.Tuning
}

// NewSession builds a session with the pointer latched to the playfield width.
func NewSession(opts SessionOptions) (*Session, error) {
	assets := opts.Assets
	if assets == nil {
		assets = DefaultCatalog()
	}
	stage := NewStage()
	latch := input.NewLatch(0, opts.Tuning.Field.Width)

	l, err := loop.New(loop.Options{
		Tuning:     opts.Tuning,
		Assets:     assets,
		Scene:      stage,
		Audio:      opts.Audio,
		HUD:        stage,
		Input:      latch,
		Logger:     opts.Logger,
		SoundDelay: opts.SoundDelay,
	})
	if err != nil {
		return nil, err
	}
	return &Session{Loop: l, Stage: stage, Latch: latch, Tuning: opts.Tuning}, nil
}

// Advance hands a pending restart request to the loop and simulates delta frames.
func (s *Session) Advance(delta float64) {
	if s.Latch.TakeRestart() {
		s.Loop.RequestRestart()
	}
	s.Loop.Frame(delta)
}
