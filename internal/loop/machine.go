package loop

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/event"
)

// DefaultSoundDelay is how long the terminal sound waits after a round ends.
const DefaultSoundDelay = time.Second

// Machine drives the round through Playing, GameOver, YouWin and Restarting.
// It reacts to hub events only; handlers are registered once and survive restarts.
type Machine struct {
	loop       *Loop
	world      *World
	hud        HUD
	audio      Audio
	logger     *log.Logger
	state      State
	soundDelay time.Duration
	sound      *time.Timer // Pending terminal sound
}

func newMachine(l *Loop, soundDelay time.Duration) *Machine {
	m := &Machine{
		loop:       l,
		world:      l.world,
		hud:        l.hud,
		audio:      l.audio,
		logger:     l.logger,
		state:      StatePlaying,
		soundDelay: soundDelay,
	}

	hub := l.world.Hub
	hub.On(event.TypeKill, m.onKill)
	hub.On(event.TypePlayerHit, m.onPlayerHit)
	hub.On(event.TypeGameOver, m.onGameOver)
	hub.On(event.TypeYouWin, m.onYouWin)
	hub.On(event.TypeRestart, m.onRestart)
	return m
}

// State returns the current phase.
func (m *Machine) State() State {
	return m.state
}

// RequestRestart asks for a new round. Ignored unless the round has ended.
func (m *Machine) RequestRestart() {
	if !m.state.Terminal() {
		return
	}
	m.world.Hub.Emit(event.Restart{From: m.state.String()})
}

func (m *Machine) onKill(e event.Event) {
	m.world.Kills++
	if m.world.Cleared() {
		m.world.Hub.Emit(event.YouWin{})
	}
}

func (m *Machine) onPlayerHit(e event.Event) {
	hit := e.(event.PlayerHit)
	if hit.Hits >= m.world.Tuning.Player.MaxHits {
		m.world.Hub.Emit(event.GameOver{Reason: event.ReasonHits})
	}
}

func (m *Machine) onGameOver(e event.Event) {
	over := e.(event.GameOver)
	m.finish(StateGameOver, SoundGameOver, "reason", over.Reason)
}

func (m *Machine) onYouWin(event.Event) {
	m.finish(StateYouWin, SoundYouWin)
}

// finish moves a running round into a terminal state. Terminal events outside
// Playing are ignored.
func (m *Machine) finish(to State, sound Sound, keyvals ...any) {
	if m.state != StatePlaying {
		return
	}
	m.state = to
	m.loop.Pause()
	if msg, ok := to.banner(); ok {
		m.hud.ShowMessage(msg)
	}
	m.scheduleSound(sound)
	m.logger.Debug("round ended", append([]any{"state", to, "kills", m.world.Kills, "hits", m.world.Hits()}, keyvals...)...)
}

func (m *Machine) scheduleSound(s Sound) {
	m.cancelSound()
	audio := m.audio
	m.sound = time.AfterFunc(m.soundDelay, func() {
		audio.Play(s)
	})
}

func (m *Machine) cancelSound() {
	if m.sound != nil {
		m.sound.Stop()
		m.sound = nil
	}
}

func (m *Machine) onRestart(e event.Event) {
	if !m.state.Terminal() {
		return
	}
	from := m.state
	m.state = StateRestarting
	m.cancelSound()

	m.world.Reset()
	if msg, ok := from.banner(); ok {
		m.hud.HideMessage(msg)
	}

	m.state = StatePlaying
	m.loop.Resume()
	m.hud.UpdateStats(m.loop.Stats())
	m.logger.Debug("round restarted", "from", e.(event.Restart).From)
}
