// Package loop runs the simulation: the per-frame update, the collision pass
// and the round state machine.
package loop

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/event"
	"github.com/tomz197/starfall/internal/object"
)

// Options configures New. Every collaborator except Logger is required.
type Options struct {
	Tuning     config.Tuning
	Rand       *rand.Rand // Nil seeds from Tuning.Round.Seed, or the clock when that is zero
	Assets     object.Assets
	Scene      object.Scene
	Audio      Audio
	HUD        HUD
	Input      Input
	Logger     *log.Logger   // Nil uses the default logger with a "loop" prefix
	SoundDelay time.Duration // Delay of the terminal sound; zero uses DefaultSoundDelay
}

// Loop advances one World frame by frame. Frame, Pause, Resume and
// RequestRestart must all be called from the same goroutine.
type Loop struct {
	world   *World
	machine *Machine
	input   Input
	hud     HUD
	audio   Audio
	logger  *log.Logger
	paused  bool
	frames  uint64
}

// New builds the world, populates the first round and starts in Playing.
func New(opts Options) (*Loop, error) {
	missing := []struct {
		name   string
		absent bool
	}{
		{"assets", opts.Assets == nil},
		{"scene", opts.Scene == nil},
		{"audio", opts.Audio == nil},
		{"hud", opts.HUD == nil},
		{"input", opts.Input == nil},
	}
	for _, m := range missing {
		if m.absent {
			return nil, fmt.Errorf("%w: %s", ErrMissingCollaborator, m.name)
		}
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		seed := opts.Tuning.Round.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("loop")
	}
	delay := opts.SoundDelay
	if delay <= 0 {
		delay = DefaultSoundDelay
	}

	l := &Loop{
		world:  NewWorld(opts.Tuning, rng, opts.Assets, opts.Scene, opts.Audio),
		input:  opts.Input,
		hud:    opts.HUD,
		audio:  opts.Audio,
		logger: logger,
	}
	l.machine = newMachine(l, delay)
	l.world.Populate()
	l.hud.UpdateStats(l.Stats())
	return l, nil
}

// World returns the simulation context.
func (l *Loop) World() *World {
	return l.world
}

// State returns the current round phase.
func (l *Loop) State() State {
	return l.machine.State()
}

// RequestRestart starts a new round if the current one has ended.
func (l *Loop) RequestRestart() {
	l.machine.RequestRestart()
}

// Pause stops Frame from doing any work.
func (l *Loop) Pause() {
	l.paused = true
}

// Resume lets Frame run again.
func (l *Loop) Resume() {
	l.paused = false
}

// Paused reports whether the loop is paused.
func (l *Loop) Paused() bool {
	return l.paused
}

// Frames returns the number of frames simulated so far.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Frame advances the simulation by delta frames (1 at the nominal rate).
func (l *Loop) Frame(delta float64) {
	if l.paused || delta <= 0 {
		return
	}
	l.frames++
	w := l.world

	// ===== INPUT =====
	controls := l.input.Poll()

	// ===== SPAWN =====
	w.reinforce(delta)

	// ===== UPDATE =====
	ctx := object.TickContext{
		Delta:    delta,
		Field:    w.Field,
		Controls: controls,
		Spawn:    w,
	}
	tickGroup(l, w.Groups.Bullets, ctx)
	tickGroup(l, w.Groups.Enemies, ctx)
	tickGroup(l, w.Groups.Bombs, ctx)
	tickGroup(l, w.Groups.Asteroids, ctx)
	tickGroup(l, w.Groups.Explosions, ctx)
	if w.Player != nil {
		if _, err := l.tick(w.Player, ctx); err != nil {
			l.logger.Warn("tick failed", "kind", object.KindPlayer, "id", w.Player.ID, "err", err)
		}
	}

	// ===== COLLISIONS =====
	report, err := l.collide()
	if err != nil {
		l.logger.Warn("collision pass failed", "frame", l.frames, "err", err)
	} else if len(report.Hits) > 0 {
		l.logger.Debug("collisions", "frame", l.frames, "hits", len(report.Hits), "kills", report.Kills, "playerHit", report.PlayerHit)
	}

	// ===== EVENTS =====
	w.pending.Flush(w.Hub)

	// ===== CLOCK =====
	l.advanceClock(delta)

	// ===== HUD =====
	l.hud.UpdateStats(l.Stats())
}

func tickGroup[T object.Entity](l *Loop, g *object.Group[T], ctx object.TickContext) {
	g.ForEach(func(e T) {
		expired, err := l.tick(e, ctx)
		if err != nil {
			l.logger.Warn("tick failed", "kind", g.Kind(), "id", e.Base().ID, "err", err)
			return
		}
		if expired {
			g.Remove(e.Base().ID)
		}
	})
}

// tick runs one entity's update, turning a panic into an error.
func (l *Loop) tick(e object.Entity, ctx object.TickContext) (expired bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return e.Tick(ctx)
}

// collide runs the collision pass, turning a panic into an error.
func (l *Loop) collide() (report Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return l.world.CollisionPass(), nil
}

func (l *Loop) advanceClock(delta float64) {
	w := l.world
	if l.machine.State() != StatePlaying || w.Tuning.RoundFrames() <= 0 {
		return
	}
	w.TimeLeft -= delta
	if w.TimeLeft <= 0 {
		w.TimeLeft = 0
		w.Hub.Emit(event.GameOver{Reason: event.ReasonTime})
	}
}

// Stats summarizes the round for the HUD.
func (l *Loop) Stats() Stats {
	w := l.world
	return Stats{
		State:       l.machine.State(),
		Kills:       w.Kills,
		Shots:       w.Shots(),
		Hits:        w.Hits(),
		MaxHits:     w.Tuning.Player.MaxHits,
		TimeLeft:    w.TimeLeft / float64(w.Tuning.Round.FrameRate),
		TimeLimited: w.Tuning.RoundFrames() > 0,
		Enemies:     w.Groups.Enemies.Len(),
		Asteroids:   w.Groups.Asteroids.Len(),
	}
}
