// Package tui plays the game in a tcell screen with true-color half blocks
// and mouse steering.
package tui

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/scene"
)

const (
	frameTime = time.Second / 60
	maxDelta  = 3

	// Terminals only send key repeats, so a steering key counts as held for
	// this long after its last event.
	keyTimeout = 120 * time.Millisecond
)

var (
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Options configures a Frontend.
type Options struct {
	Tuning config.Tuning
	Assets object.Assets
	Audio  loop.Audio
	Logger *log.Logger
}

// Frontend draws one session into a tcell screen and feeds it tcell events.
type Frontend struct {
	screen  tcell.Screen
	session *scene.Session
	logger  *log.Logger
	raster  raster

	// Playfield area in screen cells; row 0 is the HUD.
	cols, rows int
	offX, offY int

	keys map[tcell.Key]time.Time
	quit bool
}

// New wraps an initialized screen.
func New(screen tcell.Screen, opts Options) (*Frontend, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("tui")
	}
	session, err := scene.NewSession(scene.SessionOptions{
		Tuning: opts.Tuning,
		Assets: opts.Assets,
		Audio:  opts.Audio,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	f := &Frontend{
		screen:  screen,
		session: session,
		logger:  logger,
		keys:    make(map[tcell.Key]time.Time),
	}
	f.layout()
	return f, nil
}

// Session exposes the game driven by this frontend.
func (f *Frontend) Session() *scene.Session {
	return f.session
}

// Run polls events and draws at 60 FPS until quit or ctx is done.
func (f *Frontend) Run(ctx context.Context) error {
	f.screen.EnableMouse(tcell.MouseMotionEvents)
	f.screen.HideCursor()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()
	last := time.Now()

	for !f.quit {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			f.Handle(ev)
		case now := <-ticker.C:
			delta := min(float64(now.Sub(last))/float64(frameTime), maxDelta)
			last = now
			f.Step(now, delta)
		}
	}
	f.logger.Info("tui finished", "frames", f.session.Loop.Frames(), "kills", f.session.Stage.Stats().Kills)
	return nil
}

// Quit reports whether the player asked to leave.
func (f *Frontend) Quit() bool {
	return f.quit
}

// Handle routes one tcell event.
func (f *Frontend) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		f.onKey(ev.Key(), ev.Rune(), time.Now())
	case *tcell.EventMouse:
		x, y := ev.Position()
		f.onMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		f.layout()
		f.screen.Sync()
	}
}

func (f *Frontend) onKey(key tcell.Key, r rune, now time.Time) {
	latch := f.session.Latch
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		f.quit = true
	case tcell.KeyLeft, tcell.KeyRight:
		f.keys[key] = now
	case tcell.KeyEnter:
		latch.RequestRestart()
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			f.quit = true
		case 'a', 'A', 'h':
			f.keys[tcell.KeyLeft] = now
		case 'd', 'D', 'l':
			f.keys[tcell.KeyRight] = now
		case ' ':
			latch.Shoot()
		case 'r', 'R':
			latch.RequestRestart()
		}
	}
}

func (f *Frontend) onMouse(x, y int, buttons tcell.ButtonMask) {
	if f.cols > 0 {
		field := f.session.Tuning.Field.Width
		f.session.Latch.SetPointer((float64(x-f.offX) + 0.5) * field / float64(f.cols))
	}
	if buttons&tcell.Button1 != 0 {
		f.session.Latch.Shoot()
	}
}

func (f *Frontend) held(key tcell.Key, now time.Time) bool {
	t, ok := f.keys[key]
	return ok && now.Sub(t) < keyTimeout
}

// Step applies held keys, advances the game and draws.
func (f *Frontend) Step(now time.Time, delta float64) {
	step := f.session.Tuning.Player.Speed * delta
	left, right := f.held(tcell.KeyLeft, now), f.held(tcell.KeyRight, now)
	if left && !right {
		f.session.Latch.Nudge(-step)
	}
	if right && !left {
		f.session.Latch.Nudge(step)
	}

	f.session.Advance(delta)
	f.draw()
}

// layout fits the playfield below the HUD row.
func (f *Frontend) layout() {
	w, h := f.screen.Size()
	field := f.session.Tuning.Field
	f.cols, f.rows, f.offX, f.offY = draw.Fit(w, h-1, w, h-1, field.Width, field.Height)
	f.offY++
	if f.cols > 0 && f.rows > 0 {
		f.raster.resize(f.cols, f.rows, field.Width, field.Height)
	}
}

func (f *Frontend) draw() {
	s := f.screen
	s.Clear()
	if f.cols <= 0 || f.rows <= 0 {
		s.Show()
		return
	}

	f.raster.clear()
	frame := f.session.Loop.Frames()
	f.session.Stage.Each(func(e object.Entity) {
		if !scene.Blink(e, frame) {
			return
		}
		sp := scene.SpriteOf(e)
		pts, filled := scene.Outline(e)
		f.raster.polygon(pts, filled, tcell.NewRGBColor(int32(sp.Color.R), int32(sp.Color.G), int32(sp.Color.B)))
	})

	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			top, bottom := f.raster.at(col, row*2), f.raster.at(col, row*2+1)
			if top == tcell.ColorDefault && bottom == tcell.ColorDefault {
				continue
			}
			st := tcell.StyleDefault.Foreground(top).Background(bottom)
			ch := '▀'
			if top == tcell.ColorDefault {
				st = tcell.StyleDefault.Foreground(bottom)
				ch = '▄'
			}
			s.SetContent(f.offX+col, f.offY+row, ch, nil, st)
		}
	}
	f.drawBorder()

	stats := f.session.Stage.Stats()
	f.drawHUD(stats)
	for _, m := range f.session.Stage.Messages() {
		f.drawBanner(m, stats)
	}
	s.Show()
}

func (f *Frontend) drawBorder() {
	if f.offX < 1 {
		return
	}
	for row := 0; row < f.rows; row++ {
		f.screen.SetContent(f.offX-1, f.offY+row, '│', nil, borderStyle)
		f.screen.SetContent(f.offX+f.cols, f.offY+row, '│', nil, borderStyle)
	}
}

func (f *Frontend) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		f.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func (f *Frontend) centered(y int, s string, st tcell.Style) {
	w, _ := f.screen.Size()
	f.text((w-len([]rune(s)))/2, y, s, st)
}

func (f *Frontend) drawHUD(st loop.Stats) {
	w, _ := f.screen.Size()
	f.text(1, 0, fmt.Sprintf("Kills: %d  Shots: %d", st.Kills, st.Shots), hudStyle)
	if st.TimeLimited {
		f.centered(0, fmt.Sprintf("Time: %.0f", math.Ceil(st.TimeLeft)), hudStyle)
	}
	hits := fmt.Sprintf("Hits: %d/%d", st.Hits, st.MaxHits)
	f.text(w-len(hits)-1, 0, hits, hudStyle)
}

func (f *Frontend) drawBanner(m loop.Message, st loop.Stats) {
	_, h := f.screen.Size()
	f.centered(h/2-1, m.String(), bannerStyle)
	f.centered(h/2+1, fmt.Sprintf("Kills: %d   Shots: %d   Hits: %d", st.Kills, st.Shots, st.Hits), hudStyle)
	if st.State != loop.StateRestarting {
		f.centered(h/2+3, "Press R to play again, Q to quit", hudStyle)
	}
}
