package tui

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/starfall/internal/audio"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop"
)

// newTestFrontend returns a frontend on an 80×31 simulation screen, which
// fits an 800×600 field exactly into 80×30 cells below the HUD row.
func newTestFrontend(t *testing.T) (*Frontend, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 31)

	tu := config.Default()
	tu.Round.Seed = 11
	tu.Asteroid.Initial = 0
	tu.Asteroid.SpawnChance = 0
	tu.Enemy.Reinforcements = 0

	f, err := New(screen, Options{Tuning: tu, Audio: audio.Nop{}, Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f, screen
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestLayout(t *testing.T) {
	f, _ := newTestFrontend(t)
	if f.cols != 80 || f.rows != 30 || f.offX != 0 || f.offY != 1 {
		t.Errorf("layout = %dx%d at (%d, %d), want 80x30 at (0, 1)", f.cols, f.rows, f.offX, f.offY)
	}
}

func TestMouseSteersAndShoots(t *testing.T) {
	f, _ := newTestFrontend(t)

	f.onMouse(0, 5, tcell.ButtonNone)
	if got := f.session.Latch.PointerX(); got != 5 {
		t.Errorf("pointer = %v, want 5", got)
	}
	if f.session.Latch.Poll().Shoot {
		t.Error("motion alone should not shoot")
	}

	f.onMouse(79, 5, tcell.Button1)
	c := f.session.Latch.Poll()
	if !c.Shoot || c.PointerX != 795 {
		t.Errorf("controls = %+v, want a shot at 795", c)
	}
}

func TestHeldKeySteers(t *testing.T) {
	f, _ := newTestFrontend(t)
	now := time.Now()
	start := f.session.Latch.PointerX()

	f.onKey(tcell.KeyRune, 'a', now)
	f.Step(now.Add(10*time.Millisecond), 1)
	want := start - f.session.Tuning.Player.Speed
	if got := f.session.Latch.PointerX(); got != want {
		t.Errorf("pointer = %v, want %v", got, want)
	}

	f.Step(now.Add(time.Second), 1)
	if got := f.session.Latch.PointerX(); got != want {
		t.Errorf("released key still steering: pointer = %v", got)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []struct {
		key tcell.Key
		r   rune
	}{{tcell.KeyEscape, 0}, {tcell.KeyCtrlC, 0}, {tcell.KeyRune, 'q'}} {
		f, _ := newTestFrontend(t)
		f.onKey(k.key, k.r, time.Now())
		if !f.Quit() {
			t.Errorf("key %v %q did not quit", k.key, k.r)
		}
	}
}

func TestDrawsPlayerAndHUD(t *testing.T) {
	f, screen := newTestFrontend(t)
	f.Step(time.Now(), 1)

	// Ship centre: x 400 → col 40, y 560 → sub-row 56 → row 28 below the HUD.
	if r := runeAt(screen, 40, 29); r != '▀' && r != '▄' {
		t.Errorf("cell under the ship = %q, want a half block", r)
	}
	if r := runeAt(screen, 1, 0); r != 'K' {
		t.Errorf("HUD starts with %q, want K", r)
	}
}

func TestWinBanner(t *testing.T) {
	f, screen := newTestFrontend(t)
	w := f.session.Loop.World()
	enemy, _ := w.Groups.Enemies.Get(w.Groups.Enemies.IDs()[0])
	enemy.VX, enemy.BobAmplitude, enemy.BombTimer = 0, 0, 1e9
	enemy.Y = enemy.BaseY
	w.Bullet(enemy.X, enemy.Y+f.session.Tuning.Bullet.Speed)

	f.Step(time.Now(), 1)
	if f.session.Loop.State() != loop.StateYouWin {
		t.Fatalf("state = %s, want you-win", f.session.Loop.State())
	}
	// "YOU WIN" centered on row 31/2-1
	if r := runeAt(screen, (80-7)/2, 14); r != 'Y' {
		t.Errorf("banner cell = %q, want Y", r)
	}

	f.onKey(tcell.KeyRune, 'r', time.Now())
	f.Step(time.Now(), 1)
	if f.session.Loop.State() != loop.StatePlaying {
		t.Errorf("state after restart = %s", f.session.Loop.State())
	}
}

func TestRasterFillsTinyShapes(t *testing.T) {
	var r raster
	r.resize(10, 5, 100, 100)
	r.clear()
	r.polygon([]draw.Point{{X: 50, Y: 50}, {X: 50.5, Y: 50}, {X: 50.5, Y: 50.5}}, true, tcell.ColorRed)
	n := 0
	for _, c := range r.px {
		if c != tcell.ColorDefault {
			n++
		}
	}
	if n != 1 {
		t.Errorf("painted %d sub-pixels, want 1", n)
	}
}

func TestInside(t *testing.T) {
	sq := []draw.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	if !inside(sq, 2, 2) || inside(sq, 5, 2) || inside(sq, 2, -1) {
		t.Error("inside gave wrong answers for a square")
	}
}
