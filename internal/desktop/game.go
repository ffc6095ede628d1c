// Package desktop plays the game in an ebiten window.
package desktop

import (
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/scene"
)

var (
	background  = color.RGBA{R: 0x05, G: 0x06, B: 0x14, A: 0xff}
	hudColor    = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	bannerColor = color.RGBA{R: 0xff, G: 0xd7, B: 0x40, A: 0xff}
)

// Options configures a Game.
type Options struct {
	Tuning config.Tuning
	Assets object.Assets
	Audio  loop.Audio
	Logger *log.Logger
}

// frameInput is the keyboard and mouse state sampled for one tick.
type frameInput struct {
	cursorX     int
	cursorMoved bool
	left, right bool
	shoot       bool
	restart     bool
	quit        bool
}

// Game implements ebiten.Game. Ebiten calls Update 60 times per second, one
// simulation frame each.
type Game struct {
	session *scene.Session
	logger  *log.Logger
	face    text.Face
	white   *ebiten.Image
	lastX   int

	vertices []ebiten.Vertex
	indices  []uint16
}

var _ ebiten.Game = (*Game)(nil)

// New builds the session behind the window.
func New(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("desktop")
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
	return &Game{
		session: session,
		logger:  logger,
		face:    text.NewGoXFace(basicfont.Face7x13),
		lastX:   -1,
	}, nil
}

// Session exposes the game shown in the window.
func (g *Game) Session() *scene.Session {
	return g.session
}

func (g *Game) Update() error {
	x, _ := ebiten.CursorPosition()
	in := frameInput{
		cursorX:     x,
		cursorMoved: x != g.lastX,
		left:        ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		right:       ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		shoot:       ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		restart:     inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		quit:        inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
	g.lastX = x
	return g.apply(in)
}

// apply feeds one tick of input to the latch and advances the game.
func (g *Game) apply(in frameInput) error {
	if in.quit {
		g.logger.Info("window closed", "frames", g.session.Loop.Frames(), "kills", g.session.Stage.Stats().Kills)
		return ebiten.Termination
	}
	latch := g.session.Latch
	if in.cursorMoved {
		latch.SetPointer(float64(in.cursorX))
	}
	step := g.session.Tuning.Player.Speed
	if in.left && !in.right {
		latch.Nudge(-step)
	}
	if in.right && !in.left {
		latch.Nudge(step)
	}
	if in.shoot {
		latch.Shoot()
	}
	if in.restart {
		latch.RequestRestart()
	}
	g.session.Advance(1)
	return nil
}

// Layout keeps the logical screen at the playfield size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	f := g.session.Tuning.Field
	return int(f.Width), int(f.Height)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	frame := g.session.Loop.Frames()
	g.session.Stage.Each(func(e object.Entity) {
		if !scene.Blink(e, frame) {
			return
		}
		sp := scene.SpriteOf(e)
		pts, filled := scene.Outline(e)
		if filled {
			g.fillPolygon(screen, pts, sp.Color)
		} else {
			strokePolygon(screen, pts, sp.Color)
		}
	})

	stats := g.session.Stage.Stats()
	g.drawHUD(screen, stats)
	for _, m := range g.session.Stage.Messages() {
		g.drawBanner(screen, m, stats)
	}
}

func (g *Game) fillPolygon(dst *ebiten.Image, pts []draw.Point, clr color.RGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	g.vertices, g.indices = path.AppendVerticesAndIndicesForFilling(g.vertices[:0], g.indices[:0])
	r, gr, b, a := float32(clr.R)/0xff, float32(clr.G)/0xff, float32(clr.B)/0xff, float32(clr.A)/0xff
	for i := range g.vertices {
		g.vertices[i].SrcX, g.vertices[i].SrcY = 1, 1
		g.vertices[i].ColorR, g.vertices[i].ColorG, g.vertices[i].ColorB, g.vertices[i].ColorA = r, gr, b, a
	}
	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleEvenOdd, AntiAlias: true}
	dst.DrawTriangles(g.vertices, g.indices, g.whiteImage(), op)
}

// whiteImage is the source texture for solid fills.
func (g *Game) whiteImage() *ebiten.Image {
	if g.white == nil {
		g.white = ebiten.NewImage(3, 3)
		g.white.Fill(color.White)
	}
	return g.white
}

func strokePolygon(dst *ebiten.Image, pts []draw.Point, clr color.RGBA) {
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		vector.StrokeLine(dst, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), 2, clr, true)
	}
}

func (g *Game) label(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, g.face, op)
}

func (g *Game) centered(dst *ebiten.Image, s string, y float64, clr color.Color) {
	w, _ := text.Measure(s, g.face, 0)
	g.label(dst, s, (g.session.Tuning.Field.Width-w)/2, y, clr)
}

func (g *Game) drawHUD(dst *ebiten.Image, st loop.Stats) {
	field := g.session.Tuning.Field
	g.label(dst, fmt.Sprintf("Kills: %d  Shots: %d", st.Kills, st.Shots), 8, 6, hudColor)
	if st.TimeLimited {
		g.centered(dst, fmt.Sprintf("Time: %.0f", math.Ceil(st.TimeLeft)), 6, hudColor)
	}
	hits := fmt.Sprintf("Hits: %d/%d", st.Hits, st.MaxHits)
	w, _ := text.Measure(hits, g.face, 0)
	g.label(dst, hits, field.Width-w-8, 6, hudColor)
}

func (g *Game) drawBanner(dst *ebiten.Image, m loop.Message, st loop.Stats) {
	mid := g.session.Tuning.Field.Height / 2
	g.centered(dst, m.String(), mid-30, bannerColor)
	g.centered(dst, fmt.Sprintf("Kills: %d   Shots: %d   Hits: %d", st.Kills, st.Shots, st.Hits), mid, hudColor)
	if st.State != loop.StateRestarting {
		g.centered(dst, "Press R to play again", mid+24, hudColor)
	}
}
