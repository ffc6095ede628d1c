// Package client runs one game over a byte stream: a local raw terminal or an
// SSH session. Output is ANSI half-block graphics.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/audio"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/scene"
)

const (
	targetFPS       = 60
	targetFrameTime = time.Second / targetFPS

	// maxDelta caps catch-up after a stall, in frames.
	maxDelta = 3

	// Largest render area; bigger terminals get a centered, bordered canvas.
	maxTermWidth  = 160
	maxTermHeight = 60
)

// Options configures a client.
type Options struct {
	Tuning       config.Tuning
	Assets       object.Assets // Nil uses the default sprite catalog
	Audio        loop.Audio    // Nil plays nothing
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc // Nil reads the size of stdout
	IdleTimeout  time.Duration     // Zero never disconnects idle players
	SkipTitle    bool
}

// Client handles rendering and input for a single connection.
type Client struct {
	session      *scene.Session
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	step         float64 // Pointer travel per frame while a steering key is held

	running     bool
	started     bool
	lastInput   time.Time
	idleTimeout time.Duration
	isInactive  bool

	// What the previous frame showed; a change clears the terminal.
	prevState   loop.State
	prevStarted bool
	wasInactive bool
}

// New builds a client and its game. The game stays paused behind the title
// screen unless opts.SkipTitle is set.
func New(r io.Reader, w io.Writer, opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("client")
	}
	sound := opts.Audio
	if sound == nil {
		sound = audio.Nop{}
	}
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	session, err := scene.NewSession(scene.SessionOptions{
		Tuning: opts.Tuning,
		Assets: opts.Assets,
		Audio:  sound,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	termWidth, termHeight, _ := termSizeFunc()
	field := opts.Tuning.Field
	renderWidth, renderHeight, offsetCol, offsetRow := draw.Fit(termWidth, termHeight, maxTermWidth, maxTermHeight, field.Width, field.Height)
	canvas := draw.NewCanvas(renderWidth, renderHeight, field.Width, field.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	c := &Client{
		session:      session,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(br),
		termSizeFunc: termSizeFunc,
		logger:       logger,
		step:         opts.Tuning.Player.Speed,
		running:      true,
		lastInput:    time.Now(),
		idleTimeout:  opts.IdleTimeout,
		prevState:    session.Loop.State(),
	}
	if opts.SkipTitle {
		c.started = true
	} else {
		session.Loop.Pause()
	}
	c.prevStarted = c.started
	return c, nil
}

// Session exposes the game driven by this client.
func (c *Client) Session() *scene.Session {
	return c.session
}

// Run drives the client at 60 FPS until the player quits, the input closes,
// the player idles out or ctx is done.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	io.WriteString(c.writer, input.EnableMouse)
	defer func() {
		io.WriteString(c.writer, input.DisableMouse)
		draw.ShowCursor(c.writer)
	}()
	draw.ClearScreen(c.writer)

	lastTime := time.Now()
	for c.running {
		if ctx.Err() != nil {
			break
		}
		frameStart := time.Now()
		delta := min(float64(frameStart.Sub(lastTime))/float64(targetFrameTime), maxDelta)
		lastTime = frameStart

		if err := c.Step(delta); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	c.logger.Info("client finished", "frames", c.session.Loop.Frames(), "kills", c.session.Stage.Stats().Kills)
	draw.ClearScreen(c.writer)
	return nil
}

// Step reads pending input, advances the game by delta frames and draws.
func (c *Client) Step(delta float64) error {
	c.handleKeys(c.inputStream.Read(), time.Now())
	if c.started {
		c.session.Advance(delta)
	}
	c.updateScreen()
	return c.drawFrame()
}

// Running reports whether the client loop should continue.
func (c *Client) Running() bool {
	return c.running
}

// handleKeys routes one frame of keys to the title screen or the latch.
func (c *Client) handleKeys(k input.Keys, now time.Time) {
	if len(k.Pressed) > 0 || k.Mouse {
		c.lastInput = now
		c.isInactive = false
	} else if c.idleTimeout > 0 {
		idle := now.Sub(c.lastInput)
		if idle > c.idleTimeout {
			c.logger.Info("disconnecting idle player", "idle", idle.Round(time.Second))
			c.running = false
		} else if idle > c.idleTimeout/2 {
			c.isInactive = true
		}
	}

	if k.Quit {
		c.running = false
		return
	}
	if !c.started {
		if k.Shoot || k.Restart {
			c.started = true
			c.session.Loop.Resume()
		}
		return
	}
	c.session.Latch.Apply(k, c.step, c.toField)
}

func (c *Client) toField(col int) float64 {
	return c.canvas.ToField(col - c.canvas.OffsetCol())
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	field := c.session.Tuning.Field
	renderWidth, renderHeight, offsetCol, offsetRow := draw.Fit(termWidth, termHeight, maxTermWidth, maxTermHeight, field.Width, field.Height)

	if renderWidth != c.canvas.Cols() || renderHeight != c.canvas.Rows() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}
