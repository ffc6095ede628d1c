package client

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/scene"
)

var (
	// ASCII art titles (figlet "small" font)
	titleArt = []string{
		`  ___ _____ _   ___ ___ _   _    _    `,
		` / __|_   _/_\ | _ \ __/_\ | |  | |   `,
		` \__ \ | |/ _ \|   / _/ _ \| |__| |__ `,
		` |___/ |_/_/ \_\_|_\_/_/ \_\____|____|`,
		`                                      `,
	}
	gameOverArt = []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
		`                                              `,
	}
	youWinArt = []string{
		` __   _____  _   _  __      _____ _  _ `,
		` \ \ / / _ \| | | | \ \    / /_ _| \| |`,
		`  \ V / (_) | |_| |  \ \/\/ / | || .' |`,
		`   |_| \___/ \___/    \_/\_/ |___|_|\_|`,
		`                                       `,
	}
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On state transitions do a full terminal clear so text from the previous
	// screen does not persist.
	state := c.session.Loop.State()
	if state != c.prevState || c.started != c.prevStarted || c.isInactive != c.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.prevState = state
		c.prevStarted = c.started
		c.wasInactive = c.isInactive
	}

	c.canvas.Clear()
	if c.started {
		frame := c.session.Loop.Frames()
		c.session.Stage.Each(func(e object.Entity) {
			if !scene.Blink(e, frame) {
				return
			}
			// Boxes are often thinner than a cell; FillRect keeps them visible
			if scene.SpriteOf(e).Shape == scene.ShapeBox {
				b := e.Base().Bounds()
				c.canvas.FillRect(b.MinX, b.MinY, b.MaxX, b.MaxY)
				return
			}
			pts, filled := scene.Outline(e)
			c.canvas.Polygon(pts, filled)
		})
	}

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI()
	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	cols, rows := c.canvas.Cols(), c.canvas.Rows()
	centerX, centerY := cols/2, rows/2

	if c.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}
	if !c.started {
		c.drawTitleScreen(centerX, centerY)
		return
	}

	stats := c.session.Stage.Stats()
	c.drawPlayingHUD(cols, rows, stats)
	for _, m := range c.session.Stage.Messages() {
		c.drawBanner(centerX, centerY, m, stats)
	}
}

// drawInactivityScreen draws the idle warning.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")

	left := c.idleTimeout - time.Since(c.lastInput)
	msg := fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", int(left.Seconds()))
	cw.WriteCentered(centerX, centerY, msg)
	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// drawTitleScreen draws the title and controls.
func (c *Client) drawTitleScreen(centerX, centerY int) {
	cw := c.chunkWriter
	top := centerY - 7
	for i, line := range titleArt {
		cw.WriteCentered(centerX, top+i, line)
	}

	controlsY := top + len(titleArt) + 1
	cw.WriteCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"Mouse  . . . . . . . Steer",
		"A D / < >  . . . . . Steer",
		"SPACE / Click  . . . Shoot",
		"R / Enter  . . . . Restart",
		"Q  . . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteCentered(centerX, controlsY+1+i, line)
	}

	c.blink(centerX, controlsY+len(controlLines)+2, ">>  Press SPACE to Start  <<")
}

// drawPlayingHUD draws the stats line.
// Fields are fixed-width so shrinking values don't leave residual characters.
func (c *Client) drawPlayingHUD(cols, rows int, s loop.Stats) {
	cw := c.chunkWriter

	left := fmt.Sprintf("Kills: %-3d Shots: %-4d", s.Kills, s.Shots)
	cw.WriteAt(2, 1, left)

	hits := fmt.Sprintf("Hits: %d/%d", s.Hits, s.MaxHits)
	cw.WriteAt(cols-len(hits), 1, hits)

	if s.TimeLimited {
		clock := fmt.Sprintf("Time: %3.0f", math.Ceil(s.TimeLeft))
		cw.WriteCentered(cols/2, 1, clock)
	}

	foes := fmt.Sprintf("UFOs: %-2d Rocks: %-3d", s.Enemies, s.Asteroids)
	cw.WriteAt(2, rows, foes)
}

// drawBanner draws the end-of-round screen for m.
func (c *Client) drawBanner(centerX, centerY int, m loop.Message, s loop.Stats) {
	art := gameOverArt
	if m == loop.MessageYouWin {
		art = youWinArt
	}

	cw := c.chunkWriter
	top := centerY - 6
	for i, line := range art {
		cw.WriteCentered(centerX, top+i, line)
	}

	summary := fmt.Sprintf("Kills: %d   Shots: %d   Hits: %d", s.Kills, s.Shots, s.Hits)
	cw.WriteCentered(centerX, top+len(art)+1, summary)

	if s.State == loop.StateRestarting {
		return
	}
	c.blink(centerX, top+len(art)+3, ">>  Press R to Play Again  <<")
}

// blink shows s on every other 600ms phase. In the off phase the canvas cells
// under s are repainted on the next frame.
func (c *Client) blink(centerX, row int, s string) {
	if time.Now().UnixMilli()/600%2 == 0 {
		c.chunkWriter.WriteCentered(centerX, row, s)
		return
	}
	n := len([]rune(s))
	c.canvas.MarkTextDirty(max(centerX-n/2, 1), row, n)
}
