// Package draw renders playfield geometry to ANSI terminals using half-block
// characters, which double the vertical resolution of a cell grid.
package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Point is a position in playfield coordinates.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// Canvas is a pixel buffer of cols × rows*2 sub-pixels. Drawing calls take
// playfield coordinates and are scaled to the current terminal size.
// Render only emits the cells that changed since the previous Render.
type Canvas struct {
	cols, rows int
	subRows    int    // rows * 2
	pixels     []bool // [y*cols + x]
	shown      []rune // Last rendered rune per cell; 0 forces a redraw

	fieldW, fieldH float64
	scaleX, scaleY float64

	// 0-based terminal offset of the top-left cell, for centering
	offsetCol int
	offsetRow int

	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
}

// NewCanvas creates a canvas of cols × rows terminal cells showing a
// fieldW × fieldH playfield.
func NewCanvas(cols, rows int, fieldW, fieldH float64) *Canvas {
	c := &Canvas{fieldW: fieldW, fieldH: fieldH}
	c.Resize(cols, rows)
	return c
}

// Resize changes the terminal size, keeping the playfield size. A size change
// forces a full redraw.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols != c.cols || rows != c.rows || c.pixels == nil {
		c.cols, c.rows, c.subRows = cols, rows, rows*2
		c.pixels = make([]bool, c.subRows*cols)
		c.shown = make([]rune, rows*cols)
	}
	if c.fieldW > 0 && c.fieldH > 0 {
		c.scaleX = float64(cols) / c.fieldW
		c.scaleY = float64(c.subRows) / c.fieldH
	}
}

// SetOffset places the canvas at 0-based terminal offset (col, row).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.offsetCol, c.offsetRow = col, row
		c.ForceRedraw()
	}
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Cols returns the canvas width in terminal cells.
func (c *Canvas) Cols() int {
	return c.cols
}

// Rows returns the canvas height in terminal cells.
func (c *Canvas) Rows() int {
	return c.rows
}

// Clear resets all pixels. What is on screen stays until the next Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render emit every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.shown)
}

// MarkTextDirty makes the next Render repaint n cells starting at 1-based
// canvas cell (col, row), erasing text written over the canvas.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	row--
	if row < 0 || row >= c.rows {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.cols); x++ {
		c.shown[row*c.cols+x] = 0
	}
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.subRows {
		c.pixels[y*c.cols+x] = true
	}
}

// Pixel reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.cols || y < 0 || y >= c.subRows {
		return false
	}
	return c.pixels[y*c.cols+x]
}

func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// Set sets the pixel under a playfield position.
func (c *Canvas) Set(p Point) {
	c.setPixel(c.toPixel(p))
}

// Line draws a line using Bresenham's algorithm.
func (c *Canvas) Line(p1, p2 Point) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillRect fills the box [minX, maxX] × [minY, maxY]. Boxes smaller than a
// pixel still light the pixel under their center.
func (c *Canvas) FillRect(minX, minY, maxX, maxY float64) {
	x0 := int(math.Floor(minX * c.scaleX))
	x1 := int(math.Ceil(maxX*c.scaleX)) - 1
	y0 := int(math.Floor(minY * c.scaleY))
	y1 := int(math.Ceil(maxY*c.scaleY)) - 1
	if x1 < x0 || y1 < y0 {
		c.Set(Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2})
		return
	}
	for y := max(y0, 0); y <= min(y1, c.subRows-1); y++ {
		for x := max(x0, 0); x <= min(x1, c.cols-1); x++ {
			c.pixels[y*c.cols+x] = true
		}
	}
}

// Polygon draws the outline of a closed polygon, filling it when filled is true.
func (c *Canvas) Polygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.Line(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills a polygon with a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		minY = math.Min(minY, scaled[i].Y)
		maxY = math.Max(maxY, scaled[i].Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i := range scaled {
			p1, p2 := scaled[i], scaled[(i+1)%len(scaled)]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = xs
		slices.Sort(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// cell returns the half-block rune for terminal cell (col, row).
func (c *Canvas) cell(col, row int) rune {
	top := c.pixels[row*2*c.cols+col]
	bottom := c.pixels[(row*2+1)*c.cols+col]
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	default:
		return BlockEmpty
	}
}

// Render writes the cells that changed since the last Render.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	for row := 0; row < c.rows; row++ {
		lastCol := -2
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			ch := c.cell(col, row)
			if c.shown[i] == ch {
				continue
			}
			c.shown[i] = ch
			// Consecutive cells need no cursor move
			if col != lastCol+1 {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			c.renderBuf.WriteRune(ch)
			lastCol = col
		}
	}
	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder draws a box around the canvas when the offset leaves room for it.
func (c *Canvas) RenderBorder(w io.Writer) error {
	if c.offsetCol < 1 || c.offsetRow < 1 {
		return nil
	}
	left, right := c.offsetCol, c.offsetCol+c.cols+1
	top, bottom := c.offsetRow, c.offsetRow+c.rows+1
	line := strings.Repeat("─", c.cols)

	var b strings.Builder
	b.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left) + "H┌" + line + "┐")
	b.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left) + "H└" + line + "┘")
	for row := top + 1; row < bottom; row++ {
		b.WriteString("\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(left) + "H│")
		b.WriteString("\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(right) + "H│")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ToField converts a 0-based canvas column to a playfield x at the cell center.
func (c *Canvas) ToField(col int) float64 {
	if c.scaleX == 0 {
		return 0
	}
	return (float64(col) + 0.5) / c.scaleX
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
