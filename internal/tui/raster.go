package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/starfall/internal/draw"
)

// raster is a color buffer of cols × rows*2 sub-pixels. ColorDefault is empty.
type raster struct {
	cols, subRows int
	scaleX        float64
	scaleY        float64
	px            []tcell.Color
}

func (r *raster) resize(cols, rows int, fieldW, fieldH float64) {
	if cols != r.cols || rows*2 != r.subRows {
		r.cols, r.subRows = cols, rows*2
		r.px = make([]tcell.Color, cols*rows*2)
	}
	r.scaleX = float64(cols) / fieldW
	r.scaleY = float64(rows*2) / fieldH
}

func (r *raster) clear() {
	for i := range r.px {
		r.px[i] = tcell.ColorDefault
	}
}

func (r *raster) set(x, y int, c tcell.Color) {
	if x >= 0 && x < r.cols && y >= 0 && y < r.subRows {
		r.px[y*r.cols+x] = c
	}
}

func (r *raster) at(x, y int) tcell.Color {
	return r.px[y*r.cols+x]
}

// polygon paints pts (playfield coordinates). Filled polygons paint every
// sub-pixel whose center is inside; outlines paint the edges.
func (r *raster) polygon(pts []draw.Point, filled bool, c tcell.Color) {
	if len(pts) < 2 {
		return
	}
	scaled := make([]draw.Point, len(pts))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range pts {
		s := draw.Point{X: p.X * r.scaleX, Y: p.Y * r.scaleY}
		scaled[i] = s
		minX, maxX = min(minX, s.X), max(maxX, s.X)
		minY, maxY = min(minY, s.Y), max(maxY, s.Y)
	}

	if !filled {
		for i := range scaled {
			r.line(scaled[i], scaled[(i+1)%len(scaled)], c)
		}
		return
	}

	x0, x1 := int(math.Floor(minX)), int(math.Ceil(maxX))
	y0, y1 := int(math.Floor(minY)), int(math.Ceil(maxY))
	painted := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inside(scaled, float64(x)+0.5, float64(y)+0.5) {
				r.set(x, y, c)
				painted = true
			}
		}
	}
	// Anything smaller than a sub-pixel still shows up as one
	if !painted {
		r.set(int((minX+maxX)/2), int((minY+maxY)/2), c)
	}
}

func (r *raster) line(a, b draw.Point, c tcell.Color) {
	steps := int(math.Ceil(max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
	if steps == 0 {
		r.set(int(a.X), int(a.Y), c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.set(int(a.X+(b.X-a.X)*t), int(a.Y+(b.Y-a.Y)*t), c)
	}
}

// inside is the even-odd point in polygon test.
func inside(pts []draw.Point, x, y float64) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}
