package scene

import (
	"math"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/object"
)

const discSides = 12

// Outline returns the polygon a frontend should draw for e in playfield
// coordinates, and whether it is filled.
func Outline(e object.Entity) ([]draw.Point, bool) {
	b := e.Base()
	hw, hh := b.W/2, b.H/2

	switch SpriteOf(e).Shape {
	case ShapeShip:
		return []draw.Point{
			{X: b.X, Y: b.Y - hh},
			{X: b.X + hw, Y: b.Y + hh},
			{X: b.X, Y: b.Y + hh*0.5},
			{X: b.X - hw, Y: b.Y + hh},
		}, true
	case ShapeDisc:
		return ellipse(b.X, b.Y, hw, hh, discSides), true
	case ShapeSaucer:
		// Wide hull with a dome on top
		return []draw.Point{
			{X: b.X - hw, Y: b.Y + hh*0.3},
			{X: b.X - hw*0.4, Y: b.Y},
			{X: b.X - hw*0.2, Y: b.Y - hh},
			{X: b.X + hw*0.2, Y: b.Y - hh},
			{X: b.X + hw*0.4, Y: b.Y},
			{X: b.X + hw, Y: b.Y + hh*0.3},
			{X: b.X + hw*0.6, Y: b.Y + hh*0.8},
			{X: b.X - hw*0.6, Y: b.Y + hh*0.8},
		}, true
	case ShapeRock:
		a, ok := e.(*object.Asteroid)
		if !ok || len(a.Vertices) < 3 {
			return ellipse(b.X, b.Y, hw, hh, discSides), true
		}
		pts := make([]draw.Point, len(a.Vertices))
		for i, r := range a.Vertices {
			th := a.Angle + 2*math.Pi*float64(i)/float64(len(a.Vertices))
			pts[i] = draw.Point{X: b.X + math.Cos(th)*hw*r, Y: b.Y + math.Sin(th)*hh*r}
		}
		return pts, true
	case ShapeBurst:
		grow := 1.0
		if x, ok := e.(*object.Explosion); ok && x.Frames > 0 {
			grow = float64(x.CurrentFrame()+1) / float64(x.Frames)
		}
		return ellipse(b.X, b.Y, hw*grow, hh*grow, discSides), false
	default:
		return []draw.Point{
			{X: b.X - hw, Y: b.Y - hh},
			{X: b.X + hw, Y: b.Y - hh},
			{X: b.X + hw, Y: b.Y + hh},
			{X: b.X - hw, Y: b.Y + hh},
		}, true
	}
}

func ellipse(cx, cy, rx, ry float64, sides int) []draw.Point {
	pts := make([]draw.Point, sides)
	for i := range pts {
		th := 2 * math.Pi * float64(i) / float64(sides)
		pts[i] = draw.Point{X: cx + math.Cos(th)*rx, Y: cy + math.Sin(th)*ry}
	}
	return pts
}

// Blink reports whether a locked player is drawn on this frame.
func Blink(e object.Entity, frame uint64) bool {
	p, ok := e.(*object.Player)
	if !ok || !p.Locked {
		return true
	}
	return frame/8%2 == 0
}
