// Package physics provides axis-aligned overlap tests and playfield bound helpers.
package physics

import "math"

// Rect is an axis-aligned bounding box in playfield coordinates.
// Min is the top-left corner, Max the bottom-right (y grows downward).
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectAround returns the box of size w×h centered on (cx, cy).
func RectAround(cx, cy, w, h float64) Rect {
	hw, hh := w/2, h/2
	return Rect{MinX: cx - hw, MinY: cy - hh, MaxX: cx + hw, MaxY: cy + hh}
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Overlaps reports whether two boxes intersect.
// Boxes that only share an edge do not overlap, so Overlaps(a, b) == Overlaps(b, a).
func Overlaps(a, b Rect) bool {
	return a.MinX < b.MaxX && b.MinX < a.MaxX &&
		a.MinY < b.MaxY && b.MinY < a.MaxY
}

// Inside reports whether r lies completely within bounds.
func (r Rect) Inside(bounds Rect) bool {
	return r.MinX >= bounds.MinX && r.MaxX <= bounds.MaxX &&
		r.MinY >= bounds.MinY && r.MaxY <= bounds.MaxY
}

// Clamp limits v to [lo, hi]. If lo > hi the midpoint is returned.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}

// Wrap maps v into [0, size).
func Wrap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}

// Approach moves current toward target by at most step and returns the result.
func Approach(current, target, step float64) float64 {
	if step <= 0 {
		return current
	}
	d := target - current
	if math.Abs(d) <= step {
		return target
	}
	if d > 0 {
		return current + step
	}
	return current - step
}
