package object

// Explosion is a short animation left behind by a destroyed enemy.
type Explosion struct {
	Body
	Frame  float64 // Current animation position
	Speed  float64 // Animation frames advanced per tick
	Frames int     // Length of the sequence
}

// Tick advances the animation. It expires after the last frame.
func (e *Explosion) Tick(ctx TickContext) (bool, error) {
	if !e.Alive() {
		return false, nil
	}
	e.Frame += e.Speed * ctx.Delta
	return e.Frame >= float64(e.Frames), nil
}

// CurrentFrame returns the animation frame to display, in [0, Frames).
func (e *Explosion) CurrentFrame() int {
	f := int(e.Frame)
	if f >= e.Frames {
		f = e.Frames - 1
	}
	if f < 0 {
		f = 0
	}
	return f
}
