package object

import (
	"github.com/tomz197/starfall/internal/physics"
)

// Asteroid is a drifting rock. It wraps around the playfield and never expires on its own.
type Asteroid struct {
	Body
	VX, VY   float64   // Velocity
	Angle    float64   // Current rotation in radians
	Spin     float64   // Radians per frame
	Vertices []float64 // Outline radii as a fraction of the half size (irregular shape)
}

// Tick drifts, spins and wraps the asteroid.
func (a *Asteroid) Tick(ctx TickContext) (bool, error) {
	if !a.Alive() {
		return false, nil
	}

	a.X += a.VX * ctx.Delta
	a.Y += a.VY * ctx.Delta
	a.Angle += a.Spin * ctx.Delta

	// Screen wrapping
	a.X = ctx.Field.MinX + physics.Wrap(a.X-ctx.Field.MinX, ctx.Field.Width())
	a.Y = ctx.Field.MinY + physics.Wrap(a.Y-ctx.Field.MinY, ctx.Field.Height())

	return false, nil
}
