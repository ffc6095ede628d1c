package object

import (
	"math"
)

// Enemy is a UFO patrolling the top band of the playfield.
type Enemy struct {
	Body
	VX           float64 // Horizontal velocity; sign flips at the side walls
	BaseY        float64 // Center line of the bobbing motion
	BobAmplitude float64
	BobRate      float64 // Radians per frame
	Phase        float64 // Current bob phase
	BombInterval float64 // Frames between bombs
	BombTimer    float64 // Frames until the next bomb
}

// Tick patrols, bobs and drops a bomb whenever the timer runs out.
func (e *Enemy) Tick(ctx TickContext) (bool, error) {
	if !e.Alive() {
		return false, nil
	}

	// Patrol and bounce off the side walls
	e.X += e.VX * ctx.Delta
	half := e.W / 2
	if e.X-half < ctx.Field.MinX {
		e.X = ctx.Field.MinX + half
		e.VX = math.Abs(e.VX)
	} else if e.X+half > ctx.Field.MaxX {
		e.X = ctx.Field.MaxX - half
		e.VX = -math.Abs(e.VX)
	}

	// Bob around the patrol line
	e.Phase += e.BobRate * ctx.Delta
	e.Y = e.BaseY + e.BobAmplitude*math.Sin(e.Phase)

	e.BombTimer -= ctx.Delta
	if e.BombTimer <= 0 {
		if ctx.Spawn != nil {
			ctx.Spawn.Bomb(e.X, e.Y+e.H/2)
		}
		e.BombTimer += e.BombInterval
		if e.BombTimer <= 0 {
			e.BombTimer = e.BombInterval
		}
	}

	return false, nil
}
