package object

import (
	"github.com/tomz197/starfall/internal/physics"
)

// Bullet is a shot fired upward by the player.
type Bullet struct {
	Body
	VY float64 // Vertical velocity (negative is up)
}

// Tick moves the bullet. It expires once it has left the playfield entirely.
func (b *Bullet) Tick(ctx TickContext) (bool, error) {
	if !b.Alive() {
		return false, nil
	}
	b.Y += b.VY * ctx.Delta
	return !physics.Overlaps(b.Bounds(), ctx.Field), nil
}

// Bomb is a shot dropped downward by an enemy.
type Bomb struct {
	Body
	VY float64 // Vertical velocity (positive is down)
}

// Tick moves the bomb. It expires once it has left the playfield entirely.
func (b *Bomb) Tick(ctx TickContext) (bool, error) {
	if !b.Alive() {
		return false, nil
	}
	b.Y += b.VY * ctx.Delta
	return !physics.Overlaps(b.Bounds(), ctx.Field), nil
}
