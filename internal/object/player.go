package object

import (
	"github.com/tomz197/starfall/internal/physics"
)

// Player is the ship at the bottom of the playfield. It follows the pointer
// horizontally and fires bullets upward.
type Player struct {
	Body
	Speed          float64 // Max horizontal travel per frame
	CooldownFrames float64 // Minimum frames between shots
	Cooldown       float64 // Frames until the next shot is allowed
	Locked         bool    // A bomb hit stunned the ship; no movement or shooting
	LockTimer      float64 // Frames until the lock is released
	Hits           int     // Bomb hits taken this round
	Shots          int     // Bullets fired this round
}

// Tick moves the ship toward the pointer and fires when requested.
// While locked it only counts the lock down.
func (p *Player) Tick(ctx TickContext) (bool, error) {
	if !p.Alive() {
		return false, nil
	}

	if p.Cooldown > 0 {
		p.Cooldown -= ctx.Delta
		if p.Cooldown < 0 {
			p.Cooldown = 0
		}
	}

	if p.Locked {
		p.LockTimer -= ctx.Delta
		if p.LockTimer <= 0 {
			p.Unlock()
		}
		return false, nil
	}

	// Follow the pointer, never leaving the playfield
	half := p.W / 2
	lo, hi := ctx.Field.MinX+half, ctx.Field.MaxX-half
	target := physics.Clamp(ctx.Controls.PointerX, lo, hi)
	p.X = physics.Clamp(physics.Approach(p.X, target, p.Speed*ctx.Delta), lo, hi)

	// Shooting
	if ctx.Controls.Shoot && p.Cooldown <= 0 && ctx.Spawn != nil {
		if _, ok := ctx.Spawn.Bullet(p.X, p.Y-p.H/2); ok {
			p.Cooldown = p.CooldownFrames
			p.Shots++
		}
	}

	return false, nil
}

// Lock stuns the ship for the given number of frames and counts a hit.
// Returns false without changing anything if the ship is already locked.
func (p *Player) Lock(frames float64) bool {
	if p.Locked || !p.Alive() {
		return false
	}
	p.Locked = true
	p.LockTimer = frames
	p.Hits++
	return true
}

// Unlock releases the lock immediately.
func (p *Player) Unlock() {
	p.Locked = false
	p.LockTimer = 0
}

// Teardown releases the lock when the ship leaves the simulation.
func (p *Player) Teardown() {
	p.Unlock()
}
