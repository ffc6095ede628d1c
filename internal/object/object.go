// Package object defines the simulated entities, their groups and per-frame behavior.
package object

import (
	"github.com/tomz197/starfall/internal/physics"
)

// ID identifies an entity for its whole lifetime. IDs are never reused within a World.
type ID uint64

// Kind is the entity category. Every kind has exactly one group (the player is a singleton).
type Kind int

const (
	KindBullet Kind = iota
	KindEnemy
	KindBomb
	KindAsteroid
	KindExplosion
	KindPlayer
)

var kindNames = [...]string{
	KindBullet:    "bullet",
	KindEnemy:     "enemy",
	KindBomb:      "bomb",
	KindAsteroid:  "asteroid",
	KindExplosion: "explosion",
	KindPlayer:    "player",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Visual is the opaque presentation handle an Assets provider hands out.
// The simulation stores it and never looks inside.
type Visual any

// Assets prepares visuals for newly spawned entities.
type Assets interface {
	Visual(kind Kind, variant string) Visual
}

// Scene is told about entities entering and leaving the simulation.
type Scene interface {
	AddToScene(e Entity)
	RemoveFromScene(e Entity)
}

// Controls is the input state sampled once per frame.
type Controls struct {
	PointerX float64 // Latest pointer x in playfield coordinates
	Shoot    bool    // A shot was requested since the last frame
}

// Spawns lets entities create other entities while they tick.
type Spawns interface {
	Bullet(x, y float64) (*Bullet, bool)
	Bomb(x, y float64) (*Bomb, bool)
}

// TickContext provides all the information an entity needs for one frame.
type TickContext struct {
	Delta    float64      // Frames elapsed since the previous tick (1 at the nominal rate)
	Field    physics.Rect // Playfield bounds
	Controls Controls
	Spawn    Spawns // May be nil; spawning is then skipped
}

// Entity is a simulated object owned by a group.
type Entity interface {
	// Base exposes the shared identity and geometry.
	Base() *Body

	// Tick advances the entity by ctx.Delta frames. Returns true when its lifetime ended.
	Tick(ctx TickContext) (expired bool, err error)
}

// Body is the state every entity shares. Position is the center of the box.
type Body struct {
	ID      ID
	Kind    Kind
	X, Y    float64
	W, H    float64
	Variant string // Asset variant name picked at spawn time
	Visual  Visual

	destroyed bool
}

// Base returns the body itself; embedding Body gives every kind its Base method.
func (b *Body) Base() *Body {
	return b
}

// Bounds returns the collision box.
func (b *Body) Bounds() physics.Rect {
	return physics.RectAround(b.X, b.Y, b.W, b.H)
}

// Alive reports whether the entity has not been destroyed yet.
func (b *Body) Alive() bool {
	return !b.destroyed
}

// Destroy moves the body from alive to destroyed. Only the first call returns true.
func (b *Body) Destroy() bool {
	if b.destroyed {
		return false
	}
	b.destroyed = true
	return true
}

// tearer is implemented by kinds that release state when they leave their group.
type tearer interface {
	Teardown()
}
