package loop

import (
	"math/rand"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/event"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/physics"
)

// World is the simulation context of one game: the groups, the player, the
// round counters and the event hub. It is owned by a single goroutine.
type World struct {
	Tuning  config.Tuning
	Field   physics.Rect
	Groups  *object.Groups
	Player  *object.Player
	Hub     *event.Hub
	Spawner *object.Spawner

	Kills          int     // Enemies destroyed this round
	EnemiesSpawned int     // Enemies spawned this round, counted against the budget
	TimeLeft       float64 // Frames left on the round clock

	reinforceTimer float64 // Frames until the next enemy reinforcement
	pending        event.Queue
	scene          object.Scene
	audio          Audio
}

// NewWorld creates an empty world. Call Populate to start a round.
func NewWorld(t config.Tuning, rng *rand.Rand, assets object.Assets, scene object.Scene, audio Audio) *World {
	groups := object.NewGroups(scene)
	return &World{
		Tuning:  t,
		Field:   physics.Rect{MaxX: t.Field.Width, MaxY: t.Field.Height},
		Groups:  groups,
		Hub:     event.NewHub(),
		Spawner: object.NewSpawner(t, rng, groups, assets, scene),
		scene:   scene,
		audio:   audio,
	}
}

// Populate spawns the player and the initial enemies and asteroids, and
// resets the round counters.
func (w *World) Populate() {
	w.Player = w.Spawner.Player()
	for i := 0; i < w.Tuning.Asteroid.Initial; i++ {
		w.Spawner.Asteroid()
	}
	w.EnemiesSpawned = 0
	for i := 0; i < w.Tuning.Enemy.Initial; i++ {
		if _, ok := w.Spawner.Enemy(); ok {
			w.EnemiesSpawned++
		}
	}
	w.Kills = 0
	w.TimeLeft = w.Tuning.RoundFrames()
	w.reinforceTimer = w.Tuning.Enemy.SpawnInterval
	w.pending = event.Queue{}
}

// Reset clears every group, removes the player and populates a fresh round.
// Hub handlers are kept.
func (w *World) Reset() {
	w.Groups.Clear()
	w.removePlayer()
	w.Populate()
}

func (w *World) removePlayer() {
	p := w.Player
	if p == nil {
		return
	}
	w.Player = nil
	if !p.Destroy() {
		return
	}
	p.Teardown()
	if w.scene != nil {
		w.scene.RemoveFromScene(p)
	}
}

// Shots returns the bullets fired this round.
func (w *World) Shots() int {
	if w.Player == nil {
		return 0
	}
	return w.Player.Shots
}

// Hits returns the bomb hits taken this round.
func (w *World) Hits() int {
	if w.Player == nil {
		return 0
	}
	return w.Player.Hits
}

// EnemyBudget is the total number of enemies a round spawns.
func (w *World) EnemyBudget() int {
	return w.Tuning.Enemy.Initial + w.Tuning.Enemy.Reinforcements
}

// Cleared reports whether every enemy of the round has been spawned and destroyed.
func (w *World) Cleared() bool {
	return w.Groups.Enemies.Len() == 0 && w.EnemiesSpawned >= w.EnemyBudget()
}

// Bullet spawns a player bullet and plays the shot sound. Implements object.Spawns.
func (w *World) Bullet(x, y float64) (*object.Bullet, bool) {
	b, ok := w.Spawner.Bullet(x, y)
	if ok {
		w.audio.Play(SoundShot)
	}
	return b, ok
}

// Bomb spawns an enemy bomb. Implements object.Spawns.
func (w *World) Bomb(x, y float64) (*object.Bomb, bool) {
	return w.Spawner.Bomb(x, y)
}

// explode spawns an explosion and plays its sound.
func (w *World) explode(x, y float64) {
	w.Spawner.Explosion(x, y)
	w.audio.Play(SoundExplosion)
}

// reinforce brings in the next enemy when its timer runs out (or the sky is
// empty) and tops up the asteroid field at random.
func (w *World) reinforce(delta float64) {
	if w.EnemiesSpawned < w.EnemyBudget() {
		w.reinforceTimer -= delta
		if w.reinforceTimer <= 0 || w.Groups.Enemies.Len() == 0 {
			if _, ok := w.Spawner.Enemy(); ok {
				w.EnemiesSpawned++
				w.reinforceTimer = w.Tuning.Enemy.SpawnInterval
			}
		}
	}

	if w.Groups.Asteroids.Len() < w.Tuning.Asteroid.Max && w.Spawner.Chance(w.Tuning.Asteroid.SpawnChance) {
		w.Spawner.Asteroid()
	}
}

// remove takes an entity out of its group. Returns false if it was already gone.
func (w *World) remove(e object.Entity) bool {
	id := e.Base().ID
	switch e.Base().Kind {
	case object.KindBullet:
		return w.Groups.Bullets.Remove(id)
	case object.KindEnemy:
		return w.Groups.Enemies.Remove(id)
	case object.KindBomb:
		return w.Groups.Bombs.Remove(id)
	case object.KindAsteroid:
		return w.Groups.Asteroids.Remove(id)
	case object.KindExplosion:
		return w.Groups.Explosions.Remove(id)
	default:
		return false
	}
}
