package loop

import (
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/tomz197/starfall/internal/object"
)

func TestBulletAcrossTwoEnemiesIsDestroyedOnce(t *testing.T) {
	tu := quietTuning()
	tu.Enemy.Initial = 2
	h := newHarness(t, tu, 1)
	enemies := h.parkEnemies()
	enemies[1].X = 230 // Boxes now overlap around x=215
	h.world.Spawner.Bullet(215, 100)

	report := h.world.CollisionPass()

	if len(report.Hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(report.Hits))
	}
	want := map[object.Kind]int{object.KindBullet: 1, object.KindEnemy: 2}
	if !maps.Equal(report.Destroyed, want) {
		t.Errorf("Destroyed = %v, want %v", report.Destroyed, want)
	}
	if report.Kills != 2 || h.world.Groups.Explosions.Len() != 2 {
		t.Errorf("Kills = %d explosions = %d, want 2 and 2", report.Kills, h.world.Groups.Explosions.Len())
	}

	// Events wait for the loop to publish them
	if h.world.Kills != 0 {
		t.Fatal("events must not be published by the collision pass")
	}
	h.world.pending.Flush(h.world.Hub)
	if h.world.Kills != 2 || h.loop.State() != StateYouWin {
		t.Errorf("Kills = %d State = %v, want 2 and you-win", h.world.Kills, h.loop.State())
	}
}

func TestBulletHitsEnemyAndBombTogether(t *testing.T) {
	h := newHarness(t, quietTuning(), 1)
	e := h.parkEnemies()[0]
	bomb, _ := h.world.Spawner.Bomb(e.X, e.Y)
	bullet, _ := h.world.Spawner.Bullet(e.X, e.Y)

	report := h.world.CollisionPass()

	if bomb.Alive() || bullet.Alive() || e.Alive() {
		t.Error("bullet, bomb and enemy should all be destroyed")
	}
	if report.Destroyed[object.KindBullet] != 1 {
		t.Errorf("bullet destroyed %d times, want 1", report.Destroyed[object.KindBullet])
	}
}

func TestBulletDestroysAsteroid(t *testing.T) {
	h := newHarness(t, quietTuning(), 1)
	h.parkEnemies()
	a, _ := h.world.Spawner.Asteroid()
	a.X, a.Y = 600, 300
	h.world.Spawner.Bullet(a.X, a.Y)

	report := h.world.CollisionPass()

	if a.Alive() || report.Destroyed[object.KindAsteroid] != 1 || report.Destroyed[object.KindBullet] != 1 {
		t.Errorf("Destroyed = %v, want the asteroid and the bullet", report.Destroyed)
	}
	if report.Kills != 0 || h.world.Groups.Explosions.Len() != 0 {
		t.Error("asteroids do not count as kills")
	}
}

func TestTouchingEdgesDoNotCollide(t *testing.T) {
	h := newHarness(t, quietTuning(), 1)
	e := h.parkEnemies()[0]
	tu := h.world.Tuning
	// Bullet box ends exactly where the enemy box starts
	h.world.Spawner.Bullet(e.X-tu.Enemy.Width/2-tu.Bullet.Width/2, e.Y)

	if hits := Scan(h.world); len(hits) != 0 {
		t.Errorf("hits = %d, want 0 for touching boxes", len(hits))
	}
}

func TestCollisionOrderIndependent(t *testing.T) {
	run := func(reversed bool) Report {
		tu := quietTuning()
		tu.Enemy.Initial = 2
		h := newHarness(t, tu, 1)
		enemies := h.parkEnemies()
		xs := []float64{enemies[0].X - 10, enemies[0].X + 10, enemies[1].X}
		if reversed {
			xs[0], xs[2] = xs[2], xs[0]
		}
		for _, x := range xs {
			h.world.Spawner.Bullet(x, 100)
		}
		h.world.Spawner.Bomb(enemies[1].X, 100)
		return h.world.CollisionPass()
	}

	a, b := run(false), run(true)
	if !maps.Equal(a.Destroyed, b.Destroyed) || a.Kills != b.Kills || len(a.Hits) != len(b.Hits) {
		t.Errorf("reports differ: %v/%d vs %v/%d", a.Destroyed, a.Kills, b.Destroyed, b.Kills)
	}
	want := map[object.Kind]int{object.KindBullet: 3, object.KindEnemy: 2, object.KindBomb: 1}
	if !maps.Equal(a.Destroyed, want) {
		t.Errorf("Destroyed = %v, want %v", a.Destroyed, want)
	}
}

func TestScanDoesNotMutate(t *testing.T) {
	h := newHarness(t, quietTuning(), 1)
	e := h.parkEnemies()[0]
	b, _ := h.world.Spawner.Bullet(e.X, e.Y)

	if hits := Scan(h.world); len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if !b.Alive() || !e.Alive() || h.world.Groups.Bullets.Len() != 1 {
		t.Error("Scan must not destroy anything")
	}
}

type faulty struct {
	object.Body
	panics bool
	ticks  int
}

func (f *faulty) Tick(object.TickContext) (bool, error) {
	f.ticks++
	if f.panics {
		panic("boom")
	}
	return false, errors.New("bad state")
}

type shortLived struct {
	object.Body
	ticks int
}

func (s *shortLived) Tick(object.TickContext) (bool, error) {
	s.ticks++
	return true, nil
}

func TestTickFailuresAreIsolated(t *testing.T) {
	h := newHarness(t, quietTuning(), 1)
	g := object.NewGroup[object.Entity](object.KindBullet, nil)
	failing := &faulty{Body: object.Body{ID: 1}}
	panicking := &faulty{Body: object.Body{ID: 2}, panics: true}
	expiring := &shortLived{Body: object.Body{ID: 3}}
	g.Insert(failing)
	g.Insert(panicking)
	g.Insert(expiring)

	tickGroup(h.loop, g, object.TickContext{Delta: 1, Field: h.world.Field})

	if failing.ticks != 1 || panicking.ticks != 1 || expiring.ticks != 1 {
		t.Fatal("every entity should be ticked once")
	}
	if !g.Has(1) || !g.Has(2) {
		t.Error("failed entities are skipped, not removed")
	}
	if g.Has(3) {
		t.Error("expired entity should be removed")
	}
	logs := h.logs.String()
	if strings.Count(logs, "tick failed") != 2 || !strings.Contains(logs, "boom") {
		t.Errorf("logs = %q, want two tick failures including the panic", logs)
	}
}

// An 8x8 bullet at (100,100) over an 8x8 enemy at (100,104): one explosion,
// at the enemy.
func TestExplosionSpawnsAtEnemy(t *testing.T) {
	h := newHarness(t, quietTuning(), 1)
	e := h.parkEnemies()[0]
	e.X, e.Y, e.BaseY, e.W, e.H = 100, 104, 104, 8, 8
	b, ok := h.world.Spawner.Bullet(100, 100)
	if !ok {
		t.Fatal("bullet was not spawned")
	}
	b.W, b.H = 8, 8

	h.world.CollisionPass()
	h.world.pending.Flush(h.world.Hub)

	g := h.world.Groups
	if e.Alive() || b.Alive() || g.Enemies.Len() != 0 || g.Bullets.Len() != 0 {
		t.Error("enemy and bullet should both be removed")
	}
	ids := g.Explosions.IDs()
	if len(ids) != 1 {
		t.Fatalf("explosions = %d, want 1", len(ids))
	}
	x, _ := g.Explosions.Get(ids[0])
	if x.X != 100 || x.Y != 104 {
		t.Errorf("explosion at (%v, %v), want (100, 104)", x.X, x.Y)
	}
	if h.world.Kills != 1 {
		t.Errorf("Kills = %d, want 1", h.world.Kills)
	}
}

func TestCollisionFailureDoesNotStopTheLoop(t *testing.T) {
	tu := quietTuning()
	tu.Enemy.Initial = 2
	h := newHarness(t, tu, 1)
	e := h.parkEnemies()[0]
	h.audio.panicOn = []Sound{SoundExplosion}
	h.world.Spawner.Bullet(e.X, e.Y+5)

	h.loop.Frame(1)

	if !strings.Contains(h.logs.String(), "collision pass failed") {
		t.Errorf("logs = %q, want the collision failure", h.logs.String())
	}
	if h.hud.last.State != StatePlaying {
		t.Errorf("HUD state = %v, want playing", h.hud.last.State)
	}

	h.audio.panicOn = nil
	h.loop.Frame(1)
	if h.loop.Frames() != 2 {
		t.Errorf("Frames = %d, want 2", h.loop.Frames())
	}
}
