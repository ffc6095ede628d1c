package object

import (
	"math"
	"testing"

	"github.com/tomz197/starfall/internal/physics"
)

var field = physics.Rect{MaxX: 800, MaxY: 600}

type stubSpawns struct {
	bullets [][2]float64
	bombs   [][2]float64
}

func (s *stubSpawns) Bullet(x, y float64) (*Bullet, bool) {
	s.bullets = append(s.bullets, [2]float64{x, y})
	return &Bullet{}, true
}

func (s *stubSpawns) Bomb(x, y float64) (*Bomb, bool) {
	s.bombs = append(s.bombs, [2]float64{x, y})
	return &Bomb{}, true
}

func TestBulletExpiresOffscreen(t *testing.T) {
	b := &Bullet{Body: Body{X: 100, Y: 10, W: 4, H: 10}, VY: -10}
	ctx := TickContext{Delta: 1, Field: field}

	expired, err := b.Tick(ctx)
	if err != nil || expired {
		t.Fatalf("first tick: expired=%v err=%v, want still inside", expired, err)
	}
	if b.Y != 0 {
		t.Errorf("Y = %v, want 0", b.Y)
	}
	expired, _ = b.Tick(ctx)
	if !expired {
		t.Error("bullet fully above the field should expire")
	}
}

func TestBombExpiresOffscreen(t *testing.T) {
	b := &Bomb{Body: Body{X: 100, Y: 590, W: 4, H: 10}, VY: 20}
	expired, _ := b.Tick(TickContext{Delta: 1, Field: field})
	if !expired {
		t.Error("bomb fully below the field should expire")
	}
}

func TestEnemyBouncesAndBombs(t *testing.T) {
	e := &Enemy{
		Body:         Body{X: 790, Y: 90, W: 40, H: 20},
		VX:           5,
		BaseY:        90,
		BombInterval: 3,
		BombTimer:    2,
	}
	spawns := &stubSpawns{}
	ctx := TickContext{Delta: 1, Field: field, Spawn: spawns}

	e.Tick(ctx)
	if e.X != 780 || e.VX >= 0 {
		t.Errorf("after hitting the wall X=%v VX=%v, want 780 and negative", e.X, e.VX)
	}
	if len(spawns.bombs) != 0 {
		t.Fatal("bomb dropped too early")
	}
	e.Tick(ctx)
	if len(spawns.bombs) != 1 {
		t.Fatalf("bombs = %d, want 1", len(spawns.bombs))
	}
	if e.BombTimer != 3 {
		t.Errorf("BombTimer = %v, want reset to 3", e.BombTimer)
	}
}

func TestEnemyBobs(t *testing.T) {
	e := &Enemy{
		Body:         Body{X: 400, Y: 90, W: 40, H: 20},
		BaseY:        90,
		BobAmplitude: 10,
		BobRate:      math.Pi / 2,
		BombInterval: 100,
		BombTimer:    100,
	}
	e.Tick(TickContext{Delta: 1, Field: field})
	if math.Abs(e.Y-100) > 1e-9 {
		t.Errorf("Y = %v, want 100 at the top of the bob", e.Y)
	}
}

func TestAsteroidWraps(t *testing.T) {
	a := &Asteroid{Body: Body{X: 799, Y: 1, W: 20, H: 20}, VX: 2, VY: -2, Spin: 0.1}
	expired, _ := a.Tick(TickContext{Delta: 1, Field: field})
	if expired {
		t.Fatal("asteroids never expire")
	}
	if math.Abs(a.X-1) > 1e-9 || math.Abs(a.Y-599) > 1e-9 {
		t.Errorf("position = (%v, %v), want (1, 599)", a.X, a.Y)
	}
	if a.Angle != 0.1 {
		t.Errorf("Angle = %v, want 0.1", a.Angle)
	}
}

func TestExplosionRunsTwelveFrames(t *testing.T) {
	e := &Explosion{Speed: 0.25, Frames: 12}
	ctx := TickContext{Delta: 1, Field: field}
	ticks := 0
	for {
		ticks++
		expired, _ := e.Tick(ctx)
		if expired {
			break
		}
		if ticks > 100 {
			t.Fatal("explosion never expired")
		}
	}
	if ticks != 48 {
		t.Errorf("expired after %d ticks, want 48", ticks)
	}
	if e.CurrentFrame() != 11 {
		t.Errorf("CurrentFrame = %d, want 11", e.CurrentFrame())
	}
}

func TestPlayerFollowsPointerClamped(t *testing.T) {
	p := &Player{Body: Body{X: 400, Y: 560, W: 40, H: 20}, Speed: 50}
	ctx := TickContext{Delta: 1, Field: field, Controls: Controls{PointerX: 420}}

	p.Tick(ctx)
	if p.X != 420 {
		t.Errorf("X = %v, want 420", p.X)
	}

	ctx.Controls.PointerX = 10_000
	for i := 0; i < 20; i++ {
		p.Tick(ctx)
	}
	if p.X != 780 {
		t.Errorf("X = %v, want clamped to 780", p.X)
	}
}

func TestPlayerShootingCooldown(t *testing.T) {
	p := &Player{Body: Body{X: 400, Y: 560, W: 40, H: 20}, Speed: 5, CooldownFrames: 3}
	spawns := &stubSpawns{}
	ctx := TickContext{Delta: 1, Field: field, Controls: Controls{PointerX: 400, Shoot: true}, Spawn: spawns}

	for i := 0; i < 4; i++ {
		p.Tick(ctx)
	}
	if len(spawns.bullets) != 2 {
		t.Fatalf("bullets = %d, want 2 (frames 0 and 3)", len(spawns.bullets))
	}
	if got := spawns.bullets[0]; got != [2]float64{400, 550} {
		t.Errorf("bullet spawned at %v, want ship nose (400, 550)", got)
	}
	if p.Shots != 2 {
		t.Errorf("Shots = %d, want 2", p.Shots)
	}
}

func TestPlayerLock(t *testing.T) {
	p := &Player{Body: Body{X: 400, Y: 560, W: 40, H: 20}, Speed: 50}
	spawns := &stubSpawns{}

	if !p.Lock(2) {
		t.Fatal("Lock should succeed on a free ship")
	}
	if p.Lock(2) {
		t.Error("Lock should fail while already locked")
	}
	if p.Hits != 1 {
		t.Errorf("Hits = %d, want 1", p.Hits)
	}

	ctx := TickContext{Delta: 1, Field: field, Controls: Controls{PointerX: 100, Shoot: true}, Spawn: spawns}
	p.Tick(ctx)
	if p.X != 400 || len(spawns.bullets) != 0 {
		t.Fatal("locked ship must not move or shoot")
	}
	p.Tick(ctx)
	if p.Locked {
		t.Fatal("lock should be released after its frames ran out")
	}
	p.Tick(ctx)
	if p.X == 400 || len(spawns.bullets) != 1 {
		t.Error("ship should move and shoot again after the lock")
	}
}

func TestDestroyedEntitiesDoNotTick(t *testing.T) {
	b := &Bullet{Body: Body{X: 100, Y: 100, W: 2, H: 2}, VY: -5}
	if !b.Destroy() {
		t.Fatal("first Destroy should report true")
	}
	if b.Destroy() {
		t.Error("second Destroy should report false")
	}
	b.Tick(TickContext{Delta: 1, Field: field})
	if b.Y != 100 {
		t.Error("destroyed bullet moved")
	}
}
