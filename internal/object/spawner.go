package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/starfall/internal/config"
)

// Asset variant names. Each spawn picks one; presentation maps them to visuals.
const (
	PlayerVariant = "ship"
	BulletVariant = "laser"
	BombVariant   = "plasma"
)

var (
	EnemyVariants     = []string{"ufo_green", "ufo_red", "ufo_blue"}
	AsteroidVariants  = []string{"rock_grey", "rock_brown", "rock_ice"}
	ExplosionVariants = []string{"burst_a", "burst_b", "burst_c", "burst_d"}
)

const (
	minAsteroidVerts = 8
	maxAsteroidVerts = 12
)

// Spawner creates entities, gives them an ID and a visual, registers them in
// their group and announces them to the scene. All randomness of the
// simulation comes from its rng, at spawn time only.
type Spawner struct {
	tuning config.Tuning
	rng    *rand.Rand
	groups *Groups
	assets Assets
	scene  Scene
	nextID ID
}

// NewSpawner creates a spawner over the given groups. assets and scene may be nil.
func NewSpawner(t config.Tuning, rng *rand.Rand, groups *Groups, assets Assets, scene Scene) *Spawner {
	return &Spawner{
		tuning: t,
		rng:    rng,
		groups: groups,
		assets: assets,
		scene:  scene,
	}
}

// Chance returns true with probability p.
func (s *Spawner) Chance(p float64) bool {
	return s.rng.Float64() < p
}

// body fills the shared fields and resolves the visual.
func (s *Spawner) body(kind Kind, variant string, x, y, w, h float64) Body {
	s.nextID++
	b := Body{
		ID:      s.nextID,
		Kind:    kind,
		X:       x,
		Y:       y,
		W:       w,
		H:       h,
		Variant: variant,
	}
	if s.assets != nil {
		b.Visual = s.assets.Visual(kind, variant)
	}
	return b
}

func (s *Spawner) announce(e Entity) {
	if s.scene != nil {
		s.scene.AddToScene(e)
	}
}

func (s *Spawner) pick(variants []string) string {
	return variants[s.rng.Intn(len(variants))]
}

// Player creates the ship centered horizontally near the bottom edge.
// The caller owns the singleton; it is not part of any group.
func (s *Spawner) Player() *Player {
	pt := s.tuning.Player
	p := &Player{
		Body:           s.body(KindPlayer, PlayerVariant, s.tuning.Field.Width/2, s.tuning.Field.Height-pt.BottomMargin, pt.Width, pt.Height),
		Speed:          pt.Speed,
		CooldownFrames: pt.CooldownFrames,
	}
	s.announce(p)
	return p
}

// Bullet fires a bullet upward from (x, y).
func (s *Spawner) Bullet(x, y float64) (*Bullet, bool) {
	bt := s.tuning.Bullet
	b := &Bullet{
		Body: s.body(KindBullet, BulletVariant, x, y, bt.Width, bt.Height),
		VY:   -bt.Speed,
	}
	s.groups.Bullets.Insert(b)
	s.announce(b)
	return b, true
}

// Bomb drops a bomb downward from (x, y).
func (s *Spawner) Bomb(x, y float64) (*Bomb, bool) {
	bt := s.tuning.Bomb
	b := &Bomb{
		Body: s.body(KindBomb, BombVariant, x, y, bt.Width, bt.Height),
		VY:   bt.Speed,
	}
	s.groups.Bombs.Insert(b)
	s.announce(b)
	return b, true
}

// Enemy spawns a UFO at a random spot of the patrol band.
// Returns false when the population cap is reached.
func (s *Spawner) Enemy() (*Enemy, bool) {
	et := s.tuning.Enemy
	if s.groups.Enemies.Len() >= et.Max {
		return nil, false
	}

	half := et.Width / 2
	x := half + s.rng.Float64()*math.Max(s.tuning.Field.Width-et.Width, 0)
	vx := et.Speed
	if s.rng.Intn(2) == 0 {
		vx = -vx
	}
	phase := s.rng.Float64() * 2 * math.Pi

	e := &Enemy{
		Body:         s.body(KindEnemy, s.pick(EnemyVariants), x, et.Top+et.BobAmplitude*math.Sin(phase), et.Width, et.Height),
		VX:           vx,
		BaseY:        et.Top,
		BobAmplitude: et.BobAmplitude,
		BobRate:      et.BobRate,
		Phase:        phase,
		BombInterval: et.BombInterval,
		BombTimer:    et.BombInterval * (0.5 + s.rng.Float64()*0.5),
	}
	s.groups.Enemies.Insert(e)
	s.announce(e)
	return e, true
}

// Asteroid spawns a rock somewhere in the upper part of the playfield with a
// random size, heading and spin. Returns false when the population cap is reached.
func (s *Spawner) Asteroid() (*Asteroid, bool) {
	at := s.tuning.Asteroid
	if s.groups.Asteroids.Len() >= at.Max {
		return nil, false
	}

	size := at.MinSize + s.rng.Float64()*(at.MaxSize-at.MinSize)
	x := s.rng.Float64() * s.tuning.Field.Width
	// Keep clear of the ship's lane
	y := s.rng.Float64() * s.tuning.Field.Height * 0.6

	heading := s.rng.Float64() * 2 * math.Pi
	speed := at.MaxSpeed * (0.3 + s.rng.Float64()*0.7)

	// Irregular outline, vary radius by ±30%
	n := minAsteroidVerts + s.rng.Intn(maxAsteroidVerts-minAsteroidVerts+1)
	verts := make([]float64, n)
	for i := range verts {
		verts[i] = 0.7 + s.rng.Float64()*0.6
	}

	a := &Asteroid{
		Body:     s.body(KindAsteroid, s.pick(AsteroidVariants), x, y, size, size),
		VX:       math.Cos(heading) * speed,
		VY:       math.Sin(heading) * speed,
		Angle:    s.rng.Float64() * 2 * math.Pi,
		Spin:     (s.rng.Float64()*2 - 1) * at.MaxSpin,
		Vertices: verts,
	}
	s.groups.Asteroids.Insert(a)
	s.announce(a)
	return a, true
}

// Explosion starts a random explosion sequence centered on (x, y).
func (s *Spawner) Explosion(x, y float64) *Explosion {
	xt := s.tuning.Explosion
	e := &Explosion{
		Body:   s.body(KindExplosion, s.pick(ExplosionVariants), x, y, xt.Width, xt.Height),
		Speed:  xt.Speed,
		Frames: xt.Frames,
	}
	s.groups.Explosions.Insert(e)
	s.announce(e)
	return e
}
