package loop

import (
	"github.com/tomz197/starfall/internal/event"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/physics"
)

// Pair names the kinds of entities that can collide.
type Pair int

const (
	PairBulletEnemy Pair = iota
	PairBulletBomb
	PairBulletAsteroid
	PairBombPlayer
)

func (p Pair) String() string {
	switch p {
	case PairBulletEnemy:
		return "bullet-enemy"
	case PairBulletBomb:
		return "bullet-bomb"
	case PairBulletAsteroid:
		return "bullet-asteroid"
	case PairBombPlayer:
		return "bomb-player"
	default:
		return "unknown"
	}
}

// Hit is one overlapping pair found by the scan.
type Hit struct {
	Pair Pair
	A, B object.Entity
}

// Report summarizes one collision pass.
type Report struct {
	Hits      []Hit
	Destroyed map[object.Kind]int // Entities removed, per kind
	Kills     int
	PlayerHit bool
}

// Scan finds every overlapping pair using post-tick positions. It mutates nothing.
func Scan(w *World) []Hit {
	var hits []Hit
	hits = scanPairs(hits, PairBulletEnemy, w.Groups.Bullets, w.Groups.Enemies)
	hits = scanPairs(hits, PairBulletBomb, w.Groups.Bullets, w.Groups.Bombs)
	hits = scanPairs(hits, PairBulletAsteroid, w.Groups.Bullets, w.Groups.Asteroids)

	if p := w.Player; p != nil && p.Alive() {
		pb := p.Bounds()
		w.Groups.Bombs.ForEach(func(b *object.Bomb) {
			if physics.Overlaps(b.Bounds(), pb) {
				hits = append(hits, Hit{Pair: PairBombPlayer, A: b, B: p})
			}
		})
	}
	return hits
}

func scanPairs[A, B object.Entity](hits []Hit, pair Pair, as *object.Group[A], bs *object.Group[B]) []Hit {
	if as.Len() == 0 || bs.Len() == 0 {
		return hits
	}
	var targets []B
	bs.ForEach(func(b B) { targets = append(targets, b) })

	as.ForEach(func(a A) {
		ab := a.Base().Bounds()
		for _, b := range targets {
			if physics.Overlaps(ab, b.Base().Bounds()) {
				hits = append(hits, Hit{Pair: pair, A: a, B: b})
			}
		}
	})
	return hits
}

type entityKey struct {
	kind object.Kind
	id   object.ID
}

// destroySet collects the entities to remove this frame, each once, in the
// order they were first marked.
type destroySet struct {
	seen  map[entityKey]struct{}
	order []object.Entity
}

func (d *destroySet) mark(e object.Entity) bool {
	k := entityKey{kind: e.Base().Kind, id: e.Base().ID}
	if _, ok := d.seen[k]; ok {
		return false
	}
	d.seen[k] = struct{}{}
	d.order = append(d.order, e)
	return true
}

// CollisionPass runs scan, resolve and apply. Resulting events are queued
// and published by the loop once removals are done.
func (w *World) CollisionPass() Report {
	report := Report{
		Hits:      Scan(w),
		Destroyed: make(map[object.Kind]int),
	}
	if len(report.Hits) == 0 {
		return report
	}

	// Resolve: decide outcomes, each entity at most once
	set := destroySet{seen: make(map[entityKey]struct{})}
	var killed []*object.Enemy
	for _, h := range report.Hits {
		switch h.Pair {
		case PairBulletEnemy:
			set.mark(h.A)
			if set.mark(h.B) {
				killed = append(killed, h.B.(*object.Enemy))
			}
		case PairBulletBomb, PairBulletAsteroid:
			set.mark(h.A)
			set.mark(h.B)
		case PairBombPlayer:
			set.mark(h.A)
			if !report.PlayerHit && w.Player.Lock(w.Tuning.Player.LockFrames) {
				report.PlayerHit = true
				w.audio.Play(SoundHit)
				w.pending.Push(event.PlayerHit{Hits: w.Player.Hits})
			}
		}
	}

	// Apply
	for _, e := range set.order {
		if w.remove(e) {
			report.Destroyed[e.Base().Kind]++
		}
	}
	for _, e := range killed {
		w.explode(e.X, e.Y)
		w.pending.Push(event.Kill{EnemyID: e.ID, X: e.X, Y: e.Y})
		report.Kills++
	}
	return report
}
