// Package scene keeps what the frontends draw: the live entities reported by
// the simulation, the HUD stats and the visible banners.
package scene

import (
	"cmp"
	"slices"
	"sync"

	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/object"
)

// layers is the draw order, back to front.
var layers = map[object.Kind]int{
	object.KindAsteroid:  0,
	object.KindEnemy:     1,
	object.KindBomb:      2,
	object.KindBullet:    3,
	object.KindExplosion: 4,
	object.KindPlayer:    5,
}

// Stage implements object.Scene and loop.HUD. It only records; it never
// changes an entity.
type Stage struct {
	mu       sync.RWMutex
	entities map[object.ID]object.Entity
	stats    loop.Stats
	messages map[loop.Message]bool
}

var (
	_ object.Scene = (*Stage)(nil)
	_ loop.HUD     = (*Stage)(nil)
)

// NewStage creates an empty stage.
func NewStage() *Stage {
	return &Stage{
		entities: make(map[object.ID]object.Entity),
		messages: make(map[loop.Message]bool),
	}
}

func (s *Stage) AddToScene(e object.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[e.Base().ID] = e
}

func (s *Stage) RemoveFromScene(e object.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entities, e.Base().ID)
}

func (s *Stage) ShowMessage(m loop.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[m] = true
}

func (s *Stage) HideMessage(m loop.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, m)
}

func (s *Stage) UpdateStats(st loop.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = st
}

// Len returns the number of entities on stage.
func (s *Stage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Each visits the entities in draw order: by layer, then by spawn order.
func (s *Stage) Each(fn func(object.Entity)) {
	s.mu.RLock()
	list := make([]object.Entity, 0, len(s.entities))
	for _, e := range s.entities {
		list = append(list, e)
	}
	s.mu.RUnlock()

	slices.SortFunc(list, func(a, b object.Entity) int {
		ab, bb := a.Base(), b.Base()
		if c := cmp.Compare(layers[ab.Kind], layers[bb.Kind]); c != 0 {
			return c
		}
		return cmp.Compare(ab.ID, bb.ID)
	})
	for _, e := range list {
		fn(e)
	}
}

// Stats returns the latest HUD stats.
func (s *Stage) Stats() loop.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Messages returns the visible banners in a stable order.
func (s *Stage) Messages() []loop.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]loop.Message, 0, len(s.messages))
	for m := range s.messages {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}
