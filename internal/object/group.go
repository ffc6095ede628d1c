package object

// Group is the ordered set of live entities of one kind.
// Membership always equals the alive entities of that kind: Remove destroys.
type Group[T Entity] struct {
	kind     Kind
	order    []ID
	members  map[ID]T
	onRemove func(T)
}

// NewGroup creates an empty group. onRemove (may be nil) runs once for every
// entity that leaves the group, after its kind-specific teardown.
func NewGroup[T Entity](kind Kind, onRemove func(T)) *Group[T] {
	return &Group[T]{
		kind:     kind,
		members:  make(map[ID]T),
		onRemove: onRemove,
	}
}

// Kind returns the kind of entity the group holds.
func (g *Group[T]) Kind() Kind {
	return g.kind
}

// Insert adds a live entity and returns its ID. Inserting an ID that is
// already present, or an entity that was destroyed, changes nothing.
func (g *Group[T]) Insert(e T) ID {
	body := e.Base()
	if _, ok := g.members[body.ID]; ok || !body.Alive() {
		return body.ID
	}
	g.members[body.ID] = e
	g.order = append(g.order, body.ID)
	return body.ID
}

// Get returns the entity with the given ID.
func (g *Group[T]) Get(id ID) (T, bool) {
	e, ok := g.members[id]
	return e, ok
}

// Has reports whether the ID is a live member.
func (g *Group[T]) Has(id ID) bool {
	_, ok := g.members[id]
	return ok
}

// Len returns the number of live members.
func (g *Group[T]) Len() int {
	return len(g.members)
}

// IDs returns a copy of the member IDs in insertion order.
func (g *Group[T]) IDs() []ID {
	ids := make([]ID, len(g.order))
	copy(ids, g.order)
	return ids
}

// ForEach visits the members present when the call started, in insertion order.
// Members removed during the walk are skipped; members inserted during the walk
// are not visited.
func (g *Group[T]) ForEach(fn func(T)) {
	for _, id := range g.IDs() {
		if e, ok := g.members[id]; ok {
			fn(e)
		}
	}
}

// Remove destroys and removes the entity. Removing an absent ID is a no-op
// and returns false.
func (g *Group[T]) Remove(id ID) bool {
	e, ok := g.members[id]
	if !ok {
		return false
	}
	delete(g.members, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	e.Base().Destroy()
	if t, ok := any(e).(tearer); ok {
		t.Teardown()
	}
	if g.onRemove != nil {
		g.onRemove(e)
	}
	return true
}

// Clear removes every member through the same path as Remove and returns how many left.
func (g *Group[T]) Clear() int {
	n := 0
	for _, id := range g.IDs() {
		if g.Remove(id) {
			n++
		}
	}
	return n
}

// Groups bundles the per-kind groups of one simulation.
type Groups struct {
	Bullets    *Group[*Bullet]
	Enemies    *Group[*Enemy]
	Bombs      *Group[*Bomb]
	Asteroids  *Group[*Asteroid]
	Explosions *Group[*Explosion]
}

// NewGroups creates empty groups that report removals to scene (may be nil).
func NewGroups(scene Scene) *Groups {
	return &Groups{
		Bullets:    NewGroup(KindBullet, leaveScene[*Bullet](scene)),
		Enemies:    NewGroup(KindEnemy, leaveScene[*Enemy](scene)),
		Bombs:      NewGroup(KindBomb, leaveScene[*Bomb](scene)),
		Asteroids:  NewGroup(KindAsteroid, leaveScene[*Asteroid](scene)),
		Explosions: NewGroup(KindExplosion, leaveScene[*Explosion](scene)),
	}
}

func leaveScene[T Entity](scene Scene) func(T) {
	if scene == nil {
		return nil
	}
	return func(e T) {
		scene.RemoveFromScene(e)
	}
}

// Clear empties every group and returns how many entities were removed.
func (g *Groups) Clear() int {
	return g.Bullets.Clear() +
		g.Enemies.Clear() +
		g.Bombs.Clear() +
		g.Asteroids.Clear() +
		g.Explosions.Clear()
}

// Total returns the number of live entities across all groups.
func (g *Groups) Total() int {
	return g.Bullets.Len() + g.Enemies.Len() + g.Bombs.Len() + g.Asteroids.Len() + g.Explosions.Len()
}
