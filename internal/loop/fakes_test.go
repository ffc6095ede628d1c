package loop

import (
	"bytes"
	"math/rand"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/object"
)

type fakeAudio struct {
	mu      sync.Mutex
	played  []Sound
	panicOn []Sound
}

func (a *fakeAudio) Play(s Sound) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if slices.Contains(a.panicOn, s) {
		panic("audio device lost")
	}
	a.played = append(a.played, s)
}

func (a *fakeAudio) count(s Sound) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, p := range a.played {
		if p == s {
			n++
		}
	}
	return n
}

type fakeHUD struct {
	shown   []Message
	hidden  []Message
	visible map[Message]bool
	last    Stats
	updates int
}

func (h *fakeHUD) ShowMessage(m Message) {
	h.shown = append(h.shown, m)
	h.visible[m] = true
}

func (h *fakeHUD) HideMessage(m Message) {
	h.hidden = append(h.hidden, m)
	delete(h.visible, m)
}

func (h *fakeHUD) UpdateStats(s Stats) {
	h.last = s
	h.updates++
}

type fakeInput struct {
	controls object.Controls
}

func (i *fakeInput) Poll() object.Controls {
	return i.controls
}

// fakeScene tracks the live set and fails the test on unbalanced calls.
type fakeScene struct {
	t    *testing.T
	live map[object.ID]object.Entity
}

func (s *fakeScene) AddToScene(e object.Entity) {
	id := e.Base().ID
	if _, ok := s.live[id]; ok {
		s.t.Errorf("entity %d added twice", id)
	}
	s.live[id] = e
}

func (s *fakeScene) RemoveFromScene(e object.Entity) {
	id := e.Base().ID
	if _, ok := s.live[id]; !ok {
		s.t.Errorf("entity %d removed but not in scene", id)
	}
	delete(s.live, id)
}

type fakeAssets struct{}

func (fakeAssets) Visual(kind object.Kind, variant string) object.Visual {
	return variant
}

type harness struct {
	loop  *Loop
	world *World
	audio *fakeAudio
	hud   *fakeHUD
	input *fakeInput
	scene *fakeScene
	logs  *bytes.Buffer
}

// quietTuning has no random spawns, one enemy, no reinforcements and no clock.
func quietTuning() config.Tuning {
	t := config.Default()
	t.Asteroid.Initial = 0
	t.Asteroid.SpawnChance = 0
	t.Enemy.Initial = 1
	t.Enemy.Reinforcements = 0
	t.Round.Seconds = 0
	return t
}

func newHarness(t *testing.T, tuning config.Tuning, seed int64) *harness {
	t.Helper()
	h := &harness{
		audio: &fakeAudio{},
		hud:   &fakeHUD{visible: make(map[Message]bool)},
		input: &fakeInput{},
		scene: &fakeScene{t: t, live: make(map[object.ID]object.Entity)},
		logs:  &bytes.Buffer{},
	}
	l, err := New(Options{
		Tuning:     tuning,
		Rand:       rand.New(rand.NewSource(seed)),
		Assets:     fakeAssets{},
		Scene:      h.scene,
		Audio:      h.audio,
		HUD:        h.hud,
		Input:      h.input,
		Logger:     log.New(h.logs),
		SoundDelay: 20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.loop = l
	h.world = l.World()
	h.input.controls.PointerX = h.world.Player.X
	return h
}

// parkEnemies stops every enemy at a fixed spot so tests can aim at it.
func (h *harness) parkEnemies() []*object.Enemy {
	var enemies []*object.Enemy
	x := 200.0
	h.world.Groups.Enemies.ForEach(func(e *object.Enemy) {
		e.X, e.Y, e.BaseY = x, 100, 100
		e.VX, e.BobAmplitude = 0, 0
		e.BombTimer = 1e9
		enemies = append(enemies, e)
		x += 200
	})
	return enemies
}
