package input

import (
	"sync"

	"github.com/tomz197/starfall/internal/object"
)

// Latch is the hand-off point between input goroutines and the simulation.
// Writers may call any method concurrently; the loop polls once per frame.
type Latch struct {
	mu       sync.Mutex
	pointerX float64
	minX     float64
	maxX     float64
	shoot    bool
	restart  bool
	quit     bool
}

// NewLatch creates a latch with the pointer at the middle of [minX, maxX].
func NewLatch(minX, maxX float64) *Latch {
	return &Latch{
		pointerX: (minX + maxX) / 2,
		minX:     minX,
		maxX:     maxX,
	}
}

func (l *Latch) clamp(x float64) float64 {
	return max(l.minX, min(l.maxX, x))
}

// SetPointer moves the pointer to playfield x.
func (l *Latch) SetPointer(x float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pointerX = l.clamp(x)
}

// Nudge moves the pointer by dx, for keyboard steering.
func (l *Latch) Nudge(dx float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pointerX = l.clamp(l.pointerX + dx)
}

// PointerX returns the current pointer position.
func (l *Latch) PointerX() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pointerX
}

// Shoot requests a shot. Requests are merged until the next Poll.
func (l *Latch) Shoot() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shoot = true
}

// RequestRestart asks for a new round.
func (l *Latch) RequestRestart() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.restart = true
}

// RequestQuit asks the frontend to stop.
func (l *Latch) RequestQuit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quit = true
}

// Poll returns the controls for this frame and consumes the shot request.
func (l *Latch) Poll() object.Controls {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := object.Controls{PointerX: l.pointerX, Shoot: l.shoot}
	l.shoot = false
	return c
}

// TakeRestart reports and consumes a pending restart request.
func (l *Latch) TakeRestart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	r := l.restart
	l.restart = false
	return r
}

// QuitRequested reports whether a quit was requested. It stays set.
func (l *Latch) QuitRequested() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quit
}

// Apply feeds one frame of decoded keys into the latch. step is how far a held
// arrow key moves the pointer; toField converts a mouse column to playfield x.
func (l *Latch) Apply(k Keys, step float64, toField func(col int) float64) {
	if k.Mouse && toField != nil {
		l.SetPointer(toField(k.MouseX))
	}
	if k.Left && !k.Right {
		l.Nudge(-step)
	}
	if k.Right && !k.Left {
		l.Nudge(step)
	}
	if k.Shoot {
		l.Shoot()
	}
	if k.Restart {
		l.RequestRestart()
	}
	if k.Quit {
		l.RequestQuit()
	}
}
