package loop

// State is the phase of a round.
type State int

const (
	StatePlaying    State = iota // Round in progress
	StateGameOver                // Lost: too many hits or the clock ran out
	StateYouWin                  // Won: every enemy of the round destroyed
	StateRestarting              // Transient, while the world is rebuilt
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game-over"
	case StateYouWin:
		return "you-win"
	case StateRestarting:
		return "restarting"
	default:
		return "unknown"
	}
}

// Terminal reports whether the round has ended and waits for a restart.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateYouWin
}

// banner returns the HUD message shown while in s.
func (s State) banner() (Message, bool) {
	switch s {
	case StateGameOver:
		return MessageGameOver, true
	case StateYouWin:
		return MessageYouWin, true
	default:
		return 0, false
	}
}
