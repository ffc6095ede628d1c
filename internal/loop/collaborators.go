package loop

import (
	"errors"

	"github.com/tomz197/starfall/internal/object"
)

// ErrMissingCollaborator is returned by New when a required collaborator is nil.
var ErrMissingCollaborator = errors.New("missing collaborator")

// Sound identifies an audio cue.
type Sound int

const (
	SoundShot Sound = iota
	SoundExplosion
	SoundHit
	SoundYouWin
	SoundGameOver
)

func (s Sound) String() string {
	switch s {
	case SoundShot:
		return "shot"
	case SoundExplosion:
		return "explosion"
	case SoundHit:
		return "hit"
	case SoundYouWin:
		return "you-win"
	case SoundGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Audio plays sound cues. Play may be called from any goroutine and must not block.
type Audio interface {
	Play(s Sound)
}

// Message identifies a HUD banner.
type Message int

const (
	MessageGameOver Message = iota
	MessageYouWin
)

func (m Message) String() string {
	switch m {
	case MessageGameOver:
		return "GAME OVER"
	case MessageYouWin:
		return "YOU WIN"
	default:
		return ""
	}
}

// Stats is the HUD summary pushed at the end of every frame.
type Stats struct {
	State       State
	Kills       int
	Shots       int
	Hits        int
	MaxHits     int
	TimeLeft    float64 // Seconds remaining in the round
	TimeLimited bool    // False when the round has no clock
	Enemies     int
	Asteroids   int
}

// HUD shows round stats and terminal banners.
type HUD interface {
	ShowMessage(m Message)
	HideMessage(m Message)
	UpdateStats(s Stats)
}

// Input is polled once per frame.
type Input interface {
	Poll() object.Controls
}
