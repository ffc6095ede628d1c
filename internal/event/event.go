// Package event provides the typed publish/subscribe hub that decouples the
// collision pass and the round clock from the game state machine.
package event

import (
	"github.com/tomz197/starfall/internal/object"
)

// Type discriminates the Event union.
type Type int

const (
	TypeKill Type = iota
	TypePlayerHit
	TypeGameOver
	TypeYouWin
	TypeRestart
)

func (t Type) String() string {
	switch t {
	case TypeKill:
		return "kill"
	case TypePlayerHit:
		return "player-hit"
	case TypeGameOver:
		return "game-over"
	case TypeYouWin:
		return "you-win"
	case TypeRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is a game-level occurrence. The concrete types below are the only members.
type Event interface {
	Type() Type
}

// Kill is raised once per destroyed enemy.
type Kill struct {
	EnemyID object.ID
	X, Y    float64
}

// PlayerHit is raised at most once per frame when a bomb locks the ship.
type PlayerHit struct {
	Hits int // Total hits this round, including this one
}

// GameOver ends the round as a loss.
type GameOver struct {
	Reason string // "hits" or "time"
}

// Reasons carried by GameOver.
const (
	ReasonHits = "hits"
	ReasonTime = "time"
)

// YouWin ends the round as a win.
type YouWin struct{}

// Restart asks for a new round. From names the terminal state being left.
type Restart struct {
	From string
}

func (Kill) Type() Type      { return TypeKill }
func (PlayerHit) Type() Type { return TypePlayerHit }
func (GameOver) Type() Type  { return TypeGameOver }
func (YouWin) Type() Type    { return TypeYouWin }
func (Restart) Type() Type   { return TypeRestart }
