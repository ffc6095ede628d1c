package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every adjustable game parameter. Distances are playfield units,
// speeds are units per frame and timers are frames unless the name says otherwise.
//
// A YAML file only needs the keys it overrides:
//
//	field:
//	  width: 1024
//	asteroid:
//	  initial: 6
type Tuning struct {
	Field     FieldTuning     `yaml:"field"`
	Player    PlayerTuning    `yaml:"player"`
	Bullet    ShotTuning      `yaml:"bullet"`
	Bomb      ShotTuning      `yaml:"bomb"`
	Enemy     EnemyTuning     `yaml:"enemy"`
	Asteroid  AsteroidTuning  `yaml:"asteroid"`
	Explosion ExplosionTuning `yaml:"explosion"`
	Round     RoundTuning     `yaml:"round"`
}

// FieldTuning is the playfield size.
type FieldTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerTuning configures the ship.
type PlayerTuning struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"`          // Max horizontal travel per frame
	BottomMargin   float64 `yaml:"bottomMargin"`   // Distance from the bottom edge to the ship center
	CooldownFrames float64 `yaml:"cooldownFrames"` // Minimum frames between shots
	LockFrames     float64 `yaml:"lockFrames"`     // How long a bomb hit locks the ship
	MaxHits        int     `yaml:"maxHits"`        // Hits that end the round
}

// ShotTuning configures bullets and bombs.
type ShotTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// EnemyTuning configures the UFOs.
type EnemyTuning struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"`
	Top            float64 `yaml:"top"`          // Center line of the patrol band
	BobAmplitude   float64 `yaml:"bobAmplitude"` // Vertical sine amplitude
	BobRate        float64 `yaml:"bobRate"`      // Radians per frame
	BombInterval   float64 `yaml:"bombInterval"`
	Initial        int     `yaml:"initial"`
	Max            int     `yaml:"max"`            // Population cap
	Reinforcements int     `yaml:"reinforcements"` // Extra enemies per round after the initial ones
	SpawnInterval  float64 `yaml:"spawnInterval"`  // Frames between reinforcements
}

// AsteroidTuning configures the drifting rocks.
type AsteroidTuning struct {
	MinSize     float64 `yaml:"minSize"`
	MaxSize     float64 `yaml:"maxSize"`
	MaxSpeed    float64 `yaml:"maxSpeed"`
	MaxSpin     float64 `yaml:"maxSpin"` // Radians per frame
	Initial     int     `yaml:"initial"`
	Max         int     `yaml:"max"`         // Population cap
	SpawnChance float64 `yaml:"spawnChance"` // Per-frame probability of a top-up spawn below the cap
}

// ExplosionTuning configures the destruction animation.
type ExplosionTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // Animation frames advanced per tick
	Frames int     `yaml:"frames"`
}

// RoundTuning configures the round clock and randomness.
type RoundTuning struct {
	Seconds   float64 `yaml:"seconds"`   // Time limit; zero disables it
	FrameRate int     `yaml:"frameRate"` // Frames per second used to convert Seconds
	Seed      int64   `yaml:"seed"`      // Zero picks a time-based seed
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		Field: FieldTuning{Width: 800, Height: 600},
		Player: PlayerTuning{
			Width:          48,
			Height:         32,
			Speed:          9,
			BottomMargin:   40,
			CooldownFrames: 12,
			LockFrames:     90,
			MaxHits:        3,
		},
		Bullet: ShotTuning{Width: 6, Height: 14, Speed: 10},
		Bomb:   ShotTuning{Width: 10, Height: 16, Speed: 4},
		Enemy: EnemyTuning{
			Width:          64,
			Height:         32,
			Speed:          2.5,
			Top:            90,
			BobAmplitude:   24,
			BobRate:        0.05,
			BombInterval:   90,
			Initial:        1,
			Max:            2,
			Reinforcements: 2,
			SpawnInterval:  600,
		},
		Asteroid: AsteroidTuning{
			MinSize:     20,
			MaxSize:     44,
			MaxSpeed:    1.5,
			MaxSpin:     0.05,
			Initial:     10,
			Max:         14,
			SpawnChance: 0.01,
		},
		Explosion: ExplosionTuning{Width: 64, Height: 64, Speed: 0.2, Frames: 12},
		Round:     RoundTuning{Seconds: 120, FrameRate: 60},
	}
}

// RoundFrames returns the time limit in frames, or 0 when the limit is disabled.
func (t Tuning) RoundFrames() float64 {
	if t.Round.Seconds <= 0 {
		return 0
	}
	return t.Round.Seconds * float64(t.Round.FrameRate)
}

// ErrInvalidTuning is wrapped by every validation failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// Load reads a YAML tuning file on top of Default and validates the result.
func Load(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read tuning: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML tuning on top of Default and validates the result.
func Parse(data []byte) (Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Validate checks that the values describe a playable round.
func (t Tuning) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"field.width", t.Field.Width},
		{"field.height", t.Field.Height},
		{"player.width", t.Player.Width},
		{"player.height", t.Player.Height},
		{"bullet.width", t.Bullet.Width},
		{"bullet.height", t.Bullet.Height},
		{"bullet.speed", t.Bullet.Speed},
		{"bomb.width", t.Bomb.Width},
		{"bomb.height", t.Bomb.Height},
		{"bomb.speed", t.Bomb.Speed},
		{"enemy.width", t.Enemy.Width},
		{"enemy.height", t.Enemy.Height},
		{"enemy.bombInterval", t.Enemy.BombInterval},
		{"asteroid.minSize", t.Asteroid.MinSize},
		{"explosion.speed", t.Explosion.Speed},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, p.name, p.value)
		}
	}

	if t.Player.Width > t.Field.Width {
		return fmt.Errorf("%w: player.width (%v) exceeds field.width (%v)", ErrInvalidTuning, t.Player.Width, t.Field.Width)
	}
	if t.Asteroid.MaxSize < t.Asteroid.MinSize {
		return fmt.Errorf("%w: asteroid size range invalid: min(%.1f) > max(%.1f)",
			ErrInvalidTuning, t.Asteroid.MinSize, t.Asteroid.MaxSize)
	}
	if t.Player.MaxHits < 1 {
		return fmt.Errorf("%w: player.maxHits must be at least 1", ErrInvalidTuning)
	}
	if t.Enemy.Initial < 0 || t.Enemy.Max < 0 || t.Enemy.Reinforcements < 0 {
		return fmt.Errorf("%w: enemy counts must not be negative", ErrInvalidTuning)
	}
	if t.Enemy.Initial > t.Enemy.Max {
		return fmt.Errorf("%w: enemy.initial (%d) exceeds enemy.max (%d)", ErrInvalidTuning, t.Enemy.Initial, t.Enemy.Max)
	}
	if t.Asteroid.Initial < 0 || t.Asteroid.Max < t.Asteroid.Initial {
		return fmt.Errorf("%w: asteroid.initial must be within [0, asteroid.max]", ErrInvalidTuning)
	}
	if t.Asteroid.SpawnChance < 0 || t.Asteroid.SpawnChance > 1 {
		return fmt.Errorf("%w: asteroid.spawnChance must be within [0, 1]", ErrInvalidTuning)
	}
	if t.Explosion.Frames < 1 {
		return fmt.Errorf("%w: explosion.frames must be at least 1", ErrInvalidTuning)
	}
	if t.Round.FrameRate < 1 {
		return fmt.Errorf("%w: round.frameRate must be at least 1", ErrInvalidTuning)
	}
	return nil
}
