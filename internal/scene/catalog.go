package scene

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/object"
)

// Shape tells a frontend how to outline a sprite.
type Shape int

const (
	ShapeBox   Shape = iota // Filled rectangle
	ShapeDisc               // Filled ellipse
	ShapeRock               // Irregular polygon from the asteroid outline
	ShapeShip               // Triangle pointing up
	ShapeSaucer             // Flattened disc with a dome
	ShapeBurst              // Expanding ring driven by the animation frame
)

var shapeNames = map[string]Shape{
	"box":    ShapeBox,
	"disc":   ShapeDisc,
	"rock":   ShapeRock,
	"ship":   ShapeShip,
	"saucer": ShapeSaucer,
	"burst":  ShapeBurst,
}

// Sprite is the Visual every frontend in this repository understands.
type Sprite struct {
	Color color.RGBA
	Glyph rune // Cell glyph for character-based frontends
	Shape Shape
}

// ErrInvalidCatalog is wrapped by catalog parse failures.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog implements object.Assets with sprites keyed by "kind/variant".
// Variants without an entry fall back to the kind's entry.
type Catalog struct {
	sprites map[string]Sprite
}

var _ object.Assets = (*Catalog)(nil)

func key(kind object.Kind, variant string) string {
	if variant == "" {
		return kind.String()
	}
	return kind.String() + "/" + variant
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

// DefaultCatalog returns sprites for every variant the spawner uses.
func DefaultCatalog() *Catalog {
	c := &Catalog{sprites: make(map[string]Sprite)}
	c.Register(object.KindPlayer, "", Sprite{Color: rgb(0x4fc3f7), Glyph: '▲', Shape: ShapeShip})
	c.Register(object.KindBullet, "", Sprite{Color: rgb(0xfff176), Glyph: '|', Shape: ShapeBox})
	c.Register(object.KindBomb, "", Sprite{Color: rgb(0xff5252), Glyph: '●', Shape: ShapeDisc})
	c.Register(object.KindEnemy, "", Sprite{Color: rgb(0x69f0ae), Glyph: 'W', Shape: ShapeSaucer})
	c.Register(object.KindEnemy, "ufo_red", Sprite{Color: rgb(0xff8a80), Glyph: 'W', Shape: ShapeSaucer})
	c.Register(object.KindEnemy, "ufo_blue", Sprite{Color: rgb(0x82b1ff), Glyph: 'W', Shape: ShapeSaucer})
	c.Register(object.KindAsteroid, "", Sprite{Color: rgb(0x9e9e9e), Glyph: '@', Shape: ShapeRock})
	c.Register(object.KindAsteroid, "rock_brown", Sprite{Color: rgb(0xa1887f), Glyph: '@', Shape: ShapeRock})
	c.Register(object.KindAsteroid, "rock_ice", Sprite{Color: rgb(0xb3e5fc), Glyph: '@', Shape: ShapeRock})
	c.Register(object.KindExplosion, "", Sprite{Color: rgb(0xffab40), Glyph: '*', Shape: ShapeBurst})
	c.Register(object.KindExplosion, "burst_b", Sprite{Color: rgb(0xffd740), Glyph: '*', Shape: ShapeBurst})
	c.Register(object.KindExplosion, "burst_c", Sprite{Color: rgb(0xff6e40), Glyph: '+', Shape: ShapeBurst})
	c.Register(object.KindExplosion, "burst_d", Sprite{Color: rgb(0xffffff), Glyph: 'x', Shape: ShapeBurst})
	return c
}

// Register sets the sprite of a variant. An empty variant sets the kind's fallback.
func (c *Catalog) Register(kind object.Kind, variant string, s Sprite) {
	c.sprites[key(kind, variant)] = s
}

// Visual returns the sprite for the variant, the kind fallback, or a plain
// white box when neither exists.
func (c *Catalog) Visual(kind object.Kind, variant string) object.Visual {
	if s, ok := c.sprites[key(kind, variant)]; ok {
		return s
	}
	if s, ok := c.sprites[key(kind, "")]; ok {
		return s
	}
	return Sprite{Color: rgb(0xffffff), Glyph: '#', Shape: ShapeBox}
}

// SpriteOf returns the sprite attached to an entity.
func SpriteOf(e object.Entity) Sprite {
	if s, ok := e.Base().Visual.(Sprite); ok {
		return s
	}
	return Sprite{Color: rgb(0xffffff), Glyph: '#', Shape: ShapeBox}
}

// spriteEntry is one catalog override as written in YAML.
type spriteEntry struct {
	Color string `yaml:"color"` // "#rrggbb"
	Glyph string `yaml:"glyph"`
	Shape string `yaml:"shape"`
}

// LoadCatalog reads sprite overrides on top of DefaultCatalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// CatalogFromEnv loads the catalog named by STARFALL_SPRITES, or returns the
// defaults when the variable is unset.
func CatalogFromEnv() (*Catalog, error) {
	path := config.GetEnv(config.EnvSpritesPath, "")
	if path == "" {
		return DefaultCatalog(), nil
	}
	return LoadCatalog(path)
}

// ParseCatalog decodes sprite overrides keyed by "kind" or "kind/variant":
//
//	enemy/ufo_red:
//	  color: "#ff0000"
//	  glyph: "V"
//	  shape: saucer
//
// Fields left out keep the value the key already had.
func ParseCatalog(data []byte) (*Catalog, error) {
	var entries map[string]spriteEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := DefaultCatalog()
	for k, entry := range entries {
		kindName, variant, _ := strings.Cut(k, "/")
		kind, ok := kindByName(kindName)
		if !ok {
			return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidCatalog, kindName)
		}
		s := c.Visual(kind, variant).(Sprite)
		if entry.Color != "" {
			col, err := parseColor(entry.Color)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, k, err)
			}
			s.Color = col
		}
		if entry.Glyph != "" {
			s.Glyph = []rune(entry.Glyph)[0]
		}
		if entry.Shape != "" {
			shape, ok := shapeNames[entry.Shape]
			if !ok {
				return nil, fmt.Errorf("%w: %s: unknown shape %q", ErrInvalidCatalog, k, entry.Shape)
			}
			s.Shape = shape
		}
		c.Register(kind, variant, s)
	}
	return c, nil
}

func kindByName(name string) (object.Kind, bool) {
	for k := object.KindBullet; k <= object.KindPlayer; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

func parseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return rgb(uint32(v)), nil
}
