package scene

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Garsondee/agentview/internal/world"
)

// VisualKind tags the variant held by a Visual.
type VisualKind uint8

const (
	VisualTile VisualKind = iota
	VisualContent
	VisualAgent
	VisualOverlay
	VisualTime
	VisualWeather
	VisualGlyph
	VisualItem
	VisualRect
)

func (k VisualKind) String() string {
	switch k {
	case VisualTile:
		return "tile"
	case VisualContent:
		return "content"
	case VisualAgent:
		return "agent"
	case VisualOverlay:
		return "overlay"
	case VisualTime:
		return "time"
	case VisualWeather:
		return "weather"
	case VisualGlyph:
		return "glyph"
	case VisualItem:
		return "item"
	case VisualRect:
		return "rect"
	default:
		return "unknown"
	}
}

// OverlayKind identifies a tile overlay sprite.
type OverlayKind uint8

const (
	OverlayTileHover OverlayKind = iota
	OverlayTileMarker
)

func (o OverlayKind) String() string {
	switch o {
	case OverlayTileHover:
		return "hover"
	case OverlayTileMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// SpriteKey identifies one entry of a sprite table. Sub is the kind-specific
// selector (tile kind, content kind, overlay kind, rune, ...).
type SpriteKey struct {
	Kind VisualKind
	Sub  int
}

func (k SpriteKey) String() string {
	if k.Kind == VisualGlyph {
		return fmt.Sprintf("glyph(%q)", rune(k.Sub))
	}
	return fmt.Sprintf("%s(%d)", k.Kind, k.Sub)
}

// Visual is a data-only drawable descriptor. Only the fields meaningful for
// Kind are set; build values with the constructor functions below.
type Visual struct {
	Kind VisualKind

	Tile    world.TileKind
	Content world.ContentKind
	Overlay OverlayKind
	Time    world.TimeOfDay
	Weather world.Weather
	Glyph   rune
	Inner   *Visual // Item only

	Scale    float64     // Glyph, Item
	Size     image.Point // Rect only
	Color    color.RGBA  // Rect only
	Centered bool        // Rect only: ignore position, centre on the viewport
	Fixed    bool        // screen-space placement, unaffected by pan and zoom
}

func TileSprite(k world.TileKind) Visual { return Visual{Kind: VisualTile, Tile: k} }

func ContentSprite(k world.ContentKind) Visual { return Visual{Kind: VisualContent, Content: k} }

func AgentSprite() Visual { return Visual{Kind: VisualAgent} }

func OverlaySprite(k OverlayKind) Visual { return Visual{Kind: VisualOverlay, Overlay: k} }

// TimeSprite and WeatherSprite are HUD icons and always screen-space.
func TimeSprite(t world.TimeOfDay) Visual { return Visual{Kind: VisualTime, Time: t, Fixed: true} }

func WeatherSprite(w world.Weather) Visual {
	return Visual{Kind: VisualWeather, Weather: w, Fixed: true}
}

func GlyphSprite(r rune, scale float64, fixed bool) Visual {
	return Visual{Kind: VisualGlyph, Glyph: r, Scale: scale, Fixed: fixed}
}

// ItemSprite draws another visual's sprite at a custom scale, e.g. a content
// icon inside a menu.
func ItemSprite(inner Visual, scale float64, fixed bool) Visual {
	in := inner
	return Visual{Kind: VisualItem, Inner: &in, Scale: scale, Fixed: fixed}
}

func RectOverlay(size image.Point, c color.RGBA, centered, fixed bool) Visual {
	return Visual{Kind: VisualRect, Size: size, Color: c, Centered: centered, Fixed: fixed}
}

// SpriteKey returns the sprite-table key of the visual. Solid rectangles have
// no sprite and report false. Items resolve to their inner visual's key.
func (v Visual) SpriteKey() (SpriteKey, bool) {
	switch v.Kind {
	case VisualTile:
		return SpriteKey{VisualTile, int(v.Tile)}, true
	case VisualContent:
		return SpriteKey{VisualContent, int(v.Content)}, true
	case VisualAgent:
		return SpriteKey{VisualAgent, 0}, true
	case VisualOverlay:
		return SpriteKey{VisualOverlay, int(v.Overlay)}, true
	case VisualTime:
		return SpriteKey{VisualTime, int(v.Time)}, true
	case VisualWeather:
		return SpriteKey{VisualWeather, int(v.Weather)}, true
	case VisualGlyph:
		return SpriteKey{VisualGlyph, int(v.Glyph)}, true
	case VisualItem:
		if v.Inner == nil || v.Inner.Kind == VisualItem {
			return SpriteKey{}, false
		}
		return v.Inner.SpriteKey()
	default:
		return SpriteKey{}, false
	}
}

// SpriteScale is the size multiplier applied on top of the sprite's source size.
func (v Visual) SpriteScale() float64 {
	switch v.Kind {
	case VisualGlyph, VisualItem:
		if v.Scale > 0 {
			return v.Scale
		}
	}
	return 1
}

func (v Visual) String() string {
	switch v.Kind {
	case VisualTile:
		return "tile:" + v.Tile.String()
	case VisualContent:
		return "content:" + v.Content.String()
	case VisualOverlay:
		return "overlay:" + v.Overlay.String()
	case VisualTime:
		return "time:" + v.Time.String()
	case VisualWeather:
		return "weather:" + v.Weather.String()
	case VisualGlyph:
		return fmt.Sprintf("glyph:%q", v.Glyph)
	case VisualItem:
		if v.Inner != nil {
			return "item:" + v.Inner.String()
		}
		return "item:?"
	case VisualRect:
		return fmt.Sprintf("rect:%dx%d", v.Size.X, v.Size.Y)
	default:
		return v.Kind.String()
	}
}

// Entity is one drawable: a position plus what to draw there. Non-fixed
// positions are world pixels; fixed positions are screen pixels.
type Entity struct {
	Pos    image.Point
	Visual Visual
}
