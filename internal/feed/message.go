// Package feed receives engine updates over a websocket and applies them to
// the visualizer.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Garsondee/agentview/internal/world"
)

// ErrSchema marks a message that failed validation.
var ErrSchema = errors.New("feed message rejected")

// Message types.
const (
	TypeWorld     = "world"
	TypeAgent     = "agent"
	TypeTime      = "time"
	TypeWeather   = "weather"
	TypeFramerate = "framerate"
	TypeBackpack  = "backpack"
	TypeTick      = "tick" // any combination of the above in one message
)

// Message is one engine update. Coordinates are [col, row].
type Message struct {
	Type      string         `json:"type"`
	Tick      int            `json:"tick,omitempty"`
	Grid      *GridMsg       `json:"grid,omitempty"`
	Agent     *[2]int        `json:"agent,omitempty"`
	Prev      *[2]int        `json:"prev,omitempty"`
	Time      string         `json:"time,omitempty"`
	Weather   string         `json:"weather,omitempty"`
	Framerate int            `json:"framerate,omitempty"`
	Backpack  map[string]int `json:"backpack,omitempty"`
}

// GridMsg is a row-major grid; unknown cells are null, known cells are
// [tile_kind, content_kind, amount].
type GridMsg struct {
	Cols  int       `json:"cols"`
	Rows  int       `json:"rows"`
	Tiles []*[3]int `json:"tiles"`
}

// MaxGridSide bounds the columns and rows of a feed grid.
const MaxGridSide = 4096

const schemaURL = "agentview://feed/message.json"

const messageSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["type"],
  "properties": {
    "type": {"enum": ["world", "agent", "time", "weather", "framerate", "backpack", "tick"]},
    "tick": {"type": "integer", "minimum": 0},
    "grid": {
      "type": "object",
      "required": ["cols", "rows", "tiles"],
      "properties": {
        "cols": {"type": "integer", "minimum": 0, "maximum": 4096},
        "rows": {"type": "integer", "minimum": 0, "maximum": 4096},
        "tiles": {
          "type": "array",
          "items": {
            "anyOf": [
              {"type": "null"},
              {"type": "array", "prefixItems": [
                {"type": "integer", "minimum": 0, "maximum": 10},
                {"type": "integer", "minimum": 0, "maximum": 15},
                {"type": "integer", "minimum": 0}
              ], "minItems": 3, "maxItems": 3}
            ]
          }
        }
      }
    },
    "agent": {"$ref": "#/$defs/coord"},
    "prev": {"$ref": "#/$defs/coord"},
    "time": {"enum": ["Morning", "Afternoon", "Night"]},
    "weather": {"enum": ["Sunny", "Rainy", "Foggy", "TropicalMonsoon", "Snowy"]},
    "framerate": {"type": "integer", "minimum": 1, "maximum": 1000},
    "backpack": {"type": "object", "additionalProperties": {"type": "integer", "minimum": 0}}
  },
  "allOf": [
    {"if": {"properties": {"type": {"const": "world"}}}, "then": {"required": ["grid"]}},
    {"if": {"properties": {"type": {"const": "agent"}}}, "then": {"required": ["agent"]}},
    {"if": {"properties": {"type": {"const": "time"}}}, "then": {"required": ["time"]}},
    {"if": {"properties": {"type": {"const": "weather"}}}, "then": {"required": ["weather"]}},
    {"if": {"properties": {"type": {"const": "framerate"}}}, "then": {"required": ["framerate"]}},
    {"if": {"properties": {"type": {"const": "backpack"}}}, "then": {"required": ["backpack"]}}
  ],
  "$defs": {
    "coord": {"type": "array", "items": {"type": "integer", "minimum": 0}, "minItems": 2, "maxItems": 2}
  }
}`

// Decoder validates raw messages against the feed schema.
type Decoder struct {
	schema *jsonschema.Schema
}

// NewDecoder compiles the message schema.
func NewDecoder() (*Decoder, error) {
	s, err := jsonschema.CompileString(schemaURL, messageSchema)
	if err != nil {
		return nil, fmt.Errorf("compile feed schema: %w", err)
	}
	return &Decoder{schema: s}, nil
}

// Decode validates raw and unmarshals it. Validation failures wrap ErrSchema.
func (d *Decoder) Decode(raw []byte) (Message, error) {
	var m Message
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return m, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := d.schema.Validate(doc); err != nil {
		return m, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if g := m.Grid; g != nil {
		if g.Cols < 0 || g.Rows < 0 || g.Cols > MaxGridSide || g.Rows > MaxGridSide {
			return m, fmt.Errorf("%w: grid %dx%d exceeds %d per side", ErrSchema, g.Cols, g.Rows, MaxGridSide)
		}
		if len(g.Tiles) != g.Cols*g.Rows {
			return m, fmt.Errorf("%w: grid %dx%d carries %d tiles", ErrSchema, g.Cols, g.Rows, len(g.Tiles))
		}
	}
	for name := range m.Backpack {
		if _, ok := world.ParseContentKind(name); !ok {
			return m, fmt.Errorf("%w: unknown backpack item %q", ErrSchema, name)
		}
	}
	return m, nil
}

// Host is the part of the visualizer a message drives.
type Host interface {
	UpdateWorld(g *world.Grid)
	UpdateAgent(next, prev image.Point)
	UpdateTimeOfDay(t world.TimeOfDay)
	UpdateWeather(w world.Weather)
	SetFramerate(fps int)
	UpdateBackpack(items map[world.ContentKind]int)
}

// Apply forwards every field present in m to h. The message must have been
// produced by Decode.
func (m Message) Apply(h Host) {
	if m.Grid != nil {
		h.UpdateWorld(m.Grid.ToGrid())
	}
	if m.Agent != nil {
		next := image.Pt(m.Agent[0], m.Agent[1])
		prev := next
		if m.Prev != nil {
			prev = image.Pt(m.Prev[0], m.Prev[1])
		}
		h.UpdateAgent(next, prev)
	}
	if t, ok := world.ParseTimeOfDay(m.Time); ok {
		h.UpdateTimeOfDay(t)
	}
	if w, ok := world.ParseWeather(m.Weather); ok {
		h.UpdateWeather(w)
	}
	if m.Framerate > 0 {
		h.SetFramerate(m.Framerate)
	}
	if m.Backpack != nil {
		items := make(map[world.ContentKind]int, len(m.Backpack))
		for name, n := range m.Backpack {
			if k, ok := world.ParseContentKind(name); ok {
				items[k] = n
			}
		}
		h.UpdateBackpack(items)
	}
}

// ToGrid converts the wire grid to a world grid.
func (g *GridMsg) ToGrid() *world.Grid {
	out := world.NewGrid(g.Cols, g.Rows)
	for i, t := range g.Tiles {
		if t == nil || i >= len(out.Tiles) {
			continue
		}
		out.Tiles[i] = &world.Tile{Kind: world.TileKind(t[0]), Content: world.ContentKind(t[1]), Amount: t[2]}
	}
	return out
}

// FromTick encodes a sandbox tick as a single tick message.
func FromTick(t world.Tick) Message {
	m := Message{
		Type:    TypeTick,
		Tick:    t.Number,
		Agent:   &[2]int{t.Agent.X, t.Agent.Y},
		Prev:    &[2]int{t.Prev.X, t.Prev.Y},
		Time:    t.Time.String(),
		Weather: t.Weather.String(),
	}
	if t.Grid != nil {
		gm := &GridMsg{Cols: t.Grid.Cols, Rows: t.Grid.Rows, Tiles: make([]*[3]int, len(t.Grid.Tiles))}
		for i, tile := range t.Grid.Tiles {
			if tile != nil {
				gm.Tiles[i] = &[3]int{int(tile.Kind), int(tile.Content), tile.Amount}
			}
		}
		m.Grid = gm
	}
	if len(t.Backpack) > 0 {
		m.Backpack = make(map[string]int, len(t.Backpack))
		for k, n := range t.Backpack {
			m.Backpack[k.String()] = n
		}
	}
	return m
}

// Encode marshals a message for the wire.
func Encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}
