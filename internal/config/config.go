// Package config loads the visualizer settings from YAML.
package config

import (
	"errors"
	"fmt"
	"image"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/agentview/internal/scene"
)

// ErrInvalid marks a configuration value out of range.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	TileSize    int `yaml:"tile_size"`
	MinTileSize int `yaml:"min_tile_size"`
	MaxTileSize int `yaml:"max_tile_size"`

	Window Window `yaml:"window"`

	Framerate  int `yaml:"framerate"`
	AgentSpeed int `yaml:"agent_speed"` // pixels per frame = 2^(speed-1)

	Feed   Feed   `yaml:"feed"`
	Status Status `yaml:"status"`
	Record Record `yaml:"record"`

	Sprites []SpriteOverride `yaml:"sprites"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Feed configures the engine websocket. An empty URL runs the built-in sandbox.
type Feed struct {
	URL string `yaml:"url"`
}

// Status configures the HTTP status endpoint. An empty address disables it.
type Status struct {
	Addr string `yaml:"addr"`
}

// Record configures the frame recorder. An empty path disables it.
type Record struct {
	Path string `yaml:"path"`
}

// SpriteOverride replaces or adds one sprite-table entry.
//
//	sprites:
//	  - {kind: tile, sub: 3, rect: [12, 43, 60, 34]}
type SpriteOverride struct {
	Kind string `yaml:"kind"`
	Sub  int    `yaml:"sub"`
	Rect []int  `yaml:"rect"` // x, y, w, h
}

var spriteKinds = map[string]scene.VisualKind{
	"tile":    scene.VisualTile,
	"content": scene.VisualContent,
	"agent":   scene.VisualAgent,
	"overlay": scene.VisualOverlay,
	"time":    scene.VisualTime,
	"weather": scene.VisualWeather,
	"glyph":   scene.VisualGlyph,
}

// Resolve converts the override to a sprite key and source rectangle.
func (o SpriteOverride) Resolve() (scene.SpriteKey, image.Rectangle, error) {
	k, ok := spriteKinds[o.Kind]
	if !ok {
		return scene.SpriteKey{}, image.Rectangle{}, fmt.Errorf("%w: sprite kind %q", ErrInvalid, o.Kind)
	}
	if len(o.Rect) != 4 || o.Rect[2] <= 0 || o.Rect[3] <= 0 {
		return scene.SpriteKey{}, image.Rectangle{}, fmt.Errorf("%w: sprite %s/%d rect %v", ErrInvalid, o.Kind, o.Sub, o.Rect)
	}
	x, y, w, h := o.Rect[0], o.Rect[1], o.Rect[2], o.Rect[3]
	return scene.SpriteKey{Kind: k, Sub: o.Sub}, image.Rect(x, y, x+w, y+h), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TileSize:    32,
		MinTileSize: 4,
		MaxTileSize: 128,
		Window:      Window{Width: 800, Height: 480, Title: "Agent View"},
		Framerate:   60,
		AgentSpeed:  3,
	}
}

// Load reads path on top of Default and validates the result.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks ranges. Errors wrap ErrInvalid.
func (c Config) Validate() error {
	switch {
	case c.TileSize < 2:
		return fmt.Errorf("%w: tile_size %d < 2", ErrInvalid, c.TileSize)
	case c.MinTileSize < 1 || c.MinTileSize >= c.TileSize:
		return fmt.Errorf("%w: min_tile_size %d not in [1,%d)", ErrInvalid, c.MinTileSize, c.TileSize)
	case c.MaxTileSize < c.TileSize:
		return fmt.Errorf("%w: max_tile_size %d < tile_size %d", ErrInvalid, c.MaxTileSize, c.TileSize)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Framerate < 1:
		return fmt.Errorf("%w: framerate %d < 1", ErrInvalid, c.Framerate)
	case c.AgentSpeed < 1 || c.AgentSpeed > 6:
		return fmt.Errorf("%w: agent_speed %d not in [1,6]", ErrInvalid, c.AgentSpeed)
	}
	for _, o := range c.Sprites {
		if _, _, err := o.Resolve(); err != nil {
			return err
		}
	}
	return nil
}
