// Package render implements the draw pass: sprite-table resolution, placement
// under the camera transform, and the camera pre-pass that tracks the agent.
package render

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/Garsondee/agentview/internal/scene"
)

// ErrMissingSprite is returned when a visual has no sprite-table entry.
var ErrMissingSprite = errors.New("missing sprite")

// SpriteTable maps sprite keys to source rectangles of an atlas image.
type SpriteTable struct {
	rects map[scene.SpriteKey]image.Rectangle
}

// NewSpriteTable creates an empty table.
func NewSpriteTable() *SpriteTable {
	return &SpriteTable{rects: make(map[scene.SpriteKey]image.Rectangle)}
}

// Register adds or overrides the source rectangle of a key.
func (t *SpriteTable) Register(k scene.SpriteKey, src image.Rectangle) error {
	if src.Empty() {
		return fmt.Errorf("register %s: empty source rect %v", k, src)
	}
	t.rects[k] = src.Canon()
	return nil
}

// Lookup returns the source rectangle of a key.
func (t *SpriteTable) Lookup(k scene.SpriteKey) (image.Rectangle, error) {
	r, ok := t.rects[k]
	if !ok {
		return image.Rectangle{}, fmt.Errorf("%w: %s", ErrMissingSprite, k)
	}
	return r, nil
}

// Resolve returns the source rectangle for a visual. Solid rectangles need no
// sprite and resolve to the zero rectangle.
func (t *SpriteTable) Resolve(v scene.Visual) (image.Rectangle, error) {
	k, ok := v.SpriteKey()
	if !ok {
		if v.Kind == scene.VisualRect {
			return image.Rectangle{}, nil
		}
		return image.Rectangle{}, fmt.Errorf("%w: %s", ErrMissingSprite, v)
	}
	return t.Lookup(k)
}

func (t *SpriteTable) Len() int { return len(t.rects) }

// Keys returns all registered keys ordered by kind and selector.
func (t *SpriteTable) Keys() []scene.SpriteKey {
	out := make([]scene.SpriteKey, 0, len(t.rects))
	for k := range t.rects {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Sub < out[j].Sub
	})
	return out
}
