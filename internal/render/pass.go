package render

import (
	"errors"
	"image"
	"image/color"
	"log"

	"github.com/Garsondee/agentview/internal/scene"
	"github.com/Garsondee/agentview/internal/viewport"
)

// Canvas receives the draw calls of one frame. DrawSprite gets the visual as
// well as the rectangles so non-raster backends can pick their own glyph.
type Canvas interface {
	DrawSprite(v scene.Visual, src, dst image.Rectangle)
	FillRect(dst image.Rectangle, c color.RGBA)
}

// Stats counts what one Draw call did.
type Stats struct {
	Drawn   int
	Culled  int // destination outside the viewport
	Missing int // no sprite-table entry; entity skipped
	Layers  map[string]int
}

// Pass resolves entities to draw calls. It only reads camera state; the
// camera is updated beforehand by TrackAgent.
type Pass struct {
	Sprites *SpriteTable
	Log     *log.Logger

	warned map[scene.SpriteKey]bool
}

// NewPass creates a draw pass over sprites. A nil logger discards warnings.
func NewPass(sprites *SpriteTable, logger *log.Logger) *Pass {
	if sprites == nil {
		sprites = NewSpriteTable()
	}
	return &Pass{Sprites: sprites, Log: logger, warned: make(map[scene.SpriteKey]bool)}
}

// Draw walks the registry in draw order and issues one call per visible entity.
// An entity whose visual has no sprite is skipped and counted; the rest of the
// frame still draws.
func (p *Pass) Draw(dst Canvas, r *scene.Registry, view viewport.View) Stats {
	st := Stats{Layers: make(map[string]int)}
	bounds := view.Bounds()
	for _, id := range r.Order() {
		for _, e := range r.Entities(id) {
			src, err := p.Sprites.Resolve(e.Visual)
			if err != nil {
				st.Missing++
				p.warn(e.Visual, err)
				continue
			}
			rect := Place(e, src, view)
			if !rect.Overlaps(bounds) {
				st.Culled++
				continue
			}
			if e.Visual.Kind == scene.VisualRect {
				dst.FillRect(rect, e.Visual.Color)
			} else {
				dst.DrawSprite(e.Visual, src, rect)
			}
			st.Drawn++
			st.Layers[id.String()]++
		}
	}
	return st
}

func (p *Pass) warn(v scene.Visual, err error) {
	k, _ := v.SpriteKey()
	if p.warned == nil {
		p.warned = make(map[scene.SpriteKey]bool)
	}
	if p.warned[k] {
		return
	}
	p.warned[k] = true
	if p.Log != nil && errors.Is(err, ErrMissingSprite) {
		p.Log.Printf("skip %s: %v", v, err)
	}
}

// Place computes the destination rectangle of an entity.
//
// Fixed entities are centred on their literal screen position, or on the
// viewport centre when Centered is set, and are never scaled by zoom. World
// entities are centred on WorldToScreen(pos) and grow and shrink with zoom.
func Place(e scene.Entity, src image.Rectangle, view viewport.View) image.Rectangle {
	v := e.Visual
	size := BaseSize(v, src)
	var at image.Point
	switch {
	case v.Fixed && v.Centered:
		at = view.Center()
	case v.Fixed:
		at = e.Pos
	default:
		at = view.WorldToScreen(e.Pos)
		size = view.ScaleSize(size)
	}
	tl := at.Sub(size.Div(2))
	return image.Rectangle{Min: tl, Max: tl.Add(size)}
}

// BaseSize is the unzoomed size of a visual: the rect size for solid
// rectangles, otherwise the source size times the visual's scale.
func BaseSize(v scene.Visual, src image.Rectangle) image.Point {
	if v.Kind == scene.VisualRect {
		return v.Size
	}
	s := v.SpriteScale()
	return image.Pt(scaleInt(src.Dx(), s), scaleInt(src.Dy(), s))
}

func scaleInt(n int, s float64) int {
	if n <= 0 {
		return 0
	}
	return max(int(float64(n)*s+0.5), 1)
}

// TrackAgent is the camera pre-pass. It reads the agent entity's world position
// for this frame and feeds it to the camera, so every later transform in the
// frame sees the refreshed anchor. It reports false when no agent is placed.
func TrackAgent(cam *viewport.Camera, r *scene.Registry) bool {
	agents := r.Entities(scene.Persistent(scene.LayerAgent))
	if len(agents) == 0 {
		return false
	}
	cam.Track(agents[0].Pos)
	return true
}
