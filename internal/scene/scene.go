package scene

import (
	"image"
	"image/color"
)

// ElementKind tags the builder that produced an Element.
type ElementKind uint8

const (
	ElementText ElementKind = iota
	ElementSquare
	ElementItem
)

// Element is one piece of a scene, bound to a sublayer of the scene's rank.
// It is plain data; Entities expands it into drawables.
type Element struct {
	Kind     ElementKind
	Sublayer uint32
	Pos      image.Point

	Text     string      // ElementText
	Scale    float64     // ElementText, ElementItem
	Size     image.Point // ElementSquare
	Color    color.RGBA  // ElementSquare
	Centered bool        // ElementSquare
	Inner    Visual      // ElementItem
	Fixed    bool
}

// Text lays out a single line of glyphs starting at pos.
func Text(text string, pos image.Point, scale float64, fixed bool, sublayer uint32) Element {
	return Element{Kind: ElementText, Sublayer: sublayer, Pos: pos, Text: text, Scale: scale, Fixed: fixed}
}

// Square is a solid rectangle of the given size centred on pos, or on the
// viewport centre when centered is set.
func Square(pos, size image.Point, fixed, centered bool, c color.RGBA, sublayer uint32) Element {
	return Element{Kind: ElementSquare, Sublayer: sublayer, Pos: pos, Size: size, Fixed: fixed, Centered: centered, Color: c}
}

// Item draws another visual's sprite at pos with a custom scale.
func Item(pos image.Point, scale float64, fixed bool, inner Visual, sublayer uint32) Element {
	return Element{Kind: ElementItem, Sublayer: sublayer, Pos: pos, Scale: scale, Fixed: fixed, Inner: inner}
}

// Entities expands the element into drawables. tileSize is the nominal tile
// size used for glyph advance.
func (e Element) Entities(tileSize int) []Entity {
	switch e.Kind {
	case ElementText:
		return LayoutText(e.Text, e.Pos, e.Scale, e.Fixed, tileSize)
	case ElementSquare:
		return []Entity{{Pos: e.Pos, Visual: RectOverlay(e.Size, e.Color, e.Centered, e.Fixed)}}
	case ElementItem:
		return []Entity{{Pos: e.Pos, Visual: ItemSprite(e.Inner, e.Scale, e.Fixed)}}
	default:
		return nil
	}
}

// GlyphAdvance is the horizontal step between consecutive glyphs. It never
// drops below one pixel, so text always runs left to right.
func GlyphAdvance(scale float64, tileSize int) int {
	t := float64(tileSize)
	return max(int(t*0.3+(t*0.3*scale-1)), 1)
}

// LayoutText places one glyph entity per rune, left to right, with a fixed
// advance. No wrapping, no kerning.
func LayoutText(text string, origin image.Point, scale float64, fixed bool, tileSize int) []Entity {
	adv := GlyphAdvance(scale, tileSize)
	out := make([]Entity, 0, len(text))
	x := origin.X
	for _, r := range text {
		out = append(out, Entity{Pos: image.Pt(x, origin.Y), Visual: GlyphSprite(r, scale, fixed)})
		x += adv
	}
	return out
}

// Scene is a named group of UI elements committed atomically under one rank.
// Committing a scene replaces whatever was committed under the same name.
type Scene struct {
	name     string
	rank     uint32
	elements []Element
}

// New starts a scene builder.
func New(name string, rank uint32) *Scene {
	return &Scene{name: name, rank: rank}
}

func (s *Scene) Name() string { return s.name }

func (s *Scene) Rank() uint32 { return s.rank }

// Add appends an element and returns the scene for chaining.
func (s *Scene) Add(e Element) *Scene {
	s.elements = append(s.elements, e)
	return s
}

// Len returns the number of elements added so far.
func (s *Scene) Len() int { return len(s.elements) }

// Commit retracts the previous generation of the scene and installs this one.
// All steps run without yielding, so a frame sees either the old or the new
// generation, never a mix or neither.
func (s *Scene) Commit(r *Registry, tileSize int) {
	r.RemoveScene(s.name)

	bySub := make(map[uint32][]Entity)
	order := make([]uint32, 0, 4)
	for _, e := range s.elements {
		ents := e.Entities(tileSize)
		if len(ents) == 0 {
			continue
		}
		if _, seen := bySub[e.Sublayer]; !seen {
			order = append(order, e.Sublayer)
		}
		bySub[e.Sublayer] = append(bySub[e.Sublayer], ents...)
	}

	for _, sub := range order {
		r.book.record(UILayer(s.name, s.rank, sub))
	}
	for _, sub := range order {
		id := UILayer(s.name, s.rank, sub)
		for _, ent := range bySub[sub] {
			r.Add(id, ent.Pos, ent.Visual)
		}
	}
}
