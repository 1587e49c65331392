package viewport

import (
	"image"
	"math"
)

// View is an immutable camera snapshot. Both transform directions read the
// same snapshot, so a query can never observe a camera mutation halfway.
//
// Free mode:   screen = C + (world + Pan - C) * k
// Follow mode: screen = C + (world + (C - AgentWorld) - C) * k
//
// where C is the viewport centre and k = (TileSize+Zoom)/TileSize, so zoom
// scales distances from the viewport centre rather than from the origin.
type View struct {
	Pan        image.Point
	Follow     bool
	Zoom       int
	AgentWorld image.Point
	TileSize   int
	Viewport   image.Point
}

// Center is the viewport centre in screen pixels.
func (v View) Center() image.Point { return v.Viewport.Div(2) }

func (v View) tile() int { return max(v.TileSize, 1) }

// EffectiveTileSize is the on-screen size of one nominal tile.
func (v View) EffectiveTileSize() int { return max(v.tile()+v.Zoom, 1) }

// Scale is the world-to-screen length ratio.
func (v View) Scale() float64 {
	return float64(v.EffectiveTileSize()) / float64(v.tile())
}

// Offset is the translation applied before scaling: Pan in free mode, or the
// offset that puts the agent on the viewport centre in follow mode.
func (v View) Offset() image.Point {
	if v.Follow {
		return v.Center().Sub(v.AgentWorld)
	}
	return v.Pan
}

// WorldToScreen maps a world pixel position to a screen pixel position.
// Halves round up, so tiles one nominal size apart always land exactly one
// effective tile size apart on screen.
func (v View) WorldToScreen(p image.Point) image.Point {
	c, o := v.Center(), v.Offset()
	e, t := v.EffectiveTileSize(), v.tile()
	axis := func(p, o, c int) int {
		return c + floorDiv(2*(p+o-c)*e+t, 2*t)
	}
	return image.Pt(axis(p.X, o.X, c.X), axis(p.Y, o.Y, c.Y))
}

// ScreenToWorld maps a screen pixel to the tile coordinate drawn under it.
// Tile t is drawn as the E-pixel cell starting at TileToScreen(t) - E/2, and
// those cells tile the screen without gaps. The result may lie outside the
// grid; callers bounds-check before indexing.
func (v View) ScreenToWorld(s image.Point) image.Point {
	e := v.EffectiveTileSize()
	origin := v.TileToScreen(image.Point{}).Sub(image.Pt(e/2, e/2))
	return image.Pt(floorDiv(s.X-origin.X, e), floorDiv(s.Y-origin.Y, e))
}

// TileToWorld returns the world anchor of a tile coordinate.
func (v View) TileToWorld(tile image.Point) image.Point {
	return tile.Mul(v.tile())
}

// TileToScreen returns the screen anchor of a tile coordinate.
func (v View) TileToScreen(tile image.Point) image.Point {
	return v.WorldToScreen(v.TileToWorld(tile))
}

// ScaleSize scales a world-space size to its on-screen size. Positive
// dimensions never collapse below one pixel.
func (v View) ScaleSize(sz image.Point) image.Point {
	k := v.Scale()
	scale := func(n int) int {
		if n <= 0 {
			return 0
		}
		return max(int(math.Round(float64(n)*k)), 1)
	}
	return image.Pt(scale(sz.X), scale(sz.Y))
}

// Bounds is the viewport rectangle in screen pixels.
func (v View) Bounds() image.Rectangle {
	return image.Rectangle{Max: v.Viewport}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
