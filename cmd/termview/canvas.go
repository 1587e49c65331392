package main

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/agentview/internal/scene"
	"github.com/Garsondee/agentview/internal/world"
)

var tileColors = [world.TileKindCount]tcell.Color{
	world.TileDeepWater:    tcell.NewRGBColor(22, 52, 120),
	world.TileShallowWater: tcell.NewRGBColor(52, 110, 180),
	world.TileSand:         tcell.NewRGBColor(214, 196, 134),
	world.TileGrass:        tcell.NewRGBColor(84, 150, 70),
	world.TileStreet:       tcell.NewRGBColor(110, 110, 118),
	world.TileHill:         tcell.NewRGBColor(130, 150, 80),
	world.TileMountain:     tcell.NewRGBColor(96, 88, 80),
	world.TileSnow:         tcell.NewRGBColor(236, 240, 246),
	world.TileLava:         tcell.NewRGBColor(210, 70, 20),
	world.TileTeleport:     tcell.NewRGBColor(150, 80, 200),
	world.TileWall:         tcell.NewRGBColor(70, 60, 60),
}

// TermCanvas draws a frame onto a terminal. Every cell stands for a block of
// CellW×CellH viewport pixels; sprites become one rune at the cell under their
// centre, tiles and rectangles paint cell backgrounds.
type TermCanvas struct {
	Screen tcell.Screen
	CellW  int
	CellH  int
}

func (c TermCanvas) cellRect(dst image.Rectangle) image.Rectangle {
	r := image.Rect(
		floorDiv(dst.Min.X, c.CellW), floorDiv(dst.Min.Y, c.CellH),
		floorDiv(dst.Max.X-1, c.CellW)+1, floorDiv(dst.Max.Y-1, c.CellH)+1,
	)
	w, h := c.Screen.Size()
	return r.Intersect(image.Rect(0, 0, w, h))
}

func (c TermCanvas) cellAt(p image.Point) (image.Point, bool) {
	cell := image.Pt(floorDiv(p.X, c.CellW), floorDiv(p.Y, c.CellH))
	w, h := c.Screen.Size()
	return cell, cell.In(image.Rect(0, 0, w, h))
}

func (c TermCanvas) paint(dst image.Rectangle, bg tcell.Color) {
	r := c.cellRect(dst)
	st := tcell.StyleDefault.Background(bg)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.Screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

// put writes ch at the cell under the centre of dst, keeping the cell's background.
func (c TermCanvas) put(dst image.Rectangle, ch rune, fg tcell.Color) {
	centre := dst.Min.Add(dst.Size().Div(2))
	cell, ok := c.cellAt(centre)
	if !ok {
		return
	}
	_, _, st, _ := c.Screen.GetContent(cell.X, cell.Y)
	_, bg, _ := st.Decompose()
	c.Screen.SetContent(cell.X, cell.Y, ch, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
}

func (c TermCanvas) FillRect(dst image.Rectangle, col color.RGBA) {
	c.paint(dst, tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B)))
}

func (c TermCanvas) DrawSprite(v scene.Visual, _, dst image.Rectangle) {
	if v.Kind == scene.VisualItem && v.Inner != nil {
		v = *v.Inner
	}
	switch v.Kind {
	case scene.VisualTile:
		if int(v.Tile) < len(tileColors) {
			c.paint(dst, tileColors[v.Tile])
		}
	case scene.VisualGlyph:
		c.put(dst, v.Glyph, tcell.ColorWhite)
	case scene.VisualOverlay:
		if v.Overlay == scene.OverlayTileMarker {
			c.put(dst, 'x', tcell.ColorRed)
		} else {
			c.put(dst, '+', tcell.ColorWhite)
		}
	default:
		ch, fg := spriteRune(v)
		c.put(dst, ch, fg)
	}
}

// spriteRune picks the rune for sprites that have no terminal-specific look.
func spriteRune(v scene.Visual) (rune, tcell.Color) {
	switch v.Kind {
	case scene.VisualAgent:
		return '@', tcell.ColorRed
	case scene.VisualContent:
		if v.Content == world.ContentFire {
			return '^', tcell.ColorOrange
		}
		return firstRune(v.Content.String()), tcell.ColorYellow
	case scene.VisualTime:
		return firstRune(v.Time.String()), tcell.ColorAqua
	case scene.VisualWeather:
		return firstRune(v.Weather.String()), tcell.ColorAqua
	default:
		return '?', tcell.ColorFuchsia
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return '?'
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
