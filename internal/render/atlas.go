package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Garsondee/agentview/internal/scene"
	"github.com/Garsondee/agentview/internal/world"
)

const (
	atlasCols      = 16  // sprite cells per row
	glyphFirst     = ' ' // first rasterised rune
	glyphLast      = '~' // last rasterised rune
	glyphsPerRow   = 32
	glyphRows      = (glyphLast - glyphFirst + glyphsPerRow) / glyphsPerRow
	miscRowAgent   = 0
	miscRowOverlay = 1 // two cells: hover, marker
	miscRowTime    = 3 // world.TimeOfDayCount cells
	miscRowWeather = miscRowTime + world.TimeOfDayCount
)

var tilePalette = [world.TileKindCount]color.RGBA{
	world.TileDeepWater:    {R: 22, G: 52, B: 120, A: 255},
	world.TileShallowWater: {R: 52, G: 110, B: 180, A: 255},
	world.TileSand:         {R: 214, G: 196, B: 134, A: 255},
	world.TileGrass:        {R: 72, G: 140, B: 62, A: 255},
	world.TileStreet:       {R: 98, G: 96, B: 90, A: 255},
	world.TileHill:         {R: 110, G: 128, B: 70, A: 255},
	world.TileMountain:     {R: 118, G: 108, B: 100, A: 255},
	world.TileSnow:         {R: 236, G: 240, B: 246, A: 255},
	world.TileLava:         {R: 210, G: 70, B: 20, A: 255},
	world.TileTeleport:     {R: 150, G: 70, B: 200, A: 255},
	world.TileWall:         {R: 85, G: 80, B: 68, A: 255},
}

var contentPalette = [world.ContentKindCount]color.RGBA{
	world.ContentNone:       {},
	world.ContentRock:       {R: 130, G: 126, B: 120, A: 255},
	world.ContentTree:       {R: 30, G: 90, B: 30, A: 255},
	world.ContentGarbage:    {R: 120, G: 100, B: 60, A: 255},
	world.ContentFire:       {R: 255, G: 140, B: 0, A: 255},
	world.ContentCoin:       {R: 240, G: 200, B: 40, A: 255},
	world.ContentBin:        {R: 60, G: 70, B: 80, A: 255},
	world.ContentCrate:      {R: 150, G: 100, B: 50, A: 255},
	world.ContentBank:       {R: 200, G: 190, B: 160, A: 255},
	world.ContentWater:      {R: 80, G: 160, B: 230, A: 255},
	world.ContentMarket:     {R: 200, G: 60, B: 60, A: 255},
	world.ContentFish:       {R: 250, G: 130, B: 110, A: 255},
	world.ContentBuilding:   {R: 170, G: 150, B: 130, A: 255},
	world.ContentBush:       {R: 60, G: 120, B: 40, A: 255},
	world.ContentJollyBlock: {R: 230, G: 90, B: 200, A: 255},
	world.ContentScarecrow:  {R: 190, G: 160, B: 90, A: 255},
}

var timePalette = [world.TimeOfDayCount]color.RGBA{
	world.Morning:   {R: 255, G: 220, B: 120, A: 255},
	world.Afternoon: {R: 255, G: 170, B: 60, A: 255},
	world.Night:     {R: 60, G: 70, B: 140, A: 255},
}

var weatherPalette = [world.WeatherCount]color.RGBA{
	world.Sunny:           {R: 255, G: 230, B: 80, A: 255},
	world.Rainy:           {R: 90, G: 120, B: 200, A: 255},
	world.Foggy:           {R: 180, G: 180, B: 180, A: 255},
	world.TropicalMonsoon: {R: 40, G: 90, B: 120, A: 255},
	world.Snowy:           {R: 240, G: 245, B: 255, A: 255},
}

// Atlas is a procedurally drawn sprite sheet plus the table describing it.
// Sprite cells are Cell pixels square; glyph cells are Cell/2.
type Atlas struct {
	Image   *image.RGBA
	Sprites *SpriteTable
	Cell    int
}

// BuildAtlas rasterises every built-in sprite into one image. Row 0 holds
// tiles, row 1 contents, row 2 the agent, overlays and HUD icons, and the
// rows below hold printable ASCII glyphs drawn with basicfont.
func BuildAtlas(cell int) *Atlas {
	cell = max(cell, 8)
	g := cell / 2
	w := max(atlasCols*cell, glyphsPerRow*g)
	h := 3*cell + glyphRows*g
	a := &Atlas{
		Image:   image.NewRGBA(image.Rect(0, 0, w, h)),
		Sprites: NewSpriteTable(),
		Cell:    cell,
	}

	for k := 0; k < world.TileKindCount; k++ {
		r := a.cellRect(k, 0)
		fill(a.Image, r, tilePalette[k])
		border(a.Image, r, shade(tilePalette[k], -24))
		a.register(scene.SpriteKey{Kind: scene.VisualTile, Sub: k}, r)
	}
	for k := 1; k < world.ContentKindCount; k++ {
		r := a.cellRect(k, 1)
		disc(a.Image, r, contentPalette[k], cell/3)
		a.register(scene.SpriteKey{Kind: scene.VisualContent, Sub: k}, r)
	}

	agent := a.cellRect(miscRowAgent, 2)
	disc(a.Image, agent, color.RGBA{R: 230, G: 40, B: 40, A: 255}, cell*2/5)
	disc(a.Image, agent, color.RGBA{R: 255, G: 255, B: 255, A: 255}, cell/8)
	a.register(scene.SpriteKey{Kind: scene.VisualAgent}, agent)

	hover := a.cellRect(miscRowOverlay, 2)
	border(a.Image, hover, color.RGBA{R: 255, G: 255, B: 255, A: 200})
	a.register(scene.SpriteKey{Kind: scene.VisualOverlay, Sub: int(scene.OverlayTileHover)}, hover)
	marker := a.cellRect(miscRowOverlay+1, 2)
	border(a.Image, marker, color.RGBA{R: 255, G: 60, B: 60, A: 230})
	fill(a.Image, marker.Inset(cell/3), color.RGBA{R: 255, G: 60, B: 60, A: 160})
	a.register(scene.SpriteKey{Kind: scene.VisualOverlay, Sub: int(scene.OverlayTileMarker)}, marker)

	for t := 0; t < world.TimeOfDayCount; t++ {
		r := a.cellRect(miscRowTime+t, 2)
		disc(a.Image, r, timePalette[t], cell*2/5)
		a.register(scene.SpriteKey{Kind: scene.VisualTime, Sub: t}, r)
	}
	for wk := 0; wk < world.WeatherCount; wk++ {
		r := a.cellRect(miscRowWeather+wk, 2)
		fill(a.Image, r.Inset(cell/6), weatherPalette[wk])
		a.register(scene.SpriteKey{Kind: scene.VisualWeather, Sub: wk}, r)
	}

	d := &font.Drawer{
		Dst:  a.Image,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}
	fw, fh := basicfont.Face7x13.Width, basicfont.Face7x13.Height
	ascent := basicfont.Face7x13.Ascent
	for ch := rune(glyphFirst); ch <= glyphLast; ch++ {
		i := int(ch - glyphFirst)
		x := (i % glyphsPerRow) * g
		y := 3*cell + (i/glyphsPerRow)*g
		r := image.Rect(x, y, x+g, y+g)
		d.Dot = fixed.P(x+(g-fw)/2, y+(g-fh)/2+ascent)
		d.DrawString(string(ch))
		a.register(scene.SpriteKey{Kind: scene.VisualGlyph, Sub: int(ch)}, r)
	}
	return a
}

func (a *Atlas) cellRect(col, row int) image.Rectangle {
	x, y := col*a.Cell, row*a.Cell
	return image.Rect(x, y, x+a.Cell, y+a.Cell)
}

func (a *Atlas) register(k scene.SpriteKey, r image.Rectangle) {
	// Atlas rects are never empty.
	_ = a.Sprites.Register(k, r)
}

func fill(dst draw.Image, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func border(dst draw.Image, r image.Rectangle, c color.RGBA) {
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// disc paints a filled circle of the given radius centred in r.
func disc(dst *image.RGBA, r image.Rectangle, c color.RGBA, radius int) {
	cx, cy := (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius && image.Pt(x, y).In(r) {
				dst.SetRGBA(x, y, c)
			}
		}
	}
}

func shade(c color.RGBA, d int) color.RGBA {
	clamp := func(v int) uint8 { return uint8(min(max(v, 0), 255)) }
	return color.RGBA{R: clamp(int(c.R) + d), G: clamp(int(c.G) + d), B: clamp(int(c.B) + d), A: c.A}
}
