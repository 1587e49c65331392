package game

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/Garsondee/agentview/internal/scene"
	"github.com/Garsondee/agentview/internal/world"
)

// UI scene names and their ranks. Higher ranks draw on top.
const (
	SceneMarkers   = "markers"
	SceneInventory = "inventory"
	SceneEvents    = "events"
	SceneHUD       = "hud"

	rankMarkers   uint32 = 9
	rankInventory uint32 = 10
	rankEvents    uint32 = 19
	rankHUD       uint32 = 20
)

const (
	subBackground uint32 = 1
	subContent    uint32 = 2

	hudScale    = 0.6
	hudLineStep = 14
	hudMargin   = 12
	eventLines  = 4
)

var (
	markersBG   = color.RGBA{R: 100, G: 200, B: 50, A: 200}
	inventoryBG = color.RGBA{R: 200, G: 100, B: 50, A: 200}
)

// menuFrame starts a menu scene: a backdrop centred on the viewport with a
// title above the rows.
func menuFrame(name string, rank uint32, title string, vp image.Point, bg color.RGBA) *scene.Scene {
	s := scene.New(name, rank)
	s.Add(scene.Square(image.Pt(100, 100), vp.Sub(image.Pt(100, 100)), true, true, bg, subBackground))
	s.Add(scene.Text(title, image.Pt(vp.X/2-100, 100), 2, true, subContent))
	return s
}

// markersScene lists every marker with the tile under it.
func markersScene(markers []image.Point, grid *world.Grid, vp image.Point) *scene.Scene {
	s := menuFrame(SceneMarkers, rankMarkers, "MARKERS", vp, markersBG)
	x, y := 100, 250
	for _, m := range markers {
		label := fmt.Sprintf("(%d, %d)", m.X, m.Y)
		pos := image.Pt(x, y)
		if t := grid.At(m.X, m.Y); t != nil {
			s.Add(scene.Text(label, pos, 0.7, true, subContent))
			s.Add(scene.Item(image.Pt(x+100, y), 0.7, true, scene.TileSprite(t.Kind), subContent))
			if t.Content != world.ContentNone {
				s.Add(scene.Item(image.Pt(x+130, y), 0.7, true, scene.ContentSprite(t.Content), subContent))
			}
			s.Add(scene.Text(fmt.Sprintf("(%s-%s)", t.Kind, t.Content), image.Pt(x+160, y), 0.7, true, subContent))
		} else {
			s.Add(scene.Text(label+" - (Unknown)", pos, 0.7, true, subContent))
		}
		y += 50
		if y > vp.Y-150 {
			x += 400
			y = 250
		}
	}
	return s
}

// inventoryScene lists the backpack in content-kind order.
func inventoryScene(items map[world.ContentKind]int, vp image.Point) *scene.Scene {
	s := menuFrame(SceneInventory, rankInventory, "BACKPACK", vp, inventoryBG)
	kinds := make([]world.ContentKind, 0, len(items))
	for k, n := range items {
		if n > 0 && k != world.ContentNone {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	x, y := 100, 150
	for _, k := range kinds {
		s.Add(scene.Item(image.Pt(x+50, y), 1.7, true, scene.ContentSprite(k), subContent))
		s.Add(scene.Text(fmt.Sprintf("%s x%d", k, items[k]), image.Pt(x, y+50), 0.7, true, subContent))
		y += 100
		if y > vp.Y-150 {
			x += 300
			y = 150
		}
	}
	return s
}

// linesScene stacks fixed text lines, top down from origin.
func linesScene(name string, rank uint32, lines []string, origin image.Point) *scene.Scene {
	s := scene.New(name, rank)
	for i, line := range lines {
		s.Add(scene.Text(line, origin.Add(image.Pt(0, i*hudLineStep)), hudScale, true, subContent))
	}
	return s
}

// hudLines describes the camera state in the top-left corner.
func (v *Visualizer) hudLines() []string {
	follow := "off"
	if v.cam.Following() {
		follow = "on"
	}
	pan := v.cam.Pan()
	lines := []string{
		fmt.Sprintf("FOLLOW %s  ZOOM %+d  TILE %d", follow, v.cam.Zoom(), v.cam.EffectiveTileSize()),
		fmt.Sprintf("PAN (%d, %d)  FPS %d", pan.X, pan.Y, v.fps),
		fmt.Sprintf("MARKERS %d", v.markers.Len()),
	}
	if v.hovering {
		lines = append(lines, fmt.Sprintf("HOVER (%d, %d)", v.hover.X, v.hover.Y))
	}
	return lines
}

func (v *Visualizer) refreshHUD() {
	if !v.showHUD {
		return
	}
	lines := v.hudLines()
	text := strings.Join(lines, "\n")
	if text == v.hudText && v.reg.HasScene(SceneHUD) {
		return
	}
	v.hudText = text
	linesScene(SceneHUD, rankHUD, lines, image.Pt(hudMargin, hudMargin)).Commit(v.reg, v.cam.TileSize())
}

func (v *Visualizer) refreshEvents() {
	if v.events.added == v.eventsSeen {
		return
	}
	v.eventsSeen = v.events.added
	recent := v.events.Last(eventLines)
	lines := make([]string, len(recent))
	for i, e := range recent {
		lines[i] = e.String()
	}
	top := v.cam.Viewport().Y - hudMargin - (len(lines)-1)*hudLineStep
	linesScene(SceneEvents, rankEvents, lines, image.Pt(hudMargin, top)).Commit(v.reg, v.cam.TileSize())
}
