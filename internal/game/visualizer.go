// Package game is the host application around the rendering core: it turns
// engine updates and user input into layer contents and camera changes, and
// adapts the result to an ebiten window or a headless recorder.
package game

import (
	"fmt"
	"image"
	"io"
	"log"
	"maps"
	"strconv"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/agentview/internal/config"
	"github.com/Garsondee/agentview/internal/feed"
	"github.com/Garsondee/agentview/internal/render"
	"github.com/Garsondee/agentview/internal/scene"
	"github.com/Garsondee/agentview/internal/viewport"
	"github.com/Garsondee/agentview/internal/world"
)

const iconMargin = 8

var _ feed.Host = (*Visualizer)(nil)

// Visualizer owns the camera, the layer registry and the draw pass, and
// exposes the host API the engine feed drives. It is owned by the frame loop
// and is not safe for concurrent use.
type Visualizer struct {
	cfg  config.Config
	cam  *viewport.Camera
	reg  *scene.Registry
	pass *render.Pass
	log  *log.Logger

	grid      *world.Grid
	agent     agentMotion
	agentTile image.Point
	facing    world.Direction

	time        world.TimeOfDay
	weather     world.Weather
	haveTime    bool
	haveWeather bool
	backpack    map[world.ContentKind]int

	markers  *MarkerSet
	hover    image.Point
	hovering bool

	showMarkers   bool
	showInventory bool
	showHUD       bool
	hudText       string
	events        *EventLog
	eventsSeen    int
	frames        *FrameLog

	frame int
	fps   int
	stats render.Stats

	clipboard func(string) error
}

// New creates a visualizer sized to the configured window. A nil sprite table
// falls back to the built-in atlas; the config's sprite overrides are applied
// on top. A nil logger discards log output.
func New(cfg config.Config, sprites *render.SpriteTable, logger *log.Logger) (*Visualizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if sprites == nil {
		sprites = render.BuildAtlas(cfg.TileSize).Sprites
	}
	cam := viewport.NewCamera(cfg.TileSize, cfg.MinTileSize, cfg.MaxTileSize)
	cam.Resize(cfg.Window.Width, cfg.Window.Height)

	v := &Visualizer{
		cfg:       cfg,
		cam:       cam,
		reg:       scene.NewRegistry(),
		pass:      render.NewPass(sprites, logger),
		log:       logger,
		grid:      world.NewGrid(0, 0),
		backpack:  make(map[world.ContentKind]int),
		markers:   NewMarkerSet(),
		showHUD:   true,
		events:    NewEventLog(),
		fps:       cfg.Framerate,
		clipboard: clipboard.WriteAll,
	}
	for _, o := range cfg.Sprites {
		k, r, err := o.Resolve()
		if err != nil {
			return nil, err
		}
		if err := v.RegisterSprite(k, r); err != nil {
			return nil, fmt.Errorf("sprite override %s: %w", k, err)
		}
	}
	return v, nil
}

// --- Host API ---

// UpdateWorld rebuilds the tile and content layers from g. Unknown cells
// draw nothing.
func (v *Visualizer) UpdateWorld(g *world.Grid) {
	if g == nil {
		g = world.NewGrid(0, 0)
	}
	v.grid = g
	t := v.cam.TileSize()
	tiles, content := scene.Persistent(scene.LayerTiles), scene.Persistent(scene.LayerContent)
	v.reg.Clear(tiles)
	v.reg.Clear(content)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			tile := g.At(col, row)
			if tile == nil {
				continue
			}
			pos := image.Pt(col*t, row*t)
			v.reg.Add(tiles, pos, scene.TileSprite(tile.Kind))
			if tile.Content != world.ContentNone {
				v.reg.Add(content, pos, scene.ContentSprite(tile.Content))
			}
		}
	}
	v.frames.AddVerbose(v.frame, "world", "update", fmt.Sprintf("%dx%d known=%d", g.Cols, g.Rows, g.Known()), float64(g.Known()))
	if n := v.markers.Retain(g.Contains); n > 0 {
		v.rebuildMarkerOverlay()
		v.event("marker", "dropped", strconv.Itoa(n))
	}
	if v.showMarkers {
		v.commitMarkers()
	}
}

// UpdateAgent moves the agent to tile next. The facing is derived from prev;
// the drawn position glides toward next over the following frames, except on
// the first update which places the agent directly.
func (v *Visualizer) UpdateAgent(next, prev image.Point) {
	v.facing = world.DirectionBetween(prev, next)
	v.agentTile = next
	v.agent.moveTo(v.cam.View().TileToWorld(next))
	v.placeAgent()
	v.frames.AddVerbose(v.frame, "agent", "target", fmt.Sprintf("(%d, %d) %s", next.X, next.Y, v.facing), 0)
}

// UpdateTimeOfDay shows the day-phase icon.
func (v *Visualizer) UpdateTimeOfDay(t world.TimeOfDay) {
	if v.haveTime && v.time == t {
		return
	}
	v.time, v.haveTime = t, true
	v.placeIcons()
	v.event("world", "time", t.String())
}

// UpdateWeather shows the weather icon.
func (v *Visualizer) UpdateWeather(w world.Weather) {
	if v.haveWeather && v.weather == w {
		return
	}
	v.weather, v.haveWeather = w, true
	v.placeIcons()
	v.event("world", "weather", w.String())
}

// SetFramerate sets the target frames per second. Values below 1 are raised to 1.
func (v *Visualizer) SetFramerate(fps int) {
	v.fps = max(fps, 1)
}

// Framerate returns the target frames per second.
func (v *Visualizer) Framerate() int { return v.fps }

// UpdateBackpack replaces the inventory contents.
func (v *Visualizer) UpdateBackpack(items map[world.ContentKind]int) {
	v.backpack = maps.Clone(items)
	if v.backpack == nil {
		v.backpack = make(map[world.ContentKind]int)
	}
	if v.showInventory {
		v.commitInventory()
	}
}

// RegisterSprite adds or replaces a sprite-table entry.
func (v *Visualizer) RegisterSprite(k scene.SpriteKey, src image.Rectangle) error {
	return v.pass.Sprites.Register(k, src)
}

// WorldCoordinateAt returns the tile under screen point s and whether it lies
// inside the current grid.
func (v *Visualizer) WorldCoordinateAt(s image.Point) (image.Point, bool) {
	tile := v.cam.View().ScreenToWorld(s)
	return tile, v.grid.Contains(tile)
}

// HoverAt moves the hover overlay to the tile under s. Outside the grid the
// overlay stays where it was.
func (v *Visualizer) HoverAt(s image.Point) {
	tile, ok := v.WorldCoordinateAt(s)
	if !ok {
		return
	}
	v.hover, v.hovering = tile, true
	v.reg.Replace(scene.Persistent(scene.LayerOverlayHover), []scene.Entity{{
		Pos:    v.cam.View().TileToWorld(tile),
		Visual: scene.OverlaySprite(scene.OverlayTileHover),
	}})
}

// ToggleMarkerAt marks or unmarks the tile under s. It reports the tile and
// whether a toggle happened; points outside the grid are ignored.
func (v *Visualizer) ToggleMarkerAt(s image.Point) (image.Point, bool) {
	tile, ok := v.WorldCoordinateAt(s)
	if !ok {
		return tile, false
	}
	key := "remove"
	if v.markers.Toggle(tile) {
		key = "add"
	}
	v.rebuildMarkerOverlay()
	v.event("marker", key, fmt.Sprintf("(%d, %d)", tile.X, tile.Y))
	if v.showMarkers {
		v.commitMarkers()
	}
	return tile, true
}

// Markers returns the marked tiles, oldest first.
func (v *Visualizer) Markers() []image.Point { return v.markers.All() }

// CopyMarkers puts the marker list on the clipboard and returns the copied text.
func (v *Visualizer) CopyMarkers() (string, error) {
	text := v.markers.String()
	if v.clipboard != nil {
		if err := v.clipboard(text); err != nil {
			return text, fmt.Errorf("clipboard: %w", err)
		}
	}
	v.event("marker", "copy", fmt.Sprintf("%d markers", v.markers.Len()))
	return text, nil
}

// SetClipboard replaces the clipboard writer. nil disables copying.
func (v *Visualizer) SetClipboard(fn func(string) error) { v.clipboard = fn }

// ToggleMarkersMenu opens or closes the markers menu.
func (v *Visualizer) ToggleMarkersMenu() {
	v.showMarkers = !v.showMarkers
	if v.showMarkers {
		v.commitMarkers()
		v.event("menu", "open", SceneMarkers)
		return
	}
	v.reg.RemoveScene(SceneMarkers)
	v.event("menu", "close", SceneMarkers)
}

// ToggleInventory opens or closes the backpack menu.
func (v *Visualizer) ToggleInventory() {
	v.showInventory = !v.showInventory
	if v.showInventory {
		v.commitInventory()
		v.event("menu", "open", SceneInventory)
		return
	}
	v.reg.RemoveScene(SceneInventory)
	v.event("menu", "close", SceneInventory)
}

// Resize adapts to a new viewport size. Screen-anchored content is laid out again.
func (v *Visualizer) Resize(w, h int) {
	if v.cam.Viewport() == image.Pt(w, h) {
		return
	}
	v.cam.Resize(w, h)
	v.placeIcons()
	if v.showMarkers {
		v.commitMarkers()
	}
	if v.showInventory {
		v.commitInventory()
	}
	v.hudText = ""
	v.eventsSeen = -1
}

// Step advances one frame: the agent glides, the camera tracks it, input is
// applied and the HUD scenes are refreshed. It returns ErrQuit when asked to leave.
func (v *Visualizer) Step(in FrameInput) error {
	v.frame++
	if v.agent.placed && v.agent.moving() {
		v.agent.advance(agentStep(v.cfg.AgentSpeed))
		v.placeAgent()
	}
	render.TrackAgent(v.cam, v.reg)
	if err := v.applyInput(in); err != nil {
		return err
	}
	v.refreshHUD()
	v.refreshEvents()
	return nil
}

// Render draws the current frame onto dst. The camera pre-pass runs first so
// every position in the frame reads the same agent anchor.
func (v *Visualizer) Render(dst render.Canvas) render.Stats {
	render.TrackAgent(v.cam, v.reg)
	v.stats = v.pass.Draw(dst, v.reg, v.cam.View())
	v.frames.AddVerbose(v.frame, "draw", "stats",
		fmt.Sprintf("drawn=%d culled=%d missing=%d", v.stats.Drawn, v.stats.Culled, v.stats.Missing),
		float64(v.stats.Drawn))
	return v.stats
}

func (v *Visualizer) Camera() *viewport.Camera { return v.cam }

func (v *Visualizer) Registry() *scene.Registry { return v.reg }

func (v *Visualizer) Grid() *world.Grid { return v.grid }

func (v *Visualizer) Frame() int { return v.frame }

func (v *Visualizer) Events() *EventLog { return v.events }

// AgentTile is the tile last reported by UpdateAgent.
func (v *Visualizer) AgentTile() image.Point { return v.agentTile }

// AgentPosition is the agent's drawn world position this frame.
func (v *Visualizer) AgentPosition() image.Point { return v.agent.pos }

// MenuOpen reports whether the named UI scene is live.
func (v *Visualizer) MenuOpen(name string) bool { return v.reg.HasScene(name) }

// --- layer builders ---

func (v *Visualizer) placeAgent() {
	v.reg.Replace(scene.Persistent(scene.LayerAgent), []scene.Entity{{
		Pos:    v.agent.pos,
		Visual: scene.AgentSprite(),
	}})
}

// iconPos returns the screen position of the i-th top-right HUD icon.
func (v *Visualizer) iconPos(i int) image.Point {
	t := v.cam.TileSize()
	w := v.cam.Viewport().X
	return image.Pt(w-t/2-iconMargin-i*(t+iconMargin), t/2+iconMargin)
}

func (v *Visualizer) placeIcons() {
	if v.haveTime {
		v.reg.Replace(scene.Persistent(scene.LayerTimeOfDay), []scene.Entity{{
			Pos: v.iconPos(0), Visual: scene.TimeSprite(v.time),
		}})
	}
	if v.haveWeather {
		v.reg.Replace(scene.Persistent(scene.LayerWeather), []scene.Entity{{
			Pos: v.iconPos(1), Visual: scene.WeatherSprite(v.weather),
		}})
	}
}

func (v *Visualizer) rebuildMarkerOverlay() {
	view := v.cam.View()
	ents := make([]scene.Entity, 0, v.markers.Len())
	for _, m := range v.markers.All() {
		ents = append(ents, scene.Entity{Pos: view.TileToWorld(m), Visual: scene.OverlaySprite(scene.OverlayTileMarker)})
	}
	v.reg.Replace(scene.Persistent(scene.LayerOverlayHint), ents)
}

func (v *Visualizer) commitMarkers() {
	markersScene(v.markers.All(), v.grid, v.cam.Viewport()).Commit(v.reg, v.cam.TileSize())
}

func (v *Visualizer) commitInventory() {
	inventoryScene(v.backpack, v.cam.Viewport()).Commit(v.reg, v.cam.TileSize())
}

// event records a user-visible event in both logs.
func (v *Visualizer) event(category, key, value string) {
	msg := key
	if value != "" {
		msg += " " + value
	}
	v.events.Add(v.frame, category, msg)
	v.frames.Add(v.frame, category, key, value, 0)
}

func (v *Visualizer) logf(format string, args ...any) {
	v.log.Printf(format, args...)
}
