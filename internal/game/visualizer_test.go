package game

import (
	"errors"
	"image"
	"testing"

	"github.com/Garsondee/agentview/internal/config"
	"github.com/Garsondee/agentview/internal/render"
	"github.com/Garsondee/agentview/internal/scene"
	"github.com/Garsondee/agentview/internal/world"
)

// newTestVisualizer returns an 800x480 visualizer over a cols×rows grass grid.
func newTestVisualizer(t *testing.T, cols, rows int) *Visualizer {
	t.Helper()
	v, err := New(config.Default(), nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v.SetClipboard(nil)
	v.UpdateWorld(world.NewFilledGrid(cols, rows, world.TileGrass))
	return v
}

func step(t *testing.T, v *Visualizer, in FrameInput) {
	t.Helper()
	if err := v.Step(in); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TileSize = 0
	if _, err := New(cfg, nil, nil); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestNew_AppliesSpriteOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Sprites = []config.SpriteOverride{{Kind: "tile", Sub: int(world.TileGrass), Rect: []int{0, 0, 16, 16}}}
	v, err := New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r, err := v.pass.Sprites.Lookup(scene.SpriteKey{Kind: scene.VisualTile, Sub: int(world.TileGrass)})
	if err != nil || r != image.Rect(0, 0, 16, 16) {
		t.Fatalf("override not applied: %v %v", r, err)
	}
}

func TestUpdateWorld_RebuildsTilesAndContent(t *testing.T) {
	v := newTestVisualizer(t, 3, 2)
	g := world.NewFilledGrid(3, 2, world.TileSand)
	g.Set(1, 1, world.Tile{Kind: world.TileGrass, Content: world.ContentCoin, Amount: 4})
	g.Forget(2, 0)
	v.UpdateWorld(g)

	tiles := v.reg.Entities(scene.Persistent(scene.LayerTiles))
	if len(tiles) != 5 {
		t.Fatalf("expected 5 known tiles, got %d", len(tiles))
	}
	content := v.reg.Entities(scene.Persistent(scene.LayerContent))
	if len(content) != 1 || content[0].Pos != image.Pt(32, 32) {
		t.Fatalf("expected one coin at (32,32), got %+v", content)
	}

	v.UpdateWorld(world.NewFilledGrid(2, 2, world.TileSnow))
	if n := v.reg.Len(scene.Persistent(scene.LayerTiles)); n != 4 {
		t.Fatalf("second update should replace tiles, got %d", n)
	}
	if n := v.reg.Len(scene.Persistent(scene.LayerContent)); n != 0 {
		t.Fatalf("content layer should be cleared, got %d", n)
	}
}

func TestUpdateAgent_GlidesTowardTarget(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	v.UpdateAgent(image.Pt(0, 0), image.Pt(0, 0))
	if v.AgentPosition() != image.Pt(0, 0) {
		t.Fatalf("first update should place directly, got %v", v.AgentPosition())
	}

	v.UpdateAgent(image.Pt(1, 0), image.Pt(0, 0))
	if v.facing != world.DirRight {
		t.Fatalf("expected facing right, got %s", v.facing)
	}
	step(t, v, FrameInput{})
	// agent_speed 3 moves 4px per frame.
	if v.AgentPosition() != image.Pt(4, 0) {
		t.Fatalf("after one frame expected (4,0), got %v", v.AgentPosition())
	}
	for i := 0; i < 10; i++ {
		step(t, v, FrameInput{})
	}
	if v.AgentPosition() != image.Pt(32, 0) {
		t.Fatalf("agent should settle on (32,0), got %v", v.AgentPosition())
	}
	ents := v.reg.Entities(scene.Persistent(scene.LayerAgent))
	if len(ents) != 1 || ents[0].Pos != image.Pt(32, 0) {
		t.Fatalf("agent layer should hold one entity at (32,0), got %+v", ents)
	}
}

func TestFollow_AnchorsAgentAtCentreThroughZoom(t *testing.T) {
	v := newTestVisualizer(t, 20, 20)
	v.UpdateAgent(image.Pt(5, 5), image.Pt(5, 5))
	step(t, v, FrameInput{ToggleFollow: true})
	if !v.cam.Following() {
		t.Fatal("follow should be on")
	}

	centre := image.Pt(400, 240)
	for i, in := range []FrameInput{{}, {Zoom: 1}, {Zoom: 1}, {Pan: image.Pt(1, 1)}, {Zoom: -1}} {
		step(t, v, in)
		rec := &render.Recorder{}
		v.Render(rec)
		if got := v.cam.AgentAnchor(); got != centre {
			t.Fatalf("frame %d: agent anchor %v, want %v", i, got, centre)
		}
		agents := rec.Find(scene.VisualAgent)
		if len(agents) != 1 || !centre.In(agents[0].Dst) {
			t.Fatalf("frame %d: agent not drawn over the centre: %+v", i, agents)
		}
	}
}

func TestFollow_PanHeldBackUntilFollowOff(t *testing.T) {
	v := newTestVisualizer(t, 20, 20)
	v.UpdateAgent(image.Pt(5, 5), image.Pt(5, 5))
	step(t, v, FrameInput{ToggleFollow: true})
	if v.cam.Pan() != image.Pt(240, 80) {
		t.Fatalf("follow pan %v, want (240,80)", v.cam.Pan())
	}
	step(t, v, FrameInput{Pan: image.Pt(1, 0)})
	if v.cam.Pan() != image.Pt(240, 80) {
		t.Fatalf("pan must not move while following, got %v", v.cam.Pan())
	}
	step(t, v, FrameInput{ToggleFollow: true})
	if v.cam.Pan() != image.Pt(208, 80) {
		t.Fatalf("held-back pan not applied on follow off, got %v", v.cam.Pan())
	}
}

func TestInput_ArrowPansOneTile(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	step(t, v, FrameInput{Pan: image.Pt(-1, 0)})
	if v.cam.Pan() != image.Pt(32, 0) {
		t.Fatalf("left arrow should shift the world right by one tile, got %v", v.cam.Pan())
	}
	step(t, v, FrameInput{Pan: image.Pt(0, 1)})
	if v.cam.Pan() != image.Pt(32, -32) {
		t.Fatalf("down arrow: got %v", v.cam.Pan())
	}
	step(t, v, FrameInput{Drag: image.Pt(5, 7)})
	if v.cam.Pan() != image.Pt(37, -25) {
		t.Fatalf("drag: got %v", v.cam.Pan())
	}
	step(t, v, FrameInput{ResetPan: true, Zoom: 3})
	if v.cam.Pan() != (image.Point{}) || v.cam.Zoom() != 3 {
		t.Fatalf("reset pan: pan %v zoom %d", v.cam.Pan(), v.cam.Zoom())
	}
}

func TestInput_ZoomClamped(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	for i := 0; i < 100; i++ {
		step(t, v, FrameInput{Zoom: -1})
	}
	if got := v.cam.EffectiveTileSize(); got != 4 {
		t.Fatalf("zoom floor: effective tile %d, want 4", got)
	}
	for i := 0; i < 200; i++ {
		step(t, v, FrameInput{Zoom: 1})
	}
	if got := v.cam.EffectiveTileSize(); got != 128 {
		t.Fatalf("zoom ceiling: effective tile %d, want 128", got)
	}
}

func TestInput_QuitReturnsErrQuit(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	err := v.Step(FrameInput{Quit: true, Zoom: 5})
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
	if v.cam.Zoom() != 0 {
		t.Fatal("quit frame must not apply other input")
	}
}

func TestToggleMarkerAt_InsideAndOutsideGrid(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)

	tile, ok := v.ToggleMarkerAt(image.Pt(96, 64))
	if !ok || tile != image.Pt(3, 2) {
		t.Fatalf("expected toggle at (3,2), got %v %v", tile, ok)
	}
	hint := v.reg.Entities(scene.Persistent(scene.LayerOverlayHint))
	if len(hint) != 1 || hint[0].Pos != image.Pt(96, 64) || hint[0].Visual.Overlay != scene.OverlayTileMarker {
		t.Fatalf("marker overlay wrong: %+v", hint)
	}

	if _, ok := v.ToggleMarkerAt(image.Pt(-100, -100)); ok {
		t.Fatal("point outside the grid must be ignored")
	}
	if got := v.Markers(); len(got) != 1 {
		t.Fatalf("expected 1 marker, got %v", got)
	}

	v.ToggleMarkerAt(image.Pt(100, 70))
	if len(v.Markers()) != 0 || v.reg.Len(scene.Persistent(scene.LayerOverlayHint)) != 0 {
		t.Fatal("second toggle on the same tile should remove the marker")
	}
}

func TestUpdateWorld_ShrinkDropsOutlyingMarkers(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	v.ToggleMarkerAt(image.Pt(64, 32))  // (2,1)
	v.ToggleMarkerAt(image.Pt(256, 32)) // (8,1)
	v.ToggleMarkerAt(image.Pt(96, 64))  // (3,2)
	v.ToggleMarkersMenu()

	v.UpdateWorld(world.NewFilledGrid(5, 5, world.TileGrass))

	got := v.Markers()
	if len(got) != 2 || got[0] != image.Pt(2, 1) || got[1] != image.Pt(3, 2) {
		t.Fatalf("markers after shrink = %v, want [(2,1) (3,2)]", got)
	}
	if n := v.reg.Len(scene.Persistent(scene.LayerOverlayHint)); n != 2 {
		t.Fatalf("marker overlay holds %d entities, want 2", n)
	}
	if last := v.events.Last(1); len(last) != 1 || last[0].Message != "dropped 1" {
		t.Fatalf("expected a dropped-marker event, got %+v", last)
	}
}

func TestHoverAt_OutsideGridLeavesOverlay(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	v.HoverAt(image.Pt(96, 64))
	v.HoverAt(image.Pt(790, 470))
	hover := v.reg.Entities(scene.Persistent(scene.LayerOverlayHover))
	if len(hover) != 1 || hover[0].Pos != image.Pt(96, 64) {
		t.Fatalf("hover should stay on (3,2): %+v", hover)
	}
}

func TestHoverAt_FollowsZoomedView(t *testing.T) {
	v := newTestVisualizer(t, 30, 30)
	v.cam.ZoomBy(32) // k = 2 around (400,240)
	// World (416,240) draws at (432,240): tile (13,8).
	v.HoverAt(image.Pt(432, 240))
	if v.hover != image.Pt(13, 8) {
		t.Fatalf("hover tile %v, want (13,8)", v.hover)
	}
}

func TestMarkersMenu_OpenCloseRetracts(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	v.ToggleMarkerAt(image.Pt(96, 64))
	step(t, v, FrameInput{ToggleMarkers: true})

	if !v.MenuOpen(SceneMarkers) {
		t.Fatal("markers menu should be live")
	}
	layers := v.reg.SceneLayers(SceneMarkers)
	if len(layers) != 2 {
		t.Fatalf("expected background and content sublayers, got %v", layers)
	}
	if n := v.reg.Len(layers[0]); n != 1 {
		t.Fatalf("background sublayer holds %d entities", n)
	}
	// "MARKERS" + "(3, 2)" + tile icon + "(Grass-None)"
	if n := v.reg.Len(layers[1]); n != 7+6+1+12 {
		t.Fatalf("content sublayer holds %d entities", n)
	}

	step(t, v, FrameInput{ToggleMarkers: true})
	if v.MenuOpen(SceneMarkers) || len(v.reg.SceneLayers(SceneMarkers)) != 0 {
		t.Fatal("closing the menu must retract every layer")
	}
}

func TestMarkersMenu_UnknownTileRow(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	g := world.NewFilledGrid(10, 10, world.TileGrass)
	g.Forget(3, 2)
	v.UpdateWorld(g)
	v.ToggleMarkerAt(image.Pt(96, 64))
	v.ToggleMarkersMenu()

	want := "(3, 2) - (Unknown)"
	var row []rune
	for _, e := range v.reg.Entities(scene.UILayer(SceneMarkers, rankMarkers, subContent)) {
		if e.Pos.Y == 250 {
			row = append(row, e.Visual.Glyph)
		}
	}
	if string(row) != want {
		t.Fatalf("row %q, want %q", string(row), want)
	}
}

func TestInventory_ListsBackpackInKindOrder(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	v.UpdateBackpack(map[world.ContentKind]int{world.ContentCoin: 3, world.ContentRock: 2})
	v.ToggleInventory()

	var items []scene.Entity
	for _, e := range v.reg.Entities(scene.UILayer(SceneInventory, rankInventory, subContent)) {
		if e.Visual.Kind == scene.VisualItem {
			items = append(items, e)
		}
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 item icons, got %d", len(items))
	}
	if items[0].Pos != image.Pt(150, 150) || items[0].Visual.Inner.Content != world.ContentRock {
		t.Fatalf("first row should be rock at (150,150): %+v", items[0])
	}
	if items[1].Pos != image.Pt(150, 250) || items[1].Visual.Inner.Content != world.ContentCoin {
		t.Fatalf("second row should be coin at (150,250): %+v", items[1])
	}

	v.UpdateBackpack(nil)
	if n := v.reg.Len(scene.UILayer(SceneInventory, rankInventory, subContent)); n != len("BACKPACK") {
		t.Fatalf("empty backpack should leave only the title, got %d", n)
	}
}

func TestCopyMarkers_WritesClipboard(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	var got string
	v.SetClipboard(func(s string) error {
		got = s
		return nil
	})
	v.ToggleMarkerAt(image.Pt(96, 64))
	v.ToggleMarkerAt(image.Pt(160, 32))
	step(t, v, FrameInput{CopyMarkers: true})
	if got != "(3, 2)\n(5, 1)\n" {
		t.Fatalf("clipboard %q", got)
	}
}

func TestAmbientIcons_TopRightAndResize(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	v.UpdateTimeOfDay(world.Night)
	v.UpdateWeather(world.Rainy)

	tod := v.reg.Entities(scene.Persistent(scene.LayerTimeOfDay))
	if len(tod) != 1 || tod[0].Pos != image.Pt(776, 24) || !tod[0].Visual.Fixed {
		t.Fatalf("time icon: %+v", tod)
	}
	wx := v.reg.Entities(scene.Persistent(scene.LayerWeather))
	if len(wx) != 1 || wx[0].Pos != image.Pt(736, 24) {
		t.Fatalf("weather icon: %+v", wx)
	}

	v.UpdateWeather(world.Snowy)
	if n := v.reg.Len(scene.Persistent(scene.LayerWeather)); n != 1 {
		t.Fatalf("weather layer should hold one icon, got %d", n)
	}

	v.Resize(1000, 600)
	if got := v.reg.Entities(scene.Persistent(scene.LayerTimeOfDay))[0].Pos; got != image.Pt(976, 24) {
		t.Fatalf("icon not moved on resize: %v", got)
	}
}

func TestSetFramerate_FloorsAtOne(t *testing.T) {
	v := newTestVisualizer(t, 1, 1)
	v.SetFramerate(0)
	if v.Framerate() != 1 {
		t.Fatalf("framerate %d", v.Framerate())
	}
	v.SetFramerate(24)
	if v.Framerate() != 24 {
		t.Fatalf("framerate %d", v.Framerate())
	}
}

func TestHUD_ToggleRemovesScene(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	step(t, v, FrameInput{})
	if !v.MenuOpen(SceneHUD) {
		t.Fatal("HUD should be shown by default")
	}
	step(t, v, FrameInput{ToggleHUD: true})
	if v.MenuOpen(SceneHUD) {
		t.Fatal("HUD should be retracted")
	}
	step(t, v, FrameInput{ToggleHUD: true})
	if !v.MenuOpen(SceneHUD) {
		t.Fatal("HUD should come back")
	}
}

func TestEvents_SceneShowsLatestEntries(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	for i := 0; i < 6; i++ {
		step(t, v, FrameInput{ToggleFollow: true})
	}
	if !v.MenuOpen(SceneEvents) {
		t.Fatal("events scene missing")
	}
	if v.events.Len() != 6 {
		t.Fatalf("expected 6 events, got %d", v.events.Len())
	}
	want := 0
	for _, e := range v.events.Last(eventLines) {
		want += len(e.String())
	}
	if n := v.reg.Len(scene.UILayer(SceneEvents, rankEvents, subContent)); n != want {
		t.Fatalf("events scene holds %d glyphs, want %d", n, want)
	}
}

func TestRender_DrawsEveryKnownTile(t *testing.T) {
	v := newTestVisualizer(t, 10, 10)
	rec := &render.Recorder{}
	st := v.Render(rec)
	if st.Missing != 0 {
		t.Fatalf("missing sprites: %d", st.Missing)
	}
	if st.Layers["tiles"] != 100 {
		t.Fatalf("tiles drawn %d, want 100", st.Layers["tiles"])
	}
	snap := v.Snapshot()
	if snap.Drawn != st.Drawn || snap.Viewport != [2]int{800, 480} || snap.TileSize != 32 {
		t.Fatalf("snapshot out of step: %+v", snap)
	}
}
