package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"sort"
	"strings"

	"github.com/Garsondee/agentview/internal/game"
	"github.com/Garsondee/agentview/internal/record"
)

type runStats struct {
	runIndex int
	seed     int64
	frames   int

	drawn   int
	culled  int
	missing int
	layers  map[string]int // draw calls summed over all frames

	firstFollowFrame int
	firstMarkerFrame int
	firstMenuFrame   int

	markerAdds    int
	markerRemoves int
	menuOpens     int
	zoomChanges   int
	worldUpdates  int

	finalAgent [2]int
	finalZoom  int
	finalPan   [2]int
	scenes     map[string]struct{}
}

func main() {
	var runs int
	var frames int
	var seedBase int64
	var seedStep int64
	var cols, rows int
	var framesPerTick int
	var follow bool
	var recordPath string

	flag.IntVar(&runs, "runs", 3, "number of headless runs")
	flag.IntVar(&frames, "frames", 600, "frames per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base sandbox seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&cols, "cols", 40, "sandbox map columns")
	flag.IntVar(&rows, "rows", 30, "sandbox map rows")
	flag.IntVar(&framesPerTick, "frames-per-tick", 8, "frames drawn per sandbox tick")
	flag.BoolVar(&follow, "follow", false, "start with the camera following the agent")
	flag.StringVar(&recordPath, "record", "", "write per-frame snapshots of run 1 to this .jsonl.zst file")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if frames <= 0 {
		fmt.Println("error: -frames must be > 0")
		return
	}

	fmt.Printf("=== Headless Draw Report ===\n")
	fmt.Printf("runs=%d frames=%d seed_base=%d seed_step=%d grid=%dx%d frames_per_tick=%d follow=%v\n\n",
		runs, frames, seedBase, seedStep, cols, rows, framesPerTick, follow)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		opts := []game.HeadlessOption{
			game.WithSeed(seedBase + int64(i)*seedStep),
			game.WithGrid(cols, rows),
			game.WithFramesPerTick(framesPerTick),
			game.WithVerbose(true),
		}
		if follow {
			opts = append(opts, game.WithFollow())
		}
		path := ""
		if i == 0 {
			path = recordPath
		}
		stats, err := runScripted(i+1, seedBase+int64(i)*seedStep, frames, path, opts...)
		if err != nil {
			log.Fatal(err)
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// scriptedInput exercises the camera and the menus on a fixed schedule so runs
// with the same seed are comparable.
func scriptedInput(frame int) game.FrameInput {
	var in game.FrameInput
	switch frame % 240 {
	case 20:
		in.ToggleFollow = true
	case 40, 50, 60:
		in.Zoom = 4
	case 80:
		in.ToggleMarkers = true
	case 120:
		in.ToggleInventory = true
	case 150:
		in.Zoom = -12
	case 170:
		in.ToggleFollow = true
	case 180:
		in.Pan = image.Pt(1, 1)
	case 200:
		in.ToggleMarkers = true
		in.ToggleInventory = true
	}
	if frame%37 == 0 {
		c := image.Pt(64+(frame*13)%640, 48+(frame*7)%384)
		in.Cursor = c
		in.CursorMoved = true
		in.MarkerClick = true
	}
	return in
}

func runScripted(runIndex int, seed int64, frames int, recordPath string, opts ...game.HeadlessOption) (runStats, error) {
	hl, err := game.NewHeadless(opts...)
	if err != nil {
		return runStats{}, err
	}

	var rec *record.Writer
	if recordPath != "" {
		rec, err = record.Create(recordPath)
		if err != nil {
			return runStats{}, err
		}
		defer rec.Close()
	}

	rs := runStats{
		runIndex: runIndex,
		seed:     seed,
		layers:   make(map[string]int),
		scenes:   make(map[string]struct{}),
	}
	for f := 0; f < frames; f++ {
		st, err := hl.StepInput(scriptedInput(f))
		if err != nil {
			return rs, fmt.Errorf("run %d frame %d: %w", runIndex, f, err)
		}
		rs.frames++
		rs.drawn += st.Drawn
		rs.culled += st.Culled
		rs.missing += st.Missing
		addLayers(rs.layers, st.Layers)
		snap := hl.V.Snapshot()
		for _, s := range snap.Scenes {
			rs.scenes[s] = struct{}{}
		}
		if rec != nil {
			if err := rec.Write(snap); err != nil {
				return rs, fmt.Errorf("record: %w", err)
			}
		}
	}

	entries := hl.FrameLog.Entries()
	rs.firstFollowFrame = firstFrame(entries, "camera", "follow", "on")
	rs.firstMarkerFrame = firstFrame(entries, "marker", "add", "")
	rs.firstMenuFrame = firstFrame(entries, "menu", "open", "")
	rs.markerAdds = hl.FrameLog.CountCategory("marker", "add")
	rs.markerRemoves = hl.FrameLog.CountCategory("marker", "remove")
	rs.menuOpens = hl.FrameLog.CountCategory("menu", "open")
	rs.zoomChanges = hl.FrameLog.CountCategory("camera", "zoom")
	rs.worldUpdates = hl.FrameLog.CountCategory("world", "update")

	snap := hl.V.Snapshot()
	rs.finalAgent = snap.AgentTile
	rs.finalZoom = snap.Zoom
	rs.finalPan = snap.Pan
	if rec != nil {
		if err := rec.Close(); err != nil {
			return rs, fmt.Errorf("record: %w", err)
		}
	}
	return rs, nil
}

func addLayers(dst, src map[string]int) {
	for k, v := range src {
		dst[k] += v
	}
}

func firstFrame(entries []game.FrameLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Frame
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("draw_totals: frames=%d drawn=%d culled=%d missing=%d avg_drawn=%.1f\n",
		rs.frames, rs.drawn, rs.culled, rs.missing, avg(rs.drawn, rs.frames))
	fmt.Printf("phase_markers: follow=%d first_marker=%d first_menu=%d\n",
		rs.firstFollowFrame, rs.firstMarkerFrame, rs.firstMenuFrame)
	fmt.Printf("event_totals: marker_add=%d marker_remove=%d menu_open=%d zoom_change=%d world_update=%d\n",
		rs.markerAdds, rs.markerRemoves, rs.menuOpens, rs.zoomChanges, rs.worldUpdates)
	fmt.Printf("final: agent=(%d, %d) zoom=%+d pan=(%d, %d)\n",
		rs.finalAgent[0], rs.finalAgent[1], rs.finalZoom, rs.finalPan[0], rs.finalPan[1])
	fmt.Printf("scenes_seen: %s\n", joinSet(rs.scenes))
	fmt.Println("layers (avg draws per frame):")
	fmt.Print(formatLayers(rs.layers, rs.frames))
	fmt.Println()
}

func printAggregate(all []runStats) {
	fmt.Println("=== Aggregate ===")
	frames, drawn, culled, missing := 0, 0, 0, 0
	layers := make(map[string]int)
	for _, rs := range all {
		frames += rs.frames
		drawn += rs.drawn
		culled += rs.culled
		missing += rs.missing
		addLayers(layers, rs.layers)
	}
	fmt.Printf("frames=%d avg_drawn=%.1f avg_culled=%.1f missing=%d\n",
		frames, avg(drawn, frames), avg(culled, frames), missing)
	fmt.Print(formatLayers(layers, frames))
	if missing > 0 {
		fmt.Println("WARNING: entities without sprites were skipped")
	}
}

// formatLayers lists layers by name with their average draws per frame.
func formatLayers(layers map[string]int, frames int) string {
	names := make([]string, 0, len(layers))
	for k := range layers {
		names = append(names, k)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "  %-22s %8.1f\n", name, avg(layers[name], frames))
	}
	return sb.String()
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
