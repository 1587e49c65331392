package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/agentview/internal/game"
	"github.com/Garsondee/agentview/internal/record"
)

func TestFirstFrame_MatchesKeyAndValue(t *testing.T) {
	entries := []game.FrameLogEntry{
		{Frame: 3, Category: "camera", Key: "follow", Value: "off"},
		{Frame: 7, Category: "camera", Key: "follow", Value: "on"},
		{Frame: 9, Category: "marker", Key: "add", Value: "(1, 1)"},
	}
	if got := firstFrame(entries, "camera", "follow", "on"); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := firstFrame(entries, "marker", "add", ""); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := firstFrame(entries, "menu", "open", ""); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestFormatLayers_SortedAverages(t *testing.T) {
	out := formatLayers(map[string]int{"tiles": 200, "agent": 4}, 4)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "agent") || !strings.HasSuffix(lines[1], "50.0") {
		t.Fatalf("unexpected layout:\n%s", out)
	}
}

func TestAvg_ZeroFrames(t *testing.T) {
	if avg(10, 0) != 0 {
		t.Fatal("avg over zero frames should be 0")
	}
}

func TestRunScripted_NoMissingAndRecorded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl.zst")
	rs, err := runScripted(1, 42, 250, path, game.WithSeed(42), game.WithVerbose(true), game.WithFramesPerTick(4))
	if err != nil {
		t.Fatalf("runScripted: %v", err)
	}
	if rs.missing != 0 {
		t.Fatalf("missing sprites: %d", rs.missing)
	}
	if rs.firstFollowFrame != 21 {
		t.Fatalf("follow toggled at frame %d, want 21", rs.firstFollowFrame)
	}
	if rs.menuOpens != 2 {
		t.Fatalf("expected 2 menu opens, got %d", rs.menuOpens)
	}
	if _, ok := rs.scenes[game.SceneMarkers]; !ok {
		t.Fatalf("markers scene never seen: %v", rs.scenes)
	}

	snaps, err := record.ReadFile[game.Snapshot](path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(snaps) != 250 || snaps[249].Frame != 250 {
		t.Fatalf("recorded %d frames", len(snaps))
	}
}
