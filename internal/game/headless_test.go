package game

import (
	"errors"
	"image"
	"testing"

	"github.com/Garsondee/agentview/internal/scene"
)

// dumpLog prints the full FrameLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, hl *Headless) {
	t.Helper()
	if len(hl.FrameLog.Entries()) == 0 {
		t.Log("(no log entries)")
		return
	}
	t.Log("\n" + hl.FrameLog.Format())
}

func newHeadless(t *testing.T, opts ...HeadlessOption) *Headless {
	t.Helper()
	hl, err := NewHeadless(opts...)
	if err != nil {
		t.Fatalf("NewHeadless: %v", err)
	}
	return hl
}

func TestHeadless_FollowKeepsAgentCentred(t *testing.T) {
	hl := newHeadless(t, WithSeed(3), WithFollow(), WithFramesPerTick(2))
	centre := image.Pt(400, 240)

	err := hl.RunFrames(120, func(i int) FrameInput {
		switch {
		case i == 30:
			return FrameInput{Zoom: 4}
		case i == 60:
			return FrameInput{Pan: image.Pt(1, 0)}
		case i == 90:
			return FrameInput{Zoom: -10}
		}
		return FrameInput{}
	})
	if err != nil {
		t.Fatalf("RunFrames: %v", err)
	}
	if got := hl.V.Camera().AgentAnchor(); got != centre {
		dumpLog(t, hl)
		t.Fatalf("agent anchor %v, want %v", got, centre)
	}
	agents := hl.Canvas.Find(scene.VisualAgent)
	if len(agents) != 1 || !centre.In(agents[0].Dst) {
		t.Fatalf("agent not drawn over the centre: %+v", agents)
	}
}

func TestHeadless_TracksSandboxAgent(t *testing.T) {
	hl := newHeadless(t, WithSeed(5), WithFramesPerTick(8), WithAgentSpeed(6))
	if err := hl.RunFrames(80, nil); err != nil {
		t.Fatalf("RunFrames: %v", err)
	}
	if hl.V.AgentTile() != hl.Sandbox.Agent() {
		t.Fatalf("agent tile %v, sandbox %v", hl.V.AgentTile(), hl.Sandbox.Agent())
	}
	// 32px per frame settles within one frame of each tick.
	want := hl.Sandbox.Agent().Mul(32)
	if hl.V.AgentPosition() != want {
		t.Fatalf("agent drawn at %v, want %v", hl.V.AgentPosition(), want)
	}
}

func TestHeadless_Deterministic(t *testing.T) {
	run := func() Snapshot {
		hl := newHeadless(t, WithSeed(9), WithFramesPerTick(3))
		if err := hl.RunFrames(100, nil); err != nil {
			t.Fatalf("RunFrames: %v", err)
		}
		return hl.V.Snapshot()
	}
	a, b := run(), run()
	if a.AgentTile != b.AgentTile || a.Drawn != b.Drawn || a.Pan != b.Pan {
		t.Fatalf("runs diverged:\n%+v\n%+v", a, b)
	}
}

func TestHeadless_NoMissingSpritesWithEverythingOpen(t *testing.T) {
	hl := newHeadless(t, WithSeed(11), WithFramesPerTick(2))
	for i := 0; i < 150; i++ {
		in := FrameInput{Cursor: image.Pt(40+i*3, 30+i*2), CursorMoved: true}
		switch i {
		case 1:
			in.ToggleMarkers = true
		case 2:
			in.ToggleInventory = true
		}
		if i%10 == 0 {
			in.MarkerClick = true
		}
		st, err := hl.StepInput(in)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if st.Missing != 0 {
			t.Fatalf("frame %d: %d entities without sprites", i, st.Missing)
		}
	}
	snap := hl.V.Snapshot()
	for _, name := range []string{SceneEvents, SceneHUD, SceneInventory, SceneMarkers} {
		found := false
		for _, s := range snap.Scenes {
			found = found || s == name
		}
		if !found {
			t.Fatalf("scene %q not live: %v", name, snap.Scenes)
		}
	}
}

func TestHeadless_MarkerClickAndCopy(t *testing.T) {
	hl := newHeadless(t)
	if _, err := hl.StepInput(FrameInput{Cursor: image.Pt(96, 64), MarkerClick: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := hl.StepInput(FrameInput{CopyMarkers: true}); err != nil {
		t.Fatal(err)
	}
	if hl.Clipboard != "(3, 2)\n" {
		t.Fatalf("clipboard %q", hl.Clipboard)
	}
	if !hl.FrameLog.HasEntry("marker", "add", "(3, 2)") {
		dumpLog(t, hl)
		t.Fatal("marker add not logged")
	}
	if e, ok := hl.FrameLog.LastOf("marker", "copy"); !ok || e.Frame != 2 {
		t.Fatalf("copy entry %+v %v", e, ok)
	}
}

func TestHeadless_QuitStopsRun(t *testing.T) {
	hl := newHeadless(t)
	err := hl.RunFrames(10, func(i int) FrameInput {
		return FrameInput{Quit: i == 4}
	})
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
	if hl.V.Frame() != 5 {
		t.Fatalf("stopped at frame %d, want 5", hl.V.Frame())
	}
}

func TestHeadless_VerboseRecordsDrawStats(t *testing.T) {
	hl := newHeadless(t, WithVerbose(true))
	if err := hl.RunFrames(5, nil); err != nil {
		t.Fatal(err)
	}
	if n := hl.FrameLog.CountCategory("draw", "stats"); n != 5 {
		t.Fatalf("expected 5 draw entries, got %d", n)
	}
	quiet := newHeadless(t)
	if err := quiet.RunFrames(5, nil); err != nil {
		t.Fatal(err)
	}
	if n := quiet.FrameLog.CountCategory("draw", ""); n != 0 {
		t.Fatalf("non-verbose log recorded %d draw entries", n)
	}
}

func TestHeadless_RunUntil(t *testing.T) {
	hl := newHeadless(t, WithFramesPerTick(1))
	got := hl.RunUntil(func(h *Headless) bool { return h.Sandbox.Snapshot().Number >= 3 }, 50)
	if got != 3 {
		t.Fatalf("predicate met at frame %d, want 3", got)
	}
}
