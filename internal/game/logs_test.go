package game

import (
	"image"
	"strings"
	"testing"
)

func TestEventLog_RingKeepsNewest(t *testing.T) {
	el := NewEventLog()
	for i := 0; i < eventLogCap+10; i++ {
		el.Add(i, "test", "entry")
	}
	if el.Len() != eventLogCap {
		t.Fatalf("len %d, want %d", el.Len(), eventLogCap)
	}
	recent := el.Recent()
	if recent[0].Frame != 10 || recent[len(recent)-1].Frame != eventLogCap+9 {
		t.Fatalf("window [%d..%d]", recent[0].Frame, recent[len(recent)-1].Frame)
	}
	last := el.Last(3)
	if len(last) != 3 || last[2].Frame != eventLogCap+9 {
		t.Fatalf("Last(3) = %+v", last)
	}
}

func TestEventEntry_String(t *testing.T) {
	e := EventEntry{Frame: 7, Category: "camera", Message: "follow on"}
	if got := e.String(); got != "   7 [camera] follow on" {
		t.Fatalf("%q", got)
	}
}

func TestFrameLog_NilDiscards(t *testing.T) {
	var fl *FrameLog
	fl.Add(1, "camera", "zoom", "+1", 1)
	fl.AddVerbose(1, "draw", "stats", "", 0)
	if len(fl.Entries()) != 0 || fl.Format() != "" {
		t.Fatal("nil log must stay empty")
	}
}

func TestFrameLog_Queries(t *testing.T) {
	fl := NewFrameLog(false)
	fl.Add(1, "marker", "add", "(3, 2)", 0)
	fl.Add(4, "marker", "remove", "(3, 2)", 0)
	fl.Add(9, "camera", "follow", "on", 0)
	fl.AddVerbose(9, "draw", "stats", "drawn=1", 1)

	if n := fl.CountCategory("marker", ""); n != 2 {
		t.Fatalf("marker entries %d", n)
	}
	if got := fl.FilterFrameRange(2, 9); len(got) != 2 {
		t.Fatalf("range entries %d", len(got))
	}
	if e, ok := fl.LastOf("marker", ""); !ok || e.Key != "remove" {
		t.Fatalf("LastOf %+v", e)
	}
	if !fl.HasEntry("camera", "follow", "on") || fl.HasEntry("camera", "follow", "off") {
		t.Fatal("HasEntry mismatch")
	}
	if !strings.Contains(fl.Format(), "[F=0009] camera") {
		t.Fatalf("format:\n%s", fl.Format())
	}
}

func TestMarkerSet_ToggleKeepsOrder(t *testing.T) {
	m := NewMarkerSet()
	for _, p := range [][2]int{{1, 1}, {2, 2}, {3, 3}} {
		m.Toggle(pt(p))
	}
	if m.Toggle(pt([2]int{2, 2})) {
		t.Fatal("second toggle should unmark")
	}
	if got := m.String(); got != "(1, 1)\n(3, 3)\n" {
		t.Fatalf("%q", got)
	}
	if !m.Has(pt([2]int{3, 3})) || m.Has(pt([2]int{2, 2})) {
		t.Fatal("Has mismatch")
	}
}

func TestAgentStep_PowersOfTwo(t *testing.T) {
	for speed, want := range map[int]int{0: 1, 1: 1, 3: 4, 6: 32} {
		if got := agentStep(speed); got != want {
			t.Fatalf("agentStep(%d) = %d, want %d", speed, got, want)
		}
	}
}

func pt(p [2]int) image.Point { return image.Pt(p[0], p[1]) }
