package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/Garsondee/agentview/internal/world"
)

func TestScene_CommitTextGlyphs(t *testing.T) {
	r := NewRegistry()
	New("hud", 20).Add(Text("AB", image.Pt(20, 50), 1.0, true, 0)).Commit(r, 32)

	ids := r.SceneLayers("hud")
	if len(ids) != 1 {
		t.Fatalf("expected 1 layer for hud, got %d", len(ids))
	}
	ents := r.Entities(ids[0])
	if len(ents) != 2 {
		t.Fatalf("expected 2 glyph entities, got %d", len(ents))
	}
	if ents[0].Pos != image.Pt(20, 50) {
		t.Fatalf("first glyph at %v, want (20,50)", ents[0].Pos)
	}
	step := GlyphAdvance(1.0, 32)
	if step <= 0 {
		t.Fatalf("glyph advance %d not positive", step)
	}
	if ents[1].Pos != image.Pt(20+step, 50) {
		t.Fatalf("second glyph at %v, want (%d,50)", ents[1].Pos, 20+step)
	}
	if ents[0].Visual.Glyph != 'A' || ents[1].Visual.Glyph != 'B' {
		t.Fatalf("glyphs = %q %q, want A B", ents[0].Visual.Glyph, ents[1].Visual.Glyph)
	}
	if !ents[0].Visual.Fixed {
		t.Fatal("hud glyph should be fixed")
	}
}

func TestGlyphAdvance_Values(t *testing.T) {
	cases := []struct {
		scale float64
		want  int
	}{
		{1.0, 18},
		{2.0, 27},
		{0.7, 15},
	}
	for _, c := range cases {
		if got := GlyphAdvance(c.scale, 32); got != c.want {
			t.Errorf("GlyphAdvance(%.1f,32) = %d, want %d", c.scale, got, c.want)
		}
	}
}

func TestGlyphAdvance_AtLeastOnePixel(t *testing.T) {
	if got := GlyphAdvance(1, 2); got != 1 {
		t.Fatalf("GlyphAdvance(1,2) = %d, want 1", got)
	}
	if got := GlyphAdvance(-3, 32); got != 1 {
		t.Fatalf("GlyphAdvance(-3,32) = %d, want 1", got)
	}
	glyphs := LayoutText("abc", image.Pt(10, 0), 1, true, 2)
	for i := 1; i < len(glyphs); i++ {
		if glyphs[i].Pos.X <= glyphs[i-1].Pos.X {
			t.Fatalf("glyph %d at x=%d does not follow x=%d", i, glyphs[i].Pos.X, glyphs[i-1].Pos.X)
		}
	}
}

func TestLayoutText_Deterministic(t *testing.T) {
	a := LayoutText("hello, world", image.Pt(3, 4), 0.7, false, 32)
	b := LayoutText("hello, world", image.Pt(3, 4), 0.7, false, 32)
	if len(a) != len("hello, world") {
		t.Fatalf("expected one entity per rune, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("layout differs at %d: %+v vs %+v", i, a[i], b[i])
		}
		if a[i].Pos.Y != 4 {
			t.Fatalf("glyph %d left the baseline: %v", i, a[i].Pos)
		}
	}
}

func TestScene_ReplaceLeavesOnlyNewGeneration(t *testing.T) {
	r := NewRegistry()
	bg := color.RGBA{R: 200, G: 100, B: 50, A: 200}
	old := New("markers", 9).
		Add(Square(image.Pt(100, 100), image.Pt(700, 380), true, true, bg, 1)).
		Add(Text("MARKERS", image.Pt(300, 100), 2.0, true, 2)).
		Add(Text("(1, 2)", image.Pt(100, 250), 0.7, true, 3))
	old.Commit(r, 32)
	if got := len(r.SceneLayers("markers")); got != 3 {
		t.Fatalf("old generation layers = %d, want 3", got)
	}

	New("markers", 9).Add(Text("X", image.Pt(10, 10), 1, true, 2)).Commit(r, 32)

	ids := r.SceneLayers("markers")
	if len(ids) != 1 || ids[0].Sublayer != 2 {
		t.Fatalf("new generation layers = %v, want only sublayer 2", ids)
	}
	total := 0
	for _, id := range r.Order() {
		if !id.IsUI() {
			continue
		}
		for _, e := range r.Entities(id) {
			total++
			if e.Visual.Kind != VisualGlyph || e.Visual.Glyph != 'X' {
				t.Fatalf("stale entity %v in %v", e.Visual, id)
			}
		}
	}
	if total != 1 {
		t.Fatalf("expected exactly 1 UI entity, got %d", total)
	}
}

func TestScene_RankChangeRetractsOldRank(t *testing.T) {
	r := NewRegistry()
	New("menu", 5).Add(Text("a", image.Point{}, 1, true, 1)).Commit(r, 32)
	New("menu", 7).Add(Text("b", image.Point{}, 1, true, 1)).Commit(r, 32)
	for _, id := range r.Order() {
		if id.IsUI() && id.Rank == 5 {
			t.Fatalf("layer of the old rank survived: %v", id)
		}
	}
}

func TestScene_EmptyCommitRetracts(t *testing.T) {
	r := NewRegistry()
	New("menu", 5).Add(Text("abc", image.Point{}, 1, true, 1)).Commit(r, 32)
	New("menu", 5).Commit(r, 32)
	if r.HasScene("menu") {
		t.Fatal("empty commit should leave no live scene")
	}
	if r.Total() != 0 {
		t.Fatalf("registry still holds %d entities", r.Total())
	}
}

func TestScene_ItemResolvesInnerSprite(t *testing.T) {
	r := NewRegistry()
	New("inventory", 10).Add(Item(image.Pt(150, 150), 1.7, true, ContentSprite(world.ContentCoin), 2)).Commit(r, 32)
	ents := r.Entities(UILayer("inventory", 10, 2))
	if len(ents) != 1 {
		t.Fatalf("expected 1 item entity, got %d", len(ents))
	}
	key, ok := ents[0].Visual.SpriteKey()
	if !ok || key != (SpriteKey{VisualContent, int(world.ContentCoin)}) {
		t.Fatalf("item key = %v ok=%v, want content coin", key, ok)
	}
	if ents[0].Visual.SpriteScale() != 1.7 {
		t.Fatalf("item scale = %f, want 1.7", ents[0].Visual.SpriteScale())
	}
}
