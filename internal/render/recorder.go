package render

import (
	"image"
	"image/color"

	"github.com/Garsondee/agentview/internal/scene"
)

// Call is one recorded draw call.
type Call struct {
	Visual scene.Visual
	Src    image.Rectangle
	Dst    image.Rectangle
	Fill   bool
	Color  color.RGBA
}

// Recorder is a Canvas that keeps every call in order. The headless harness
// and tests draw into it instead of a window.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) DrawSprite(v scene.Visual, src, dst image.Rectangle) {
	r.Calls = append(r.Calls, Call{Visual: v, Src: src, Dst: dst})
}

func (r *Recorder) FillRect(dst image.Rectangle, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Visual: scene.Visual{Kind: scene.VisualRect}, Dst: dst, Fill: true, Color: c})
}

// Reset drops the recorded calls, keeping capacity.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

// Find returns the recorded calls whose visual matches kind.
func (r *Recorder) Find(kind scene.VisualKind) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Visual.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}
